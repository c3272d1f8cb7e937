package service

import (
	"context"
	"mime/multipart"

	"github.com/google/uuid"

	"github.com/forkful/backend/internal/form"
	"github.com/forkful/backend/internal/models"
	"github.com/forkful/backend/internal/types"
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, email, password, displayName string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	Logout(ctx context.Context, token string) error
	ValidateToken(token string) (*types.TokenClaims, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	Create(ctx context.Context, userID uuid.UUID, input *form.RecipeInput) (*models.Recipe, error)
	Update(ctx context.Context, userID, recipeID uuid.UUID, input *form.RecipeInput) (*models.Recipe, error)
	Delete(ctx context.Context, userID, recipeID uuid.UUID) error
	Feed(ctx context.Context, search, category string) ([]*models.Recipe, error)
	Categories(ctx context.Context) ([]string, error)
	Dashboard(ctx context.Context, userID uuid.UUID) ([]*models.Recipe, error)
	Detail(ctx context.Context, viewerID *uuid.UUID, recipeID uuid.UUID) (*models.Recipe, error)
	CanEdit(ctx context.Context, userID, recipeID uuid.UUID) (bool, error)
	Author(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
}

// IProfileService defines the interface for profile operations
type IProfileService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, input *UpdateProfileInput) (*models.Profile, error)
}

// IImageService defines the interface for image storage operations
type IImageService interface {
	Upload(ctx context.Context, userID uuid.UUID, file *multipart.FileHeader, kind ImageKind) (string, error)
}

var (
	_ IAuthService    = (*AuthService)(nil)
	_ IRecipeService  = (*RecipeService)(nil)
	_ IProfileService = (*ProfileService)(nil)
	_ IImageService   = (*ImageService)(nil)
)
