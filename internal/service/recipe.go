package service

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/forkful/backend/internal/form"
	"github.com/forkful/backend/internal/models"
)

// ErrNotOwned is returned when an ownership-scoped write matches zero rows:
// the recipe either belongs to someone else or no longer exists. The two are
// deliberately indistinguishable to the caller.
var ErrNotOwned = errors.New("recipe not found or not owned by caller")

// FeedPageSize caps the public feed query.
const FeedPageSize = 20

// RecipeService handles recipe CRUD and the feed/dashboard/detail queries.
// All writes are scoped by both recipe id and owning user id.
type RecipeService struct {
	db    *gorm.DB
	cache *ViewCache
}

// NewRecipeService creates a new RecipeService instance.
func NewRecipeService(db *gorm.DB, cache *ViewCache) *RecipeService {
	return &RecipeService{db: db, cache: cache}
}

// Create persists a new recipe owned by userID. New recipes are public.
func (s *RecipeService) Create(ctx context.Context, userID uuid.UUID, input *form.RecipeInput) (*models.Recipe, error) {
	recipe := &models.Recipe{
		UserID:       userID,
		Title:        input.Title,
		Description:  input.Description,
		Ingredients:  models.StringList(input.Ingredients),
		Steps:        models.StringList(input.Steps),
		PrepTimeMins: input.PrepTimeMins,
		CookTimeMins: input.CookTimeMins,
		Category:     input.Category,
		ImageURL:     input.ImageURL,
		IsPublic:     true,
	}
	if err := s.db.WithContext(ctx).Create(recipe).Error; err != nil {
		return nil, err
	}

	s.cache.InvalidateFeed(ctx)
	s.cache.InvalidateDashboard(ctx, userID)
	return recipe, nil
}

// Update rewrites the editable fields of a recipe. The write is scoped by
// id AND user_id, so a non-owned id affects zero rows and returns
// ErrNotOwned. Ownership and visibility are never touched.
func (s *RecipeService) Update(ctx context.Context, userID, recipeID uuid.UUID, input *form.RecipeInput) (*models.Recipe, error) {
	updates := map[string]interface{}{
		"title":          input.Title,
		"description":    input.Description,
		"ingredients":    models.StringList(input.Ingredients),
		"steps":          models.StringList(input.Steps),
		"prep_time_mins": input.PrepTimeMins,
		"cook_time_mins": input.CookTimeMins,
		"category":       input.Category,
		"image_url":      input.ImageURL,
	}

	result := s.db.WithContext(ctx).
		Model(&models.Recipe{}).
		Where("id = ? AND user_id = ?", recipeID, userID).
		Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotOwned
	}

	s.cache.InvalidateFeed(ctx)
	s.cache.InvalidateDashboard(ctx, userID)
	s.cache.InvalidateDetail(ctx, recipeID)

	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", recipeID).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

// Delete removes a recipe, scoped by id AND user_id with the same
// zero-rows-means-denied semantics as Update.
func (s *RecipeService) Delete(ctx context.Context, userID, recipeID uuid.UUID) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", recipeID, userID).
		Delete(&models.Recipe{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotOwned
	}

	s.cache.InvalidateFeed(ctx)
	s.cache.InvalidateDashboard(ctx, userID)
	s.cache.InvalidateDetail(ctx, recipeID)
	return nil
}

// Feed lists public recipes newest-first, optionally narrowed by a
// case-insensitive substring match on title and an exact category match,
// capped at FeedPageSize.
func (s *RecipeService) Feed(ctx context.Context, search, category string) ([]*models.Recipe, error) {
	query := s.db.WithContext(ctx).Where("is_public = ?", true)

	if search != "" {
		if s.db.Dialector.Name() == "postgres" {
			query = query.Where("title ILIKE ?", "%"+search+"%")
		} else {
			query = query.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(search)+"%")
		}
	}
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var recipes []models.Recipe
	if err := query.Order("created_at DESC").Limit(FeedPageSize).Find(&recipes).Error; err != nil {
		return nil, err
	}
	return toPointers(recipes), nil
}

// Categories returns the distinct categories present on public recipes,
// sorted. It powers the feed's category filter chips.
func (s *RecipeService) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	err := s.db.WithContext(ctx).
		Model(&models.Recipe{}).
		Where("is_public = ? AND category <> ''", true).
		Distinct().
		Pluck("category", &categories).Error
	if err != nil {
		return nil, err
	}
	sort.Strings(categories)
	return categories, nil
}

// Dashboard lists all recipes owned by userID newest-first, regardless of
// visibility.
func (s *RecipeService) Dashboard(ctx context.Context, userID uuid.UUID) ([]*models.Recipe, error) {
	var recipes []models.Recipe
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&recipes).Error
	if err != nil {
		return nil, err
	}
	return toPointers(recipes), nil
}

// Detail resolves a single recipe. Anonymous viewers only see public
// records, so a private recipe is indistinguishable from a missing one:
// both return gorm.ErrRecordNotFound.
func (s *RecipeService) Detail(ctx context.Context, viewerID *uuid.UUID, recipeID uuid.UUID) (*models.Recipe, error) {
	query := s.db.WithContext(ctx).Where("id = ?", recipeID)
	if viewerID == nil {
		query = query.Where("is_public = ?", true)
	} else {
		query = query.Where("is_public = ? OR user_id = ?", true, *viewerID)
	}

	var recipe models.Recipe
	if err := query.First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

// CanEdit reports whether userID owns the recipe, via an existence check
// scoped by both id and owner.
func (s *RecipeService) CanEdit(ctx context.Context, userID, recipeID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Recipe{}).
		Where("id = ? AND user_id = ?", recipeID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Author fetches the owning profile for a recipe's detail view.
func (s *RecipeService) Author(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	if err := s.db.WithContext(ctx).First(&profile, "id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func toPointers(recipes []models.Recipe) []*models.Recipe {
	result := make([]*models.Recipe, len(recipes))
	for i := range recipes {
		result[i] = &recipes[i]
	}
	return result
}
