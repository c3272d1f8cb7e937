package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/forkful/backend/internal/models"
	"github.com/forkful/backend/internal/types"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("an account with this email already exists")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
)

const (
	tokenLifetime      = 24 * time.Hour
	resetTokenLifetime = time.Hour
)

// AuthService owns account creation, credential checks, token issue and
// validation, and the password-reset flow. Revoked tokens and pending reset
// tokens live in Redis.
type AuthService struct {
	db        *gorm.DB
	redis     *redis.Client
	jwtSecret string
	siteURL   string
	mailer    Mailer
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(db *gorm.DB, redisClient *redis.Client, jwtSecret, siteURL string, mailer Mailer) *AuthService {
	return &AuthService{
		db:        db,
		redis:     redisClient,
		jwtSecret: jwtSecret,
		siteURL:   siteURL,
		mailer:    mailer,
	}
}

// Register creates a user and its profile in one transaction and returns a
// signed token for the new identity.
func (s *AuthService) Register(ctx context.Context, email, password, displayName string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var existing models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&existing).Error; err == nil {
		return "", ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	user := models.User{
		Email:        email,
		PasswordHash: string(hash),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		// The profile shares the user's id and is created implicitly with
		// the account.
		profile := models.Profile{
			ID:          user.ID,
			DisplayName: strings.TrimSpace(displayName),
		}
		return tx.Create(&profile).Error
	})
	if err != nil {
		return "", err
	}

	return s.generateToken(user.ID)
}

// Login checks credentials and returns a signed token. Unknown emails and
// wrong passwords are the same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.generateToken(user.ID)
}

// Logout revokes a token by denylisting it until its natural expiry.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	claims, err := s.parseToken(token)
	if err != nil {
		// Already invalid; nothing to revoke.
		return nil
	}

	ttl := tokenLifetime
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}
	if ttl <= 0 {
		return nil
	}
	return s.redis.Set(ctx, denylistKey(token), "1", ttl).Err()
}

// ValidateToken verifies signature, expiry and the revocation denylist.
func (s *AuthService) ValidateToken(token string) (*types.TokenClaims, error) {
	claims, err := s.parseToken(token)
	if err != nil {
		return nil, err
	}

	if s.redis != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if n, err := s.redis.Exists(ctx, denylistKey(token)).Result(); err == nil && n > 0 {
			return nil, errors.New("token has been revoked")
		}
	}

	return claims, nil
}

// RequestPasswordReset stores a single-use reset token and mails the reset
// link. Unknown emails report success so the endpoint cannot be used to
// enumerate accounts.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil
	}

	token := uuid.New().String()
	if err := s.redis.Set(ctx, resetKey(token), user.ID.String(), resetTokenLifetime).Err(); err != nil {
		return err
	}

	link := fmt.Sprintf("%s/reset-password?token=%s", strings.TrimRight(s.siteURL, "/"), token)
	body := fmt.Sprintf("Someone requested a password reset for your account.\n\nReset your password: %s\n\nIf this wasn't you, ignore this email.", link)
	return s.mailer.SendEmail(email, "Reset your password", body)
}

// ResetPassword consumes a reset token and replaces the user's password.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	userIDStr, err := s.redis.GetDel(ctx, resetKey(token)).Result()
	if err == redis.Nil {
		return ErrInvalidResetToken
	}
	if err != nil {
		return err
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return ErrInvalidResetToken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	result := s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Update("password_hash", string(hash))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInvalidResetToken
	}
	return nil
}

func (s *AuthService) generateToken(userID uuid.UUID) (string, error) {
	claims := &types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenLifetime)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		UserID: userID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *AuthService) parseToken(tokenString string) (*types.TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &types.TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*types.TokenClaims)
	if !ok || !token.Valid || claims.UserID == uuid.Nil {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

func denylistKey(token string) string {
	return "auth:denylist:" + token
}

func resetKey(token string) string {
	return "auth:reset:" + token
}
