package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	domain "github.com/Saw-Kyaw-Myint/bulletin-board/internal/domain/auth"
	"github.com/Saw-Kyaw-Myint/bulletin-board/internal/infrastructure/db/models"
)

type RefreshTokenRepository struct {
	db *gorm.DB
}

func NewRefreshTokenRepository(db *gorm.DB) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

func (r *RefreshTokenRepository) Save(ctx context.Context, token *domain.RefreshToken) error {
	row := models.RefreshToken{
		UserID:    token.UserID,
		TokenHash: token.TokenHash,
		Revoked:   token.Revoked,
		ExpiresAt: token.ExpiresAt,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("save refresh token: %w", err)
	}
	token.ID = row.ID
	token.CreatedAt = row.CreatedAt
	return nil
}

func (r *RefreshTokenRepository) FindByHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error) {
	var row models.RefreshToken
	err := r.db.WithContext(ctx).Where("token_hash = ?", tokenHash).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTokenNotFound
		}
		return nil, fmt.Errorf("find refresh token: %w", err)
	}
	return &domain.RefreshToken{
		ID:        row.ID,
		UserID:    row.UserID,
		TokenHash: row.TokenHash,
		Revoked:   row.Revoked,
		ExpiresAt: row.ExpiresAt,
		CreatedAt: row.CreatedAt,
	}, nil
}

func (r *RefreshTokenRepository) Revoke(ctx context.Context, tokenHash string) error {
	result := r.db.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("token_hash = ? AND revoked = false", tokenHash).
		Update("revoked", true)
	if result.Error != nil {
		return fmt.Errorf("revoke refresh token: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrTokenNotFound
	}
	return nil
}

func (r *RefreshTokenRepository) RevokeAllForUser(ctx context.Context, userID int64) error {
	err := r.db.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("user_id = ?", userID).
		Update("revoked", true).Error
	if err != nil {
		return fmt.Errorf("revoke refresh tokens: %w", err)
	}
	return nil
}

type PasswordResetRepository struct {
	db *gorm.DB
}

func NewPasswordResetRepository(db *gorm.DB) *PasswordResetRepository {
	return &PasswordResetRepository{db: db}
}

func (r *PasswordResetRepository) Save(ctx context.Context, reset *domain.PasswordReset) error {
	row := models.PasswordReset{
		Email: reset.Email,
		Token: reset.Token,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("save password reset: %w", err)
	}
	reset.ID = row.ID
	reset.CreatedAt = row.CreatedAt
	return nil
}

func (r *PasswordResetRepository) FindByToken(ctx context.Context, token string) (*domain.PasswordReset, error) {
	var row models.PasswordReset
	err := r.db.WithContext(ctx).Where("token = ?", token).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrResetNotFound
		}
		return nil, fmt.Errorf("find password reset: %w", err)
	}
	return &domain.PasswordReset{
		ID:        row.ID,
		Email:     row.Email,
		Token:     row.Token,
		CreatedAt: row.CreatedAt,
	}, nil
}

func (r *PasswordResetRepository) DeleteByEmail(ctx context.Context, email string) error {
	err := r.db.WithContext(ctx).Where("email = ?", email).Delete(&models.PasswordReset{}).Error
	if err != nil {
		return fmt.Errorf("delete password resets: %w", err)
	}
	return nil
}
