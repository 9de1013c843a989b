package repository

import (
	"context"
	"time"

	"pinpoint/internal/models"

	"gorm.io/gorm"
)

// TokenRepository tracks issued access tokens so logout can revoke them
// server-side.
type TokenRepository interface {
	Create(ctx context.Context, token *models.AuthToken) error
	GetByJTI(ctx context.Context, jti string) (*models.AuthToken, error)
	Revoke(ctx context.Context, jti string) error
	DeleteExpired(ctx context.Context) (int64, error)
}

type tokenRepository struct {
	db *gorm.DB
}

// NewTokenRepository creates a new TokenRepository
func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &tokenRepository{db: db}
}

func (r *tokenRepository) Create(ctx context.Context, token *models.AuthToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

func (r *tokenRepository) GetByJTI(ctx context.Context, jti string) (*models.AuthToken, error) {
	var token models.AuthToken
	if err := r.db.WithContext(ctx).Where("jti = ?", jti).First(&token).Error; err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *tokenRepository) Revoke(ctx context.Context, jti string) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&models.AuthToken{}).
		Where("jti = ? AND revoked_at IS NULL", jti).
		Update("revoked_at", now).Error
}

// DeleteExpired hard-deletes tokens past their expiry. Meant for a periodic
// cleanup job.
func (r *tokenRepository) DeleteExpired(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at < ?", time.Now()).
		Delete(&models.AuthToken{})
	return result.RowsAffected, result.Error
}
