package repository

import (
	"context"
	"testing"
	"time"

	"pinpoint/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestTokenRepository_CreateAndRevoke(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTokenRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "alice")
	jti := uuid.NewString()

	require.NoError(t, repo.Create(ctx, &models.AuthToken{
		JTI:       jti,
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	token, err := repo.GetByJTI(ctx, jti)
	require.NoError(t, err)
	assert.False(t, token.Revoked())

	require.NoError(t, repo.Revoke(ctx, jti))

	token, err = repo.GetByJTI(ctx, jti)
	require.NoError(t, err)
	assert.True(t, token.Revoked())
}

func TestTokenRepository_GetByJTINotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTokenRepository(db)

	_, err := repo.GetByJTI(context.Background(), "missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestTokenRepository_DeleteExpired(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTokenRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "bob")
	require.NoError(t, repo.Create(ctx, &models.AuthToken{
		JTI: uuid.NewString(), UserID: user.ID, ExpiresAt: time.Now().Add(-time.Hour),
	}))
	require.NoError(t, repo.Create(ctx, &models.AuthToken{
		JTI: uuid.NewString(), UserID: user.ID, ExpiresAt: time.Now().Add(time.Hour),
	}))

	removed, err := repo.DeleteExpired(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)
}
