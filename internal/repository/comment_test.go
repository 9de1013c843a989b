package repository

import (
	"context"
	"testing"

	"pinpoint/internal/cache"
	"pinpoint/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCommentRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "alice")
	place := seedPlace(t, db, user.ID, "Spot", 1, 1)

	comment := &models.Comment{PlaceID: place.ID, UserID: user.ID, Text: "Great view"}
	require.NoError(t, repo.Create(ctx, comment))
	require.NotZero(t, comment.ID)

	got, err := repo.GetByID(ctx, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, "Great view", got.Text)
	assert.Equal(t, "alice", got.User.Username)
}

func TestCommentRepository_ListByPlace(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "bob")
	place := seedPlace(t, db, user.ID, "Spot", 1, 1)
	other := seedPlace(t, db, user.ID, "Other", 2, 2)

	for _, text := range []string{"first", "second", "third"} {
		require.NoError(t, repo.Create(ctx, &models.Comment{PlaceID: place.ID, UserID: user.ID, Text: text}))
	}
	require.NoError(t, repo.Create(ctx, &models.Comment{PlaceID: other.ID, UserID: user.ID, Text: "elsewhere"}))

	comments, total, err := repo.ListByPlace(ctx, place.ID, "", 15, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, comments, 3)
	for _, c := range comments {
		assert.Equal(t, place.ID, c.PlaceID)
	}
}

func TestCommentRepository_ListByPlaceSortAndPage(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "carol")
	place := seedPlace(t, db, user.ID, "Spot", 1, 1)

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Create(ctx, &models.Comment{PlaceID: place.ID, UserID: user.ID, Text: "c"}))
	}

	comments, total, err := repo.ListByPlace(ctx, place.ID, "created_at", 2, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.Len(t, comments, 2)
	assert.LessOrEqual(t, comments[0].ID, comments[1].ID, "ascending sort")

	// unknown sort falls back without error
	comments, _, err = repo.ListByPlace(ctx, place.ID, "votes", 15, 0)
	require.NoError(t, err)
	assert.Len(t, comments, 5)
}

func TestCommentRepository_UpdateAndDelete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "dave")
	place := seedPlace(t, db, user.ID, "Spot", 1, 1)
	comment := &models.Comment{PlaceID: place.ID, UserID: user.ID, Text: "before"}
	require.NoError(t, repo.Create(ctx, comment))

	comment.Text = "after"
	require.NoError(t, repo.Update(ctx, comment))

	got, err := repo.GetByID(ctx, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, "after", got.Text)

	require.NoError(t, repo.Delete(ctx, comment.ID))
	_, err = repo.GetByID(ctx, comment.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCommentRepository_MutationsRefreshCachedPlace(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	cache.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { cache.SetClient(nil) })

	db := setupTestDB(t)
	placeRepo := NewPlaceRepository(db)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "erin")
	place := seedPlace(t, db, user.ID, "Spot", 1, 1)

	// Prime the place cache with zero comments.
	got, err := placeRepo.GetByID(ctx, place.ID)
	require.NoError(t, err)
	require.Zero(t, got.CommentsCount)
	require.True(t, mr.Exists(cache.PlaceKey(place.ID)))

	comment := &models.Comment{PlaceID: place.ID, UserID: user.ID, Text: "fresh"}
	require.NoError(t, repo.Create(ctx, comment))

	got, err = placeRepo.GetByID(ctx, place.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.CommentsCount, "create must evict the cached place")

	comment.Text = "edited"
	require.NoError(t, repo.Update(ctx, comment))
	assert.False(t, mr.Exists(cache.PlaceKey(place.ID)), "update must evict the cached place")

	_, err = placeRepo.GetByID(ctx, place.ID)
	require.NoError(t, err)
	require.NoError(t, repo.Delete(ctx, comment.ID))

	got, err = placeRepo.GetByID(ctx, place.ID)
	require.NoError(t, err)
	assert.Zero(t, got.CommentsCount, "delete must evict the cached place")
}
