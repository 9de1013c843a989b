package repository

import (
	"context"
	"strings"

	"pinpoint/internal/cache"
	"pinpoint/internal/models"

	"gorm.io/gorm"
)

// CommentRepository defines interface for comment operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	ListByPlace(ctx context.Context, placeID uint, sort string, limit, offset int) ([]*models.Comment, int64, error)
	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, id uint) error
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return err
	}
	// The parent place caches comments_count; drop it so reads see the new total.
	cache.InvalidatePlace(ctx, comment.PlaceID)
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).Preload("User").First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) ListByPlace(
	ctx context.Context,
	placeID uint,
	sort string,
	limit, offset int,
) ([]*models.Comment, int64, error) {
	base := r.db.WithContext(ctx).Model(&models.Comment{}).Where("place_id = ?", placeID)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var comments []*models.Comment
	err := r.applySort(base, sort).
		Preload("User").
		Limit(limit).
		Offset(offset).
		Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

func (r *commentRepository) Update(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Save(comment).Error; err != nil {
		return err
	}
	cache.InvalidatePlace(ctx, comment.PlaceID)
	return nil
}

func (r *commentRepository) Delete(ctx context.Context, id uint) error {
	var comment models.Comment
	if err := r.db.WithContext(ctx).Select("id", "place_id").First(&comment, id).Error; err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Delete(&models.Comment{}, id).Error; err != nil {
		return err
	}
	cache.InvalidatePlace(ctx, comment.PlaceID)
	return nil
}

var commentSortColumns = map[string]string{
	"created_at": "created_at",
	"updated_at": "updated_at",
}

func (r *commentRepository) applySort(db *gorm.DB, sort string) *gorm.DB {
	direction := "ASC"
	if strings.HasPrefix(sort, "-") {
		direction = "DESC"
		sort = sort[1:]
	}
	column, ok := commentSortColumns[sort]
	if !ok {
		return db.Order("created_at DESC")
	}
	return db.Order(column + " " + direction)
}
