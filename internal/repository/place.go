package repository

import (
	"context"
	"strings"

	"pinpoint/internal/cache"
	"pinpoint/internal/models"

	"gorm.io/gorm"
)

// ListPlacesQuery bundles the filters, sort, and page window for a listing.
// Bounding box filtering only applies when all four coordinates are present.
type ListPlacesQuery struct {
	Search string
	UserID uint
	LatMin *float64
	LatMax *float64
	LngMin *float64
	LngMax *float64
	Sort   string
	Limit  int
	Offset int
}

// PlaceRepository defines the interface for place data operations
type PlaceRepository interface {
	Create(ctx context.Context, place *models.Place) error
	GetByID(ctx context.Context, id uint) (*models.Place, error)
	List(ctx context.Context, q ListPlacesQuery) ([]*models.Place, int64, error)
	Update(ctx context.Context, place *models.Place) error
	Delete(ctx context.Context, id uint) error
}

type placeRepository struct {
	db *gorm.DB
}

// NewPlaceRepository creates a new place repository
func NewPlaceRepository(db *gorm.DB) PlaceRepository {
	return &placeRepository{db: db}
}

func (r *placeRepository) Create(ctx context.Context, place *models.Place) error {
	return r.db.WithContext(ctx).Create(place).Error
}

func (r *placeRepository) GetByID(ctx context.Context, id uint) (*models.Place, error) {
	var place models.Place
	err := cache.Aside(ctx, cache.PlaceKey(id), &place, cache.PlaceTTL, func() error {
		return r.applyPlaceDetails(r.db.WithContext(ctx)).
			Preload("User").
			First(&place, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &place, nil
}

func (r *placeRepository) List(ctx context.Context, q ListPlacesQuery) ([]*models.Place, int64, error) {
	base := r.db.WithContext(ctx).Model(&models.Place{})

	if q.Search != "" {
		// LOWER/LIKE instead of ILIKE so the query runs on both Postgres and SQLite.
		like := "%" + strings.ToLower(q.Search) + "%"
		base = base.Where(
			"LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(address) LIKE ?",
			like, like, like,
		)
	}

	if q.UserID != 0 {
		base = base.Where("user_id = ?", q.UserID)
	}

	if q.LatMin != nil && q.LatMax != nil && q.LngMin != nil && q.LngMax != nil {
		base = base.
			Where("latitude BETWEEN ? AND ?", *q.LatMin, *q.LatMax).
			Where("longitude BETWEEN ? AND ?", *q.LngMin, *q.LngMax)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var places []*models.Place
	err := r.applySort(r.applyPlaceDetails(base), q.Sort).
		Preload("User").
		Limit(q.Limit).
		Offset(q.Offset).
		Find(&places).Error
	if err != nil {
		return nil, 0, err
	}

	return places, total, nil
}

func (r *placeRepository) Update(ctx context.Context, place *models.Place) error {
	if err := r.db.WithContext(ctx).Save(place).Error; err != nil {
		return err
	}
	cache.InvalidatePlace(ctx, place.ID)
	return nil
}

// Delete soft-deletes the place and its comments in one transaction, so no
// orphaned comments survive under a deleted place.
func (r *placeRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("place_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Place{}, id).Error
	})
	if err != nil {
		return err
	}
	cache.InvalidatePlace(ctx, id)
	return nil
}

// placeSortColumns is the allow-list of client-sortable columns.
var placeSortColumns = map[string]string{
	"name":       "name",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

// applySort translates the "-column" convention into ORDER BY. Unknown columns
// silently fall back to newest-first.
func (r *placeRepository) applySort(db *gorm.DB, sort string) *gorm.DB {
	direction := "ASC"
	if strings.HasPrefix(sort, "-") {
		direction = "DESC"
		sort = sort[1:]
	}
	column, ok := placeSortColumns[sort]
	if !ok {
		return db.Order("created_at DESC")
	}
	return db.Order(column + " " + direction)
}

// applyPlaceDetails adds the comments count as a subquery so listings avoid N+1.
func (r *placeRepository) applyPlaceDetails(db *gorm.DB) *gorm.DB {
	return db.Select("places.*, " +
		"(SELECT COUNT(*) FROM comments WHERE comments.place_id = places.id AND comments.deleted_at IS NULL) as comments_count")
}
