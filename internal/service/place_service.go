// Package service contains the business rules sitting between the HTTP
// handlers and the repositories.
package service

import (
	"context"
	"errors"
	"io"

	"pinpoint/internal/models"
	"pinpoint/internal/repository"
	"pinpoint/internal/storage"
	"pinpoint/internal/validation"

	"gorm.io/gorm"
)

type PlaceService struct {
	placeRepo repository.PlaceRepository
	files     storage.Store
}

type CreatePlaceInput struct {
	UserID      uint
	Name        string
	Description string
	Address     string
	Latitude    *float64
	Longitude   *float64
	Image       io.Reader
	ImageName   string
}

type UpdatePlaceInput struct {
	UserID      uint
	PlaceID     uint
	Name        *string
	Description *string
	Address     *string
	Latitude    *float64
	Longitude   *float64
	Image       io.Reader
	ImageName   string
}

type ListPlacesInput struct {
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

func NewPlaceService(placeRepo repository.PlaceRepository, files storage.Store) *PlaceService {
	return &PlaceService{
		placeRepo: placeRepo,
		files:     files,
	}
}

func (s *PlaceService) CreatePlace(ctx context.Context, in CreatePlaceInput) (*models.Place, error) {
	fields := validation.ValidatePlace(validation.PlaceInput{
		Name:        &in.Name,
		Description: &in.Description,
		Address:     &in.Address,
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
	}, true)
	if fields != nil {
		return nil, models.NewFieldValidationError(fields)
	}

	place := &models.Place{
		UserID:      in.UserID,
		Name:        in.Name,
		Description: in.Description,
		Address:     in.Address,
		Latitude:    *in.Latitude,
		Longitude:   *in.Longitude,
	}

	if in.Image != nil {
		path, err := s.saveImage(in.Image, in.ImageName)
		if err != nil {
			return nil, err
		}
		place.Image = path
	}

	if err := s.placeRepo.Create(ctx, place); err != nil {
		return nil, models.NewInternalError(err)
	}

	return s.GetPlace(ctx, place.ID)
}

func (s *PlaceService) GetPlace(ctx context.Context, id uint) (*models.Place, error) {
	place, err := s.placeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Place", id)
		}
		return nil, models.NewInternalError(err)
	}
	s.resolveImageURL(place)
	return place, nil
}

func (s *PlaceService) ListPlaces(ctx context.Context, in ListPlacesInput) ([]*models.Place, int64, error) {
	places, total, err := s.placeRepo.List(ctx, repository.ListPlacesQuery{
		Search: in.Search,
		UserID: in.UserID,
		LatMin: in.LatMin,
		LatMax: in.LatMax,
		LngMin: in.LngMin,
		LngMax: in.LngMax,
		Sort:   in.Sort,
		Limit:  in.Limit,
		Offset: in.Offset,
	})
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	for _, place := range places {
		s.resolveImageURL(place)
	}
	return places, total, nil
}

func (s *PlaceService) UpdatePlace(ctx context.Context, in UpdatePlaceInput) (*models.Place, error) {
	place, err := s.placeRepo.GetByID(ctx, in.PlaceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Place", in.PlaceID)
		}
		return nil, models.NewInternalError(err)
	}

	if place.UserID != in.UserID {
		return nil, models.NewUnauthorizedError("You can only update your own places")
	}

	fields := validation.ValidatePlace(validation.PlaceInput{
		Name:        in.Name,
		Description: in.Description,
		Address:     in.Address,
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
	}, false)
	if fields != nil {
		return nil, models.NewFieldValidationError(fields)
	}

	if in.Name != nil {
		place.Name = *in.Name
	}
	if in.Description != nil {
		place.Description = *in.Description
	}
	if in.Address != nil {
		place.Address = *in.Address
	}
	if in.Latitude != nil {
		place.Latitude = *in.Latitude
	}
	if in.Longitude != nil {
		place.Longitude = *in.Longitude
	}

	if in.Image != nil {
		path, err := s.saveImage(in.Image, in.ImageName)
		if err != nil {
			return nil, err
		}
		old := place.Image
		place.Image = path
		if old != "" && old != path && s.files != nil {
			_ = s.files.Remove(old)
		}
	}

	if err := s.placeRepo.Update(ctx, place); err != nil {
		return nil, models.NewInternalError(err)
	}

	return s.GetPlace(ctx, place.ID)
}

func (s *PlaceService) DeletePlace(ctx context.Context, userID, placeID uint) error {
	place, err := s.placeRepo.GetByID(ctx, placeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Place", placeID)
		}
		return models.NewInternalError(err)
	}

	if place.UserID != userID {
		return models.NewUnauthorizedError("You can only delete your own places")
	}

	if err := s.placeRepo.Delete(ctx, placeID); err != nil {
		return models.NewInternalError(err)
	}

	if place.Image != "" && s.files != nil {
		_ = s.files.Remove(place.Image)
	}

	return nil
}

func (s *PlaceService) saveImage(r io.Reader, name string) (string, error) {
	if s.files == nil {
		return "", models.NewInternalError(errors.New("file storage not configured"))
	}
	path, err := s.files.Save(r, name)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrTooLarge), errors.Is(err, storage.ErrNotImage):
			return "", models.NewFieldValidationError(map[string][]string{
				"image": {err.Error()},
			})
		default:
			return "", models.NewInternalError(err)
		}
	}
	return path, nil
}

func (s *PlaceService) resolveImageURL(place *models.Place) {
	if place.Image == "" || s.files == nil {
		place.ImageURL = nil
		return
	}
	url := s.files.URL(place.Image)
	place.ImageURL = &url
}
