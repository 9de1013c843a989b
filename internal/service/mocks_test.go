package service

import (
	"context"
	"io"

	"pinpoint/internal/models"
	"pinpoint/internal/repository"

	"github.com/stretchr/testify/mock"
)

type MockPlaceRepository struct {
	mock.Mock
}

func (m *MockPlaceRepository) Create(ctx context.Context, place *models.Place) error {
	args := m.Called(ctx, place)
	return args.Error(0)
}

func (m *MockPlaceRepository) GetByID(ctx context.Context, id uint) (*models.Place, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Place), args.Error(1)
}

func (m *MockPlaceRepository) List(ctx context.Context, q repository.ListPlacesQuery) ([]*models.Place, int64, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*models.Place), args.Get(1).(int64), args.Error(2)
}

func (m *MockPlaceRepository) Update(ctx context.Context, place *models.Place) error {
	args := m.Called(ctx, place)
	return args.Error(0)
}

func (m *MockPlaceRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) ListByPlace(ctx context.Context, placeID uint, sort string, limit, offset int) ([]*models.Comment, int64, error) {
	args := m.Called(ctx, placeID, sort, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*models.Comment), args.Get(1).(int64), args.Error(2)
}

func (m *MockCommentRepository) Update(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockFileStore struct {
	mock.Mock
}

func (m *MockFileStore) Save(r io.Reader, originalName string) (string, error) {
	args := m.Called(r, originalName)
	return args.String(0), args.Error(1)
}

func (m *MockFileStore) Remove(relPath string) error {
	args := m.Called(relPath)
	return args.Error(0)
}

func (m *MockFileStore) URL(relPath string) string {
	args := m.Called(relPath)
	return args.String(0)
}
