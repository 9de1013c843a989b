package service

import (
	"context"
	"errors"

	"pinpoint/internal/models"
	"pinpoint/internal/repository"
	"pinpoint/internal/validation"

	"gorm.io/gorm"
)

type CommentService struct {
	commentRepo repository.CommentRepository
	placeRepo   repository.PlaceRepository
}

type CreateCommentInput struct {
	UserID  uint
	PlaceID uint
	Text    string
}

type UpdateCommentInput struct {
	UserID    uint
	CommentID uint
	Text      string
}

type ListCommentsInput struct {
	PlaceID uint
	Sort    string
	Limit   int
	Offset  int
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	placeRepo repository.PlaceRepository,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		placeRepo:   placeRepo,
	}
}

func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	if _, err := s.placeRepo.GetByID(ctx, in.PlaceID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Place", in.PlaceID)
		}
		return nil, models.NewInternalError(err)
	}

	if fields := validation.ValidateCommentText(in.Text); fields != nil {
		return nil, models.NewFieldValidationError(fields)
	}

	comment := &models.Comment{
		PlaceID: in.PlaceID,
		UserID:  in.UserID,
		Text:    in.Text,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, models.NewInternalError(err)
	}

	created, err := s.commentRepo.GetByID(ctx, comment.ID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return created, nil
}

func (s *CommentService) ListComments(ctx context.Context, in ListCommentsInput) ([]*models.Comment, int64, error) {
	if _, err := s.placeRepo.GetByID(ctx, in.PlaceID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, models.NewNotFoundError("Place", in.PlaceID)
		}
		return nil, 0, models.NewInternalError(err)
	}

	comments, total, err := s.commentRepo.ListByPlace(ctx, in.PlaceID, in.Sort, in.Limit, in.Offset)
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return comments, total, nil
}

func (s *CommentService) UpdateComment(ctx context.Context, in UpdateCommentInput) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Comment", in.CommentID)
		}
		return nil, models.NewInternalError(err)
	}

	if comment.UserID != in.UserID {
		return nil, models.NewUnauthorizedError("You can only update your own comments")
	}

	if fields := validation.ValidateCommentText(in.Text); fields != nil {
		return nil, models.NewFieldValidationError(fields)
	}

	comment.Text = in.Text
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, models.NewInternalError(err)
	}

	updated, err := s.commentRepo.GetByID(ctx, comment.ID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return updated, nil
}

func (s *CommentService) DeleteComment(ctx context.Context, userID, commentID uint) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Comment", commentID)
		}
		return models.NewInternalError(err)
	}

	if comment.UserID != userID {
		return models.NewUnauthorizedError("You can only delete your own comments")
	}

	if err := s.commentRepo.Delete(ctx, commentID); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
