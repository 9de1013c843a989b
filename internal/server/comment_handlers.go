package server

import (
	"pinpoint/internal/models"
	"pinpoint/internal/service"

	"github.com/gofiber/fiber/v2"
)

type commentRequest struct {
	Text string `json:"text"`
}

// GetComments lists the comments on a place, newest first by default.
func (s *Server) GetComments(c *fiber.Ctx) error {
	placeID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	p := parsePagination(c)

	comments, total, err := s.commentService.ListComments(c.Context(), service.ListCommentsInput{
		PlaceID: placeID,
		Sort:    c.Query("sort"),
		Limit:   p.PerPage,
		Offset:  p.Offset,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(paginated(c, comments, p, total))
}

// CreateComment adds a comment to a place.
func (s *Server) CreateComment(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	placeID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req commentRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.CreateComment(c.Context(), service.CreateCommentInput{
		UserID:  userID,
		PlaceID: placeID,
		Text:    req.Text,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"data": comment,
	})
}

// UpdateComment edits a comment owned by the caller.
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req commentRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.UpdateComment(c.Context(), service.UpdateCommentInput{
		UserID:    userID,
		CommentID: commentID,
		Text:      req.Text,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"data": comment,
	})
}

// DeleteComment removes a comment owned by the caller.
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.commentService.DeleteComment(c.Context(), userID, commentID); err != nil {
		return respondServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
