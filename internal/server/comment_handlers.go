package server

import (
	"commentboard/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ListComments returns all comments ordered by date descending.
func (s *Server) ListComments(c *fiber.Ctx) error {
	ctx := c.UserContext()

	comments, err := s.commentService.ListComments(ctx)
	if err != nil {
		return s.respondServiceError(c, err)
	}

	return c.JSON(comments)
}

// CreateComment creates a comment attributed to the fixed Admin identity.
func (s *Server) CreateComment(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req struct {
		Text string `json:"text"`
	}
	// A non-string text value fails to parse here, which is a 400 like a
	// missing one.
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Text is required and must be a string"))
	}

	created, err := s.commentService.CreateComment(ctx, req.Text)
	if err != nil {
		return s.respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// UpdateComment rewrites the text of the comment matching the path id.
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	ctx := c.UserContext()

	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	var req struct {
		Text string `json:"text"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Text is required and must be a string"))
	}

	updated, err := s.commentService.UpdateComment(ctx, id, req.Text)
	if err != nil {
		return s.respondServiceError(c, err)
	}

	return c.JSON(updated)
}

// DeleteComment removes the comment matching the path id and echoes it back.
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	ctx := c.UserContext()

	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	deleted, err := s.commentService.DeleteComment(ctx, id)
	if err != nil {
		return s.respondServiceError(c, err)
	}

	return c.JSON(models.DeleteCommentResponse{
		Message:        "Comment deleted successfully",
		DeletedComment: *deleted,
	})
}
