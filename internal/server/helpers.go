package server

import (
	"errors"
	"log/slog"

	"commentboard/internal/middleware"
	"commentboard/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper.  Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// parseID extracts the :id route parameter as an integer. On a parse failure
// it writes a 400 JSON response and returns errResponseWritten; callers should
// check: if err != nil { return nil }. Zero and negative ids parse fine and
// fall through to the store, where they match no row and surface as 404.
func (s *Server) parseID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid comment ID"))
		return 0, errResponseWritten
	}
	if id < 0 {
		// Ids are assigned from 1; avoid wrapping negatives into huge uints.
		id = 0
	}
	return uint(id), nil
}

// respondServiceError maps service-layer errors onto HTTP statuses. Validation
// and not-found errors pass through; anything else is a store failure, logged
// with request context and surfaced as an opaque 500.
func (s *Server) respondServiceError(c *fiber.Ctx, err error) error {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case models.CodeValidation:
			return models.RespondWithError(c, fiber.StatusBadRequest, appErr)
		case models.CodeNotFound:
			return models.RespondWithError(c, fiber.StatusNotFound, appErr)
		}
	}

	middleware.Logger.ErrorContext(c.UserContext(), "comment store failure",
		slog.String("method", c.Method()),
		slog.String("path", c.Path()),
		slog.String("error", err.Error()),
	)
	return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(nil))
}
