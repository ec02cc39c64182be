package server

import (
	"errors"
	"log/slog"

	"plume/internal/middleware"
	"plume/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+param))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// parsePage extracts the 1-based page query parameter. Out-of-range values
// are left to the pagination layer, which clamps them.
func parsePage(c *fiber.Ctx) int {
	return c.QueryInt("page", 1)
}

// viewerID returns the authenticated viewer's id, or zero for anonymous
// requests.
func viewerID(c *fiber.Ctx) uint {
	if id, ok := c.Locals("userID").(uint); ok {
		return id
	}
	return 0
}

// respondServiceError maps the application error taxonomy onto HTTP.
// Anonymous callers of identity-required operations are redirected to the
// login page rather than handed a bare 401.
func respondServiceError(c *fiber.Ctx, err error) error {
	switch {
	case models.IsNotFound(err):
		return models.RespondWithError(c, fiber.StatusNotFound, err)
	case models.IsValidationError(err):
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	case models.IsPermissionDenied(err):
		return models.RespondWithError(c, fiber.StatusForbidden, err)
	case models.IsAuthenticationRequired(err):
		return c.Redirect(middleware.LoginPath, fiber.StatusSeeOther)
	default:
		middleware.Logger.ErrorContext(c.UserContext(), "request failed", slog.String("error", err.Error()))
		return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
	}
}
