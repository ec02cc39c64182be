package server

import (
	"log/slog"

	"plume/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// ClearFeedCache handles POST /api/admin/cache/clear
//
// The next home feed read recomposes from storage. TTL expiry is the
// regular invalidation path; this exists for operators.
func (s *Server) ClearFeedCache(c *fiber.Ctx) error {
	s.feedCache.Clear(c.Context())
	middleware.Logger.InfoContext(c.UserContext(), "home feed cache cleared by admin")

	return c.JSON(fiber.Map{"status": "cleared"})
}

// DeleteUser handles DELETE /api/admin/users/:id
//
// Removes the user together with their posts, comments, and follow edges.
func (s *Server) DeleteUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if _, err := s.userRepo.GetByID(c.Context(), id); err != nil {
		return respondServiceError(c, err)
	}

	if err := s.userRepo.Delete(c.Context(), id); err != nil {
		return respondServiceError(c, err)
	}

	middleware.Logger.InfoContext(c.UserContext(), "user deleted by admin", slog.Uint64("deleted_user_id", uint64(id)))
	return c.Status(fiber.StatusNoContent).Send(nil)
}
