package server

import (
	"github.com/gofiber/fiber/v2"
)

// FollowAuthor handles POST /api/users/:username/follow
//
// Following an author twice and following yourself both succeed without
// changing anything.
func (s *Server) FollowAuthor(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	author, err := s.userRepo.GetByUsername(c.Context(), c.Params("username"))
	if err != nil {
		return respondServiceError(c, err)
	}

	if err := s.followService.Follow(c.Context(), userID, author.ID); err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusNoContent).Send(nil)
}

// UnfollowAuthor handles DELETE /api/users/:username/follow
func (s *Server) UnfollowAuthor(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	author, err := s.userRepo.GetByUsername(c.Context(), c.Params("username"))
	if err != nil {
		return respondServiceError(c, err)
	}

	if err := s.followService.Unfollow(c.Context(), userID, author.ID); err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusNoContent).Send(nil)
}
