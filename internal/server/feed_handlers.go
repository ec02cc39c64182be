package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetHomeFeed handles GET /api/feed
//
// The home feed is shared by every viewer and served from the response
// cache when a live entry exists, so a page rendered here may lag storage
// by up to the cache TTL.
func (s *Server) GetHomeFeed(c *fiber.Ctx) error {
	page, err := s.feedService.HomeFeed(c.Context(), parsePage(c))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(page)
}

// GetFollowingFeed handles GET /api/feed/following
func (s *Server) GetFollowingFeed(c *fiber.Ctx) error {
	page, err := s.feedService.FollowingFeed(c.Context(), viewerID(c), parsePage(c))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(page)
}

// GetGroups handles GET /api/groups
func (s *Server) GetGroups(c *fiber.Ctx) error {
	groups, err := s.groupRepo.List(c.Context(), 100, 0)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(groups)
}

// GetGroupFeed handles GET /api/groups/:slug
func (s *Server) GetGroupFeed(c *fiber.Ctx) error {
	feed, err := s.feedService.GroupFeed(c.Context(), c.Params("slug"), parsePage(c))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(feed)
}

// GetProfile handles GET /api/users/:username
func (s *Server) GetProfile(c *fiber.Ctx) error {
	feed, err := s.feedService.ProfileFeed(c.Context(), c.Params("username"), viewerID(c), parsePage(c))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(feed)
}

// GetPostDetail handles GET /api/posts/:id
func (s *Server) GetPostDetail(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	detail, err := s.feedService.PostDetail(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(detail)
}
