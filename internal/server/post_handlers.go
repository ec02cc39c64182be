package server

import (
	"plume/internal/models"
	"plume/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Text    string `json:"text"`
		GroupID *uint  `json:"group_id,omitempty"`
		Image   string `json:"image,omitempty"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(c.Context(), service.CreatePostInput{
		AuthorID: userID,
		Text:     req.Text,
		GroupID:  req.GroupID,
		Image:    req.Image,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// UpdatePost handles PUT /api/posts/:id
//
// Editing someone else's post sends the caller back to the post detail
// instead of applying the edit.
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Text    string `json:"text"`
		GroupID *uint  `json:"group_id,omitempty"`
		Image   string `json:"image,omitempty"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.EditPost(c.Context(), service.EditPostInput{
		ActorID: userID,
		PostID:  postID,
		Text:    req.Text,
		GroupID: req.GroupID,
		Image:   req.Image,
	})
	if err != nil {
		if models.IsPermissionDenied(err) {
			return c.Redirect(c.Path(), fiber.StatusSeeOther)
		}
		return respondServiceError(c, err)
	}

	return c.JSON(post)
}

// CreateComment handles POST /api/posts/:id/comments
func (s *Server) CreateComment(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.AddComment(c.Context(), service.AddCommentInput{
		AuthorID: userID,
		PostID:   postID,
		Text:     req.Text,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}
