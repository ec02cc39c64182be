package service

import (
	"context"
	"strings"

	"plume/internal/models"
	"plume/internal/repository"
)

const maxPostTextLen = 50000

// PostService owns validated create and edit operations on posts.
type PostService struct {
	postRepo  repository.PostRepository
	groupRepo repository.GroupRepository
}

// CreatePostInput carries the fields for publishing a new post.
type CreatePostInput struct {
	AuthorID uint
	Text     string
	GroupID  *uint
	Image    string
}

// EditPostInput carries the fields for editing an existing post.
type EditPostInput struct {
	ActorID uint
	PostID  uint
	Text    string
	GroupID *uint
	Image   string
}

// NewPostService returns a new PostService.
func NewPostService(postRepo repository.PostRepository, groupRepo repository.GroupRepository) *PostService {
	return &PostService{
		postRepo:  postRepo,
		groupRepo: groupRepo,
	}
}

func (s *PostService) validateContent(ctx context.Context, text string, groupID *uint) error {
	if strings.TrimSpace(text) == "" {
		return models.NewValidationError("Text is required")
	}
	if len(text) > maxPostTextLen {
		return models.NewValidationError("Text too long (max 50000 characters)")
	}
	if groupID != nil {
		if _, err := s.groupRepo.GetByID(ctx, *groupID); err != nil {
			if models.IsNotFound(err) {
				return models.NewValidationError("Group does not exist")
			}
			return err
		}
	}
	return nil
}

// CreatePost publishes a post for the author. The new post becomes visible
// in every feed on the next uncached read.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if in.AuthorID == 0 {
		return nil, models.NewAuthenticationRequiredError("Sign in to publish a post")
	}
	if err := s.validateContent(ctx, in.Text, in.GroupID); err != nil {
		return nil, err
	}

	post := &models.Post{
		Text:     in.Text,
		AuthorID: in.AuthorID,
		GroupID:  in.GroupID,
		Image:    in.Image,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	// Reload so the author association is populated for the response.
	return s.postRepo.GetByID(ctx, post.ID)
}

// EditPost updates a post's text, group, and image in place. Only the author
// may edit; id, author, and creation time never change.
func (s *PostService) EditPost(ctx context.Context, in EditPostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != in.ActorID {
		return nil, models.NewPermissionDeniedError("Only the author may edit this post")
	}
	if err := s.validateContent(ctx, in.Text, in.GroupID); err != nil {
		return nil, err
	}

	post.Text = in.Text
	post.GroupID = in.GroupID
	post.Image = in.Image
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(ctx, post.ID)
}
