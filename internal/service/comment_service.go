package service

import (
	"context"
	"strings"

	"plume/internal/models"
	"plume/internal/repository"
)

const maxCommentTextLen = 10000

// CommentService owns validated comment creation.
type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

// AddCommentInput carries the fields for commenting on a post.
type AddCommentInput struct {
	AuthorID uint
	PostID   uint
	Text     string
}

// NewCommentService returns a new CommentService.
func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

// AddComment attaches a comment to an existing post.
func (s *CommentService) AddComment(ctx context.Context, in AddCommentInput) (*models.Comment, error) {
	if in.AuthorID == 0 {
		return nil, models.NewAuthenticationRequiredError("Sign in to comment")
	}
	if _, err := s.postRepo.GetByID(ctx, in.PostID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Text) == "" {
		return nil, models.NewValidationError("Text is required")
	}
	if len(in.Text) > maxCommentTextLen {
		return nil, models.NewValidationError("Text too long (max 10000 characters)")
	}

	comment := &models.Comment{
		Text:     in.Text,
		PostID:   in.PostID,
		AuthorID: in.AuthorID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	return s.commentRepo.GetByID(ctx, comment.ID)
}
