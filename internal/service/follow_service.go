package service

import (
	"context"

	"plume/internal/models"
	"plume/internal/repository"
)

// FollowService maintains the directed follow graph.
type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

// NewFollowService returns a new FollowService.
func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *FollowService {
	return &FollowService{
		followRepo: followRepo,
		userRepo:   userRepo,
	}
}

// Follow creates the edge from userID to authorID. Following yourself and
// following an author twice are both silent no-ops, never errors.
func (s *FollowService) Follow(ctx context.Context, userID, authorID uint) error {
	if userID == authorID {
		return nil
	}
	if _, err := s.userRepo.GetByID(ctx, authorID); err != nil {
		return err
	}
	return s.followRepo.Create(ctx, &models.Follow{UserID: userID, AuthorID: authorID})
}

// Unfollow removes the edge if present. Removing an absent edge is a no-op.
func (s *FollowService) Unfollow(ctx context.Context, userID, authorID uint) error {
	return s.followRepo.Delete(ctx, userID, authorID)
}

// IsFollowing reports whether userID follows authorID.
func (s *FollowService) IsFollowing(ctx context.Context, userID, authorID uint) (bool, error) {
	return s.followRepo.Exists(ctx, userID, authorID)
}

// ListFollowedAuthorIDs returns the ids of every author userID follows.
func (s *FollowService) ListFollowedAuthorIDs(ctx context.Context, userID uint) ([]uint, error) {
	return s.followRepo.ListAuthorIDs(ctx, userID)
}
