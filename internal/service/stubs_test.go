package service

import (
	"context"
	"testing"

	"plume/internal/models"

	"github.com/stretchr/testify/assert"
)

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn        func(context.Context, *models.Post) error
	getByIDFn       func(context.Context, uint) (*models.Post, error)
	updateFn        func(context.Context, *models.Post) error
	deleteFn        func(context.Context, uint) error
	listAllFn       func(context.Context) ([]models.Post, error)
	listByGroupFn   func(context.Context, uint) ([]models.Post, error)
	listByAuthorFn  func(context.Context, uint) ([]models.Post, error)
	listFollowedFn  func(context.Context, uint) ([]models.Post, error)
	countByAuthorFn func(context.Context, uint) (int64, error)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	return s.updateFn(ctx, post)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) ListAll(ctx context.Context) ([]models.Post, error) {
	return s.listAllFn(ctx)
}
func (s *postRepoStub) ListByGroup(ctx context.Context, groupID uint) ([]models.Post, error) {
	return s.listByGroupFn(ctx, groupID)
}
func (s *postRepoStub) ListByAuthor(ctx context.Context, authorID uint) ([]models.Post, error) {
	return s.listByAuthorFn(ctx, authorID)
}
func (s *postRepoStub) ListFollowed(ctx context.Context, viewerID uint) ([]models.Post, error) {
	return s.listFollowedFn(ctx, viewerID)
}
func (s *postRepoStub) CountByAuthor(ctx context.Context, authorID uint) (int64, error) {
	return s.countByAuthorFn(ctx, authorID)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:        func(_ context.Context, _ *models.Post) error { return nil },
		getByIDFn:       func(_ context.Context, id uint) (*models.Post, error) { return &models.Post{ID: id}, nil },
		updateFn:        func(_ context.Context, _ *models.Post) error { return nil },
		deleteFn:        func(_ context.Context, _ uint) error { return nil },
		listAllFn:       func(_ context.Context) ([]models.Post, error) { return nil, nil },
		listByGroupFn:   func(_ context.Context, _ uint) ([]models.Post, error) { return nil, nil },
		listByAuthorFn:  func(_ context.Context, _ uint) ([]models.Post, error) { return nil, nil },
		listFollowedFn:  func(_ context.Context, _ uint) ([]models.Post, error) { return nil, nil },
		countByAuthorFn: func(_ context.Context, _ uint) (int64, error) { return 0, nil },
	}
}

// groupRepoStub is a stub for repository.GroupRepository.
type groupRepoStub struct {
	createFn    func(context.Context, *models.Group) error
	getByIDFn   func(context.Context, uint) (*models.Group, error)
	getBySlugFn func(context.Context, string) (*models.Group, error)
	listFn      func(context.Context, int, int) ([]models.Group, error)
	deleteFn    func(context.Context, uint) error
}

func (s *groupRepoStub) Create(ctx context.Context, group *models.Group) error {
	return s.createFn(ctx, group)
}
func (s *groupRepoStub) GetByID(ctx context.Context, id uint) (*models.Group, error) {
	return s.getByIDFn(ctx, id)
}
func (s *groupRepoStub) GetBySlug(ctx context.Context, slug string) (*models.Group, error) {
	return s.getBySlugFn(ctx, slug)
}
func (s *groupRepoStub) List(ctx context.Context, limit, offset int) ([]models.Group, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *groupRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopGroupRepo() *groupRepoStub {
	return &groupRepoStub{
		createFn:    func(_ context.Context, _ *models.Group) error { return nil },
		getByIDFn:   func(_ context.Context, id uint) (*models.Group, error) { return &models.Group{ID: id}, nil },
		getBySlugFn: func(_ context.Context, slug string) (*models.Group, error) { return &models.Group{Slug: slug}, nil },
		listFn:      func(_ context.Context, _, _ int) ([]models.Group, error) { return nil, nil },
		deleteFn:    func(_ context.Context, _ uint) error { return nil },
	}
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	createFn        func(context.Context, *models.User) error
	listFn          func(context.Context, int, int) ([]models.User, error)
	deleteFn        func(context.Context, uint) error
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:       func(_ context.Context, id uint) (*models.User, error) { return &models.User{ID: id}, nil },
		getByUsernameFn: func(_ context.Context, username string) (*models.User, error) { return &models.User{Username: username}, nil },
		createFn:        func(_ context.Context, _ *models.User) error { return nil },
		listFn:          func(_ context.Context, _, _ int) ([]models.User, error) { return nil, nil },
		deleteFn:        func(_ context.Context, _ uint) error { return nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn     func(context.Context, *models.Comment) error
	getByIDFn    func(context.Context, uint) (*models.Comment, error)
	listByPostFn func(context.Context, uint) ([]models.Comment, error)
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint) ([]models.Comment, error) {
	return s.listByPostFn(ctx, postID)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:     func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn:    func(_ context.Context, id uint) (*models.Comment, error) { return &models.Comment{ID: id}, nil },
		listByPostFn: func(_ context.Context, _ uint) ([]models.Comment, error) { return nil, nil },
	}
}

// followRepoStub is a stub for repository.FollowRepository.
type followRepoStub struct {
	createFn        func(context.Context, *models.Follow) error
	deleteFn        func(context.Context, uint, uint) error
	existsFn        func(context.Context, uint, uint) (bool, error)
	listAuthorIDsFn func(context.Context, uint) ([]uint, error)
}

func (s *followRepoStub) Create(ctx context.Context, follow *models.Follow) error {
	return s.createFn(ctx, follow)
}
func (s *followRepoStub) Delete(ctx context.Context, userID, authorID uint) error {
	return s.deleteFn(ctx, userID, authorID)
}
func (s *followRepoStub) Exists(ctx context.Context, userID, authorID uint) (bool, error) {
	return s.existsFn(ctx, userID, authorID)
}
func (s *followRepoStub) ListAuthorIDs(ctx context.Context, userID uint) ([]uint, error) {
	return s.listAuthorIDsFn(ctx, userID)
}

func noopFollowRepo() *followRepoStub {
	return &followRepoStub{
		createFn:        func(_ context.Context, _ *models.Follow) error { return nil },
		deleteFn:        func(_ context.Context, _, _ uint) error { return nil },
		existsFn:        func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		listAuthorIDsFn: func(_ context.Context, _ uint) ([]uint, error) { return nil, nil },
	}
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	assert.True(t, models.IsValidationError(err), "expected validation error, got %v", err)
}

func assertNotFound(t *testing.T, err error) {
	t.Helper()
	assert.True(t, models.IsNotFound(err), "expected not found error, got %v", err)
}
