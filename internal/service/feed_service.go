package service

import (
	"context"
	"encoding/json"
	"log/slog"

	"plume/internal/cache"
	"plume/internal/middleware"
	"plume/internal/models"
	"plume/internal/pagination"
	"plume/internal/repository"
)

// FeedService composes the ordered post lists behind every feed view.
// Repositories hand it pre-sorted, pre-filtered lists; it joins in viewer
// context, slices pages, and fronts the home feed with the response cache.
type FeedService struct {
	postRepo    repository.PostRepository
	userRepo    repository.UserRepository
	groupRepo   repository.GroupRepository
	commentRepo repository.CommentRepository
	followRepo  repository.FollowRepository
	feedCache   *cache.FeedCache
	pageSize    int
}

// GroupFeed is one page of a group's posts plus the group itself.
type GroupFeed struct {
	Group models.Group                 `json:"group"`
	Page  pagination.Page[models.Post] `json:"page"`
}

// ProfileFeed is one page of an author's posts plus profile context.
// Following reports whether the current viewer follows this author; it is
// always false for anonymous viewers and for authors viewing themselves.
type ProfileFeed struct {
	Author     models.User                  `json:"author"`
	Following  bool                         `json:"following"`
	TotalPosts int64                        `json:"total_posts"`
	Page       pagination.Page[models.Post] `json:"page"`
}

// PostDetail is a single post with its comments in conversation order.
type PostDetail struct {
	Post     models.Post      `json:"post"`
	Comments []models.Comment `json:"comments"`
}

// NewFeedService returns a new FeedService. pageSize falls back to the
// process-wide default when not positive.
func NewFeedService(
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	groupRepo repository.GroupRepository,
	commentRepo repository.CommentRepository,
	followRepo repository.FollowRepository,
	feedCache *cache.FeedCache,
	pageSize int,
) *FeedService {
	if pageSize <= 0 {
		pageSize = pagination.DefaultPageSize
	}
	return &FeedService{
		postRepo:    postRepo,
		userRepo:    userRepo,
		groupRepo:   groupRepo,
		commentRepo: commentRepo,
		followRepo:  followRepo,
		feedCache:   feedCache,
		pageSize:    pageSize,
	}
}

// HomeFeed returns one page of all posts, newest first. The composed list is
// viewer-independent, so the whole list is cached under a single entry and
// pages are sliced after retrieval. Within the TTL window a freshly created
// post may be missing; that staleness is the documented trade-off.
func (s *FeedService) HomeFeed(ctx context.Context, page int) (pagination.Page[models.Post], error) {
	if payload, ok := s.feedCache.Get(ctx); ok {
		var posts []models.Post
		if err := json.Unmarshal(payload, &posts); err == nil {
			return pagination.Paginate(posts, page, s.pageSize), nil
		}
		// A corrupt entry falls through to storage and gets overwritten.
		middleware.Logger.WarnContext(ctx, "discarding undecodable home feed cache entry")
	}

	posts, err := s.postRepo.ListAll(ctx)
	if err != nil {
		return pagination.Page[models.Post]{}, err
	}

	if payload, err := json.Marshal(posts); err == nil {
		s.feedCache.Set(ctx, payload)
	} else {
		middleware.Logger.WarnContext(ctx, "failed to encode home feed for caching", slog.String("error", err.Error()))
	}

	return pagination.Paginate(posts, page, s.pageSize), nil
}

// GroupFeed returns one page of the posts published into the group named by
// slug. An unknown slug is a NotFound for the boundary to surface as 404.
func (s *FeedService) GroupFeed(ctx context.Context, slug string, page int) (*GroupFeed, error) {
	group, err := s.groupRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	posts, err := s.postRepo.ListByGroup(ctx, group.ID)
	if err != nil {
		return nil, err
	}

	return &GroupFeed{
		Group: *group,
		Page:  pagination.Paginate(posts, page, s.pageSize),
	}, nil
}

// ProfileFeed returns one page of the author's posts plus whether the viewer
// follows them. viewerID may be zero for anonymous viewers.
func (s *FeedService) ProfileFeed(ctx context.Context, username string, viewerID uint, page int) (*ProfileFeed, error) {
	author, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	posts, err := s.postRepo.ListByAuthor(ctx, author.ID)
	if err != nil {
		return nil, err
	}

	total, err := s.postRepo.CountByAuthor(ctx, author.ID)
	if err != nil {
		return nil, err
	}

	following := false
	if viewerID != 0 && viewerID != author.ID {
		following, err = s.followRepo.Exists(ctx, viewerID, author.ID)
		if err != nil {
			return nil, err
		}
	}

	return &ProfileFeed{
		Author:     *author,
		Following:  following,
		TotalPosts: total,
		Page:       pagination.Paginate(posts, page, s.pageSize),
	}, nil
}

// FollowingFeed returns one page of posts by authors the viewer follows.
// Anonymous viewers get an AuthenticationRequired failure, never a silently
// empty feed.
func (s *FeedService) FollowingFeed(ctx context.Context, viewerID uint, page int) (pagination.Page[models.Post], error) {
	if viewerID == 0 {
		return pagination.Page[models.Post]{}, models.NewAuthenticationRequiredError("Sign in to see posts from authors you follow")
	}

	posts, err := s.postRepo.ListFollowed(ctx, viewerID)
	if err != nil {
		return pagination.Page[models.Post]{}, err
	}

	return pagination.Paginate(posts, page, s.pageSize), nil
}

// PostDetail returns the post and its comments. The detail view always reads
// through to storage; only the home feed is cached.
func (s *FeedService) PostDetail(ctx context.Context, postID uint) (*PostDetail, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	return &PostDetail{
		Post:     *post,
		Comments: comments,
	}, nil
}
