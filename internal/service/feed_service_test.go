package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"plume/internal/cache"
	"plume/internal/database"
	"plume/internal/models"
	"plume/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type manualClock struct {
	now time.Time
}

func (c *manualClock) Now() time.Time { return c.now }

func (c *manualClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type feedFixture struct {
	db    *gorm.DB
	svc   *FeedService
	cache *cache.FeedCache
	clock *manualClock
}

func newFeedFixture(t *testing.T, pageSize int) *feedFixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database.PersistentModels()...))

	clock := &manualClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	feedCache := cache.NewFeedCache(nil, cache.DefaultFeedTTL, clock)

	svc := NewFeedService(
		repository.NewPostRepository(db),
		repository.NewUserRepository(db),
		repository.NewGroupRepository(db),
		repository.NewCommentRepository(db),
		repository.NewFollowRepository(db),
		feedCache,
		pageSize,
	)

	return &feedFixture{db: db, svc: svc, cache: feedCache, clock: clock}
}

func (f *feedFixture) user(t *testing.T, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, DisplayName: username}
	require.NoError(t, f.db.Create(user).Error)
	return user
}

func (f *feedFixture) post(t *testing.T, authorID uint, text string, createdAt time.Time) *models.Post {
	t.Helper()
	post := &models.Post{Text: text, AuthorID: authorID, CreatedAt: createdAt}
	require.NoError(t, f.db.Create(post).Error)
	return post
}

func TestFeedService_HomeFeed_Pagination(t *testing.T) {
	t.Parallel()

	f := newFeedFixture(t, 10)
	author := f.user(t, "ines")
	base := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 13; i++ {
		f.post(t, author.ID, fmt.Sprintf("post %d", i), base.Add(time.Duration(i)*time.Minute))
	}

	ctx := context.Background()

	first, err := f.svc.HomeFeed(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, first.Items, 10)
	assert.Equal(t, 13, first.TotalItems)
	assert.Equal(t, 2, first.TotalPages)
	assert.True(t, first.HasNext)
	assert.False(t, first.HasPrevious)
	assert.Equal(t, "post 12", first.Items[0].Text, "newest first")

	second, err := f.svc.HomeFeed(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, second.Items, 3)
	assert.True(t, second.HasPrevious)
	assert.False(t, second.HasNext)
	assert.Equal(t, "post 0", second.Items[2].Text, "oldest last")

	// Out-of-range pages clamp to the nearest valid page.
	clamped, err := f.svc.HomeFeed(ctx, 99)
	require.NoError(t, err)
	assert.Equal(t, 2, clamped.Number)
	assert.Len(t, clamped.Items, 3)
}

func TestFeedService_HomeFeed_CacheStaleness(t *testing.T) {
	t.Parallel()

	f := newFeedFixture(t, 10)
	author := f.user(t, "raquel")
	f.post(t, author.ID, "visible", time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC))

	ctx := context.Background()

	warm, err := f.svc.HomeFeed(ctx, 1)
	require.NoError(t, err)
	require.Len(t, warm.Items, 1)

	// A post created while the entry is live stays invisible until expiry.
	f.post(t, author.ID, "late arrival", time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC))

	f.clock.Advance(19 * time.Second)
	stale, err := f.svc.HomeFeed(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, stale.Items, 1)
	assert.Equal(t, "visible", stale.Items[0].Text)

	f.clock.Advance(2 * time.Second)
	fresh, err := f.svc.HomeFeed(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, fresh.Items, 2)
	assert.Equal(t, "late arrival", fresh.Items[0].Text)
}

func TestFeedService_HomeFeed_ClearForcesReload(t *testing.T) {
	t.Parallel()

	f := newFeedFixture(t, 10)
	author := f.user(t, "tomas")
	f.post(t, author.ID, "first", time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC))

	ctx := context.Background()

	_, err := f.svc.HomeFeed(ctx, 1)
	require.NoError(t, err)

	f.post(t, author.ID, "second", time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC))
	f.cache.Clear(ctx)

	page, err := f.svc.HomeFeed(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
}

func TestFeedService_GroupFeed(t *testing.T) {
	t.Parallel()

	f := newFeedFixture(t, 10)
	author := f.user(t, "dana")
	group := &models.Group{Title: "Gardening", Slug: "gardening"}
	require.NoError(t, f.db.Create(group).Error)

	inGroup := &models.Post{Text: "in group", AuthorID: author.ID, GroupID: &group.ID}
	require.NoError(t, f.db.Create(inGroup).Error)
	f.post(t, author.ID, "ungrouped", time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC))

	ctx := context.Background()

	feed, err := f.svc.GroupFeed(ctx, "gardening", 1)
	require.NoError(t, err)
	assert.Equal(t, "Gardening", feed.Group.Title)
	require.Len(t, feed.Page.Items, 1)
	assert.Equal(t, "in group", feed.Page.Items[0].Text)

	_, err = f.svc.GroupFeed(ctx, "no-such-group", 1)
	assertNotFound(t, err)
}

func TestFeedService_ProfileFeed(t *testing.T) {
	t.Parallel()

	f := newFeedFixture(t, 10)
	author := f.user(t, "selma")
	follower := f.user(t, "piotr")
	stranger := f.user(t, "nora")
	require.NoError(t, f.db.Create(&models.Follow{UserID: follower.ID, AuthorID: author.ID}).Error)

	f.post(t, author.ID, "hello", time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC))
	f.post(t, author.ID, "again", time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC))

	ctx := context.Background()

	t.Run("anonymous viewer", func(t *testing.T) {
		feed, err := f.svc.ProfileFeed(ctx, "selma", 0, 1)
		require.NoError(t, err)
		assert.Equal(t, "selma", feed.Author.Username)
		assert.False(t, feed.Following)
		assert.Equal(t, int64(2), feed.TotalPosts)
		assert.Len(t, feed.Page.Items, 2)
	})

	t.Run("follower", func(t *testing.T) {
		feed, err := f.svc.ProfileFeed(ctx, "selma", follower.ID, 1)
		require.NoError(t, err)
		assert.True(t, feed.Following)
	})

	t.Run("non-follower", func(t *testing.T) {
		feed, err := f.svc.ProfileFeed(ctx, "selma", stranger.ID, 1)
		require.NoError(t, err)
		assert.False(t, feed.Following)
	})

	t.Run("own profile", func(t *testing.T) {
		feed, err := f.svc.ProfileFeed(ctx, "selma", author.ID, 1)
		require.NoError(t, err)
		assert.False(t, feed.Following)
	})

	t.Run("unknown username", func(t *testing.T) {
		_, err := f.svc.ProfileFeed(ctx, "ghost", 0, 1)
		assertNotFound(t, err)
	})
}

func TestFeedService_FollowingFeed(t *testing.T) {
	t.Parallel()

	f := newFeedFixture(t, 10)
	author := f.user(t, "amir")
	viewer := f.user(t, "lucia")
	require.NoError(t, f.db.Create(&models.Follow{UserID: viewer.ID, AuthorID: author.ID}).Error)

	f.post(t, author.ID, "followed content", time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC))
	f.post(t, viewer.ID, "own content", time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC))

	ctx := context.Background()

	page, err := f.svc.FollowingFeed(ctx, viewer.ID, 1)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "followed content", page.Items[0].Text)

	_, err = f.svc.FollowingFeed(ctx, 0, 1)
	assert.True(t, models.IsAuthenticationRequired(err))
}

func TestFeedService_PostDetail(t *testing.T) {
	t.Parallel()

	f := newFeedFixture(t, 10)
	author := f.user(t, "omar")
	post := f.post(t, author.ID, "discuss", time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC))

	first := &models.Comment{Text: "first", PostID: post.ID, AuthorID: author.ID, CreatedAt: time.Date(2025, 5, 1, 9, 5, 0, 0, time.UTC)}
	second := &models.Comment{Text: "second", PostID: post.ID, AuthorID: author.ID, CreatedAt: time.Date(2025, 5, 1, 9, 10, 0, 0, time.UTC)}
	require.NoError(t, f.db.Create(second).Error)
	require.NoError(t, f.db.Create(first).Error)

	ctx := context.Background()

	detail, err := f.svc.PostDetail(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "discuss", detail.Post.Text)
	require.Len(t, detail.Comments, 2)
	assert.Equal(t, "first", detail.Comments[0].Text, "conversation order")
	assert.Equal(t, "second", detail.Comments[1].Text)

	_, err = f.svc.PostDetail(ctx, 9999)
	assertNotFound(t, err)
}
