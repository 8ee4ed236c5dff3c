package feed

import (
	"context"
	"errors"
	"fmt"

	"github.com/avelichko/pulseline/backend/internal/repositories"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a feed identifier (group slug, author
// username) does not resolve to an entity.
var ErrNotFound = errors.New("feed subject not found")

// Composer turns a feed kind plus a page number into an ordered page of
// posts. Global pages go through the cache; group, author and following pages
// are viewer- or entity-specific and are always computed fresh.
type Composer struct {
	posts    repositories.PostRepository
	users    repositories.UserRepository
	groups   repositories.GroupRepository
	follows  repositories.FollowRepository
	cache    *PageCache
	pageSize int
}

// NewComposer creates a Composer. The cache may be nil to disable global-feed
// caching (tests, admin tooling).
func NewComposer(
	posts repositories.PostRepository,
	users repositories.UserRepository,
	groups repositories.GroupRepository,
	follows repositories.FollowRepository,
	cache *PageCache,
	pageSize int,
) *Composer {
	return &Composer{
		posts:    posts,
		users:    users,
		groups:   groups,
		follows:  follows,
		cache:    cache,
		pageSize: pageSize,
	}
}

// Global returns a page of every post, newest first. Read path: check cache,
// on miss compose, store, return.
func (c *Composer) Global(ctx context.Context, page int) (Page, error) {
	if page < 1 {
		page = 1
	}
	if c.cache != nil {
		if cached, ok := c.cache.Get(page); ok {
			return cached, nil
		}
	}

	posts, err := c.posts.GetAllPosts(ctx)
	if err != nil {
		return Page{}, fmt.Errorf("composing global feed: %w", err)
	}

	composed := Paginate(posts, page, c.pageSize)
	if c.cache != nil {
		c.cache.Set(page, composed)
	}
	return composed, nil
}

// Group returns a page of the posts published into the group with the given
// slug, or ErrNotFound if the slug is unknown.
func (c *Composer) Group(ctx context.Context, slug string, page int) (Page, error) {
	group, err := c.groups.GetGroupBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Page{}, fmt.Errorf("group %q: %w", slug, ErrNotFound)
		}
		return Page{}, err
	}

	posts, err := c.posts.GetPostsByGroup(ctx, group.ID)
	if err != nil {
		return Page{}, fmt.Errorf("composing group feed: %w", err)
	}
	return Paginate(posts, page, c.pageSize), nil
}

// Author returns a page of a single author's posts, or ErrNotFound if the
// username is unknown.
func (c *Composer) Author(ctx context.Context, username string, page int) (Page, error) {
	author, err := c.users.GetUserByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Page{}, fmt.Errorf("author %q: %w", username, ErrNotFound)
		}
		return Page{}, err
	}

	posts, err := c.posts.GetPostsByAuthor(ctx, author.ID)
	if err != nil {
		return Page{}, fmt.Errorf("composing author feed: %w", err)
	}
	return Paginate(posts, page, c.pageSize), nil
}

// Following returns a page aggregating the posts of every author the viewer
// follows. A viewer following nobody gets an empty page, not an error. The
// followee set is resolved first, then the posts are fetched in one merged,
// time-ordered query.
func (c *Composer) Following(ctx context.Context, viewerID uint, page int) (Page, error) {
	followeeIDs, err := c.follows.GetFolloweeIDs(viewerID)
	if err != nil {
		return Page{}, fmt.Errorf("resolving followees: %w", err)
	}
	if len(followeeIDs) == 0 {
		return Paginate(nil, page, c.pageSize), nil
	}

	posts, err := c.posts.GetPostsByAuthors(ctx, followeeIDs)
	if err != nil {
		return Page{}, fmt.Errorf("composing following feed: %w", err)
	}
	return Paginate(posts, page, c.pageSize), nil
}
