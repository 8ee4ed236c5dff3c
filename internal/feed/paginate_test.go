package feed

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/avelichko/pulseline/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func makePosts(n int) []models.Post {
	posts := make([]models.Post, n)
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for i := range posts {
		posts[i] = models.Post{
			ID:        primitive.NewObjectID(),
			AuthorID:  1,
			Text:      "post",
			CreatedAt: base.Add(-time.Duration(i) * time.Minute),
		}
	}
	return posts
}

func TestPaginateFullAndPartialPages(t *testing.T) {
	// P+1 items: page 1 full with a next page, page 2 holds the remainder.
	posts := makePosts(11)

	page1 := Paginate(posts, 1, 10)
	assert.Len(t, page1.Posts, 10)
	assert.Equal(t, 2, page1.TotalPages)
	assert.Equal(t, 11, page1.TotalItems)
	assert.True(t, page1.HasNext)
	assert.False(t, page1.HasPrev)

	page2 := Paginate(posts, 2, 10)
	assert.Len(t, page2.Posts, 1)
	assert.False(t, page2.HasNext)
	assert.True(t, page2.HasPrev)
}

func TestPaginateBeyondLastPageIsEmpty(t *testing.T) {
	posts := makePosts(11)

	page3 := Paginate(posts, 3, 10)
	assert.NotNil(t, page3.Posts)
	assert.Empty(t, page3.Posts)
	assert.False(t, page3.HasNext)
	assert.Equal(t, 2, page3.TotalPages)
}

func TestPaginateClampsLowPageNumbers(t *testing.T) {
	posts := makePosts(5)

	for _, page := range []int{0, -1, -100} {
		got := Paginate(posts, page, 10)
		assert.Equal(t, 1, got.Number)
		assert.Len(t, got.Posts, 5)
		assert.False(t, got.HasPrev)
	}
}

func TestPaginateEmptyInput(t *testing.T) {
	got := Paginate(nil, 1, 10)
	assert.NotNil(t, got.Posts)
	assert.Empty(t, got.Posts)
	assert.Equal(t, 0, got.TotalPages)
	assert.Equal(t, 0, got.TotalItems)
	assert.False(t, got.HasNext)
	assert.False(t, got.HasPrev)
}

func TestEmptyPageMarshalsPostsAsArray(t *testing.T) {
	// API consumers expect "posts": [], never null, on an empty page.
	body, err := json.Marshal(Paginate(nil, 1, 10))
	assert.NoError(t, err)
	assert.Contains(t, string(body), `"posts":[]`)
}

func TestPaginatePreservesOrder(t *testing.T) {
	posts := makePosts(15)

	page2 := Paginate(posts, 2, 10)
	assert.Equal(t, posts[10].ID, page2.Posts[0].ID)
	assert.Equal(t, posts[14].ID, page2.Posts[4].ID)
}
