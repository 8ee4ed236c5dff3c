package feed

import (
	"math"

	"github.com/avelichko/pulseline/backend/internal/models"
)

// Page is one window of a feed, with enough metadata for the caller to render
// navigation without recomputing counts.
type Page struct {
	Posts      []models.Post `json:"posts"`
	Number     int           `json:"page"`
	Size       int           `json:"page_size"`
	TotalItems int           `json:"total_items"`
	TotalPages int           `json:"total_pages"`
	HasPrev    bool          `json:"has_prev"`
	HasNext    bool          `json:"has_next"`
}

// Paginate slices an ordered post sequence into 1-indexed pages. Page numbers
// below 1 are treated as page 1; numbers past the last page yield an empty
// page, never an error.
func Paginate(posts []models.Post, page, pageSize int) Page {
	if page < 1 {
		page = 1
	}
	totalItems := len(posts)
	totalPages := int(math.Ceil(float64(totalItems) / float64(pageSize)))

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > totalItems {
		start = totalItems
	}
	if end > totalItems {
		end = totalItems
	}

	// Always a non-nil slice so an empty page serializes as [], not null.
	pagePosts := posts[start:end]
	if pagePosts == nil {
		pagePosts = []models.Post{}
	}

	return Page{
		Posts:      pagePosts,
		Number:     page,
		Size:       pageSize,
		TotalItems: totalItems,
		TotalPages: totalPages,
		HasPrev:    page > 1 && totalPages > 0,
		HasNext:    page < totalPages,
	}
}
