package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/avelichko/pulseline/backend/internal/feed"
	"github.com/labstack/echo/v4"
)

// FeedHandler handles feed-related HTTP requests
type FeedHandler struct {
	composer *feed.Composer
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(composer *feed.Composer) *FeedHandler {
	return &FeedHandler{composer: composer}
}

// RegisterFeedRoutes registers feed-related routes. The global, group and
// author feeds are public; the following feed requires a viewer.
func (h *FeedHandler) RegisterFeedRoutes(public, protected *echo.Group) {
	public.GET("/feed", h.GetGlobalFeed)
	public.GET("/groups/:slug/posts", h.GetGroupFeed)
	public.GET("/users/:username/posts", h.GetAuthorFeed)
	protected.GET("/feed/following", h.GetFollowingFeed)
}

func pageParam(c echo.Context) int {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	return page
}

func feedResponse(c echo.Context, page feed.Page) error {
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"posts": page.Posts,
		},
		"meta": echo.Map{
			"currentPage":     page.Number,
			"totalPages":      page.TotalPages,
			"totalItems":      page.TotalItems,
			"itemsPerPage":    page.Size,
			"hasNextPage":     page.HasNext,
			"hasPreviousPage": page.HasPrev,
		},
	})
}

// GetGlobalFeed returns a page of every post, newest first
func (h *FeedHandler) GetGlobalFeed(c echo.Context) error {
	page, err := h.composer.Global(c.Request().Context(), pageParam(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return feedResponse(c, page)
}

// GetGroupFeed returns a page of the posts in the group identified by slug
func (h *FeedHandler) GetGroupFeed(c echo.Context) error {
	page, err := h.composer.Group(c.Request().Context(), c.Param("slug"), pageParam(c))
	if err != nil {
		if errors.Is(err, feed.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Group not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return feedResponse(c, page)
}

// GetAuthorFeed returns a page of the posts by the author identified by username
func (h *FeedHandler) GetAuthorFeed(c echo.Context) error {
	page, err := h.composer.Author(c.Request().Context(), c.Param("username"), pageParam(c))
	if err != nil {
		if errors.Is(err, feed.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Author not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return feedResponse(c, page)
}

// GetFollowingFeed returns a page aggregating the posts of the authors the
// viewer follows
func (h *FeedHandler) GetFollowingFeed(c echo.Context) error {
	viewerID := getUserIDFromContext(c)
	if viewerID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	page, err := h.composer.Following(c.Request().Context(), viewerID, pageParam(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return feedResponse(c, page)
}
