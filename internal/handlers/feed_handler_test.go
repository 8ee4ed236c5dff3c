package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/avelichko/pulseline/backend/internal/feed"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowingFeedRequiresViewer(t *testing.T) {
	composer := feed.NewComposer(nil, nil, nil, nil, nil, 10)
	h := NewFeedHandler(composer)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/feed/following", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.GetFollowingFeed(c)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestPageParamClampsToOne(t *testing.T) {
	e := echo.New()
	for _, query := range []string{"", "page=0", "page=-3", "page=junk"} {
		req := httptest.NewRequest(http.MethodGet, "/feed?"+query, nil)
		c := e.NewContext(req, httptest.NewRecorder())
		assert.Equal(t, 1, pageParam(c))
	}

	req := httptest.NewRequest(http.MethodGet, "/feed?page=4", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	assert.Equal(t, 4, pageParam(c))
}
