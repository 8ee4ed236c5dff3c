package handlers

import (
	"errors"
	"net/http"

	"github.com/avelichko/pulseline/backend/internal/models"
	"github.com/avelichko/pulseline/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// UserHandler handles HTTP requests related to user profiles
type UserHandler struct {
	userRepository   repositories.UserRepository
	postRepository   repositories.PostRepository
	followRepository repositories.FollowRepository
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository, postRepo repositories.PostRepository, followRepo repositories.FollowRepository) *UserHandler {
	return &UserHandler{
		userRepository:   userRepo,
		postRepository:   postRepo,
		followRepository: followRepo,
	}
}

// RegisterProfileRoutes registers user profile-related routes
func (h *UserHandler) RegisterProfileRoutes(public *echo.Group) {
	public.GET("/users/:username", h.GetProfile)
}

// GetProfile returns an author's public profile: the user record, post and
// follow counts, and whether the (possibly anonymous) viewer follows them.
func (h *UserHandler) GetProfile(c echo.Context) error {
	user, err := h.userRepository.GetUserByUsername(c.Param("username"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User profile not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	postCount, err := h.postRepository.CountPostsByAuthor(c.Request().Context(), user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	followerCount, err := h.followRepository.GetFollowerCount(user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	followeeCount, err := h.followRepository.GetFolloweeCount(user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	viewerFollows := false
	if viewerID := getUserIDFromContext(c); viewerID != 0 && viewerID != user.ID {
		viewerFollows, err = h.followRepository.IsFollowing(viewerID, user.ID)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusOK, models.Profile{
		User:          *user,
		PostCount:     postCount,
		FollowerCount: followerCount,
		FolloweeCount: followeeCount,
		ViewerFollows: viewerFollows,
	})
}
