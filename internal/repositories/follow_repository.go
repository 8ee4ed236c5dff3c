package repositories

import (
	"errors"

	"github.com/avelichko/pulseline/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrSelfFollow is returned when a user attempts to follow themselves. The
// check lives here, not only in the handlers, because administrative and batch
// paths call the repository directly.
var ErrSelfFollow = errors.New("user cannot follow themselves")

// FollowRepository defines the interface for follow-graph operations.
// EnsureFollow is idempotent: "ensure following", not "create edge". Two
// concurrent calls for the same pair leave exactly one edge behind.
type FollowRepository interface {
	EnsureFollow(followerID, followeeID uint) error
	DeleteFollow(followerID, followeeID uint) error
	IsFollowing(followerID, followeeID uint) (bool, error)
	GetFolloweeIDs(userID uint) ([]uint, error)
	GetFollowerIDs(userID uint) ([]uint, error)
	GetFollowerCount(userID uint) (int64, error)
	GetFolloweeCount(userID uint) (int64, error)
}

// PostgresFollowRepository implements FollowRepository for PostgreSQL
type PostgresFollowRepository struct {
	db *gorm.DB
}

// NewPostgresFollowRepository creates a new PostgresFollowRepository
func NewPostgresFollowRepository(db *gorm.DB) *PostgresFollowRepository {
	return &PostgresFollowRepository{db: db}
}

// EnsureFollow inserts the edge if absent. The conditional insert runs inside
// the database (ON CONFLICT DO NOTHING on the composite unique index), so a
// concurrent duplicate attempt cannot create a second edge.
func (r *PostgresFollowRepository) EnsureFollow(followerID, followeeID uint) error {
	if followerID == followeeID {
		return ErrSelfFollow
	}
	follow := &models.Follow{FollowerID: followerID, FolloweeID: followeeID}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "follower_id"}, {Name: "followee_id"}},
		DoNothing: true,
	}).Create(follow).Error
}

// DeleteFollow removes the edge if present; deleting an absent edge is a no-op.
func (r *PostgresFollowRepository) DeleteFollow(followerID, followeeID uint) error {
	return r.db.Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Delete(&models.Follow{}).Error
}

// IsFollowing reports whether the follower -> followee edge exists
func (r *PostgresFollowRepository) IsFollowing(followerID, followeeID uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Follow{}).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetFolloweeIDs returns the ids of every user the given user follows
func (r *PostgresFollowRepository) GetFolloweeIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.Follow{}).Where("follower_id = ?", userID).Pluck("followee_id", &ids).Error
	return ids, err
}

// GetFollowerIDs returns the ids of every user following the given user
func (r *PostgresFollowRepository) GetFollowerIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.Follow{}).Where("followee_id = ?", userID).Pluck("follower_id", &ids).Error
	return ids, err
}

// GetFollowerCount returns how many users follow the given user
func (r *PostgresFollowRepository) GetFollowerCount(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).Where("followee_id = ?", userID).Count(&count).Error
	return count, err
}

// GetFolloweeCount returns how many users the given user follows
func (r *PostgresFollowRepository) GetFolloweeCount(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).Where("follower_id = ?", userID).Count(&count).Error
	return count, err
}
