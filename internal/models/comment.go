package models

import "gorm.io/gorm"

// Comment lives and dies with its post: deleting a post removes its comments.
type Comment struct {
	gorm.Model
	PostID   string `json:"post_id" gorm:"index"` // MongoDB ObjectID of the post, as hex
	AuthorID uint   `json:"author_id" gorm:"index"`
	Text     string `json:"text"`
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	Text string `json:"text" validate:"required,min=1,max=500"`
}
