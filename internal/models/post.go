package models

import (
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post is a published text entry stored in MongoDB. CreatedAt is assigned by
// the server on insert and never changes afterwards; GroupID is optional and
// may be cleared later when the referenced group is deleted.
type Post struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	AuthorID  uint               `json:"author_id" bson:"author_id"`
	GroupID   *uint              `json:"group_id,omitempty" bson:"group_id,omitempty"`
	Text      string             `json:"text" bson:"text"`
	ImageRef  string             `json:"image_ref,omitempty" bson:"image_ref,omitempty"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Text     string `json:"text" validate:"required,min=1,max=2000"`
	GroupID  *uint  `json:"group_id,omitempty"`
	ImageRef string `json:"image_ref,omitempty" validate:"omitempty,url"`
}

// OptionalUint distinguishes an omitted JSON field from an explicit null:
// Set is false when the field was absent, true with a nil Value when the
// client sent null.
type OptionalUint struct {
	Set   bool
	Value *uint
}

// UnmarshalJSON implements json.Unmarshaler
func (o *OptionalUint) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var v uint
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

// UpdatePostRequest defines the request body for updating an existing post.
// An omitted group_id preserves the post's group; an explicit null clears it.
type UpdatePostRequest struct {
	Text     string       `json:"text,omitempty" validate:"omitempty,min=1,max=2000"`
	GroupID  OptionalUint `json:"group_id"`
	ImageRef string       `json:"image_ref,omitempty" validate:"omitempty,url"`
}
