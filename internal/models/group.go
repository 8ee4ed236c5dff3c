package models

// Group is a topic posts can optionally be published into. Groups are
// administrator-managed; posts reference them by id and survive group deletion.
type Group struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Title       string `json:"title" gorm:"size:200"`
	Slug        string `json:"slug" gorm:"uniqueIndex"`
	Description string `json:"description" gorm:"size:250"`
}

// CreateGroupRequest defines the request body for creating a new group
type CreateGroupRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=200"`
	Slug        string `json:"slug" validate:"required,min=1,max=50,lowercase"`
	Description string `json:"description" validate:"max=250"`
}

// UpdateGroupRequest defines the request body for updating an existing group
type UpdateGroupRequest struct {
	Title       string `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description string `json:"description,omitempty" validate:"omitempty,max=250"`
}
