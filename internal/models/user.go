package models

import (
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

type User struct {
	gorm.Model  `json:"-"`
	ID          uint   `json:"id" gorm:"primaryKey"`
	Username    string `json:"username" gorm:"uniqueIndex"` // Public handle, used in profile and feed URLs
	Name        string `json:"name"`
	Email       string `json:"email" gorm:"uniqueIndex"`
	Password    string `json:"-"` // Store hashed password, ignore for JSON serialization
	FirebaseUID string `json:"firebase_uid,omitempty" gorm:"uniqueIndex"`
}

type SignupRequest struct {
	Username string `json:"username" validate:"required,min=2,max=30,alphanum"`
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type SigninRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Profile is the public view of an author returned by the profile endpoint.
type Profile struct {
	User          User  `json:"user"`
	PostCount     int64 `json:"post_count"`
	FollowerCount int64 `json:"follower_count"`
	FolloweeCount int64 `json:"followee_count"`
	ViewerFollows bool  `json:"viewer_follows"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}
