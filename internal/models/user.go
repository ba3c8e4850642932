// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User represents a registered BuddyScript account.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	FirstName string    `gorm:"not null" json:"firstName"`
	LastName  string    `gorm:"not null" json:"lastName"`
	Email     string    `gorm:"unique;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Posts        []Post        `gorm:"foreignKey:UserID" json:"posts,omitempty"`
	Comments     []Comment     `gorm:"foreignKey:UserID" json:"comments,omitempty"`
	PostLikes    []PostLike    `gorm:"foreignKey:UserID" json:"-"`
	CommentLikes []CommentLike `gorm:"foreignKey:UserID" json:"-"`
}
