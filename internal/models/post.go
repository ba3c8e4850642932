package models

import (
	"time"
)

// Post visibility values.
const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
)

// Post represents a feed post. A post may carry text, media attachments,
// or both; the edge rejects posts with neither.
type Post struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	UserID     uint   `gorm:"not null;index" json:"user_id"`
	Author     User   `gorm:"foreignKey:UserID" json:"author"`
	Text       string `gorm:"type:text" json:"text"`
	Visibility string `gorm:"not null;default:public" json:"visibility"`

	Media    []PostMedia `gorm:"foreignKey:PostID" json:"media"`
	Likes    []PostLike  `gorm:"foreignKey:PostID" json:"likes"`
	Comments []Comment   `gorm:"foreignKey:PostID" json:"comments,omitempty"`

	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"->" json:"likesCount"`
	// CommentsCount is not persisted; counts all comments including replies
	CommentsCount int `gorm:"->" json:"commentsCount"`
	// IsLiked indicates whether the requesting user liked this post (computed)
	IsLiked bool `gorm:"->" json:"isLiked"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PostMedia is an image attachment on a post. Rows are created alongside
// the post and never mutated independently. Position preserves the order
// the files arrived in; it is not required to be unique.
type PostMedia struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	PostID   uint   `gorm:"not null;index" json:"post_id"`
	URL      string `gorm:"not null" json:"url"`
	Position int    `gorm:"not null;default:0" json:"position"`
	MimeType string `json:"mime_type,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
