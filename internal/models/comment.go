package models

import (
	"time"
)

// Comment represents a comment on a post. ParentID is nil for a top-level
// comment and references another comment when this row is a reply. The
// schema allows arbitrary depth but the application only materializes one
// level of replies.
type Comment struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	PostID   uint   `gorm:"not null;index" json:"post_id"`
	UserID   uint   `gorm:"not null;index" json:"user_id"`
	ParentID *uint  `gorm:"index" json:"parent_id"`
	Text     string `gorm:"type:text;not null" json:"text"`

	Author  User          `gorm:"foreignKey:UserID" json:"author"`
	Parent  *Comment      `gorm:"foreignKey:ParentID" json:"-"`
	Replies []Comment     `gorm:"foreignKey:ParentID" json:"replies"`
	Likes   []CommentLike `gorm:"foreignKey:CommentID" json:"likes"`

	// IsLiked indicates whether the requesting user liked this comment (computed)
	IsLiked bool `gorm:"->" json:"isLiked"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
