// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// DefaultAuthor is the fixed identity every API-created comment is attributed
// to. There is no authentication; a redesign introducing real identity should
// replace this with a principal lookup at the API boundary.
const DefaultAuthor = "Admin"

// Comment is a single board entry. Date is assigned once at creation and is
// the sole ordering key for listing (newest first). Likes is persisted and
// indexed but no exposed operation mutates it.
type Comment struct {
	ID     uint      `gorm:"primaryKey" json:"id"`
	Author string    `gorm:"not null" json:"author"`
	Text   string    `gorm:"not null" json:"text"`
	Date   time.Time `gorm:"not null;index:idx_comments_date" json:"date"`
	Likes  int       `gorm:"not null;default:0;index:idx_comments_likes" json:"likes"`
	Image  *string   `json:"image"`
}

// DeleteCommentResponse is the payload returned by a successful delete.
type DeleteCommentResponse struct {
	Message        string  `json:"message"`
	DeletedComment Comment `json:"deletedComment"`
}
