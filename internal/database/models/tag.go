package models

import (
	"time"
)

// Tag is a label owned by a single user. Names are unique per owner.
type Tag struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:uidx_tags_user_name" json:"user_id"`
	Name      string    `gorm:"not null;size:64;uniqueIndex:uidx_tags_user_name" json:"name"`
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	Bookmarks []Bookmark `gorm:"many2many:bookmark_tags;" json:"-"`
}

// TableName overrides the table name
func (Tag) TableName() string {
	return "tags"
}
