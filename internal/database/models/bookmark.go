package models

import (
	"time"
)

// Field limits shared by the schema layer and the migrations
const (
	MaxURLLength         = 2048
	MaxTitleLength       = 500
	MaxDescriptionLength = 4000
	MaxFaviconLength     = 2000
	MaxCodeLength        = 64
	MaxTagNameLength     = 64
)

// Bookmark is a saved URL. It belongs to exactly one user and carries any
// number of that user's tags.
type Bookmark struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	UserID      uint      `gorm:"not null;index;uniqueIndex:uidx_bookmarks_user_code" json:"user_id"`
	URL         string    `gorm:"not null;size:2048" json:"url"`
	Title       string    `gorm:"not null;default:'';size:500" json:"title"`
	Description string    `gorm:"not null;default:'';size:4000" json:"description"`
	Favicon     string    `gorm:"not null;default:'';size:2000" json:"favicon"`
	Code        *string   `gorm:"size:64;uniqueIndex:uidx_bookmarks_user_code" json:"code"`
	IsArchived  bool      `gorm:"not null;default:false;index" json:"is_archived"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relationships
	Tags []Tag `gorm:"many2many:bookmark_tags;" json:"tags"`
}

// TableName overrides the table name
func (Bookmark) TableName() string {
	return "bookmarks"
}

// TagNames returns the names of the attached tags
func (b *Bookmark) TagNames() []string {
	names := make([]string, 0, len(b.Tags))
	for _, t := range b.Tags {
		names = append(names, t.Name)
	}
	return names
}

// BookmarkTag is a row of the bookmark_tags join table
type BookmarkTag struct {
	BookmarkID uint `gorm:"primaryKey"`
	TagID      uint `gorm:"primaryKey;index"`
}

// TableName overrides the table name
func (BookmarkTag) TableName() string {
	return "bookmark_tags"
}
