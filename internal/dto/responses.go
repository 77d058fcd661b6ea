package dto

import (
	"sort"
	"time"

	"github.com/EgehanKilicarslan/bookmarks-api/internal/database/models"
	"github.com/EgehanKilicarslan/bookmarks-api/internal/database/service"
)

type UserOut struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
}

type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

type TagOut struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type BookmarkOut struct {
	ID          uint      `json:"id"`
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Favicon     string    `json:"favicon"`
	Code        *string   `json:"code"`
	IsArchived  bool      `json:"is_archived"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Tags        []TagOut  `json:"tags"`
}

// Page is the pagination envelope for list endpoints
type Page[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Limit int   `json:"limit"`
	Skip  int   `json:"skip"`
}

type HealthOut struct {
	Status string `json:"status"`
}

func ToUserOut(u *models.User) UserOut {
	return UserOut{ID: u.ID, Email: u.Email}
}

func ToToken(t *service.AccessToken) Token {
	return Token{
		AccessToken: t.Token,
		TokenType:   "bearer",
		ExpiresIn:   t.ExpiresIn,
	}
}

func ToTagOut(t *models.Tag) TagOut {
	return TagOut{ID: t.ID, Name: t.Name}
}

// ToBookmarkOut maps a bookmark; tags are sorted by name
func ToBookmarkOut(b *models.Bookmark) BookmarkOut {
	tags := make([]TagOut, 0, len(b.Tags))
	for i := range b.Tags {
		tags = append(tags, ToTagOut(&b.Tags[i]))
	}
	sort.Slice(tags, func(i, j int) bool {
		if tags[i].Name == tags[j].Name {
			return tags[i].ID < tags[j].ID
		}
		return tags[i].Name < tags[j].Name
	})

	return BookmarkOut{
		ID:          b.ID,
		URL:         b.URL,
		Title:       b.Title,
		Description: b.Description,
		Favicon:     b.Favicon,
		Code:        b.Code,
		IsArchived:  b.IsArchived,
		CreatedAt:   b.CreatedAt.UTC(),
		UpdatedAt:   b.UpdatedAt.UTC(),
		Tags:        tags,
	}
}

func NewTagPage(tags []models.Tag, total int64, q PageQuery) Page[TagOut] {
	items := make([]TagOut, 0, len(tags))
	for i := range tags {
		items = append(items, ToTagOut(&tags[i]))
	}
	return Page[TagOut]{Items: items, Total: total, Limit: q.PageSize(), Skip: q.Offset()}
}

func NewBookmarkPage(bookmarks []models.Bookmark, total int64, q PageQuery) Page[BookmarkOut] {
	items := make([]BookmarkOut, 0, len(bookmarks))
	for i := range bookmarks {
		items = append(items, ToBookmarkOut(&bookmarks[i]))
	}
	return Page[BookmarkOut]{Items: items, Total: total, Limit: q.PageSize(), Skip: q.Offset()}
}
