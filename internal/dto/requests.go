package dto

import (
	"strings"

	"github.com/EgehanKilicarslan/bookmarks-api/internal/database/repository"
	"github.com/EgehanKilicarslan/bookmarks-api/internal/database/service"
)

// Pagination bounds
const (
	DefaultLimit = 50
	MaxLimit     = 200
)

type SignupRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email,max=320"`
	Password string `json:"password" form:"password" binding:"required,min=8,max=256"`
}

type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required,max=320"`
	Password string `json:"password" form:"password" binding:"required,max=256"`
}

type TagCreateRequest struct {
	Name string `json:"name" binding:"required,min=1,max=64"`
}

type BookmarkCreateRequest struct {
	URL  string   `json:"url" binding:"required,http_url,max=2048"`
	Tags []string `json:"tags" binding:"omitempty,dive,required,max=64"`
}

// BookmarkUpdateRequest is a partial update; absent fields stay unchanged
type BookmarkUpdateRequest struct {
	Title       *string   `json:"title" binding:"omitnil,max=500"`
	Description *string   `json:"description" binding:"omitnil,max=4000"`
	Favicon     *string   `json:"favicon" binding:"omitnil,max=2000"`
	Code        *string   `json:"code" binding:"omitnil,max=64"`
	Tags        *[]string `json:"tags" binding:"omitnil,dive,required,max=64"`
	IsArchived  *bool     `json:"is_archived"`
}

// Patch converts the request into the service's partial update
func (r BookmarkUpdateRequest) Patch() service.BookmarkPatch {
	return service.BookmarkPatch{
		Title:       r.Title,
		Description: r.Description,
		Favicon:     r.Favicon,
		Code:        r.Code,
		IsArchived:  r.IsArchived,
		Tags:        r.Tags,
	}
}

type PageQuery struct {
	Skip  int  `form:"skip" binding:"min=0"`
	Limit *int `form:"limit" binding:"omitnil,min=1,max=200"`
}

// Offset returns the number of rows to skip
func (q PageQuery) Offset() int {
	return q.Skip
}

// PageSize returns the requested limit or DefaultLimit
func (q PageQuery) PageSize() int {
	if q.Limit == nil {
		return DefaultLimit
	}
	return *q.Limit
}

type BookmarkListQuery struct {
	PageQuery
	Tag      *string `form:"tag" binding:"omitnil,max=64"`
	Archived *bool   `form:"archived"`
}

// Filter returns the repository filter; a blank tag means no tag filter
func (q BookmarkListQuery) Filter() repository.BookmarkFilter {
	filter := repository.BookmarkFilter{Archived: q.Archived}
	if q.Tag != nil && strings.TrimSpace(*q.Tag) != "" {
		filter.Tag = q.Tag
	}
	return filter
}
