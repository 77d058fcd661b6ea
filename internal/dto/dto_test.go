package dto_test

import (
	"encoding/json"
	"io"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EgehanKilicarslan/bookmarks-api/internal/database/models"
	"github.com/EgehanKilicarslan/bookmarks-api/internal/database/service"
	"github.com/EgehanKilicarslan/bookmarks-api/internal/dto"
)

func ptr[T any](v T) *T {
	return &v
}

func TestPageQuery(t *testing.T) {
	q := dto.PageQuery{}
	assert.Equal(t, 0, q.Offset())
	assert.Equal(t, dto.DefaultLimit, q.PageSize())

	q = dto.PageQuery{Skip: 10, Limit: ptr(5)}
	assert.Equal(t, 10, q.Offset())
	assert.Equal(t, 5, q.PageSize())
}

func TestBookmarkListQuery_Filter(t *testing.T) {
	tests := []struct {
		name    string
		query   dto.BookmarkListQuery
		wantTag *string
	}{
		{name: "no tag", query: dto.BookmarkListQuery{}},
		{name: "blank tag ignored", query: dto.BookmarkListQuery{Tag: ptr("  ")}},
		{name: "tag kept", query: dto.BookmarkListQuery{Tag: ptr("go")}, wantTag: ptr("go")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter := tt.query.Filter()
			assert.Equal(t, tt.wantTag, filter.Tag)
			assert.Nil(t, filter.Archived)
		})
	}

	filter := dto.BookmarkListQuery{Archived: ptr(true)}.Filter()
	require.NotNil(t, filter.Archived)
	assert.True(t, *filter.Archived)
}

func TestBookmarkUpdateRequest_Patch(t *testing.T) {
	tags := []string{"a"}
	req := dto.BookmarkUpdateRequest{Title: ptr("t"), IsArchived: ptr(false), Tags: &tags}

	patch := req.Patch()

	assert.Equal(t, "t", *patch.Title)
	assert.False(t, *patch.IsArchived)
	assert.Equal(t, []string{"a"}, *patch.Tags)
	assert.Nil(t, patch.Description)
	assert.Nil(t, patch.Favicon)
	assert.Nil(t, patch.Code)
}

func TestToBookmarkOut_SortsTags(t *testing.T) {
	created := time.Date(2025, 1, 1, 12, 0, 0, 0, time.FixedZone("X", 3600))
	b := &models.Bookmark{
		ID:        7,
		URL:       "https://go.dev",
		CreatedAt: created,
		UpdatedAt: created,
		Tags: []models.Tag{
			{ID: 3, Name: "zeta"},
			{ID: 1, Name: "alpha"},
			{ID: 2, Name: "Beta"},
		},
	}

	out := dto.ToBookmarkOut(b)

	assert.Equal(t, []dto.TagOut{{ID: 2, Name: "Beta"}, {ID: 1, Name: "alpha"}, {ID: 3, Name: "zeta"}}, out.Tags)
	assert.Equal(t, time.UTC, out.CreatedAt.Location())
	assert.True(t, out.CreatedAt.Equal(created))
	assert.Nil(t, out.Code)
}

func TestToBookmarkOut_EmptyTagsEncodeAsArray(t *testing.T) {
	raw, err := json.Marshal(dto.ToBookmarkOut(&models.Bookmark{ID: 1}))
	require.NoError(t, err)

	assert.Contains(t, string(raw), `"tags":[]`)
	assert.Contains(t, string(raw), `"code":null`)
}

func TestNewBookmarkPage(t *testing.T) {
	page := dto.NewBookmarkPage(nil, 12, dto.PageQuery{Skip: 10})

	assert.Empty(t, page.Items)
	assert.NotNil(t, page.Items)
	assert.Equal(t, int64(12), page.Total)
	assert.Equal(t, dto.DefaultLimit, page.Limit)
	assert.Equal(t, 10, page.Skip)
}

func TestToToken(t *testing.T) {
	token := dto.ToToken(&service.AccessToken{Token: "abc", ExpiresIn: 1800})

	assert.Equal(t, dto.Token{AccessToken: "abc", TokenType: "bearer", ExpiresIn: 1800}, token)
}

// ==================== VALIDATION ====================

func TestNewValidationResponse_BindingErrors(t *testing.T) {
	dto.RegisterValidator()

	tests := []struct {
		name      string
		request   any
		wantField string
		wantMsg   string
	}{
		{
			name:      "missing email",
			request:   &dto.SignupRequest{Password: "password123"},
			wantField: "email",
			wantMsg:   "email is required",
		},
		{
			name:      "bad email",
			request:   &dto.SignupRequest{Email: "nope", Password: "password123"},
			wantField: "email",
			wantMsg:   "not a valid email address",
		},
		{
			name:      "short password",
			request:   &dto.SignupRequest{Email: "a@example.com", Password: "short"},
			wantField: "password",
			wantMsg:   "password must be at least 8 characters",
		},
		{
			name:      "bad url",
			request:   &dto.BookmarkCreateRequest{URL: "ftp://example.com"},
			wantField: "url",
			wantMsg:   "not a valid URL",
		},
		{
			name:      "long code",
			request:   &dto.BookmarkUpdateRequest{Code: ptr(strings.Repeat("x", 65))},
			wantField: "code",
			wantMsg:   "code must be at most 64 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := binding.Validator.ValidateStruct(tt.request)
			require.Error(t, err)

			resp := dto.NewValidationResponse(err)

			require.Len(t, resp.Errors, 1)
			assert.Equal(t, tt.wantField, resp.Errors[0].Field)
			assert.Equal(t, tt.wantMsg, resp.Errors[0].Message)
			assert.Equal(t, tt.wantMsg, resp.Detail)
		})
	}
}

func TestNewValidationResponse_OtherErrors(t *testing.T) {
	var body dto.BookmarkCreateRequest
	syntaxErr := json.Unmarshal([]byte("{]"), &body)
	typeErr := json.Unmarshal([]byte(`{"url": 5}`), &body)

	_, numErr := strconv.Atoi("ten")

	tests := []struct {
		name      string
		err       error
		wantField string
		wantMsg   string
	}{
		{name: "syntax", err: syntaxErr, wantField: "body", wantMsg: "malformed JSON body"},
		{name: "empty body", err: io.EOF, wantField: "body", wantMsg: "malformed JSON body"},
		{name: "wrong type", err: typeErr, wantField: "url", wantMsg: "url must be of type string"},
		{name: "bad number", err: numErr, wantField: "query", wantMsg: `invalid value "ten"`},
		{
			name:      "service validation",
			err:       &service.ValidationError{Field: "tags", Message: "tag name must not be blank"},
			wantField: "tags",
			wantMsg:   "tag name must not be blank",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Error(t, tt.err)

			resp := dto.NewValidationResponse(tt.err)

			require.Len(t, resp.Errors, 1)
			assert.Equal(t, tt.wantField, resp.Errors[0].Field)
			assert.Equal(t, tt.wantMsg, resp.Errors[0].Message)
			assert.Equal(t, tt.wantMsg, resp.Detail)
		})
	}
}
