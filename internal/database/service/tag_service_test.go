package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EgehanKilicarslan/bookmarks-api/internal/database/models"
	"github.com/EgehanKilicarslan/bookmarks-api/internal/database/repository"
	"github.com/EgehanKilicarslan/bookmarks-api/internal/database/service"
	"github.com/EgehanKilicarslan/bookmarks-api/internal/testutil"
)

type fixture struct {
	store     repository.Store
	clock     *testutil.Clock
	tags      service.TagService
	bookmarks service.BookmarkService
}

func setupServices(t *testing.T) *fixture {
	t.Helper()
	store := repository.NewStore(testutil.NewTestDB(t))
	clock := testutil.NewClock(start)
	log := testutil.TestLogger()
	return &fixture{
		store:     store,
		clock:     clock,
		tags:      service.NewTagServiceWithClock(store, log, clock.Now),
		bookmarks: service.NewBookmarkServiceWithClock(store, log, clock.Now),
	}
}

func (f *fixture) user(t *testing.T, email string) uint {
	t.Helper()
	u := &models.User{Email: email, PasswordHash: "hash", CreatedAt: start, UpdatedAt: start}
	require.NoError(t, f.store.Users().Create(u))
	return u.ID
}

func TestNormalizeTagNames(t *testing.T) {
	tests := []struct {
		name    string
		input   []string
		want    []string
		wantErr bool
	}{
		{name: "empty", input: nil, want: []string{}},
		{name: "trims", input: []string{"  go ", "db"}, want: []string{"go", "db"}},
		{name: "drops duplicates keeping first", input: []string{"b", "a", " b", "a"}, want: []string{"b", "a"}},
		{name: "case sensitive", input: []string{"Go", "go"}, want: []string{"Go", "go"}},
		{name: "blank after trim", input: []string{"go", "   "}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := service.NormalizeTagNames(tt.input)
			if tt.wantErr {
				var verr *service.ValidationError
				assert.ErrorAs(t, err, &verr)
				assert.Equal(t, "tags", verr.Field)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTagService_CreateIsIdempotent(t *testing.T) {
	f := setupServices(t)
	ctx := context.Background()
	owner := f.user(t, "alice@example.com")

	first, created, err := f.tags.Create(ctx, owner, "  golang ")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "golang", first.Name)

	again, created, err := f.tags.Create(ctx, owner, "golang")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, again.ID)

	_, total, err := f.tags.List(ctx, owner, 0, 50)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestTagService_CreateBlankName(t *testing.T) {
	f := setupServices(t)
	owner := f.user(t, "alice@example.com")

	tag, _, err := f.tags.Create(context.Background(), owner, "   ")

	var verr *service.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "name", verr.Field)
	assert.Nil(t, tag)
}

func TestTagService_ListIsPerOwner(t *testing.T) {
	f := setupServices(t)
	ctx := context.Background()
	alice := f.user(t, "alice@example.com")
	bob := f.user(t, "bob@example.com")

	_, _, err := f.tags.Create(ctx, alice, "a")
	require.NoError(t, err)
	_, _, err = f.tags.Create(ctx, bob, "b")
	require.NoError(t, err)

	tags, total, err := f.tags.List(ctx, alice, 0, 50)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, tags, 1)
	assert.Equal(t, "a", tags[0].Name)
}

func TestTagService_Delete(t *testing.T) {
	f := setupServices(t)
	ctx := context.Background()
	alice := f.user(t, "alice@example.com")
	bob := f.user(t, "bob@example.com")

	bookmark, err := f.bookmarks.Create(ctx, alice, "https://go.dev", []string{"go", "lang"})
	require.NoError(t, err)

	var goID uint
	for _, tg := range bookmark.Tags {
		if tg.Name == "go" {
			goID = tg.ID
		}
	}
	require.NotZero(t, goID)

	assert.ErrorIs(t, f.tags.Delete(ctx, bob, goID), service.ErrTagNotFound)

	require.NoError(t, f.tags.Delete(ctx, alice, goID))
	assert.ErrorIs(t, f.tags.Delete(ctx, alice, goID), service.ErrTagNotFound)

	reloaded, err := f.bookmarks.Get(ctx, alice, bookmark.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"lang"}, reloaded.TagNames())
}
