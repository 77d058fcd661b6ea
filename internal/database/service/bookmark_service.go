package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/EgehanKilicarslan/bookmarks-api/internal/database/models"
	"github.com/EgehanKilicarslan/bookmarks-api/internal/database/repository"
)

// BookmarkPatch carries the fields of a partial update. Nil fields are left
// untouched; a non-nil Tags replaces the whole tag set and an empty Code
// clears the short code.
type BookmarkPatch struct {
	Title       *string
	Description *string
	Favicon     *string
	Code        *string
	IsArchived  *bool
	Tags        *[]string
}

// BookmarkService defines the interface for bookmark business logic
type BookmarkService interface {
	Create(ctx context.Context, ownerID uint, url string, tags []string) (*models.Bookmark, error)
	List(ctx context.Context, ownerID uint, filter repository.BookmarkFilter, offset, limit int) ([]models.Bookmark, int64, error)
	Get(ctx context.Context, ownerID, bookmarkID uint) (*models.Bookmark, error)
	GetByCode(ctx context.Context, ownerID uint, code string) (*models.Bookmark, error)
	Update(ctx context.Context, ownerID, bookmarkID uint, patch BookmarkPatch) (*models.Bookmark, error)
	Delete(ctx context.Context, ownerID, bookmarkID uint) error
}

type bookmarkService struct {
	store  repository.Store
	logger *slog.Logger
	now    func() time.Time
}

// NewBookmarkService creates a new bookmark service instance
func NewBookmarkService(store repository.Store, logger *slog.Logger) BookmarkService {
	return NewBookmarkServiceWithClock(store, logger, time.Now)
}

// NewBookmarkServiceWithClock is NewBookmarkService with an injectable clock
func NewBookmarkServiceWithClock(store repository.Store, logger *slog.Logger, now func() time.Time) BookmarkService {
	return &bookmarkService{
		store:  store,
		logger: logger,
		now:    now,
	}
}

func (s *bookmarkService) Create(ctx context.Context, ownerID uint, url string, tagNames []string) (*models.Bookmark, error) {
	names, err := NormalizeTagNames(tagNames)
	if err != nil {
		return nil, err
	}

	var bookmark *models.Bookmark
	err = s.store.Transaction(ctx, func(tx repository.Store) error {
		now := s.now().UTC()

		tags, err := resolveTags(tx, ownerID, names, now)
		if err != nil {
			return err
		}

		bookmark = &models.Bookmark{
			UserID:    ownerID,
			URL:       strings.TrimSpace(url),
			CreatedAt: now,
			UpdatedAt: now,
			Tags:      tags,
		}
		return tx.Bookmarks().Create(bookmark)
	})
	if err != nil {
		s.logger.Error("❌ [BookmarkService] Failed to create bookmark", "user_id", ownerID, "error", err)
		return nil, err
	}

	s.logger.Info("✅ [BookmarkService] Bookmark created",
		"user_id", ownerID,
		"bookmark_id", bookmark.ID,
		"tags", len(bookmark.Tags),
	)
	return bookmark, nil
}

func (s *bookmarkService) List(
	ctx context.Context,
	ownerID uint,
	filter repository.BookmarkFilter,
	offset, limit int,
) ([]models.Bookmark, int64, error) {
	if filter.Tag != nil {
		name := strings.TrimSpace(*filter.Tag)
		filter.Tag = &name
	}

	var (
		bookmarks []models.Bookmark
		total     int64
	)
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		var err error
		bookmarks, total, err = tx.Bookmarks().List(ownerID, filter, offset, limit)
		return err
	})
	if err != nil {
		s.logger.Error("❌ [BookmarkService] Failed to list bookmarks", "user_id", ownerID, "error", err)
		return nil, 0, err
	}
	return bookmarks, total, nil
}

func (s *bookmarkService) Get(ctx context.Context, ownerID, bookmarkID uint) (*models.Bookmark, error) {
	var bookmark *models.Bookmark
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		var err error
		bookmark, err = tx.Bookmarks().FindByID(ownerID, bookmarkID)
		return err
	})
	if err != nil {
		return nil, s.notFound(err)
	}
	return bookmark, nil
}

func (s *bookmarkService) GetByCode(ctx context.Context, ownerID uint, code string) (*models.Bookmark, error) {
	var bookmark *models.Bookmark
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		var err error
		bookmark, err = tx.Bookmarks().FindByCode(ownerID, strings.TrimSpace(code))
		return err
	})
	if err != nil {
		return nil, s.notFound(err)
	}
	return bookmark, nil
}

func (s *bookmarkService) Update(ctx context.Context, ownerID, bookmarkID uint, patch BookmarkPatch) (*models.Bookmark, error) {
	var names []string
	if patch.Tags != nil {
		var err error
		if names, err = NormalizeTagNames(*patch.Tags); err != nil {
			return nil, err
		}
	}

	var bookmark *models.Bookmark
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		var err error
		bookmark, err = tx.Bookmarks().FindByID(ownerID, bookmarkID)
		if err != nil {
			return err
		}

		if patch.Title != nil {
			bookmark.Title = *patch.Title
		}
		if patch.Description != nil {
			bookmark.Description = *patch.Description
		}
		if patch.Favicon != nil {
			bookmark.Favicon = *patch.Favicon
		}
		if patch.IsArchived != nil {
			bookmark.IsArchived = *patch.IsArchived
		}
		if patch.Code != nil {
			if err := s.applyCode(tx, bookmark, *patch.Code); err != nil {
				return err
			}
		}

		now := s.now().UTC()
		if now.Before(bookmark.CreatedAt) {
			now = bookmark.CreatedAt
		}
		bookmark.UpdatedAt = now

		if patch.Tags != nil {
			if bookmark.Tags, err = resolveTags(tx, ownerID, names, now); err != nil {
				return err
			}
		}

		if err := tx.Bookmarks().Update(bookmark, patch.Tags != nil); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return ErrCodeTaken
			}
			return err
		}

		bookmark, err = tx.Bookmarks().FindByID(ownerID, bookmarkID)
		return err
	})
	if err != nil {
		return nil, s.notFound(err)
	}

	s.logger.Info("✏️ [BookmarkService] Bookmark updated", "user_id", ownerID, "bookmark_id", bookmarkID)
	return bookmark, nil
}

func (s *bookmarkService) applyCode(tx repository.Store, bookmark *models.Bookmark, raw string) error {
	code := strings.TrimSpace(raw)
	if code == "" {
		bookmark.Code = nil
		return nil
	}

	existing, err := tx.Bookmarks().FindByCode(bookmark.UserID, code)
	switch {
	case err == nil && existing.ID != bookmark.ID:
		return ErrCodeTaken
	case err != nil && !errors.Is(err, repository.ErrNotFound):
		return err
	}

	bookmark.Code = &code
	return nil
}

func (s *bookmarkService) Delete(ctx context.Context, ownerID, bookmarkID uint) error {
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		return tx.Bookmarks().Delete(ownerID, bookmarkID)
	})
	if err != nil {
		return s.notFound(err)
	}

	s.logger.Info("🗑️ [BookmarkService] Bookmark deleted", "user_id", ownerID, "bookmark_id", bookmarkID)
	return nil
}

// notFound maps a missing row to ErrBookmarkNotFound and logs anything
// that is not a domain error
func (s *bookmarkService) notFound(err error) error {
	var verr *ValidationError
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrBookmarkNotFound
	case errors.Is(err, ErrCodeTaken), errors.As(err, &verr):
		return err
	default:
		s.logger.Error("❌ [BookmarkService] Database error", "error", err)
		return err
	}
}
