package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/EgehanKilicarslan/bookmarks-api/internal/database/models"
	"github.com/EgehanKilicarslan/bookmarks-api/internal/database/repository"
)

// TagService defines the interface for tag business logic
type TagService interface {
	List(ctx context.Context, ownerID uint, offset, limit int) ([]models.Tag, int64, error)

	// Create is idempotent: an existing tag with the same name is returned
	// with created=false.
	Create(ctx context.Context, ownerID uint, name string) (tag *models.Tag, created bool, err error)
	Delete(ctx context.Context, ownerID, tagID uint) error
}

type tagService struct {
	store  repository.Store
	logger *slog.Logger
	now    func() time.Time
}

// NewTagService creates a new tag service instance
func NewTagService(store repository.Store, logger *slog.Logger) TagService {
	return NewTagServiceWithClock(store, logger, time.Now)
}

// NewTagServiceWithClock is NewTagService with an injectable clock
func NewTagServiceWithClock(store repository.Store, logger *slog.Logger, now func() time.Time) TagService {
	return &tagService{
		store:  store,
		logger: logger,
		now:    now,
	}
}

// NormalizeTagNames trims every name and drops repeats, keeping the first
// occurrence. A name that is blank once trimmed is rejected.
func NormalizeTagNames(names []string) ([]string, error) {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" {
			return nil, invalid("tags", "tag name must not be blank")
		}
		if utf8.RuneCountInString(name) > models.MaxTagNameLength {
			return nil, invalid("tags", "tag name must be at most 64 characters")
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out, nil
}

// resolveTags returns the owner's tags for names, creating missing ones
func resolveTags(tx repository.Store, ownerID uint, names []string, now time.Time) ([]models.Tag, error) {
	tags := make([]models.Tag, 0, len(names))
	for _, name := range names {
		tag, _, err := tx.Tags().FindOrCreate(ownerID, name, now)
		if err != nil {
			return nil, err
		}
		tags = append(tags, *tag)
	}
	return tags, nil
}

func (s *tagService) List(ctx context.Context, ownerID uint, offset, limit int) ([]models.Tag, int64, error) {
	var (
		tags  []models.Tag
		total int64
	)
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		var err error
		tags, total, err = tx.Tags().ListByOwner(ownerID, offset, limit)
		return err
	})
	if err != nil {
		s.logger.Error("❌ [TagService] Failed to list tags", "user_id", ownerID, "error", err)
		return nil, 0, err
	}
	return tags, total, nil
}

func (s *tagService) Create(ctx context.Context, ownerID uint, name string) (*models.Tag, bool, error) {
	names, err := NormalizeTagNames([]string{name})
	var verr *ValidationError
	if errors.As(err, &verr) {
		return nil, false, invalid("name", verr.Message)
	}

	var (
		tag     *models.Tag
		created bool
	)
	err = s.store.Transaction(ctx, func(tx repository.Store) error {
		var err error
		tag, created, err = tx.Tags().FindOrCreate(ownerID, names[0], s.now().UTC())
		return err
	})
	if err != nil {
		s.logger.Error("❌ [TagService] Failed to create tag", "user_id", ownerID, "error", err)
		return nil, false, err
	}

	if created {
		s.logger.Info("✅ [TagService] Tag created", "user_id", ownerID, "tag_id", tag.ID)
	}
	return tag, created, nil
}

func (s *tagService) Delete(ctx context.Context, ownerID, tagID uint) error {
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		return tx.Tags().Delete(ownerID, tagID)
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTagNotFound
		}
		s.logger.Error("❌ [TagService] Failed to delete tag", "user_id", ownerID, "tag_id", tagID, "error", err)
		return err
	}

	s.logger.Info("🗑️ [TagService] Tag deleted", "user_id", ownerID, "tag_id", tagID)
	return nil
}
