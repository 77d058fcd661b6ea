package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// Repository errors
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

// Store groups the repositories behind one database handle. Transaction
// hands fn a Store bound to a single transaction: it commits when fn
// returns nil and rolls back on error, panic, or cancellation of ctx.
type Store interface {
	Users() UserRepository
	Tags() TagRepository
	Bookmarks() BookmarkRepository
	Transaction(ctx context.Context, fn func(Store) error) error
}

type gormStore struct {
	db *gorm.DB
}

// NewStore creates a new store instance
func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Users() UserRepository {
	return NewUserRepository(s.db)
}

func (s *gormStore) Tags() TagRepository {
	return NewTagRepository(s.db)
}

func (s *gormStore) Bookmarks() BookmarkRepository {
	return NewBookmarkRepository(s.db)
}

func (s *gormStore) Transaction(ctx context.Context, fn func(Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}

// translate maps gorm errors onto the repository sentinels
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return err
	}
}
