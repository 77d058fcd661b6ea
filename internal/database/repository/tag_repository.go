package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/EgehanKilicarslan/bookmarks-api/internal/database/models"
)

// TagRepository defines the interface for tag data operations.
// Every method is scoped to the owning user.
type TagRepository interface {
	ListByOwner(ownerID uint, offset, limit int) ([]models.Tag, int64, error)
	FindByID(ownerID, id uint) (*models.Tag, error)
	FindByName(ownerID uint, name string) (*models.Tag, error)

	// FindOrCreate returns the owner's tag with the given name, inserting it
	// if it does not exist yet. created reports whether this call inserted it.
	FindOrCreate(ownerID uint, name string, now time.Time) (tag *models.Tag, created bool, err error)

	// Delete removes the tag and its bookmark associations
	Delete(ownerID, id uint) error
}

type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository creates a new tag repository instance
func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) ListByOwner(ownerID uint, offset, limit int) ([]models.Tag, int64, error) {
	var total int64
	if err := r.db.Model(&models.Tag{}).Where("user_id = ?", ownerID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	tags := []models.Tag{}
	err := r.db.Where("user_id = ?", ownerID).
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&tags).Error
	if err != nil {
		return nil, 0, err
	}

	return tags, total, nil
}

func (r *tagRepository) FindByID(ownerID, id uint) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.Where("id = ? AND user_id = ?", id, ownerID).First(&tag).Error; err != nil {
		return nil, translate(err)
	}
	return &tag, nil
}

func (r *tagRepository) FindByName(ownerID uint, name string) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.Where("user_id = ? AND name = ?", ownerID, name).First(&tag).Error; err != nil {
		return nil, translate(err)
	}
	return &tag, nil
}

func (r *tagRepository) FindOrCreate(ownerID uint, name string, now time.Time) (*models.Tag, bool, error) {
	tag, err := r.FindByName(ownerID, name)
	if err == nil {
		return tag, false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, false, err
	}

	// a concurrent insert of the same name is absorbed by the unique index
	candidate := &models.Tag{UserID: ownerID, Name: name, CreatedAt: now}
	result := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(candidate)
	if result.Error != nil {
		return nil, false, translate(result.Error)
	}

	tag, err = r.FindByName(ownerID, name)
	if err != nil {
		return nil, false, err
	}
	return tag, result.RowsAffected == 1, nil
}

func (r *tagRepository) Delete(ownerID, id uint) error {
	tag, err := r.FindByID(ownerID, id)
	if err != nil {
		return err
	}

	if err := r.db.Where("tag_id = ?", tag.ID).Delete(&models.BookmarkTag{}).Error; err != nil {
		return err
	}

	return r.db.Delete(tag).Error
}
