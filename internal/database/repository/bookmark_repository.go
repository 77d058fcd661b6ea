package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/EgehanKilicarslan/bookmarks-api/internal/database/models"
)

// BookmarkFilter narrows a bookmark listing. Nil fields are not applied.
type BookmarkFilter struct {
	Tag      *string
	Archived *bool
}

// BookmarkRepository defines the interface for bookmark data operations.
// Every method is scoped to the owning user.
type BookmarkRepository interface {
	Create(bookmark *models.Bookmark) error
	FindByID(ownerID, id uint) (*models.Bookmark, error)
	FindByCode(ownerID uint, code string) (*models.Bookmark, error)
	List(ownerID uint, filter BookmarkFilter, offset, limit int) ([]models.Bookmark, int64, error)

	// Update writes the scalar fields of bookmark. When replaceTags is set the
	// tag set is replaced by bookmark.Tags.
	Update(bookmark *models.Bookmark, replaceTags bool) error

	// Delete removes the bookmark and its tag associations, never the tags
	Delete(ownerID, id uint) error
}

type bookmarkRepository struct {
	db *gorm.DB
}

// NewBookmarkRepository creates a new bookmark repository instance
func NewBookmarkRepository(db *gorm.DB) BookmarkRepository {
	return &bookmarkRepository{db: db}
}

func tagsByName(db *gorm.DB) *gorm.DB {
	return db.Order("tags.name ASC")
}

func (r *bookmarkRepository) Create(bookmark *models.Bookmark) error {
	// tags are resolved beforehand; only the join rows are written here
	if err := r.db.Omit(clause.Associations).Create(bookmark).Error; err != nil {
		return translate(err)
	}
	return r.link(bookmark.ID, bookmark.Tags)
}

func (r *bookmarkRepository) link(bookmarkID uint, tags []models.Tag) error {
	if len(tags) == 0 {
		return nil
	}

	links := make([]models.BookmarkTag, 0, len(tags))
	for _, t := range tags {
		links = append(links, models.BookmarkTag{BookmarkID: bookmarkID, TagID: t.ID})
	}
	return translate(r.db.Create(&links).Error)
}

func (r *bookmarkRepository) unlink(bookmarkID uint) error {
	return r.db.Where("bookmark_id = ?", bookmarkID).Delete(&models.BookmarkTag{}).Error
}

func (r *bookmarkRepository) FindByID(ownerID, id uint) (*models.Bookmark, error) {
	var bookmark models.Bookmark
	err := r.db.Preload("Tags", tagsByName).
		Where("id = ? AND user_id = ?", id, ownerID).
		First(&bookmark).Error
	if err != nil {
		return nil, translate(err)
	}
	return &bookmark, nil
}

func (r *bookmarkRepository) FindByCode(ownerID uint, code string) (*models.Bookmark, error) {
	var bookmark models.Bookmark
	err := r.db.Preload("Tags", tagsByName).
		Where("code = ? AND user_id = ?", code, ownerID).
		First(&bookmark).Error
	if err != nil {
		return nil, translate(err)
	}
	return &bookmark, nil
}

func (r *bookmarkRepository) List(ownerID uint, filter BookmarkFilter, offset, limit int) ([]models.Bookmark, int64, error) {
	scoped := func() *gorm.DB {
		q := r.db.Model(&models.Bookmark{}).Where("bookmarks.user_id = ?", ownerID)
		if filter.Tag != nil {
			tagged := r.db.Table("bookmark_tags").
				Select("bookmark_tags.bookmark_id").
				Joins("JOIN tags ON tags.id = bookmark_tags.tag_id").
				Where("tags.user_id = ? AND tags.name = ?", ownerID, *filter.Tag)
			q = q.Where("bookmarks.id IN (?)", tagged)
		}
		if filter.Archived != nil {
			q = q.Where("bookmarks.is_archived = ?", *filter.Archived)
		}
		return q
	}

	var total int64
	if err := scoped().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	bookmarks := []models.Bookmark{}
	err := scoped().
		Preload("Tags", tagsByName).
		Order("bookmarks.created_at DESC").
		Order("bookmarks.id DESC").
		Offset(offset).
		Limit(limit).
		Find(&bookmarks).Error
	if err != nil {
		return nil, 0, err
	}

	return bookmarks, total, nil
}

func (r *bookmarkRepository) Update(bookmark *models.Bookmark, replaceTags bool) error {
	// a map keeps gorm from overwriting updated_at with its own clock
	err := r.db.Model(&models.Bookmark{}).
		Where("id = ? AND user_id = ?", bookmark.ID, bookmark.UserID).
		Updates(map[string]interface{}{
			"title":       bookmark.Title,
			"description": bookmark.Description,
			"favicon":     bookmark.Favicon,
			"code":        bookmark.Code,
			"is_archived": bookmark.IsArchived,
			"updated_at":  bookmark.UpdatedAt,
		}).Error
	if err != nil {
		return translate(err)
	}

	if !replaceTags {
		return nil
	}

	if err := r.unlink(bookmark.ID); err != nil {
		return err
	}
	return r.link(bookmark.ID, bookmark.Tags)
}

func (r *bookmarkRepository) Delete(ownerID, id uint) error {
	var bookmark models.Bookmark
	if err := r.db.Where("id = ? AND user_id = ?", id, ownerID).First(&bookmark).Error; err != nil {
		return translate(err)
	}

	if err := r.unlink(bookmark.ID); err != nil {
		return err
	}

	return r.db.Delete(&bookmark).Error
}
