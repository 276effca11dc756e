package repositories

import (
	"context"
	"fmt"

	"github.com/desertthunder/scaffold/internal/models"
	"github.com/desertthunder/scaffold/internal/shared"
	"gorm.io/gorm"
)

// EntryRepository implements [models.Repository] for [models.Entry] persistence.
type EntryRepository struct {
	db *gorm.DB
}

// NewEntryRepository creates a new [EntryRepository] with the given gorm handle
func NewEntryRepository(db *gorm.DB) *EntryRepository {
	return &EntryRepository{db: db}
}

// Create inserts a new entry for an existing user; the storage engine assigns its id.
func (r *EntryRepository) Create(ctx context.Context, entry *models.Entry) error {
	if err := requireNew("entry", entry); err != nil {
		return err
	}

	if err := entry.Validate(); err != nil {
		return err
	}

	if err := r.ownerExists(ctx, entry.UserID); err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("failed to insert entry: %w", err)
	}

	return nil
}

// Get retrieves an entry by id
func (r *EntryRepository) Get(ctx context.Context, id int64) (*models.Entry, error) {
	var entry models.Entry
	if err := r.db.WithContext(ctx).First(&entry, id).Error; err != nil {
		return nil, notFound(err, "entry", id)
	}
	return &entry, nil
}

// Update writes every column of an existing entry
func (r *EntryRepository) Update(ctx context.Context, entry *models.Entry) error {
	id, err := requirePersisted("entry", entry)
	if err != nil {
		return err
	}

	if err := entry.Validate(); err != nil {
		return err
	}

	if err := r.ownerExists(ctx, entry.UserID); err != nil {
		return err
	}

	return affected(r.db.WithContext(ctx).Model(entry).Select("*").Omit("id").Updates(entry), "update", "entry", id)
}

// Delete removes an entry by id
func (r *EntryRepository) Delete(ctx context.Context, id int64) error {
	return affected(r.db.WithContext(ctx).Delete(&models.Entry{}, id), "delete", "entry", id)
}

// List retrieves all entries matching the given criteria, ordered by id.
//
// Supported criteria: "user_id" (int64), "title" (string).
func (r *EntryRepository) List(ctx context.Context, criteria map[string]any) ([]*models.Entry, error) {
	query := r.db.WithContext(ctx).Model(&models.Entry{})

	if userID, ok := criteria["user_id"].(int64); ok && userID != 0 {
		query = query.Where("user_id = ?", userID)
	}

	if title, ok := criteria["title"].(string); ok && title != "" {
		query = query.Where("title = ?", title)
	}

	var entries []*models.Entry
	if err := query.Order("id ASC").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}

	return entries, nil
}

// ListByUser retrieves every entry owned by userID
func (r *EntryRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Entry, error) {
	return r.List(ctx, map[string]any{"user_id": userID})
}

func (r *EntryRepository) ownerExists(ctx context.Context, userID int64) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to query user: %w", err)
	}
	if count == 0 {
		return fmt.Errorf("%w: user %d", shared.ErrNotFound, userID)
	}
	return nil
}
