package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/desertthunder/scaffold/internal/models"
	"github.com/desertthunder/scaffold/internal/shared"
	"gorm.io/gorm"
)

// UserRepository implements [models.Repository] for [models.User] persistence.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new [UserRepository] with the given gorm handle
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user; the storage engine assigns its id.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if err := requireNew("user", user); err != nil {
		return err
	}

	if err := user.Validate(); err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: login %q already taken", shared.ErrInvalidInput, user.Login)
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

// Get retrieves a user by id
func (r *UserRepository) Get(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, notFound(err, "user", id)
	}
	return &user, nil
}

// GetByLogin retrieves a user by its unique login
func (r *UserRepository) GetByLogin(ctx context.Context, login string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("login = ?", login).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: user %q", shared.ErrNotFound, login)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return &user, nil
}

// Update writes every column of an existing user
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	id, err := requirePersisted("user", user)
	if err != nil {
		return err
	}

	if err := user.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(user).Select("*").Omit("id").Updates(user)
	if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: login %q already taken", shared.ErrInvalidInput, user.Login)
	}
	return affected(result, "update", "user", id)
}

// Delete removes a user by id. Their entries are removed by the foreign key cascade.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	return affected(r.db.WithContext(ctx).Delete(&models.User{}, id), "delete", "user", id)
}

// List retrieves all users matching the given criteria, ordered by id.
//
// Supported criteria: "login" (string), "email" (string), "activated" (bool).
func (r *UserRepository) List(ctx context.Context, criteria map[string]any) ([]*models.User, error) {
	query := r.db.WithContext(ctx).Model(&models.User{})

	if login, ok := criteria["login"].(string); ok && login != "" {
		query = query.Where("login = ?", login)
	}

	if email, ok := criteria["email"].(string); ok && email != "" {
		query = query.Where("email = ?", email)
	}

	if activated, ok := criteria["activated"].(bool); ok {
		query = query.Where("activated = ?", activated)
	}

	var users []*models.User
	if err := query.Order("id ASC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}

	return users, nil
}
