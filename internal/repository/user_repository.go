package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/shareit-platform/service-rental/internal/domain/apperr"
	"github.com/shareit-platform/service-rental/internal/domain/user"
)

// UserModel is the GORM model for the users table.
type UserModel struct {
	ID    int64  `gorm:"primaryKey;autoIncrement"`
	Name  string `gorm:"not null;size:255"`
	Email string `gorm:"uniqueIndex;not null;size:320"`
}

// TableName returns the table name for the GORM model.
func (UserModel) TableName() string {
	return "users"
}

// GormUserRepository is the GORM-based implementation of the user repository.
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository.
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// FindByID retrieves a user by id.
func (r *GormUserRepository) FindByID(ctx context.Context, id int64) (*user.User, error) {
	var model UserModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user", id)
		}
		return nil, fmt.Errorf("failed to find user by id: %w", err)
	}
	return user.Reconstruct(model.ID, model.Name, model.Email), nil
}

// FindAll retrieves every user, id-ascending.
func (r *GormUserRepository) FindAll(ctx context.Context) ([]*user.User, error) {
	var models []UserModel
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	users := make([]*user.User, len(models))
	for i, m := range models {
		users[i] = user.Reconstruct(m.ID, m.Name, m.Email)
	}
	return users, nil
}

// ExistsByEmail reports whether another user already claims the email.
func (r *GormUserRepository) ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&UserModel{}).Where("email = ?", email)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return count > 0, nil
}

// Save inserts a new user and assigns their id.
func (r *GormUserRepository) Save(ctx context.Context, u *user.User) error {
	model := &UserModel{ID: u.ID(), Name: u.Name(), Email: u.Email()}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	u.SetID(model.ID)
	return nil
}

// Update persists changes to an existing user.
func (r *GormUserRepository) Update(ctx context.Context, u *user.User) error {
	result := r.db.WithContext(ctx).
		Model(&UserModel{}).
		Where("id = ?", u.ID()).
		Updates(map[string]interface{}{
			"name":  u.Name(),
			"email": u.Email(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("user", u.ID())
	}
	return nil
}

// Delete removes a user by id.
func (r *GormUserRepository) Delete(ctx context.Context, id int64) error {
	if err := r.db.WithContext(ctx).Delete(&UserModel{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

// Exists reports whether a user with the given id is registered.
func (r *GormUserRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&UserModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	return count > 0, nil
}
