package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/shareit-platform/service-rental/internal/domain/apperr"
	"github.com/shareit-platform/service-rental/internal/domain/item"
	"github.com/shareit-platform/service-rental/internal/pagination"
)

// ItemModel is the GORM model for the items table.
type ItemModel struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	OwnerID     int64  `gorm:"not null;index"`
	Name        string `gorm:"not null;size:255"`
	Description string `gorm:"not null;size:1000"`
	Available   bool   `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (ItemModel) TableName() string {
	return "items"
}

// GormItemRepository is the GORM-based implementation of the item repository.
type GormItemRepository struct {
	db *gorm.DB
}

// NewGormItemRepository creates a new GormItemRepository.
func NewGormItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

// FindByID retrieves an item by its identifier.
func (r *GormItemRepository) FindByID(ctx context.Context, id int64) (*item.Item, error) {
	var model ItemModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("item", id)
		}
		return nil, fmt.Errorf("failed to find item by id: %w", err)
	}
	return toDomainItem(&model), nil
}

// FindByOwner retrieves a user's items within the page window.
func (r *GormItemRepository) FindByOwner(ctx context.Context, ownerID int64, page pagination.Page) ([]*item.Item, error) {
	order := string(page.Sort())
	if order == "" {
		order = string(pagination.SortIDAsc)
	}

	var models []ItemModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order(order).
		Offset(page.Offset()).
		Limit(page.Limit()).
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find items by owner: %w", err)
	}

	items := make([]*item.Item, len(models))
	for i := range models {
		items[i] = toDomainItem(&models[i])
	}
	return items, nil
}

// Save inserts a new item and assigns its id.
func (r *GormItemRepository) Save(ctx context.Context, it *item.Item) error {
	model := toItemModel(it)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save item: %w", err)
	}
	it.SetID(model.ID)
	return nil
}

// Update persists changes to an existing item.
func (r *GormItemRepository) Update(ctx context.Context, it *item.Item) error {
	result := r.db.WithContext(ctx).
		Model(&ItemModel{}).
		Where("id = ?", it.ID()).
		Updates(map[string]interface{}{
			"name":        it.Name(),
			"description": it.Description(),
			"available":   it.Available(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("item", it.ID())
	}
	return nil
}

func toItemModel(it *item.Item) *ItemModel {
	return &ItemModel{
		ID:          it.ID(),
		OwnerID:     it.OwnerID(),
		Name:        it.Name(),
		Description: it.Description(),
		Available:   it.Available(),
	}
}

func toDomainItem(m *ItemModel) *item.Item {
	return item.Reconstruct(m.ID, m.OwnerID, m.Name, m.Description, m.Available)
}
