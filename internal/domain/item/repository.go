package item

import (
	"context"

	"github.com/shareit-platform/service-rental/internal/pagination"
)

// Repository defines persistence operations for item listings.
type Repository interface {
	FindByID(ctx context.Context, id int64) (*Item, error)
	FindByOwner(ctx context.Context, ownerID int64, page pagination.Page) ([]*Item, error)
	Save(ctx context.Context, it *Item) error
	Update(ctx context.Context, it *Item) error
}

// Snapshot is the externally visible view of an item, consumed by the
// booking engine and embedded into booking payloads.
type Snapshot struct {
	ID          int64  `json:"id"`
	OwnerID     int64  `json:"ownerId"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
}

// Catalog resolves item snapshots for collaborating services.
type Catalog interface {
	// Get returns the item snapshot, or a not-found error if absent.
	Get(ctx context.Context, itemID int64) (Snapshot, error)
}
