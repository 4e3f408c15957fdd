package item

import (
	"strings"

	"github.com/shareit-platform/service-rental/internal/domain/apperr"
)

// Item is the aggregate root for a listed rental item.
type Item struct {
	id          int64
	ownerID     int64
	name        string
	description string
	available   bool
}

// NewItem creates a new item listing with validated fields.
func NewItem(ownerID int64, name, description string, available bool) (*Item, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperr.Validation("item name must not be blank")
	}
	if strings.TrimSpace(description) == "" {
		return nil, apperr.Validation("item description must not be blank")
	}
	return &Item{
		ownerID:     ownerID,
		name:        name,
		description: description,
		available:   available,
	}, nil
}

// Reconstruct rebuilds an Item from persistence data (no validation).
func Reconstruct(id, ownerID int64, name, description string, available bool) *Item {
	return &Item{
		id:          id,
		ownerID:     ownerID,
		name:        name,
		description: description,
		available:   available,
	}
}

// ID returns the item's store-assigned identifier.
func (i *Item) ID() int64 { return i.id }

// OwnerID returns the id of the user who listed the item.
func (i *Item) OwnerID() int64 { return i.ownerID }

// Name returns the item name.
func (i *Item) Name() string { return i.name }

// Description returns the item description.
func (i *Item) Description() string { return i.description }

// Available reports whether the item can currently be booked.
func (i *Item) Available() bool { return i.available }

// SetID is called by the store once, when the row is inserted.
func (i *Item) SetID(id int64) {
	i.id = id
}

// Update applies a partial update. Nil fields are left untouched; present but
// blank name/description are rejected.
func (i *Item) Update(name, description *string, available *bool) error {
	if name != nil {
		if strings.TrimSpace(*name) == "" {
			return apperr.Validation("item name must not be blank")
		}
		i.name = *name
	}
	if description != nil {
		if strings.TrimSpace(*description) == "" {
			return apperr.Validation("item description must not be blank")
		}
		i.description = *description
	}
	if available != nil {
		i.available = *available
	}
	return nil
}
