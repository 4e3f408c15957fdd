package booking

import (
	"context"
	"time"

	"github.com/shareit-platform/service-rental/internal/pagination"
)

// Repository defines the persistence contract for bookings. The store owns
// identity assignment; all listing queries return results sorted descending
// by start and limited by the page window. Status filters are pushed down so
// temporal pagination windows stay meaningful per page.
type Repository interface {
	// Save inserts a new booking and assigns its id.
	Save(ctx context.Context, bk *Booking) error

	// FindByID retrieves a booking by its identifier.
	FindByID(ctx context.Context, id int64) (*Booking, error)

	// UpdateStatus atomically moves a booking from one status to another.
	// It reports false when the booking was not in the expected status, so
	// exactly one of concurrent approvals against the same WAITING booking
	// can succeed.
	UpdateStatus(ctx context.Context, id int64, from, to Status) (bool, error)

	// Booker-keyed listing queries.
	FindAllByBooker(ctx context.Context, bookerID int64, page pagination.Page) ([]*Booking, error)
	FindAllByBookerBefore(ctx context.Context, bookerID int64, now time.Time, page pagination.Page) ([]*Booking, error)
	FindAllByBookerAfter(ctx context.Context, bookerID int64, now time.Time, page pagination.Page) ([]*Booking, error)
	FindAllByBookerStraddling(ctx context.Context, bookerID int64, now time.Time, page pagination.Page) ([]*Booking, error)
	FindAllByBookerAndStatus(ctx context.Context, bookerID int64, status Status, page pagination.Page) ([]*Booking, error)

	// Owner-keyed equivalents, joined through the item's owner id.
	FindAllByOwner(ctx context.Context, ownerID int64, page pagination.Page) ([]*Booking, error)
	FindAllByOwnerBefore(ctx context.Context, ownerID int64, now time.Time, page pagination.Page) ([]*Booking, error)
	FindAllByOwnerAfter(ctx context.Context, ownerID int64, now time.Time, page pagination.Page) ([]*Booking, error)
	FindAllByOwnerStraddling(ctx context.Context, ownerID int64, now time.Time, page pagination.Page) ([]*Booking, error)
	FindAllByOwnerAndStatus(ctx context.Context, ownerID int64, status Status, page pagination.Page) ([]*Booking, error)

	// FindAllByItem retrieves every booking of an item, unpaginated, used to
	// compute last/next booking for item presentation.
	FindAllByItem(ctx context.Context, itemID int64) ([]*Booking, error)
}
