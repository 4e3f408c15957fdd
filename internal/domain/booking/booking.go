package booking

import (
	"time"

	"github.com/shareit-platform/service-rental/internal/domain/apperr"
)

// Booking is the aggregate root for the booking domain: a request by one
// user (the booker) to reserve another user's item for a time interval.
type Booking struct {
	id       int64
	start    time.Time
	end      time.Time
	itemID   int64
	bookerID int64
	status   Status

	createdAt time.Time
	updatedAt time.Time
}

// NewBooking creates a new Booking with status forced to WAITING.
// The id stays zero until the store assigns one.
func NewBooking(bookerID, itemID int64, start, end time.Time) (*Booking, error) {
	if !start.Before(end) {
		return nil, apperr.InvalidDateRange()
	}
	now := time.Now().UTC()
	return &Booking{
		start:     start,
		end:       end,
		itemID:    itemID,
		bookerID:  bookerID,
		status:    StatusWaiting,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// Reconstruct rebuilds a Booking from persistence data (no validation).
func Reconstruct(id int64, start, end time.Time, itemID, bookerID int64, status Status, createdAt, updatedAt time.Time) *Booking {
	return &Booking{
		id:        id,
		start:     start,
		end:       end,
		itemID:    itemID,
		bookerID:  bookerID,
		status:    status,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// ID returns the booking's store-assigned identifier.
func (b *Booking) ID() int64 { return b.id }

// Start returns the requested rental start.
func (b *Booking) Start() time.Time { return b.start }

// End returns the requested rental end.
func (b *Booking) End() time.Time { return b.end }

// ItemID returns the id of the booked item.
func (b *Booking) ItemID() int64 { return b.itemID }

// BookerID returns the id of the user who requested the booking.
func (b *Booking) BookerID() int64 { return b.bookerID }

// Status returns the current booking status.
func (b *Booking) Status() Status { return b.status }

// CreatedAt returns the creation timestamp.
func (b *Booking) CreatedAt() time.Time { return b.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }

// SetID is called by the store once, when the row is inserted.
func (b *Booking) SetID(id int64) {
	b.id = id
}

// Decide transitions the booking from WAITING to APPROVED or REJECTED.
// Any call against a non-waiting booking fails, including a repeat of an
// earlier successful call.
func (b *Booking) Decide(approved bool) error {
	target := StatusRejected
	if approved {
		target = StatusApproved
	}
	if !b.status.CanTransitionTo(target) {
		return apperr.AlreadyDecided(b.id)
	}
	b.status = target
	b.updatedAt = time.Now().UTC()
	return nil
}
