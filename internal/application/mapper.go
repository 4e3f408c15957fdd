package application

import (
	"time"

	bookingDomain "github.com/shareit-platform/service-rental/internal/domain/booking"
	"github.com/shareit-platform/service-rental/internal/domain/item"
	"github.com/shareit-platform/service-rental/internal/domain/user"
)

// BookingDTO is the full response representation of a booking, embedding the
// related item and booker snapshots.
type BookingDTO struct {
	ID     int64         `json:"id"`
	Start  time.Time     `json:"start"`
	End    time.Time     `json:"end"`
	Item   item.Snapshot `json:"item"`
	Booker user.Snapshot `json:"booker"`
	Status string        `json:"status"`
}

// BookingRefDTO is the reduced booking view embedded inside item payloads.
// It carries foreign-key ids instead of nested objects so item responses do
// not recurse.
type BookingRefDTO struct {
	ID       int64     `json:"id"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	ItemID   int64     `json:"itemId"`
	BookerID int64     `json:"bookerId"`
	Status   string    `json:"status"`
}

// ItemDTO is the response representation of an item. Last/next booking are
// filled only on the owner's own view.
type ItemDTO struct {
	ID          int64          `json:"id"`
	OwnerID     int64          `json:"ownerId"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Available   bool           `json:"available"`
	LastBooking *BookingRefDTO `json:"lastBooking,omitempty"`
	NextBooking *BookingRefDTO `json:"nextBooking,omitempty"`
}

// UserDTO is the response representation of a user.
type UserDTO struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func toBookingDTO(bk *bookingDomain.Booking, it item.Snapshot, booker user.Snapshot) BookingDTO {
	return BookingDTO{
		ID:     bk.ID(),
		Start:  bk.Start(),
		End:    bk.End(),
		Item:   it,
		Booker: booker,
		Status: bk.Status().String(),
	}
}

func toBookingRefDTO(bk *bookingDomain.Booking) BookingRefDTO {
	return BookingRefDTO{
		ID:       bk.ID(),
		Start:    bk.Start(),
		End:      bk.End(),
		ItemID:   bk.ItemID(),
		BookerID: bk.BookerID(),
		Status:   bk.Status().String(),
	}
}

func toItemSnapshot(it *item.Item) item.Snapshot {
	return item.Snapshot{
		ID:          it.ID(),
		OwnerID:     it.OwnerID(),
		Name:        it.Name(),
		Description: it.Description(),
		Available:   it.Available(),
	}
}

func toItemDTO(it *item.Item) ItemDTO {
	return ItemDTO{
		ID:          it.ID(),
		OwnerID:     it.OwnerID(),
		Name:        it.Name(),
		Description: it.Description(),
		Available:   it.Available(),
	}
}

func toUserSnapshot(u *user.User) user.Snapshot {
	return user.Snapshot{ID: u.ID(), Name: u.Name(), Email: u.Email()}
}

func toUserDTO(u *user.User) UserDTO {
	return UserDTO{ID: u.ID(), Name: u.Name(), Email: u.Email()}
}
