package events

import "time"

// Event types published on the booking topic.
const (
	BookingRequested = "booking.requested"
	BookingDecided   = "booking.decided"
)

// BookingRequestedEvent is emitted when a new booking is persisted.
type BookingRequestedEvent struct {
	BookingID  int64     `json:"booking_id"`
	ItemID     int64     `json:"item_id"`
	BookerID   int64     `json:"booker_id"`
	OwnerID    int64     `json:"owner_id"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	OccurredAt time.Time `json:"occurred_at"`
}

// BookingDecidedEvent is emitted when an owner approves or rejects a booking.
type BookingDecidedEvent struct {
	BookingID  int64     `json:"booking_id"`
	ItemID     int64     `json:"item_id"`
	BookerID   int64     `json:"booker_id"`
	OwnerID    int64     `json:"owner_id"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}
