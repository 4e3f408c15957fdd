package booking

import (
	"sort"
	"time"
)

// Temporal predicates over a booking's interval relative to now. These are
// query-time notions: no column stores them, so they are evaluated at read
// time against the already-paginated window returned by the store.

// IsPast reports whether the booking has ended (end <= now).
func (b *Booking) IsPast(now time.Time) bool {
	return !b.end.After(now)
}

// IsCurrent reports whether the booking straddles now (start <= now < end).
func (b *Booking) IsCurrent(now time.Time) bool {
	return !b.start.After(now) && b.end.After(now)
}

// IsFuture reports whether the booking has not started yet (now < start).
func (b *Booking) IsFuture(now time.Time) bool {
	return b.start.After(now)
}

// SortByStartDesc orders bookings most-recent-start first, in place.
// Every listing operation guarantees this order regardless of how the
// underlying store ordered its result.
func SortByStartDesc(bookings []*Booking) {
	sort.SliceStable(bookings, func(i, j int) bool {
		return bookings[i].start.After(bookings[j].start)
	})
}

// Classify filters bookings by state against the given instant and returns
// them sorted descending by start. ALL, WAITING and REJECTED pass through
// untouched beyond the sort: status filters are pushed down to the store, so
// the input is expected to be pre-filtered for those states.
func Classify(bookings []*Booking, state State, now time.Time) []*Booking {
	var keep func(*Booking) bool
	switch state {
	case StatePast:
		keep = func(b *Booking) bool { return b.IsPast(now) }
	case StateCurrent:
		keep = func(b *Booking) bool { return b.IsCurrent(now) }
	case StateFuture:
		keep = func(b *Booking) bool { return b.IsFuture(now) }
	default:
		out := make([]*Booking, len(bookings))
		copy(out, bookings)
		SortByStartDesc(out)
		return out
	}

	out := make([]*Booking, 0, len(bookings))
	for _, b := range bookings {
		if keep(b) {
			out = append(out, b)
		}
	}
	SortByStartDesc(out)
	return out
}
