package application

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/shareit-platform/service-rental/internal/domain/apperr"
	bookingDomain "github.com/shareit-platform/service-rental/internal/domain/booking"
	"github.com/shareit-platform/service-rental/internal/domain/item"
	"github.com/shareit-platform/service-rental/internal/domain/user"
	"github.com/shareit-platform/service-rental/internal/events"
	"github.com/shareit-platform/service-rental/internal/pagination"
)

// fakeBookingRepo is an in-memory booking store that mirrors the push-down
// query contract and records which query each listing call hit.
type fakeBookingRepo struct {
	bookings map[int64]*bookingDomain.Booking
	nextID   int64
	queries  []string
	ownerOf  ownerResolver
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[int64]*bookingDomain.Booking), nextID: 1}
}

func (f *fakeBookingRepo) Save(_ context.Context, bk *bookingDomain.Booking) error {
	bk.SetID(f.nextID)
	f.bookings[f.nextID] = bookingDomain.Reconstruct(
		bk.ID(), bk.Start(), bk.End(), bk.ItemID(), bk.BookerID(), bk.Status(), bk.CreatedAt(), bk.UpdatedAt(),
	)
	f.nextID++
	return nil
}

func (f *fakeBookingRepo) FindByID(_ context.Context, id int64) (*bookingDomain.Booking, error) {
	bk, ok := f.bookings[id]
	if !ok {
		return nil, apperr.NotFound("booking", id)
	}
	return bookingDomain.Reconstruct(
		bk.ID(), bk.Start(), bk.End(), bk.ItemID(), bk.BookerID(), bk.Status(), bk.CreatedAt(), bk.UpdatedAt(),
	), nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, from, to bookingDomain.Status) (bool, error) {
	bk, ok := f.bookings[id]
	if !ok || bk.Status() != from {
		return false, nil
	}
	f.bookings[id] = bookingDomain.Reconstruct(
		bk.ID(), bk.Start(), bk.End(), bk.ItemID(), bk.BookerID(), to, bk.CreatedAt(), time.Now().UTC(),
	)
	return true, nil
}

func (f *fakeBookingRepo) collect(name string, page pagination.Page, keep func(*bookingDomain.Booking) bool) []*bookingDomain.Booking {
	f.queries = append(f.queries, name)
	var out []*bookingDomain.Booking
	for _, bk := range f.bookings {
		if keep(bk) {
			out = append(out, bk)
		}
	}
	bookingDomain.SortByStartDesc(out)
	if page.Offset() >= len(out) {
		return nil
	}
	out = out[page.Offset():]
	if len(out) > page.Limit() {
		out = out[:page.Limit()]
	}
	return out
}

func (f *fakeBookingRepo) FindAllByBooker(_ context.Context, bookerID int64, page pagination.Page) ([]*bookingDomain.Booking, error) {
	return f.collect("booker_all", page, func(b *bookingDomain.Booking) bool {
		return b.BookerID() == bookerID
	}), nil
}

func (f *fakeBookingRepo) FindAllByBookerBefore(_ context.Context, bookerID int64, now time.Time, page pagination.Page) ([]*bookingDomain.Booking, error) {
	return f.collect("booker_before", page, func(b *bookingDomain.Booking) bool {
		return b.BookerID() == bookerID && !b.End().After(now)
	}), nil
}

func (f *fakeBookingRepo) FindAllByBookerAfter(_ context.Context, bookerID int64, now time.Time, page pagination.Page) ([]*bookingDomain.Booking, error) {
	return f.collect("booker_after", page, func(b *bookingDomain.Booking) bool {
		return b.BookerID() == bookerID && b.Start().After(now)
	}), nil
}

func (f *fakeBookingRepo) FindAllByBookerStraddling(_ context.Context, bookerID int64, now time.Time, page pagination.Page) ([]*bookingDomain.Booking, error) {
	return f.collect("booker_straddling", page, func(b *bookingDomain.Booking) bool {
		return b.BookerID() == bookerID && !b.Start().After(now) && b.End().After(now)
	}), nil
}

func (f *fakeBookingRepo) FindAllByBookerAndStatus(_ context.Context, bookerID int64, status bookingDomain.Status, page pagination.Page) ([]*bookingDomain.Booking, error) {
	return f.collect("booker_status", page, func(b *bookingDomain.Booking) bool {
		return b.BookerID() == bookerID && b.Status() == status
	}), nil
}

// Owner queries resolve ownership through the catalog snapshot installed by
// the test.
type ownerResolver func(itemID int64) int64

func (f *fakeBookingRepo) setOwnerResolver(r ownerResolver) { f.ownerOf = r }

func (f *fakeBookingRepo) owner(itemID int64) int64 {
	if f.ownerOf == nil {
		return 0
	}
	return f.ownerOf(itemID)
}

func (f *fakeBookingRepo) FindAllByOwner(_ context.Context, ownerID int64, page pagination.Page) ([]*bookingDomain.Booking, error) {
	return f.collect("owner_all", page, func(b *bookingDomain.Booking) bool {
		return f.owner(b.ItemID()) == ownerID
	}), nil
}

func (f *fakeBookingRepo) FindAllByOwnerBefore(_ context.Context, ownerID int64, now time.Time, page pagination.Page) ([]*bookingDomain.Booking, error) {
	return f.collect("owner_before", page, func(b *bookingDomain.Booking) bool {
		return f.owner(b.ItemID()) == ownerID && !b.End().After(now)
	}), nil
}

func (f *fakeBookingRepo) FindAllByOwnerAfter(_ context.Context, ownerID int64, now time.Time, page pagination.Page) ([]*bookingDomain.Booking, error) {
	return f.collect("owner_after", page, func(b *bookingDomain.Booking) bool {
		return f.owner(b.ItemID()) == ownerID && b.Start().After(now)
	}), nil
}

func (f *fakeBookingRepo) FindAllByOwnerStraddling(_ context.Context, ownerID int64, now time.Time, page pagination.Page) ([]*bookingDomain.Booking, error) {
	return f.collect("owner_straddling", page, func(b *bookingDomain.Booking) bool {
		return f.owner(b.ItemID()) == ownerID && !b.Start().After(now) && b.End().After(now)
	}), nil
}

func (f *fakeBookingRepo) FindAllByOwnerAndStatus(_ context.Context, ownerID int64, status bookingDomain.Status, page pagination.Page) ([]*bookingDomain.Booking, error) {
	return f.collect("owner_status", page, func(b *bookingDomain.Booking) bool {
		return f.owner(b.ItemID()) == ownerID && b.Status() == status
	}), nil
}

func (f *fakeBookingRepo) FindAllByItem(_ context.Context, itemID int64) ([]*bookingDomain.Booking, error) {
	var out []*bookingDomain.Booking
	for _, bk := range f.bookings {
		if bk.ItemID() == itemID {
			out = append(out, bk)
		}
	}
	return out, nil
}

// fakeUsers implements user.Directory and user.Snapshots over a map.
type fakeUsers struct {
	users map[int64]user.Snapshot
}

func newFakeUsers(users ...user.Snapshot) *fakeUsers {
	m := make(map[int64]user.Snapshot, len(users))
	for _, u := range users {
		m[u.ID] = u
	}
	return &fakeUsers{users: m}
}

func (f *fakeUsers) Exists(_ context.Context, userID int64) (bool, error) {
	_, ok := f.users[userID]
	return ok, nil
}

func (f *fakeUsers) Get(_ context.Context, userID int64) (user.Snapshot, error) {
	u, ok := f.users[userID]
	if !ok {
		return user.Snapshot{}, apperr.NotFound("user", userID)
	}
	return u, nil
}

// fakeCatalog implements item.Catalog over a map.
type fakeCatalog struct {
	items map[int64]item.Snapshot
}

func newFakeCatalog(items ...item.Snapshot) *fakeCatalog {
	m := make(map[int64]item.Snapshot, len(items))
	for _, it := range items {
		m[it.ID] = it
	}
	return &fakeCatalog{items: m}
}

func (f *fakeCatalog) Get(_ context.Context, itemID int64) (item.Snapshot, error) {
	it, ok := f.items[itemID]
	if !ok {
		return item.Snapshot{}, apperr.NotFound("item", itemID)
	}
	return it, nil
}

// fakePublisher records published events.
type fakePublisher struct {
	published []events.CloudEvent
}

func (f *fakePublisher) PublishEvent(_ context.Context, _, _ string, evt events.CloudEvent) error {
	f.published = append(f.published, evt)
	return nil
}

// fakeItemRepo is an in-memory item store.
type fakeItemRepo struct {
	items  map[int64]*item.Item
	nextID int64
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: make(map[int64]*item.Item), nextID: 1}
}

func (f *fakeItemRepo) FindByID(_ context.Context, id int64) (*item.Item, error) {
	it, ok := f.items[id]
	if !ok {
		return nil, apperr.NotFound("item", id)
	}
	return item.Reconstruct(it.ID(), it.OwnerID(), it.Name(), it.Description(), it.Available()), nil
}

func (f *fakeItemRepo) FindByOwner(_ context.Context, ownerID int64, page pagination.Page) ([]*item.Item, error) {
	var ids []int64
	for id, it := range f.items {
		if it.OwnerID() == ownerID {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	var out []*item.Item
	for _, id := range ids {
		out = append(out, f.items[id])
	}
	if page.Offset() >= len(out) {
		return nil, nil
	}
	out = out[page.Offset():]
	if len(out) > page.Limit() {
		out = out[:page.Limit()]
	}
	return out, nil
}

func (f *fakeItemRepo) Save(_ context.Context, it *item.Item) error {
	it.SetID(f.nextID)
	f.items[f.nextID] = item.Reconstruct(it.ID(), it.OwnerID(), it.Name(), it.Description(), it.Available())
	f.nextID++
	return nil
}

func (f *fakeItemRepo) Update(_ context.Context, it *item.Item) error {
	if _, ok := f.items[it.ID()]; !ok {
		return apperr.NotFound("item", it.ID())
	}
	f.items[it.ID()] = item.Reconstruct(it.ID(), it.OwnerID(), it.Name(), it.Description(), it.Available())
	return nil
}

// fakeUserRepo is an in-memory user store.
type fakeUserRepo struct {
	users  map[int64]*user.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*user.User), nextID: 1}
}

func (f *fakeUserRepo) FindByID(_ context.Context, id int64) (*user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperr.NotFound("user", id)
	}
	return user.Reconstruct(u.ID(), u.Name(), u.Email()), nil
}

func (f *fakeUserRepo) FindAll(_ context.Context) ([]*user.User, error) {
	var ids []int64
	for id := range f.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	var out []*user.User
	for _, id := range ids {
		out = append(out, f.users[id])
	}
	return out, nil
}

func (f *fakeUserRepo) ExistsByEmail(_ context.Context, email string, excludeID int64) (bool, error) {
	for id, u := range f.users {
		if id != excludeID && u.Email() == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) Save(_ context.Context, u *user.User) error {
	u.SetID(f.nextID)
	f.users[f.nextID] = user.Reconstruct(u.ID(), u.Name(), u.Email())
	f.nextID++
	return nil
}

func (f *fakeUserRepo) Update(_ context.Context, u *user.User) error {
	if _, ok := f.users[u.ID()]; !ok {
		return apperr.NotFound("user", u.ID())
	}
	f.users[u.ID()] = user.Reconstruct(u.ID(), u.Name(), u.Email())
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id int64) error {
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := f.users[id]
	return ok, nil
}

func newTestLogger() *zap.Logger {
	return zap.NewNop()
}
