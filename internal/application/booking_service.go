package application

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/shareit-platform/service-rental/internal/domain/apperr"
	bookingDomain "github.com/shareit-platform/service-rental/internal/domain/booking"
	"github.com/shareit-platform/service-rental/internal/domain/item"
	"github.com/shareit-platform/service-rental/internal/domain/user"
	"github.com/shareit-platform/service-rental/internal/events"
	"github.com/shareit-platform/service-rental/internal/pagination"
)

// CreateBookingRequest holds the data needed to request a new booking.
type CreateBookingRequest struct {
	ItemID int64     `json:"itemId" binding:"required"`
	Start  time.Time `json:"start" binding:"required"`
	End    time.Time `json:"end" binding:"required"`
}

// EventPublisher publishes CloudEvents after successful state changes.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic, key string, evt events.CloudEvent) error
}

// BookingService is the application service orchestrating the booking
// lifecycle: creation, approval, retrieval with visibility rules, and
// state-filtered listings.
type BookingService struct {
	repo     bookingDomain.Repository
	users    user.Directory
	profiles user.Snapshots
	catalog  item.Catalog
	producer EventPublisher
	topic    string
	logger   *zap.Logger
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	repo bookingDomain.Repository,
	users user.Directory,
	profiles user.Snapshots,
	catalog item.Catalog,
	producer EventPublisher,
	topic string,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		repo:     repo,
		users:    users,
		profiles: profiles,
		catalog:  catalog,
		producer: producer,
		topic:    topic,
		logger:   logger,
	}
}

// Create requests a new booking on behalf of requesterID. The booking is
// persisted as WAITING; no caller input can set another status. Precondition
// order is fixed: date range, requester existence, item existence,
// self-booking, availability.
func (s *BookingService) Create(ctx context.Context, requesterID int64, req CreateBookingRequest) (*BookingDTO, error) {
	bk, err := bookingDomain.NewBooking(requesterID, req.ItemID, req.Start, req.End)
	if err != nil {
		return nil, err
	}

	if err := s.requireUser(ctx, requesterID); err != nil {
		return nil, err
	}

	it, err := s.catalog.Get(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}
	if it.OwnerID == requesterID {
		return nil, apperr.SelfBookingForbidden()
	}
	if !it.Available {
		return nil, apperr.ItemUnavailable(it.ID)
	}

	if err := s.repo.Save(ctx, bk); err != nil {
		return nil, fmt.Errorf("failed to save booking: %w", err)
	}

	s.logger.Info("booking created",
		zap.Int64("booking_id", bk.ID()),
		zap.Int64("item_id", bk.ItemID()),
		zap.Int64("booker_id", bk.BookerID()),
	)

	s.publishRequested(ctx, bk, it.OwnerID)

	return s.toDTO(ctx, bk)
}

// Approve decides a waiting booking. Only the owner of the booked item may
// act; repeating a decision always fails, by contract. The store performs
// the status write as a compare-and-swap so concurrent approvals cannot both
// succeed.
func (s *BookingService) Approve(ctx context.Context, actingUserID int64, approved bool, bookingID int64) (*BookingDTO, error) {
	bk, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	it, err := s.catalog.Get(ctx, bk.ItemID())
	if err != nil {
		return nil, err
	}
	if it.OwnerID != actingUserID {
		return nil, apperr.NotItemOwner(actingUserID)
	}

	if err := bk.Decide(approved); err != nil {
		return nil, err
	}

	swapped, err := s.repo.UpdateStatus(ctx, bk.ID(), bookingDomain.StatusWaiting, bk.Status())
	if err != nil {
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	}
	if !swapped {
		// Lost the race: someone else decided first.
		return nil, apperr.AlreadyDecided(bk.ID())
	}

	s.logger.Info("booking decided",
		zap.Int64("booking_id", bk.ID()),
		zap.String("status", bk.Status().String()),
	)

	s.publishDecided(ctx, bk, it.OwnerID)

	return s.toDTO(ctx, bk)
}

// FindByID retrieves one booking. It is visible only to the item's owner or
// the original booker; any other caller is told it is not theirs to see.
func (s *BookingService) FindByID(ctx context.Context, actingUserID, bookingID int64) (*BookingDTO, error) {
	if err := s.requireUser(ctx, actingUserID); err != nil {
		return nil, err
	}

	bk, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	it, err := s.catalog.Get(ctx, bk.ItemID())
	if err != nil {
		return nil, err
	}
	if actingUserID != it.OwnerID && actingUserID != bk.BookerID() {
		return nil, apperr.NotABooker(actingUserID)
	}

	return s.toDTO(ctx, bk)
}

// FindAllByBooker lists bookings requested by userID, filtered by state and
// paginated. The unrecognized-state check short-circuits before any store
// query is issued.
func (s *BookingService) FindAllByBooker(ctx context.Context, userID int64, filter bookingDomain.StateFilter, from, size *int) ([]BookingDTO, error) {
	if !filter.Recognized() {
		return nil, apperr.UnknownBookingState(filter.Raw())
	}
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	page, err := pagination.Resolve(from, size, pagination.SortStartDesc)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	bookings, err := s.queryByBooker(ctx, userID, filter.State(), now, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings by booker: %w", err)
	}

	return s.toDTOs(ctx, bookingDomain.Classify(bookings, filter.State(), now))
}

// FindAllByOwner lists bookings of items owned by ownerID, filtered by state
// and paginated.
func (s *BookingService) FindAllByOwner(ctx context.Context, ownerID int64, filter bookingDomain.StateFilter, from, size *int) ([]BookingDTO, error) {
	if !filter.Recognized() {
		return nil, apperr.UnknownBookingState(filter.Raw())
	}
	if err := s.requireUser(ctx, ownerID); err != nil {
		return nil, err
	}

	page, err := pagination.Resolve(from, size, pagination.SortStartDesc)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	bookings, err := s.queryByOwner(ctx, ownerID, filter.State(), now, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings by owner: %w", err)
	}

	return s.toDTOs(ctx, bookingDomain.Classify(bookings, filter.State(), now))
}

// FindAllByItem lists every booking of an item as reduced views, sorted
// descending by start. Used by item presentation to compute last/next
// booking.
func (s *BookingService) FindAllByItem(ctx context.Context, itemID int64) ([]BookingRefDTO, error) {
	bookings, err := s.repo.FindAllByItem(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings by item: %w", err)
	}
	bookingDomain.SortByStartDesc(bookings)

	refs := make([]BookingRefDTO, len(bookings))
	for i, bk := range bookings {
		refs[i] = toBookingRefDTO(bk)
	}
	return refs, nil
}

func (s *BookingService) queryByBooker(ctx context.Context, userID int64, state bookingDomain.State, now time.Time, page pagination.Page) ([]*bookingDomain.Booking, error) {
	switch state {
	case bookingDomain.StatePast:
		return s.repo.FindAllByBookerBefore(ctx, userID, now, page)
	case bookingDomain.StateFuture:
		return s.repo.FindAllByBookerAfter(ctx, userID, now, page)
	case bookingDomain.StateCurrent:
		return s.repo.FindAllByBookerStraddling(ctx, userID, now, page)
	case bookingDomain.StateWaiting:
		return s.repo.FindAllByBookerAndStatus(ctx, userID, bookingDomain.StatusWaiting, page)
	case bookingDomain.StateRejected:
		return s.repo.FindAllByBookerAndStatus(ctx, userID, bookingDomain.StatusRejected, page)
	default:
		return s.repo.FindAllByBooker(ctx, userID, page)
	}
}

func (s *BookingService) queryByOwner(ctx context.Context, ownerID int64, state bookingDomain.State, now time.Time, page pagination.Page) ([]*bookingDomain.Booking, error) {
	switch state {
	case bookingDomain.StatePast:
		return s.repo.FindAllByOwnerBefore(ctx, ownerID, now, page)
	case bookingDomain.StateFuture:
		return s.repo.FindAllByOwnerAfter(ctx, ownerID, now, page)
	case bookingDomain.StateCurrent:
		return s.repo.FindAllByOwnerStraddling(ctx, ownerID, now, page)
	case bookingDomain.StateWaiting:
		return s.repo.FindAllByOwnerAndStatus(ctx, ownerID, bookingDomain.StatusWaiting, page)
	case bookingDomain.StateRejected:
		return s.repo.FindAllByOwnerAndStatus(ctx, ownerID, bookingDomain.StatusRejected, page)
	default:
		return s.repo.FindAllByOwner(ctx, ownerID, page)
	}
}

func (s *BookingService) requireUser(ctx context.Context, userID int64) error {
	exists, err := s.users.Exists(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to check user existence: %w", err)
	}
	if !exists {
		return apperr.NotFound("user", userID)
	}
	return nil
}

func (s *BookingService) toDTO(ctx context.Context, bk *bookingDomain.Booking) (*BookingDTO, error) {
	it, err := s.catalog.Get(ctx, bk.ItemID())
	if err != nil {
		return nil, err
	}
	booker, err := s.profiles.Get(ctx, bk.BookerID())
	if err != nil {
		return nil, err
	}
	dto := toBookingDTO(bk, it, booker)
	return &dto, nil
}

func (s *BookingService) toDTOs(ctx context.Context, bookings []*bookingDomain.Booking) ([]BookingDTO, error) {
	itemCache := make(map[int64]item.Snapshot)
	bookerCache := make(map[int64]user.Snapshot)

	dtos := make([]BookingDTO, 0, len(bookings))
	for _, bk := range bookings {
		it, ok := itemCache[bk.ItemID()]
		if !ok {
			var err error
			it, err = s.catalog.Get(ctx, bk.ItemID())
			if err != nil {
				return nil, err
			}
			itemCache[bk.ItemID()] = it
		}

		booker, ok := bookerCache[bk.BookerID()]
		if !ok {
			var err error
			booker, err = s.profiles.Get(ctx, bk.BookerID())
			if err != nil {
				return nil, err
			}
			bookerCache[bk.BookerID()] = booker
		}

		dtos = append(dtos, toBookingDTO(bk, it, booker))
	}
	return dtos, nil
}

func (s *BookingService) publishRequested(ctx context.Context, bk *bookingDomain.Booking, ownerID int64) {
	evt := events.BookingRequestedEvent{
		BookingID:  bk.ID(),
		ItemID:     bk.ItemID(),
		BookerID:   bk.BookerID(),
		OwnerID:    ownerID,
		Start:      bk.Start(),
		End:        bk.End(),
		OccurredAt: time.Now().UTC(),
	}
	s.publish(ctx, events.BookingRequested, bk.ID(), evt)
}

func (s *BookingService) publishDecided(ctx context.Context, bk *bookingDomain.Booking, ownerID int64) {
	evt := events.BookingDecidedEvent{
		BookingID:  bk.ID(),
		ItemID:     bk.ItemID(),
		BookerID:   bk.BookerID(),
		OwnerID:    ownerID,
		Status:     bk.Status().String(),
		OccurredAt: time.Now().UTC(),
	}
	s.publish(ctx, events.BookingDecided, bk.ID(), evt)
}

func (s *BookingService) publish(ctx context.Context, eventType string, bookingID int64, data interface{}) {
	cloudEvent, err := events.NewCloudEvent("service-rental", eventType, data)
	if err != nil {
		s.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}

	key := fmt.Sprintf("booking-%d", bookingID)
	if err := s.producer.PublishEvent(ctx, s.topic, key, cloudEvent); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("topic", s.topic),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}
