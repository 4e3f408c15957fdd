package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/shareit-platform/service-rental/internal/domain/apperr"
	bookingDomain "github.com/shareit-platform/service-rental/internal/domain/booking"
	"github.com/shareit-platform/service-rental/internal/pagination"
)

// BookingModel is the GORM model for the bookings table. It holds only
// foreign-key ids for the item and booker; nested views are assembled by the
// mapper layer at read time.
type BookingModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	StartDate time.Time `gorm:"column:start_date;not null;index"`
	EndDate   time.Time `gorm:"column:end_date;not null"`
	ItemID    int64     `gorm:"not null;index"`
	BookerID  int64     `gorm:"not null;index"`
	Status    string    `gorm:"not null;size:20;index"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (BookingModel) TableName() string {
	return "bookings"
}

// GormBookingRepository is the GORM-based implementation of the booking
// repository.
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository.
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// Save inserts a new booking and assigns the store-owned sequential id.
func (r *GormBookingRepository) Save(ctx context.Context, bk *bookingDomain.Booking) error {
	model := toBookingModel(bk)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save booking: %w", err)
	}
	bk.SetID(model.ID)
	return nil
}

// FindByID retrieves a booking by its identifier.
func (r *GormBookingRepository) FindByID(ctx context.Context, id int64) (*bookingDomain.Booking, error) {
	var model BookingModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("booking", id)
		}
		return nil, fmt.Errorf("failed to find booking by id: %w", err)
	}
	return toDomainBooking(&model)
}

// UpdateStatus performs the status transition as a compare-and-swap: the row
// is written only when it still holds the expected status, so of any number
// of concurrent callers exactly one observes a swap.
func (r *GormBookingRepository) UpdateStatus(ctx context.Context, id int64, from, to bookingDomain.Status) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Where("id = ? AND status = ?", id, string(from)).
		Updates(map[string]interface{}{
			"status":     string(to),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to update booking status: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// FindAllByBooker retrieves a booker's bookings, start-descending, windowed.
func (r *GormBookingRepository) FindAllByBooker(ctx context.Context, bookerID int64, page pagination.Page) ([]*bookingDomain.Booking, error) {
	return r.findPage(ctx, page, r.db.Where("booker_id = ?", bookerID))
}

// FindAllByBookerBefore retrieves a booker's past bookings (end <= now).
func (r *GormBookingRepository) FindAllByBookerBefore(ctx context.Context, bookerID int64, now time.Time, page pagination.Page) ([]*bookingDomain.Booking, error) {
	return r.findPage(ctx, page, r.db.Where("booker_id = ? AND end_date <= ?", bookerID, now))
}

// FindAllByBookerAfter retrieves a booker's future bookings (start > now).
func (r *GormBookingRepository) FindAllByBookerAfter(ctx context.Context, bookerID int64, now time.Time, page pagination.Page) ([]*bookingDomain.Booking, error) {
	return r.findPage(ctx, page, r.db.Where("booker_id = ? AND start_date > ?", bookerID, now))
}

// FindAllByBookerStraddling retrieves a booker's current bookings
// (start <= now < end).
func (r *GormBookingRepository) FindAllByBookerStraddling(ctx context.Context, bookerID int64, now time.Time, page pagination.Page) ([]*bookingDomain.Booking, error) {
	return r.findPage(ctx, page, r.db.Where("booker_id = ? AND start_date <= ? AND end_date > ?", bookerID, now, now))
}

// FindAllByBookerAndStatus retrieves a booker's bookings in a given status.
func (r *GormBookingRepository) FindAllByBookerAndStatus(ctx context.Context, bookerID int64, status bookingDomain.Status, page pagination.Page) ([]*bookingDomain.Booking, error) {
	return r.findPage(ctx, page, r.db.Where("booker_id = ? AND status = ?", bookerID, string(status)))
}

// Owner-keyed queries join through the items table to resolve the owner.

func (r *GormBookingRepository) ownerScope(ownerID int64) *gorm.DB {
	return r.db.
		Joins("JOIN items ON items.id = bookings.item_id").
		Where("items.owner_id = ?", ownerID)
}

// FindAllByOwner retrieves bookings of all items owned by ownerID.
func (r *GormBookingRepository) FindAllByOwner(ctx context.Context, ownerID int64, page pagination.Page) ([]*bookingDomain.Booking, error) {
	return r.findPage(ctx, page, r.ownerScope(ownerID))
}

// FindAllByOwnerBefore retrieves an owner's past bookings (end <= now).
func (r *GormBookingRepository) FindAllByOwnerBefore(ctx context.Context, ownerID int64, now time.Time, page pagination.Page) ([]*bookingDomain.Booking, error) {
	return r.findPage(ctx, page, r.ownerScope(ownerID).Where("bookings.end_date <= ?", now))
}

// FindAllByOwnerAfter retrieves an owner's future bookings (start > now).
func (r *GormBookingRepository) FindAllByOwnerAfter(ctx context.Context, ownerID int64, now time.Time, page pagination.Page) ([]*bookingDomain.Booking, error) {
	return r.findPage(ctx, page, r.ownerScope(ownerID).Where("bookings.start_date > ?", now))
}

// FindAllByOwnerStraddling retrieves an owner's current bookings.
func (r *GormBookingRepository) FindAllByOwnerStraddling(ctx context.Context, ownerID int64, now time.Time, page pagination.Page) ([]*bookingDomain.Booking, error) {
	return r.findPage(ctx, page, r.ownerScope(ownerID).Where("bookings.start_date <= ? AND bookings.end_date > ?", now, now))
}

// FindAllByOwnerAndStatus retrieves an owner's bookings in a given status.
func (r *GormBookingRepository) FindAllByOwnerAndStatus(ctx context.Context, ownerID int64, status bookingDomain.Status, page pagination.Page) ([]*bookingDomain.Booking, error) {
	return r.findPage(ctx, page, r.ownerScope(ownerID).Where("bookings.status = ?", string(status)))
}

// FindAllByItem retrieves every booking of an item, start-descending,
// unpaginated.
func (r *GormBookingRepository) FindAllByItem(ctx context.Context, itemID int64) ([]*bookingDomain.Booking, error) {
	var models []BookingModel
	if err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("start_date DESC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find bookings by item: %w", err)
	}
	return toDomainBookings(models)
}

func (r *GormBookingRepository) findPage(ctx context.Context, page pagination.Page, scope *gorm.DB) ([]*bookingDomain.Booking, error) {
	order := string(page.Sort())
	if order == "" {
		order = string(pagination.SortStartDesc)
	}

	var models []BookingModel
	if err := scope.WithContext(ctx).
		Model(&BookingModel{}).
		Order(order).
		Offset(page.Offset()).
		Limit(page.Limit()).
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find bookings: %w", err)
	}
	return toDomainBookings(models)
}

// --- Conversion helpers ---

func toBookingModel(bk *bookingDomain.Booking) *BookingModel {
	return &BookingModel{
		ID:        bk.ID(),
		StartDate: bk.Start(),
		EndDate:   bk.End(),
		ItemID:    bk.ItemID(),
		BookerID:  bk.BookerID(),
		Status:    string(bk.Status()),
		CreatedAt: bk.CreatedAt(),
		UpdatedAt: bk.UpdatedAt(),
	}
}

func toDomainBooking(m *BookingModel) (*bookingDomain.Booking, error) {
	status, err := bookingDomain.ParseStatus(m.Status)
	if err != nil {
		return nil, err
	}
	return bookingDomain.Reconstruct(m.ID, m.StartDate, m.EndDate, m.ItemID, m.BookerID, status, m.CreatedAt, m.UpdatedAt), nil
}

func toDomainBookings(models []BookingModel) ([]*bookingDomain.Booking, error) {
	bookings := make([]*bookingDomain.Booking, len(models))
	for i := range models {
		bk, err := toDomainBooking(&models[i])
		if err != nil {
			return nil, err
		}
		bookings[i] = bk
	}
	return bookings, nil
}
