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
	"github.com/shareit-platform/service-rental/internal/pagination"
)

// CreateItemRequest is the request DTO for listing a new item.
type CreateItemRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
	Available   *bool  `json:"available" binding:"required"`
}

// UpdateItemRequest is the request DTO for a partial item update.
type UpdateItemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

// ItemService implements item listing use cases and serves as the item
// catalog consumed by the booking engine.
type ItemService struct {
	repo     item.Repository
	users    user.Directory
	bookings bookingDomain.Repository
	logger   *zap.Logger
}

// NewItemService creates a new ItemService.
func NewItemService(repo item.Repository, users user.Directory, bookings bookingDomain.Repository, logger *zap.Logger) *ItemService {
	return &ItemService{repo: repo, users: users, bookings: bookings, logger: logger}
}

// Get implements item.Catalog.
func (s *ItemService) Get(ctx context.Context, itemID int64) (item.Snapshot, error) {
	it, err := s.repo.FindByID(ctx, itemID)
	if err != nil {
		return item.Snapshot{}, err
	}
	return toItemSnapshot(it), nil
}

// Create lists a new item owned by ownerID.
func (s *ItemService) Create(ctx context.Context, ownerID int64, req CreateItemRequest) (*ItemDTO, error) {
	if err := s.requireUser(ctx, ownerID); err != nil {
		return nil, err
	}

	available := true
	if req.Available != nil {
		available = *req.Available
	}
	it, err := item.NewItem(ownerID, req.Name, req.Description, available)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, it); err != nil {
		return nil, fmt.Errorf("failed to save item: %w", err)
	}

	s.logger.Info("item created",
		zap.Int64("item_id", it.ID()),
		zap.Int64("owner_id", ownerID),
	)
	dto := toItemDTO(it)
	return &dto, nil
}

// Update applies a partial update; only the owner may edit their item.
func (s *ItemService) Update(ctx context.Context, userID, itemID int64, req UpdateItemRequest) (*ItemDTO, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	it, err := s.repo.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if it.OwnerID() != userID {
		return nil, apperr.NotFound("item", itemID)
	}

	if err := it.Update(req.Name, req.Description, req.Available); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, it); err != nil {
		return nil, fmt.Errorf("failed to update item: %w", err)
	}

	s.logger.Info("item updated", zap.Int64("item_id", itemID))
	dto := toItemDTO(it)
	return &dto, nil
}

// FindByID retrieves one item. Last/next booking are attached only when the
// caller is the item's owner.
func (s *ItemService) FindByID(ctx context.Context, userID, itemID int64) (*ItemDTO, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	it, err := s.repo.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	dto := toItemDTO(it)
	if it.OwnerID() == userID {
		if err := s.fillBookings(ctx, &dto); err != nil {
			return nil, err
		}
	}
	return &dto, nil
}

// FindAllByOwner lists a user's items, id-ascending and paginated, with
// last/next booking attached to each.
func (s *ItemService) FindAllByOwner(ctx context.Context, ownerID int64, from, size *int) ([]ItemDTO, error) {
	if err := s.requireUser(ctx, ownerID); err != nil {
		return nil, err
	}

	page, err := pagination.Resolve(from, size, pagination.SortIDAsc)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.FindByOwner(ctx, ownerID, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list items by owner: %w", err)
	}

	dtos := make([]ItemDTO, len(items))
	for i, it := range items {
		dtos[i] = toItemDTO(it)
		if err := s.fillBookings(ctx, &dtos[i]); err != nil {
			return nil, err
		}
	}
	return dtos, nil
}

// fillBookings attaches the most recent past-or-current booking and the
// nearest future booking of the item. Rejected and canceled bookings do not
// count.
func (s *ItemService) fillBookings(ctx context.Context, dto *ItemDTO) error {
	bookings, err := s.bookings.FindAllByItem(ctx, dto.ID)
	if err != nil {
		return fmt.Errorf("failed to load item bookings: %w", err)
	}
	bookingDomain.SortByStartDesc(bookings)

	now := time.Now().UTC()
	for _, bk := range bookings {
		if bk.Status() == bookingDomain.StatusRejected || bk.Status() == bookingDomain.StatusCanceled {
			continue
		}
		if bk.Start().After(now) {
			// Descending scan: the last future booking seen is the nearest.
			ref := toBookingRefDTO(bk)
			dto.NextBooking = &ref
			continue
		}
		if dto.LastBooking == nil {
			ref := toBookingRefDTO(bk)
			dto.LastBooking = &ref
		}
	}
	return nil
}

func (s *ItemService) requireUser(ctx context.Context, userID int64) error {
	exists, err := s.users.Exists(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to check user existence: %w", err)
	}
	if !exists {
		return apperr.NotFound("user", userID)
	}
	return nil
}
