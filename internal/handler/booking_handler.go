package handler

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shareit-platform/service-rental/internal/application"
	bookingDomain "github.com/shareit-platform/service-rental/internal/domain/booking"
	"github.com/shareit-platform/service-rental/internal/response"
)

// BookingHandler handles HTTP requests for booking operations.
type BookingHandler struct {
	service *application.BookingService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(service *application.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

// RegisterRoutes registers all booking routes on the given router group.
func (h *BookingHandler) RegisterRoutes(r *gin.RouterGroup) {
	bookings := r.Group("/bookings")
	{
		bookings.POST("", h.Create)
		bookings.GET("", h.FindAllByBooker)
		bookings.GET("/owner", h.FindAllByOwner)
		bookings.GET("/:bookingId", h.FindByID)
		bookings.PATCH("/:bookingId", h.Approve)
	}
}

// Create handles POST /bookings.
func (h *BookingHandler) Create(c *gin.Context) {
	userID, ok := sharerID(c)
	if !ok {
		response.BadRequest(c, "missing or invalid X-Sharer-User-Id header")
		return
	}

	var req application.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Approve handles PATCH /bookings/:bookingId?approved=.
func (h *BookingHandler) Approve(c *gin.Context) {
	userID, ok := sharerID(c)
	if !ok {
		response.BadRequest(c, "missing or invalid X-Sharer-User-Id header")
		return
	}

	bookingID, ok := pathID(c, "bookingId")
	if !ok {
		response.BadRequest(c, "invalid booking id")
		return
	}

	approved, err := strconv.ParseBool(c.Query("approved"))
	if err != nil {
		response.BadRequest(c, "approved query parameter must be true or false")
		return
	}

	result, err := h.service.Approve(c.Request.Context(), userID, approved, bookingID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// FindByID handles GET /bookings/:bookingId.
func (h *BookingHandler) FindByID(c *gin.Context) {
	userID, ok := sharerID(c)
	if !ok {
		response.BadRequest(c, "missing or invalid X-Sharer-User-Id header")
		return
	}

	bookingID, ok := pathID(c, "bookingId")
	if !ok {
		response.BadRequest(c, "invalid booking id")
		return
	}

	result, err := h.service.FindByID(c.Request.Context(), userID, bookingID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// FindAllByBooker handles GET /bookings?state=&from=&size=.
func (h *BookingHandler) FindAllByBooker(c *gin.Context) {
	h.list(c, h.service.FindAllByBooker)
}

// FindAllByOwner handles GET /bookings/owner?state=&from=&size=.
func (h *BookingHandler) FindAllByOwner(c *gin.Context) {
	h.list(c, h.service.FindAllByOwner)
}

func (h *BookingHandler) list(
	c *gin.Context,
	query func(ctx context.Context, userID int64, filter bookingDomain.StateFilter, from, size *int) ([]application.BookingDTO, error),
) {
	userID, ok := sharerID(c)
	if !ok {
		response.BadRequest(c, "missing or invalid X-Sharer-User-Id header")
		return
	}

	from, size, ok := pageArgs(c)
	if !ok {
		response.BadRequest(c, "from and size must be integers")
		return
	}

	filter := bookingDomain.ParseStateFilter(c.DefaultQuery("state", "ALL"))

	result, err := query(c.Request.Context(), userID, filter, from, size)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
