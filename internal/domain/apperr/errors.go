package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind identifies a class of business-rule failure. Every kind maps to a
// fixed HTTP status so handlers never pick status codes ad hoc.
type Kind string

const (
	KindNotFound             Kind = "not_found"
	KindInvalidDateRange     Kind = "invalid_date_range"
	KindSelfBookingForbidden Kind = "self_booking_forbidden"
	KindItemUnavailable      Kind = "item_unavailable"
	KindNotItemOwner         Kind = "not_item_owner"
	KindAlreadyDecided       Kind = "already_decided"
	KindNotABooker           Kind = "not_a_booker"
	KindUnknownBookingState  Kind = "unknown_booking_state"
	KindInvalidPageArguments Kind = "invalid_page_arguments"
	KindValidation           Kind = "validation"
	KindConflict             Kind = "conflict"
)

// statusByKind is the single source of truth for the HTTP mapping.
// SelfBookingForbidden and NotABooker deliberately report 404: existence of
// the booking or item is obscured from callers who may not see it.
var statusByKind = map[Kind]int{
	KindNotFound:             http.StatusNotFound,
	KindInvalidDateRange:     http.StatusBadRequest,
	KindSelfBookingForbidden: http.StatusNotFound,
	KindItemUnavailable:      http.StatusBadRequest,
	KindNotItemOwner:         http.StatusBadRequest,
	KindAlreadyDecided:       http.StatusBadRequest,
	KindNotABooker:           http.StatusNotFound,
	KindUnknownBookingState:  http.StatusBadRequest,
	KindInvalidPageArguments: http.StatusBadRequest,
	KindValidation:           http.StatusBadRequest,
	KindConflict:             http.StatusConflict,
}

// AppError is a deterministic, non-retryable business failure.
type AppError struct {
	Kind    Kind
	Message string
}

// Error implements the error interface.
func (e *AppError) Error() string {
	return e.Message
}

// HTTPStatus returns the status code the transport layer should use.
func (e *AppError) HTTPStatus() int {
	if s, ok := statusByKind[e.Kind]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// Is makes errors.Is match on kind, so sentinel comparisons work across wraps.
func (e *AppError) Is(target error) bool {
	var appErr *AppError
	if !errors.As(target, &appErr) {
		return false
	}
	return e.Kind == appErr.Kind
}

// New creates an AppError with the given kind and message.
func New(kind Kind, message string) *AppError {
	return &AppError{Kind: kind, Message: message}
}

// Newf creates an AppError with a formatted message.
func Newf(kind Kind, format string, args ...interface{}) *AppError {
	return &AppError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// NotFound reports a missing user, item or booking.
func NotFound(entity string, id int64) *AppError {
	return Newf(KindNotFound, "%s with id %d not found", entity, id)
}

// InvalidDateRange reports end <= start at booking creation.
func InvalidDateRange() *AppError {
	return New(KindInvalidDateRange, "booking end date must be after start date")
}

// SelfBookingForbidden reports an owner booking their own item.
func SelfBookingForbidden() *AppError {
	return New(KindSelfBookingForbidden, "you cannot book your own item")
}

// ItemUnavailable reports a booking attempt against an unavailable item.
func ItemUnavailable(itemID int64) *AppError {
	return Newf(KindItemUnavailable, "item with id %d is not available for booking", itemID)
}

// NotItemOwner reports an approve attempt by someone other than the item owner.
func NotItemOwner(userID int64) *AppError {
	return Newf(KindNotItemOwner, "user %d is not the owner of the booked item", userID)
}

// AlreadyDecided reports an approve call against a non-waiting booking.
func AlreadyDecided(bookingID int64) *AppError {
	return Newf(KindAlreadyDecided, "booking %d has already been decided", bookingID)
}

// NotABooker reports a visibility violation: the caller is neither the item
// owner nor the booker.
func NotABooker(userID int64) *AppError {
	return Newf(KindNotABooker, "booking is not visible to user %d", userID)
}

// UnknownBookingState reports an unparseable state filter value.
func UnknownBookingState(raw string) *AppError {
	return Newf(KindUnknownBookingState, "Unknown state: %s", raw)
}

// InvalidPageArguments reports a negative offset or non-positive page size.
func InvalidPageArguments() *AppError {
	return New(KindInvalidPageArguments, "page arguments must satisfy from >= 0 and size >= 1")
}

// Validation reports a generic input validation failure.
func Validation(message string) *AppError {
	return New(KindValidation, message)
}

// Conflict reports a lost write race (optimistic check failed).
func Conflict(message string) *AppError {
	return New(KindConflict, message)
}

// KindOf extracts the kind from an error chain, or "" if it carries none.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}
