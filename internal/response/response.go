package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shareit-platform/service-rental/internal/domain/apperr"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error string `json:"error"`
}

// Success writes a 200 with the given payload.
func Success(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusOK, payload)
}

// Created writes a 201 with the given payload.
func Created(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusCreated, payload)
}

// BadRequest writes a 400 with the given message.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorBody{Error: message})
}

// Error maps a service error to its HTTP status. Business failures carry
// their own status; anything else is a 500 with the detail withheld.
func Error(c *gin.Context, err error) {
	var appErr *apperr.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.HTTPStatus(), ErrorBody{Error: appErr.Message})
		return
	}
	c.JSON(http.StatusInternalServerError, ErrorBody{Error: "internal server error"})
}
