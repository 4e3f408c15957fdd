package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shareit-platform/service-rental/internal/application"
	"github.com/shareit-platform/service-rental/internal/response"
)

// UserHandler handles HTTP requests for user operations.
type UserHandler struct {
	service *application.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service *application.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// RegisterRoutes registers all user routes on the given router group.
func (h *UserHandler) RegisterRoutes(r *gin.RouterGroup) {
	users := r.Group("/users")
	{
		users.POST("", h.Create)
		users.GET("", h.FindAll)
		users.GET("/:userId", h.FindByID)
		users.PATCH("/:userId", h.Update)
		users.DELETE("/:userId", h.Delete)
	}
}

// Create handles POST /users.
func (h *UserHandler) Create(c *gin.Context) {
	var req application.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// Update handles PATCH /users/:userId.
func (h *UserHandler) Update(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		response.BadRequest(c, "invalid user id")
		return
	}

	var req application.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.Update(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// FindByID handles GET /users/:userId.
func (h *UserHandler) FindByID(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		response.BadRequest(c, "invalid user id")
		return
	}

	result, err := h.service.FindByID(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// FindAll handles GET /users.
func (h *UserHandler) FindAll(c *gin.Context) {
	result, err := h.service.FindAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Delete handles DELETE /users/:userId.
func (h *UserHandler) Delete(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		response.BadRequest(c, "invalid user id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusOK)
}
