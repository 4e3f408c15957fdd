package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/shareit-platform/service-rental/internal/application"
	"github.com/shareit-platform/service-rental/internal/response"
)

// ItemHandler handles HTTP requests for item operations.
type ItemHandler struct {
	service *application.ItemService
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(service *application.ItemService) *ItemHandler {
	return &ItemHandler{service: service}
}

// RegisterRoutes registers all item routes on the given router group.
func (h *ItemHandler) RegisterRoutes(r *gin.RouterGroup) {
	items := r.Group("/items")
	{
		items.POST("", h.Create)
		items.GET("", h.FindAllByOwner)
		items.GET("/:itemId", h.FindByID)
		items.PATCH("/:itemId", h.Update)
	}
}

// Create handles POST /items.
func (h *ItemHandler) Create(c *gin.Context) {
	userID, ok := sharerID(c)
	if !ok {
		response.BadRequest(c, "missing or invalid X-Sharer-User-Id header")
		return
	}

	var req application.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// Update handles PATCH /items/:itemId.
func (h *ItemHandler) Update(c *gin.Context) {
	userID, ok := sharerID(c)
	if !ok {
		response.BadRequest(c, "missing or invalid X-Sharer-User-Id header")
		return
	}

	itemID, ok := pathID(c, "itemId")
	if !ok {
		response.BadRequest(c, "invalid item id")
		return
	}

	var req application.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.Update(c.Request.Context(), userID, itemID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// FindByID handles GET /items/:itemId.
func (h *ItemHandler) FindByID(c *gin.Context) {
	userID, ok := sharerID(c)
	if !ok {
		response.BadRequest(c, "missing or invalid X-Sharer-User-Id header")
		return
	}

	itemID, ok := pathID(c, "itemId")
	if !ok {
		response.BadRequest(c, "invalid item id")
		return
	}

	result, err := h.service.FindByID(c.Request.Context(), userID, itemID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// FindAllByOwner handles GET /items?from=&size=.
func (h *ItemHandler) FindAllByOwner(c *gin.Context) {
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

	result, err := h.service.FindAllByOwner(c.Request.Context(), userID, from, size)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
