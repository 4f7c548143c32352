package handlers

import (
	"fmt"
	"net/http"

	"restaurant-orders-api/models"
	"restaurant-orders-api/services"

	"github.com/gin-gonic/gin"
)

type CreateItemRequest struct {
	Name  string        `json:"name" binding:"required,max=155"`
	Price *models.Money `json:"price" binding:"required,gte=0"`
}

type UpdateItemRequest struct {
	Name  *string       `json:"name" binding:"omitempty,max=155"`
	Price *models.Money `json:"price" binding:"omitempty,gte=0"`
}

func (h *Handler) ListItems(c *gin.Context) {
	items, err := h.Menu.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count": len(items),
		"items": items,
	})
}

func (h *Handler) GetItem(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	item, err := h.Menu.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *Handler) CreateItem(c *gin.Context) {
	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	item, err := h.Menu.Create(c.Request.Context(), req.Name, *req.Price)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// UpdateItem edits an item; a new price is carried into every order holding it
func (h *Handler) UpdateItem(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	item, err := h.Menu.Update(c.Request.Context(), id, services.MenuItemInput{
		Name:  req.Name,
		Price: req.Price,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *Handler) DeleteItem(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.Menu.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	Success(http.StatusOK, fmt.Sprintf("Item #%d deleted", id), "").Write(c)
}
