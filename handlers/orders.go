package handlers

import (
	"fmt"
	"net/http"

	"restaurant-orders-api/middleware"
	"restaurant-orders-api/models"
	"restaurant-orders-api/services"
	"restaurant-orders-api/statemachine"

	"github.com/gin-gonic/gin"
)

type CreateOrderRequest struct {
	TableNumber int    `json:"table_number" binding:"required,gt=0"`
	Items       []uint `json:"items"`
}

// UpdateOrderRequest is a full update; total_price is not accepted
type UpdateOrderRequest struct {
	TableNumber *int    `json:"table_number" binding:"omitempty,gt=0"`
	Status      *string `json:"status"`
	Items       *[]uint `json:"items"`
}

type OrderItemsRequest struct {
	Items []uint `json:"items" binding:"required"`
}

type ChangeStatusRequest struct {
	NewStatus string `json:"new_status"`
}

// ListOrders returns orders, newest first, optionally filtered by ?status=
func (h *Handler) ListOrders(c *gin.Context) {
	var filter *models.OrderStatus
	if raw := c.Query("status"); raw != "" {
		status, ok := models.ParseOrderStatus(raw)
		if !ok {
			badRequest(c, fmt.Sprintf("not allowed status %q", raw))
			return
		}
		filter = &status
	}

	orders, err := h.Orders.List(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}

	// dashboard counts cover every order, not just the filtered page
	summary, err := h.Orders.StatusSummary(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	body := gin.H{
		"count":         len(orders),
		"order_summary": summary,
		"orders":        newOrderResponses(orders),
	}
	if filter != nil {
		body["status"] = *filter
		body["status_label"] = filter.Label()
	}
	c.JSON(http.StatusOK, body)
}

// CreateOrder places a new order for a table
func (h *Handler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	order, err := h.Orders.Create(c.Request.Context(), services.CreateOrderInput{
		TableNumber: req.TableNumber,
		ItemIDs:     req.Items,
		CreatedBy:   middleware.GetStaffID(c),
	})
	if err != nil {
		writeOrderError(c, err)
		return
	}
	c.Header("Location", order.DetailPath())
	c.JSON(http.StatusCreated, newOrderResponse(order))
}

func (h *Handler) GetOrder(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	order, err := h.Orders.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newOrderResponse(order))
}

func (h *Handler) UpdateOrder(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	order, err := h.Orders.Update(c.Request.Context(), id, services.UpdateOrderInput{
		TableNumber: req.TableNumber,
		Status:      req.Status,
		ItemIDs:     req.Items,
		ChangedBy:   middleware.GetStaffID(c),
	})
	if err != nil {
		writeOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, newOrderResponse(order))
}

func (h *Handler) DeleteOrder(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.Orders.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	Success(http.StatusOK, fmt.Sprintf("Order #%d deleted", id), "").Write(c)
}

// AddOrderItems attaches items to an order
func (h *Handler) AddOrderItems(c *gin.Context) {
	h.changeItems(c, func(id uint, itemIDs []uint) (*models.Order, error) {
		return h.Orders.AddItems(c.Request.Context(), id, itemIDs)
	})
}

// ReplaceOrderItems sets the item set; an empty list clears it
func (h *Handler) ReplaceOrderItems(c *gin.Context) {
	h.changeItems(c, func(id uint, itemIDs []uint) (*models.Order, error) {
		return h.Orders.ReplaceItems(c.Request.Context(), id, itemIDs)
	})
}

func (h *Handler) RemoveOrderItem(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	itemID, ok := parseID(c, "itemId")
	if !ok {
		return
	}
	order, err := h.Orders.RemoveItems(c.Request.Context(), id, []uint{itemID})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newOrderResponse(order))
}

func (h *Handler) ClearOrderItems(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	order, err := h.Orders.ClearItems(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newOrderResponse(order))
}

func (h *Handler) changeItems(c *gin.Context, apply func(id uint, itemIDs []uint) (*models.Order, error)) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req OrderItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	order, err := apply(id, req.Items)
	if err != nil {
		writeOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, newOrderResponse(order))
}

// ChangeOrderStatus moves an order to {new_status}. A missing or unknown
// status is rejected before the order is looked up.
func (h *Handler) ChangeOrderStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	order, _, err := h.Orders.ChangeStatus(c.Request.Context(), id, req.NewStatus, middleware.GetStaffID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	Success(http.StatusOK,
		fmt.Sprintf("Order #%d status changed to %s", order.ID, order.Status.Label()),
		order.DetailPath(),
	).Write(c)
}

func (h *Handler) GetOrderHistory(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	history, err := h.Orders.History(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"order_id": id,
		"history":  history,
	})
}

// GetStateMachineInfo describes which status changes the API accepts
func GetStateMachineInfo(c *gin.Context) {
	statuses := make([]gin.H, 0, len(models.AllStatuses()))
	for _, s := range models.AllStatuses() {
		statuses = append(statuses, gin.H{"value": s, "label": s.Label()})
	}
	c.JSON(http.StatusOK, gin.H{
		"statuses":      statuses,
		"state_machine": statemachine.GetAllTransitions(),
		"description":   "Table order lifecycle. Any status may be set from any other.",
	})
}
