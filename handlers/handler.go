package handlers

import (
	"time"

	"restaurant-orders-api/models"
	"restaurant-orders-api/services"
)

// Handler serves the HTTP API on top of the services
type Handler struct {
	Orders *services.OrderService
	Menu   *services.MenuService
	Staff  *services.StaffService
}

func New(orders *services.OrderService, menu *services.MenuService, staff *services.StaffService) *Handler {
	return &Handler{Orders: orders, Menu: menu, Staff: staff}
}

// OrderResponse is the wire representation of an order
type OrderResponse struct {
	ID          uint               `json:"id"`
	TableNumber int                `json:"table_number"`
	TotalPrice  models.Money       `json:"total_price"`
	Status      models.OrderStatus `json:"status"`
	StatusLabel string             `json:"status_label"`
	Items       []uint             `json:"items"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

func newOrderResponse(o *models.Order) OrderResponse {
	return OrderResponse{
		ID:          o.ID,
		TableNumber: o.TableNumber,
		TotalPrice:  o.TotalPrice,
		Status:      o.Status,
		StatusLabel: o.Status.Label(),
		Items:       o.ItemIDs(),
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

func newOrderResponses(orders []models.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, newOrderResponse(&orders[i]))
	}
	return out
}
