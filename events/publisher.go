package events

import (
	"context"
	"time"

	"restaurant-orders-api/models"
)

// EventType names an order lifecycle event; it doubles as the routing key.
type EventType string

const (
	OrderCreated       EventType = "order.created"
	OrderItemsChanged  EventType = "order.items_changed"
	OrderStatusChanged EventType = "order.status_changed"
	OrderDeleted       EventType = "order.deleted"
)

// Event is the message published after an order change has been committed
type Event struct {
	Type           EventType          `json:"type"`
	OrderID        uint               `json:"order_id"`
	TableNumber    int                `json:"table_number"`
	Status         models.OrderStatus `json:"status"`
	PreviousStatus models.OrderStatus `json:"previous_status,omitempty"`
	TotalPrice     models.Money       `json:"total_price"`
	ItemIDs        []uint             `json:"item_ids"`
	OccurredAt     time.Time          `json:"occurred_at"`
}

// NewOrderEvent snapshots order into an event of the given type
func NewOrderEvent(t EventType, order *models.Order) Event {
	return Event{
		Type:        t,
		OrderID:     order.ID,
		TableNumber: order.TableNumber,
		Status:      order.Status,
		TotalPrice:  order.TotalPrice,
		ItemIDs:     order.ItemIDs(),
		OccurredAt:  time.Now().UTC(),
	}
}

//go:generate mockgen -source=publisher.go -destination=mock_publisher.go -package=events

// Publisher delivers order events to interested parties
type Publisher interface {
	Publish(ctx context.Context, evt Event) error
}

// NopPublisher drops every event
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
