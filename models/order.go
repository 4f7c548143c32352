package models

import (
	"fmt"
	"time"
)

// OrderStatus represents the lifecycle state of a table order
type OrderStatus string

const (
	StatusPending OrderStatus = "pending"
	StatusReady   OrderStatus = "ready"
	StatusPaid    OrderStatus = "paid"
)

var statusLabels = map[OrderStatus]string{
	StatusPending: "Pending",
	StatusReady:   "Ready",
	StatusPaid:    "Paid",
}

// AllStatuses lists the statuses in lifecycle order
func AllStatuses() []OrderStatus {
	return []OrderStatus{StatusPending, StatusReady, StatusPaid}
}

// ParseOrderStatus reports whether s names one of the known statuses
func ParseOrderStatus(s string) (OrderStatus, bool) {
	status := OrderStatus(s)
	_, ok := statusLabels[status]
	return status, ok
}

func (s OrderStatus) IsValid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Label is the human readable name shown to staff
func (s OrderStatus) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

type Order struct {
	ID            uint                 `json:"id" gorm:"primaryKey"`
	TableNumber   int                  `json:"table_number" gorm:"uniqueIndex;not null"`
	Status        OrderStatus          `json:"status" gorm:"size:7;not null;default:pending;index"`
	TotalPrice    Money                `json:"total_price" gorm:"type:decimal(10,2);not null"` // derived from Items, never written by clients
	Items         []MenuItem           `json:"-" gorm:"many2many:order_items;"`
	StatusHistory []OrderStatusHistory `json:"-" gorm:"foreignKey:OrderID"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

// ItemIDs returns the ids of the loaded items
func (o *Order) ItemIDs() []uint {
	ids := make([]uint, 0, len(o.Items))
	for _, item := range o.Items {
		ids = append(ids, item.ID)
	}
	return ids
}

// DetailPath is the API path of the order
func (o *Order) DetailPath() string {
	return OrderDetailPath(o.ID)
}

func OrderDetailPath(id uint) string {
	return fmt.Sprintf("/api/orders/%d", id)
}

func OrdersByStatusPath(status OrderStatus) string {
	return "/api/orders?status=" + string(status)
}

// OrderStatusHistory tracks every status change of an order
type OrderStatusHistory struct {
	ID         uint        `json:"id" gorm:"primaryKey"`
	OrderID    uint        `json:"order_id" gorm:"not null;index"`
	FromStatus OrderStatus `json:"from_status"`
	ToStatus   OrderStatus `json:"to_status" gorm:"not null"`
	ChangedBy  uint        `json:"changed_by"` // staff ID, 0 when auth is disabled
	Note       string      `json:"note"`
	CreatedAt  time.Time   `json:"created_at"`
}
