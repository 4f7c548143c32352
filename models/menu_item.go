package models

import "time"

// MenuItem is a dish that can be attached to any number of orders
type MenuItem struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:155;not null"`
	Price     Money     `json:"price" gorm:"type:decimal(8,2);not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
