package models

import (
	"time"
)

// StaffRole defines allowed roles for restaurant staff
type StaffRole string

const (
	RoleWaiter  StaffRole = "waiter"
	RoleManager StaffRole = "manager"
)

func (r StaffRole) IsValid() bool {
	return r == RoleWaiter || r == RoleManager
}

type Staff struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Role         StaffRole `json:"role" gorm:"not null;default:waiter"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
