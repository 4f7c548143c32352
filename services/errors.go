package services

import "errors"

var (
	// ErrValidation marks malformed or missing input
	ErrValidation = errors.New("validation failed")
	// ErrOrderNotFound is returned for a well-formed reference to a missing order
	ErrOrderNotFound = errors.New("order not found")
	// ErrMenuItemNotFound is returned when an item id does not exist
	ErrMenuItemNotFound = errors.New("menu item not found")
	// ErrTableTaken is returned when another order already holds the table number
	ErrTableTaken = errors.New("table number already in use")
	// ErrMenuItemInUse is returned when deleting an item that orders still reference
	ErrMenuItemInUse = errors.New("menu item is referenced by orders")
)
