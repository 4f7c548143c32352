package statemachine

import (
	"errors"
	"fmt"
	"strings"

	"restaurant-orders-api/models"
)

// ErrInvalidStatus is returned for targets outside the status enum
var ErrInvalidStatus = errors.New("invalid status")

// Transition defines a valid state change
type Transition struct {
	From models.OrderStatus `json:"from"`
	To   models.OrderStatus `json:"to"`
}

// validTransitions is the authoritative state machine definition.
// Every status is reachable from every other one, including moving a paid
// order back to pending; only membership in the enum is checked.
var validTransitions = func() []Transition {
	var ts []Transition
	for _, from := range models.AllStatuses() {
		for _, to := range models.AllStatuses() {
			if from != to {
				ts = append(ts, Transition{From: from, To: to})
			}
		}
	}
	return ts
}()

// ValidTransitionsFrom returns all valid next states from a given state
func ValidTransitionsFrom(status models.OrderStatus) []models.OrderStatus {
	var nexts []models.OrderStatus
	for _, t := range validTransitions {
		if t.From == status {
			nexts = append(nexts, t.To)
		}
	}
	return nexts
}

// ParseTarget validates a requested status string
func ParseTarget(to string) (models.OrderStatus, error) {
	target, ok := models.ParseOrderStatus(to)
	if !ok {
		return "", fmt.Errorf("%w: '%s' is not one of: %s",
			ErrInvalidStatus, to, describeStatuses(models.AllStatuses()))
	}
	return target, nil
}

// CanTransition checks that an order may move from one state to another.
// Every change between known statuses is allowed, so this only rejects values
// outside the enum.
func CanTransition(from, to models.OrderStatus) error {
	if !to.IsValid() {
		return fmt.Errorf("%w: '%s'", ErrInvalidStatus, to)
	}
	if !from.IsValid() {
		return fmt.Errorf("%w: current status '%s' is unknown", ErrInvalidStatus, from)
	}
	return nil
}

func describeStatuses(statuses []models.OrderStatus) string {
	if len(statuses) == 0 {
		return "none"
	}
	names := make([]string, 0, len(statuses))
	for _, s := range statuses {
		names = append(names, string(s))
	}
	return strings.Join(names, ", ")
}

// GetAllTransitions returns the full state machine for documentation
func GetAllTransitions() []Transition {
	return validTransitions
}
