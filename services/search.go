package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"restaurant-orders-api/models"
)

// SearchMode selects how Search interprets its value
type SearchMode string

const (
	SearchByID     SearchMode = "by_id"
	SearchByTable  SearchMode = "by_table"
	SearchByStatus SearchMode = "by_status"
)

// SearchResult describes a successful lookup. Order is set for id and
// table lookups; status lookups only report a count and a link to the list.
type SearchResult struct {
	Message string
	Link    string
	Count   int64
	Order   *models.Order
}

// Search resolves an order by id or table number, or counts orders in a status.
// Malformed input yields ErrValidation, well-formed input without matches
// ErrOrderNotFound.
func (s *OrderService) Search(ctx context.Context, mode, value string) (*SearchResult, error) {
	if mode == "" || value == "" {
		return nil, fmt.Errorf("%w: no required parameters", ErrValidation)
	}

	switch SearchMode(mode) {
	case SearchByID:
		id, err := parseNumeric(value)
		if err != nil {
			return nil, err
		}
		order, err := s.Get(ctx, uint(id))
		if err != nil {
			return nil, err
		}
		return foundOrder(order), nil

	case SearchByTable:
		n, err := parseNumeric(value)
		if err != nil {
			return nil, err
		}
		order, err := s.GetByTable(ctx, int(n))
		if err != nil {
			return nil, err
		}
		return foundOrder(order), nil

	case SearchByStatus:
		status, ok := models.ParseOrderStatus(value)
		if !ok {
			return nil, fmt.Errorf("%w: not allowed status", ErrValidation)
		}
		n, err := s.CountByStatus(ctx, status)
		if err != nil {
			return nil, err
		}
		if n < 1 {
			return nil, fmt.Errorf("%w: no orders with status %s", ErrOrderNotFound, status)
		}
		return &SearchResult{
			Message: fmt.Sprintf("Found orders: %d", n),
			Link:    models.OrdersByStatusPath(status),
			Count:   n,
		}, nil

	default:
		return nil, fmt.Errorf("%w: unknown search mode %q", ErrValidation, mode)
	}
}

func foundOrder(order *models.Order) *SearchResult {
	return &SearchResult{
		Message: fmt.Sprintf("Found order #%d", order.ID),
		Link:    order.DetailPath(),
		Count:   1,
		Order:   order,
	}
}

// parseNumeric accepts only non-negative integer literals made of ASCII digits.
// A well-formed number too large for any stored id or table matches nothing.
func parseNumeric(value string) (int64, error) {
	for _, r := range value {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("%w: must be an integer", ErrValidation)
		}
	}
	n, err := strconv.ParseInt(value, 10, 32)
	if errors.Is(err, strconv.ErrRange) {
		return 0, fmt.Errorf("%w: no order matches %s", ErrOrderNotFound, value)
	}
	if err != nil {
		return 0, fmt.Errorf("%w: must be an integer", ErrValidation)
	}
	return n, nil
}
