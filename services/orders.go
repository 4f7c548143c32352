package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"restaurant-orders-api/events"
	"restaurant-orders-api/models"
	"restaurant-orders-api/statemachine"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OrderService owns the order aggregate. Every change to an order's item set
// goes through applyItemChange, which recomputes total_price inside the same
// transaction as the association change.
type OrderService struct {
	db        *gorm.DB
	publisher events.Publisher
}

func NewOrderService(db *gorm.DB, publisher events.Publisher) *OrderService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &OrderService{db: db, publisher: publisher}
}

type CreateOrderInput struct {
	TableNumber int
	ItemIDs     []uint
	CreatedBy   uint
}

// UpdateOrderInput carries the optional fields of a full order update.
// A nil field is left untouched.
type UpdateOrderInput struct {
	TableNumber *int
	Status      *string
	ItemIDs     *[]uint
	ChangedBy   uint
}

// Create places a new pending order for a table. The item list must not be empty.
func (s *OrderService) Create(ctx context.Context, in CreateOrderInput) (*models.Order, error) {
	if err := validateTableNumber(in.TableNumber); err != nil {
		return nil, err
	}
	if len(in.ItemIDs) == 0 {
		return nil, fmt.Errorf("%w: order cannot be empty", ErrValidation)
	}

	var order models.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureTableFree(tx, in.TableNumber, 0); err != nil {
			return err
		}
		items, err := findMenuItems(tx, in.ItemIDs)
		if err != nil {
			return err
		}
		order = models.Order{
			TableNumber: in.TableNumber,
			Status:      models.StatusPending,
			Items:       items,
		}
		if err := tx.Omit("Items.*").Create(&order).Error; err != nil {
			return translateWriteError(err)
		}
		history := models.OrderStatusHistory{
			OrderID:   order.ID,
			ToStatus:  models.StatusPending,
			ChangedBy: in.CreatedBy,
			Note:      "Order created",
		}
		if err := tx.Create(&history).Error; err != nil {
			return err
		}
		return recalculateTotal(tx, &order)
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"order_id":     order.ID,
		"table_number": order.TableNumber,
		"total_price":  order.TotalPrice.String(),
	}).Info("order created")
	s.publish(ctx, events.NewOrderEvent(events.OrderCreated, &order))
	return &order, nil
}

// Get loads an order with its items
func (s *OrderService) Get(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).Preload("Items", orderItemsByID).First(&order, id).Error
	if err != nil {
		return nil, notFound(err, ErrOrderNotFound, "#%d", id)
	}
	return &order, nil
}

// GetByTable loads the order currently held by a table
func (s *OrderService) GetByTable(ctx context.Context, tableNumber int) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).Preload("Items", orderItemsByID).
		Where("table_number = ?", tableNumber).First(&order).Error
	if err != nil {
		return nil, notFound(err, ErrOrderNotFound, "for table %d", tableNumber)
	}
	return &order, nil
}

// List returns orders, newest first, optionally filtered by status
func (s *OrderService) List(ctx context.Context, status *models.OrderStatus) ([]models.Order, error) {
	query := s.db.WithContext(ctx).Preload("Items", orderItemsByID)
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	var orders []models.Order
	if err := query.Order("created_at desc").Order("id desc").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// CountByStatus counts orders in the given status
func (s *OrderService) CountByStatus(ctx context.Context, status models.OrderStatus) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Order{}).Where("status = ?", status).Count(&n).Error
	return n, err
}

// StatusSummary counts all orders per status; statuses without orders report zero
func (s *OrderService) StatusSummary(ctx context.Context) (map[models.OrderStatus]int64, error) {
	var rows []struct {
		Status models.OrderStatus
		Count  int64
	}
	err := s.db.WithContext(ctx).Model(&models.Order{}).
		Select("status, count(*) AS count").Group("status").Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	summary := make(map[models.OrderStatus]int64, len(models.AllStatuses()))
	for _, status := range models.AllStatuses() {
		summary[status] = 0
	}
	for _, row := range rows {
		summary[row.Status] = row.Count
	}
	return summary, nil
}

// AddItems attaches items to the order; items already present are kept once.
func (s *OrderService) AddItems(ctx context.Context, orderID uint, itemIDs []uint) (*models.Order, error) {
	if len(itemIDs) == 0 {
		return nil, fmt.Errorf("%w: items must not be empty", ErrValidation)
	}
	return s.mutateItems(ctx, orderID, func(tx *gorm.DB, order *models.Order) error {
		items, err := findMenuItems(tx, itemIDs)
		if err != nil {
			return err
		}
		return applyItemChange(tx, order, func(assoc *gorm.Association) error {
			return assoc.Append(items)
		})
	})
}

// RemoveItems detaches items from the order. Items not on the order are ignored.
func (s *OrderService) RemoveItems(ctx context.Context, orderID uint, itemIDs []uint) (*models.Order, error) {
	if len(itemIDs) == 0 {
		return nil, fmt.Errorf("%w: items must not be empty", ErrValidation)
	}
	return s.mutateItems(ctx, orderID, func(tx *gorm.DB, order *models.Order) error {
		items, err := findMenuItems(tx, itemIDs)
		if err != nil {
			return err
		}
		return applyItemChange(tx, order, func(assoc *gorm.Association) error {
			return assoc.Delete(items)
		})
	})
}

// ClearItems empties the item set; the order's total becomes zero.
func (s *OrderService) ClearItems(ctx context.Context, orderID uint) (*models.Order, error) {
	return s.mutateItems(ctx, orderID, func(tx *gorm.DB, order *models.Order) error {
		return applyItemChange(tx, order, func(assoc *gorm.Association) error {
			return assoc.Clear()
		})
	})
}

// ReplaceItems sets the item set to exactly itemIDs
func (s *OrderService) ReplaceItems(ctx context.Context, orderID uint, itemIDs []uint) (*models.Order, error) {
	return s.mutateItems(ctx, orderID, func(tx *gorm.DB, order *models.Order) error {
		return replaceItems(tx, order, itemIDs)
	})
}

func (s *OrderService) mutateItems(ctx context.Context, orderID uint, mutate func(tx *gorm.DB, order *models.Order) error) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockOrder(tx, orderID, &order); err != nil {
			return err
		}
		return mutate(tx, &order)
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"order_id":    order.ID,
		"items":       len(order.Items),
		"total_price": order.TotalPrice.String(),
	}).Info("order items changed")
	s.publish(ctx, events.NewOrderEvent(events.OrderItemsChanged, &order))
	return &order, nil
}

// ChangeStatus moves an order to target. The target is validated before the
// order is looked up, so a bad value is reported even for unknown orders.
func (s *OrderService) ChangeStatus(ctx context.Context, orderID uint, target string, changedBy uint) (*models.Order, models.OrderStatus, error) {
	newStatus, err := parseStatusInput(target)
	if err != nil {
		return nil, "", err
	}

	var order models.Order
	var prev models.OrderStatus
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockOrder(tx, orderID, &order); err != nil {
			return err
		}
		prev = order.Status
		if err := setStatus(tx, &order, newStatus, changedBy, ""); err != nil {
			return err
		}
		return tx.Preload("Items", orderItemsByID).First(&order, order.ID).Error
	})
	if err != nil {
		return nil, "", err
	}

	logrus.WithFields(logrus.Fields{
		"order_id":        order.ID,
		"previous_status": prev,
		"status":          order.Status,
	}).Info("order status changed")
	evt := events.NewOrderEvent(events.OrderStatusChanged, &order)
	evt.PreviousStatus = prev
	s.publish(ctx, evt)
	return &order, prev, nil
}

// Update applies a full update of table number, status and item set.
// total_price is always recomputed, never taken from the caller.
func (s *OrderService) Update(ctx context.Context, orderID uint, in UpdateOrderInput) (*models.Order, error) {
	if in.TableNumber != nil {
		if err := validateTableNumber(*in.TableNumber); err != nil {
			return nil, err
		}
	}
	var newStatus models.OrderStatus
	if in.Status != nil {
		st, err := parseStatusInput(*in.Status)
		if err != nil {
			return nil, err
		}
		newStatus = st
	}

	var order models.Order
	var prev models.OrderStatus
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockOrder(tx, orderID, &order); err != nil {
			return err
		}
		prev = order.Status

		if in.TableNumber != nil && *in.TableNumber != order.TableNumber {
			if err := ensureTableFree(tx, *in.TableNumber, order.ID); err != nil {
				return err
			}
			if err := tx.Model(&order).Update("table_number", *in.TableNumber).Error; err != nil {
				return translateWriteError(err)
			}
			order.TableNumber = *in.TableNumber
		}
		if in.Status != nil && newStatus != order.Status {
			if err := setStatus(tx, &order, newStatus, in.ChangedBy, "Order updated"); err != nil {
				return err
			}
		}
		if in.ItemIDs != nil {
			return replaceItems(tx, &order, *in.ItemIDs)
		}
		return tx.Preload("Items", orderItemsByID).First(&order, order.ID).Error
	})
	if err != nil {
		return nil, err
	}

	if in.ItemIDs != nil {
		s.publish(ctx, events.NewOrderEvent(events.OrderItemsChanged, &order))
	}
	if order.Status != prev {
		evt := events.NewOrderEvent(events.OrderStatusChanged, &order)
		evt.PreviousStatus = prev
		s.publish(ctx, evt)
	}
	return &order, nil
}

// Delete removes the order, its item associations and its history.
// Menu items themselves are left alone.
func (s *OrderService) Delete(ctx context.Context, orderID uint) error {
	var order models.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockOrder(tx, orderID, &order); err != nil {
			return err
		}
		var items []models.MenuItem
		if err := tx.Model(&order).Association("Items").Find(&items); err != nil {
			return err
		}
		if err := tx.Model(&order).Association("Items").Clear(); err != nil {
			return err
		}
		order.Items = items
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderStatusHistory{}).Error; err != nil {
			return err
		}
		return tx.Delete(&order).Error
	})
	if err != nil {
		return err
	}

	logrus.WithField("order_id", orderID).Info("order deleted")
	s.publish(ctx, events.NewOrderEvent(events.OrderDeleted, &order))
	return nil
}

// History returns the status audit trail of an order, oldest first
func (s *OrderService) History(ctx context.Context, orderID uint) ([]models.OrderStatusHistory, error) {
	db := s.db.WithContext(ctx)
	var order models.Order
	if err := db.Select("id").First(&order, orderID).Error; err != nil {
		return nil, notFound(err, ErrOrderNotFound, "#%d", orderID)
	}
	var history []models.OrderStatusHistory
	if err := db.Where("order_id = ?", orderID).Order("id").Find(&history).Error; err != nil {
		return nil, err
	}
	return history, nil
}

// Revenue sums the totals of paid orders. No paid orders yields zero.
func (s *OrderService) Revenue(ctx context.Context) (models.Money, int, error) {
	var paid []models.Order
	err := s.db.WithContext(ctx).Select("id", "total_price").
		Where("status = ?", models.StatusPaid).Find(&paid).Error
	if err != nil {
		return models.Money{}, 0, err
	}
	totals := make([]models.Money, 0, len(paid))
	for _, o := range paid {
		totals = append(totals, o.TotalPrice)
	}
	return models.SumMoney(totals), len(paid), nil
}

func (s *OrderService) publish(ctx context.Context, evt events.Event) {
	if err := s.publisher.Publish(ctx, evt); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"event":    evt.Type,
			"order_id": evt.OrderID,
		}).Warn("failed to publish order event")
	}
}

// applyItemChange runs change against the order's item association and
// recomputes the total from the resulting set. Callers must pass a
// transaction so the change and the new total commit together.
func applyItemChange(tx *gorm.DB, order *models.Order, change func(assoc *gorm.Association) error) error {
	assoc := tx.Model(order).Association("Items")
	if assoc.Error != nil {
		return assoc.Error
	}
	if err := change(assoc); err != nil {
		return err
	}
	return recalculateTotal(tx, order)
}

func replaceItems(tx *gorm.DB, order *models.Order, itemIDs []uint) error {
	if len(itemIDs) == 0 {
		return applyItemChange(tx, order, func(assoc *gorm.Association) error {
			return assoc.Clear()
		})
	}
	items, err := findMenuItems(tx, itemIDs)
	if err != nil {
		return err
	}
	return applyItemChange(tx, order, func(assoc *gorm.Association) error {
		return assoc.Replace(items)
	})
}

// recalculateTotal sets total_price to the sum of the order's current item
// prices and persists only that column.
func recalculateTotal(tx *gorm.DB, order *models.Order) error {
	var items []models.MenuItem
	err := tx.Joins("JOIN order_items ON order_items.menu_item_id = menu_items.id").
		Where("order_items.order_id = ?", order.ID).
		Order("menu_items.id").
		Find(&items).Error
	if err != nil {
		return err
	}

	prices := make([]models.Money, 0, len(items))
	for _, item := range items {
		prices = append(prices, item.Price)
	}
	total := models.SumMoney(prices)

	if err := tx.Model(&models.Order{}).Where("id = ?", order.ID).
		UpdateColumn("total_price", total).Error; err != nil {
		return err
	}
	order.Items = items
	order.TotalPrice = total
	return nil
}

// recalculateOrders recomputes the totals of several orders in tx. Each order
// row is locked first, in ascending id order, so concurrent item changes on
// the same order cannot slip in between reading its items and writing the total.
// Orders deleted in the meantime are skipped.
func recalculateOrders(tx *gorm.DB, orderIDs []uint) error {
	for _, id := range uniqueIDs(orderIDs) {
		var order models.Order
		err := lockOrder(tx, id, &order)
		if errors.Is(err, ErrOrderNotFound) {
			continue
		}
		if err != nil {
			return err
		}
		if err := recalculateTotal(tx, &order); err != nil {
			return fmt.Errorf("recalculate order %d: %w", id, err)
		}
	}
	return nil
}

func setStatus(tx *gorm.DB, order *models.Order, to models.OrderStatus, changedBy uint, note string) error {
	from := order.Status
	if err := statemachine.CanTransition(from, to); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err := tx.Model(order).Update("status", to).Error; err != nil {
		return err
	}
	order.Status = to
	history := models.OrderStatusHistory{
		OrderID:    order.ID,
		FromStatus: from,
		ToStatus:   to,
		ChangedBy:  changedBy,
		Note:       note,
	}
	return tx.Create(&history).Error
}

func lockOrder(tx *gorm.DB, id uint, order *models.Order) error {
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(order, id).Error
	return notFound(err, ErrOrderNotFound, "#%d", id)
}

// findMenuItems resolves ids to items, failing on the first unknown id
func findMenuItems(tx *gorm.DB, ids []uint) ([]models.MenuItem, error) {
	unique := uniqueIDs(ids)
	var items []models.MenuItem
	if err := tx.Where("id IN ?", unique).Order("id").Find(&items).Error; err != nil {
		return nil, err
	}
	if len(items) == len(unique) {
		return items, nil
	}
	found := make(map[uint]bool, len(items))
	for _, item := range items {
		found[item.ID] = true
	}
	for _, id := range unique {
		if !found[id] {
			return nil, fmt.Errorf("%w: #%d", ErrMenuItemNotFound, id)
		}
	}
	return items, nil
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func ensureTableFree(tx *gorm.DB, tableNumber int, exceptOrderID uint) error {
	var n int64
	query := tx.Model(&models.Order{}).Where("table_number = ?", tableNumber)
	if exceptOrderID != 0 {
		query = query.Where("id <> ?", exceptOrderID)
	}
	if err := query.Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("%w: table %d", ErrTableTaken, tableNumber)
	}
	return nil
}

func validateTableNumber(n int) error {
	if n <= 0 {
		return fmt.Errorf("%w: table_number must be a positive integer", ErrValidation)
	}
	return nil
}

func parseStatusInput(raw string) (models.OrderStatus, error) {
	if strings.TrimSpace(raw) == "" {
		return "", fmt.Errorf("%w: new_status is required", ErrValidation)
	}
	status, err := statemachine.ParseTarget(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return status, nil
}

// translateWriteError maps storage constraint violations onto domain errors.
// The unique index on table_number still catches two creations that both
// passed ensureTableFree.
func translateWriteError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %v", ErrTableTaken, err)
	}
	return err
}

func notFound(err, sentinel error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: "+format, append([]any{sentinel}, args...)...)
	}
	return err
}

func orderItemsByID(db *gorm.DB) *gorm.DB {
	return db.Order("menu_items.id")
}
