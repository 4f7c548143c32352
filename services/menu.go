package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"restaurant-orders-api/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ItemDeletePolicy decides what happens to orders when a menu item they
// reference is deleted
type ItemDeletePolicy string

const (
	// DeleteRestrict rejects the deletion while any order holds the item
	DeleteRestrict ItemDeletePolicy = "restrict"
	// DeleteCascade removes the item from every order and recomputes their totals
	DeleteCascade ItemDeletePolicy = "cascade"
)

const maxItemNameLength = 155

// maxItemPrice is the largest value that fits decimal(8,2)
var maxItemPrice = models.MustMoney("999999.99")

func ParseItemDeletePolicy(s string) (ItemDeletePolicy, error) {
	switch p := ItemDeletePolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return DeleteRestrict, nil
	case DeleteRestrict, DeleteCascade:
		return p, nil
	default:
		return "", fmt.Errorf("unknown item delete policy %q (want restrict or cascade)", s)
	}
}

// MenuService manages the menu items that orders are built from
type MenuService struct {
	db           *gorm.DB
	deletePolicy ItemDeletePolicy
}

func NewMenuService(db *gorm.DB, policy ItemDeletePolicy) *MenuService {
	if policy == "" {
		policy = DeleteRestrict
	}
	return &MenuService{db: db, deletePolicy: policy}
}

type MenuItemInput struct {
	Name  *string
	Price *models.Money
}

func (s *MenuService) Create(ctx context.Context, name string, price models.Money) (*models.MenuItem, error) {
	name = strings.TrimSpace(name)
	if err := validateItem(name, price); err != nil {
		return nil, err
	}
	item := models.MenuItem{Name: name, Price: models.NewMoney(price.Decimal)}
	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *MenuService) Get(ctx context.Context, id uint) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := s.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, notFound(err, ErrMenuItemNotFound, "#%d", id)
	}
	return &item, nil
}

func (s *MenuService) List(ctx context.Context) ([]models.MenuItem, error) {
	var items []models.MenuItem
	if err := s.db.WithContext(ctx).Order("id").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Update edits an item. A price change recomputes the total of every order
// holding the item in the same transaction.
func (s *MenuService) Update(ctx context.Context, id uint, in MenuItemInput) (*models.MenuItem, error) {
	var item models.MenuItem
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&item, id).Error; err != nil {
			return notFound(err, ErrMenuItemNotFound, "#%d", id)
		}

		name, price := item.Name, item.Price
		if in.Name != nil {
			name = strings.TrimSpace(*in.Name)
		}
		if in.Price != nil {
			price = models.NewMoney(in.Price.Decimal)
		}
		if err := validateItem(name, price); err != nil {
			return err
		}

		priceChanged := !price.Equal(item.Price)
		if err := tx.Model(&item).Updates(map[string]any{"name": name, "price": price}).Error; err != nil {
			return err
		}
		item.Name, item.Price = name, price
		if !priceChanged {
			return nil
		}

		orderIDs, err := ordersHoldingItem(tx, item.ID)
		if err != nil {
			return err
		}
		return recalculateOrders(tx, orderIDs)
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Delete removes an item according to the configured policy
func (s *MenuService) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item models.MenuItem
		if err := tx.First(&item, id).Error; err != nil {
			return notFound(err, ErrMenuItemNotFound, "#%d", id)
		}

		orderIDs, err := ordersHoldingItem(tx, item.ID)
		if err != nil {
			return err
		}
		if len(orderIDs) > 0 && s.deletePolicy == DeleteRestrict {
			return fmt.Errorf("%w: item #%d is on %d order(s)", ErrMenuItemInUse, item.ID, len(orderIDs))
		}

		if len(orderIDs) > 0 {
			if err := tx.Exec("DELETE FROM order_items WHERE menu_item_id = ?", item.ID).Error; err != nil {
				return err
			}
		}
		if err := tx.Delete(&item).Error; err != nil {
			if errors.Is(err, gorm.ErrForeignKeyViolated) {
				return fmt.Errorf("%w: %v", ErrMenuItemInUse, err)
			}
			return err
		}
		if err := recalculateOrders(tx, orderIDs); err != nil {
			return err
		}

		logrus.WithFields(logrus.Fields{
			"item_id":         item.ID,
			"policy":          s.deletePolicy,
			"affected_orders": len(orderIDs),
		}).Info("menu item deleted")
		return nil
	})
}

func ordersHoldingItem(tx *gorm.DB, itemID uint) ([]uint, error) {
	var orderIDs []uint
	err := tx.Table("order_items").Where("menu_item_id = ?", itemID).
		Order("order_id").Pluck("order_id", &orderIDs).Error
	return orderIDs, err
}

func validateItem(name string, price models.Money) error {
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if len([]rune(name)) > maxItemNameLength {
		return fmt.Errorf("%w: name must not exceed %d characters", ErrValidation, maxItemNameLength)
	}
	if price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", ErrValidation)
	}
	if price.GreaterThan(maxItemPrice.Decimal) {
		return fmt.Errorf("%w: price must not exceed %s", ErrValidation, maxItemPrice)
	}
	return nil
}
