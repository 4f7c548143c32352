package services

import (
	"context"
	"strings"
	"testing"

	"restaurant-orders-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestParseItemDeletePolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    ItemDeletePolicy
		wantErr bool
	}{
		{"", DeleteRestrict, false},
		{"restrict", DeleteRestrict, false},
		{" Cascade ", DeleteCascade, false},
		{"nullify", "", true},
	}
	for _, tt := range tests {
		got, err := ParseItemDeletePolicy(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestMenuCreate_Validation(t *testing.T) {
	menu := NewMenuService(setupTestDB(t), "")
	ctx := context.Background()

	tests := []struct {
		name  string
		item  string
		price string
	}{
		{"blank name", "   ", "1.00"},
		{"name too long", strings.Repeat("x", 156), "1.00"},
		{"negative price", "Tea", "-0.01"},
		{"price too large", "Tea", "1000000.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := menu.Create(ctx, tt.item, models.MustMoney(tt.price))
			assert.ErrorIs(t, err, ErrValidation)
		})
	}

	item, err := menu.Create(ctx, "  Lemonade ", models.MustMoney("3.456"))
	require.NoError(t, err)
	assert.Equal(t, "Lemonade", item.Name)
	assert.Equal(t, "3.46", item.Price.String())

	items, err := menu.List(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestMenuUpdate_PriceChangeRecomputesOrders(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	price := models.MustMoney("500.00")
	item, err := f.menu.Update(ctx, f.eggs.ID, MenuItemInput{Price: &price})
	require.NoError(t, err)
	assert.Equal(t, "500.00", item.Price.String())
	assert.Equal(t, "Fried eggs", item.Name)

	for _, id := range []uint{f.order1.ID, f.order2.ID, f.order3.ID, f.order4.ID} {
		f.assertTotalConsistent(t, id)
	}
	stored, err := f.orders.Get(ctx, f.order1.ID)
	require.NoError(t, err)
	assert.Equal(t, "3000.00", stored.TotalPrice.String())

	revenue, _, err := f.orders.Revenue(ctx)
	require.NoError(t, err)
	assert.Equal(t, "6400.00", revenue.String())
}

func TestMenuUpdate_NameOnly(t *testing.T) {
	f := newFixture(t)

	name := "Scrambled eggs"
	item, err := f.menu.Update(context.Background(), f.eggs.ID, MenuItemInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, name, item.Name)
	assert.Equal(t, "450.00", item.Price.String())

	_, err = f.menu.Update(context.Background(), 999, MenuItemInput{Name: &name})
	assert.ErrorIs(t, err, ErrMenuItemNotFound)
}

func TestMenuDelete_Restrict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	err := f.menu.Delete(ctx, f.tea.ID)
	require.ErrorIs(t, err, ErrMenuItemInUse)

	_, err = f.menu.Get(ctx, f.tea.ID)
	assert.NoError(t, err)
	f.assertTotalConsistent(t, f.order2.ID)

	unused := f.mustItem(t, "Water", "0.00")
	require.NoError(t, f.menu.Delete(ctx, unused.ID))
	_, err = f.menu.Get(ctx, unused.ID)
	assert.ErrorIs(t, err, ErrMenuItemNotFound)

	assert.ErrorIs(t, f.menu.Delete(ctx, unused.ID), ErrMenuItemNotFound)
}

func TestMenuDelete_Cascade(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cascade := NewMenuService(f.db, DeleteCascade)

	require.NoError(t, cascade.Delete(ctx, f.steak.ID))

	_, err := cascade.Get(ctx, f.steak.ID)
	assert.ErrorIs(t, err, ErrMenuItemNotFound)

	order1 := f.assertTotalConsistent(t, f.order1.ID)
	assert.Equal(t, "450.00", order1.TotalPrice.String())
	order2 := f.assertTotalConsistent(t, f.order2.ID)
	assert.Equal(t, "650.00", order2.TotalPrice.String())

	revenue, _, err := f.orders.Revenue(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1300.00", revenue.String())
}

func TestMenuUpdate_LocksAffectedOrdersByID(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	var locked []uint
	err := f.db.Callback().Query().After("gorm:query").Register("test:record_order_locks", func(d *gorm.DB) {
		if _, ok := d.Statement.Clauses["FOR"]; !ok {
			return
		}
		if order, ok := d.Statement.Dest.(*models.Order); ok {
			locked = append(locked, order.ID)
		}
	})
	require.NoError(t, err)

	price := models.MustMoney("210.00")
	_, err = f.menu.Update(ctx, f.tea.ID, MenuItemInput{Price: &price})
	require.NoError(t, err)

	assert.Equal(t, []uint{f.order2.ID, f.order3.ID, f.order4.ID}, locked)
	for _, id := range locked {
		stored := f.assertTotalConsistent(t, id)
		assert.Equal(t, "3160.00", stored.TotalPrice.String())
	}
}

func TestRecalculateOrders_SkipsDeletedOrders(t *testing.T) {
	f := newFixture(t)

	err := f.db.Transaction(func(tx *gorm.DB) error {
		return recalculateOrders(tx, []uint{f.order4.ID, 999, f.order1.ID, f.order1.ID})
	})
	require.NoError(t, err)
	f.assertTotalConsistent(t, f.order1.ID)
	f.assertTotalConsistent(t, f.order4.ID)
}
