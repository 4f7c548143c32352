package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name      string
		mode      string
		value     string
		wantErr   error
		wantMsg   string
		wantLink  string
		wantCount int64
	}{
		{name: "missing mode", mode: "", value: "1", wantErr: ErrValidation},
		{name: "missing value", mode: "by_id", value: "", wantErr: ErrValidation},
		{name: "unknown mode", mode: "by_waiter", value: "1", wantErr: ErrValidation},
		{name: "id not numeric", mode: "by_id", value: "abc", wantErr: ErrValidation},
		{name: "id signed", mode: "by_id", value: "-1", wantErr: ErrValidation},
		{name: "id fraction", mode: "by_id", value: "1.5", wantErr: ErrValidation},
		{name: "table not numeric", mode: "by_table", value: "seven", wantErr: ErrValidation},
		{name: "status not allowed", mode: "by_status", value: "cooking", wantErr: ErrValidation},
		{name: "id not found", mode: "by_id", value: "999", wantErr: ErrOrderNotFound},
		{name: "table not found", mode: "by_table", value: "99", wantErr: ErrOrderNotFound},
		{name: "status without orders", mode: "by_status", value: "ready", wantErr: ErrOrderNotFound},
		{name: "id beyond 32 bits", mode: "by_id", value: "4294967296", wantErr: ErrOrderNotFound},
		{name: "id beyond 64 bits", mode: "by_id", value: "99999999999999999999", wantErr: ErrOrderNotFound},
		{name: "table beyond 32 bits", mode: "by_table", value: "4294967296", wantErr: ErrOrderNotFound},
		{
			name:      "by id",
			mode:      "by_id",
			value:     fmt.Sprint(f.order2.ID),
			wantMsg:   fmt.Sprintf("Found order #%d", f.order2.ID),
			wantLink:  fmt.Sprintf("/api/orders/%d", f.order2.ID),
			wantCount: 1,
		},
		{
			name:      "by table",
			mode:      "by_table",
			value:     "7",
			wantMsg:   fmt.Sprintf("Found order #%d", f.order4.ID),
			wantLink:  fmt.Sprintf("/api/orders/%d", f.order4.ID),
			wantCount: 1,
		},
		{
			name:      "by status",
			mode:      "by_status",
			value:     "paid",
			wantMsg:   "Found orders: 2",
			wantLink:  "/api/orders?status=paid",
			wantCount: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := f.orders.Search(ctx, tt.mode, tt.value)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, res)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantMsg, res.Message)
			assert.Equal(t, tt.wantLink, res.Link)
			assert.Equal(t, tt.wantCount, res.Count)
		})
	}
}

func TestSearch_ByIDReturnsOrder(t *testing.T) {
	f := newFixture(t)

	res, err := f.orders.Search(context.Background(), "by_id", fmt.Sprint(f.order1.ID))
	require.NoError(t, err)
	require.NotNil(t, res.Order)
	assert.Equal(t, 1, res.Order.TableNumber)
	assert.Equal(t, "2950.00", res.Order.TotalPrice.String())
}
