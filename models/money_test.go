package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSumMoney(t *testing.T) {
	tests := []struct {
		name    string
		amounts []string
		want    string
	}{
		{"nothing", nil, "0.00"},
		{"single", []string{"450"}, "450.00"},
		{"eggs and tea", []string{"450.00", "200.00"}, "650.00"},
		{"cents do not drift", []string{"0.10", "0.20", "0.30"}, "0.60"},
		{"two full orders", []string{"3150.00", "3150.00"}, "6300.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amounts := make([]Money, 0, len(tt.amounts))
			for _, a := range tt.amounts {
				amounts = append(amounts, MustMoney(a))
			}
			assert.Equal(t, tt.want, SumMoney(amounts).String())
		})
	}
}

func TestParseMoney(t *testing.T) {
	m, err := ParseMoney("12.345")
	require.NoError(t, err)
	assert.Equal(t, "12.35", m.String())

	_, err = ParseMoney("twelve")
	assert.Error(t, err)

	assert.Panics(t, func() { MustMoney("") })
}

func TestMoney_JSON(t *testing.T) {
	out, err := json.Marshal(struct {
		Price Money `json:"price"`
	}{MustMoney("7")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"price":"7.00"}`, string(out))

	var in struct {
		Price Money `json:"price"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"price":19.9}`), &in))
	assert.True(t, in.Price.Equal(MustMoney("19.90")))
	require.NoError(t, json.Unmarshal([]byte(`{"price":"2.50"}`), &in))
	assert.Equal(t, "2.50", in.Price.String())
}

func TestMoney_ValueAndScan(t *testing.T) {
	v, err := MustMoney("650").Value()
	require.NoError(t, err)
	assert.Equal(t, "650.00", v)

	var m Money
	require.NoError(t, m.Scan(float64(2500)))
	assert.Equal(t, "2500.00", m.String())
	require.NoError(t, m.Scan("450.00"))
	assert.True(t, m.Decimal.Equal(decimal.NewFromInt(450)))
}
