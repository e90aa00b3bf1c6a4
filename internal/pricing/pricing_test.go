package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type line struct {
	price int64
	qty   int
}

func (l line) LineUnitPrice() int64 { return l.price }
func (l line) LineQuantity() int { return l.qty }

func TestFinalPrice(t *testing.T) {
	tests := []struct {
		name     string
		price    int64
		discount int
		want     string
	}{
		{"no discount", 100000, 0, "100000"},
		{"twenty percent", 100000, 20, "80000"},
		{"full discount", 100000, 100, "0"},
		{"fractional result kept exact", 999, 15, "849.15"},
		{"zero price", 0, 50, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FinalPrice(tt.price, tt.discount)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s", got)
		})
	}
}

func TestFinalPriceMatchesDefinition(t *testing.T) {
	for _, p := range []int64{0, 1, 7, 999, 12345, 100000, 2750000} {
		assert.True(t, FinalPrice(p, 0).Equal(decimal.NewFromInt(p)))
		for d := 0; d <= MaxDiscount; d++ {
			want := decimal.NewFromInt(p).Sub(decimal.NewFromInt(p * int64(d)).Div(decimal.NewFromInt(100)))
			assert.True(t, FinalPrice(p, d).Equal(want), "p=%d d=%d", p, d)
		}
	}
}

func TestSavings(t *testing.T) {
	assert.True(t, Savings(100000, 20).Equal(decimal.NewFromInt(20000)))
	assert.True(t, Savings(5000, 0).IsZero())
}

func TestValidate(t *testing.T) {
	require.NoError(t, Validate(0, 0))
	require.NoError(t, Validate(100, 100))
	assert.ErrorIs(t, Validate(-1, 10), ErrInvalidPrice)
	assert.ErrorIs(t, Validate(100, -5), ErrInvalidDiscount)
	assert.ErrorIs(t, Validate(100, 101), ErrInvalidDiscount)
}

func TestSubtotalAndTotalItems(t *testing.T) {
	lines := []line{{50000, 2}, {30000, 1}}

	assert.Equal(t, int64(130000), Subtotal(lines))
	assert.Equal(t, 3, TotalItems(lines))

	// dropping a line removes exactly its contribution
	assert.Equal(t, int64(130000-50000*2), Subtotal(lines[1:]))
	assert.Equal(t, int64(0), Subtotal([]line{}))
	assert.Equal(t, 0, TotalItems[line](nil))
}

func TestStockFlags(t *testing.T) {
	assert.True(t, IsSoldOut(0))
	assert.False(t, IsSoldOut(1))
	assert.True(t, IsLowStock(1))
	assert.True(t, IsLowStock(9))
	assert.False(t, IsLowStock(10))
	assert.False(t, IsLowStock(0))
}

func TestFormatIDR(t *testing.T) {
	assert.Equal(t, "Rp 80.000", FormatIDRInt(80000))
	assert.Equal(t, "Rp 100.000", FormatIDRInt(100000))
	assert.Equal(t, "Rp 0", FormatIDRInt(0))
	assert.Equal(t, "Rp 1.250.000", FormatIDRInt(1250000))
	assert.Equal(t, "Rp 849", FormatIDR(FinalPrice(999, 15)))
	assert.Equal(t, "Rp 850", FormatIDR(decimal.RequireFromString("849.5")))
}
