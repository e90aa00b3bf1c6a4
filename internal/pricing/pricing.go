// Package pricing derives display prices and cart aggregates from
// backend-shaped data. Nothing here is cached: every aggregate is computed
// from the lines passed in.
package pricing

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	MaxDiscount = 100

	// LowStockThreshold is the stock level below which a product is badged
	// as running out.
	LowStockThreshold = 10
)

var (
	ErrInvalidPrice    = errors.New("price must not be negative")
	ErrInvalidDiscount = errors.New("discount must be between 0 and 100")
)

var hundred = decimal.NewFromInt(100)

// Line is a priced quantity of one product.
type Line interface {
	LineUnitPrice() int64
	LineQuantity() int
}

// Validate checks the preconditions of FinalPrice.
func Validate(price int64, discount int) error {
	if price < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidPrice, price)
	}
	if discount < 0 || discount > MaxDiscount {
		return fmt.Errorf("%w: %d", ErrInvalidDiscount, discount)
	}
	return nil
}

// FinalPrice returns price - price*discount/100, exact. Rounding to whole
// rupiah is left to the formatter.
func FinalPrice(price int64, discount int) decimal.Decimal {
	p := decimal.NewFromInt(price)
	cut := p.Mul(decimal.NewFromInt(int64(discount))).Div(hundred)
	return p.Sub(cut)
}

// Savings is the amount taken off the original price.
func Savings(price int64, discount int) decimal.Decimal {
	return decimal.NewFromInt(price).Sub(FinalPrice(price, discount))
}

// Subtotal sums unit price times quantity over lines.
func Subtotal[L Line](lines []L) int64 {
	var total int64
	for _, l := range lines {
		total += l.LineUnitPrice() * int64(l.LineQuantity())
	}
	return total
}

// TotalItems sums quantities over lines.
func TotalItems[L Line](lines []L) int {
	n := 0
	for _, l := range lines {
		n += l.LineQuantity()
	}
	return n
}

func IsSoldOut(stock int) bool {
	return stock <= 0
}

func IsLowStock(stock int) bool {
	return stock > 0 && stock < LowStockThreshold
}
