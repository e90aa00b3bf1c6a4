package pricing

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var idPrinter = message.NewPrinter(language.Indonesian)

// FormatIDR renders an amount the way the storefront shows rupiah: no
// fractional digits, dot grouping, half away from zero ("Rp 80.000").
func FormatIDR(amount decimal.Decimal) string {
	whole := amount.Round(0).IntPart()
	if whole < 0 {
		return "-Rp " + idPrinter.Sprintf("%d", -whole)
	}
	return "Rp " + idPrinter.Sprintf("%d", whole)
}

// FormatIDRInt is FormatIDR for whole-rupiah integers.
func FormatIDRInt(amount int64) string {
	return FormatIDR(decimal.NewFromInt(amount))
}
