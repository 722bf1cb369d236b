package valueobject

import (
	"math"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// indonesian renders numbers with Indonesian conventions: "." for
// thousands grouping and "," for decimals.
var indonesian = message.NewPrinter(language.Indonesian)

// Rupiah formats an amount as full rupiah rounded to whole units,
// e.g. "Rp 1.234.567".
func Rupiah(amount decimal.Decimal) string {
	return indonesian.Sprintf("Rp %d", amount.Round(0).IntPart())
}

// RupiahFromFloat is Rupiah for float inputs. NaN and infinities format
// as zero so a degenerate aggregate never reaches the screen as "Rp NaN".
func RupiahFromFloat(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		amount = 0
	}
	return Rupiah(decimal.NewFromFloat(amount))
}

// RupiahShort formats an amount in abbreviated Indonesian units for chart
// axes and cards: triliun (T), miliar (M), juta (Jt), ribu (Rb).
func RupiahShort(amount decimal.Decimal) string {
	abs := amount.Abs()
	switch {
	case abs.GreaterThanOrEqual(decimal.New(1, 12)):
		return indonesian.Sprintf("Rp %.2f T", amount.Div(decimal.New(1, 12)).InexactFloat64())
	case abs.GreaterThanOrEqual(decimal.New(1, 9)):
		return indonesian.Sprintf("Rp %.2f M", amount.Div(decimal.New(1, 9)).InexactFloat64())
	case abs.GreaterThanOrEqual(decimal.New(1, 6)):
		return indonesian.Sprintf("Rp %.1f Jt", amount.Div(decimal.New(1, 6)).InexactFloat64())
	case abs.GreaterThanOrEqual(decimal.New(1, 3)):
		return indonesian.Sprintf("Rp %.1f Rb", amount.Div(decimal.New(1, 3)).InexactFloat64())
	default:
		return indonesian.Sprintf("Rp %d", amount.Round(0).IntPart())
	}
}

// Percent formats a percentage value with two decimals, e.g. "16,67%".
func Percent(value decimal.Decimal) string {
	return indonesian.Sprintf("%.2f%%", value.InexactFloat64())
}
