// internal/domain/money/money.go
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"storefront/internal/domain/common"
)

// Format describes how currency strings are parsed and rendered.
// Every call site passes a Format explicitly; there is no process-global
// locale state.
type Format struct {
	// Symbol is the currency symbol, e.g. "R".
	Symbol string
	// DecimalSep is the decimal separator accepted on input, e.g. "." or ",".
	DecimalSep string
}

// ZAR is the store currency (South African Rand, 2 minor units).
var ZAR = Format{Symbol: "R", DecimalSep: "."}

// MinorUnits is the number of decimal places persisted for every amount.
const MinorUnits = 2

// Parse reads an amount like "10.00" (or "10,00" when f.DecimalSep is ",").
// A leading currency symbol is tolerated. The result is rounded to MinorUnits.
func Parse(s string, f Format) (decimal.Decimal, error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return decimal.Zero, fmt.Errorf("%w: empty amount", common.ErrValidation)
	}

	if sym := strings.TrimSpace(f.Symbol); sym != "" {
		v = strings.TrimSpace(strings.TrimPrefix(v, sym))
	}
	if sep := f.DecimalSep; sep != "" && sep != "." {
		v = strings.ReplaceAll(v, sep, ".")
	}

	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: bad amount %q", common.ErrValidation, s)
	}
	return d.Round(MinorUnits), nil
}

// FormatAmount renders an amount as e.g. "R 10.00".
func FormatAmount(d decimal.Decimal, f Format) string {
	s := d.StringFixed(MinorUnits)
	if sep := f.DecimalSep; sep != "" && sep != "." {
		s = strings.ReplaceAll(s, ".", sep)
	}
	sym := strings.TrimSpace(f.Symbol)
	if sym == "" {
		return s
	}
	return sym + " " + s
}

// Total computes unit price × quantity at MinorUnits precision.
// Computed once at sale time and never recomputed.
func Total(unitPrice decimal.Decimal, qty int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(qty))).Round(MinorUnits)
}
