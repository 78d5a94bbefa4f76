// internal/domain/money/money_test.go
package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain/common"
)

func TestParse(t *testing.T) {
	d, err := Parse("10.00", ZAR)
	require.NoError(t, err)
	assert.Equal(t, "10.00", d.StringFixed(2))

	// leading symbol tolerated
	d, err = Parse("R 10.50", ZAR)
	require.NoError(t, err)
	assert.Equal(t, "10.50", d.StringFixed(2))

	// rounded to minor units
	d, err = Parse("10.005", ZAR)
	require.NoError(t, err)
	assert.Equal(t, "10.01", d.StringFixed(2))

	_, err = Parse("", ZAR)
	assert.ErrorIs(t, err, common.ErrValidation)

	_, err = Parse("ten rand", ZAR)
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestParseCommaSeparator(t *testing.T) {
	eu := Format{Symbol: "€", DecimalSep: ","}

	d, err := Parse("€ 10,50", eu)
	require.NoError(t, err)
	assert.Equal(t, "10.50", d.StringFixed(2))
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "R 10.00", FormatAmount(decimal.RequireFromString("10"), ZAR))
	assert.Equal(t, "R 0.50", FormatAmount(decimal.RequireFromString("0.5"), ZAR))

	eu := Format{Symbol: "€", DecimalSep: ","}
	assert.Equal(t, "€ 10,50", FormatAmount(decimal.RequireFromString("10.5"), eu))

	bare := Format{}
	assert.Equal(t, "10.00", FormatAmount(decimal.RequireFromString("10"), bare))
}

func TestTotal(t *testing.T) {
	assert.Equal(t, "20.00", Total(decimal.RequireFromString("10.00"), 2).StringFixed(2))
	assert.Equal(t, "0.03", Total(decimal.RequireFromString("0.01"), 3).StringFixed(2))
	assert.Equal(t, "33.33", Total(decimal.RequireFromString("11.11"), 3).StringFixed(2))
}
