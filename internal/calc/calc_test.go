package calc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/secfacts/internal/catalog"
	"github.com/sells-group/secfacts/internal/model"
)

func series(values ...float64) []model.DataPoint {
	out := make([]model.DataPoint, 0, len(values))
	for i, v := range values {
		out = append(out, model.DataPoint{FiscalYear: 2019 + i, Value: v})
	}
	return out
}

func TestYoYRounding(t *testing.T) {
	yoy := YoY(series(100, 110, 125))
	require.Len(t, yoy, 2)

	require.NotNil(t, yoy[0].Percent)
	assert.Equal(t, 2020, yoy[0].FiscalYear)
	assert.Equal(t, 10.0, *yoy[0].Percent)

	require.NotNil(t, yoy[1].Percent)
	assert.InDelta(t, 13.6, *yoy[1].Percent, 1e-9) // 15/110 rounded to one decimal
}

func TestYoYZeroPriorIsNil(t *testing.T) {
	yoy := YoY(series(0, 50))
	require.Len(t, yoy, 1)
	assert.Nil(t, yoy[0].Percent)
}

func TestYoYSignFlipIsNil(t *testing.T) {
	yoy := YoY(series(-20, 30, 45))
	require.Len(t, yoy, 2)
	assert.Nil(t, yoy[0].Percent) // loss to profit
	require.NotNil(t, yoy[1].Percent)
	assert.Equal(t, 50.0, *yoy[1].Percent)
}

func TestYoYNegativeToNegative(t *testing.T) {
	// Both negative: change is measured against the magnitude of the prior.
	yoy := YoY(series(-100, -50))
	require.Len(t, yoy, 1)
	require.NotNil(t, yoy[0].Percent)
	assert.Equal(t, 50.0, *yoy[0].Percent)
}

func TestYoYTooShort(t *testing.T) {
	assert.Nil(t, YoY(series(100)))
	assert.Nil(t, YoY(nil))
}

func TestCAGRRoundTrip(t *testing.T) {
	start, years := 137.0, 7
	pct := CAGR(start, start*math.Pow(1.0843, float64(years)), years)
	require.NotNil(t, pct)
	// Reconstructing the endpoint from the rate must agree to high precision.
	end := start * math.Pow(1+*pct/100, float64(years))
	assert.InDelta(t, start*math.Pow(1.0843, float64(years)), end, 1e-6)
}

func TestCAGRUndefinedCases(t *testing.T) {
	assert.Nil(t, CAGR(0, 100, 5))
	assert.Nil(t, CAGR(-10, 100, 5))
	assert.Nil(t, CAGR(100, -10, 5))
	assert.Nil(t, CAGR(100, 200, 0))
}

func TestMultiCAGRLookbacks(t *testing.T) {
	// Six entries support the 1/3/5-year lookbacks but not 10.
	entries := MultiCAGR(series(100, 110, 121, 133, 146, 161))
	require.Len(t, entries, 3)
	assert.Equal(t, 1, entries[0].Years)
	assert.Equal(t, 3, entries[1].Years)
	assert.Equal(t, 5, entries[2].Years)
	assert.InDelta(t, 10.0, entries[2].Percent, 0.3)
}

func TestMultiCAGRNeedsStrictlyMoreEntries(t *testing.T) {
	// Exactly five entries span four years: no 5-year lookback.
	entries := MultiCAGR(series(100, 110, 121, 133, 146))
	for _, e := range entries {
		assert.NotEqual(t, 5, e.Years)
	}
}

func TestSignalAccelerating(t *testing.T) {
	assert.Equal(t, model.GrowthAccelerating, Signal(series(100, 102, 110, 125)))
}

func TestSignalDecelerating(t *testing.T) {
	assert.Equal(t, model.GrowthDecelerating, Signal(series(100, 125, 130, 132)))
}

func TestSignalStableWithinBand(t *testing.T) {
	// Steady ~5% growth stays inside the two-point hysteresis band.
	assert.Equal(t, model.GrowthStable, Signal(series(100, 105, 110.3, 115.8)))
}

func TestSignalTooFewEntries(t *testing.T) {
	assert.Equal(t, model.GrowthSignal(""), Signal(series(100, 110, 125)))
}

func TestSignalTooFewPositivePairs(t *testing.T) {
	assert.Equal(t, model.GrowthSignal(""), Signal(series(-10, -5, 100, 110)))
}

func TestDerive(t *testing.T) {
	assert.Nil(t, Derive(series(100)))

	c := Derive(series(100, 110, 121, 133, 146, 161))
	require.NotNil(t, c)
	assert.Len(t, c.YoY, 5)
	assert.NotEmpty(t, c.CAGR)
	assert.Equal(t, model.GrowthStable, c.GrowthSignal)
}

func TestComposeDivide(t *testing.T) {
	ratio := catalog.RatioDefinition{
		ID: "net_margin", Numerator: "net_income", Denominator: "revenue",
		Operation: catalog.OperationDivide, Format: catalog.FormatPercentage,
	}
	num := series(20, 25, 30)
	den := series(100, 0, 120)

	points, divByZero := Compose(num, den, ratio)
	require.Len(t, points, 2)
	assert.Equal(t, 1, divByZero)
	assert.Equal(t, 20.0, points[0].Value)
	assert.Equal(t, 25.0, points[1].Value)
}

func TestComposeSubtract(t *testing.T) {
	ratio := catalog.RatioDefinition{
		ID: "free_cash_flow", Numerator: "operating_cash_flow", Denominator: "capital_expenditures",
		Operation: catalog.OperationSubtract, Format: catalog.FormatCurrency,
	}
	points, divByZero := Compose(series(500, 550), series(100, 120), ratio)
	require.Len(t, points, 2)
	assert.Zero(t, divByZero)
	assert.Equal(t, 400.0, points[0].Value)
	assert.Equal(t, 430.0, points[1].Value)
}

func TestComposeNoOverlap(t *testing.T) {
	num := []model.DataPoint{{FiscalYear: 2019, Value: 10}}
	den := []model.DataPoint{{FiscalYear: 2023, Value: 100}}
	points, divByZero := Compose(num, den, catalog.RatioDefinition{Operation: catalog.OperationDivide})
	assert.Empty(t, points)
	assert.Zero(t, divByZero)
}

func TestFormatValueRounding(t *testing.T) {
	// Percentage: scale by 100, one decimal.
	assert.Equal(t, 21.3, FormatValue(0.21349, catalog.FormatPercentage))
	// Multiple: two decimals.
	assert.Equal(t, 1.57, FormatValue(1.5678, catalog.FormatMultiple))
	// Currency passes through.
	assert.Equal(t, 12345.678, FormatValue(12345.678, catalog.FormatCurrency))
}
