// Package calc derives growth figures and composed ratios from data point
// series. Inputs are never mutated.
package calc

import (
	"math"
	"sort"

	"github.com/sells-group/secfacts/internal/catalog"
	"github.com/sells-group/secfacts/internal/model"
)

// growthBand is the hysteresis zone, in percentage points, around the
// first-half mean growth. Carried over unchanged; no documented source.
const growthBand = 2.0

// YoY computes year-over-year percent change for each consecutive pair in
// the series, rounded to one decimal. The change is nil when the prior value
// is zero or the sign flips: a percent across a loss-to-profit transition is
// not meaningful.
func YoY(points []model.DataPoint) []model.YoYChange {
	if len(points) < 2 {
		return nil
	}
	out := make([]model.YoYChange, 0, len(points)-1)
	for i := 1; i < len(points); i++ {
		prev, curr := points[i-1].Value, points[i].Value
		entry := model.YoYChange{FiscalYear: points[i].FiscalYear}
		if prev != 0 && sameSign(prev, curr) {
			pct := math.Round((curr-prev)/math.Abs(prev)*100*10) / 10
			entry.Percent = &pct
		}
		out = append(out, entry)
	}
	return out
}

func sameSign(a, b float64) bool {
	return (a > 0) == (b > 0) && a != 0 && b != 0
}

// CAGR returns the compound annual growth rate from start to end over
// `years` as a signed percent, or nil when years <= 0 or either endpoint is
// non-positive (the geometric mean is undefined there). The value is not
// rounded; renderers round for display.
func CAGR(start, end float64, years int) *float64 {
	if years <= 0 || start <= 0 || end <= 0 {
		return nil
	}
	pct := (math.Pow(end/start, 1/float64(years)) - 1) * 100
	return &pct
}

// cagrLookbacks are the multi-period windows reported when enough history exists.
var cagrLookbacks = []int{1, 3, 5, 10}

// MultiCAGR computes CAGR for each standard lookback the series can support.
// A lookback needs strictly more entries than its length.
func MultiCAGR(points []model.DataPoint) []model.CAGREntry {
	var out []model.CAGREntry
	for _, lb := range cagrLookbacks {
		if len(points) <= lb {
			continue
		}
		start := points[len(points)-1-lb].Value
		end := points[len(points)-1].Value
		if pct := CAGR(start, end, lb); pct != nil {
			out = append(out, model.CAGREntry{Years: lb, Percent: *pct})
		}
	}
	return out
}

// Signal classifies growth as accelerating, decelerating, or stable by
// comparing mean growth in the first half of the series against the second,
// with a ±growthBand hysteresis zone. Growth samples come from consecutive
// pairs where both values are positive; fewer than four entries or fewer
// than two samples yield no signal.
func Signal(points []model.DataPoint) model.GrowthSignal {
	if len(points) < 4 {
		return ""
	}
	var growths []float64
	for i := 1; i < len(points); i++ {
		prev, curr := points[i-1].Value, points[i].Value
		if prev > 0 && curr > 0 {
			growths = append(growths, (curr-prev)/prev*100)
		}
	}
	if len(growths) < 2 {
		return ""
	}
	mid := (len(growths) + 1) / 2
	f := mean(growths[:mid])
	s := mean(growths[mid:])
	switch {
	case s > f+growthBand:
		return model.GrowthAccelerating
	case s < f-growthBand:
		return model.GrowthDecelerating
	default:
		return model.GrowthStable
	}
}

func mean(vals []float64) float64 {
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

// Derive assembles the full calculation block for a series.
func Derive(points []model.DataPoint) *model.Calculations {
	if len(points) < 2 {
		return nil
	}
	return &model.Calculations{
		YoY:          YoY(points),
		CAGR:         MultiCAGR(points),
		GrowthSignal: Signal(points),
	}
}

// Compose intersects the two component series by fiscal year and applies the
// ratio's operation and format. Divide skips zero-denominator years and
// counts them so the caller can distinguish "all zero" from "no overlap".
func Compose(num, den []model.DataPoint, ratio catalog.RatioDefinition) ([]model.RatioPoint, int) {
	denByYear := make(map[int]float64, len(den))
	for _, d := range den {
		denByYear[d.FiscalYear] = d.Value
	}

	var out []model.RatioPoint
	var divByZero int
	for _, n := range num {
		d, ok := denByYear[n.FiscalYear]
		if !ok {
			continue
		}
		var v float64
		switch ratio.Operation {
		case catalog.OperationSubtract:
			v = n.Value - d
		default:
			if d == 0 {
				divByZero++
				continue
			}
			v = n.Value / d
		}
		out = append(out, model.RatioPoint{FiscalYear: n.FiscalYear, Value: FormatValue(v, ratio.Format)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FiscalYear < out[j].FiscalYear })
	return out, divByZero
}

// FormatValue applies the ratio format's scaling and rounding. The rounding
// conventions (×1000/10 for percentages, ×100/100 for multiples) are fixed;
// renderers and comparisons depend on these exact decimals.
func FormatValue(v float64, format catalog.RatioFormat) float64 {
	switch format {
	case catalog.FormatPercentage:
		return math.Round(v*1000) / 10
	case catalog.FormatMultiple:
		return math.Round(v*100) / 100
	default:
		return v
	}
}
