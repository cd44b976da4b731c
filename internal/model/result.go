package model

// MetricRef is the caller-facing slice of a metric definition.
type MetricRef struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	UnitType    string `json:"unit_type"`
}

// RatioRef is the caller-facing slice of a ratio definition.
type RatioRef struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Format      string `json:"format"`
}

// YoYChange is the year-over-year percent change ending at FiscalYear.
// Percent is nil when the prior value is zero or the sign flips.
type YoYChange struct {
	FiscalYear int      `json:"fiscal_year"`
	Percent    *float64 `json:"percent"`
}

// CAGREntry is a compound annual growth rate over a lookback window.
type CAGREntry struct {
	Years   int     `json:"years"`
	Percent float64 `json:"percent"`
}

// GrowthSignal classifies whether growth is speeding up or slowing down.
type GrowthSignal string

const (
	GrowthAccelerating GrowthSignal = "accelerating"
	GrowthDecelerating GrowthSignal = "decelerating"
	GrowthStable       GrowthSignal = "stable"
)

// Calculations carries the derived figures for a series.
type Calculations struct {
	YoY          []YoYChange  `json:"yoy,omitempty"`
	CAGR         []CAGREntry  `json:"cagr,omitempty"`
	GrowthSignal GrowthSignal `json:"growth_signal,omitempty"`
}

// QueryResult is the success shape of a single-metric query.
type QueryResult struct {
	Company      CompanyIdentity `json:"company"`
	Metric       MetricRef       `json:"metric"`
	PeriodType   string          `json:"period_type"`
	Data         []DataPoint     `json:"data"`
	Calculations *Calculations   `json:"calculations,omitempty"`
	Provenance   ProvenanceInfo  `json:"provenance"`
}

// CompareEntry is one ticker's outcome inside a comparison.
type CompareEntry struct {
	Ticker string       `json:"ticker"`
	Result *QueryResult `json:"result,omitempty"`
	Error  *Error       `json:"error,omitempty"`
}

// CompareResult holds per-ticker results; one failure never aborts the rest.
type CompareResult struct {
	Metric  MetricRef      `json:"metric"`
	Entries []CompareEntry `json:"entries"`
}

// RatioPoint is one composed ratio value for a fiscal year.
type RatioPoint struct {
	FiscalYear int     `json:"fiscal_year"`
	Value      float64 `json:"value"`
}

// RatioResult is the success shape of a ratio query.
type RatioResult struct {
	Company       CompanyIdentity `json:"company"`
	Ratio         RatioRef        `json:"ratio"`
	Data          []RatioPoint    `json:"data"`
	DivByZeroSkip int             `json:"div_by_zero_skipped,omitempty"`
	Provenance    ProvenanceInfo  `json:"provenance"`
}

// SummaryMetric is one catalog metric's latest value in a summary.
type SummaryMetric struct {
	ID          string   `json:"id"`
	DisplayName string   `json:"display_name"`
	UnitType    string   `json:"unit_type"`
	FiscalYear  int      `json:"fiscal_year"`
	Value       float64  `json:"value"`
	YoYPercent  *float64 `json:"yoy_percent,omitempty"`
}

// SummaryRatio is one derived ratio in a summary.
type SummaryRatio struct {
	ID          string  `json:"id"`
	DisplayName string  `json:"display_name"`
	Format      string  `json:"format"`
	FiscalYear  int     `json:"fiscal_year"`
	Value       float64 `json:"value"`
}

// SummaryResult is the full-company snapshot: every catalog metric plus the
// derived ratios that had both operands available.
type SummaryResult struct {
	Company    CompanyIdentity `json:"company"`
	FiscalYear int             `json:"fiscal_year"`
	Metrics    []SummaryMetric `json:"metrics"`
	Ratios     []SummaryRatio  `json:"ratios"`
}

// MultiMetricSeries is one metric's year-aligned values.
type MultiMetricSeries struct {
	Metric MetricRef       `json:"metric"`
	Values map[int]float64 `json:"values"`
}

// MultiMetricResult aligns several metrics for one company by fiscal year.
type MultiMetricResult struct {
	Company CompanyIdentity     `json:"company"`
	Years   []int               `json:"years"`
	Series  []MultiMetricSeries `json:"series"`
}

// MatrixColumn is one company's metric values for the shared fiscal year.
type MatrixColumn struct {
	Company CompanyIdentity     `json:"company"`
	Values  map[string]*float64 `json:"values"`
	Error   *Error              `json:"error,omitempty"`
}

// MatrixResult is a tickers x metrics grid for a single fiscal year.
type MatrixResult struct {
	FiscalYear int            `json:"fiscal_year"`
	Metrics    []MetricRef    `json:"metrics"`
	Columns    []MatrixColumn `json:"columns"`
}

// ScreenEntry is one company's value in a cross-company ranking.
type ScreenEntry struct {
	CIK        string  `json:"cik"`
	EntityName string  `json:"entity_name"`
	Value      float64 `json:"value"`
}

// ScreenResult ranks companies by one metric for one calendar period.
type ScreenResult struct {
	Metric      MetricRef     `json:"metric"`
	Period      string        `json:"period"`
	ConceptUsed string        `json:"concept_used"`
	Entries     []ScreenEntry `json:"entries"`
}
