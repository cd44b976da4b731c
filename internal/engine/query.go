package engine

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/sells-group/secfacts/internal/calc"
	"github.com/sells-group/secfacts/internal/model"
	"github.com/sells-group/secfacts/internal/provenance"
)

// PeriodType selects annual or quarterly extraction.
type PeriodType string

const (
	PeriodAnnual    PeriodType = "annual"
	PeriodQuarterly PeriodType = "quarterly"
)

// DefaultYears and DefaultQuarters bound a query when the caller does not
// specify a window.
const (
	DefaultYears    = 5
	DefaultQuarters = 8
)

// Query fetches one metric for one company and derives calculations and
// provenance. targetYear > 0 pins the series to end at that fiscal year.
func (e *Engine) Query(ctx context.Context, companyQuery, metricID string, periods, targetYear int, periodType PeriodType) (*model.QueryResult, *model.Error) {
	metric, ok := e.catalog.Metric(metricID)
	if !ok {
		notFound := model.NewError(model.ErrMetricNotFound, "unknown metric %q", metricID)
		notFound.Available = e.catalog.MetricIDs()
		return nil, notFound
	}

	quarterly := false
	switch periodType {
	case PeriodQuarterly:
		quarterly = true
	case PeriodAnnual, "":
	default:
		return nil, model.NewError(model.ErrValidation, "period type must be %q or %q", PeriodAnnual, PeriodQuarterly)
	}
	if periods <= 0 {
		if quarterly {
			periods = DefaultQuarters
		} else {
			periods = DefaultYears
		}
	}

	company, cerr := e.resolveCompany(ctx, companyQuery)
	if cerr != nil {
		return nil, cerr
	}

	res, ferr := e.fetchMetric(ctx, company, metric, periods, targetYear, quarterly)
	if ferr != nil {
		return nil, ferr
	}

	result := &model.QueryResult{
		Company:    *company,
		Metric:     metricRef(metric),
		PeriodType: string(periodType),
		Data:       res.DataPoints,
		Provenance: provenance.Build(res.DataPoints, res.Selection, res.Restatements, metric),
	}
	if result.PeriodType == "" {
		result.PeriodType = string(PeriodAnnual)
	}
	// Growth math assumes annual spacing; quarterly series carry raw data only.
	if !quarterly {
		result.Calculations = calc.Derive(res.DataPoints)
	}
	return result, nil
}

// Compare runs the same metric query for several tickers in parallel.
// Per-ticker failures land in their entry; one failure never aborts the rest.
func (e *Engine) Compare(ctx context.Context, tickers []string, metricID string, years int) (*model.CompareResult, *model.Error) {
	if len(tickers) == 0 {
		return nil, model.NewError(model.ErrValidation, "at least one ticker is required")
	}
	metric, ok := e.catalog.Metric(metricID)
	if !ok {
		notFound := model.NewError(model.ErrMetricNotFound, "unknown metric %q", metricID)
		notFound.Available = e.catalog.MetricIDs()
		return nil, notFound
	}

	entries := make([]model.CompareEntry, len(tickers))
	g, gctx := errgroup.WithContext(ctx)
	for i, ticker := range tickers {
		g.Go(func() error {
			res, qerr := e.Query(gctx, ticker, metricID, years, 0, PeriodAnnual)
			entries[i] = model.CompareEntry{Ticker: ticker, Result: res, Error: qerr}
			return nil
		})
	}
	_ = g.Wait() // workers never return errors; failures live in entries

	return &model.CompareResult{Metric: metricRef(metric), Entries: entries}, nil
}
