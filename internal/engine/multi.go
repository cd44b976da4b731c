package engine

import (
	"context"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/sells-group/secfacts/internal/catalog"
	"github.com/sells-group/secfacts/internal/model"
)

// MultiMetric fetches several metrics for one company and aligns them by
// fiscal year. Metrics without data are dropped from the output; the call
// fails only when every metric came back empty.
func (e *Engine) MultiMetric(ctx context.Context, companyQuery string, metricIDs []string, years int) (*model.MultiMetricResult, *model.Error) {
	if len(metricIDs) == 0 {
		return nil, model.NewError(model.ErrValidation, "at least one metric is required")
	}
	metrics := make([]catalog.MetricDefinition, 0, len(metricIDs))
	for _, id := range metricIDs {
		m, ok := e.catalog.Metric(id)
		if !ok {
			notFound := model.NewError(model.ErrMetricNotFound, "unknown metric %q", id)
			notFound.Available = e.catalog.MetricIDs()
			return nil, notFound
		}
		metrics = append(metrics, m)
	}
	if years <= 0 {
		years = DefaultYears
	}

	company, cerr := e.resolveCompany(ctx, companyQuery)
	if cerr != nil {
		return nil, cerr
	}

	series := make([]*model.MultiMetricSeries, len(metrics))
	g, gctx := errgroup.WithContext(ctx)
	for i, m := range metrics {
		g.Go(func() error {
			res, ferr := e.fetchMetric(gctx, company, m, years, 0, false)
			if ferr != nil {
				return nil
			}
			values := make(map[int]float64, len(res.DataPoints))
			for _, p := range res.DataPoints {
				values[p.FiscalYear] = p.Value
			}
			series[i] = &model.MultiMetricSeries{Metric: metricRef(m), Values: values}
			return nil
		})
	}
	_ = g.Wait()

	result := &model.MultiMetricResult{Company: *company}
	yearSet := make(map[int]bool)
	for _, s := range series {
		if s == nil {
			continue
		}
		result.Series = append(result.Series, *s)
		for y := range s.Values {
			yearSet[y] = true
		}
	}
	if len(result.Series) == 0 {
		return nil, model.NewError(model.ErrNoData, "no data for any requested metric for %s", company.Ticker)
	}

	for y := range yearSet {
		result.Years = append(result.Years, y)
	}
	sort.Ints(result.Years)
	return result, nil
}

// Matrix builds a tickers x metrics grid for a single fiscal year. With no
// target year the grid uses the latest year any company reported; companies
// lagging that year show nil cells rather than stale values.
func (e *Engine) Matrix(ctx context.Context, tickers, metricIDs []string, targetYear int) (*model.MatrixResult, *model.Error) {
	if len(tickers) == 0 {
		return nil, model.NewError(model.ErrValidation, "at least one ticker is required")
	}
	if len(metricIDs) == 0 {
		return nil, model.NewError(model.ErrValidation, "at least one metric is required")
	}
	metrics := make([]catalog.MetricDefinition, 0, len(metricIDs))
	refs := make([]model.MetricRef, 0, len(metricIDs))
	for _, id := range metricIDs {
		m, ok := e.catalog.Metric(id)
		if !ok {
			notFound := model.NewError(model.ErrMetricNotFound, "unknown metric %q", id)
			notFound.Available = e.catalog.MetricIDs()
			return nil, notFound
		}
		metrics = append(metrics, m)
		refs = append(refs, metricRef(m))
	}

	type column struct {
		company *model.CompanyIdentity
		byYear  map[string]map[int]float64
		err     *model.Error
	}
	columns := make([]column, len(tickers))

	g, gctx := errgroup.WithContext(ctx)
	for i, ticker := range tickers {
		g.Go(func() error {
			company, cerr := e.resolveCompany(gctx, ticker)
			if cerr != nil {
				columns[i] = column{err: cerr}
				return nil
			}
			col := column{company: company, byYear: make(map[string]map[int]float64, len(metrics))}
			var mu sync.Mutex
			mg, mctx := errgroup.WithContext(gctx)
			for _, m := range metrics {
				mg.Go(func() error {
					res, ferr := e.fetchMetric(mctx, company, m, DefaultYears, targetYear, false)
					if ferr != nil {
						return nil
					}
					values := make(map[int]float64, len(res.DataPoints))
					for _, p := range res.DataPoints {
						values[p.FiscalYear] = p.Value
					}
					mu.Lock()
					col.byYear[m.ID] = values
					mu.Unlock()
					return nil
				})
			}
			_ = mg.Wait()
			columns[i] = col
			return nil
		})
	}
	_ = g.Wait()

	year := targetYear
	if year == 0 {
		for _, col := range columns {
			for _, values := range col.byYear {
				for y := range values {
					if y > year {
						year = y
					}
				}
			}
		}
	}
	if year == 0 {
		return nil, model.NewError(model.ErrNoData, "no data for any requested ticker and metric")
	}

	result := &model.MatrixResult{FiscalYear: year, Metrics: refs}
	for i, col := range columns {
		out := model.MatrixColumn{Error: col.err}
		if col.company != nil {
			out.Company = *col.company
		} else {
			out.Company = model.CompanyIdentity{Ticker: tickers[i]}
		}
		if col.err == nil {
			out.Values = make(map[string]*float64, len(metrics))
			for _, m := range metrics {
				if v, ok := col.byYear[m.ID][year]; ok {
					out.Values[m.ID] = &v
				} else {
					out.Values[m.ID] = nil
				}
			}
		}
		result.Columns = append(result.Columns, out)
	}
	return result, nil
}
