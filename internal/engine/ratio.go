package engine

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/sells-group/secfacts/internal/calc"
	"github.com/sells-group/secfacts/internal/model"
	"github.com/sells-group/secfacts/internal/provenance"
	"github.com/sells-group/secfacts/internal/xbrl"
)

// Ratio fetches both component metrics in parallel, intersects them by
// fiscal year, and applies the ratio's operation and format. The first
// fetch populates the company-facts cache, so the second never hits EDGAR.
func (e *Engine) Ratio(ctx context.Context, companyQuery, ratioID string, years int) (*model.RatioResult, *model.Error) {
	ratio, ok := e.catalog.Ratio(ratioID)
	if !ok {
		notFound := model.NewError(model.ErrRatioNotFound, "unknown ratio %q", ratioID)
		notFound.Available = e.catalog.RatioIDs()
		return nil, notFound
	}
	if years <= 0 {
		years = DefaultYears
	}

	company, cerr := e.resolveCompany(ctx, companyQuery)
	if cerr != nil {
		return nil, cerr
	}

	numMetric, _ := e.catalog.Metric(ratio.Numerator)
	denMetric, _ := e.catalog.Metric(ratio.Denominator)

	var numRes, denRes xbrl.FetchResult
	var numErr, denErr *model.Error
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		numRes, numErr = e.fetchMetric(gctx, company, numMetric, years, 0, false)
		return nil
	})
	g.Go(func() error {
		denRes, denErr = e.fetchMetric(gctx, company, denMetric, years, 0, false)
		return nil
	})
	_ = g.Wait()

	if numErr != nil {
		return nil, numErr
	}
	if denErr != nil {
		return nil, denErr
	}

	points, divByZero := calc.Compose(numRes.DataPoints, denRes.DataPoints, ratio)
	if len(points) == 0 {
		if divByZero > 0 {
			return nil, model.NewError(model.ErrNoData, "%s: denominator %s was zero in all %d overlapping year(s)", ratio.ID, ratio.Denominator, divByZero)
		}
		return nil, model.NewError(model.ErrNoData, "%s: no overlapping fiscal years between %s and %s", ratio.ID, ratio.Numerator, ratio.Denominator)
	}

	prov := provenance.Build(numRes.DataPoints, numRes.Selection, numRes.Restatements, numMetric)
	prov.Notes = append(prov.Notes, "Denominator concept: "+denRes.ConceptUsed)

	return &model.RatioResult{
		Company:       *company,
		Ratio:         ratioRef(ratio),
		Data:          points,
		DivByZeroSkip: divByZero,
		Provenance:    prov,
	}, nil
}

// Summary fetches every catalog metric for one company in parallel and
// derives the standard ratio set. Metrics share one company-facts URL, so
// only the first fetch reaches the network. Ratios whose operands are
// missing, or whose denominator is zero throughout, are skipped silently.
func (e *Engine) Summary(ctx context.Context, companyQuery string, targetYear, trendYears int) (*model.SummaryResult, *model.Error) {
	if trendYears <= 0 {
		trendYears = DefaultYears
	}

	company, cerr := e.resolveCompany(ctx, companyQuery)
	if cerr != nil {
		return nil, cerr
	}

	metrics := e.catalog.Metrics()
	results := make(map[string]xbrl.FetchResult, len(metrics))
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	for _, m := range metrics {
		g.Go(func() error {
			res, ferr := e.fetchMetric(gctx, company, m, trendYears, targetYear, false)
			if ferr != nil {
				return nil // metrics the filer does not report are simply absent
			}
			mu.Lock()
			results[m.ID] = res
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	if len(results) == 0 {
		return nil, model.NewError(model.ErrNoData, "no catalog metrics available for %s", company.Ticker)
	}

	summary := &model.SummaryResult{Company: *company}
	for _, m := range metrics {
		res, ok := results[m.ID]
		if !ok {
			continue
		}
		points := res.DataPoints
		latest := points[len(points)-1]
		entry := model.SummaryMetric{
			ID:          m.ID,
			DisplayName: m.DisplayName,
			UnitType:    string(m.UnitType),
			FiscalYear:  latest.FiscalYear,
			Value:       latest.Value,
		}
		if yoy := calc.YoY(points); len(yoy) > 0 {
			entry.YoYPercent = yoy[len(yoy)-1].Percent
		}
		if latest.FiscalYear > summary.FiscalYear {
			summary.FiscalYear = latest.FiscalYear
		}
		summary.Metrics = append(summary.Metrics, entry)
	}

	for _, r := range e.catalog.Ratios() {
		num, okNum := results[r.Numerator]
		den, okDen := results[r.Denominator]
		if !okNum || !okDen {
			continue
		}
		points, _ := calc.Compose(num.DataPoints, den.DataPoints, r)
		if len(points) == 0 {
			continue
		}
		last := points[len(points)-1]
		summary.Ratios = append(summary.Ratios, model.SummaryRatio{
			ID:          r.ID,
			DisplayName: r.DisplayName,
			Format:      string(r.Format),
			FiscalYear:  last.FiscalYear,
			Value:       last.Value,
		})
	}

	return summary, nil
}
