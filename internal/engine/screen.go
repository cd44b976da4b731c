package engine

import (
	"context"
	"errors"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/secfacts/internal/edgar"
	"github.com/sells-group/secfacts/internal/model"
)

// ScreenOptions narrows and orders a cross-company screen.
type ScreenOptions struct {
	Min       *float64
	Max       *float64
	Ascending bool
	Limit     int
}

// DefaultScreenLimit bounds the entries returned when the caller does not set one.
const DefaultScreenLimit = 20

// Screen ranks every filer reporting one metric for a calendar period using
// the frames API. Period is "CY2024" for annual or "CY2024Q1" for quarterly.
// Candidate concepts are tried in priority order; the first frame with data
// wins, so legacy-only filers surface under the fallback concept.
func (e *Engine) Screen(ctx context.Context, metricID, period string, opts ScreenOptions) (*model.ScreenResult, *model.Error) {
	metric, ok := e.catalog.Metric(metricID)
	if !ok {
		notFound := model.NewError(model.ErrMetricNotFound, "unknown metric %q", metricID)
		notFound.Available = e.catalog.MetricIDs()
		return nil, notFound
	}
	if period == "" {
		return nil, model.NewError(model.ErrValidation, "a calendar period like CY2024 or CY2024Q1 is required")
	}
	if opts.Limit <= 0 {
		opts.Limit = DefaultScreenLimit
	}

	unit := frameUnit(metric.UnitKey())
	var frame *edgar.Frame
	var conceptUsed string
	for _, concept := range metric.Concepts {
		f, err := e.client.GetFrame(ctx, concept.Taxonomy, concept.Concept, unit, period)
		if err != nil {
			if errors.Is(err, edgar.ErrNotFound) {
				zap.L().Debug("engine: frame missing, trying next concept",
					zap.String("concept", concept.String()),
					zap.String("period", period),
				)
				continue
			}
			return nil, e.apiError(err, "fetch frame %s %s", concept.String(), period)
		}
		if len(f.Data) == 0 {
			continue
		}
		frame = f
		conceptUsed = concept.String()
		break
	}
	if frame == nil {
		return nil, model.NewError(model.ErrNoData, "no frame data for %s in %s", metric.ID, period)
	}

	entries := make([]model.ScreenEntry, 0, len(frame.Data))
	for _, fact := range frame.Data {
		if opts.Min != nil && fact.Val < *opts.Min {
			continue
		}
		if opts.Max != nil && fact.Val > *opts.Max {
			continue
		}
		entries = append(entries, model.ScreenEntry{
			CIK:        edgar.CIKString(fact.CIK),
			EntityName: fact.EntityName,
			Value:      fact.Val,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if opts.Ascending {
			return entries[i].Value < entries[j].Value
		}
		return entries[i].Value > entries[j].Value
	})
	if len(entries) > opts.Limit {
		entries = entries[:opts.Limit]
	}

	return &model.ScreenResult{
		Metric:      metricRef(metric),
		Period:      period,
		ConceptUsed: conceptUsed,
		Entries:     entries,
	}, nil
}

// frameUnit maps a unit key to its frames URL segment; compound units encode
// the slash as "-per-" ("USD/shares" becomes "USD-per-shares").
func frameUnit(unitKey string) string {
	return strings.ReplaceAll(unitKey, "/", "-per-")
}
