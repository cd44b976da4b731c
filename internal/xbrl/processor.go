// Package xbrl turns raw EDGAR fact bundles into deduplicated, fiscally
// aligned data points. All functions are pure; the engine supplies the
// already-fetched bundle.
package xbrl

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/sells-group/secfacts/internal/catalog"
	"github.com/sells-group/secfacts/internal/edgar"
	"github.com/sells-group/secfacts/internal/model"
)

// DedupStrategy is the constant label surfaced in provenance.
const DedupStrategy = "Most recently filed values selected (grouped by period end date)"

// Single-quarter durations fall in this closed interval of days. 10-Q
// filings carry year-to-date values under the same concept; anything longer
// than ~4 months is cumulative and must be rejected for quarterly queries.
const (
	minQuarterDays = 60
	maxQuarterDays = 120
)

// FetchResult is the output of one metric extraction.
type FetchResult struct {
	DataPoints   []model.DataPoint
	ConceptUsed  string
	Selection    model.ConceptSelection
	Restatements []model.Restatement
}

type candidateFacts struct {
	concept      catalog.XbrlConcept
	facts        []edgar.SecFact
	restatements []trackedRestatement
	maxFY        int
	maxEnd       string
}

// FetchAnnual extracts up to `years` annual data points for a metric,
// trialing each candidate concept and selecting the one with the freshest
// fiscal year. targetYear > 0 discards later fiscal years first.
func FetchAnnual(facts *edgar.CompanyFacts, company model.CompanyIdentity, metric catalog.MetricDefinition, years, targetYear int) FetchResult {
	return fetch(facts, company, metric, years, targetYear, false)
}

// FetchQuarterly extracts up to `quarters` single-quarter data points.
// Duration metrics reject cumulative YTD facts via the day-count filter.
func FetchQuarterly(facts *edgar.CompanyFacts, company model.CompanyIdentity, metric catalog.MetricDefinition, quarters, targetYear int) FetchResult {
	return fetch(facts, company, metric, quarters, targetYear, true)
}

func fetch(facts *edgar.CompanyFacts, company model.CompanyIdentity, metric catalog.MetricDefinition, periods, targetYear int, quarterly bool) FetchResult {
	unit := metric.UnitKey()

	var tried []model.ConceptAttempt
	var withData []candidateFacts

	for _, concept := range metric.Concepts {
		attempt := model.ConceptAttempt{
			Taxonomy: concept.Taxonomy,
			Concept:  concept.Concept,
			Priority: concept.Priority,
		}

		var raw []edgar.SecFact
		if facts != nil {
			if bundle, ok := facts.Concept(concept.Taxonomy, concept.Concept); ok {
				raw = bundle.Units[unit]
			}
		}

		var filtered []edgar.SecFact
		if quarterly {
			filtered = filterQuarterly(raw, metric.Aggregation)
		} else {
			filtered = filterAnnual(raw, metric.Aggregation)
		}
		filtered = applyWindow(filtered, concept, targetYear)

		deduped, restatements := dedupByEnd(filtered)
		if len(deduped) > 0 {
			attempt.Found = true
			attempt.Count = len(deduped)
			cf := candidateFacts{concept: concept, facts: deduped, restatements: restatements}
			for _, f := range deduped {
				if fy := fiscalYearOf(f.End); fy > cf.maxFY {
					cf.maxFY = fy
				}
				if f.End > cf.maxEnd {
					cf.maxEnd = f.End
				}
			}
			attempt.MaxFiscalYear = cf.maxFY
			withData = append(withData, cf)
		}
		tried = append(tried, attempt)
	}

	if len(withData) == 0 {
		return FetchResult{Selection: model.ConceptSelection{ConceptsTried: tried}}
	}

	best := withData[0]
	for _, cf := range withData[1:] {
		if quarterly {
			// Quarterly selection prefers the candidate with the latest
			// period end; annual compares fiscal years.
			if cf.maxEnd > best.maxEnd || (cf.maxEnd == best.maxEnd && cf.concept.Priority < best.concept.Priority) {
				best = cf
			}
			continue
		}
		if cf.maxFY > best.maxFY || (cf.maxFY == best.maxFY && cf.concept.Priority < best.concept.Priority) {
			best = cf
		}
	}

	selected := best.concept.String()
	reason := fmt.Sprintf("%s has the most recent data (through FY%d) among %d candidate(s) with data", selected, best.maxFY, len(withData))
	if len(withData) == 1 {
		reason = fmt.Sprintf("%s is the only candidate with data", selected)
	}

	series := best.facts
	sort.Slice(series, func(i, j int) bool { return series[i].End < series[j].End })
	if len(series) > periods {
		series = series[len(series)-periods:]
	}

	now := time.Now().UTC()
	points := make([]model.DataPoint, 0, len(series))
	kept := make(map[string]bool, len(series))
	for _, f := range series {
		points = append(points, toDataPoint(f, company, metric, selected, unit, quarterly, now))
		kept[f.End] = true
	}

	var restatements []model.Restatement
	for _, r := range best.restatements {
		if kept[r.restatedEnd()] {
			restatements = append(restatements, r.Restatement)
		}
	}

	return FetchResult{
		DataPoints:  points,
		ConceptUsed: selected,
		Selection: model.ConceptSelection{
			ConceptsTried: tried,
			Selected:      selected,
			Reason:        reason,
		},
		Restatements: restatements,
	}
}

// filterAnnual keeps 10-K facts with a nonzero reported fiscal year.
// Duration metrics require fp FY; snapshots also accept Q4 since both label
// the fiscal year end.
func filterAnnual(facts []edgar.SecFact, agg catalog.Aggregation) []edgar.SecFact {
	var out []edgar.SecFact
	for _, f := range facts {
		if !formMatches(f.Form, "10-K") || f.FY == 0 || f.End == "" {
			continue
		}
		switch agg {
		case catalog.AggregationEndOfPeriod:
			if f.FP != "FY" && f.FP != "Q4" {
				continue
			}
		default:
			if f.FP != "FY" {
				continue
			}
		}
		out = append(out, f)
	}
	return out
}

// filterQuarterly keeps quarter-labelled facts from 10-Q and 10-K filings
// (Q4 normally lives inside the 10-K). Duration metrics must span a single
// quarter; snapshots have no duration to check.
func filterQuarterly(facts []edgar.SecFact, agg catalog.Aggregation) []edgar.SecFact {
	var out []edgar.SecFact
	for _, f := range facts {
		if (!formMatches(f.Form, "10-Q") && !formMatches(f.Form, "10-K")) || f.End == "" {
			continue
		}
		switch f.FP {
		case "Q1", "Q2", "Q3", "Q4":
		default:
			continue
		}
		if agg != catalog.AggregationEndOfPeriod {
			days, ok := durationDays(f.Start, f.End)
			if !ok || days < minQuarterDays || days > maxQuarterDays {
				continue
			}
		}
		out = append(out, f)
	}
	return out
}

func formMatches(form, prefix string) bool {
	return len(form) >= len(prefix) && form[:len(prefix)] == prefix
}

func applyWindow(facts []edgar.SecFact, concept catalog.XbrlConcept, targetYear int) []edgar.SecFact {
	if concept.ValidFrom == 0 && concept.ValidTo == 0 && targetYear == 0 {
		return facts
	}
	var out []edgar.SecFact
	for _, f := range facts {
		fy := fiscalYearOf(f.End)
		if concept.ValidFrom > 0 && fy < concept.ValidFrom {
			continue
		}
		if concept.ValidTo > 0 && fy > concept.ValidTo {
			continue
		}
		if targetYear > 0 && fy > targetYear {
			continue
		}
		out = append(out, f)
	}
	return out
}

// trackedRestatement remembers which period end produced a restatement so
// out-of-window restatements can be dropped.
type trackedRestatement struct {
	model.Restatement
	end string
}

func (t trackedRestatement) restatedEnd() string { return t.end }

// dedupByEnd groups facts by period end and keeps the most recently filed
// value in each group, so a restatement supersedes the original. When the
// winner's value differs from the most recent superseded filing, a
// restatement record is emitted.
func dedupByEnd(facts []edgar.SecFact) ([]edgar.SecFact, []trackedRestatement) {
	groups := make(map[string][]edgar.SecFact)
	for _, f := range facts {
		groups[f.End] = append(groups[f.End], f)
	}

	ends := make([]string, 0, len(groups))
	for end := range groups {
		ends = append(ends, end)
	}
	sort.Strings(ends)

	var winners []edgar.SecFact
	var restatements []trackedRestatement
	for _, end := range ends {
		g := groups[end]
		sort.Slice(g, func(i, j int) bool {
			if g[i].Filed != g[j].Filed {
				return g[i].Filed < g[j].Filed
			}
			return g[i].Accn < g[j].Accn
		})
		w := g[len(g)-1]
		winners = append(winners, w)

		// Compare against the most recent prior filing only; 10-K
		// comparatives repeat prior-year values without restating them.
		for i := len(g) - 2; i >= 0; i-- {
			prev := g[i]
			if prev.Accn == w.Accn {
				continue
			}
			if prev.Val != w.Val {
				restatements = append(restatements, trackedRestatement{
					Restatement: model.Restatement{
						FiscalYear:        fiscalYearOf(end),
						OriginalValue:     prev.Val,
						RestatedValue:     w.Val,
						PercentChange:     percentChange(prev.Val, w.Val),
						OriginalAccession: prev.Accn,
						RestatedAccession: w.Accn,
						RestatedFiled:     w.Filed,
					},
					end: end,
				})
			}
			break
		}
	}
	return winners, restatements
}

// fiscalYearOf derives the fiscal year from the period end's calendar year.
// The SEC attaches the filing's fy to every fact in it, including prior-year
// comparatives, so the reported fy cannot distinguish periods; the end date
// can, regardless of where the company's year ends.
func fiscalYearOf(end string) int {
	t, err := time.Parse("2006-01-02", end)
	if err != nil {
		return 0
	}
	return t.Year()
}

// quarterOf derives the quarter label from the period end month.
func quarterOf(end string) string {
	t, err := time.Parse("2006-01-02", end)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("Q%d", (int(t.Month())-1)/3+1)
}

func durationDays(start, end string) (int, bool) {
	if start == "" || end == "" {
		return 0, false
	}
	s, err := time.Parse("2006-01-02", start)
	if err != nil {
		return 0, false
	}
	e, err := time.Parse("2006-01-02", end)
	if err != nil {
		return 0, false
	}
	return int(e.Sub(s).Hours() / 24), true
}

func percentChange(old, cur float64) float64 {
	if old == 0 {
		return 0
	}
	return math.Round((cur-old)/math.Abs(old)*100*10) / 10
}

func toDataPoint(f edgar.SecFact, company model.CompanyIdentity, metric catalog.MetricDefinition, concept, unit string, quarterly bool, now time.Time) model.DataPoint {
	fy := fiscalYearOf(f.End)
	fp := "FY"
	if quarterly {
		fp = quarterOf(f.End)
	}
	return model.DataPoint{
		MetricID:     metric.ID,
		CIK:          company.CIK,
		CompanyName:  company.Name,
		FiscalYear:   fy,
		FiscalPeriod: fp,
		PeriodStart:  f.Start,
		PeriodEnd:    f.End,
		Value:        f.Val,
		Unit:         unit,
		Source: model.FilingSource{
			AccessionNumber: f.Accn,
			FilingDate:      f.Filed,
			FormType:        f.Form,
			XBRLConcept:     concept,
		},
		IsLatest:    true,
		ExtractedAt: now,
		Checksum:    model.ComputeChecksum(company.CIK, metric.ID, fy, fp, f.Val, f.Accn),
	}
}
