// Package provenance composes the audit record attached to every result.
package provenance

import (
	"fmt"
	"sort"

	"github.com/sells-group/secfacts/internal/catalog"
	"github.com/sells-group/secfacts/internal/model"
	"github.com/sells-group/secfacts/internal/xbrl"
)

const (
	periodAnnual    = "Annual (full fiscal year)"
	periodQuarterly = "Quarterly (single quarter)"
)

// Build assembles the provenance record for one extracted series.
func Build(points []model.DataPoint, sel model.ConceptSelection, restatements []model.Restatement, metric catalog.MetricDefinition) model.ProvenanceInfo {
	info := model.ProvenanceInfo{
		SelectedConcept: sel.Selected,
		DedupStrategy:   xbrl.DedupStrategy,
		PeriodType:      periodAnnual,
		FilingsUsed:     filingsUsed(points),
	}

	quarterly := false
	for _, p := range points {
		if p.FiscalPeriod != "FY" {
			quarterly = true
			break
		}
	}
	if quarterly {
		info.PeriodType = periodQuarterly
	}

	for _, r := range restatements {
		info.Notes = append(info.Notes, fmt.Sprintf(
			"FY%d was restated: original $%s revised to $%s (%+g%%) in filing %s (accession %s supersedes %s)",
			r.FiscalYear, amount(r.OriginalValue), amount(r.RestatedValue), r.PercentChange,
			r.RestatedFiled, r.RestatedAccession, r.OriginalAccession,
		))
	}

	switch {
	case metric.Aggregation == catalog.AggregationEndOfPeriod:
		info.Notes = append(info.Notes, "Values are end-of-period snapshots")
	case quarterly:
		info.Notes = append(info.Notes, "Values are single-quarter amounts")
	default:
		info.Notes = append(info.Notes, "Values are cumulative for the full fiscal year")
	}

	for _, attempt := range sel.ConceptsTried {
		name := attempt.Taxonomy + ":" + attempt.Concept
		if !attempt.Found {
			info.Notes = append(info.Notes, "Concept not found: "+name)
			continue
		}
		if name != sel.Selected {
			info.Notes = append(info.Notes, fmt.Sprintf(
				"Alternative concept with data: %s (max FY%d)", name, attempt.MaxFiscalYear,
			))
		}
	}

	return info
}

func filingsUsed(points []model.DataPoint) []model.FilingRef {
	seen := make(map[string]bool, len(points))
	var refs []model.FilingRef
	for _, p := range points {
		if seen[p.Source.AccessionNumber] {
			continue
		}
		seen[p.Source.AccessionNumber] = true
		refs = append(refs, model.FilingRef{
			AccessionNumber: p.Source.AccessionNumber,
			FormType:        p.Source.FormType,
			FilingDate:      p.Source.FilingDate,
			FiscalYear:      p.FiscalYear,
		})
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].FiscalYear < refs[j].FiscalYear })
	return refs
}

// amount renders a value without trailing zeros; large magnitudes keep full
// precision rather than scientific notation.
func amount(v float64) string {
	return fmt.Sprintf("%.10g", v)
}
