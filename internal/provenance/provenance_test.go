package provenance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/secfacts/internal/catalog"
	"github.com/sells-group/secfacts/internal/model"
	"github.com/sells-group/secfacts/internal/xbrl"
)

func point(fy int, fp, accn string) model.DataPoint {
	return model.DataPoint{
		FiscalYear:   fy,
		FiscalPeriod: fp,
		Source: model.FilingSource{
			AccessionNumber: accn,
			FormType:        "10-K",
			FilingDate:      "2024-02-01",
		},
	}
}

func TestBuildAnnual(t *testing.T) {
	points := []model.DataPoint{point(2022, "FY", "a-22"), point(2023, "FY", "a-23")}
	sel := model.ConceptSelection{
		Selected: "us-gaap:Revenues",
		ConceptsTried: []model.ConceptAttempt{
			{Taxonomy: "us-gaap", Concept: "Revenues", Priority: 1, Found: true, MaxFiscalYear: 2023},
		},
	}
	metric := catalog.MetricDefinition{ID: "revenue", Aggregation: catalog.AggregationSum}

	info := Build(points, sel, nil, metric)
	assert.Equal(t, "us-gaap:Revenues", info.SelectedConcept)
	assert.Equal(t, xbrl.DedupStrategy, info.DedupStrategy)
	assert.Equal(t, "Annual (full fiscal year)", info.PeriodType)
	assert.Contains(t, info.Notes, "Values are cumulative for the full fiscal year")

	require.Len(t, info.FilingsUsed, 2)
	assert.Equal(t, "a-22", info.FilingsUsed[0].AccessionNumber)
	assert.Equal(t, "a-23", info.FilingsUsed[1].AccessionNumber)
}

func TestBuildQuarterlyPeriodType(t *testing.T) {
	points := []model.DataPoint{point(2023, "Q1", "q1"), point(2023, "Q2", "q2")}
	metric := catalog.MetricDefinition{ID: "revenue", Aggregation: catalog.AggregationSum}

	info := Build(points, model.ConceptSelection{}, nil, metric)
	assert.Equal(t, "Quarterly (single quarter)", info.PeriodType)
	assert.Contains(t, info.Notes, "Values are single-quarter amounts")
}

func TestBuildSnapshotNote(t *testing.T) {
	points := []model.DataPoint{point(2023, "FY", "a-23")}
	metric := catalog.MetricDefinition{ID: "total_assets", Aggregation: catalog.AggregationEndOfPeriod}

	info := Build(points, model.ConceptSelection{}, nil, metric)
	assert.Contains(t, info.Notes, "Values are end-of-period snapshots")
}

func TestBuildRestatementNote(t *testing.T) {
	points := []model.DataPoint{point(2021, "FY", "a-21r")}
	restatements := []model.Restatement{{
		FiscalYear:        2021,
		OriginalValue:     100,
		RestatedValue:     95,
		PercentChange:     -5,
		OriginalAccession: "a-21",
		RestatedAccession: "a-21r",
		RestatedFiled:     "2022-08-15",
	}}
	metric := catalog.MetricDefinition{ID: "revenue", Aggregation: catalog.AggregationSum}

	info := Build(points, model.ConceptSelection{}, restatements, metric)
	require.NotEmpty(t, info.Notes)
	note := info.Notes[0]
	assert.Contains(t, note, "FY2021 was restated")
	assert.Contains(t, note, "a-21r supersedes a-21")
	assert.Contains(t, note, "-5%")
}

func TestBuildConceptAttemptNotes(t *testing.T) {
	points := []model.DataPoint{point(2023, "FY", "a-23")}
	sel := model.ConceptSelection{
		Selected: "us-gaap:Revenues",
		ConceptsTried: []model.ConceptAttempt{
			{Taxonomy: "us-gaap", Concept: "RevenueFromContractWithCustomerExcludingAssessedTax", Priority: 1},
			{Taxonomy: "us-gaap", Concept: "Revenues", Priority: 2, Found: true, MaxFiscalYear: 2023},
			{Taxonomy: "us-gaap", Concept: "SalesRevenueNet", Priority: 3, Found: true, MaxFiscalYear: 2017},
		},
	}
	metric := catalog.MetricDefinition{ID: "revenue", Aggregation: catalog.AggregationSum}

	info := Build(points, sel, nil, metric)
	assert.Contains(t, info.Notes, "Concept not found: us-gaap:RevenueFromContractWithCustomerExcludingAssessedTax")
	assert.Contains(t, info.Notes, "Alternative concept with data: us-gaap:SalesRevenueNet (max FY2017)")
	// The selected concept never shows up as an alternative.
	for _, n := range info.Notes {
		assert.NotContains(t, n, "Alternative concept with data: us-gaap:Revenues")
	}
}

func TestFilingsUsedDeduplicatesAccessions(t *testing.T) {
	// Several quarters extracted from the same 10-K share one accession.
	points := []model.DataPoint{
		point(2023, "Q1", "k-23"),
		point(2023, "Q2", "k-23"),
		point(2023, "Q3", "q3"),
	}
	metric := catalog.MetricDefinition{ID: "revenue", Aggregation: catalog.AggregationSum}

	info := Build(points, model.ConceptSelection{}, nil, metric)
	assert.Len(t, info.FilingsUsed, 2)
}
