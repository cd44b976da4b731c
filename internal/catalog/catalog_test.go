package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCatalogConsistency(t *testing.T) {
	// New panics on a broken definition table, so constructing it is the test.
	c := New()
	assert.NotEmpty(t, c.MetricIDs())
	assert.NotEmpty(t, c.RatioIDs())
}

func TestMetricLookup(t *testing.T) {
	c := New()

	m, ok := c.Metric("revenue")
	require.True(t, ok)
	assert.Equal(t, "Revenue", m.DisplayName)
	assert.Equal(t, AggregationSum, m.Aggregation)
	require.NotEmpty(t, m.Concepts)
	assert.Equal(t, "us-gaap:RevenueFromContractWithCustomerExcludingAssessedTax", m.Concepts[0].String())

	_, ok = c.Metric("nope")
	assert.False(t, ok)
}

func TestConceptsSortedByPriority(t *testing.T) {
	c := New()
	for _, m := range c.Metrics() {
		for i := 1; i < len(m.Concepts); i++ {
			assert.Less(t, m.Concepts[i-1].Priority, m.Concepts[i].Priority,
				"metric %s concepts out of priority order", m.ID)
		}
	}
}

func TestRatioReferencesResolve(t *testing.T) {
	c := New()
	for _, r := range c.Ratios() {
		_, ok := c.Metric(r.Numerator)
		assert.True(t, ok, "ratio %s numerator %s", r.ID, r.Numerator)
		_, ok = c.Metric(r.Denominator)
		assert.True(t, ok, "ratio %s denominator %s", r.ID, r.Denominator)
	}
}

func TestUnitKey(t *testing.T) {
	c := New()

	m, _ := c.Metric("revenue")
	assert.Equal(t, "USD", m.UnitKey())

	m, _ = c.Metric("shares_outstanding")
	assert.Equal(t, "shares", m.UnitKey())

	m, _ = c.Metric("eps_diluted")
	assert.Equal(t, "USD/shares", m.UnitKey())
}

func TestBalanceSheetMetricsAreSnapshots(t *testing.T) {
	c := New()
	for _, m := range c.Metrics() {
		if m.Statement == StatementBalanceSheet {
			assert.Equal(t, AggregationEndOfPeriod, m.Aggregation, "metric %s", m.ID)
		}
	}
}

func TestLegacyRevenueConceptWindow(t *testing.T) {
	c := New()
	m, _ := c.Metric("revenue")

	var legacy *XbrlConcept
	for i := range m.Concepts {
		if m.Concepts[i].Concept == "SalesRevenueNet" {
			legacy = &m.Concepts[i]
		}
	}
	require.NotNil(t, legacy)
	assert.Equal(t, 2018, legacy.ValidTo)
}
