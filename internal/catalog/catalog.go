// Package catalog holds the static metric and ratio definitions the engine
// resolves against. Definitions are built once at process start and are
// read-only afterwards.
package catalog

import (
	"fmt"
	"sort"
)

// StatementType is the financial statement a metric belongs to.
type StatementType string

const (
	StatementIncome      StatementType = "income_statement"
	StatementCashFlow    StatementType = "cash_flow"
	StatementBalanceSheet StatementType = "balance_sheet"
)

// UnitType determines which XBRL unit bucket facts are read from.
type UnitType string

const (
	UnitCurrency UnitType = "currency"
	UnitShares   UnitType = "shares"
	UnitRatio    UnitType = "ratio"
)

// Aggregation distinguishes flow metrics (summed over a duration) from
// balance-sheet snapshots (value at period end).
type Aggregation string

const (
	AggregationSum         Aggregation = "sum"
	AggregationEndOfPeriod Aggregation = "end_of_period"
	AggregationAverage     Aggregation = "average" // unused at present
)

// XbrlConcept is one candidate tag for a metric. Lower Priority wins ties.
// ValidFrom/ValidTo bound the fiscal years the concept applies to (0 = open).
type XbrlConcept struct {
	Taxonomy  string
	Concept   string
	Priority  int
	ValidFrom int
	ValidTo   int
}

// String returns the "taxonomy:Concept" form used in provenance.
func (c XbrlConcept) String() string {
	return c.Taxonomy + ":" + c.Concept
}

// MetricDefinition declares how one economic quantity maps onto XBRL.
type MetricDefinition struct {
	ID          string
	DisplayName string
	Description string
	Statement   StatementType
	UnitType    UnitType
	Unit        string // overrides the default unit key when set
	Aggregation Aggregation
	Concepts    []XbrlConcept
}

// UnitKey returns the XBRL unit bucket to read facts from.
func (m MetricDefinition) UnitKey() string {
	if m.Unit != "" {
		return m.Unit
	}
	switch m.UnitType {
	case UnitShares:
		return "shares"
	default:
		return "USD"
	}
}

// RatioOperation is how a ratio combines its two components.
type RatioOperation string

const (
	OperationDivide   RatioOperation = "divide"
	OperationSubtract RatioOperation = "subtract"
)

// RatioFormat controls rounding and scaling of composed values.
type RatioFormat string

const (
	FormatPercentage RatioFormat = "percentage"
	FormatMultiple   RatioFormat = "multiple"
	FormatCurrency   RatioFormat = "currency"
)

// RatioDefinition is a derived quantity built from two catalog metrics.
type RatioDefinition struct {
	ID          string
	DisplayName string
	Numerator   string
	Denominator string
	Operation   RatioOperation
	Format      RatioFormat
}

// Catalog is the read-only set of metric and ratio definitions.
type Catalog struct {
	metrics map[string]MetricDefinition
	ratios  map[string]RatioDefinition
}

// New builds the default catalog. It panics on an inconsistent definition
// table since that is a programming error, not a runtime condition.
func New() *Catalog {
	c := &Catalog{
		metrics: make(map[string]MetricDefinition, len(defaultMetrics)),
		ratios:  make(map[string]RatioDefinition, len(defaultRatios)),
	}
	for _, m := range defaultMetrics {
		if len(m.Concepts) == 0 {
			panic(fmt.Sprintf("catalog: metric %s has no concepts", m.ID))
		}
		seen := make(map[int]bool, len(m.Concepts))
		for _, concept := range m.Concepts {
			if seen[concept.Priority] {
				panic(fmt.Sprintf("catalog: metric %s has duplicate priority %d", m.ID, concept.Priority))
			}
			seen[concept.Priority] = true
		}
		sort.Slice(m.Concepts, func(i, j int) bool { return m.Concepts[i].Priority < m.Concepts[j].Priority })
		c.metrics[m.ID] = m
	}
	for _, r := range defaultRatios {
		if _, ok := c.metrics[r.Numerator]; !ok {
			panic(fmt.Sprintf("catalog: ratio %s references unknown numerator %s", r.ID, r.Numerator))
		}
		if _, ok := c.metrics[r.Denominator]; !ok {
			panic(fmt.Sprintf("catalog: ratio %s references unknown denominator %s", r.ID, r.Denominator))
		}
		c.ratios[r.ID] = r
	}
	return c
}

// Metric looks up a metric definition by id.
func (c *Catalog) Metric(id string) (MetricDefinition, bool) {
	m, ok := c.metrics[id]
	return m, ok
}

// Ratio looks up a ratio definition by id.
func (c *Catalog) Ratio(id string) (RatioDefinition, bool) {
	r, ok := c.ratios[id]
	return r, ok
}

// MetricIDs returns all metric ids, sorted.
func (c *Catalog) MetricIDs() []string {
	ids := make([]string, 0, len(c.metrics))
	for id := range c.metrics {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// RatioIDs returns all ratio ids, sorted.
func (c *Catalog) RatioIDs() []string {
	ids := make([]string, 0, len(c.ratios))
	for id := range c.ratios {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Metrics returns all metric definitions, sorted by id.
func (c *Catalog) Metrics() []MetricDefinition {
	out := make([]MetricDefinition, 0, len(c.metrics))
	for _, id := range c.MetricIDs() {
		out = append(out, c.metrics[id])
	}
	return out
}

// Ratios returns all ratio definitions, sorted by id.
func (c *Catalog) Ratios() []RatioDefinition {
	out := make([]RatioDefinition, 0, len(c.ratios))
	for _, id := range c.RatioIDs() {
		out = append(out, c.ratios[id])
	}
	return out
}
