package model

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// CompanyIdentity identifies a registrant. CIK is stored as an unpadded
// decimal string; zero-padding happens only when URLs are constructed.
type CompanyIdentity struct {
	CIK    string `json:"cik"`
	Ticker string `json:"ticker"`
	Name   string `json:"name"`
}

// FilingSource points a value back at the filing that produced it.
type FilingSource struct {
	AccessionNumber string `json:"accession_number"`
	FilingDate      string `json:"filing_date"`
	FormType        string `json:"form_type"`
	XBRLConcept     string `json:"xbrl_concept"`
}

// DataPoint is one normalized fact for a metric. DataPoints are immutable
// after construction; a restatement shows up as a separate later-filed point
// for the same period end, and dedup marks the newer one as latest.
type DataPoint struct {
	MetricID     string       `json:"metric_id"`
	CIK          string       `json:"cik"`
	CompanyName  string       `json:"company_name"`
	FiscalYear   int          `json:"fiscal_year"`
	FiscalPeriod string       `json:"fiscal_period"`
	PeriodStart  string       `json:"period_start,omitempty"`
	PeriodEnd    string       `json:"period_end"`
	Value        float64      `json:"value"`
	Unit         string       `json:"unit"`
	Source       FilingSource `json:"source"`
	RestatedIn   string       `json:"restated_in,omitempty"`
	IsLatest     bool         `json:"is_latest"`
	ExtractedAt  time.Time    `json:"extracted_at"`
	Checksum     string       `json:"checksum"`
}

// ComputeChecksum derives the deterministic content checksum of a DataPoint.
func ComputeChecksum(cik, metricID string, fiscalYear int, fiscalPeriod string, value float64, accession string) string {
	sum := sha256.Sum256(fmt.Appendf(nil, "%s|%s|%d|%s|%g|%s", cik, metricID, fiscalYear, fiscalPeriod, value, accession))
	return hex.EncodeToString(sum[:])
}

// ConceptAttempt records one candidate concept trial during selection.
type ConceptAttempt struct {
	Taxonomy      string `json:"taxonomy"`
	Concept       string `json:"concept"`
	Priority      int    `json:"priority"`
	Found         bool   `json:"found"`
	Count         int    `json:"count"`
	MaxFiscalYear int    `json:"max_fiscal_year,omitempty"`
}

// ConceptSelection documents which concepts were tried and which won.
type ConceptSelection struct {
	ConceptsTried []ConceptAttempt `json:"concepts_tried"`
	Selected      string           `json:"selected,omitempty"`
	Reason        string           `json:"reason,omitempty"`
}

// Restatement records a superseded value for one fiscal period.
type Restatement struct {
	FiscalYear        int     `json:"fiscal_year"`
	OriginalValue     float64 `json:"original_value"`
	RestatedValue     float64 `json:"restated_value"`
	PercentChange     float64 `json:"percent_change"`
	OriginalAccession string  `json:"original_accession"`
	RestatedAccession string  `json:"restated_accession"`
	RestatedFiled     string  `json:"restated_filed"`
}
