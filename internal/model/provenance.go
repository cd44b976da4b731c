package model

// FilingRef is one filing used by a result series.
type FilingRef struct {
	AccessionNumber string `json:"accession_number"`
	FormType        string `json:"form_type"`
	FilingDate      string `json:"filing_date"`
	FiscalYear      int    `json:"fiscal_year"`
}

// ProvenanceInfo is the human-readable audit trail attached to every result:
// which concept was used, how duplicates were resolved, and which filings
// contributed values.
type ProvenanceInfo struct {
	SelectedConcept string      `json:"selected_concept"`
	DedupStrategy   string      `json:"dedup_strategy"`
	PeriodType      string      `json:"period_type"`
	FilingsUsed     []FilingRef `json:"filings_used"`
	Notes           []string    `json:"notes,omitempty"`
}
