// Package edgar fetches and parses SEC EDGAR's public JSON APIs.
package edgar

import "fmt"

// SecFact is one raw XBRL fact as EDGAR reports it. Immutable.
type SecFact struct {
	Start string  `json:"start,omitempty"`
	End   string  `json:"end"`
	Val   float64 `json:"val"`
	Accn  string  `json:"accn"`
	FY    int     `json:"fy"`
	FP    string  `json:"fp"`
	Form  string  `json:"form"`
	Filed string  `json:"filed"`
	Frame string  `json:"frame,omitempty"`
}

// ConceptBundle groups one concept's facts by unit.
type ConceptBundle struct {
	Label       string               `json:"label"`
	Description string               `json:"description"`
	Units       map[string][]SecFact `json:"units"`
}

// CompanyFacts is the company facts response. Taxonomy and concept names are
// map keys, not fixed fields, so the structure stays dynamic.
type CompanyFacts struct {
	CIK        int                                 `json:"cik"`
	EntityName string                              `json:"entityName"`
	Facts      map[string]map[string]ConceptBundle `json:"facts"`
}

// Concept returns the bundle for taxonomy:concept, if present.
func (f *CompanyFacts) Concept(taxonomy, concept string) (ConceptBundle, bool) {
	ns, ok := f.Facts[taxonomy]
	if !ok {
		return ConceptBundle{}, false
	}
	b, ok := ns[concept]
	return b, ok
}

// RecentFilings is the column-oriented filing index inside a submissions
// response; entries at the same index belong to the same filing.
type RecentFilings struct {
	AccessionNumber []string `json:"accessionNumber"`
	FilingDate      []string `json:"filingDate"`
	ReportDate      []string `json:"reportDate"`
	Form            []string `json:"form"`
	PrimaryDocument []string `json:"primaryDocument"`
}

// Submissions is the company submissions response.
type Submissions struct {
	CIK       string   `json:"cik"`
	Name      string   `json:"name"`
	Tickers   []string `json:"tickers"`
	Exchanges []string `json:"exchanges"`
	Filings   struct {
		Recent RecentFilings `json:"recent"`
	} `json:"filings"`
}

// FrameFact is one company's value in a cross-company frame.
type FrameFact struct {
	CIK        int     `json:"cik"`
	EntityName string  `json:"entityName"`
	End        string  `json:"end"`
	Val        float64 `json:"val"`
}

// Frame is the frames API response: one concept, one calendar period,
// every filer.
type Frame struct {
	Taxonomy string      `json:"taxonomy"`
	Tag      string      `json:"tag"`
	CCP      string      `json:"ccp"`
	UOM      string      `json:"uom"`
	Pts      int         `json:"pts"`
	Data     []FrameFact `json:"data"`
}

// TickerEntry is one row of the SEC company tickers table.
type TickerEntry struct {
	CIK    int    `json:"cik_str"`
	Ticker string `json:"ticker"`
	Title  string `json:"title"`
}

// SearchHit is one full-text search result.
type SearchHit struct {
	ID     string `json:"_id"`
	Source struct {
		CIKs         []string `json:"ciks"`
		DisplayNames []string `json:"display_names"`
		FileType     string   `json:"file_type"`
		FileDate     string   `json:"file_date"`
		FormType     string   `json:"root_form"`
	} `json:"_source"`
}

// SearchResult is the full-text search response.
type SearchResult struct {
	Hits struct {
		Total struct {
			Value int `json:"value"`
		} `json:"total"`
		Hits []SearchHit `json:"hits"`
	} `json:"hits"`
}

// ParseError marks a malformed API response. The cached copy may be corrupt,
// so the message carries a remediation hint.
type ParseError struct {
	What string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("edgar: parse %s: %v (cache may be corrupt; run 'secfacts cache clear' and retry)", e.What, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
