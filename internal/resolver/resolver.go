// Package resolver maps user-supplied company identifiers to canonical CIKs.
package resolver

import (
	"context"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/sells-group/secfacts/internal/edgar"
	"github.com/sells-group/secfacts/internal/model"
)

// maxSuggestions bounds the list returned for an ambiguous query.
const maxSuggestions = 5

// TickerSource provides the SEC company tickers table.
type TickerSource interface {
	GetCompanyTickers(ctx context.Context) (map[string]edgar.TickerEntry, error)
}

// Resolver resolves tickers, aliases, names, and name substrings. The ticker
// table is loaded on first use; the EDGAR cache holds it for a week.
type Resolver struct {
	source TickerSource

	mu       sync.Mutex
	loaded   bool
	byTicker map[string]edgar.TickerEntry
	byName   map[string]edgar.TickerEntry
	entries  []edgar.TickerEntry
}

// New creates a resolver over the given ticker source.
func New(source TickerSource) *Resolver {
	return &Resolver{source: source}
}

func (r *Resolver) load(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.loaded {
		return nil
	}

	table, err := r.source.GetCompanyTickers(ctx)
	if err != nil {
		return err
	}

	r.byTicker = make(map[string]edgar.TickerEntry, len(table))
	r.byName = make(map[string]edgar.TickerEntry, len(table))
	r.entries = make([]edgar.TickerEntry, 0, len(table))
	for _, e := range table {
		r.byTicker[strings.ToUpper(e.Ticker)] = e
		r.byName[strings.ToLower(e.Title)] = e
		r.entries = append(r.entries, e)
	}
	sort.Slice(r.entries, func(i, j int) bool { return r.entries[i].Title < r.entries[j].Title })
	r.loaded = true

	zap.L().Debug("resolver: ticker table loaded", zap.Int("companies", len(r.entries)))
	return nil
}

func identity(e edgar.TickerEntry) *model.CompanyIdentity {
	return &model.CompanyIdentity{
		CIK:    edgar.CIKString(e.CIK),
		Ticker: strings.ToUpper(e.Ticker),
		Name:   e.Title,
	}
}

// Resolve maps a query to a company. The cascade short-circuits on the first
// match: exact ticker, alias, exact name, then name substring. A substring
// query matching several companies returns no company plus up to five
// suggestions.
func (r *Resolver) Resolve(ctx context.Context, query string) (*model.CompanyIdentity, []string, error) {
	if err := r.load(ctx); err != nil {
		return nil, nil, err
	}

	q := strings.TrimSpace(query)
	if q == "" {
		return nil, nil, nil
	}

	if e, ok := r.byTicker[strings.ToUpper(q)]; ok {
		return identity(e), nil, nil
	}

	if ticker, ok := aliases[strings.ToLower(q)]; ok {
		if e, ok := r.byTicker[ticker]; ok {
			return identity(e), nil, nil
		}
	}

	lower := strings.ToLower(q)
	if e, ok := r.byName[lower]; ok {
		return identity(e), nil, nil
	}

	var matches []edgar.TickerEntry
	for _, e := range r.entries {
		if strings.Contains(strings.ToLower(e.Title), lower) {
			matches = append(matches, e)
		}
	}
	switch {
	case len(matches) == 1:
		return identity(matches[0]), nil, nil
	case len(matches) > 1:
		n := min(len(matches), maxSuggestions)
		suggestions := make([]string, 0, n)
		for _, e := range matches[:n] {
			suggestions = append(suggestions, e.Title+" ("+strings.ToUpper(e.Ticker)+")")
		}
		return nil, suggestions, nil
	default:
		return nil, nil, nil
	}
}
