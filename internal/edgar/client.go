package edgar

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/sells-group/secfacts/internal/cache"
	"github.com/sells-group/secfacts/internal/ratelimit"
	"github.com/sells-group/secfacts/internal/resilience"
)

// Cache TTLs by URL class. Filing documents are immutable once published,
// so they keep the longest TTL.
const (
	TTLCompanyFacts = 168 * time.Hour
	TTLSubmissions  = 24 * time.Hour
	TTLFrames       = 24 * time.Hour
	TTLSearch       = 24 * time.Hour
	TTLTickers      = 168 * time.Hour
	TTLDocuments    = 720 * time.Hour
)

var (
	// ErrNotFound is returned for 404 responses; never retried.
	ErrNotFound = eris.New("edgar: resource not found")

	// ErrForbidden is returned for 403 responses, which almost always mean
	// the User-Agent does not meet SEC fair-access requirements.
	ErrForbidden = eris.New("edgar: request forbidden (403); set EDGAR_USER_AGENT to a contact string like \"Name email@example.com\"")
)

// Options configures the client. Base URLs are overridable for tests.
type Options struct {
	UserAgent     string
	Timeout       time.Duration
	MaxRetries    int
	DataBaseURL   string
	WWWBaseURL    string
	SearchBaseURL string
}

// Client is the typed EDGAR fetcher, layered on the response cache and the
// process-wide rate limiter. Concurrent requests for the same URL are
// coalesced into one flight so fan-out operations never thunder on EDGAR.
type Client struct {
	http    *http.Client
	cache   *cache.Cache
	limiter *ratelimit.Limiter
	opts    Options
	retry   resilience.RetryConfig
	group   singleflight.Group
}

// New creates a client over the given cache and limiter.
func New(c *cache.Cache, limiter *ratelimit.Limiter, opts Options) *Client {
	if opts.UserAgent == "" {
		opts.UserAgent = "secfacts research@sellsadvisors.com"
	}
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.MaxRetries == 0 {
		opts.MaxRetries = 3
	}
	if opts.DataBaseURL == "" {
		opts.DataBaseURL = "https://data.sec.gov"
	}
	if opts.WWWBaseURL == "" {
		opts.WWWBaseURL = "https://www.sec.gov"
	}
	if opts.SearchBaseURL == "" {
		opts.SearchBaseURL = "https://efts.sec.gov"
	}
	retry := resilience.DefaultRetryConfig()
	retry.MaxAttempts = opts.MaxRetries
	return &Client{
		http:    &http.Client{Timeout: opts.Timeout},
		cache:   c,
		limiter: limiter,
		opts:    opts,
		retry:   retry,
	}
}

// PadCIK zero-pads a decimal CIK string to the 10 digits EDGAR paths expect.
func PadCIK(cik string) string {
	return fmt.Sprintf("%010s", cik)
}

// fetch returns the response body for url, consulting the cache first.
// Misses acquire a rate-limit token, perform the request with retry, and
// write the cache on success.
func (c *Client) fetch(ctx context.Context, rawURL string, ttl time.Duration) ([]byte, error) {
	if body := c.cache.Get(ctx, rawURL); body != nil {
		return body, nil
	}

	v, err, _ := c.group.Do(rawURL, func() (any, error) {
		// A coalesced caller may arrive after the first flight cached the
		// body; check again inside the flight.
		if body := c.cache.Get(ctx, rawURL); body != nil {
			return body, nil
		}
		body, err := resilience.DoVal(ctx, c.retry, func(ctx context.Context) ([]byte, error) {
			return c.doGet(ctx, rawURL)
		})
		if err != nil {
			return nil, err
		}
		c.cache.Put(ctx, rawURL, body, ttl)
		return body, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

func (c *Client) doGet(ctx context.Context, rawURL string) ([]byte, error) {
	if err := c.limiter.Acquire(ctx); err != nil {
		return nil, eris.Wrap(err, "edgar: rate limiter wait")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "edgar: create request")
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, resilience.NewTransientError(eris.Wrapf(err, "edgar: GET %s", rawURL), 0)
	}
	defer resp.Body.Close() //nolint:errcheck

	switch {
	case resp.StatusCode == http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, resilience.NewTransientError(eris.Wrapf(err, "edgar: read body from %s", rawURL), 0)
		}
		return body, nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, eris.Wrapf(ErrNotFound, "GET %s", rawURL)
	case resp.StatusCode == http.StatusForbidden:
		return nil, ErrForbidden
	case resilience.IsTransientHTTPStatus(resp.StatusCode):
		zap.L().Warn("edgar: transient response, will retry",
			zap.String("url", rawURL),
			zap.Int("status", resp.StatusCode),
		)
		return nil, resilience.NewTransientError(eris.Errorf("edgar: http %d from %s", resp.StatusCode, rawURL), resp.StatusCode)
	default:
		return nil, eris.Errorf("edgar: unexpected status %d from %s", resp.StatusCode, rawURL)
	}
}

// IsRateLimited reports whether err ended as an exhausted 429.
func IsRateLimited(err error) bool {
	var te *resilience.TransientError
	return errors.As(err, &te) && te.StatusCode == http.StatusTooManyRequests
}

func parseJSON[T any](body []byte, what string) (*T, error) {
	var v T
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, &ParseError{What: what, Err: err}
	}
	return &v, nil
}

// GetCompanyFacts fetches the full XBRL fact bundle for one company.
func (c *Client) GetCompanyFacts(ctx context.Context, cik string) (*CompanyFacts, error) {
	u := fmt.Sprintf("%s/api/xbrl/companyfacts/CIK%s.json", c.opts.DataBaseURL, PadCIK(cik))
	body, err := c.fetch(ctx, u, TTLCompanyFacts)
	if err != nil {
		return nil, err
	}
	return parseJSON[CompanyFacts](body, "company facts")
}

// GetCompanySubmissions fetches the filing history for one company.
func (c *Client) GetCompanySubmissions(ctx context.Context, cik string) (*Submissions, error) {
	u := fmt.Sprintf("%s/submissions/CIK%s.json", c.opts.DataBaseURL, PadCIK(cik))
	body, err := c.fetch(ctx, u, TTLSubmissions)
	if err != nil {
		return nil, err
	}
	return parseJSON[Submissions](body, "company submissions")
}

// GetFrame fetches the cross-company snapshot for one concept and calendar
// period. Period is "CY2024" for annual or "CY2024Q1" for quarterly frames.
func (c *Client) GetFrame(ctx context.Context, taxonomy, concept, unit, period string) (*Frame, error) {
	u := fmt.Sprintf("%s/api/xbrl/frames/%s/%s/%s/%s.json", c.opts.DataBaseURL, taxonomy, concept, unit, period)
	body, err := c.fetch(ctx, u, TTLFrames)
	if err != nil {
		return nil, err
	}
	return parseJSON[Frame](body, "frame")
}

// SearchFilings runs a full-text search over filing documents.
func (c *Client) SearchFilings(ctx context.Context, query string, forms []string, start, end string, limit int) ([]SearchHit, error) {
	q := url.Values{}
	q.Set("q", query)
	if len(forms) > 0 {
		q.Set("forms", strings.Join(forms, ","))
	}
	if start != "" || end != "" {
		q.Set("dateRange", "custom")
		q.Set("startdt", start)
		q.Set("enddt", end)
	}
	u := fmt.Sprintf("%s/LATEST/search-index?%s", c.opts.SearchBaseURL, q.Encode())

	body, err := c.fetch(ctx, u, TTLSearch)
	if err != nil {
		return nil, err
	}
	res, err := parseJSON[SearchResult](body, "full-text search")
	if err != nil {
		return nil, err
	}
	hits := res.Hits.Hits
	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}

// GetFilingDocument fetches a raw document from a filing's archive folder.
func (c *Client) GetFilingDocument(ctx context.Context, cik, accession, filename string) ([]byte, error) {
	noDashes := strings.ReplaceAll(accession, "-", "")
	u := fmt.Sprintf("%s/Archives/edgar/data/%s/%s/%s", c.opts.WWWBaseURL, PadCIK(cik), noDashes, filename)
	return c.fetch(ctx, u, TTLDocuments)
}

// GetCompanyTickers fetches the SEC ticker table keyed by row index.
func (c *Client) GetCompanyTickers(ctx context.Context) (map[string]TickerEntry, error) {
	u := c.opts.WWWBaseURL + "/files/company_tickers.json"
	body, err := c.fetch(ctx, u, TTLTickers)
	if err != nil {
		return nil, err
	}
	table, err := parseJSON[map[string]TickerEntry](body, "company tickers")
	if err != nil {
		return nil, err
	}
	return *table, nil
}

// CIKString renders a numeric CIK as the unpadded decimal string used
// everywhere outside URL paths.
func CIKString(cik int) string {
	return strconv.Itoa(cik)
}
