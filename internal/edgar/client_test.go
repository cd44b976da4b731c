package edgar

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sells-group/secfacts/internal/cache"
	"github.com/sells-group/secfacts/internal/ratelimit"
)

func init() {
	zap.ReplaceGlobals(zap.NewNop())
}

// newTestClient points every base URL at the test server and uses a fast
// limiter so tests never wait on token spacing.
func newTestClient(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()
	backend, err := cache.NewSQLite(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	c := cache.New(backend, 10)
	t.Cleanup(func() { c.Close() })

	return New(c, ratelimit.New(1000), Options{
		UserAgent:     "secfacts-test test@example.com",
		Timeout:       5 * time.Second,
		MaxRetries:    1,
		DataBaseURL:   srv.URL,
		WWWBaseURL:    srv.URL,
		SearchBaseURL: srv.URL,
	})
}

const companyFactsBody = `{
	"cik": 320193,
	"entityName": "Apple Inc.",
	"facts": {
		"us-gaap": {
			"Revenues": {
				"label": "Revenues",
				"units": {
					"USD": [
						{"start": "2022-10-01", "end": "2023-09-30", "val": 383285000000,
						 "accn": "0000320193-23-000106", "fy": 2023, "fp": "FY",
						 "form": "10-K", "filed": "2023-11-03"}
					]
				}
			}
		}
	}
}`

func TestGetCompanyFacts(t *testing.T) {
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		assert.Equal(t, "/api/xbrl/companyfacts/CIK0000320193.json", r.URL.Path)
		assert.Equal(t, "secfacts-test test@example.com", r.Header.Get("User-Agent"))
		w.Write([]byte(companyFactsBody))
	}))
	defer srv.Close()
	c := newTestClient(t, srv)

	facts, err := c.GetCompanyFacts(context.Background(), "320193")
	require.NoError(t, err)
	assert.Equal(t, "Apple Inc.", facts.EntityName)

	bundle, ok := facts.Concept("us-gaap", "Revenues")
	require.True(t, ok)
	require.Len(t, bundle.Units["USD"], 1)
	assert.Equal(t, 2023, bundle.Units["USD"][0].FY)
	assert.Equal(t, int32(1), requests.Load())
}

func TestFetchServesSecondCallFromCache(t *testing.T) {
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.Write([]byte(companyFactsBody))
	}))
	defer srv.Close()
	c := newTestClient(t, srv)

	_, err := c.GetCompanyFacts(context.Background(), "320193")
	require.NoError(t, err)
	_, err = c.GetCompanyFacts(context.Background(), "320193")
	require.NoError(t, err)

	assert.Equal(t, int32(1), requests.Load())
}

func TestFetchCoalescesConcurrentCalls(t *testing.T) {
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		time.Sleep(50 * time.Millisecond)
		w.Write([]byte(companyFactsBody))
	}))
	defer srv.Close()
	c := newTestClient(t, srv)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.GetCompanyFacts(context.Background(), "320193")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), requests.Load())
}

func TestNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()
	c := newTestClient(t, srv)

	_, err := c.GetCompanyFacts(context.Background(), "999")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestForbidden(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()
	c := newTestClient(t, srv)

	_, err := c.GetCompanyFacts(context.Background(), "320193")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrForbidden))
	assert.Contains(t, err.Error(), "EDGAR_USER_AGENT")
}

func TestRateLimitedAfterExhaustedRetries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()
	c := newTestClient(t, srv)

	_, err := c.GetCompanyFacts(context.Background(), "320193")
	require.Error(t, err)
	assert.True(t, IsRateLimited(err))
}

func TestMalformedBodyIsParseError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()
	c := newTestClient(t, srv)

	_, err := c.GetCompanyFacts(context.Background(), "320193")
	require.Error(t, err)
	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "company facts", pe.What)
	assert.Contains(t, err.Error(), "cache clear")
}

func TestGetFrame(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/xbrl/frames/us-gaap/Revenues/USD/CY2024.json", r.URL.Path)
		w.Write([]byte(`{
			"taxonomy": "us-gaap", "tag": "Revenues", "ccp": "CY2024", "uom": "USD",
			"pts": 2,
			"data": [
				{"cik": 320193, "entityName": "Apple Inc.", "end": "2024-09-28", "val": 391035000000},
				{"cik": 789019, "entityName": "MICROSOFT CORPORATION", "end": "2024-06-30", "val": 245122000000}
			]
		}`))
	}))
	defer srv.Close()
	c := newTestClient(t, srv)

	frame, err := c.GetFrame(context.Background(), "us-gaap", "Revenues", "USD", "CY2024")
	require.NoError(t, err)
	require.Len(t, frame.Data, 2)
	assert.Equal(t, "Apple Inc.", frame.Data[0].EntityName)
}

func TestGetCompanySubmissions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/submissions/CIK0000320193.json", r.URL.Path)
		w.Write([]byte(`{
			"cik": "320193", "name": "Apple Inc.", "tickers": ["AAPL"],
			"filings": {"recent": {
				"accessionNumber": ["0000320193-23-000106"],
				"filingDate": ["2023-11-03"],
				"reportDate": ["2023-09-30"],
				"form": ["10-K"],
				"primaryDocument": ["aapl-20230930.htm"]
			}}
		}`))
	}))
	defer srv.Close()
	c := newTestClient(t, srv)

	subs, err := c.GetCompanySubmissions(context.Background(), "320193")
	require.NoError(t, err)
	assert.Equal(t, []string{"AAPL"}, subs.Tickers)
	require.Len(t, subs.Filings.Recent.Form, 1)
	assert.Equal(t, "10-K", subs.Filings.Recent.Form[0])
}

func TestGetCompanyTickers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/files/company_tickers.json", r.URL.Path)
		w.Write([]byte(`{
			"0": {"cik_str": 320193, "ticker": "AAPL", "title": "Apple Inc."},
			"1": {"cik_str": 789019, "ticker": "MSFT", "title": "MICROSOFT CORP"}
		}`))
	}))
	defer srv.Close()
	c := newTestClient(t, srv)

	table, err := c.GetCompanyTickers(context.Background())
	require.NoError(t, err)
	require.Len(t, table, 2)
	assert.Equal(t, "AAPL", table["0"].Ticker)
	assert.Equal(t, 320193, table["0"].CIK)
}

func TestSearchFilings(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "going concern", q.Get("q"))
		assert.Equal(t, "10-K,10-Q", q.Get("forms"))
		assert.Equal(t, "custom", q.Get("dateRange"))
		w.Write([]byte(`{"hits": {"total": {"value": 3}, "hits": [
			{"_id": "a", "_source": {"ciks": ["1"], "display_names": ["A Corp"], "root_form": "10-K"}},
			{"_id": "b", "_source": {"ciks": ["2"], "display_names": ["B Corp"], "root_form": "10-Q"}},
			{"_id": "c", "_source": {"ciks": ["3"], "display_names": ["C Corp"], "root_form": "10-K"}}
		]}}`))
	}))
	defer srv.Close()
	c := newTestClient(t, srv)

	hits, err := c.SearchFilings(context.Background(), "going concern", []string{"10-K", "10-Q"}, "2024-01-01", "2024-12-31", 2)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "a", hits[0].ID)
}

func TestGetFilingDocumentStripsAccessionDashes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/Archives/edgar/data/0000320193/000032019323000106/aapl-20230930.htm", r.URL.Path)
		w.Write([]byte("<html/>"))
	}))
	defer srv.Close()
	c := newTestClient(t, srv)

	body, err := c.GetFilingDocument(context.Background(), "320193", "0000320193-23-000106", "aapl-20230930.htm")
	require.NoError(t, err)
	assert.Equal(t, []byte("<html/>"), body)
}

func TestPadCIK(t *testing.T) {
	assert.Equal(t, "0000320193", PadCIK("320193"))
	assert.Equal(t, "0000320193", PadCIK("0000320193"))
}

func TestCIKString(t *testing.T) {
	assert.Equal(t, "320193", CIKString(320193))
}
