// Package engine orchestrates resolution, fetching, extraction, and
// calculation behind the coarse query operations. External surfaces (CLI,
// HTTP) call only this package.
package engine

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/secfacts/internal/cache"
	"github.com/sells-group/secfacts/internal/catalog"
	"github.com/sells-group/secfacts/internal/config"
	"github.com/sells-group/secfacts/internal/edgar"
	"github.com/sells-group/secfacts/internal/model"
	"github.com/sells-group/secfacts/internal/ratelimit"
	"github.com/sells-group/secfacts/internal/resolver"
	"github.com/sells-group/secfacts/internal/xbrl"
)

// Engine owns the process-wide resources: the response cache, the rate
// limiter, the EDGAR client, the resolver, and the catalog. Construct once
// at startup and Close at shutdown.
type Engine struct {
	cache    *cache.Cache
	client   *edgar.Client
	resolver *resolver.Resolver
	catalog  *catalog.Catalog
}

// New builds an engine from configuration.
func New(ctx context.Context, cfg *config.Config) (*Engine, error) {
	var backend cache.Backend
	var err error
	switch cfg.Cache.Driver {
	case "postgres":
		backend, err = cache.NewPostgres(ctx, cfg.Cache.DatabaseURL)
	default:
		if mkErr := os.MkdirAll(cfg.Cache.Dir, 0o755); mkErr != nil {
			return nil, eris.Wrapf(mkErr, "engine: create cache dir %s", cfg.Cache.Dir)
		}
		backend, err = cache.NewSQLite(filepath.Join(cfg.Cache.Dir, "http_cache.db"))
	}
	if err != nil {
		return nil, err
	}

	c := cache.New(backend, cfg.Cache.MemoryEntries)
	limiter := ratelimit.New(cfg.Edgar.RequestsPerSecond)
	client := edgar.New(c, limiter, edgar.Options{
		UserAgent:  cfg.Edgar.UserAgent,
		MaxRetries: cfg.Edgar.MaxRetries,
	})

	return &Engine{
		cache:    c,
		client:   client,
		resolver: resolver.New(client),
		catalog:  catalog.New(),
	}, nil
}

// NewWithClient wires an engine from explicit parts. Callers that need a
// custom cache or client (tests, embedders) use this instead of New.
func NewWithClient(c *cache.Cache, client *edgar.Client) *Engine {
	return &Engine{
		cache:    c,
		client:   client,
		resolver: resolver.New(client),
		catalog:  catalog.New(),
	}
}

// Close releases the cache's persistent backend.
func (e *Engine) Close() error {
	return e.cache.Close()
}

// Cache exposes the response cache for maintenance commands.
func (e *Engine) Cache() *cache.Cache {
	return e.cache
}

// Client exposes the EDGAR client for surfaces that list filings or run
// full-text searches.
func (e *Engine) Client() *edgar.Client {
	return e.client
}

// Catalog exposes the metric and ratio definitions.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// Resolve maps a user query (ticker, alias, or name) to a company identity.
func (e *Engine) Resolve(ctx context.Context, query string) (*model.CompanyIdentity, *model.Error) {
	return e.resolveCompany(ctx, query)
}

// resolveCompany maps a user query to a company or a taxonomy error.
func (e *Engine) resolveCompany(ctx context.Context, query string) (*model.CompanyIdentity, *model.Error) {
	company, suggestions, err := e.resolver.Resolve(ctx, query)
	if err != nil {
		return nil, e.apiError(err, "resolve company %q", query)
	}
	if company == nil {
		if len(suggestions) > 0 {
			errAmbiguous := model.NewError(model.ErrCompanyAmbiguous, "%q matches multiple companies", query)
			errAmbiguous.Suggestions = suggestions
			return nil, errAmbiguous
		}
		return nil, model.NewError(model.ErrCompanyNotFound, "no company found for %q", query)
	}
	return company, nil
}

// fetchMetric pulls the company's fact bundle and extracts one metric.
func (e *Engine) fetchMetric(ctx context.Context, company *model.CompanyIdentity, metric catalog.MetricDefinition, periods, targetYear int, quarterly bool) (xbrl.FetchResult, *model.Error) {
	facts, err := e.client.GetCompanyFacts(ctx, company.CIK)
	if err != nil {
		if errors.Is(err, edgar.ErrNotFound) {
			return xbrl.FetchResult{}, model.NewError(model.ErrNoData, "no XBRL facts published for %s (CIK %s)", company.Ticker, company.CIK)
		}
		return xbrl.FetchResult{}, e.apiError(err, "fetch facts for %s", company.Ticker)
	}

	var res xbrl.FetchResult
	if quarterly {
		res = xbrl.FetchQuarterly(facts, *company, metric, periods, targetYear)
	} else {
		res = xbrl.FetchAnnual(facts, *company, metric, periods, targetYear)
	}

	if len(res.DataPoints) == 0 {
		noData := model.NewError(model.ErrNoData, "no %s data for %s after trying %d concept(s)", metric.ID, company.Ticker, len(res.Selection.ConceptsTried))
		noData.ConceptsTried = res.Selection.ConceptsTried
		return res, noData
	}

	zap.L().Debug("engine: metric extracted",
		zap.String("ticker", company.Ticker),
		zap.String("metric", metric.ID),
		zap.String("concept", res.ConceptUsed),
		zap.Int("points", len(res.DataPoints)),
	)
	return res, nil
}

// apiError folds transport-level failures into the taxonomy.
func (e *Engine) apiError(err error, format string, args ...any) *model.Error {
	if edgar.IsRateLimited(err) {
		return model.NewError(model.ErrRateLimited, "SEC API rate limit exhausted; retry shortly")
	}
	var pe *edgar.ParseError
	if errors.As(err, &pe) {
		return model.NewError(model.ErrAPI, "%s", pe.Error())
	}
	wrapped := model.NewError(model.ErrAPI, format+": %v", append(args, err)...)
	return wrapped
}

// metricRef builds the caller-facing metric reference.
func metricRef(m catalog.MetricDefinition) model.MetricRef {
	return model.MetricRef{ID: m.ID, DisplayName: m.DisplayName, UnitType: string(m.UnitType)}
}

func ratioRef(r catalog.RatioDefinition) model.RatioRef {
	return model.RatioRef{ID: r.ID, DisplayName: r.DisplayName, Format: string(r.Format)}
}
