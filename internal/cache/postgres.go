package cache

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"
)

// Pool is the subset of pgxpool.Pool the backend needs; pgxmock satisfies it.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// PostgresBackend implements Backend using pgxpool. Intended for deployments
// where several workers share one cache.
type PostgresBackend struct {
	pool Pool
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS http_cache (
	url_hash   TEXT PRIMARY KEY,
	url        TEXT NOT NULL,
	body       BYTEA NOT NULL,
	fetched_at TIMESTAMPTZ NOT NULL,
	expires_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_http_cache_expires_at ON http_cache(expires_at);
`

// NewPostgres creates a PostgresBackend with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresBackend, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "cache: postgres parse config")
	}
	pgxCfg.MaxConns = 10
	pgxCfg.MinConns = 2
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "cache: postgres create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "cache: postgres ping")
	}

	b := &PostgresBackend{pool: pool}
	if err := b.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return b, nil
}

func (p *PostgresBackend) migrate(ctx context.Context) error {
	_, err := p.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "cache: postgres migrate")
}

func (p *PostgresBackend) Get(ctx context.Context, urlHash string) ([]byte, error) {
	row := p.pool.QueryRow(ctx,
		`SELECT body FROM http_cache WHERE url_hash = $1 AND expires_at > now()`,
		urlHash,
	)
	var body []byte
	err := row.Scan(&body)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "cache: postgres get")
	}
	return body, nil
}

func (p *PostgresBackend) Put(ctx context.Context, urlHash, url string, body []byte, fetchedAt, expiresAt time.Time) error {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO http_cache (url_hash, url, body, fetched_at, expires_at) VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (url_hash) DO UPDATE SET url = excluded.url, body = excluded.body,
		 fetched_at = excluded.fetched_at, expires_at = excluded.expires_at`,
		urlHash, url, body, fetchedAt, expiresAt,
	)
	return eris.Wrap(err, "cache: postgres put")
}

func (p *PostgresBackend) Clear(ctx context.Context) error {
	_, err := p.pool.Exec(ctx, `DELETE FROM http_cache`)
	return eris.Wrap(err, "cache: postgres clear")
}

func (p *PostgresBackend) Stats(ctx context.Context) (Stats, error) {
	row := p.pool.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(SUM(LENGTH(body)), 0) FROM http_cache`,
	)
	var st Stats
	if err := row.Scan(&st.Entries, &st.SizeBytes); err != nil {
		return Stats{}, eris.Wrap(err, "cache: postgres stats")
	}
	return st, nil
}

func (p *PostgresBackend) Close() error {
	p.pool.Close()
	return nil
}
