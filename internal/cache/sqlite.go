package cache

import (
	"context"
	"database/sql"
	"os"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// SQLiteBackend implements Backend using modernc.org/sqlite.
type SQLiteBackend struct {
	db   *sql.DB
	path string
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS http_cache (
	url_hash   TEXT PRIMARY KEY,
	url        TEXT NOT NULL,
	body       BLOB NOT NULL,
	fetched_at DATETIME NOT NULL,
	expires_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_http_cache_expires_at ON http_cache(expires_at);
`

// NewSQLite opens the cache database at path, configures WAL mode, and runs
// the migration. A corrupt database is deleted and recreated rather than
// failing startup; the cache holds nothing that cannot be refetched.
func NewSQLite(path string) (*SQLiteBackend, error) {
	db, err := openSQLite(path)
	if err != nil {
		zap.L().Warn("cache: sqlite open failed, rebuilding database",
			zap.String("path", path),
			zap.Error(err),
		)
		removeSQLiteFiles(path)
		db, err = openSQLite(path)
		if err != nil {
			return nil, eris.Wrap(err, "cache: sqlite reopen after rebuild")
		}
	}
	return &SQLiteBackend{db: db, path: path}, nil
}

func openSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, eris.Wrap(err, "cache: sqlite open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "cache: sqlite exec %s", pragma)
		}
	}
	if _, err := db.Exec(sqliteMigration); err != nil {
		db.Close()
		return nil, eris.Wrap(err, "cache: sqlite migrate")
	}
	return db, nil
}

func removeSQLiteFiles(path string) {
	for _, p := range []string{path, path + "-wal", path + "-shm"} {
		_ = os.Remove(p)
	}
}

func (s *SQLiteBackend) Get(ctx context.Context, urlHash string) ([]byte, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT body FROM http_cache WHERE url_hash = ? AND expires_at > ?`,
		urlHash, time.Now().UTC(),
	)
	var body []byte
	err := row.Scan(&body)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "cache: sqlite get")
	}
	return body, nil
}

func (s *SQLiteBackend) Put(ctx context.Context, urlHash, url string, body []byte, fetchedAt, expiresAt time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO http_cache (url_hash, url, body, fetched_at, expires_at) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(url_hash) DO UPDATE SET url = excluded.url, body = excluded.body,
		 fetched_at = excluded.fetched_at, expires_at = excluded.expires_at`,
		urlHash, url, body, fetchedAt, expiresAt,
	)
	return eris.Wrap(err, "cache: sqlite put")
}

func (s *SQLiteBackend) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM http_cache`)
	return eris.Wrap(err, "cache: sqlite clear")
}

func (s *SQLiteBackend) Stats(ctx context.Context) (Stats, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(LENGTH(body)), 0) FROM http_cache`,
	)
	var st Stats
	if err := row.Scan(&st.Entries, &st.SizeBytes); err != nil {
		return Stats{}, eris.Wrap(err, "cache: sqlite stats")
	}
	return st, nil
}

func (s *SQLiteBackend) Close() error {
	return s.db.Close()
}
