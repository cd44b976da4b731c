package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockPostgres(t *testing.T) (*PostgresBackend, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return &PostgresBackend{pool: mock}, mock
}

func TestPostgresGetHit(t *testing.T) {
	b, mock := newMockPostgres(t)

	mock.ExpectQuery("SELECT body FROM http_cache").
		WithArgs("h1").
		WillReturnRows(pgxmock.NewRows([]string{"body"}).AddRow([]byte("body")))

	got, err := b.Get(context.Background(), "h1")
	assert.NoError(t, err)
	assert.Equal(t, []byte("body"), got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGetMiss(t *testing.T) {
	b, mock := newMockPostgres(t)

	mock.ExpectQuery("SELECT body FROM http_cache").
		WithArgs("h1").
		WillReturnRows(pgxmock.NewRows([]string{"body"}))

	got, err := b.Get(context.Background(), "h1")
	assert.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGetError(t *testing.T) {
	b, mock := newMockPostgres(t)

	mock.ExpectQuery("SELECT body FROM http_cache").
		WithArgs("h1").
		WillReturnError(fmt.Errorf("connection lost"))

	_, err := b.Get(context.Background(), "h1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cache: postgres get")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresPut(t *testing.T) {
	b, mock := newMockPostgres(t)

	now := time.Now().UTC()
	expires := now.Add(time.Hour)
	mock.ExpectExec("INSERT INTO http_cache").
		WithArgs("h1", "https://example.com", []byte("body"), now, expires).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := b.Put(context.Background(), "h1", "https://example.com", []byte("body"), now, expires)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresPutError(t *testing.T) {
	b, mock := newMockPostgres(t)

	mock.ExpectExec("INSERT INTO http_cache").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(fmt.Errorf("disk full"))

	now := time.Now().UTC()
	err := b.Put(context.Background(), "h1", "u", []byte("b"), now, now.Add(time.Hour))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cache: postgres put")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresClear(t *testing.T) {
	b, mock := newMockPostgres(t)

	mock.ExpectExec("DELETE FROM http_cache").
		WillReturnResult(pgxmock.NewResult("DELETE", 3))

	assert.NoError(t, b.Clear(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStats(t *testing.T) {
	b, mock := newMockPostgres(t)

	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(pgxmock.NewRows([]string{"count", "sum"}).AddRow(4, int64(2048)))

	st, err := b.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, st.Entries)
	assert.Equal(t, int64(2048), st.SizeBytes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresMigrate(t *testing.T) {
	b, mock := newMockPostgres(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS http_cache").
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	assert.NoError(t, b.migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
