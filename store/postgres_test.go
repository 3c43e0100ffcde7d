package store

import (
	"context"
	"database/sql"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeResult satisfies sql.Result without a real driver behind it.
type fakeResult struct{}

func (fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (fakeResult) RowsAffected() (int64, error) { return 1, nil }

// fakeDB records the last ExecContext call so tests can assert on the
// generated SQL and bound arguments without a real database connection.
type fakeDB struct {
	query string
	args  []interface{}
}

func (f *fakeDB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	f.query = query
	f.args = args
	return fakeResult{}, nil
}

func (f *fakeDB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (f *fakeDB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return nil
}

func (f *fakeDB) BeginTx(ctx context.Context, txOptions *sql.TxOptions) (*sql.Tx, error) {
	return nil, nil
}

func TestPostgresInsertDefinitionConflictError(t *testing.T) {
	db := &fakeDB{}
	s := PostgresStore{DB: db}
	err := s.InsertDefinition(context.Background(), DefinitionRow{ID: "1", Key: "greeting", Source: "hi", CompiledJSON: `"hi"`}, ConflictError)
	require.NoError(t, err)
	assert.NotContains(t, db.query, "on conflict")
	require.Len(t, db.args, 1)
	named, ok := db.args[0].(pgx.NamedArgs)
	require.True(t, ok)
	assert.Equal(t, "greeting", named["key"])
}

func TestPostgresInsertDefinitionConflictSkip(t *testing.T) {
	db := &fakeDB{}
	s := PostgresStore{DB: db}
	err := s.InsertDefinition(context.Background(), DefinitionRow{ID: "1", Key: "greeting"}, ConflictSkip)
	require.NoError(t, err)
	assert.Contains(t, db.query, "on conflict (key) do nothing")
}

func TestPostgresInsertDefinitionConflictOverwrite(t *testing.T) {
	db := &fakeDB{}
	s := PostgresStore{DB: db}
	err := s.InsertDefinition(context.Background(), DefinitionRow{ID: "1", Key: "greeting"}, ConflictOverwrite)
	require.NoError(t, err)
	assert.Contains(t, db.query, "do update set source = excluded.source")
}

func TestPostgresInsertTranslationUsesCompositeConflictKey(t *testing.T) {
	db := &fakeDB{}
	s := PostgresStore{DB: db}
	err := s.InsertTranslation(context.Background(), TranslationRow{ID: "1", Key: "greeting", Locale: "nb"}, ConflictSkip)
	require.NoError(t, err)
	assert.Contains(t, db.query, "on conflict (key, locale) do nothing")
	named, ok := db.args[0].(pgx.NamedArgs)
	require.True(t, ok)
	assert.Equal(t, "nb", named["locale"])
}
