package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// PostgresStore is a MessagesDatabase backed by a Postgres connection
// (driven through jackc/pgx/v5, matching the teacher's dependency and its
// pgx.NamedArgs usage in dbops.go's Drop).
type PostgresStore struct {
	DB DB
}

func (s PostgresStore) InsertDefinition(ctx context.Context, row DefinitionRow, strategy ConflictStrategy) error {
	qs := `insert into icumark.message_definition (id, key, source, compiled_json) values (@id, @key, @source, @compiled_json)` +
		conflictClausePostgres(strategy, "key")
	_, err := s.DB.ExecContext(ctx, qs, pgx.NamedArgs{
		"id": row.ID, "key": row.Key, "source": row.Source, "compiled_json": row.CompiledJSON,
	})
	return err
}

func (s PostgresStore) InsertTranslation(ctx context.Context, row TranslationRow, strategy ConflictStrategy) error {
	qs := `insert into icumark.message_translation (id, key, locale, source, compiled_json) values (@id, @key, @locale, @source, @compiled_json)` +
		conflictClausePostgres(strategy, "key, locale")
	_, err := s.DB.ExecContext(ctx, qs, pgx.NamedArgs{
		"id": row.ID, "key": row.Key, "locale": row.Locale, "source": row.Source, "compiled_json": row.CompiledJSON,
	})
	return err
}

func conflictClausePostgres(strategy ConflictStrategy, conflictColumns string) string {
	switch strategy {
	case ConflictSkip:
		return fmt.Sprintf(" on conflict (%s) do nothing", conflictColumns)
	case ConflictOverwrite:
		return fmt.Sprintf(" on conflict (%s) do update set source = excluded.source, compiled_json = excluded.compiled_json", conflictColumns)
	default: // ConflictError: no clause, let the unique constraint raise
		return ""
	}
}
