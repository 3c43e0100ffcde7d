package store

import "context"

// MSSQLStore is a MessagesDatabase backed by a SQL Server connection
// (driven through microsoft/go-mssqldb, matching the teacher's other SQL
// driver dependency). MERGE plays the role Postgres's ON CONFLICT does.
type MSSQLStore struct {
	DB DB
}

func (s MSSQLStore) InsertDefinition(ctx context.Context, row DefinitionRow, strategy ConflictStrategy) error {
	if strategy == ConflictError {
		qs := `insert into icumark.message_definition (id, [key], source, compiled_json) values (@p1, @p2, @p3, @p4)`
		_, err := s.DB.ExecContext(ctx, qs, row.ID, row.Key, row.Source, row.CompiledJSON)
		return err
	}
	qs := `merge icumark.message_definition as target
using (select @p1 as id, @p2 as [key], @p3 as source, @p4 as compiled_json) as src
on target.[key] = src.[key]
when matched` + matchedAction(strategy) + `
when not matched then insert (id, [key], source, compiled_json) values (src.id, src.[key], src.source, src.compiled_json);`
	_, err := s.DB.ExecContext(ctx, qs, row.ID, row.Key, row.Source, row.CompiledJSON)
	return err
}

func (s MSSQLStore) InsertTranslation(ctx context.Context, row TranslationRow, strategy ConflictStrategy) error {
	if strategy == ConflictError {
		qs := `insert into icumark.message_translation (id, [key], locale, source, compiled_json) values (@p1, @p2, @p3, @p4, @p5)`
		_, err := s.DB.ExecContext(ctx, qs, row.ID, row.Key, row.Locale, row.Source, row.CompiledJSON)
		return err
	}
	qs := `merge icumark.message_translation as target
using (select @p1 as id, @p2 as [key], @p3 as locale, @p4 as source, @p5 as compiled_json) as src
on target.[key] = src.[key] and target.locale = src.locale
when matched` + matchedAction(strategy) + `
when not matched then insert (id, [key], locale, source, compiled_json) values (src.id, src.[key], src.locale, src.source, src.compiled_json);`
	_, err := s.DB.ExecContext(ctx, qs, row.ID, row.Key, row.Locale, row.Source, row.CompiledJSON)
	return err
}

// matchedAction renders the "when matched" clause body: an overwrite
// updates source/compiled_json from the staged row, a skip is a no-op
// update so the MERGE statement stays well-formed without touching data.
func matchedAction(strategy ConflictStrategy) string {
	if strategy == ConflictOverwrite {
		return ` then update set target.source = src.source, target.compiled_json = src.compiled_json`
	}
	return ` then update set target.id = target.id`
}
