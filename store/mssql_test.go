package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMSSQLInsertDefinitionConflictErrorUsesPlainInsert(t *testing.T) {
	db := &fakeDB{}
	s := MSSQLStore{DB: db}
	err := s.InsertDefinition(context.Background(), DefinitionRow{ID: "1", Key: "greeting"}, ConflictError)
	require.NoError(t, err)
	assert.Contains(t, db.query, "insert into icumark.message_definition")
	assert.NotContains(t, db.query, "merge")
	assert.Equal(t, []interface{}{"1", "greeting", "", ""}, db.args)
}

func TestMSSQLInsertDefinitionConflictSkipLeavesRowUntouched(t *testing.T) {
	db := &fakeDB{}
	s := MSSQLStore{DB: db}
	err := s.InsertDefinition(context.Background(), DefinitionRow{ID: "1", Key: "greeting"}, ConflictSkip)
	require.NoError(t, err)
	assert.Contains(t, db.query, "merge icumark.message_definition as target")
	assert.Contains(t, db.query, "then update set target.id = target.id")
}

func TestMSSQLInsertDefinitionConflictOverwriteUpdatesContent(t *testing.T) {
	db := &fakeDB{}
	s := MSSQLStore{DB: db}
	err := s.InsertDefinition(context.Background(), DefinitionRow{ID: "1", Key: "greeting"}, ConflictOverwrite)
	require.NoError(t, err)
	assert.Contains(t, db.query, "then update set target.source = src.source, target.compiled_json = src.compiled_json")
}

func TestMSSQLInsertTranslationMergesOnKeyAndLocale(t *testing.T) {
	db := &fakeDB{}
	s := MSSQLStore{DB: db}
	err := s.InsertTranslation(context.Background(), TranslationRow{ID: "1", Key: "greeting", Locale: "nb"}, ConflictOverwrite)
	require.NoError(t, err)
	assert.Contains(t, db.query, "on target.[key] = src.[key] and target.locale = src.locale")
	assert.Equal(t, []interface{}{"1", "greeting", "nb", "", ""}, db.args)
}
