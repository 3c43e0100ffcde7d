// Package store implements the MessagesDatabase contract spec.md §6.4
// names: a minimal backing store for compiled messages, upsertable under
// a caller-supplied conflict strategy.
//
// Grounded on dbintf.go's DB interface (abstracting database/sql over
// whichever driver is actually connected) and dbops.go's
// type-assert-on-driver dispatch pattern — the same two drivers the
// teacher depends on, jackc/pgx/v5 and microsoft/go-mssqldb, now serving
// message storage instead of schema deployment.
package store

import (
	"context"
	"database/sql"
)

// DB is the subset of *sql.DB the store needs, so callers can pass a
// pooled connection, a transaction-bound connection, or a test double.
// Direct port of dbintf.go's DB interface.
type DB interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	BeginTx(ctx context.Context, txOptions *sql.TxOptions) (*sql.Tx, error)
}

var _ DB = &sql.DB{}

// ConflictStrategy controls what happens when an insert collides with an
// existing row with the same key/locale. Spec.md §6.4: "conflict policy
// controlled by a caller-supplied strategy enum".
type ConflictStrategy int

const (
	// ConflictError aborts the whole insert and returns an error.
	ConflictError ConflictStrategy = iota
	// ConflictSkip leaves the existing row untouched.
	ConflictSkip
	// ConflictOverwrite replaces the existing row's content.
	ConflictOverwrite
)

// DefinitionRow is one stored message definition: a key, its
// default-locale source, and its compiled keyless-JSON form.
type DefinitionRow struct {
	ID           string
	Key          string
	Source       string
	CompiledJSON string
}

// TranslationRow is one stored translated message.
type TranslationRow struct {
	ID           string
	Key          string
	Locale       string
	Source       string
	CompiledJSON string
}

// MessagesDatabase is the collaborator contract spec.md §6.4 names.
// Implementations live in postgres.go and mssql.go, dispatching SQL text
// by driver the same way dbops.go does.
type MessagesDatabase interface {
	InsertDefinition(ctx context.Context, row DefinitionRow, strategy ConflictStrategy) error
	InsertTranslation(ctx context.Context, row TranslationRow, strategy ConflictStrategy) error
}
