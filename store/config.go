package store

import (
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/microsoft/go-mssqldb"
)

// Driver selects which concrete MessagesDatabase backend a Config opens.
type Driver string

const (
	DriverPostgres Driver = "postgres"
	DriverMSSQL    Driver = "sqlserver"
)

// Config is the on-disk connection configuration for a message store,
// modeled on the teacher's cli/cmd/config.go DatabaseConfig: a driver tag
// plus the one connection string that driver's database/sql registration
// understands.
type Config struct {
	Driver     Driver `yaml:"driver"`
	Connection string `yaml:"connection"`
}

// Open dials the configured backend and wraps it as a MessagesDatabase.
// Postgres goes through jackc/pgx/v5's stdlib adapter (so *sql.DB stays the
// common currency DB needs); SQL Server registers itself under "sqlserver"
// via microsoft/go-mssqldb's side-effecting import, the same blank-import
// pattern the teacher's config.go uses for its mssql driver.
func (c Config) Open() (MessagesDatabase, *sql.DB, error) {
	switch c.Driver {
	case DriverPostgres:
		db, err := sql.Open("pgx", c.Connection)
		if err != nil {
			return nil, nil, err
		}
		return PostgresStore{DB: db}, db, nil
	case DriverMSSQL:
		db, err := sql.Open("sqlserver", c.Connection)
		if err != nil {
			return nil, nil, err
		}
		return MSSQLStore{DB: db}, db, nil
	default:
		return nil, nil, fmt.Errorf("store: unknown driver %q, expected %q or %q", c.Driver, DriverPostgres, DriverMSSQL)
	}
}
