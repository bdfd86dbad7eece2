// Package postgresdriver implements the driver.Driver and driver.Session
// contracts for PostgreSQL: database/sql opened against the pgx stdlib
// driver rather than pgx's native pool API, since this module reuses a
// single connection per source instead of pooling.
package postgresdriver

import (
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/sqlercore/sqler/common"
	"github.com/sqlercore/sqler/dialect"
	"github.com/sqlercore/sqler/driver"
	"github.com/sqlercore/sqler/driver/internal/sqlcommon"
	"github.com/sqlercore/sqler/errs"
	"github.com/sqlercore/sqler/model"
)

func init() {
	driver.Register(model.KindPostgres, Driver{})
}

// Driver is the stateless Postgres driver factory.
type Driver struct{}

// SupportedKinds returns Postgres's type vocabulary.
func (Driver) SupportedKinds() []driver.ColumnKind {
	return []driver.ColumnKind{
		"SMALLINT", "INTEGER", "BIGINT", "NUMERIC", "REAL", "DOUBLE PRECISION",
		"VARCHAR", "TEXT", "BYTEA", "DATE", "TIMESTAMP", "TIMESTAMPTZ", "BOOLEAN", "JSONB",
	}
}

func dsn(opts model.PostgresOptions) string {
	sslmode := "disable"
	if opts.TLS {
		sslmode = "require"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		opts.User, opts.Password, opts.Host, opts.Port, opts.Database, sslmode)
}

func asPostgresOptions(options model.BackendOptions) (model.PostgresOptions, error) {
	opts, ok := options.(model.PostgresOptions)
	if !ok {
		return model.PostgresOptions{}, errs.NewInvalidRequest("expected postgres options")
	}

	return opts, nil
}

// singleConn restricts db to exactly one physical connection, so a second
// query issued while a first is mid-scan blocks on the same connection
// instead of the pool silently opening another one underneath it.
func singleConn(db *sql.DB) {
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
}

// CheckConnection opens and pings a probe connection, then tears it down.
func (Driver) CheckConnection(options model.BackendOptions, logger common.Logger) error {
	opts, err := asPostgresOptions(options)
	if err != nil {
		return err
	}

	logger.Infof("postgres: connecting to %s:%d/%s", opts.Host, opts.Port, opts.Database)

	db, err := sql.Open("pgx", dsn(opts))
	if err != nil {
		return errs.NewConnectionFailed("opening postgres connection failed", err)
	}
	singleConn(db)
	defer func() {
		db.Close()
		logger.Infof("postgres: disconnected from %s:%d/%s", opts.Host, opts.Port, opts.Database)
	}()

	if err := db.Ping(); err != nil {
		return errs.NewConnectionFailed("postgres ping failed", err)
	}

	logger.Infof("postgres: connected to %s:%d/%s", opts.Host, opts.Port, opts.Database)

	return nil
}

// CreateSession establishes a live, caller-owned Postgres session.
func (Driver) CreateSession(options model.BackendOptions, logger common.Logger) (driver.Session, error) {
	opts, err := asPostgresOptions(options)
	if err != nil {
		return nil, err
	}

	logger.Infof("postgres: connecting to %s:%d/%s", opts.Host, opts.Port, opts.Database)

	db, err := sql.Open("pgx", dsn(opts))
	if err != nil {
		return nil, errs.NewConnectionFailed("opening postgres connection failed", err)
	}
	singleConn(db)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errs.NewConnectionFailed("postgres ping failed", err)
	}

	logger.Infof("postgres: connected to %s:%d/%s", opts.Host, opts.Port, opts.Database)

	return &Session{db: db, logger: logger, target: fmt.Sprintf("%s:%d/%s", opts.Host, opts.Port, opts.Database)}, nil
}

// Session is a live Postgres connection.
type Session struct {
	db     *sql.DB
	logger common.Logger
	target string
}

func (s *Session) Query(req model.QueryRequest) (model.QueryResponse, error) {
	s.logger.Debugf("postgres: dispatching query (kind=%s)", req.Kind)
	return sqlcommon.HandleQuery(s.db, dialect.Postgres, req)
}

func (s *Session) Exec(req model.ExecRequest) (model.ExecResponse, error) {
	s.logger.Debugf("postgres: dispatching exec (kind=%s)", req.Kind)
	return sqlcommon.HandleExec(s.db, req)
}

// Tables lists base tables in the public schema.
func (s *Session) Tables() ([]model.TableInfo, error) {
	s.logger.Debug("postgres: dispatching tables")

	rows, err := s.db.Query(`SELECT tablename FROM pg_tables WHERE schemaname = 'public'`)
	if err != nil {
		return nil, errs.NewBackendError("querying pg_tables failed", err)
	}
	defer rows.Close()

	var tables []model.TableInfo
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, errs.NewBackendError("scanning pg_tables row failed", err)
		}

		tables = append(tables, model.TableInfo{Name: name})
	}

	return tables, rows.Err()
}

// Columns describes table via information_schema.columns. The primary-key
// and comment lookups run to completion (closing their own rows) before
// the main columns query opens its cursor, since the session's *sql.DB is
// constrained to a single physical connection.
func (s *Session) Columns(table string) ([]model.ColumnInfo, error) {
	s.logger.Debug("postgres: dispatching columns")

	primaryKeys, err := s.primaryKeyColumns(table)
	if err != nil {
		return nil, err
	}

	comments, err := s.columnComments(table)
	if err != nil {
		return nil, err
	}

	const query = `
		SELECT column_name, data_type, is_nullable, column_default,
		       COALESCE(character_maximum_length, 0)
		FROM information_schema.columns
		WHERE table_schema = 'public' AND table_name = $1
		ORDER BY ordinal_position`

	rows, err := s.db.Query(query, table)
	if err != nil {
		return nil, errs.NewBackendError("querying information_schema.columns failed", err)
	}
	defer rows.Close()

	var columns []model.ColumnInfo
	for rows.Next() {
		var (
			name, dataType, nullable string
			defaultValue             sql.NullString
			maxLength                int
		)

		if err := rows.Scan(&name, &dataType, &nullable, &defaultValue, &maxLength); err != nil {
			return nil, errs.NewBackendError("scanning information_schema.columns row failed", err)
		}

		columns = append(columns, model.ColumnInfo{
			Name:         name,
			Kind:         dataType,
			Comment:      comments[name],
			Nullable:     nullable == "YES",
			PrimaryKey:   primaryKeys[name],
			DefaultValue: defaultValue.String,
			MaxLength:    maxLength,
		})
	}

	return columns, rows.Err()
}

func (s *Session) primaryKeyColumns(table string) (map[string]bool, error) {
	const query = `
		SELECT a.attname
		FROM pg_index i
		JOIN pg_attribute a ON a.attrelid = i.indrelid AND a.attnum = ANY(i.indkey)
		WHERE i.indrelid = $1::regclass AND i.indisprimary`

	rows, err := s.db.Query(query, table)
	if err != nil {
		return nil, errs.NewBackendError("querying primary key columns failed", err)
	}
	defer rows.Close()

	result := map[string]bool{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, errs.NewBackendError("scanning primary key column row failed", err)
		}

		result[name] = true
	}

	return result, rows.Err()
}

// columnComments returns the per-column comment set via pg_catalog, keyed
// by column name. Columns without a comment are absent from the map.
func (s *Session) columnComments(table string) (map[string]string, error) {
	const query = `
		SELECT a.attname, pg_catalog.col_description(a.attrelid, a.attnum)
		FROM pg_attribute a
		WHERE a.attrelid = $1::regclass AND a.attnum > 0 AND NOT a.attisdropped`

	rows, err := s.db.Query(query, table)
	if err != nil {
		return nil, errs.NewBackendError("querying column comments failed", err)
	}
	defer rows.Close()

	result := map[string]string{}
	for rows.Next() {
		var (
			name    string
			comment sql.NullString
		)

		if err := rows.Scan(&name, &comment); err != nil {
			return nil, errs.NewBackendError("scanning column comment row failed", err)
		}

		if comment.Valid && comment.String != "" {
			result[name] = comment.String
		}
	}

	return result, rows.Err()
}

// Close releases the underlying connection.
func (s *Session) Close() error {
	err := s.db.Close()
	s.logger.Infof("postgres: disconnected from %s", s.target)

	return err
}
