// Package sqlitedriver implements the driver.Driver and driver.Session
// contracts for SQLite using the pure-Go modernc.org/sqlite driver:
// database/sql opened against a file path, no cgo.
package sqlitedriver

import (
	"database/sql"
	"net/url"
	"os"

	_ "modernc.org/sqlite"

	"github.com/sqlercore/sqler/common"
	"github.com/sqlercore/sqler/dialect"
	"github.com/sqlercore/sqler/driver"
	"github.com/sqlercore/sqler/driver/internal/sqlcommon"
	"github.com/sqlercore/sqler/errs"
	"github.com/sqlercore/sqler/model"
)

func init() {
	driver.Register(model.KindSQLite, Driver{})
}

// Driver is the stateless SQLite driver factory.
type Driver struct{}

// SupportedKinds returns SQLite's (storage-class-based) type vocabulary.
func (Driver) SupportedKinds() []driver.ColumnKind {
	return []driver.ColumnKind{"INTEGER", "REAL", "TEXT", "BLOB", "NUMERIC"}
}

func asSQLiteOptions(options model.BackendOptions) (model.SQLiteOptions, error) {
	opts, ok := options.(model.SQLiteOptions)
	if !ok {
		return model.SQLiteOptions{}, errs.NewInvalidRequest("expected sqlite options")
	}

	return opts, nil
}

func dsn(opts model.SQLiteOptions) string {
	query := url.Values{}
	if opts.ReadOnly {
		query.Set("mode", "ro")
	}

	if opts.Passphrase != "" {
		query.Set("_pragma", "key("+opts.Passphrase+")")
	}

	if encoded := query.Encode(); encoded != "" {
		return opts.FilePath + "?" + encoded
	}

	return opts.FilePath
}

// singleConn restricts db to exactly one physical connection. For SQLite
// this also sidesteps the file-level locking surprises multiple
// connections to the same database file can cause.
func singleConn(db *sql.DB) {
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
}

// CheckConnection opens and pings a probe connection, then tears it down.
// A read-only open against a missing file fails.
func (Driver) CheckConnection(options model.BackendOptions, logger common.Logger) error {
	opts, err := asSQLiteOptions(options)
	if err != nil {
		return err
	}

	if err := checkFileExists(opts); err != nil {
		return err
	}

	logger.Infof("sqlite: connecting to %s", opts.FilePath)

	db, err := sql.Open("sqlite", dsn(opts))
	if err != nil {
		return errs.NewConnectionFailed("opening sqlite connection failed", err)
	}
	singleConn(db)
	defer func() {
		db.Close()
		logger.Infof("sqlite: disconnected from %s", opts.FilePath)
	}()

	if err := db.Ping(); err != nil {
		return errs.NewConnectionFailed("sqlite ping failed", err)
	}

	logger.Infof("sqlite: connected to %s", opts.FilePath)

	return nil
}

func checkFileExists(opts model.SQLiteOptions) error {
	if !opts.ReadOnly {
		return nil
	}

	if _, err := os.Stat(opts.FilePath); err != nil {
		return errs.NewConnectionFailed("read-only sqlite file does not exist", err)
	}

	return nil
}

// CreateSession establishes a live, caller-owned SQLite session.
func (Driver) CreateSession(options model.BackendOptions, logger common.Logger) (driver.Session, error) {
	opts, err := asSQLiteOptions(options)
	if err != nil {
		return nil, err
	}

	if err := checkFileExists(opts); err != nil {
		return nil, err
	}

	logger.Infof("sqlite: connecting to %s", opts.FilePath)

	db, err := sql.Open("sqlite", dsn(opts))
	if err != nil {
		return nil, errs.NewConnectionFailed("opening sqlite connection failed", err)
	}
	singleConn(db)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errs.NewConnectionFailed("sqlite ping failed", err)
	}

	logger.Infof("sqlite: connected to %s", opts.FilePath)

	return &Session{db: db, logger: logger, target: opts.FilePath}, nil
}

// Session is a live SQLite connection.
type Session struct {
	db     *sql.DB
	logger common.Logger
	target string
}

func (s *Session) Query(req model.QueryRequest) (model.QueryResponse, error) {
	s.logger.Debugf("sqlite: dispatching query (kind=%s)", req.Kind)
	return sqlcommon.HandleQuery(s.db, dialect.SQLite, req)
}

func (s *Session) Exec(req model.ExecRequest) (model.ExecResponse, error) {
	s.logger.Debugf("sqlite: dispatching exec (kind=%s)", req.Kind)
	return sqlcommon.HandleExec(s.db, req)
}

// Tables lists base tables via sqlite_master.
func (s *Session) Tables() ([]model.TableInfo, error) {
	s.logger.Debug("sqlite: dispatching tables")

	rows, err := s.db.Query(`SELECT name FROM sqlite_master WHERE type = 'table'`)
	if err != nil {
		return nil, errs.NewBackendError("querying sqlite_master failed", err)
	}
	defer rows.Close()

	var tables []model.TableInfo
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, errs.NewBackendError("scanning sqlite_master row failed", err)
		}

		tables = append(tables, model.TableInfo{Name: name})
	}

	return tables, rows.Err()
}

// Columns describes table via PRAGMA table_info.
func (s *Session) Columns(table string) ([]model.ColumnInfo, error) {
	s.logger.Debug("sqlite: dispatching columns")

	query := "PRAGMA table_info(" + dialect.SQLite.QuoteIdentifier(table) + ")"

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, errs.NewBackendError("PRAGMA table_info failed", err)
	}
	defer rows.Close()

	var columns []model.ColumnInfo
	for rows.Next() {
		var (
			cid        int
			name, kind string
			notNull    int
			defValue   sql.NullString
			pk         int
		)

		if err := rows.Scan(&cid, &name, &kind, &notNull, &defValue, &pk); err != nil {
			return nil, errs.NewBackendError("scanning PRAGMA table_info row failed", err)
		}

		columns = append(columns, model.ColumnInfo{
			Name:         name,
			Kind:         kind,
			Nullable:     notNull == 0,
			PrimaryKey:   pk != 0,
			DefaultValue: defValue.String,
		})
	}

	return columns, rows.Err()
}

// Close releases the underlying connection.
func (s *Session) Close() error {
	err := s.db.Close()
	s.logger.Infof("sqlite: disconnected from %s", s.target)

	return err
}
