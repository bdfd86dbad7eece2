// Package mysqldriver implements the driver.Driver and driver.Session
// contracts for MySQL/MariaDB using go-sql-driver/mysql: database/sql with
// a blank driver import, dial strings built from discrete host/port/user
// fields rather than an ORM.
package mysqldriver

import (
	"database/sql"
	"fmt"

	mysqlgo "github.com/go-sql-driver/mysql"

	"github.com/sqlercore/sqler/common"
	"github.com/sqlercore/sqler/dialect"
	"github.com/sqlercore/sqler/driver"
	"github.com/sqlercore/sqler/driver/internal/sqlcommon"
	"github.com/sqlercore/sqler/errs"
	"github.com/sqlercore/sqler/model"
)

func init() {
	driver.Register(model.KindMySQL, Driver{})
}

// Driver is the stateless MySQL driver factory.
type Driver struct{}

// SupportedKinds returns MySQL's type vocabulary.
func (Driver) SupportedKinds() []driver.ColumnKind {
	return []driver.ColumnKind{
		"TINYINT", "SMALLINT", "INT", "BIGINT", "DECIMAL", "FLOAT", "DOUBLE",
		"VARCHAR", "TEXT", "BLOB", "DATE", "DATETIME", "TIMESTAMP", "BOOLEAN", "JSON",
	}
}

func dsn(opts model.MySQLOptions) string {
	cfg := mysqlgo.NewConfig()
	cfg.Net = "tcp"
	cfg.Addr = fmt.Sprintf("%s:%d", opts.Host, opts.Port)
	cfg.User = opts.User
	cfg.Passwd = opts.Password
	cfg.DBName = opts.Database
	cfg.ParseTime = true

	if opts.TLS {
		cfg.TLSConfig = "true"
	}

	return cfg.FormatDSN()
}

func asMySQLOptions(options model.BackendOptions) (model.MySQLOptions, error) {
	opts, ok := options.(model.MySQLOptions)
	if !ok {
		return model.MySQLOptions{}, errs.NewInvalidRequest("expected mysql options")
	}

	return opts, nil
}

// singleConn restricts db to exactly one physical connection, matching the
// one-reusable-connection-per-source contract every SQL driver here holds
// to instead of pooling.
func singleConn(db *sql.DB) {
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
}

// CheckConnection opens and pings a probe connection, then tears it down.
func (Driver) CheckConnection(options model.BackendOptions, logger common.Logger) error {
	opts, err := asMySQLOptions(options)
	if err != nil {
		return err
	}

	target := fmt.Sprintf("%s:%d/%s", opts.Host, opts.Port, opts.Database)
	logger.Infof("mysql: connecting to %s", target)

	db, err := sql.Open("mysql", dsn(opts))
	if err != nil {
		return errs.NewConnectionFailed("opening mysql connection failed", err)
	}
	singleConn(db)
	defer func() {
		db.Close()
		logger.Infof("mysql: disconnected from %s", target)
	}()

	if err := db.Ping(); err != nil {
		return errs.NewConnectionFailed("mysql ping failed", err)
	}

	logger.Infof("mysql: connected to %s", target)

	return nil
}

// CreateSession establishes a live, caller-owned MySQL session.
func (Driver) CreateSession(options model.BackendOptions, logger common.Logger) (driver.Session, error) {
	opts, err := asMySQLOptions(options)
	if err != nil {
		return nil, err
	}

	target := fmt.Sprintf("%s:%d/%s", opts.Host, opts.Port, opts.Database)
	logger.Infof("mysql: connecting to %s", target)

	db, err := sql.Open("mysql", dsn(opts))
	if err != nil {
		return nil, errs.NewConnectionFailed("opening mysql connection failed", err)
	}
	singleConn(db)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errs.NewConnectionFailed("mysql ping failed", err)
	}

	logger.Infof("mysql: connected to %s", target)

	return &Session{db: db, logger: logger, target: target}, nil
}

// Session is a live MySQL connection. Callers must serialize their own use
// (see driver.Session).
type Session struct {
	db     *sql.DB
	logger common.Logger
	target string
}

func (s *Session) Query(req model.QueryRequest) (model.QueryResponse, error) {
	s.logger.Debugf("mysql: dispatching query (kind=%s)", req.Kind)
	return sqlcommon.HandleQuery(s.db, dialect.MySQL, req)
}

func (s *Session) Exec(req model.ExecRequest) (model.ExecResponse, error) {
	s.logger.Debugf("mysql: dispatching exec (kind=%s)", req.Kind)
	return sqlcommon.HandleExec(s.db, req)
}

// Tables lists the tables (and views) in the connected schema via SHOW
// TABLES.
func (s *Session) Tables() ([]model.TableInfo, error) {
	s.logger.Debug("mysql: dispatching tables")

	rows, err := s.db.Query("SHOW TABLES")
	if err != nil {
		return nil, errs.NewBackendError("SHOW TABLES failed", err)
	}
	defer rows.Close()

	var tables []model.TableInfo
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, errs.NewBackendError("scanning SHOW TABLES row failed", err)
		}

		tables = append(tables, model.TableInfo{Name: name})
	}

	return tables, rows.Err()
}

// Columns describes table via SHOW FULL COLUMNS FROM <quoted>.
func (s *Session) Columns(table string) ([]model.ColumnInfo, error) {
	s.logger.Debug("mysql: dispatching columns")

	query := "SHOW FULL COLUMNS FROM " + dialect.MySQL.QuoteIdentifier(table)

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, errs.NewBackendError("SHOW FULL COLUMNS failed", err)
	}
	defer rows.Close()

	var columns []model.ColumnInfo
	for rows.Next() {
		var (
			field, colType, collation, null, key, extra, privileges, comment sql.NullString
			defaultValue                                                      sql.NullString
		)

		if err := rows.Scan(&field, &colType, &collation, &null, &key, &defaultValue, &extra, &privileges, &comment); err != nil {
			return nil, errs.NewBackendError("scanning SHOW FULL COLUMNS row failed", err)
		}

		columns = append(columns, model.ColumnInfo{
			Name:          field.String,
			Kind:          colType.String,
			Comment:       comment.String,
			Nullable:      null.String == "YES",
			PrimaryKey:    key.String == "PRI",
			DefaultValue:  defaultValue.String,
			AutoIncrement: extra.String == "auto_increment",
		})
	}

	return columns, rows.Err()
}

// Close releases the underlying connection.
func (s *Session) Close() error {
	err := s.db.Close()
	s.logger.Infof("mysql: disconnected from %s", s.target)

	return err
}
