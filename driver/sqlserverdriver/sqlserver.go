// Package sqlserverdriver registers the SQL Server option variant and
// driver vocabulary so UI flows that enumerate "all backends" keep
// working, even though no working SQL Server driver ships yet.
package sqlserverdriver

import (
	"github.com/sqlercore/sqler/common"
	"github.com/sqlercore/sqler/driver"
	"github.com/sqlercore/sqler/errs"
	"github.com/sqlercore/sqler/model"
)

func init() {
	driver.Register(model.KindSQLServer, Driver{})
}

// Driver is the stateless SQL Server driver factory. Every operation
// returns NotSupported until a real driver is wired in.
type Driver struct{}

// SupportedKinds returns SQL Server's type vocabulary.
func (Driver) SupportedKinds() []driver.ColumnKind {
	return []driver.ColumnKind{
		"INT", "BIGINT", "DECIMAL", "FLOAT", "NVARCHAR", "VARCHAR", "TEXT",
		"DATETIME2", "BIT", "VARBINARY",
	}
}

// CheckConnection always reports NotSupported.
func (Driver) CheckConnection(model.BackendOptions, common.Logger) error {
	return errs.NewNotSupported("sql server connections are not implemented")
}

// CreateSession always reports NotSupported.
func (Driver) CreateSession(model.BackendOptions, common.Logger) (driver.Session, error) {
	return nil, errs.NewNotSupported("sql server sessions are not implemented")
}
