// Package oracledriver registers the Oracle option variant and driver
// vocabulary so UI flows that enumerate "all backends" keep working, even
// though no working Oracle driver ships yet.
package oracledriver

import (
	"github.com/sqlercore/sqler/common"
	"github.com/sqlercore/sqler/driver"
	"github.com/sqlercore/sqler/errs"
	"github.com/sqlercore/sqler/model"
)

func init() {
	driver.Register(model.KindOracle, Driver{})
}

// Driver is the stateless Oracle driver factory. Every operation returns
// NotSupported until a real driver is wired in.
type Driver struct{}

// SupportedKinds returns Oracle's type vocabulary, known independently of
// whether a connection can be established.
func (Driver) SupportedKinds() []driver.ColumnKind {
	return []driver.ColumnKind{
		"NUMBER", "VARCHAR2", "NVARCHAR2", "CLOB", "BLOB", "DATE", "TIMESTAMP", "RAW",
	}
}

// CheckConnection always reports NotSupported.
func (Driver) CheckConnection(model.BackendOptions, common.Logger) error {
	return errs.NewNotSupported("oracle connections are not implemented")
}

// CreateSession always reports NotSupported.
func (Driver) CreateSession(model.BackendOptions, common.Logger) (driver.Session, error) {
	return nil, errs.NewNotSupported("oracle sessions are not implemented")
}
