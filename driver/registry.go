package driver

import (
	"sync"

	"github.com/sqlercore/sqler/common"
	"github.com/sqlercore/sqler/errs"
	"github.com/sqlercore/sqler/model"
)

var (
	registryMu sync.RWMutex
	registry   = map[model.DataSourceKind]Driver{}
)

// Register makes d available under kind. It is meant to be called from a
// backend package's init() function and panics on a duplicate registration,
// the same contract database/sql.Register uses for SQL drivers.
func Register(kind model.DataSourceKind, d Driver) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[kind]; exists {
		panic("driver: Register called twice for kind " + string(kind))
	}

	registry[kind] = d
}

// Dispatch fans out to the driver registered for kind.
func Dispatch(kind model.DataSourceKind) (Driver, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	d, ok := registry[kind]
	if !ok {
		return nil, errs.NewNotSupported("no driver registered for kind " + string(kind))
	}

	return d, nil
}

// CheckConnection dispatches to the driver for options.Kind() and runs its
// probe connection check. A nil logger is replaced with common.NoneLogger.
func CheckConnection(options model.BackendOptions, logger common.Logger) error {
	d, err := Dispatch(options.Kind())
	if err != nil {
		return err
	}

	return d.CheckConnection(options, orNoneLogger(logger))
}

// CreateSession dispatches to the driver for options.Kind() and creates a
// live session. A nil logger is replaced with common.NoneLogger.
func CreateSession(options model.BackendOptions, logger common.Logger) (Session, error) {
	d, err := Dispatch(options.Kind())
	if err != nil {
		return nil, err
	}

	return d.CreateSession(options, orNoneLogger(logger))
}

func orNoneLogger(logger common.Logger) common.Logger {
	if logger == nil {
		return common.NoneLogger{}
	}

	return logger
}

// SupportedKinds returns the type vocabulary for kind, or an empty slice if
// no driver is registered.
func SupportedKinds(kind model.DataSourceKind) []ColumnKind {
	d, err := Dispatch(kind)
	if err != nil {
		return nil
	}

	return d.SupportedKinds()
}
