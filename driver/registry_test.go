package driver_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sqlercore/sqler/common"
	"github.com/sqlercore/sqler/driver"
	"github.com/sqlercore/sqler/model"
)

type stubSession struct{}

func (stubSession) Query(model.QueryRequest) (model.QueryResponse, error) { return model.QueryResponse{}, nil }
func (stubSession) Exec(model.ExecRequest) (model.ExecResponse, error)    { return model.ExecResponse{}, nil }
func (stubSession) Tables() ([]model.TableInfo, error)                   { return nil, nil }
func (stubSession) Columns(string) ([]model.ColumnInfo, error)           { return nil, nil }
func (stubSession) Close() error                                         { return nil }

type stubDriver struct{}

func (stubDriver) SupportedKinds() []driver.ColumnKind { return []driver.ColumnKind{"text"} }
func (stubDriver) CheckConnection(model.BackendOptions, common.Logger) error { return nil }
func (stubDriver) CreateSession(model.BackendOptions, common.Logger) (driver.Session, error) {
	return stubSession{}, nil
}

const testKind model.DataSourceKind = "driver_test_stub"

func TestRegisterAndDispatch(t *testing.T) {
	driver.Register(testKind, stubDriver{})

	d, err := driver.Dispatch(testKind)
	require.NoError(t, err)
	assert.Equal(t, []driver.ColumnKind{"text"}, d.SupportedKinds())
}

func TestRegister_DuplicatePanics(t *testing.T) {
	const kind model.DataSourceKind = "driver_test_dup"
	driver.Register(kind, stubDriver{})
	assert.Panics(t, func() { driver.Register(kind, stubDriver{}) })
}

func TestDispatch_UnknownKind(t *testing.T) {
	_, err := driver.Dispatch("driver_test_unknown")
	assert.Error(t, err)
}
