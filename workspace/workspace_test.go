package workspace_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sqlercore/sqler/common"
	"github.com/sqlercore/sqler/driver"
	"github.com/sqlercore/sqler/errs"
	"github.com/sqlercore/sqler/model"
	"github.com/sqlercore/sqler/workspace"
)

type stubOptions struct {
	kind model.DataSourceKind
}

func (o stubOptions) Kind() model.DataSourceKind { return o.kind }

type stubSession struct {
	closeCount int
	nextErr    error
	queryCount int
	entered    chan struct{} // if set, Query signals here once it is running
	release    chan struct{} // if set, Query blocks until this is closed
}

func (s *stubSession) Query(model.QueryRequest) (model.QueryResponse, error) {
	s.queryCount++
	if s.entered != nil {
		s.entered <- struct{}{}
	}
	if s.release != nil {
		<-s.release
	}
	return model.QueryResponse{}, s.nextErr
}
func (s *stubSession) Exec(model.ExecRequest) (model.ExecResponse, error) { return model.ExecResponse{}, nil }
func (s *stubSession) Tables() ([]model.TableInfo, error)                 { return nil, nil }
func (s *stubSession) Columns(string) ([]model.ColumnInfo, error)         { return nil, nil }
func (s *stubSession) Close() error {
	s.closeCount++
	return nil
}

type stubDriver struct {
	session *stubSession
	connErr error
}

func (d *stubDriver) SupportedKinds() []driver.ColumnKind { return nil }
func (d *stubDriver) CheckConnection(model.BackendOptions, common.Logger) error {
	return d.connErr
}
func (d *stubDriver) CreateSession(model.BackendOptions, common.Logger) (driver.Session, error) {
	if d.connErr != nil {
		return nil, d.connErr
	}

	return d.session, nil
}

func registerStubDriver(t *testing.T, d *stubDriver) model.DataSourceKind {
	t.Helper()
	kind := model.DataSourceKind("workspace_test_" + t.Name())
	driver.Register(kind, d)

	return kind
}

func TestWorkspace_QueryCreatesThenReusesSession(t *testing.T) {
	session := &stubSession{}
	kind := registerStubDriver(t, &stubDriver{session: session})

	w := workspace.New(stubOptions{kind: kind}, common.NoneLogger{})

	_, err := w.Query(model.NewSQLQueryRequest("select 1"))
	require.NoError(t, err)

	_, err = w.Query(model.NewSQLQueryRequest("select 2"))
	require.NoError(t, err)

	assert.Equal(t, 2, session.queryCount)
	assert.Equal(t, 0, session.closeCount)
}

func TestWorkspace_ConnectionFailedDropsSession(t *testing.T) {
	session := &stubSession{nextErr: errs.NewConnectionFailed("lost connection", nil)}
	kind := registerStubDriver(t, &stubDriver{session: session})

	w := workspace.New(stubOptions{kind: kind}, common.NoneLogger{})

	_, err := w.Query(model.NewSQLQueryRequest("select 1"))
	assert.Error(t, err)
	assert.Equal(t, 1, session.closeCount)
}

func TestWorkspace_BackendErrorRestoresSession(t *testing.T) {
	session := &stubSession{nextErr: errs.NewBackendError("bad sql", nil)}
	kind := registerStubDriver(t, &stubDriver{session: session})

	w := workspace.New(stubOptions{kind: kind}, common.NoneLogger{})

	_, err := w.Query(model.NewSQLQueryRequest("select 1"))
	assert.Error(t, err)
	assert.Equal(t, 0, session.closeCount)

	_, err = w.Query(model.NewSQLQueryRequest("select 2"))
	assert.Error(t, err)
	assert.Equal(t, 2, session.queryCount)
}

func TestWorkspace_BusyWhenOperationOutstanding(t *testing.T) {
	session := &stubSession{entered: make(chan struct{}, 1), release: make(chan struct{})}
	kind := registerStubDriver(t, &stubDriver{session: session})

	w := workspace.New(stubOptions{kind: kind}, common.NoneLogger{})

	var wg sync.WaitGroup
	errCh := make(chan error, 2)

	wg.Add(2)
	for i := 0; i < 2; i++ {
		go func() {
			defer wg.Done()
			_, err := w.Query(model.NewSQLQueryRequest("select 1"))
			errCh <- err
		}()
	}

	// One call now holds the session inside Query; the other can only
	// return by being turned away. Release the holder after that.
	<-session.entered
	results := []error{<-errCh}
	close(session.release)
	wg.Wait()
	close(errCh)

	for err := range errCh {
		results = append(results, err)
	}

	var busyCount, okCount int
	for _, err := range results {
		if err != nil {
			busyCount++
		} else {
			okCount++
		}
	}

	assert.Equal(t, 1, okCount)
	assert.Equal(t, 1, busyCount)
}
