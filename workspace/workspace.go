// Package workspace implements the per-workspace "take, run, put back"
// session orchestration: each Workspace owns at most one live
// driver.Session, moves it into a worker goroutine for the duration of a
// blocking call, and restores or drops it depending on how the call
// failed. The empty/occupied slot is a capacity-1 channel rather than a
// mutex and boolean flag, so a panic inside the worker goroutine cannot
// leave the slot permanently locked.
package workspace

import (
	"github.com/sqlercore/sqler/common"
	"github.com/sqlercore/sqler/driver"
	"github.com/sqlercore/sqler/errs"
	"github.com/sqlercore/sqler/model"
)

// Workspace owns zero or one live session against a fixed set of backend
// options. It is safe for concurrent use; concurrent operations on the
// same Workspace are serialized by design: a second call while one is
// outstanding gets a "busy" InvalidRequest.
type Workspace struct {
	options model.BackendOptions
	logger  common.Logger

	slot chan driver.Session // capacity 1; holds the session when idle, empty when taken
}

// New creates a Workspace bound to options. No connection is established
// until the first operation runs. A nil logger is replaced with
// common.NoneLogger; logger is handed to every session this workspace
// creates.
func New(options model.BackendOptions, logger common.Logger) *Workspace {
	if logger == nil {
		logger = common.NoneLogger{}
	}

	slot := make(chan driver.Session, 1)
	slot <- nil

	return &Workspace{options: options, logger: logger, slot: slot}
}

// take removes the session from the slot. Blocking here would queue a
// second caller behind the first instead of rejecting it, so take uses a
// non-blocking attempt and reports failure when an operation is already
// outstanding.
func (w *Workspace) take() (driver.Session, bool) {
	select {
	case session := <-w.slot:
		return session, true
	default:
		return nil, false
	}
}

func (w *Workspace) putBack(session driver.Session) {
	w.slot <- session
}

// ensureSession dispatches a new session if the slot held nil.
func (w *Workspace) ensureSession(session driver.Session) (driver.Session, error) {
	if session != nil {
		return session, nil
	}

	return driver.CreateSession(w.options, w.logger)
}

// runExclusive is the take/run/put-back core: it takes the slot, ensures a
// session exists, runs op in a worker goroutine, and restores or drops the
// session depending on the error kind observed.
func runExclusive[T any](w *Workspace, op func(driver.Session) (T, error)) (T, error) {
	var zero T

	current, ok := w.take()
	if !ok {
		return zero, errs.NewInvalidRequest("workspace busy: an operation is already in flight")
	}

	session, err := w.ensureSession(current)
	if err != nil {
		w.putBack(nil)
		return zero, err
	}

	type workerResult struct {
		value T
		err   error
	}

	resultCh := make(chan workerResult, 1)

	go func() {
		value, err := op(session)
		resultCh <- workerResult{value: value, err: err}
	}()

	result := <-resultCh

	if errs.IsConnectionFailed(result.err) {
		_ = session.Close()
		w.putBack(nil)

		return zero, result.err
	}

	w.putBack(session)

	return result.value, result.err
}

// Query issues req against the workspace's session, establishing one first
// if the slot was empty.
func (w *Workspace) Query(req model.QueryRequest) (model.QueryResponse, error) {
	return runExclusive(w, func(s driver.Session) (model.QueryResponse, error) {
		return s.Query(req)
	})
}

// Exec issues req against the workspace's session.
func (w *Workspace) Exec(req model.ExecRequest) (model.ExecResponse, error) {
	return runExclusive(w, func(s driver.Session) (model.ExecResponse, error) {
		return s.Exec(req)
	})
}

// Tables lists tables/collections via the workspace's session.
func (w *Workspace) Tables() ([]model.TableInfo, error) {
	return runExclusive(w, func(s driver.Session) ([]model.TableInfo, error) {
		return s.Tables()
	})
}

// Columns describes table via the workspace's session.
func (w *Workspace) Columns(table string) ([]model.ColumnInfo, error) {
	return runExclusive(w, func(s driver.Session) ([]model.ColumnInfo, error) {
		return s.Columns(table)
	})
}

// Close drops any live session, if present. Safe to call even while no
// operation has ever run.
func (w *Workspace) Close() error {
	current, ok := w.take()
	if !ok {
		return errs.NewInvalidRequest("workspace busy: an operation is already in flight")
	}

	if current == nil {
		w.putBack(nil)
		return nil
	}

	err := current.Close()
	w.putBack(nil)

	return err
}
