// Package driver defines the Driver/Session contracts every backend
// implementation satisfies, plus the self-registering dispatch table that
// maps a model.DataSourceKind to its driver. Registration follows the same
// init()-time idiom the standard library's database/sql package uses for
// SQL drivers, generalized here to the three query paradigms (SQL,
// key-value command, document) this module unifies.
package driver

import (
	"github.com/sqlercore/sqler/common"
	"github.com/sqlercore/sqler/model"
)

// ColumnKind is one entry in a backend's type vocabulary, used by UI form
// validation to restrict which native types a user may pick from.
type ColumnKind string

// Driver is a small stateless factory for one backend. Implementations are
// registered at init() time via Register and looked up through Dispatch.
type Driver interface {
	// SupportedKinds returns the backend's type vocabulary.
	SupportedKinds() []ColumnKind
	// CheckConnection establishes and tears down a probe connection without
	// executing any user query or mutating server state. logger receives an
	// Info entry on connect and on disconnect; never credentials or args.
	CheckConnection(options model.BackendOptions, logger common.Logger) error
	// CreateSession establishes a live session owned by the caller. logger is
	// attached to the returned Session, which logs Info on connect/disconnect
	// and Debug on every dispatched operation.
	CreateSession(options model.BackendOptions, logger common.Logger) (Session, error)
}

// Session is a live, single-operation-at-a-time handle to one backend.
// Every method is blocking; callers must serialize their own calls (the
// workspace package's take/run/put-back discipline enforces this
// structurally rather than Session doing any internal locking).
type Session interface {
	Query(req model.QueryRequest) (model.QueryResponse, error)
	Exec(req model.ExecRequest) (model.ExecResponse, error)
	Tables() ([]model.TableInfo, error)
	Columns(table string) ([]model.ColumnInfo, error)
	// Close releases any underlying connection. Safe to call more than once.
	Close() error
}
