package sqlcommon

import (
	"database/sql"

	"github.com/sqlercore/sqler/dialect"
	"github.com/sqlercore/sqler/errs"
	"github.com/sqlercore/sqler/model"
)

// HandleQuery implements the SQL-driver half of Session.Query: Sql
// requests run verbatim, Builder requests delegate to the dialect package
// first, and Command/Document are rejected as NotSupported.
func HandleQuery(db *sql.DB, dia dialect.Dialect, req model.QueryRequest) (model.QueryResponse, error) {
	switch req.Kind {
	case model.QueryKindSQL:
		rows, err := QueryRows(db, req.SQL.Text, req.SQL.PositionalArgs)
		if err != nil {
			return model.QueryResponse{}, err
		}

		return model.NewRowsResponse(rows.Columns, rows.Rows), nil
	case model.QueryKindBuilder:
		sqlText, args, err := dia.BuildSelect(*req.Builder)
		if err != nil {
			return model.QueryResponse{}, err
		}

		rows, err := QueryRows(db, sqlText, args)
		if err != nil {
			return model.QueryResponse{}, err
		}

		return model.NewRowsResponse(rows.Columns, rows.Rows), nil
	default:
		return model.QueryResponse{}, errs.NewNotSupported("SQL drivers only accept sql and builder query requests")
	}
}

// HandleExec implements the SQL-driver half of Session.Exec: only Sql
// requests are accepted, everything else is NotSupported.
func HandleExec(db *sql.DB, req model.ExecRequest) (model.ExecResponse, error) {
	if req.Kind != model.ExecKindSQL {
		return model.ExecResponse{}, errs.NewNotSupported("SQL drivers only accept sql exec requests")
	}

	result, err := db.Exec(req.SQL.Text, req.SQL.PositionalArgs...)
	if err != nil {
		return model.ExecResponse{}, errs.NewBackendError("exec failed", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return model.ExecResponse{}, errs.NewBackendError("reading rows affected failed", err)
	}

	return model.ExecResponse{Affected: uint64(affected)}, nil
}
