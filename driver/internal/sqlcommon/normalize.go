// Package sqlcommon holds the row-normalization and Query/Exec dispatch
// helpers shared by the mysqldriver, postgresdriver, and sqlitedriver
// packages: scan into driver-native Go values, then render each cell for
// the wire. Table/column introspection stays in each driver package.
package sqlcommon

import (
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/sqlercore/sqler/errs"
	"github.com/sqlercore/sqler/model"
)

// QueryRows runs query/args against db and normalizes the result into
// model.Rows: numbers render as shortest decimal, booleans as lowercase
// true/false, nulls as empty string, binary as hex, and temporal values in
// ISO-8601-like form.
func QueryRows(db *sql.DB, query string, args []any) (model.Rows, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return model.Rows{}, errs.NewBackendError("query failed", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return model.Rows{}, errs.NewBackendError("reading columns failed", err)
	}

	out := model.Rows{Columns: columns}

	for rows.Next() {
		values := make([]any, len(columns))
		scanTargets := make([]any, len(columns))
		for i := range values {
			scanTargets[i] = &values[i]
		}

		if err := rows.Scan(scanTargets...); err != nil {
			return model.Rows{}, errs.NewBackendError("scanning row failed", err)
		}

		cells := make([]string, len(values))
		for i, v := range values {
			cells[i] = StringifyCell(v)
		}

		out.Rows = append(out.Rows, cells)
	}

	if err := rows.Err(); err != nil {
		return model.Rows{}, errs.NewBackendError("iterating rows failed", err)
	}

	return out, nil
}

// StringifyCell renders one scanned column value as a display string.
func StringifyCell(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case bool:
		if val {
			return "true"
		}

		return "false"
	case int64:
		return fmt.Sprintf("%d", val)
	case float32:
		return decimal.NewFromFloat32(val).String()
	case float64:
		return decimal.NewFromFloat(val).String()
	case time.Time:
		return val.UTC().Format(time.RFC3339Nano)
	case []byte:
		if utf8.Valid(val) {
			return string(val)
		}

		return hex.EncodeToString(val)
	case string:
		return val
	default:
		return fmt.Sprintf("%v", val)
	}
}
