// Package dialect turns a structured model.BuilderQuery into backend-native
// SQL text plus a positional argument list, using
// github.com/Masterminds/squirrel rather than string-concatenating SQL by
// hand.
package dialect

import (
	"strings"

	sqrl "github.com/Masterminds/squirrel"

	"github.com/sqlercore/sqler/errs"
	"github.com/sqlercore/sqler/model"
)

// Dialect captures the identifier-quoting and placeholder conventions of
// one SQL backend.
type Dialect struct {
	kind              model.DataSourceKind
	identifierQuote   byte
	placeholderFormat sqrl.PlaceholderFormat
}

var (
	MySQL = Dialect{
		kind:              model.KindMySQL,
		identifierQuote:   '`',
		placeholderFormat: sqrl.Question,
	}
	Postgres = Dialect{
		kind:              model.KindPostgres,
		identifierQuote:   '"',
		placeholderFormat: sqrl.Dollar,
	}
	SQLite = Dialect{
		kind:              model.KindSQLite,
		identifierQuote:   '"',
		placeholderFormat: sqrl.Question,
	}
)

// For returns the Dialect matching kind, or NotSupported for any backend
// that doesn't speak SQL (Redis, MongoDB) or has no working driver yet
// (Oracle, SQL Server).
func For(kind model.DataSourceKind) (Dialect, error) {
	switch kind {
	case model.KindMySQL:
		return MySQL, nil
	case model.KindPostgres:
		return Postgres, nil
	case model.KindSQLite:
		return SQLite, nil
	default:
		return Dialect{}, errs.NewNotSupported("no SQL dialect for kind " + string(kind))
	}
}

// QuoteIdentifier wraps name in the dialect's quote character, doubling any
// embedded occurrence of that character.
func (d Dialect) QuoteIdentifier(name string) string {
	q := string(d.identifierQuote)
	escaped := strings.ReplaceAll(name, q, q+q)

	return q + escaped + q
}

func (d Dialect) quoteColumns(columns []string) []string {
	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = d.QuoteIdentifier(c)
	}

	return quoted
}

// BuildSelect renders a SELECT for req, applying paging/order/filters, and
// returns the SQL text plus positional args in emission order.
func (d Dialect) BuildSelect(req model.BuilderQuery) (string, []any, error) {
	if err := req.Paging.Validate(); err != nil {
		return "", nil, err
	}

	projection := "*"
	if len(req.Columns) > 0 {
		projection = strings.Join(d.quoteColumns(req.Columns), ", ")
	}

	builder := sqrl.Select(projection).
		From(d.QuoteIdentifier(req.Table)).
		PlaceholderFormat(d.placeholderFormat)

	builder, err := d.applyFilters(builder, req.Filters)
	if err != nil {
		return "", nil, err
	}

	for _, order := range req.Orders {
		direction := "ASC"
		if !order.Ascending {
			direction = "DESC"
		}

		builder = builder.OrderBy(d.QuoteIdentifier(order.Field) + " " + direction)
	}

	builder = builder.Limit(uint64(req.Paging.Size)).Offset(uint64(req.Paging.Offset()))

	sqlText, args, err := builder.ToSql()
	if err != nil {
		return "", nil, errs.NewInvalidRequest(err.Error())
	}

	return sqlText, args, nil
}

// BuildCount renders the COUNT(*) pair to BuildSelect: same FROM and WHERE,
// no ORDER BY, no LIMIT/OFFSET.
func (d Dialect) BuildCount(req model.BuilderQuery) (string, []any, error) {
	builder := sqrl.Select("COUNT(*)").
		From(d.QuoteIdentifier(req.Table)).
		PlaceholderFormat(d.placeholderFormat)

	builder, err := d.applyFilters(builder, req.Filters)
	if err != nil {
		return "", nil, err
	}

	sqlText, args, err := builder.ToSql()
	if err != nil {
		return "", nil, errs.NewInvalidRequest(err.Error())
	}

	return sqlText, args, nil
}

func (d Dialect) applyFilters(builder sqrl.SelectBuilder, filters []model.FilterCondition) (sqrl.SelectBuilder, error) {
	for _, f := range filters {
		if err := f.Validate(); err != nil {
			return builder, err
		}

		expr, err := d.filterExpr(f)
		if err != nil {
			return builder, err
		}

		builder = builder.Where(expr)
	}

	return builder, nil
}

// filterExpr translates one validated FilterCondition into a squirrel
// expression, one case per Operator.
func (d Dialect) filterExpr(f model.FilterCondition) (sqrl.Sqlizer, error) {
	column := d.QuoteIdentifier(f.Field)

	switch f.Operator {
	case model.OpEqual:
		return sqrl.Expr(column+" = ?", scalarValue(f.Value)), nil
	case model.OpNotEqual:
		return sqrl.Expr(column+" <> ?", scalarValue(f.Value)), nil
	case model.OpGreater:
		return sqrl.Expr(column+" > ?", scalarValue(f.Value)), nil
	case model.OpLess:
		return sqrl.Expr(column+" < ?", scalarValue(f.Value)), nil
	case model.OpGreaterEq:
		return sqrl.Expr(column+" >= ?", scalarValue(f.Value)), nil
	case model.OpLessEq:
		return sqrl.Expr(column+" <= ?", scalarValue(f.Value)), nil
	case model.OpLike:
		return sqrl.Expr(column+" LIKE ?", scalarValue(f.Value)), nil
	case model.OpNotLike:
		return sqrl.Expr(column+" NOT LIKE ?", scalarValue(f.Value)), nil
	case model.OpIn:
		return sqrl.Expr(column+" IN ("+placeholders(len(f.Value.List))+")", toAnySlice(f.Value.List)...), nil
	case model.OpNotIn:
		return sqrl.Expr(column+" NOT IN ("+placeholders(len(f.Value.List))+")", toAnySlice(f.Value.List)...), nil
	case model.OpBetween:
		return sqrl.Expr(column+" BETWEEN ? AND ?", f.Value.RangeLo, f.Value.RangeHi), nil
	case model.OpIsNull:
		return sqrl.Expr(column + " IS NULL"), nil
	case model.OpIsNotNull:
		return sqrl.Expr(column + " IS NOT NULL"), nil
	default:
		return nil, errs.NewInvalidRequest("unknown operator " + string(f.Operator))
	}
}

func scalarValue(v model.ValueCondition) any {
	switch v.Kind {
	case model.ValueBool:
		return v.Bool
	case model.ValueString:
		return v.String
	case model.ValueNumber:
		return v.Number
	default:
		return nil
	}
}

func placeholders(n int) string {
	marks := make([]string, n)
	for i := range marks {
		marks[i] = "?"
	}

	return strings.Join(marks, ", ")
}

func toAnySlice(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}

	return out
}
