package dialect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sqlercore/sqler/dialect"
	"github.com/sqlercore/sqler/model"
)

func ordersQuery() model.BuilderQuery {
	return model.BuilderQuery{
		Table:   "orders",
		Columns: []string{"id", "total"},
		Paging:  model.Paging{Page: 1, Size: 50},
		Orders:  []model.OrderCondition{{Field: "id", Ascending: false}},
		Filters: []model.FilterCondition{
			{Field: "total", Operator: model.OpGreater, Value: model.ValueNumberCondition(100.0)},
		},
	}
}

func TestBuildSelect_MySQL(t *testing.T) {
	sql, args, err := dialect.MySQL.BuildSelect(ordersQuery())
	require.NoError(t, err)
	assert.Equal(t, "SELECT `id`, `total` FROM `orders` WHERE `total` > ? ORDER BY `id` DESC LIMIT 50 OFFSET 0", sql)
	assert.Equal(t, []any{100.0}, args)
}

func TestBuildSelect_Postgres(t *testing.T) {
	sql, args, err := dialect.Postgres.BuildSelect(ordersQuery())
	require.NoError(t, err)
	assert.Equal(t, `SELECT "id", "total" FROM "orders" WHERE "total" > $1 ORDER BY "id" DESC LIMIT 50 OFFSET 0`, sql)
	assert.Equal(t, []any{100.0}, args)
}

func TestBuildSelect_SQLite_InFilter(t *testing.T) {
	req := model.BuilderQuery{
		Table:  "items",
		Paging: model.Paging{Page: 1, Size: 10},
		Filters: []model.FilterCondition{
			{Field: "tag", Operator: model.OpIn, Value: model.ValueListCondition([]string{"a", "b", "c"})},
		},
	}

	sql, args, err := dialect.SQLite.BuildSelect(req)
	require.NoError(t, err)
	assert.Equal(t, `SELECT * FROM "items" WHERE "tag" IN (?, ?, ?) LIMIT 10 OFFSET 0`, sql)
	assert.Equal(t, []any{"a", "b", "c"}, args)
}

func TestBuildSelect_EmptyColumnsUsesStar(t *testing.T) {
	req := model.BuilderQuery{Table: "t", Paging: model.Paging{Page: 1, Size: 1}}
	sql, _, err := dialect.MySQL.BuildSelect(req)
	require.NoError(t, err)
	assert.Contains(t, sql, "SELECT * FROM")
}

func TestBuildSelect_EmptyFiltersOmitsWhere(t *testing.T) {
	req := model.BuilderQuery{Table: "t", Paging: model.Paging{Page: 1, Size: 1}}
	sql, _, err := dialect.Postgres.BuildSelect(req)
	require.NoError(t, err)
	assert.NotContains(t, sql, "WHERE")
}

func TestBuildSelect_InvalidPaging(t *testing.T) {
	req := model.BuilderQuery{Table: "t", Paging: model.Paging{Page: 0, Size: 1}}
	_, _, err := dialect.MySQL.BuildSelect(req)
	assert.Error(t, err)
}

func TestBuildSelect_InvalidFilterPairing(t *testing.T) {
	req := model.BuilderQuery{
		Table:  "t",
		Paging: model.Paging{Page: 1, Size: 1},
		Filters: []model.FilterCondition{
			{Field: "x", Operator: model.OpIn, Value: model.ValueStringCondition("oops")},
		},
	}

	_, _, err := dialect.MySQL.BuildSelect(req)
	assert.Error(t, err)
}

func TestBuildCount_NoOrderNoLimit(t *testing.T) {
	sql, args, err := dialect.MySQL.BuildCount(ordersQuery())
	require.NoError(t, err)
	assert.Equal(t, "SELECT COUNT(*) FROM `orders` WHERE `total` > ?", sql)
	assert.Equal(t, []any{100.0}, args)
}

func TestBuildSelect_Deterministic(t *testing.T) {
	req := ordersQuery()
	sql1, args1, err1 := dialect.Postgres.BuildSelect(req)
	require.NoError(t, err1)
	sql2, args2, err2 := dialect.Postgres.BuildSelect(req)
	require.NoError(t, err2)
	assert.Equal(t, sql1, sql2)
	assert.Equal(t, args1, args2)
}

func TestQuoteIdentifier_DoublesEmbeddedQuote(t *testing.T) {
	assert.Equal(t, `"a""b"`, dialect.Postgres.QuoteIdentifier(`a"b`))
	assert.Equal(t, "`a``b`", dialect.MySQL.QuoteIdentifier("a`b"))
}

func TestFor_UnsupportedKind(t *testing.T) {
	_, err := dialect.For(model.KindRedis)
	assert.Error(t, err)
}
