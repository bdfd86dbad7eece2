package model_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sqlercore/sqler/model"
)

func TestNewDataSource_KindMatchesOptions(t *testing.T) {
	ds, err := model.NewDataSource("local mysql", model.NewMySQLOptions(model.MySQLOptions{Database: "app"}))
	require.NoError(t, err)
	assert.Equal(t, model.KindMySQL, ds.Kind)
	assert.NotEqual(t, ds.ID.String(), "")
}

func TestNewDataSource_NilOptionsRejected(t *testing.T) {
	_, err := model.NewDataSource("broken", nil)
	assert.Error(t, err)
}

func TestDataSource_Validate_KindMismatch(t *testing.T) {
	ds := &model.DataSource{
		Kind:    model.KindPostgres,
		Options: model.NewMySQLOptions(model.MySQLOptions{}),
	}
	assert.Error(t, ds.Validate())
}

func TestDataSource_JSONRoundTrip(t *testing.T) {
	original, err := model.NewDataSource("prod redis", model.NewRedisOptions(model.RedisOptions{}))
	require.NoError(t, err)

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded model.DataSource
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, original.ID, decoded.ID)
	assert.Equal(t, original.Name, decoded.Name)
	assert.Equal(t, original.Kind, decoded.Kind)
	assert.Equal(t, original.Options, decoded.Options)
	assert.NoError(t, decoded.Validate())
}

func TestDataSource_JSONRoundTrip_AllKinds(t *testing.T) {
	sources := []model.BackendOptions{
		model.NewMySQLOptions(model.MySQLOptions{Database: "d"}),
		model.NewPostgresOptions(model.PostgresOptions{Database: "d"}),
		model.SQLiteOptions{FilePath: "/tmp/x.db"},
		model.NewOracleOptions(model.OracleOptions{}),
		model.NewSQLServerOptions(model.SQLServerOptions{Database: "d"}),
		model.NewRedisOptions(model.RedisOptions{}),
		model.NewMongoOptions(model.MongoOptions{Database: "d"}),
	}

	for _, options := range sources {
		original, err := model.NewDataSource("name", options)
		require.NoError(t, err)

		data, err := json.Marshal(original)
		require.NoError(t, err)

		var decoded model.DataSource
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, original.Options, decoded.Options, "kind=%s", options.Kind())
	}
}
