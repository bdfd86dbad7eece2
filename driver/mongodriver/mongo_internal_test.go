package mongodriver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/sqlercore/sqler/model"
)

func TestParseFilter_Empty(t *testing.T) {
	filter, err := parseFilter("")
	assert.NoError(t, err)
	assert.Equal(t, bson.M{}, filter)
}

func TestParseFilter_MatchAll(t *testing.T) {
	filter, err := parseFilter("{}")
	assert.NoError(t, err)
	assert.Equal(t, bson.M{}, filter)
}

func TestParseFilter_Invalid(t *testing.T) {
	_, err := parseFilter("not json")
	assert.Error(t, err)
}

func TestConnectionURI_PrefersExplicitConnectionString(t *testing.T) {
	uri := connectionURI(model.MongoOptions{ConnectionString: "mongodb://explicit"})
	assert.Equal(t, "mongodb://explicit", uri)
}

func TestConnectionURI_BuildsFromHosts(t *testing.T) {
	uri := connectionURI(model.MongoOptions{
		Hosts:      []string{"127.0.0.1:27017"},
		Database:   "app",
		ReplicaSet: "rs0",
	})
	assert.Equal(t, "mongodb://127.0.0.1:27017/app?replicaSet=rs0", uri)
}
