// Package model holds the wire and on-disk shapes shared by every layer:
// data-source identity and connection options, table/column metadata, query
// and exec request/response envelopes, and the small enums (operators,
// paging) that the dialect builder and drivers validate against.
package model

import (
	"encoding/json"

	"github.com/google/uuid"
)

// DataSourceKind tags which of the seven backends a DataSource talks to.
type DataSourceKind string

const (
	KindMySQL      DataSourceKind = "mysql"
	KindPostgres   DataSourceKind = "postgres"
	KindSQLite     DataSourceKind = "sqlite"
	KindOracle     DataSourceKind = "oracle"
	KindSQLServer  DataSourceKind = "sqlserver"
	KindRedis      DataSourceKind = "redis"
	KindMongoDB    DataSourceKind = "mongodb"
)

// DataSource is a persisted data-source definition. Options is the only
// place credentials live; its concrete type must match Kind (enforced by
// NewDataSource and by Validate).
type DataSource struct {
	ID      uuid.UUID      `json:"id"`
	Name    string         `json:"name"`
	Kind    DataSourceKind `json:"kind"`
	Options BackendOptions `json:"options"`
}

// NewDataSource creates a DataSource with a fresh id, rejecting a Kind/
// Options mismatch up front so the invariant always holds for anything
// that leaves this constructor.
func NewDataSource(name string, options BackendOptions) (*DataSource, error) {
	if options == nil {
		return nil, errInvalidOptions("options must not be nil")
	}

	ds := &DataSource{
		ID:      uuid.New(),
		Name:    name,
		Kind:    options.Kind(),
		Options: options,
	}

	return ds, ds.Validate()
}

// Validate checks the Kind/Options invariant.
func (d *DataSource) Validate() error {
	if d.Options == nil {
		return errInvalidOptions("data source has no options")
	}

	if d.Options.Kind() != d.Kind {
		return errInvalidOptions("options kind does not match data source kind")
	}

	return nil
}

// dataSourceWire is the on-disk/wire shape of DataSource: Options is decoded
// into a concrete struct only after Kind is known, since BackendOptions is
// an interface and encoding/json can't pick a concrete type on its own.
type dataSourceWire struct {
	ID      uuid.UUID       `json:"id"`
	Name    string          `json:"name"`
	Kind    DataSourceKind  `json:"kind"`
	Options json.RawMessage `json:"options"`
}

// MarshalJSON emits {id, name, kind, options} with options shaped by the
// concrete BackendOptions implementation.
func (d DataSource) MarshalJSON() ([]byte, error) {
	var raw json.RawMessage

	if d.Options != nil {
		encoded, err := json.Marshal(d.Options)
		if err != nil {
			return nil, err
		}

		raw = encoded
	}

	return json.Marshal(dataSourceWire{ID: d.ID, Name: d.Name, Kind: d.Kind, Options: raw})
}

// UnmarshalJSON decodes options into the concrete struct selected by Kind.
func (d *DataSource) UnmarshalJSON(data []byte) error {
	var wire dataSourceWire

	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	options, err := decodeOptions(wire.Kind, wire.Options)
	if err != nil {
		return err
	}

	d.ID = wire.ID
	d.Name = wire.Name
	d.Kind = wire.Kind
	d.Options = options

	return nil
}

func decodeOptions(kind DataSourceKind, raw json.RawMessage) (BackendOptions, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	switch kind {
	case KindMySQL:
		var o MySQLOptions
		if err := json.Unmarshal(raw, &o); err != nil {
			return nil, err
		}
		return o, nil
	case KindPostgres:
		var o PostgresOptions
		if err := json.Unmarshal(raw, &o); err != nil {
			return nil, err
		}
		return o, nil
	case KindSQLite:
		var o SQLiteOptions
		if err := json.Unmarshal(raw, &o); err != nil {
			return nil, err
		}
		return o, nil
	case KindOracle:
		var o OracleOptions
		if err := json.Unmarshal(raw, &o); err != nil {
			return nil, err
		}
		return o, nil
	case KindSQLServer:
		var o SQLServerOptions
		if err := json.Unmarshal(raw, &o); err != nil {
			return nil, err
		}
		return o, nil
	case KindRedis:
		var o RedisOptions
		if err := json.Unmarshal(raw, &o); err != nil {
			return nil, err
		}
		return o, nil
	case KindMongoDB:
		var o MongoOptions
		if err := json.Unmarshal(raw, &o); err != nil {
			return nil, err
		}
		return o, nil
	default:
		return nil, errInvalidOptions("unknown data source kind: " + string(kind))
	}
}
