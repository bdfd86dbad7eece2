// Package mongodriver implements the driver.Driver and driver.Session
// contracts for MongoDB using go.mongodb.org/mongo-driver: mongo.Connect
// against a connection-string URI, with context-scoped calls.
package mongodriver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sqlercore/sqler/common"
	"github.com/sqlercore/sqler/driver"
	"github.com/sqlercore/sqler/errs"
	"github.com/sqlercore/sqler/model"
)

func init() {
	driver.Register(model.KindMongoDB, Driver{})
}

const opTimeout = 15 * time.Second

// Driver is the stateless MongoDB driver factory.
type Driver struct{}

// SupportedKinds returns MongoDB's BSON type vocabulary.
func (Driver) SupportedKinds() []driver.ColumnKind {
	return []driver.ColumnKind{
		"string", "int32", "int64", "double", "bool", "date", "objectId", "array", "object", "null",
	}
}

func asMongoOptions(options model.BackendOptions) (model.MongoOptions, error) {
	opts, ok := options.(model.MongoOptions)
	if !ok {
		return model.MongoOptions{}, errs.NewInvalidRequest("expected mongodb options")
	}

	return opts, nil
}

func connectionURI(opts model.MongoOptions) string {
	if opts.ConnectionString != "" {
		return opts.ConnectionString
	}

	scheme := "mongodb"
	query := []string{}

	if opts.ReplicaSet != "" {
		query = append(query, "replicaSet="+opts.ReplicaSet)
	}

	if opts.AuthSource != "" {
		query = append(query, "authSource="+opts.AuthSource)
	}

	if opts.TLS {
		query = append(query, "tls=true")
	}

	userInfo := ""
	if opts.User != "" {
		userInfo = opts.User + ":" + opts.Password + "@"
	}

	uri := fmt.Sprintf("%s://%s%s/%s", scheme, userInfo, strings.Join(opts.Hosts, ","), opts.Database)
	if len(query) > 0 {
		uri += "?" + strings.Join(query, "&")
	}

	return uri
}

// target returns a credential-free description of the connection for
// logging: the connection string and discrete-field DSN forms both embed
// the password, so this never reuses connectionURI's output.
func target(opts model.MongoOptions) string {
	return fmt.Sprintf("%s/%s", strings.Join(opts.Hosts, ","), opts.Database)
}

func connect(ctx context.Context, opts model.MongoOptions) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(connectionURI(opts)))
	if err != nil {
		return nil, errs.NewConnectionFailed("connecting to mongodb failed", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errs.NewConnectionFailed("mongodb ping failed", err)
	}

	return client, nil
}

// CheckConnection opens and pings a probe connection, then tears it down.
func (Driver) CheckConnection(opts model.BackendOptions, logger common.Logger) error {
	mongoOpts, err := asMongoOptions(opts)
	if err != nil {
		return err
	}

	addr := target(mongoOpts)
	logger.Infof("mongodb: connecting to %s", addr)

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	client, err := connect(ctx, mongoOpts)
	if err != nil {
		return err
	}

	logger.Infof("mongodb: connected to %s", addr)

	err = client.Disconnect(ctx)
	logger.Infof("mongodb: disconnected from %s", addr)

	return err
}

// CreateSession establishes a live, caller-owned MongoDB session.
func (Driver) CreateSession(opts model.BackendOptions, logger common.Logger) (driver.Session, error) {
	mongoOpts, err := asMongoOptions(opts)
	if err != nil {
		return nil, err
	}

	addr := target(mongoOpts)
	logger.Infof("mongodb: connecting to %s", addr)

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	client, err := connect(ctx, mongoOpts)
	if err != nil {
		return nil, err
	}

	logger.Infof("mongodb: connected to %s", addr)

	return &Session{client: client, database: mongoOpts.Database, logger: logger, target: addr}, nil
}

// Session is a live MongoDB connection scoped to one database.
type Session struct {
	client   *mongo.Client
	database string
	logger   common.Logger
	target   string
}

// Query parses filter_json as a JSON object (empty object matches all
// documents), runs find, and returns the matches as Documents.
func (s *Session) Query(req model.QueryRequest) (model.QueryResponse, error) {
	if req.Kind != model.QueryKindDocument {
		return model.QueryResponse{}, errs.NewNotSupported("mongodb only accepts document query requests")
	}

	s.logger.Debugf("mongodb: dispatching find on %s", req.Document.Collection)

	filter, err := parseFilter(req.Document.FilterJSON)
	if err != nil {
		return model.QueryResponse{}, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	collection := s.client.Database(s.database).Collection(req.Document.Collection)

	cursor, err := collection.Find(ctx, filter)
	if err != nil {
		return model.QueryResponse{}, errs.NewBackendError("mongodb find failed", err)
	}
	defer cursor.Close(ctx)

	var documents []json.RawMessage
	for cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			return model.QueryResponse{}, errs.NewBackendError("decoding mongodb document failed", err)
		}

		encoded, err := json.Marshal(doc)
		if err != nil {
			return model.QueryResponse{}, errs.NewEncodingError("encoding mongodb document failed", err)
		}

		documents = append(documents, encoded)
	}

	if err := cursor.Err(); err != nil {
		return model.QueryResponse{}, errs.NewBackendError("iterating mongodb cursor failed", err)
	}

	return model.NewDocumentsResponse(documents), nil
}

// Exec performs the Insert/Update/Delete operation named by req and returns
// the server-reported affected count.
func (s *Session) Exec(req model.ExecRequest) (model.ExecResponse, error) {
	if req.Kind != model.ExecKindDocument {
		return model.ExecResponse{}, errs.NewNotSupported("mongodb only accepts document exec requests")
	}

	s.logger.Debugf("mongodb: dispatching %s on %s", req.Document.Op.Kind, req.Document.Collection)

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	collection := s.client.Database(s.database).Collection(req.Document.Collection)

	switch req.Document.Op.Kind {
	case model.DocOpInsert:
		return s.execInsert(ctx, collection, req.Document.Op.DocJSON)
	case model.DocOpUpdate:
		return s.execUpdate(ctx, collection, req.Document.Op.FilterJSON, req.Document.Op.UpdateJSON)
	case model.DocOpDelete:
		return s.execDelete(ctx, collection, req.Document.Op.FilterJSON)
	default:
		return model.ExecResponse{}, errs.NewInvalidRequest("unknown document op kind")
	}
}

func (s *Session) execInsert(ctx context.Context, collection *mongo.Collection, docJSON string) (model.ExecResponse, error) {
	doc, err := parseFilter(docJSON)
	if err != nil {
		return model.ExecResponse{}, err
	}

	if _, err := collection.InsertOne(ctx, doc); err != nil {
		return model.ExecResponse{}, errs.NewBackendError("mongodb insert failed", err)
	}

	return model.ExecResponse{Affected: 1}, nil
}

func (s *Session) execUpdate(ctx context.Context, collection *mongo.Collection, filterJSON, updateJSON string) (model.ExecResponse, error) {
	filter, err := parseFilter(filterJSON)
	if err != nil {
		return model.ExecResponse{}, err
	}

	update, err := parseFilter(updateJSON)
	if err != nil {
		return model.ExecResponse{}, err
	}

	result, err := collection.UpdateMany(ctx, filter, update)
	if err != nil {
		return model.ExecResponse{}, errs.NewBackendError("mongodb update failed", err)
	}

	return model.ExecResponse{Affected: uint64(result.ModifiedCount)}, nil
}

func (s *Session) execDelete(ctx context.Context, collection *mongo.Collection, filterJSON string) (model.ExecResponse, error) {
	filter, err := parseFilter(filterJSON)
	if err != nil {
		return model.ExecResponse{}, err
	}

	result, err := collection.DeleteMany(ctx, filter)
	if err != nil {
		return model.ExecResponse{}, errs.NewBackendError("mongodb delete failed", err)
	}

	return model.ExecResponse{Affected: uint64(result.DeletedCount)}, nil
}

func parseFilter(filterJSON string) (bson.M, error) {
	if strings.TrimSpace(filterJSON) == "" {
		return bson.M{}, nil
	}

	var filter bson.M
	if err := json.Unmarshal([]byte(filterJSON), &filter); err != nil {
		return nil, errs.NewInvalidRequest("invalid filter JSON: " + err.Error())
	}

	return filter, nil
}

// Tables lists the collections of the configured database.
func (s *Session) Tables() ([]model.TableInfo, error) {
	s.logger.Debug("mongodb: dispatching list collections")

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	names, err := s.client.Database(s.database).ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return nil, errs.NewBackendError("listing mongodb collections failed", err)
	}

	tables := make([]model.TableInfo, len(names))
	for i, name := range names {
		tables[i] = model.TableInfo{Name: name}
	}

	return tables, nil
}

// Columns is NotSupported for MongoDB: documents are schemaless.
func (s *Session) Columns(string) ([]model.ColumnInfo, error) {
	return nil, errs.NewNotSupported("mongodb collections have no fixed column schema")
}

// Close disconnects the underlying client.
func (s *Session) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	err := s.client.Disconnect(ctx)
	s.logger.Infof("mongodb: disconnected from %s", s.target)

	return err
}
