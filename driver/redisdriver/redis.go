// Package redisdriver implements the driver.Driver and driver.Session
// contracts for Redis using go-redis/v9: redis.NewClient or
// redis.NewClusterClient plus context-scoped calls.
package redisdriver

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/redis/go-redis/v9"

	"github.com/sqlercore/sqler/common"
	"github.com/sqlercore/sqler/driver"
	"github.com/sqlercore/sqler/errs"
	"github.com/sqlercore/sqler/model"
)

func init() {
	driver.Register(model.KindRedis, Driver{})
}

const opTimeout = 10 * time.Second

// Driver is the stateless Redis driver factory.
type Driver struct{}

// SupportedKinds returns Redis's value-type vocabulary.
func (Driver) SupportedKinds() []driver.ColumnKind {
	return []driver.ColumnKind{"string", "hash", "list", "set", "zset", "stream"}
}

func asRedisOptions(options model.BackendOptions) (model.RedisOptions, error) {
	opts, ok := options.(model.RedisOptions)
	if !ok {
		return model.RedisOptions{}, errs.NewInvalidRequest("expected redis options")
	}

	return opts, nil
}

func target(opts model.RedisOptions) string {
	if opts.Mode == model.RedisModeCluster {
		return strings.Join(opts.Nodes, ",")
	}

	return fmt.Sprintf("%s:%d", opts.Host, opts.Port)
}

func newClient(opts model.RedisOptions) redis.UniversalClient {
	switch opts.Mode {
	case model.RedisModeCluster:
		return redis.NewClusterClient(&redis.ClusterOptions{
			Addrs:    opts.Nodes,
			Username: opts.User,
			Password: opts.Password,
		})
	default:
		return redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", opts.Host, opts.Port),
			Username: opts.User,
			Password: opts.Password,
		})
	}
}

// CheckConnection opens and pings a probe connection, then tears it down.
func (Driver) CheckConnection(options model.BackendOptions, logger common.Logger) error {
	opts, err := asRedisOptions(options)
	if err != nil {
		return err
	}

	addr := target(opts)
	logger.Infof("redis: connecting to %s", addr)

	client := newClient(opts)
	defer func() {
		client.Close()
		logger.Infof("redis: disconnected from %s", addr)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return errs.NewConnectionFailed("redis ping failed", err)
	}

	logger.Infof("redis: connected to %s", addr)

	return nil
}

// CreateSession establishes a live, caller-owned Redis session.
func (Driver) CreateSession(options model.BackendOptions, logger common.Logger) (driver.Session, error) {
	opts, err := asRedisOptions(options)
	if err != nil {
		return nil, err
	}

	addr := target(opts)
	logger.Infof("redis: connecting to %s", addr)

	client := newClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, errs.NewConnectionFailed("redis ping failed", err)
	}

	logger.Infof("redis: connected to %s", addr)

	return &Session{client: client, logger: logger, target: addr}, nil
}

// Session is a live Redis connection.
type Session struct {
	client redis.UniversalClient
	logger common.Logger
	target string
}

// Query runs a Command request and wraps the reply in a Value response.
// SQL-shaped and document-shaped requests are NotSupported.
func (s *Session) Query(req model.QueryRequest) (model.QueryResponse, error) {
	if req.Kind != model.QueryKindCommand {
		return model.QueryResponse{}, errs.NewNotSupported("redis only accepts command query requests")
	}

	s.logger.Debugf("redis: dispatching command %s", req.Command.Name)

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	reply, err := s.runCommand(ctx, req.Command)
	if err != nil && !isRedisNil(err) {
		return model.QueryResponse{}, errs.NewBackendError("redis command failed", err)
	}

	encoded, err := json.Marshal(replyToJSON(reply))
	if err != nil {
		return model.QueryResponse{}, errs.NewEncodingError("encoding redis reply failed", err)
	}

	return model.NewValueResponse(encoded), nil
}

// Exec runs a Command request and returns a driver-estimated affected count
// derived from the reply shape. The heuristic is intentionally not
// tightened further; callers needing precision should use Query instead.
func (s *Session) Exec(req model.ExecRequest) (model.ExecResponse, error) {
	if req.Kind != model.ExecKindCommand {
		return model.ExecResponse{}, errs.NewNotSupported("redis only accepts command exec requests")
	}

	s.logger.Debugf("redis: dispatching command %s", req.Command.Name)

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	reply, err := s.runCommand(ctx, req.Command)
	if err != nil && !isRedisNil(err) {
		return model.ExecResponse{}, errs.NewBackendError("redis command failed", err)
	}

	return model.ExecResponse{Affected: estimateAffected(reply)}, nil
}

func (s *Session) runCommand(ctx context.Context, cmd *model.CommandQuery) (any, error) {
	args := make([]any, 0, len(cmd.Args)+1)
	args = append(args, cmd.Name)
	for _, a := range cmd.Args {
		args = append(args, a)
	}

	return s.client.Do(ctx, args...).Result()
}

func isRedisNil(err error) bool {
	return err == redis.Nil
}

// replyToJSON converts a go-redis reply into a value that encoding/json can
// render: integers to JSON numbers, strings attempt UTF-8 and fall back to
// base-16, arrays recurse, nil becomes null.
func replyToJSON(reply any) any {
	switch v := reply.(type) {
	case nil:
		return nil
	case int64:
		return v
	case string:
		return stringifyBulkOrSimple(v)
	case []byte:
		return stringifyBulkOrSimple(string(v))
	case []any:
		out := make([]any, len(v))
		for i, elem := range v {
			out[i] = replyToJSON(elem)
		}

		return out
	default:
		return fmt.Sprintf("%v", v)
	}
}

func stringifyBulkOrSimple(s string) string {
	if utf8.ValidString(s) {
		return s
	}

	return hex.EncodeToString([]byte(s))
}

// estimateAffected maps a reply onto an affected-row-like count: 1 for
// "OK"/simple string success, the integer itself for integer replies, list
// length for array replies, 0 otherwise.
func estimateAffected(reply any) uint64 {
	switch v := reply.(type) {
	case nil:
		return 0
	case int64:
		if v < 0 {
			return 0
		}

		return uint64(v)
	case string:
		if strings.EqualFold(v, "OK") {
			return 1
		}

		return 1
	case []any:
		return uint64(len(v))
	default:
		return 0
	}
}

// Tables is NotSupported for Redis.
func (s *Session) Tables() ([]model.TableInfo, error) {
	return nil, errs.NewNotSupported("redis has no table catalog")
}

// Columns is NotSupported for Redis.
func (s *Session) Columns(string) ([]model.ColumnInfo, error) {
	return nil, errs.NewNotSupported("redis has no column metadata")
}

// Close releases the underlying connection.
func (s *Session) Close() error {
	err := s.client.Close()
	s.logger.Infof("redis: disconnected from %s", s.target)

	return err
}
