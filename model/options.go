package model

// BackendOptions is the tagged union of per-backend connection options.
// Each concrete type's Kind() return value is the discriminant;
// DataSource.Validate enforces that it matches the owning DataSource.Kind.
type BackendOptions interface {
	Kind() DataSourceKind
}

// MySQLOptions connects to a MySQL/MariaDB server.
type MySQLOptions struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	Database string `json:"database"`
	TLS      bool   `json:"tls"`
}

func (MySQLOptions) Kind() DataSourceKind { return KindMySQL }

// NewMySQLOptions fills in the documented defaults (127.0.0.1:3306, root)
// for any zero-valued field.
func NewMySQLOptions(o MySQLOptions) MySQLOptions {
	if o.Host == "" {
		o.Host = "127.0.0.1"
	}

	if o.Port == 0 {
		o.Port = 3306
	}

	if o.User == "" {
		o.User = "root"
	}

	return o
}

// PostgresOptions connects to a PostgreSQL server.
type PostgresOptions struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	Database string `json:"database"`
	TLS      bool   `json:"tls"`
}

func (PostgresOptions) Kind() DataSourceKind { return KindPostgres }

// NewPostgresOptions fills in the documented defaults (127.0.0.1:5432, postgres).
func NewPostgresOptions(o PostgresOptions) PostgresOptions {
	if o.Host == "" {
		o.Host = "127.0.0.1"
	}

	if o.Port == 0 {
		o.Port = 5432
	}

	if o.User == "" {
		o.User = "postgres"
	}

	return o
}

// SQLiteOptions opens a local SQLite file.
type SQLiteOptions struct {
	FilePath   string `json:"filepath"`
	ReadOnly   bool   `json:"readonly"`
	Passphrase string `json:"passphrase,omitempty"`
}

func (SQLiteOptions) Kind() DataSourceKind { return KindSQLite }

// OracleAuth selects how an Oracle connection identifies its target database.
type OracleAuth struct {
	ServiceName string `json:"serviceName,omitempty"`
	SID         string `json:"sid,omitempty"`
}

// OracleOptions connects to an Oracle server. Exactly one of
// Target.ServiceName / Target.SID must be set.
type OracleOptions struct {
	Host     string     `json:"host"`
	Port     int        `json:"port"`
	Target   OracleAuth `json:"target"`
	User     string     `json:"user"`
	Password string     `json:"password"`
	Wallet   string     `json:"wallet,omitempty"`
}

func (OracleOptions) Kind() DataSourceKind { return KindOracle }

// NewOracleOptions fills in the documented defaults (127.0.0.1:1521,
// ServiceName=xe, user=system).
func NewOracleOptions(o OracleOptions) OracleOptions {
	if o.Host == "" {
		o.Host = "127.0.0.1"
	}

	if o.Port == 0 {
		o.Port = 1521
	}

	if o.Target.ServiceName == "" && o.Target.SID == "" {
		o.Target.ServiceName = "xe"
	}

	if o.User == "" {
		o.User = "system"
	}

	return o
}

// SQLServerAuthMode selects SQL Server authentication.
type SQLServerAuthMode string

const (
	SQLServerAuthSQL         SQLServerAuthMode = "sql"
	SQLServerAuthIntegrated  SQLServerAuthMode = "integrated"
)

// SQLServerOptions connects to a SQL Server instance.
type SQLServerOptions struct {
	Host     string            `json:"host"`
	Port     int               `json:"port"`
	Database string            `json:"database"`
	User     string            `json:"user"`
	Password string            `json:"password"`
	Auth     SQLServerAuthMode `json:"auth"`
	Instance string            `json:"instance,omitempty"`
}

func (SQLServerOptions) Kind() DataSourceKind { return KindSQLServer }

// NewSQLServerOptions fills in the documented defaults (127.0.0.1:1433, sql auth).
func NewSQLServerOptions(o SQLServerOptions) SQLServerOptions {
	if o.Host == "" {
		o.Host = "127.0.0.1"
	}

	if o.Port == 0 {
		o.Port = 1433
	}

	if o.Auth == "" {
		o.Auth = SQLServerAuthSQL
	}

	return o
}

// RedisMode selects standalone vs. cluster topology.
type RedisMode string

const (
	RedisModeStandalone RedisMode = "standalone"
	RedisModeCluster    RedisMode = "cluster"
)

// RedisOptions connects to a Redis server or cluster. In standalone mode,
// Host/Port are used; in cluster mode, Nodes holds "host:port" entries.
type RedisOptions struct {
	Mode     RedisMode `json:"mode"`
	Host     string    `json:"host,omitempty"`
	Port     int       `json:"port,omitempty"`
	Nodes    []string  `json:"nodes,omitempty"`
	User     string    `json:"user,omitempty"`
	Password string    `json:"password,omitempty"`
	TLS      bool      `json:"tls"`
}

func (RedisOptions) Kind() DataSourceKind { return KindRedis }

// NewRedisOptions fills in the documented defaults (127.0.0.1:6379, standalone).
func NewRedisOptions(o RedisOptions) RedisOptions {
	if o.Mode == "" {
		o.Mode = RedisModeStandalone
	}

	if o.Mode == RedisModeStandalone && o.Host == "" {
		o.Host = "127.0.0.1"
	}

	if o.Mode == RedisModeStandalone && o.Port == 0 {
		o.Port = 6379
	}

	return o
}

// MongoOptions connects to a MongoDB deployment, either via a full
// connection string or a host list plus discrete fields.
type MongoOptions struct {
	ConnectionString string   `json:"connectionString,omitempty"`
	Hosts            []string `json:"hosts,omitempty"`
	Database         string   `json:"database"`
	ReplicaSet       string   `json:"replicaSet,omitempty"`
	AuthSource       string   `json:"authSource,omitempty"`
	User             string   `json:"user,omitempty"`
	Password         string   `json:"password,omitempty"`
	TLS              bool     `json:"tls"`
}

func (MongoOptions) Kind() DataSourceKind { return KindMongoDB }

// NewMongoOptions fills in the documented default (127.0.0.1:27017) when
// neither a connection string nor a host list was supplied.
func NewMongoOptions(o MongoOptions) MongoOptions {
	if o.ConnectionString == "" && len(o.Hosts) == 0 {
		o.Hosts = []string{"127.0.0.1:27017"}
	}

	return o
}
