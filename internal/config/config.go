package config // package config loads application configuration from environment variables

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Supported store drivers.
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds all runtime configuration values. It is built once at
// startup by Load and passed by value afterwards; nothing reads the
// environment again.
type Config struct {
	Env      string // application environment (e.g. "dev", "prod")
	Port     string // HTTP port to listen on
	LogLevel string // debug | info | warn | error

	DB DBConfig // store connection target

	JWTSecret            string // secret used to sign operator JWTs
	AccessTTLMin         int    // operator token time-to-live in minutes
	BcryptCost           int    // bcrypt cost used by -hash-password
	OperatorEmail        string // login name of the operator account
	OperatorPasswordHash string // bcrypt hash of the operator password

	AMQPURL        string        // broker URL for sale notifications; empty disables publishing
	RequestTimeout time.Duration // per-request context timeout on the HTTP layer

	RateLimit RateLimitConfig
	Redis     RedisConfig
}

// DBConfig describes how to reach the relational store. Either DSN is set
// directly or it is assembled from the discrete fields by the dialect.
type DBConfig struct {
	Driver          string        // mysql | postgres | sqlite
	DSN             string        // full driver DSN, takes precedence over the fields below
	User            string        // database username
	Pass            string        // database password (optional)
	Host            string        // database host address
	Port            string        // database port number
	Name            string        // database name (file path for sqlite)
	MaxOpenConns    int           // upper bound on simultaneously open connections
	MaxIdleConns    int           // 0 closes every connection when an operation releases it
	ConnMaxLifetime time.Duration // recycle connections older than this
	PingTimeout     time.Duration // startup reachability check
}

// Load reads the process environment (after merging an optional .env file)
// and returns a Config. Every missing required variable is reported in the
// returned error.
func Load() (Config, error) {
	loadDotenv()

	var missing []string
	must := func(key string) string {
		v, ok := os.LookupEnv(key)
		if !ok || strings.TrimSpace(v) == "" {
			missing = append(missing, key)
		}
		return v
	}

	db, dbErr := loadDB()
	cfg := Config{
		Env:                  envStr("APP_ENV", "dev"),
		Port:                 envStr("APP_PORT", "8080"),
		LogLevel:             envStr("LOG_LEVEL", "info"),
		DB:                   db,
		JWTSecret:            must("JWT_SECRET"),
		AccessTTLMin:         envInt("ACCESS_TOKEN_TTL_MIN", 60),
		BcryptCost:           bcryptCost(),
		OperatorEmail:        strings.ToLower(strings.TrimSpace(must("OPERATOR_EMAIL"))),
		OperatorPasswordHash: must("OPERATOR_PASSWORD_HASH"),
		AMQPURL:              firstNonEmpty(os.Getenv("RABBITMQ_URL"), os.Getenv("AMQP_URL")),
		RequestTimeout:       envDur("REQUEST_TIMEOUT", 10*time.Second),
		RateLimit:            LoadRateLimitConfig(),
		Redis:                LoadRedisConfig(),
	}

	var errs []error
	if dbErr != nil {
		errs = append(errs, dbErr)
	}
	if len(missing) > 0 {
		errs = append(errs, fmt.Errorf("missing required env vars: %s", strings.Join(missing, ", ")))
	}
	if cfg.AccessTTLMin <= 0 {
		errs = append(errs, errors.New("ACCESS_TOKEN_TTL_MIN must be positive"))
	}
	if cfg.RequestTimeout <= 0 {
		errs = append(errs, errors.New("REQUEST_TIMEOUT must be positive"))
	}
	return cfg, errors.Join(errs...)
}

// LoadBcryptCost reads BCRYPT_COST for the -hash-password mode, which
// needs nothing else from the environment.
func LoadBcryptCost() int {
	loadDotenv()
	return bcryptCost()
}

func bcryptCost() int { return envInt("BCRYPT_COST", 12) }

// LoadDB reads only the store settings. It backs the -migrate mode, which
// has no use for operator credentials.
func LoadDB() (DBConfig, error) {
	loadDotenv()
	return loadDB()
}

func loadDB() (DBConfig, error) {
	db := DBConfig{
		Driver:          strings.ToLower(envStr("DB_DRIVER", DriverMySQL)),
		DSN:             os.Getenv("DB_DSN"),
		User:            os.Getenv("DB_USER"),
		Pass:            os.Getenv("DB_PASS"),
		Host:            os.Getenv("DB_HOST"),
		Port:            os.Getenv("DB_PORT"),
		Name:            os.Getenv("DB_NAME"),
		MaxOpenConns:    envInt("DB_MAX_OPEN_CONNS", 10),
		MaxIdleConns:    envInt("DB_MAX_IDLE_CONNS", 0),
		ConnMaxLifetime: envDur("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		PingTimeout:     envDur("DB_PING_TIMEOUT", 5*time.Second),
	}
	switch db.Driver {
	case DriverMySQL, DriverPostgres:
		if db.DSN != "" {
			return db, nil
		}
		var missing []string
		for key, v := range map[string]string{"DB_USER": db.User, "DB_HOST": db.Host, "DB_PORT": db.Port, "DB_NAME": db.Name} {
			if v == "" {
				missing = append(missing, key)
			}
		}
		if len(missing) > 0 {
			sort.Strings(missing)
			return db, fmt.Errorf("missing required env vars for %s: %s (or set DB_DSN)", db.Driver, strings.Join(missing, ", "))
		}
	case DriverSQLite:
		if db.DSN == "" && db.Name == "" {
			return db, errors.New("sqlite requires DB_DSN or DB_NAME (database file path)")
		}
	default:
		return db, fmt.Errorf("unsupported DB_DRIVER %q", db.Driver)
	}
	if db.MaxIdleConns < 0 {
		db.MaxIdleConns = 0
	}
	return db, nil
}

// loadDotenv merges a .env file from the working directory. A missing file
// is not an error; values already present in the environment win.
func loadDotenv() {
	path := envStr("DOTENV_PATH", ".env")
	if _, err := os.Stat(path); err == nil {
		_ = godotenv.Load(path)
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func envStr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func envBool(k string, d bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	switch v {
	case "1", "true", "TRUE", "True", "yes", "YES", "on", "ON":
		return true
	case "0", "false", "FALSE", "False", "no", "NO", "off", "OFF":
		return false
	}
	return d
}

func envInt(k string, d int) int {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return d
}

func envDur(k string, d time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if dur, err := time.ParseDuration(v); err == nil {
		return dur
	}
	return d
}
