package database

import (
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/tikevents/tikevents/internal/config"
)

// Dialect captures what differs between the supported stores.
type Dialect struct {
	Name       string // config driver name
	DriverName string // database/sql driver name
	// Returning is true when generated ids are read back with RETURNING
	// instead of LastInsertId.
	Returning bool
}

var (
	MySQL    = Dialect{Name: config.DriverMySQL, DriverName: "mysql"}
	Postgres = Dialect{Name: config.DriverPostgres, DriverName: "postgres", Returning: true}
	SQLite   = Dialect{Name: config.DriverSQLite, DriverName: "sqlite"}
)

// DialectFor resolves a config driver name.
func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case config.DriverMySQL:
		return MySQL, nil
	case config.DriverPostgres:
		return Postgres, nil
	case config.DriverSQLite:
		return SQLite, nil
	}
	return Dialect{}, fmt.Errorf("unsupported driver %q", driver)
}

// BindType is the sqlx placeholder style of the dialect.
func (d Dialect) BindType() int { return sqlx.BindType(d.DriverName) }

// Rebind rewrites ? placeholders into the dialect's style.
func (d Dialect) Rebind(query string) string { return sqlx.Rebind(d.BindType(), query) }

// DSN builds the driver connection string. cfg.DSN is used verbatim when
// set, except that SQLite always gets foreign key enforcement switched on.
func (d Dialect) DSN(cfg config.DBConfig) string {
	switch d.Name {
	case config.DriverMySQL:
		if cfg.DSN != "" {
			return cfg.DSN
		}
		mc := mysql.NewConfig()
		mc.User = cfg.User
		mc.Passwd = cfg.Pass
		mc.Net = "tcp"
		mc.Addr = net.JoinHostPort(cfg.Host, cfg.Port)
		mc.DBName = cfg.Name
		// parseTime=true -> DATE/DATETIME -> time.Time | loc=UTC keeps days stable
		mc.ParseTime = true
		mc.Loc = time.UTC
		// report matched rather than changed rows so an update that
		// rewrites equal values still counts as found
		mc.ClientFoundRows = true
		mc.Params = map[string]string{"charset": "utf8mb4"}
		return mc.FormatDSN()

	case config.DriverPostgres:
		if cfg.DSN != "" {
			return cfg.DSN
		}
		u := url.URL{
			Scheme:   "postgres",
			Host:     net.JoinHostPort(cfg.Host, cfg.Port),
			Path:     "/" + cfg.Name,
			RawQuery: "sslmode=disable",
		}
		if cfg.Pass != "" {
			u.User = url.UserPassword(cfg.User, cfg.Pass)
		} else {
			u.User = url.User(cfg.User)
		}
		return u.String()

	case config.DriverSQLite:
		dsn := cfg.DSN
		if dsn == "" {
			dsn = cfg.Name
		}
		// pragmas are per connection and every operation opens a new one
		if !strings.Contains(dsn, "foreign_keys") {
			sep := "?"
			if strings.Contains(dsn, "?") {
				sep = "&"
			}
			dsn += sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
		}
		return dsn
	}
	return cfg.DSN
}
