package database

import (
	"fmt"
	"net"
	"strconv"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"stockledger/internal/config"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite3"
)

// NewConnection opens and pings the configured database. MySQL connections are
// built from the discrete host/user fields unless an explicit DSN is given.
func NewConnection(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	dsn, err := DSN(cfg)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Open(cfg.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if cfg.Driver == DriverSQLite {
		// an in-memory database lives per connection
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
		db.SetMaxIdleConns(cfg.MaxIdleConns)
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return db, nil
}

func DSN(cfg config.DatabaseConfig) (string, error) {
	switch cfg.Driver {
	case DriverMySQL:
		if cfg.DSN != "" {
			return cfg.DSN, nil
		}
		mc := mysql.NewConfig()
		mc.User = cfg.User
		mc.Passwd = cfg.Password
		mc.Net = "tcp"
		mc.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
		mc.DBName = cfg.Name
		mc.ParseTime = true
		mc.ClientFoundRows = true
		return mc.FormatDSN(), nil
	case DriverSQLite:
		if cfg.DSN != "" {
			return cfg.DSN, nil
		}
		return fmt.Sprintf("file:%s.db?_foreign_keys=on", cfg.Name), nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}
