// Package database owns the bounded connection pool that every record
// operation borrows from. Two backends share the Pool interface: pgxpool for
// Postgres and database/sql with go-sql-driver for MySQL.
package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"legal-roster/logger"
)

// Driver names a pool backend
type Driver string

const (
	DriverPostgres Driver = "postgres"
	DriverMySQL    Driver = "mysql"
)

var (
	ErrConnectivity  = errors.New("database unreachable")
	ErrInvalidConfig = errors.New("invalid database config")
)

const redactedPassword = "********"

// Config holds everything needed to build a pool
type Config struct {
	Driver         Driver
	Host           string
	Port           int
	User           string
	Password       string
	Database       string
	PoolName       string
	PoolSize       int
	ResetSession   bool
	ConnectTimeout time.Duration
	SSLMode        string // Postgres only
}

// Validate checks the fields the pool cannot start without
func (c Config) Validate() error {
	var problems []string
	switch c.Driver {
	case DriverPostgres, DriverMySQL:
	default:
		problems = append(problems, fmt.Sprintf("unsupported driver %q", c.Driver))
	}
	if strings.TrimSpace(c.Host) == "" {
		problems = append(problems, "host is required")
	}
	if strings.TrimSpace(c.Database) == "" {
		problems = append(problems, "database name is required")
	}
	if c.PoolSize <= 0 {
		problems = append(problems, fmt.Sprintf("pool size must be positive, got %d", c.PoolSize))
	}
	if c.Port < 0 || c.Port > 65535 {
		problems = append(problems, fmt.Sprintf("port out of range: %d", c.Port))
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// Redacted returns a view of the config that is safe to log
func (c Config) Redacted() map[string]interface{} {
	password := ""
	if c.Password != "" {
		password = redactedPassword
	}
	return map[string]interface{}{
		"driver":        string(c.Driver),
		"host":          c.Host,
		"port":          c.port(),
		"user":          c.User,
		"password":      password,
		"database":      c.Database,
		"pool_name":     c.PoolName,
		"pool_size":     c.PoolSize,
		"reset_session": c.ResetSession,
	}
}

// port falls back to the driver's well-known port
func (c Config) port() int {
	if c.Port > 0 {
		return c.Port
	}
	if c.Driver == DriverMySQL {
		return 3306
	}
	return 5432
}

// Rows is the subset of a result set the record mapping needs.
// pgx.Rows satisfies it directly.
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
}

// Conn is one connection borrowed from a Pool. It is owned by a single
// caller until Release is called.
type Conn interface {
	Query(ctx context.Context, query string, args ...any) (Rows, error)
	// Exec runs a statement and reports rows affected
	Exec(ctx context.Context, query string, args ...any) (int64, error)
	// InsertReturning runs an INSERT and returns the generated value of idColumn
	InsertReturning(ctx context.Context, query string, idColumn string, args ...any) (int64, error)
	// Release hands the connection back to the pool. Calling it more than
	// once is a no-op.
	Release()
}

// Pool hands out exclusive connections
type Pool interface {
	// Acquire blocks until a connection is free or ctx is done
	Acquire(ctx context.Context) (Conn, error)
	Ping(ctx context.Context) error
	Stat() Stat
	Close()
}

// Stat is a point-in-time view of pool usage
type Stat struct {
	MaxConns      int32 `json:"max_conns"`
	TotalConns    int32 `json:"total_conns"`
	AcquiredConns int32 `json:"acquired_conns"`
	IdleConns     int32 `json:"idle_conns"`
}

// Open validates cfg and builds a ready pool of cfg.PoolSize connections.
// Any failure to reach or authenticate against the database is returned
// wrapped in ErrConnectivity; a pool is never returned half-initialized.
func Open(ctx context.Context, cfg Config, log logger.Logger) (Pool, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log = log.WithField("pool", cfg.PoolName)
	log.WithField("config", cfg.Redacted()).Debug("Creating connection pool")

	var (
		pool Pool
		err  error
	)
	switch cfg.Driver {
	case DriverPostgres:
		pool, err = openPostgres(ctx, cfg, log)
	case DriverMySQL:
		pool, err = openMySQL(ctx, cfg, log)
	}
	if err != nil {
		return nil, connectivityError(log, cfg, err)
	}

	log.WithFields(map[string]interface{}{
		"driver": string(cfg.Driver),
		"size":   cfg.PoolSize,
	}).Info("Connection pool successfully created")
	return pool, nil
}

func connectivityError(log logger.Logger, cfg Config, err error) error {
	log.WithField("config", cfg.Redacted()).Error(fmt.Sprintf("Problem creating connection pool: %v", err))
	return fmt.Errorf("%w: %w", ErrConnectivity, err)
}
