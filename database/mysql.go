package database

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"net"
	"regexp"
	"strconv"

	"legal-roster/logger"

	"github.com/go-sql-driver/mysql"
)

var placeholderPattern = regexp.MustCompile(`\$[0-9]+`)

// rebind turns $n placeholders into ?. Statements in this module reference
// each parameter once and in order, which is what ? requires.
func rebind(query string) string {
	return placeholderPattern.ReplaceAllString(query, "?")
}

func mysqlConfig(cfg Config) *mysql.Config {
	mc := mysql.NewConfig()
	mc.User = cfg.User
	mc.Passwd = cfg.Password
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.port()))
	mc.DBName = cfg.Database
	mc.ParseTime = true
	if cfg.ConnectTimeout > 0 {
		mc.Timeout = cfg.ConnectTimeout
	}
	return mc
}

func openMySQL(ctx context.Context, cfg Config, log logger.Logger) (Pool, error) {
	connector, err := mysql.NewConnector(mysqlConfig(cfg))
	if err != nil {
		return nil, err
	}
	return newSQLPool(ctx, sql.OpenDB(connector), cfg, log)
}

// NewSQLPool wraps an already opened *sql.DB as a fixed-size Pool. The
// statements it receives are rebound from $n to ? placeholders.
func NewSQLPool(ctx context.Context, db *sql.DB, cfg Config, log logger.Logger) (Pool, error) {
	pool, err := newSQLPool(ctx, db, cfg, log)
	if err != nil {
		return nil, connectivityError(log, cfg, err)
	}
	return pool, nil
}

func newSQLPool(ctx context.Context, db *sql.DB, cfg Config, log logger.Logger) (*sqlPool, error) {
	db.SetMaxOpenConns(cfg.PoolSize)
	db.SetMaxIdleConns(cfg.PoolSize)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := warm(ctx, db, cfg.PoolSize); err != nil {
		_ = db.Close()
		return nil, err
	}

	if cfg.ResetSession {
		log.Debug("reset_session is on; released connections are closed and redialed")
	}

	return &sqlPool{db: db, resetSession: cfg.ResetSession}, nil
}

// warm opens n connections at once so the pool starts full
func warm(ctx context.Context, db *sql.DB, n int) error {
	conns := make([]*sql.Conn, 0, n)
	defer func() {
		for _, c := range conns {
			_ = c.Close()
		}
	}()
	for i := 0; i < n; i++ {
		c, err := db.Conn(ctx)
		if err != nil {
			return err
		}
		conns = append(conns, c)
	}
	return nil
}

type sqlPool struct {
	db           *sql.DB
	resetSession bool
}

func (p *sqlPool) Acquire(ctx context.Context) (Conn, error) {
	conn, err := p.db.Conn(ctx)
	if err != nil {
		return nil, err
	}
	return &sqlConn{conn: conn, discard: p.resetSession}, nil
}

func (p *sqlPool) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

func (p *sqlPool) Stat() Stat {
	s := p.db.Stats()
	return Stat{
		MaxConns:      int32(s.MaxOpenConnections),
		TotalConns:    int32(s.OpenConnections),
		AcquiredConns: int32(s.InUse),
		IdleConns:     int32(s.Idle),
	}
}

func (p *sqlPool) Close() {
	_ = p.db.Close()
}

type sqlConn struct {
	conn     *sql.Conn
	discard  bool
	released bool
}

func (c *sqlConn) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	rows, err := c.conn.QueryContext(ctx, rebind(query), args...)
	if err != nil {
		return nil, err
	}
	return &sqlRows{rows: rows}, nil
}

func (c *sqlConn) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	res, err := c.conn.ExecContext(ctx, rebind(query), args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (c *sqlConn) InsertReturning(ctx context.Context, query string, idColumn string, args ...any) (int64, error) {
	res, err := c.conn.ExecContext(ctx, rebind(query), args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (c *sqlConn) Release() {
	if c.released {
		return
	}
	c.released = true
	if c.discard {
		// The driver has no COM_RESET_CONNECTION. Reporting ErrBadConn makes
		// database/sql close the session so the next Acquire dials a fresh one.
		_ = c.conn.Raw(func(any) error { return driver.ErrBadConn })
	}
	_ = c.conn.Close()
}

type sqlRows struct {
	rows *sql.Rows
}

func (r *sqlRows) Next() bool             { return r.rows.Next() }
func (r *sqlRows) Scan(dest ...any) error { return r.rows.Scan(dest...) }
func (r *sqlRows) Err() error             { return r.rows.Err() }
func (r *sqlRows) Close()                 { _ = r.rows.Close() }
