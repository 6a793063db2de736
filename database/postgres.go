package database

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"legal-roster/logger"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const resetTimeout = 5 * time.Second

type pgPool struct {
	pool *pgxpool.Pool
}

func postgresConnString(cfg Config) string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(cfg.User, cfg.Password),
		Host:   net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.port())),
		Path:   "/" + cfg.Database,
	}
	q := url.Values{}
	if cfg.SSLMode != "" {
		q.Set("sslmode", cfg.SSLMode)
	}
	if cfg.PoolName != "" {
		q.Set("application_name", cfg.PoolName)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

func postgresPoolConfig(cfg Config, log logger.Logger) (*pgxpool.Config, error) {
	pcfg, err := pgxpool.ParseConfig(postgresConnString(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres config: %w", err)
	}

	// Fixed-size pool
	pcfg.MaxConns = int32(cfg.PoolSize)
	pcfg.MinConns = int32(cfg.PoolSize)
	if cfg.ConnectTimeout > 0 {
		pcfg.ConnConfig.ConnectTimeout = cfg.ConnectTimeout
	}

	if cfg.ResetSession {
		pcfg.AfterRelease = func(conn *pgx.Conn) bool {
			ctx, cancel := context.WithTimeout(context.Background(), resetTimeout)
			defer cancel()
			if _, err := conn.Exec(ctx, "RESET ALL"); err != nil {
				log.Warn(fmt.Sprintf("Failed to reset session, dropping connection: %v", err))
				return false
			}
			return true
		}
	}

	return pcfg, nil
}

func openPostgres(ctx context.Context, cfg Config, log logger.Logger) (Pool, error) {
	pcfg, err := postgresPoolConfig(cfg, log)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return &pgPool{pool: pool}, nil
}

func (p *pgPool) Acquire(ctx context.Context) (Conn, error) {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return &pgConn{conn: conn}, nil
}

func (p *pgPool) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

func (p *pgPool) Stat() Stat {
	s := p.pool.Stat()
	return Stat{
		MaxConns:      s.MaxConns(),
		TotalConns:    s.TotalConns(),
		AcquiredConns: s.AcquiredConns(),
		IdleConns:     s.IdleConns(),
	}
}

func (p *pgPool) Close() {
	p.pool.Close()
}

type pgConn struct {
	conn     *pgxpool.Conn
	released bool
}

func (c *pgConn) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	rows, err := c.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (c *pgConn) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	tag, err := c.conn.Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (c *pgConn) InsertReturning(ctx context.Context, query string, idColumn string, args ...any) (int64, error) {
	var id int64
	err := c.conn.QueryRow(ctx, query+" RETURNING "+idColumn, args...).Scan(&id)
	return id, err
}

func (c *pgConn) Release() {
	if c.released {
		return
	}
	c.released = true
	c.conn.Release()
}
