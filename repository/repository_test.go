package repository

import (
	"context"
	"errors"
	"testing"

	"legal-roster/database"
	"legal-roster/logger"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

// setupMockPool builds a real database/sql pool on top of sqlmock so every
// test goes through Acquire/Release.
func setupMockPool(t *testing.T) (database.Pool, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	cfg := database.Config{
		Driver:   database.DriverMySQL,
		Host:     "localhost",
		Database: "legal_cases",
		PoolSize: 2,
	}
	pool, err := database.NewSQLPool(context.Background(), db, cfg, logger.NewTestLogger(t))
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return pool, mock
}

// failingPool never hands out a connection
type failingPool struct {
	err error
}

func (p failingPool) Acquire(context.Context) (database.Conn, error) { return nil, p.err }
func (p failingPool) Ping(context.Context) error                     { return p.err }
func (p failingPool) Stat() database.Stat                            { return database.Stat{} }
func (p failingPool) Close()                                         {}

var errPoolDown = errors.New("connection refused")

func requireReleased(t *testing.T, pool database.Pool) {
	t.Helper()
	require.Equal(t, int32(0), pool.Stat().AcquiredConns, "connection leaked")
}
