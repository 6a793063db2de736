package app

import (
	"bytes"
	"context"
	"testing"

	"legal-roster/config"
	"legal-roster/database"
	"legal-roster/logger"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	cfg := &config.Config{}
	cfg.Meta.LogPrefix = "legal_case_app"
	cfg.Meta.LogLevel = "debug"
	cfg.Database.Driver = "mysql"
	cfg.Database.Connection.Config.Host = "localhost"
	cfg.Database.Connection.Config.Database = "legal_cases"
	cfg.Database.Pool.Name = "legal_case_pool"
	cfg.Database.Pool.Size = 2
	cfg.Server.Port = 8080
	cfg.Storage.Type = "local"
	cfg.Storage.LocalPath = t.TempDir()
	return cfg
}

func TestNewWithPool(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	cfg := testConfig(t)
	log := logger.NewTestLogger(t)
	pool, err := database.NewSQLPool(context.Background(), db, cfg.Database.PoolConfig(), log)
	require.NoError(t, err)

	a, err := NewWithPool(context.Background(), cfg, pool, log)
	require.NoError(t, err)
	assert.NotNil(t, a.Records)
	assert.NotNil(t, a.Exports)
	assert.NotNil(t, a.Storage)
	assert.Equal(t, int32(2), a.Records.PoolStats().MaxConns)

	mock.ExpectClose()
	a.Close()
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.Database.Pool.Size = 0

	_, err := New(context.Background(), cfg, logger.NewTestLogger(t))
	require.Error(t, err)
	assert.ErrorIs(t, err, database.ErrInvalidConfig)
}

func TestNewLogger_AttachesPrefix(t *testing.T) {
	var buf bytes.Buffer
	cfg := testConfig(t)

	NewLogger(cfg, &buf).Info("hello")
	assert.Contains(t, buf.String(), `"app":"legal_case_app"`)
	assert.Contains(t, buf.String(), `"message":"hello"`)
}
