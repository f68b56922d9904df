package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/libercore/lending-catalog-go/shell/config"
)

func Test_LoadPostgres_Defaults(t *testing.T) {
	cfg, err := config.LoadPostgres()

	require.NoError(t, err)
	assert.Contains(t, cfg.DSN, "postgres://")
	assert.Equal(t, int32(8), cfg.MaxConns)
	assert.Equal(t, time.Hour, cfg.MaxConnLifetime)
}

func Test_LoadPostgres_EnvironmentOverrides(t *testing.T) {
	t.Setenv("POSTGRES_DSN", "postgres://other:other@db:5432/other?sslmode=disable")
	t.Setenv("POSTGRES_MAX_CONNS", "16")

	cfg, err := config.LoadPostgres()

	require.NoError(t, err)
	assert.Equal(t, "postgres://other:other@db:5432/other?sslmode=disable", cfg.DSN)
	assert.Equal(t, int32(16), cfg.MaxConns)
}

func Test_PGXPoolConfig_AppliesPoolSettings(t *testing.T) {
	cfg, err := config.LoadPostgres()
	require.NoError(t, err)

	poolConfig, err := cfg.PGXPoolConfig()

	require.NoError(t, err)
	assert.Equal(t, cfg.MaxConns, poolConfig.MaxConns)
	assert.Equal(t, cfg.MinConns, poolConfig.MinConns)
	assert.Equal(t, cfg.ConnectTimeout, poolConfig.ConnConfig.ConnectTimeout)
}

func Test_LoadDemo_Defaults(t *testing.T) {
	cfg, err := config.LoadDemo()

	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.StoreEngine)
	assert.Equal(t, "info", cfg.LogLevel)
}
