package config

import (
	"testing"
	"time"

	"burntest/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "8000", cfg.Server.APIPort)
	assert.Equal(t, "http://localhost:8000/api", cfg.Backend.URL)
	assert.Equal(t, time.Duration(0), cfg.Backend.Timeout)
	assert.Equal(t, "xlsx", cfg.Storage.Driver)
	assert.Equal(t, "local", cfg.Reports.Storage)
	assert.Equal(t, 30*time.Minute, cfg.Session.TTL)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoad_PostgresRequiresDatabaseURL(t *testing.T) {
	t.Setenv("STORE_DRIVER", "postgres")

	_, err := Load()
	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
	assert.Contains(t, err.Error(), "DatabaseURL")

	t.Setenv("DATABASE_URL", "postgres://localhost/burntest?sslmode=disable")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Storage.Driver)
}

func TestLoad_S3RequiresBucket(t *testing.T) {
	t.Setenv("REPORT_STORAGE", "s3")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Bucket")
}

func TestLoad_RejectsUnknownDriverAndBadDuration(t *testing.T) {
	t.Setenv("STORE_DRIVER", "mongo")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("STORE_DRIVER", "xlsx")
	t.Setenv("REQUEST_TIMEOUT", "soon")
	_, err = Load()
	assert.Error(t, err)

	t.Setenv("REQUEST_TIMEOUT", "15s")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 15*time.Second, cfg.Backend.Timeout)
}
