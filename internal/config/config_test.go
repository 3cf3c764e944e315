package config

import (
	"testing"
	"time"

	"telemarketing/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "OUTCOME_COLUMN", "PREVIEW_ROWS", "SESSION_TTL", "UPLOAD_MAX_BYTES", "MAX_CONCURRENT_PARSES"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "y", cfg.Dashboard.OutcomeColumn)
	assert.Equal(t, 5, cfg.Dashboard.PreviewRows)
	assert.Equal(t, 2*time.Hour, cfg.Dashboard.SessionTTL)
	assert.Equal(t, int64(50*1024*1024), cfg.Upload.MaxBytes)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("OUTCOME_COLUMN", "accepted")
	t.Setenv("PREVIEW_ROWS", "10")
	t.Setenv("SESSION_TTL", "15m")
	t.Setenv("MAX_CONCURRENT_PARSES", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "accepted", cfg.Dashboard.OutcomeColumn)
	assert.Equal(t, 10, cfg.Dashboard.PreviewRows)
	assert.Equal(t, 15*time.Minute, cfg.Dashboard.SessionTTL)
	assert.Equal(t, int64(4), cfg.Upload.MaxConcurrentParses, "unparseable values fall back to the default")
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("PREVIEW_ROWS", "0")

	_, err := Load()
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.CodeConfigInvalid))
}

func TestLoadRejectsTinySessionTTL(t *testing.T) {
	t.Setenv("SESSION_TTL", "3ns")

	_, err := Load()
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.CodeConfigInvalid))
	assert.Contains(t, err.Error(), "SESSION_TTL")
}
