package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "http://127.0.0.1:5000", cfg.Backend.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, 2*time.Hour, cfg.Cart.SessionTTL)
	assert.Equal(t, "0 8 * * *", cfg.Digest.CronSchedule)
	assert.False(t, cfg.SheetsEnabled())
}

func TestLoadDurationAsSeconds(t *testing.T) {
	t.Setenv("BACKEND_TIMEOUT", "30")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, cfg.Backend.Timeout)
}

func TestValidateRejectsRelativeBackendURL(t *testing.T) {
	t.Setenv("BACKEND_BASE_URL", "localhost:5000")

	_, err := Load("")
	require.Error(t, err)
}

func TestValidateRequiresBothSheetsHalves(t *testing.T) {
	t.Setenv("GOOGLE_SHEETS_CREDENTIALS_PATH", "creds.json")

	_, err := Load("")
	require.Error(t, err)
}

func TestSheetsEnabled(t *testing.T) {
	t.Setenv("GOOGLE_SHEETS_CREDENTIALS_PATH", "creds.json")
	t.Setenv("LEDGER_SPREADSHEET_ID", "sheet-1")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.True(t, cfg.SheetsEnabled())
}
