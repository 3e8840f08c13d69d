package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.TellerAddr)
	assert.Equal(t, AccountServiceModeRemote, cfg.AccountServiceMode)
	assert.Equal(t, "https://demo8909904.mockable.io", cfg.AccountServiceURL)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, uint32(5), cfg.Breaker.ConsecutiveFailures)
	assert.Equal(t, StoreMemory, cfg.Store)
	assert.Equal(t, SeedHolder{FirstName: "Ada", LastName: "Lovelace", Pin: "1234", Balance: 500, DailyLimit: 100}, cfg.Seed)
}

func TestLoadOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ACCOUNT_SERVICE_MODE", "LOCAL")
	t.Setenv("ACCOUNT_SERVICE_URL", "http://localhost:8081/")
	t.Setenv("SESSION_REQUEST_TIMEOUT", "2s")
	t.Setenv("ACCOUNTD_SEED_DAILY_LIMIT", "250")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, AccountServiceModeLocal, cfg.AccountServiceMode)
	assert.Equal(t, "http://localhost:8081", cfg.AccountServiceURL)
	assert.Equal(t, 2*time.Second, cfg.RequestTimeout)
	assert.Equal(t, int64(250), cfg.Seed.DailyLimit)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Chdir(t.TempDir())

	t.Setenv("SESSION_REQUEST_TIMEOUT", "soon")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("SESSION_REQUEST_TIMEOUT", "")
	t.Setenv("ACCOUNTD_STORE", "redis")
	_, err = Load()
	assert.Error(t, err)
}

func TestLoadBreakerFailuresRange(t *testing.T) {
	t.Chdir(t.TempDir())

	t.Setenv("BREAKER_CONSECUTIVE_FAILURES", "4294967295")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, uint32(4294967295), cfg.Breaker.ConsecutiveFailures)

	for _, raw := range []string{"4294967296", "-1", "many"} {
		t.Setenv("BREAKER_CONSECUTIVE_FAILURES", raw)
		_, err := Load()
		assert.Error(t, err, "value %q", raw)
	}
}

func TestNormalizeConnectionString(t *testing.T) {
	got := normalizeConnectionString("Host=db;Port=5432;Database=fx_bank_db;Username=teller;Password=secret;CommandTimeout=30")

	assert.Equal(t, "host=db port=5432 dbname=fx_bank_db user=teller password=secret statement_timeout=30s sslmode=disable", got)
}
