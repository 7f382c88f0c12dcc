package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "dealdesk-backend", cfg.App.Name)
	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 0.5, cfg.Policy.GateErrorThreshold)
	assert.Equal(t, 0.8, cfg.Policy.GateWarnThreshold)
	assert.Equal(t, 7, cfg.Policy.DueDaysBooking)
	assert.Equal(t, 14, cfg.Policy.DueDaysHalfPaid)
	assert.Equal(t, 30, cfg.Policy.DueDaysPossession)
	assert.Equal(t, 7, cfg.Policy.DueDaysFullPayment)
	assert.Equal(t, 30, cfg.Policy.DueDaysDefault)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("DEALDESK_APP_ENV", "production")
	t.Setenv("DEALDESK_STORE_DSN", ":memory:")
	t.Setenv("DEALDESK_POLICY_DUE_DAYS_BOOKING", "10")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, ":memory:", cfg.Store.DSN)
	assert.Equal(t, 10, cfg.Policy.DueDaysBooking)
}

func TestLoad_RejectsInvalidLogLevel(t *testing.T) {
	t.Setenv("DEALDESK_LOG_LEVEL", "verbose")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_RejectsInvalidDriver(t *testing.T) {
	t.Setenv("DEALDESK_STORE_DRIVER", "postgres")

	_, err := Load()
	assert.Error(t, err)
}
