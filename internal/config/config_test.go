package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 12, cfg.Business.DefaultTermMonths)
	assert.Equal(t, 1200, cfg.Business.MaxTermMonths)
	assert.Equal(t, 720*time.Hour, cfg.Business.QuoteRetention)
	assert.Equal(t, time.Hour, cfg.Redis.CacheTTL)
	assert.True(t, cfg.GetDefaultAmount().Equal(decimal.NewFromInt(8000)))
	assert.True(t, cfg.GetDefaultAPR().Equal(decimal.RequireFromString("6.5")))
	assert.True(t, cfg.GetDefaultDownPayment().IsZero())
	assert.True(t, cfg.GetDefaultFees().IsZero())
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
	assert.True(t, cfg.IsDevelopment())
	require.Len(t, cfg.Business.Presets, 3)
	assert.Equal(t, PresetConfig{Name: "personal", Amount: "8000", TermMonths: 12, APR: "6.5"}, cfg.Business.Presets[0])
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DEFAULT_APR", "4.25")
	t.Setenv("MAX_TERM_MONTHS", "480")
	t.Setenv("SCHEDULER_TIMEZONE", "Asia/Jakarta")
	t.Setenv("ENV", "production")
	t.Setenv("PRESETS", " boat : 40000 : 84 : 8.25 ,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.GetDefaultAPR().Equal(decimal.RequireFromString("4.25")))
	assert.Equal(t, 480, cfg.Business.MaxTermMonths)
	assert.Equal(t, "Asia/Jakarta", cfg.Location().String())
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, []PresetConfig{{Name: "boat", Amount: "40000", TermMonths: 84, APR: "8.25"}}, cfg.Business.Presets)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "non-decimal amount", key: "DEFAULT_AMOUNT", value: "lots"},
		{name: "negative apr", key: "DEFAULT_APR", value: "-1"},
		{name: "zero term", key: "DEFAULT_TERM_MONTHS", value: "0"},
		{name: "bad cron", key: "QUOTE_PURGE_SCHEDULE", value: "every night"},
		{name: "bad timezone", key: "SCHEDULER_TIMEZONE", value: "Mars/Olympus"},
		{name: "preset missing a field", key: "PRESETS", value: "auto:25000:60"},
		{name: "preset term not a number", key: "PRESETS", value: "auto:25000:sixty:7"},
		{name: "preset negative apr", key: "PRESETS", value: "auto:25000:60:-1"},
		{name: "preset term past the cap", key: "PRESETS", value: "auto:25000:5000:7"},
		{name: "duplicate preset", key: "PRESETS", value: "auto:1:2:3,auto:4:5:6"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			t.Setenv(tt.key, tt.value)

			cfg, err := Load()
			assert.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: "5432", Name: "loans", User: "app", Password: "s3cret", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:s3cret@db:5432/loans?sslmode=disable", d.DSN())

	d.URL = "postgres://override"
	assert.Equal(t, "postgres://override", d.DSN())
}
