package config

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg := load(v)

	assert.Equal(t, "5000", cfg.Server.Port)
	assert.Equal(t, EnvDevelopment, cfg.Server.Env)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, []string{"*"}, cfg.Server.CORSAllowOrigins)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, 10, cfg.Database.MaxOpenConns)
	assert.Equal(t, 30, cfg.Stats.DefaultDays)
}

func TestLoadOverrides(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("APP_ENV", "Production")
	v.Set("DATABASE_DRIVER", "SQLite")
	v.Set("CORS_ALLOW_ORIGINS", "http://a.test, http://b.test ,")
	v.Set("STATS_DEFAULT_DAYS", -4)

	cfg := load(v)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.CORSAllowOrigins)
	assert.Equal(t, 30, cfg.Stats.DefaultDays)
}

func TestNewConfigAppliesLogLevel(t *testing.T) {
	previous := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(previous) })

	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("APP_ENV", EnvProduction)

	cfg, err := NewConfig()
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
}
