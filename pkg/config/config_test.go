package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.True(t, cfg.Sales.DeductStock)
	assert.Equal(t, "131", cfg.Sales.DefaultDebitAccount)
	assert.Equal(t, "5111", cfg.Sales.DefaultCreditAccount)
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, 24*time.Hour, cfg.Redis.IdempotencyTTL)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("HTTP_PORT", "9090")
	v.Set("SALES_DEDUCT_STOCK", "false")
	v.Set("REDIS_ADDR", "localhost:6379")
	v.Set("DATABASE_URL", "postgres://u:p@db:5432/x")

	cfg, err := fromViper(v)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9090", cfg.HTTP.Addr())
	assert.False(t, cfg.Sales.DeductStock)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, "postgres://u:p@db:5432/x", cfg.DB.ConnectionString())
}

func TestFromViper_ProductionSinSecret(t *testing.T) {
	v := viper.New()
	v.Set("APP_ENV", "production")
	_, err := fromViper(v)
	assert.Error(t, err)
}

func TestDSN_EscapaPassword(t *testing.T) {
	c := DBConfig{Host: "h", Port: 5432, User: "u", Password: "p@ss/w", DBName: "d", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p%40ss%2Fw@h:5432/d?sslmode=disable", c.DSN())
}
