package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadFromDir(t *testing.T, content string) (*Config, error) {
	t.Helper()
	dir := t.TempDir()
	if content != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o644))
	}
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return Load()
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := loadFromDir(t, "")
	require.NoError(t, err)

	assert.Equal(t, "shopora-backend", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "shopora", cfg.Database.DBName)

	assert.True(t, cfg.Pricing.TaxRate.Equal(decimal.RequireFromString("0.10")))
	assert.True(t, cfg.Pricing.FreeShippingThreshold.Equal(decimal.NewFromInt(100)))
	assert.True(t, cfg.Pricing.ShippingFee.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, "USD", cfg.Pricing.Currency)
}

func TestLoadFromFile(t *testing.T) {
	cfg, err := loadFromDir(t, `
[app]
name = "shopora-test"
port = "9090"

[pricing]
tax_rate = "0.08"
free_shipping_threshold = "75"
shipping_fee = "6.50"
currency = "EUR"
`)
	require.NoError(t, err)

	assert.Equal(t, "shopora-test", cfg.App.Name)
	assert.Equal(t, "9090", cfg.App.Port)
	assert.True(t, cfg.Pricing.TaxRate.Equal(decimal.RequireFromString("0.08")))
	assert.True(t, cfg.Pricing.ShippingFee.Equal(decimal.RequireFromString("6.50")))
	assert.Equal(t, "EUR", cfg.Pricing.Currency)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("SHOPORA_DATABASE_PASSWORD", "from-env")
	t.Setenv("SHOPORA_APP_PORT", "7070")

	cfg, err := loadFromDir(t, "")
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, "7070", cfg.App.Port)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Run("malformed tax rate", func(t *testing.T) {
		_, err := loadFromDir(t, `
[pricing]
tax_rate = "ten percent"
`)
		assert.Error(t, err)
	})

	t.Run("negative shipping fee", func(t *testing.T) {
		_, err := loadFromDir(t, `
[pricing]
shipping_fee = "-3"
`)
		assert.Error(t, err)
	})

	t.Run("tax rate above one", func(t *testing.T) {
		_, err := loadFromDir(t, `
[pricing]
tax_rate = "1.5"
`)
		assert.Error(t, err)
	})

	t.Run("idle conns above open conns", func(t *testing.T) {
		_, err := loadFromDir(t, `
[database]
max_open_conns = 5
max_idle_conns = 10
`)
		assert.Error(t, err)
	})
}

func TestProductionValidation(t *testing.T) {
	base := `
[app]
env = "production"

[database]
password = "prod-password"
sslmode = "require"

[cookie]
secure = true
`

	t.Run("requires jwt secret", func(t *testing.T) {
		_, err := loadFromDir(t, base)
		assert.Error(t, err)
	})

	t.Run("requires long jwt secret", func(t *testing.T) {
		_, err := loadFromDir(t, base+`
[jwt]
secret = "short"
`)
		assert.Error(t, err)
	})

	t.Run("accepts complete production config", func(t *testing.T) {
		cfg, err := loadFromDir(t, base+`
[jwt]
secret = "a-production-secret-of-sufficient-length"
`)
		require.NoError(t, err)
		assert.Equal(t, "production", cfg.App.Env)
	})

	t.Run("rejects wildcard cors", func(t *testing.T) {
		_, err := loadFromDir(t, base+`
[jwt]
secret = "a-production-secret-of-sufficient-length"

[http]
cors_allow_origins = ["*"]
`)
		assert.Error(t, err)
	})
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{
		Host:     "db.internal",
		Port:     5433,
		User:     "shop",
		Password: "p@ss/word",
		DBName:   "shopora",
		SSLMode:  "require",
	}
	dsn := d.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "db.internal:5433")
	assert.Contains(t, dsn, "sslmode=require")
	assert.NotContains(t, dsn, "p@ss/word") // escaped
}
