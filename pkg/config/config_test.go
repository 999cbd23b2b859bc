package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "migrations", cfg.Database.MigrationsDir)
	assert.Equal(t, 30*time.Second, cfg.Database.ConnectTimeout)
	assert.Equal(t, time.Hour, cfg.Database.ConnMaxLifetime)
	assert.Equal(t, time.Minute, cfg.Discussion.SweepInterval)
	assert.Equal(t, "ideas", cfg.Search.Index)
	assert.False(t, cfg.SearchEnabled())
	assert.False(t, cfg.Redis.Enabled)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("DISCUSSION_SWEEP_INTERVAL", "30s")
	t.Setenv("ELASTICSEARCH_ADDRESSES", "http://es:9200")
	t.Setenv("REDIS_ENABLED", "true")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 30*time.Second, cfg.Discussion.SweepInterval)
	assert.True(t, cfg.SearchEnabled())
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "localhost:6379", cfg.GetRedisAddr())
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg, err := FromEnv()
		require.NoError(t, err)
		return cfg
	}

	t.Run("production needs a real secret", func(t *testing.T) {
		cfg := base()
		cfg.Server.Environment = "production"
		assert.Error(t, cfg.Validate())

		cfg.Auth.JWTSecret = "s3cr3t"
		assert.NoError(t, cfg.Validate())
	})

	t.Run("production refuses auto migrate", func(t *testing.T) {
		cfg := base()
		cfg.Server.Environment = "production"
		cfg.Auth.JWTSecret = "s3cr3t"
		cfg.Database.AutoMigrate = true
		assert.Error(t, cfg.Validate())
	})

	t.Run("sweep interval must be positive", func(t *testing.T) {
		cfg := base()
		cfg.Discussion.SweepInterval = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("empty secret", func(t *testing.T) {
		cfg := base()
		cfg.Auth.JWTSecret = ""
		assert.Error(t, cfg.Validate())
	})
}

func TestGetDatabaseDSN(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{
		Host: "db", Port: "5432", User: "u", Password: "p", Name: "n", SSLMode: "disable",
	}}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=n sslmode=disable", cfg.GetDatabaseDSN())
}
