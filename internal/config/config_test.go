package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Creates a temporary YAML config file in a temporary directory.
func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test_config.yaml")

	err := os.WriteFile(configPath, []byte(content), 0o600)
	require.NoError(t, err, "Failed to write temporary config file")

	return configPath
}

func TestMustLoad(t *testing.T) {
	validYAML := `
env: "test"
http_server:
  address: ":8081"
mongo:
  MONGO_URI: "mongodb://dbhost:27017"
  MONGO_DATABASE: "inventory_test"
  MONGO_COLLECTION: "products_test"
  MONGO_TIMEOUT: "15s"
cache:
  REDIS_ADDR: "redishost:6380"
  REDIS_PASSWORD: "secret"
  REDIS_DB: 1
  REDIS_DEFAULT_TTL: "10m"
import:
  MAX_UPLOAD_BYTES: 1048576
telemetry:
  OTEL_ENDPOINT: "http://otel:4318"
`

	t.Run("Success - Load From CONFIG_PATH", func(t *testing.T) {
		// Arrange
		configPath := createTempConfigFile(t, validYAML)
		t.Setenv("CONFIG_PATH", configPath)

		// Act
		cfg := MustLoad()

		// Assert
		require.NotNil(t, cfg)
		assert.Equal(t, "test", cfg.Env)
		assert.Equal(t, ":8081", cfg.Addr)
		assert.Equal(t, "mongodb://dbhost:27017", cfg.Mongo.URI)
		assert.Equal(t, "inventory_test", cfg.Mongo.Database)
		assert.Equal(t, "products_test", cfg.Mongo.Collection)
		assert.Equal(t, 15*time.Second, cfg.Mongo.Timeout)
		assert.Equal(t, "redishost:6380", cfg.Cache.Addr)
		assert.Equal(t, 10*time.Minute, cfg.Cache.DefaultTTL)
		assert.Equal(t, int64(1048576), cfg.Import.MaxUploadBytes)
		assert.Equal(t, "http://otel:4318", cfg.Telemetry.Endpoint)
	})

	t.Run("Success - Defaults Applied", func(t *testing.T) {
		// Arrange
		minimalYAML := `
env: "test"
mongo:
  MONGO_URI: "mongodb://localhost:27017"
`
		configPath := createTempConfigFile(t, minimalYAML)
		t.Setenv("CONFIG_PATH", configPath)

		// Act
		cfg := MustLoad()

		// Assert
		assert.Equal(t, ":8080", cfg.Addr)
		assert.Equal(t, "inventory", cfg.Mongo.Database)
		assert.Equal(t, "products", cfg.Mongo.Collection)
		assert.Equal(t, 5*time.Minute, cfg.Cache.DefaultTTL)
		assert.Equal(t, int64(33554432), cfg.Import.MaxUploadBytes)
	})
}

func TestCacheConfigGetDSN(t *testing.T) {
	t.Run("Without Password", func(t *testing.T) {
		cfg := CacheConfig{Addr: "localhost:6379", DB: 0}
		assert.Equal(t, "redis://localhost:6379/0", cfg.GetDSN())
	})

	t.Run("With Password", func(t *testing.T) {
		cfg := CacheConfig{Addr: "localhost:6379", Password: "secret", DB: 1}
		assert.Equal(t, "redis://:secret@localhost:6379/1", cfg.GetDSN())
	})
}
