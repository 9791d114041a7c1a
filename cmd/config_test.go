package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_USER", "fulfillment")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "fulfillment")
}

func missingEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.env")
}

func TestLoadConfig_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig(missingEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, EventSinkLog, cfg.EventSink)
	assert.Equal(t, 5, cfg.LowStockThreshold)
	assert.Equal(t, "host=localhost port=5432 user=fulfillment password=secret dbname=fulfillment sslmode=disable", cfg.DSN())
}

func TestLoadConfig_YAMLThenEnv(t *testing.T) {
	setRequiredEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
http_port: "9000"
event_sink: kafka
kafka_brokers: ["kafka-1:9092"]
kafka_topic: warehouse
low_stock_threshold: 10
`), 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092")
	t.Setenv("LOW_STOCK_THRESHOLD", "2")

	cfg, err := LoadConfig(missingEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.HTTPPort)
	assert.Equal(t, EventSinkKafka, cfg.EventSink)
	assert.Equal(t, "warehouse", cfg.KafkaTopic)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 2, cfg.LowStockThreshold)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("REDIS_ADDR", "")
	require.NoError(t, os.Unsetenv("REDIS_ADDR"))

	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("REDIS_ADDR=redis:6379\nDB_HOST=ignored\n"), 0o600))

	cfg, err := LoadConfig(envFile)
	require.NoError(t, err)

	assert.Equal(t, "redis:6379", cfg.RedisAddr)
	assert.Equal(t, "localhost", cfg.DBHost, "process environment wins over .env")
}

func TestLoadConfig_InvalidThreshold(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("LOW_STOCK_THRESHOLD", "few")

	_, err := LoadConfig(missingEnvFile(t))

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"valid", func(*Config) {}, nil},
		{"missing db host", func(c *Config) { c.DBHost = "" }, errs.ErrValueIsRequired},
		{"kafka without brokers", func(c *Config) { c.EventSink = EventSinkKafka }, errs.ErrValueIsRequired},
		{"rabbitmq without url", func(c *Config) { c.EventSink = EventSinkRabbitMQ }, errs.ErrValueIsRequired},
		{"unknown sink", func(c *Config) { c.EventSink = "webhook" }, errs.ErrValueIsInvalid},
		{"negative threshold", func(c *Config) { c.LowStockThreshold = -1 }, errs.ErrValueIsOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			cfg.DBHost, cfg.DBUser, cfg.DBName = "localhost", "u", "db"
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
