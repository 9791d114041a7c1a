package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"fulfillment/internal/pkg/errs"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Event sink kinds.
const (
	EventSinkLog      = "log"
	EventSinkKafka    = "kafka"
	EventSinkRabbitMQ = "rabbitmq"
)

type Config struct {
	HTTPPort   string `yaml:"http_port"`
	DBHost     string `yaml:"db_host"`
	DBPort     string `yaml:"db_port"`
	DBUser     string `yaml:"db_user"`
	DBPassword string `yaml:"db_password"`
	DBName     string `yaml:"db_name"`
	DBSslMode  string `yaml:"db_sslmode"`

	RedisAddr string `yaml:"redis_addr"`

	EventSink        string   `yaml:"event_sink"`
	KafkaBrokers     []string `yaml:"kafka_brokers"`
	KafkaTopic       string   `yaml:"kafka_topic"`
	RabbitMQURL      string   `yaml:"rabbitmq_url"`
	RabbitMQExchange string   `yaml:"rabbitmq_exchange"`

	LowStockThreshold int    `yaml:"low_stock_threshold"`
	LowStockSchedule  string `yaml:"low_stock_schedule"`
	BacklogSchedule   string `yaml:"backlog_schedule"`
}

func defaultConfig() Config {
	return Config{
		HTTPPort:          "8080",
		DBPort:            "5432",
		DBSslMode:         "disable",
		RedisAddr:         "localhost:6379",
		EventSink:         EventSinkLog,
		KafkaTopic:        "fulfillment.events",
		RabbitMQExchange:  "fulfillment.events",
		LowStockThreshold: 5,
		LowStockSchedule:  "0 */5 * * * *",
		BacklogSchedule:   "30 */5 * * * *",
	}
}

// LoadConfig builds the configuration in layers: built-in defaults, the YAML
// file named by CONFIG_FILE, then environment variables. envFiles (".env" when
// none are given) are loaded into the environment first; missing files are
// ignored and variables already set in the process win.
func LoadConfig(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err = yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}

	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() error {
	strs := map[string]*string{
		"HTTP_PORT":         &c.HTTPPort,
		"DB_HOST":           &c.DBHost,
		"DB_PORT":           &c.DBPort,
		"DB_USER":           &c.DBUser,
		"DB_PASSWORD":       &c.DBPassword,
		"DB_NAME":           &c.DBName,
		"DB_SSLMODE":        &c.DBSslMode,
		"REDIS_ADDR":        &c.RedisAddr,
		"EVENT_SINK":        &c.EventSink,
		"KAFKA_TOPIC":       &c.KafkaTopic,
		"RABBITMQ_URL":      &c.RabbitMQURL,
		"RABBITMQ_EXCHANGE": &c.RabbitMQExchange,
		"LOW_STOCK_CRON":    &c.LowStockSchedule,
		"BACKLOG_CRON":      &c.BacklogSchedule,
	}
	for key, dst := range strs {
		if v, ok := os.LookupEnv(key); ok {
			*dst = strings.TrimSpace(v)
		}
	}

	if v, ok := os.LookupEnv("KAFKA_BROKERS"); ok {
		c.KafkaBrokers = splitList(v)
	}

	if v, ok := os.LookupEnv("LOW_STOCK_THRESHOLD"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return errs.NewValueIsInvalidErrorWithCause("LOW_STOCK_THRESHOLD", err)
		}
		c.LowStockThreshold = n
	}

	return nil
}

// Validate reports every missing or inconsistent setting at once.
func (c Config) Validate() error {
	var errList []error

	required := []struct {
		name  string
		value string
	}{
		{"HTTP_PORT", c.HTTPPort},
		{"DB_HOST", c.DBHost},
		{"DB_PORT", c.DBPort},
		{"DB_USER", c.DBUser},
		{"DB_NAME", c.DBName},
		{"REDIS_ADDR", c.RedisAddr},
	}
	for _, r := range required {
		if r.value == "" {
			errList = append(errList, errs.NewValueIsRequiredError(r.name))
		}
	}

	switch c.EventSink {
	case EventSinkLog:
	case EventSinkKafka:
		if len(c.KafkaBrokers) == 0 {
			errList = append(errList, errs.NewValueIsRequiredError("KAFKA_BROKERS"))
		}
		if c.KafkaTopic == "" {
			errList = append(errList, errs.NewValueIsRequiredError("KAFKA_TOPIC"))
		}
	case EventSinkRabbitMQ:
		if c.RabbitMQURL == "" {
			errList = append(errList, errs.NewValueIsRequiredError("RABBITMQ_URL"))
		}
		if c.RabbitMQExchange == "" {
			errList = append(errList, errs.NewValueIsRequiredError("RABBITMQ_EXCHANGE"))
		}
	default:
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("EVENT_SINK",
			fmt.Errorf("%q is not one of %s, %s, %s", c.EventSink, EventSinkLog, EventSinkKafka, EventSinkRabbitMQ)))
	}

	if c.LowStockThreshold < 0 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("LOW_STOCK_THRESHOLD", c.LowStockThreshold, 0, "unbounded"))
	}

	return errors.Join(errList...)
}

// DSN returns the PostgreSQL connection string for gorm.io/driver/postgres.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
