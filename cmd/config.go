package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	SerialNumberTimestamp = "timestamp"
	SerialNumberRedis     = "redis"
)

type Config struct {
	HTTPPort string `mapstructure:"HTTP_PORT"`

	DBHost     string `mapstructure:"DB_HOST"`
	DBPort     string `mapstructure:"DB_PORT"`
	DBUser     string `mapstructure:"DB_USER"`
	DBPassword string `mapstructure:"DB_PASSWORD"`
	DBName     string `mapstructure:"DB_NAME"`
	DBSslMode  string `mapstructure:"DB_SSLMODE"`

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	// KafkaBrokers is a comma separated list. Empty disables the outbox relay.
	KafkaBrokers          string `mapstructure:"KAFKA_BROKERS"`
	KafkaOrderEventsTopic string `mapstructure:"KAFKA_ORDER_EVENTS_TOPIC"`
	OutboxRelaySchedule   string `mapstructure:"OUTBOX_RELAY_SCHEDULE"`
	OutboxBatchSize       int    `mapstructure:"OUTBOX_BATCH_SIZE"`

	SerialNumberStrategy string `mapstructure:"SERIAL_NUMBER_STRATEGY"`
	SerialNumberPrefix   string `mapstructure:"SERIAL_NUMBER_PREFIX"`

	JWTSecret        string  `mapstructure:"JWT_SECRET"`
	RateLimit        float64 `mapstructure:"RATE_LIMIT"`
	RateBurst        int     `mapstructure:"RATE_BURST"`
	ValidateRequests bool    `mapstructure:"VALIDATE_REQUESTS"`
	LogLevel         string  `mapstructure:"LOG_LEVEL"`
}

var defaults = map[string]any{
	"HTTP_PORT":                "8080",
	"DB_HOST":                  "localhost",
	"DB_PORT":                  "5432",
	"DB_USER":                  "",
	"DB_PASSWORD":              "",
	"DB_NAME":                  "",
	"DB_SSLMODE":               "disable",
	"REDIS_ADDR":               "localhost:6379",
	"REDIS_PASSWORD":           "",
	"REDIS_DB":                 0,
	"KAFKA_BROKERS":            "",
	"KAFKA_ORDER_EVENTS_TOPIC": "order.events",
	"OUTBOX_RELAY_SCHEDULE":    "@every 5s",
	"OUTBOX_BATCH_SIZE":        100,
	"SERIAL_NUMBER_STRATEGY":   SerialNumberTimestamp,
	"SERIAL_NUMBER_PREFIX":     "ORD",
	"JWT_SECRET":               "",
	"RATE_LIMIT":               0.0,
	"RATE_BURST":               20,
	"VALIDATE_REQUESTS":        true,
	"LOG_LEVEL":                "info",
}

// LoadConfig reads the environment, optionally seeded from the given .env
// files. Missing files are skipped.
func LoadConfig(envFiles ...string) (Config, error) {
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", file, err)
		}
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var problems []error
	if c.DBUser == "" || c.DBName == "" {
		problems = append(problems, errors.New("DB_USER and DB_NAME are required"))
	}
	if c.RedisAddr == "" {
		problems = append(problems, errors.New("REDIS_ADDR is required"))
	}
	if c.SerialNumberStrategy != SerialNumberTimestamp && c.SerialNumberStrategy != SerialNumberRedis {
		problems = append(problems, fmt.Errorf("SERIAL_NUMBER_STRATEGY must be %q or %q, got %q",
			SerialNumberTimestamp, SerialNumberRedis, c.SerialNumberStrategy))
	}
	if c.KafkaBrokers != "" && c.KafkaOrderEventsTopic == "" {
		problems = append(problems, errors.New("KAFKA_ORDER_EVENTS_TOPIC is required when KAFKA_BROKERS is set"))
	}
	return errors.Join(problems...)
}

func (c Config) PostgresDSN() string {
	parts := []string{
		"host=" + c.DBHost,
		"port=" + c.DBPort,
		"user=" + c.DBUser,
		"dbname=" + c.DBName,
		"sslmode=" + c.DBSslMode,
	}
	if c.DBPassword != "" {
		parts = append(parts, "password="+c.DBPassword)
	}
	return strings.Join(parts, " ")
}
