package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// HTTP server
	Port           string
	RequestTimeout time.Duration

	// Database
	DBConnectionString string
	MigrateOnStart     bool

	// Bearer token validation
	JWTSecret   string
	JWTIssuer   string
	JWTAudience string

	// When false, AddIndUserBill trusts the client and leaves referential checks to the database.
	BillReferenceCheck bool

	// Bill events; publishing is off while AMQPURL is empty.
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	LogLevel string
}

// Load reads the process environment, after merging a .env file when present.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Info("Error loading .env file, continuing with system environment variables")
	}

	return &Config{
		Port:               getEnv("PORT", "8080"),
		RequestTimeout:     getEnvDuration("REQUEST_TIMEOUT", 10*time.Second),
		DBConnectionString: getEnv("DB_CONNECTION_STRING", ""),
		MigrateOnStart:     getEnvBool("MIGRATE_ON_START", true),
		JWTSecret:          getEnv("JWT_SECRET", ""),
		JWTIssuer:          getEnv("JWT_ISSUER", ""),
		JWTAudience:        getEnv("JWT_AUDIENCE", ""),
		BillReferenceCheck: getEnvBool("BILL_REFERENCE_CHECK", true),
		AMQPURL:            getEnv("AMQP_URL", ""),
		AMQPExchange:       getEnv("AMQP_EXCHANGE", "bills"),
		AMQPQueue:          getEnv("AMQP_QUEUE", "bill.recorded"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
	}
}

// Validate reports every configuration problem at once.
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.RequestTimeout <= 0 {
		problems = append(problems, "request timeout must be positive")
	}
	if c.DBConnectionString == "" {
		problems = append(problems, "no DB_CONNECTION_STRING provided")
	}
	if c.JWTSecret == "" {
		problems = append(problems, "no JWT_SECRET provided")
	}
	if c.JWTIssuer == "" {
		problems = append(problems, "no JWT_ISSUER provided")
	}
	if c.JWTAudience == "" {
		problems = append(problems, "no JWT_AUDIENCE provided")
	}

	if c.AMQPURL != "" && (c.AMQPExchange == "" || c.AMQPQueue == "") {
		problems = append(problems, "AMQP_EXCHANGE and AMQP_QUEUE are required when AMQP_URL is set")
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("invalid log level '%s': must be one of debug, info, warn, error", c.LogLevel))
	}

	if len(problems) > 0 {
		return errors.New("configuration validation failed: " + strings.Join(problems, "; "))
	}
	return nil
}

func (c *Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}
