package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress         string
	DatabaseURI        string
	MongoDatabase      string
	Location           *time.Location
	LogLevel           slog.Level
	ShutdownTimeout    time.Duration
	RequestTimeout     time.Duration
	CORSAllowedOrigins []string
	RateLimitRPS       float64
	RateLimitBurst     int
	DefaultPageSize    int
	MaxPageSize        int
}

// Args are the command line arguments left for the config flag set.
type Args []string

const (
	defaultRunAddress      = ":8080"
	defaultMongoDatabase   = "bistro"
	defaultTimezone        = "Local"
	defaultLogLevel        = "info"
	defaultShutdownTimeout = 10 * time.Second
	defaultRequestTimeout  = 15 * time.Second
	defaultCORSOrigins     = "*"
	defaultRateLimitBurst  = 50
	defaultPageSize        = 20
	defaultMaxPageSize     = 100
)

const dotEnvFile = ".env"

// Load reads an optional .env file, then parses environment variables and args.
func Load(args Args) (*Config, error) {
	if err := loadDotEnv(dotEnvFile); err != nil {
		return nil, err
	}
	return load(args, os.LookupEnv)
}

func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:      getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:     getString(lookup, "DATABASE_URI", ""),
		MongoDatabase:   getString(lookup, "MONGO_DATABASE", defaultMongoDatabase),
		ShutdownTimeout: getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		RequestTimeout:  getDuration(lookup, "REQUEST_TIMEOUT", defaultRequestTimeout),
		RateLimitRPS:    getFloat(lookup, "RATE_LIMIT_RPS", 0),
		RateLimitBurst:  getInt(lookup, "RATE_LIMIT_BURST", defaultRateLimitBurst),
		DefaultPageSize: getInt(lookup, "DEFAULT_PAGE_SIZE", defaultPageSize),
		MaxPageSize:     getInt(lookup, "MAX_PAGE_SIZE", defaultMaxPageSize),
	}

	fs := flag.NewFlagSet("bistro", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		timezone           = getString(lookup, "TIMEZONE", defaultTimezone)
		logLevel           = getString(lookup, "LOG_LEVEL", defaultLogLevel)
		origins            = getString(lookup, "CORS_ALLOWED_ORIGINS", defaultCORSOrigins)
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
		requestTimeoutStr  = cfg.RequestTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "Storage DSN: postgres://, mongodb:// or memory://")
	fs.StringVar(&cfg.MongoDatabase, "mongo-db", cfg.MongoDatabase, "MongoDB database name")
	fs.StringVar(&timezone, "tz", timezone, "Time zone for order numbers and daily stats")
	fs.StringVar(&logLevel, "log-level", logLevel, "Log level: debug, info, warn or error")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.StringVar(&requestTimeoutStr, "request-timeout", requestTimeoutStr, "Per request deadline")
	fs.StringVar(&origins, "cors-origins", origins, "Comma separated list of allowed CORS origins")
	fs.Float64Var(&cfg.RateLimitRPS, "rate-limit", cfg.RateLimitRPS, "Requests per second, 0 disables limiting")
	fs.IntVar(&cfg.RateLimitBurst, "rate-burst", cfg.RateLimitBurst, "Rate limiter burst size")
	fs.IntVar(&cfg.DefaultPageSize, "page-size", cfg.DefaultPageSize, "Default page size")
	fs.IntVar(&cfg.MaxPageSize, "max-page-size", cfg.MaxPageSize, "Maximum page size")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if cfg.RequestTimeout, err = time.ParseDuration(requestTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid request timeout: %w", err)
	}

	if cfg.Location, err = time.LoadLocation(timezone); err != nil {
		return nil, fmt.Errorf("invalid timezone: %w", err)
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(logLevel)); err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	cfg.CORSAllowedOrigins = splitList(origins)

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultRequestTimeout
	}

	if cfg.RateLimitRPS < 0 {
		cfg.RateLimitRPS = 0
	}

	if cfg.RateLimitBurst <= 0 {
		cfg.RateLimitBurst = defaultRateLimitBurst
	}

	if cfg.MaxPageSize <= 0 {
		cfg.MaxPageSize = defaultMaxPageSize
	}

	if cfg.DefaultPageSize <= 0 {
		cfg.DefaultPageSize = defaultPageSize
	}

	if cfg.DefaultPageSize > cfg.MaxPageSize {
		cfg.DefaultPageSize = cfg.MaxPageSize
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	return cfg, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getFloat(lookup envLookup, key string, def float64) float64 {
	if v, ok := lookup(key); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
