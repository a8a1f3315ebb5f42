package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress       string
	DatabaseURI      string
	OfflineMode      bool
	RedisURL         string
	CatalogCacheTTL  time.Duration
	JWTSecret        string
	WizardSessionTTL time.Duration
	SweepInterval    time.Duration
	ShutdownTimeout  time.Duration
	LogLevel         slog.Level
}

const (
	defaultRunAddress       = ":8080"
	defaultJWTSecret        = "change-me-in-production"
	defaultCatalogCacheTTL  = 5 * time.Minute
	defaultWizardSessionTTL = 30 * time.Minute
	defaultSweepInterval    = time.Minute
	defaultShutdownTimeout  = 10 * time.Second
	defaultEnvFile          = ".env"
)

// Load parses configuration from an optional dotenv file, environment variables and flags.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv, godotenv.Read)
}

type envLookup func(string) (string, bool)

type envFileReader func(filenames ...string) (map[string]string, error)

func load(args []string, lookup envLookup, readEnvFile envFileReader) (*Config, error) {
	envFile := getString(lookup, "ENV_FILE", defaultEnvFile)
	if path := flagValue(args, "env-file"); path != "" {
		envFile = path
	}

	fileEnv, err := readEnvFile(envFile)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read env file: %w", err)
		}
		fileEnv = nil
	}
	lookup = withFallback(lookup, fileEnv)

	cfg := &Config{
		RunAddress:       getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:      getString(lookup, "DATABASE_URI", ""),
		OfflineMode:      getBool(lookup, "OFFLINE_MODE", false),
		RedisURL:         getString(lookup, "REDIS_URL", ""),
		CatalogCacheTTL:  getDuration(lookup, "CATALOG_CACHE_TTL", defaultCatalogCacheTTL),
		JWTSecret:        getString(lookup, "JWT_SECRET", defaultJWTSecret),
		WizardSessionTTL: getDuration(lookup, "WIZARD_SESSION_TTL", defaultWizardSessionTTL),
		SweepInterval:    getDuration(lookup, "SWEEP_INTERVAL", defaultSweepInterval),
		ShutdownTimeout:  getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	flags := flag.NewFlagSet("routemanager", flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	var (
		cacheTTLStr        = cfg.CatalogCacheTTL.String()
		wizardTTLStr       = cfg.WizardSessionTTL.String()
		sweepIntervalStr   = cfg.SweepInterval.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
		logLevelStr        = getString(lookup, "LOG_LEVEL", "info")
		envFileFlag        string
	)

	flags.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	flags.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	flags.BoolVar(&cfg.OfflineMode, "offline", cfg.OfflineMode, "Serve in-memory fixture data instead of PostgreSQL")
	flags.StringVar(&cfg.RedisURL, "redis", cfg.RedisURL, "Redis URL for catalog cache")
	flags.StringVar(&cacheTTLStr, "cache-ttl", cacheTTLStr, "Catalog cache entry lifetime")
	flags.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Secret for signing auth tokens")
	flags.StringVar(&wizardTTLStr, "wizard-ttl", wizardTTLStr, "Idle lifetime of order wizard sessions")
	flags.StringVar(&sweepIntervalStr, "sweep-interval", sweepIntervalStr, "Interval between expired session sweeps")
	flags.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	flags.StringVar(&logLevelStr, "log-level", logLevelStr, "Log level (debug, info, warn, error)")
	flags.StringVar(&envFileFlag, "env-file", envFile, "Dotenv file read before the environment")

	if err := flags.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if cfg.CatalogCacheTTL, err = time.ParseDuration(cacheTTLStr); err != nil {
		return nil, fmt.Errorf("invalid cache ttl: %w", err)
	}

	if cfg.WizardSessionTTL, err = time.ParseDuration(wizardTTLStr); err != nil {
		return nil, fmt.Errorf("invalid wizard ttl: %w", err)
	}

	if cfg.SweepInterval, err = time.ParseDuration(sweepIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid sweep interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(logLevelStr)); err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	if secretFile, ok := lookup("JWT_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read jwt secret file: %w", err)
		}
		cfg.JWTSecret = strings.TrimSpace(string(content))
	}

	if cfg.CatalogCacheTTL <= 0 {
		cfg.CatalogCacheTTL = defaultCatalogCacheTTL
	}

	if cfg.WizardSessionTTL <= 0 {
		cfg.WizardSessionTTL = defaultWizardSessionTTL
	}

	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = defaultSweepInterval
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DatabaseURI == "" && !cfg.OfflineMode {
		return nil, fmt.Errorf("database URI must be provided unless offline mode is enabled")
	}

	return cfg, nil
}

// flagValue peeks at a flag before the full flag set is parsed.
func flagValue(args []string, name string) string {
	for i, arg := range args {
		trimmed := strings.TrimLeft(arg, "-")
		if trimmed == arg {
			continue
		}
		if value, ok := strings.CutPrefix(trimmed, name+"="); ok {
			return value
		}
		if trimmed == name && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

func withFallback(lookup envLookup, fallback map[string]string) envLookup {
	if len(fallback) == 0 {
		return lookup
	}
	return func(key string) (string, bool) {
		if v, ok := lookup(key); ok && v != "" {
			return v, true
		}
		v, ok := fallback[key]
		return v, ok
	}
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getBool(lookup envLookup, key string, def bool) bool {
	if v, ok := lookup(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
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
