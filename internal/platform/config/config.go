package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Storage drivers.
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// Config holds application configuration.
type Config struct {
	Port            string
	IsProduction    bool
	StorageDriver   string
	DatabaseURL     string
	EnableDBCheck   bool
	FrontendBaseURL string

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	LoginDelay          time.Duration // Artificial delay before a login is answered
	StoreLatency        time.Duration // Artificial latency of in-memory store reads
	LoginRateLimit      string        // ulule/limiter formatted rate, e.g. "5-M"
	SessionSnapshotPath string        // Empty disables session persistence
	SeedFile            string        // Empty uses the embedded fixtures
	ShutdownTimeout     time.Duration
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("STORAGE_DRIVER", StorageMemory)
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_EXPIRY_DURATION", "24h")
	v.SetDefault("JWT_ISSUER", "access-governance-app")
	v.SetDefault("LOGIN_DELAY", "800ms")
	v.SetDefault("STORE_LATENCY", "300ms")
	v.SetDefault("LOGIN_RATE_LIMIT", "5-M")
	v.SetDefault("SESSION_SNAPSHOT_PATH", "sessions.json")
	v.SetDefault("SEED_FILE", "")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
}

// NewFlagSet returns the command line flags understood by LoadConfig.
func NewFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.String("port", "", "HTTP listen port (PORT)")
	fs.String("storage", "", "storage driver: memory or postgres (STORAGE_DRIVER)")
	fs.String("seed-file", "", "YAML fixture file to seed from (SEED_FILE)")
	fs.String("session-snapshot", "", "file sessions are persisted to (SESSION_SNAPSHOT_PATH)")
	fs.String("config", "", "optional .env file to load before the environment")
	return fs
}

var flagKeys = map[string]string{
	"port":             "PORT",
	"storage":          "STORAGE_DRIVER",
	"seed-file":        "SEED_FILE",
	"session-snapshot": "SESSION_SNAPSHOT_PATH",
}

// LoadConfig loads configuration from flags, environment variables and a .env
// file if present, in that order of precedence. fs may be nil.
func LoadConfig(fs *pflag.FlagSet) (*Config, error) {
	envFile := ""
	if fs != nil {
		if f := fs.Lookup("config"); f != nil {
			envFile = f.Value.String()
		}
	}
	// Attempt to load .env file, ignore error if it doesn't exist
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", envFile, err)
		}
	} else {
		_ = godotenv.Load()
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if fs != nil {
		for flagName, key := range flagKeys {
			f := fs.Lookup(flagName)
			if f == nil || !f.Changed {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("failed to bind flag %s: %w", flagName, err)
			}
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port:                v.GetString("PORT"),
		IsProduction:        v.GetBool("IS_PRODUCTION"),
		StorageDriver:       strings.ToLower(v.GetString("STORAGE_DRIVER")),
		DatabaseURL:         v.GetString("PGSQL_URL"),
		EnableDBCheck:       v.GetBool("ENABLE_DB_CHECK"),
		FrontendBaseURL:     v.GetString("FRONTEND_BASE_URL"),
		JWTSecret:           v.GetString("JWT_SECRET"),
		JWTIssuer:           v.GetString("JWT_ISSUER"),
		LoginRateLimit:      v.GetString("LOGIN_RATE_LIMIT"),
		SessionSnapshotPath: v.GetString("SESSION_SNAPSHOT_PATH"),
		SeedFile:            v.GetString("SEED_FILE"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	switch cfg.StorageDriver {
	case StorageMemory:
	case StoragePostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("PGSQL_URL is required when STORAGE_DRIVER is %s", StoragePostgres)
		}
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = defaultJWTSecret
	}
	if cfg.JWTSecret == defaultJWTSecret {
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	if cfg.JWTIssuer == "" {
		cfg.JWTIssuer = "access-governance-app"
		log.Printf("Warning: JWT_ISSUER not set. Defaulting to %s.\n", cfg.JWTIssuer)
	}

	if cfg.LoginRateLimit == "" {
		cfg.LoginRateLimit = "5-M"
	}

	cfg.JWTExpiryDuration = positiveDurationOr(v, "JWT_EXPIRY_DURATION", 24*time.Hour)
	cfg.LoginDelay = durationOr(v, "LOGIN_DELAY", 800*time.Millisecond)
	cfg.StoreLatency = durationOr(v, "STORE_LATENCY", 300*time.Millisecond)
	cfg.ShutdownTimeout = positiveDurationOr(v, "SHUTDOWN_TIMEOUT", 10*time.Second)

	return cfg, nil
}

// durationOr parses key as a time.Duration, logging and falling back to def on bad input.
func durationOr(v *viper.Viper, key string, def time.Duration) time.Duration {
	raw := v.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def.String())
		}
		return def
	}
	return d
}

// positiveDurationOr is durationOr that also rejects zero.
func positiveDurationOr(v *viper.Viper, key string, def time.Duration) time.Duration {
	d := durationOr(v, key, def)
	if d == 0 {
		log.Printf("Warning: %s must be greater than zero. Defaulting to %s.\n", key, def.String())
		return def
	}
	return d
}
