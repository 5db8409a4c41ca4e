package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Store drivers accepted by StoreDriver.
const (
	StoreDriverMemory   = "memory"
	StoreDriverSQLite   = "sqlite"
	StoreDriverPostgres = "postgres"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName           string
	AppEnv            string
	AppPort           string
	StoreDriver       string
	SQLitePath        string
	DatabaseURL       string
	RedisURL          string
	NATSURL           string
	EventsChannel     string
	JWTSecret         string
	RolesClaim        string
	DashboardCacheTTL time.Duration
	SeedEnabled       bool
	SeedOnStart       bool
	SeedStudents      int
	ImportRateLimit   int
	ImportMaxSizeMB   int
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("SCHOOL")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Schoolboard API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("store.driver", StoreDriverSQLite)
	v.SetDefault("sqlite.path", "school.db")
	v.SetDefault("events.channel", "school:records")
	v.SetDefault("auth.roles_claim", "https://my-app.com/roles")
	v.SetDefault("dashboard.cache_ttl", "1m")
	v.SetDefault("seed.enabled", true)
	v.SetDefault("seed.on_start", false)
	v.SetDefault("seed.students", 100)
	v.SetDefault("import.rate_limit", 5)
	v.SetDefault("import.max_size_mb", 5)

	ttlString := v.GetString("dashboard.cache_ttl")
	if ttlString == "" {
		ttlString = "1m"
	}

	ttl, err := time.ParseDuration(ttlString)
	if err != nil {
		return Config{}, fmt.Errorf("invalid dashboard cache ttl: %w", err)
	}

	cfg := Config{
		AppName:           v.GetString("app.name"),
		AppEnv:            v.GetString("app.env"),
		AppPort:           v.GetString("app.port"),
		StoreDriver:       strings.ToLower(strings.TrimSpace(v.GetString("store.driver"))),
		SQLitePath:        v.GetString("sqlite.path"),
		DatabaseURL:       v.GetString("database.url"),
		RedisURL:          v.GetString("redis.url"),
		NATSURL:           v.GetString("nats.url"),
		EventsChannel:     v.GetString("events.channel"),
		JWTSecret:         v.GetString("jwt.secret"),
		RolesClaim:        v.GetString("auth.roles_claim"),
		DashboardCacheTTL: ttl,
		SeedEnabled:       v.GetBool("seed.enabled"),
		SeedOnStart:       v.GetBool("seed.on_start"),
		SeedStudents:      v.GetInt("seed.students"),
		ImportRateLimit:   v.GetInt("import.rate_limit"),
		ImportMaxSizeMB:   v.GetInt("import.max_size_mb"),
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	switch cfg.StoreDriver {
	case StoreDriverMemory, StoreDriverSQLite:
	case StoreDriverPostgres:
		if cfg.DatabaseURL == "" {
			return Config{}, fmt.Errorf("database url must be provided for the postgres store")
		}
	default:
		return Config{}, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
	}

	if cfg.SeedStudents <= 0 {
		cfg.SeedStudents = 100
	}

	if cfg.ImportRateLimit <= 0 {
		cfg.ImportRateLimit = 5
	}

	if cfg.ImportMaxSizeMB <= 0 {
		cfg.ImportMaxSizeMB = 5
	}

	return cfg, nil
}
