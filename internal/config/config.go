package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	// Storage engine: "postgres" (default) or "sqlite"
	DBDriver string

	// Postgres
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBSSLMode     string
	MaintenanceDB string

	// SQLite: one file per store under this directory
	SQLiteDir string

	// Control store (super-admin + admin registry)
	DBName string

	// Per-store pool bounds, applied to the control pool and every tenant pool
	PoolMaxOpen     int
	PoolMaxIdle     int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration

	// JWT (shared across all roles)
	JWTSecret string
	JWTExpiry time.Duration

	BcryptCost int

	// Server
	Port          string
	CORSOrigins   string
	RateLimit     int
	AuthRateLimit int

	// Error tracking
	SentryDSN string
	AppEnv    string

	// Logging
	LogLevel     string
	LogRetention time.Duration
}

// Load reads the environment. A .env file in the working directory, if
// present, fills in variables that are not already set.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		DBDriver: getEnv("DB_DRIVER", DriverPostgres),

		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "postgres"),
		DBPassword:    getEnv("DB_PASSWORD", ""),
		DBSSLMode:     getEnv("DB_SSLMODE", "disable"),
		MaintenanceDB: getEnv("DB_MAINTENANCE_NAME", "postgres"),

		SQLiteDir: getEnv("SQLITE_DIR", "data"),

		DBName: getEnv("DB_NAME", "multi_tenant_main"),

		PoolMaxOpen:     getEnvInt("DB_POOL_MAX_OPEN", 10),
		PoolMaxIdle:     getEnvInt("DB_POOL_MAX_IDLE", 5),
		ConnMaxLifetime: parseDuration(getEnv("DB_CONN_MAX_LIFETIME", "30m"), 30*time.Minute),
		ConnMaxIdleTime: parseDuration(getEnv("DB_CONN_MAX_IDLE_TIME", "5m"), 5*time.Minute),

		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTExpiry: parseDuration(getEnv("JWT_EXPIRY", "24h"), 24*time.Hour),

		BcryptCost: getEnvInt("BCRYPT_COST", 10),

		Port:          getEnv("PORT", "3000"),
		CORSOrigins:   getEnv("CORS_ORIGINS", "*"),
		RateLimit:     getEnvInt("RATE_LIMIT_PER_MIN", 60),
		AuthRateLimit: getEnvInt("AUTH_RATE_LIMIT_PER_MIN", 10),

		SentryDSN: getEnv("SENTRY_DSN", ""),
		AppEnv:    getEnv("APP_ENV", "development"),

		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogRetention: parseDuration(getEnv("LOG_RETENTION", "720h"), 30*24*time.Hour),
	}
}

// DSN returns a Postgres connection string for the named database.
func (c *Config) DSN(dbname string) string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + dbname +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return n
	}
	return fallback
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}
