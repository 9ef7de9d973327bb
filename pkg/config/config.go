package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm/logger"
)

// DBConfig holds the settings for one PostgreSQL server. The directory
// database uses DBName directly; tenant databases reuse the tenant server
// settings with the database name resolved per request.
type DBConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	LogLevel        logger.LogLevel
}

// DSN returns the PostgreSQL connection string
func (c *DBConfig) DSN() string {
	return c.DSNFor(c.DBName)
}

// DSNFor returns the connection string for this server with the database
// name overridden. Used to route into a tenant's physical database.
func (c *DBConfig) DSNFor(dbName string) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, dbName, c.SSLMode)
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Env  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	SigningKey      string
	ExpirationHours int
}

// AuthConfig holds the superadmin bootstrap credentials. The hash is a
// bcrypt hash; the plain secret never appears in configuration.
type AuthConfig struct {
	SuperadminUsername     string
	SuperadminPasswordHash string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string
}

// MetricsConfig holds metrics configuration
type MetricsConfig struct {
	Prefix string
}

// DashboardConfig holds cross-tenant aggregation settings
type DashboardConfig struct {
	FanoutLimit int
}

// Config holds all configuration
type Config struct {
	Server      ServerConfig
	DirectoryDB DBConfig
	TenantDB    DBConfig
	JWT         JWTConfig
	Auth        AuthConfig
	Log         LogConfig
	Metrics     MetricsConfig
	Dashboard   DashboardConfig
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		// Not returning error as .env file is optional
		fmt.Printf("Warning: .env file not found, using environment variables\n")
	}

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Env:  getEnv("APP_ENV", "development"),
		},
		DirectoryDB: DBConfig{
			Host:            getEnv("DIRECTORY_DB_HOST", "localhost"),
			Port:            getEnv("DIRECTORY_DB_PORT", "5432"),
			User:            getEnv("DIRECTORY_DB_USER", "postgres"),
			Password:        getEnv("DIRECTORY_DB_PASSWORD", "password"),
			DBName:          getEnv("DIRECTORY_DB_NAME", "service_plus"),
			SSLMode:         getEnv("DIRECTORY_DB_SSL_MODE", "disable"),
			MaxIdleConns:    getEnvAsInt("DIRECTORY_DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    getEnvAsInt("DIRECTORY_DB_MAX_OPEN_CONNS", 100),
			ConnMaxLifetime: getEnvAsDuration("DIRECTORY_DB_CONN_MAX_LIFETIME", 1*time.Hour),
			LogLevel:        getEnvAsLogLevel("DIRECTORY_DB_LOG_LEVEL", logger.Warn),
		},
		TenantDB: DBConfig{
			Host:            getEnv("TENANT_DB_HOST", "localhost"),
			Port:            getEnv("TENANT_DB_PORT", "5432"),
			User:            getEnv("TENANT_DB_USER", "postgres"),
			Password:        getEnv("TENANT_DB_PASSWORD", "password"),
			SSLMode:         getEnv("TENANT_DB_SSL_MODE", "disable"),
			MaxIdleConns:    getEnvAsInt("TENANT_DB_MAX_IDLE_CONNS", 2),
			MaxOpenConns:    getEnvAsInt("TENANT_DB_MAX_OPEN_CONNS", 10),
			ConnMaxLifetime: getEnvAsDuration("TENANT_DB_CONN_MAX_LIFETIME", 1*time.Hour),
			LogLevel:        getEnvAsLogLevel("TENANT_DB_LOG_LEVEL", logger.Warn),
		},
		JWT: JWTConfig{
			SigningKey:      getEnv("JWT_SIGNING_KEY", "serviceplussecretkey"),
			ExpirationHours: getEnvAsInt("JWT_EXPIRATION_HOURS", 24),
		},
		Auth: AuthConfig{
			SuperadminUsername:     getEnv("SUPERADMIN_USERNAME", "superadmin"),
			SuperadminPasswordHash: getEnv("SUPERADMIN_PASSWORD_HASH", ""),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Metrics: MetricsConfig{
			Prefix: getEnv("METRICS_PREFIX", "serviceplus"),
		},
		Dashboard: DashboardConfig{
			FanoutLimit: getEnvAsInt("DASHBOARD_FANOUT_LIMIT", 4),
		},
	}

	return config, nil
}

// LogConfig returns the configuration as a zap logger-friendly format
func (c *Config) LogConfig() []zap.Field {
	return []zap.Field{
		zap.String("environment", c.Server.Env),
		zap.String("directory_db_host", c.DirectoryDB.Host),
		zap.String("directory_db_name", c.DirectoryDB.DBName),
		zap.String("tenant_db_host", c.TenantDB.Host),
		zap.String("server_port", c.Server.Port),
	}
}

// Helper function to get environment variables with defaults
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// Helper function to get environment variables as integers
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// Helper function to get environment variables as durations
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// Helper function to get environment variables as log levels
func getEnvAsLogLevel(key string, defaultValue logger.LogLevel) logger.LogLevel {
	valueStr := getEnv(key, "")
	switch valueStr {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "warn":
		return logger.Warn
	case "info":
		return logger.Info
	default:
		return defaultValue
	}
}
