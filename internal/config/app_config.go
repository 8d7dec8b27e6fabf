package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"
	DBDriverMemory   = "memory"
)

type AppConfig struct {
	AppPort               string
	AppEnv                string
	AppCorsAllowedOrigins []string
	TrustedProxyCIDRs     []string

	DBDriver              string
	DBHost                string
	DBPort                string
	DBUser                string
	DBPassword            string
	DBName                string
	DBSSLMode             string
	DBSQLitePath          string
	DBMigrate             bool
	DBMaxOpenConns        int
	DBMaxIdleConns        int
	DBConnMaxIdleSeconds  int
	DBConnectTimeoutSecs  int
	DBStartupPingAttempts int

	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	RateLimitReportsPerHour  int
	RateLimitCommentsPerHour int
	RateLimitUploadsPerHour  int

	S3Bucket               string
	S3Region               string
	S3AccessKey            string
	S3SecretKey            string
	S3Endpoint             string
	S3PublicDomain         string
	S3UploadPrefix         string
	S3PresignExpirySeconds int

	SentryDSN string

	UploadCleanupCron    string
	UploadRetentionHours int
}

func LoadAppConfig() *AppConfig {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, reading from system environment variables")
	}

	cfg := &AppConfig{
		AppPort:               mustGetEnv("APP_PORT"),
		AppEnv:                getEnv("APP_ENV", "development"),
		AppCorsAllowedOrigins: splitList(getEnv("APP_CORS_ALLOWED_ORIGINS", "*")),
		TrustedProxyCIDRs:     splitList(getEnv("TRUSTED_PROXY_CIDRS", "")),

		DBDriver:              strings.ToLower(getEnv("DB_DRIVER", DBDriverPostgres)),
		DBHost:                getEnv("DB_HOST", "localhost"),
		DBPort:                getEnv("DB_PORT", "5432"),
		DBUser:                getEnv("DB_USER", ""),
		DBPassword:            getEnv("DB_PASSWORD", ""),
		DBName:                getEnv("DB_NAME", ""),
		DBSSLMode:             getEnv("DB_SSLMODE", "require"),
		DBSQLitePath:          getEnv("DB_SQLITE_PATH", "data/community_report.db"),
		DBMigrate:             getEnvAsBool("DB_MIGRATE", true),
		DBMaxOpenConns:        getEnvAsInt("DB_MAX_OPEN_CONNS", 20),
		DBMaxIdleConns:        getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
		DBConnMaxIdleSeconds:  getEnvAsInt("DB_CONN_MAX_IDLE_SECONDS", 30),
		DBConnectTimeoutSecs:  getEnvAsInt("DB_CONNECT_TIMEOUT_SECONDS", 10),
		DBStartupPingAttempts: getEnvAsInt("DB_STARTUP_PING_ATTEMPTS", 3),

		RedisHost:     getEnv("REDIS_HOST", ""),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		RateLimitReportsPerHour:  getEnvAsInt("RATE_LIMIT_REPORTS_PER_HOUR", 20),
		RateLimitCommentsPerHour: getEnvAsInt("RATE_LIMIT_COMMENTS_PER_HOUR", 60),
		RateLimitUploadsPerHour:  getEnvAsInt("RATE_LIMIT_UPLOADS_PER_HOUR", 80),

		S3Bucket:               getEnv("S3_BUCKET", ""),
		S3Region:               getEnv("S3_REGION", "us-east-1"),
		S3AccessKey:            getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey:            getEnv("S3_SECRET_KEY", ""),
		S3Endpoint:             getEnv("S3_ENDPOINT", ""),
		S3PublicDomain:         getEnv("S3_PUBLIC_DOMAIN", ""),
		S3UploadPrefix:         getEnv("S3_UPLOAD_PREFIX", "uploads"),
		S3PresignExpirySeconds: getEnvAsInt("S3_PRESIGN_EXPIRY_SECONDS", 300),

		SentryDSN: getEnv("SENTRY_DSN", ""),

		UploadCleanupCron:    getEnv("UPLOAD_CLEANUP_CRON", "0 3 * * *"),
		UploadRetentionHours: getEnvAsInt("UPLOAD_RETENTION_HOURS", 24),
	}

	if cfg.DBDriver == DBDriverPostgres {
		cfg.DBUser = mustGetEnv("DB_USER")
		cfg.DBPassword = mustGetEnv("DB_PASSWORD")
		cfg.DBName = mustGetEnv("DB_NAME")
	}

	return cfg
}

func (c *AppConfig) DBConnectionString() string {
	return fmt.Sprintf("host=%s port=%s user=%s dbname=%s password=%s sslmode=%s connect_timeout=%d",
		c.DBHost, c.DBPort, c.DBUser, c.DBName, c.DBPassword, c.DBSSLMode, c.DBConnectTimeoutSecs)
}

func (c *AppConfig) RedisEnabled() bool {
	return c.RedisHost != ""
}

func (c *AppConfig) S3Enabled() bool {
	return c.S3Bucket != ""
}

func splitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func mustGetEnv(key string) string {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		slog.Error("Environment variable is required but not set", "key", key)
		os.Exit(1)
	}
	return value
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valStr, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		slog.Warn("Environment variable must be an integer, using fallback", "key", key, "value", valStr, "fallback", fallback)
		return fallback
	}
	return val
}

func getEnvAsBool(key string, fallback bool) bool {
	valStr, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	val, err := strconv.ParseBool(valStr)
	if err != nil {
		slog.Warn("Environment variable must be a boolean, using fallback", "key", key, "value", valStr, "fallback", fallback)
		return fallback
	}
	return val
}
