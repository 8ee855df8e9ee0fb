package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBPath string
	DBUrl  string

	ServerHost string
	ServerPort string
	UIOrigin   string

	JWTSecret  string
	SessionTTL time.Duration

	LogLevel  string
	LogFormat string
	Timezone  string

	AdminInitialPassword string

	BackupS3Bucket    string
	BackupS3Region    string
	BackupS3Endpoint  string
	BackupS3AccessKey string
	BackupS3SecretKey string
}

func Load() *Config {
	// .env é opcional (instalação desktop normalmente não tem)
	_ = godotenv.Load()

	return &Config{
		DBPath: getEnv("DB_PATH", "data/salon.db"),
		DBUrl:  getEnv("DATABASE_URL", ""),

		ServerHost: getEnv("SERVER_HOST", "127.0.0.1"),
		ServerPort: getEnv("SERVER_PORT", "8787"),
		UIOrigin:   getEnv("UI_ORIGIN", ""),

		JWTSecret:  getEnv("JWT_SECRET", "changeme"),
		SessionTTL: parseDuration(getEnv("SESSION_TTL", "12h"), 12*time.Hour),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),
		Timezone:  getEnv("TIMEZONE", ""),

		AdminInitialPassword: getEnv("ADMIN_INITIAL_PASSWORD", "admin"),

		BackupS3Bucket:    getEnv("BACKUP_S3_BUCKET", ""),
		BackupS3Region:    getEnv("BACKUP_S3_REGION", "auto"),
		BackupS3Endpoint:  getEnv("BACKUP_S3_ENDPOINT", ""),
		BackupS3AccessKey: getEnv("BACKUP_S3_ACCESS_KEY", ""),
		BackupS3SecretKey: getEnv("BACKUP_S3_SECRET_KEY", ""),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDuration(value string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.ServerHost, c.ServerPort)
}

// UsesPostgres indica que DATABASE_URL aponta para um servidor postgres
// em vez do arquivo local.
func (c *Config) UsesPostgres() bool {
	return strings.HasPrefix(c.DBUrl, "postgres://") ||
		strings.HasPrefix(c.DBUrl, "postgresql://")
}

func (c *Config) BackupUploadEnabled() bool {
	return c.BackupS3Bucket != ""
}
