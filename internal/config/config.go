package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"portfolio-site/internal/platform/logger"
)

// Store backends.
const (
	StoreFile     = "file"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
)

// Upload backends.
const (
	UploadLocal = "local"
	UploadGCS   = "gcs"
)

type Config struct {
	Port    string
	LogMode string

	StoreBackend string
	DataFile     string
	DatabaseURL  string
	DocumentID   string
	Redis        RedisConfig

	Upload UploadConfig

	ChromePath  string
	AdminMode   bool
	AdminToken  string
	BodyLimitMB int
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Key      string
}

type UploadConfig struct {
	Backend       string
	Dir           string
	PublicPrefix  string
	GCSBucket     string
	GCSPublicBase string
	EmulatorHost  string
}

// Load reads .env when present, then the process environment.
func Load(log *logger.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil && log != nil {
		log.Debug("no .env file loaded", "error", err)
	}

	cfg := &Config{
		Port:         getEnv("PORT", "8080", log),
		LogMode:      getEnv("LOG_MODE", "dev", log),
		StoreBackend: strings.ToLower(getEnv("STORE_BACKEND", StoreFile, log)),
		DataFile:     getEnv("DATA_FILE", "data/data.json", log),
		DatabaseURL:  getEnv("DATABASE_URL", "", log),
		DocumentID:   getEnv("DOCUMENT_ID", "default", log),
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379", log),
			Password: getEnv("REDIS_PASSWORD", "", log),
			DB:       getEnvInt("REDIS_DB", 0, log),
			Key:      getEnv("REDIS_KEY", "portfolio:data", log),
		},
		Upload: UploadConfig{
			Backend:       strings.ToLower(getEnv("UPLOAD_BACKEND", UploadLocal, log)),
			Dir:           getEnv("UPLOAD_DIR", "public/images/uploads", log),
			PublicPrefix:  getEnv("UPLOAD_PUBLIC_PREFIX", "/images/uploads", log),
			GCSBucket:     getEnv("GCS_BUCKET", "", log),
			GCSPublicBase: getEnv("GCS_PUBLIC_BASE_URL", "", log),
			EmulatorHost:  getEnv("STORAGE_EMULATOR_HOST", "", log),
		},
		ChromePath:  getEnv("CHROME_PATH", "", log),
		AdminMode:   getEnvBool("ADMIN_MODE", false, log),
		AdminToken:  getEnv("ADMIN_TOKEN", "", log),
		BodyLimitMB: getEnvInt("BODY_LIMIT_MB", 8, log),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.StoreBackend {
	case StoreFile:
		if c.DataFile == "" {
			return fmt.Errorf("DATA_FILE is required for the file store")
		}
	case StorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres store")
		}
	case StoreRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("REDIS_ADDR is required for the redis store")
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}
	switch c.Upload.Backend {
	case UploadLocal:
	case UploadGCS:
		if c.Upload.GCSBucket == "" {
			return fmt.Errorf("GCS_BUCKET is required for the gcs upload backend")
		}
	default:
		return fmt.Errorf("unknown UPLOAD_BACKEND %q", c.Upload.Backend)
	}
	if c.BodyLimitMB <= 0 {
		return fmt.Errorf("BODY_LIMIT_MB must be positive")
	}
	return nil
}

func secret(key string) bool {
	return strings.Contains(key, "TOKEN") || strings.Contains(key, "PASSWORD") || key == "DATABASE_URL"
}

func getEnv(key, defaultVal string, log *logger.Logger) string {
	if log != nil {
		log = log.With("env_var", key)
	}
	val, ok := os.LookupEnv(key)
	if !ok {
		if log != nil {
			log.Debug("environment variable not found, using default", "default", defaultVal)
		}
		return defaultVal
	}
	if log != nil {
		if secret(key) {
			log.Debug("environment variable found")
		} else {
			log.Debug("environment variable found", "value", val)
		}
	}
	return val
}

func getEnvInt(key string, defaultVal int, log *logger.Logger) int {
	raw := getEnv(key, strconv.Itoa(defaultVal), log)
	i, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		if log != nil {
			log.Debug("environment variable is not an int, using default", "env_var", key, "provided", raw, "default", defaultVal)
		}
		return defaultVal
	}
	return i
}

func getEnvBool(key string, defaultVal bool, log *logger.Logger) bool {
	raw := getEnv(key, strconv.FormatBool(defaultVal), log)
	b, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		if log != nil {
			log.Debug("environment variable is not a bool, using default", "env_var", key, "provided", raw, "default", defaultVal)
		}
		return defaultVal
	}
	return b
}
