package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultInferenceURL — публичный эндпоинт модели классификации болезней.
const DefaultInferenceURL = "https://mushroom-disease-predictor.onrender.com/predict"

// Бэкенды хранилища языковых настроек.
const (
	PrefsMemory   = "memory"
	PrefsSQLite   = "sqlite"
	PrefsPostgres = "postgres"
	PrefsRedis    = "redis"
)

type Config struct {
	TelegramToken string
	HTTPAddr      string
	LogLevel      string

	InferenceURL        string
	ConfidenceThreshold float64
	DisplayWidth        int
	DisplayHeight       int

	PrefsBackend  string
	SQLitePath    string
	DatabaseURL   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	CameraFrontDevice int
	CameraRearDevice  int

	SessionIdleTimeout time.Duration

	GeminiAPIKey string
	GeminiModel  string
}

func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	cfg := &Config{
		TelegramToken: os.Getenv("TELEGRAM_TOKEN"),
		HTTPAddr:      getEnv("HTTP_ADDR", ":8080"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),

		InferenceURL:        getEnv("INFERENCE_URL", DefaultInferenceURL),
		ConfidenceThreshold: getEnvAsFloat("CONFIDENCE_THRESHOLD", 0.4),
		DisplayWidth:        getEnvAsInt("DISPLAY_WIDTH", 800),
		DisplayHeight:       getEnvAsInt("DISPLAY_HEIGHT", 600),

		PrefsBackend:  strings.ToLower(getEnv("PREFS_BACKEND", PrefsMemory)),
		SQLitePath:    getEnv("SQLITE_PATH", "mushroom.db"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		CameraFrontDevice: getEnvAsInt("CAMERA_FRONT_DEVICE", 0),
		CameraRearDevice:  getEnvAsInt("CAMERA_REAR_DEVICE", 1),

		SessionIdleTimeout: getEnvAsDuration("SESSION_IDLE_TIMEOUT", 30*time.Minute),

		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет согласованность настроек.
func (c *Config) Validate() error {
	if c.TelegramToken == "" && c.HTTPAddr == "" {
		return errors.New("either TELEGRAM_TOKEN or HTTP_ADDR is required")
	}
	if c.InferenceURL == "" {
		return errors.New("INFERENCE_URL is empty")
	}
	if c.ConfidenceThreshold < 0 || c.ConfidenceThreshold > 1 {
		return errors.New("CONFIDENCE_THRESHOLD must be within [0, 1]")
	}
	if c.SessionIdleTimeout <= 0 {
		return errors.New("SESSION_IDLE_TIMEOUT must be positive")
	}

	switch c.PrefsBackend {
	case PrefsMemory, PrefsSQLite, PrefsRedis:
	case PrefsPostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for postgres preferences")
		}
	default:
		return errors.New("unknown PREFS_BACKEND: " + c.PrefsBackend)
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
