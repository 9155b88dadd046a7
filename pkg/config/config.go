package config

import (
	"errors"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	MLAPI     MLAPIConfig
	OpenAI    OpenAIConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Name        string
	Version     string
	Environment string
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type RedisConfig struct {
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	PoolSize      int
}

type MLAPIConfig struct {
	BaseURL     string
	TimeoutSecs int
}

type OpenAIConfig struct {
	APIKey string
	Model  string
}

type RateLimitConfig struct {
	RequestsPerSecond float64
	BurstSize         int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, errors.New("invalid redis database")
	}

	redisPool, err := strconv.Atoi(getEnv("REDIS_POOL_SIZE", "10"))
	if err != nil {
		return nil, errors.New("invalid redis pool size")
	}

	mlTimeout, err := strconv.Atoi(getEnv("MLAPI_TIMEOUT_SECS", "10"))
	if err != nil {
		return nil, errors.New("invalid mlapi timeout")
	}

	judgeRPS, err := strconv.ParseFloat(getEnv("JUDGE_REQUESTS_PER_SECOND", "5"), 64)
	if err != nil {
		return nil, errors.New("invalid judge requests per second")
	}

	judgeBurst, err := strconv.Atoi(getEnv("JUDGE_BURST_SIZE", "10"))
	if err != nil {
		return nil, errors.New("invalid judge burst size")
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "PostPilot API"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
		},
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "postpilot"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		Redis: RedisConfig{
			RedisHost:     getEnv("REDIS_HOST", "localhost"),
			RedisPort:     getEnv("REDIS_PORT", "6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       redisDB,
			PoolSize:      redisPool,
		},
		MLAPI: MLAPIConfig{
			BaseURL:     getEnv("MLAPI_BASE_URL", ""),
			TimeoutSecs: mlTimeout,
		},
		OpenAI: OpenAIConfig{
			APIKey: getEnv("OPENAI_API_KEY", ""),
			Model:  getEnv("OPENAI_JUDGE_MODEL", ""),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: judgeRPS,
			BurstSize:         judgeBurst,
		},
	}

	if cfg.Database.Password == "" {
		return nil, errors.New("missing database password")
	}

	if cfg.MLAPI.BaseURL == "" {
		return nil, errors.New("missing mlapi base url")
	}

	if cfg.OpenAI.APIKey == "" {
		return nil, errors.New("missing openai api key")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}
