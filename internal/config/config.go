package config

import (
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig
	S3     S3Config
	Queue  QueueConfig
	Logs   LogsConfig
	Cache  CacheConfig
}

type ServerConfig struct {
	Port           string
	Mode           string
	ReadTimeout    int
	WriteTimeout   int
	AllowedOrigins []string
}

type S3Config struct {
	Endpoint         string
	AccessKey        string
	SecretKey        string
	Bucket           string
	Region           string
	UseSSL           bool
	PresignTTLSecond int
}

type QueueConfig struct {
	URL    string
	Region string
}

type LogsConfig struct {
	MaxMessages int
	WaitSeconds int
}

type CacheConfig struct {
	Enabled         bool
	RedisURL        string
	RedisHost       string
	RedisPort       string
	RedisPassword   string
	RedisDB         int
	FilesTTLSeconds int
}

var (
	once     sync.Once
	instance *Config
)

func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		// Set default values
		viper.SetDefault("SERVER_PORT", "8080")
		viper.SetDefault("SERVER_MODE", "debug")
		viper.SetDefault("SERVER_READ_TIMEOUT", 15)
		viper.SetDefault("SERVER_WRITE_TIMEOUT", 15)
		viper.SetDefault("SERVER_ALLOWED_ORIGINS", []string{"*"})
		viper.SetDefault("S3_ENDPOINT", "s3.amazonaws.com")
		viper.SetDefault("S3_ACCESS_KEY", "")
		viper.SetDefault("S3_SECRET_KEY", "")
		viper.SetDefault("S3_BUCKET", "")
		viper.SetDefault("S3_REGION", "us-east-1")
		viper.SetDefault("S3_USE_SSL", true)
		viper.SetDefault("PRESIGN_TTL_SECONDS", 3600)
		viper.SetDefault("SQS_QUEUE_URL", "")
		viper.SetDefault("AWS_REGION", "us-east-1")
		viper.SetDefault("LOGS_MAX_MESSAGES", 10)
		viper.SetDefault("LOGS_WAIT_SECONDS", 2)
		viper.SetDefault("CACHE_ENABLED", false)
		viper.SetDefault("REDIS_URL", "")
		viper.SetDefault("REDIS_HOST", "127.0.0.1")
		viper.SetDefault("REDIS_PORT", "6379")
		viper.SetDefault("REDIS_PASSWORD", "")
		viper.SetDefault("REDIS_DB", 0)
		viper.SetDefault("CACHE_FILES_TTL_SECONDS", 15)

		// Read from environment variables
		viper.AutomaticEnv()

		instance = &Config{
			Server: ServerConfig{
				Port:           viper.GetString("SERVER_PORT"),
				Mode:           viper.GetString("SERVER_MODE"),
				ReadTimeout:    viper.GetInt("SERVER_READ_TIMEOUT"),
				WriteTimeout:   viper.GetInt("SERVER_WRITE_TIMEOUT"),
				AllowedOrigins: viper.GetStringSlice("SERVER_ALLOWED_ORIGINS"),
			},
			S3: S3Config{
				Endpoint:         viper.GetString("S3_ENDPOINT"),
				AccessKey:        viper.GetString("S3_ACCESS_KEY"),
				SecretKey:        viper.GetString("S3_SECRET_KEY"),
				Bucket:           viper.GetString("S3_BUCKET"),
				Region:           viper.GetString("S3_REGION"),
				UseSSL:           viper.GetBool("S3_USE_SSL"),
				PresignTTLSecond: viper.GetInt("PRESIGN_TTL_SECONDS"),
			},
			Queue: QueueConfig{
				URL:    viper.GetString("SQS_QUEUE_URL"),
				Region: viper.GetString("AWS_REGION"),
			},
			Logs: LogsConfig{
				MaxMessages: viper.GetInt("LOGS_MAX_MESSAGES"),
				WaitSeconds: viper.GetInt("LOGS_WAIT_SECONDS"),
			},
			Cache: CacheConfig{
				Enabled:         viper.GetBool("CACHE_ENABLED"),
				RedisURL:        viper.GetString("REDIS_URL"),
				RedisHost:       viper.GetString("REDIS_HOST"),
				RedisPort:       viper.GetString("REDIS_PORT"),
				RedisPassword:   viper.GetString("REDIS_PASSWORD"),
				RedisDB:         viper.GetInt("REDIS_DB"),
				FilesTTLSeconds: viper.GetInt("CACHE_FILES_TTL_SECONDS"),
			},
		}
	})

	return instance
}
