package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	Server    ServerConfig
	MongoDB   MongoDBConfig
	WordPress WordPressConfig
	CORS      CORSConfig
	Captcha   CaptchaConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	Environment  string
	LogLevel     string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type MongoDBConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type WordPressConfig struct {
	// Base URL of the self-hosted WordPress instance; its hostname doubles
	// as the WordPress.com site slug for the posts endpoints.
	URL string
	// Optional JSON list of fallback featured images, refreshed periodically.
	FallbackImageSourceURL string
}

type CORSConfig struct {
	Origins []string
}

type CaptchaConfig struct {
	RecaptchaSecret string
	TurnstileSecret string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
}

type RateLimitConfig struct {
	Enabled       bool
	UseRedis      bool
	RPS           float64
	Burst         int
	WindowSeconds int
}

// defaultCORSOrigins matches the deployed frontends when CORS_ORIGINS is unset.
var defaultCORSOrigins = []string{
	"https://yukoval-dakia.github.io",
	"http://localhost:3000",
	"https://worship.yukovalstudios.com",
}

// LoadConfig loads configuration from environment variables and .env file
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "5000")
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("SERVER_ENVIRONMENT", "development")
	viper.SetDefault("MONGODB_URI", "mongodb://mongodb:27017")
	viper.SetDefault("MONGODB_DATABASE", "center-believer")
	viper.SetDefault("MONGODB_TIMEOUT", 10)
	viper.SetDefault("WP_URL", "http://wordpress:80")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("RATE_LIMIT_RPS", 10.0)
	viper.SetDefault("RATE_LIMIT_BURST", 20)
	viper.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 1)

	origins := defaultCORSOrigins
	if raw := viper.GetString("CORS_ORIGINS"); raw != "" {
		origins = nil
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:         viper.GetString("SERVER_PORT"),
			Host:         viper.GetString("SERVER_HOST"),
			Environment:  viper.GetString("SERVER_ENVIRONMENT"),
			LogLevel:     viper.GetString("LOG_LEVEL"),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		MongoDB: MongoDBConfig{
			URI:      viper.GetString("MONGODB_URI"),
			Database: viper.GetString("MONGODB_DATABASE"),
			Timeout:  time.Duration(viper.GetInt("MONGODB_TIMEOUT")) * time.Second,
		},
		WordPress: WordPressConfig{
			URL:                    viper.GetString("WP_URL"),
			FallbackImageSourceURL: viper.GetString("FALLBACK_IMAGE_SOURCE_URL"),
		},
		CORS: CORSConfig{Origins: origins},
		Captcha: CaptchaConfig{
			RecaptchaSecret: os.Getenv("RECAPTCHA_SECRET_KEY"),
			TurnstileSecret: os.Getenv("TURNSTILE_SECRET_KEY"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: os.Getenv("REDIS_PASSWORD"),
		},
		RateLimit: RateLimitConfig{
			Enabled:       viper.GetBool("RATE_LIMIT_ENABLED"),
			UseRedis:      viper.GetBool("RATE_LIMIT_USE_REDIS"),
			RPS:           viper.GetFloat64("RATE_LIMIT_RPS"),
			Burst:         viper.GetInt("RATE_LIMIT_BURST"),
			WindowSeconds: viper.GetInt("RATE_LIMIT_WINDOW_SECONDS"),
		},
	}

	return cfg, nil
}

// IsProduction reports whether the service runs with production error masking.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}
