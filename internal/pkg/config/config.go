package config

import (
	"errors"
	"log"
	"os"

	"github.com/spf13/viper"
)

// Config is the process-wide configuration, loaded once at startup and
// treated as immutable afterwards. Gateway credentials and the mock flag are
// injected into their consumers at construction, never re-read per call.
type Config struct {
	Server         ServerConfig         `mapstructure:"server"`
	Database       DatabaseConfig       `mapstructure:"database"`
	Redis          RedisConfig          `mapstructure:"redis"`
	JWT            JWTConfig            `mapstructure:"jwt"`
	App            AppConfig            `mapstructure:"app"`
	Razorpay       RazorpayConfig       `mapstructure:"razorpay"`
	PaymentService PaymentServiceConfig `mapstructure:"payment_service"`
	Email          EmailConfig          `mapstructure:"email"`
	Reconciler     ReconcilerConfig     `mapstructure:"reconciler"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	Port     string `mapstructure:"port"`
	SSLMode  string `mapstructure:"sslmode"`
	TimeZone string `mapstructure:"timezone"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type JWTConfig struct {
	Secret string `mapstructure:"secret"`
	Expire int64  `mapstructure:"expire"` // hours
}

type AppConfig struct {
	Env   string `mapstructure:"env"`
	Debug bool   `mapstructure:"debug"`
}

// RazorpayConfig carries the gateway credentials. Mock swaps the real
// gateway for one that fabricates order ids and accepts any signature;
// it must never be enabled in a production profile.
type RazorpayConfig struct {
	KeyID     string `mapstructure:"key_id"`
	KeySecret string `mapstructure:"key_secret"`
	Currency  string `mapstructure:"currency"`
	Mock      bool   `mapstructure:"mock"`
}

// PaymentServiceConfig configures the order service's HTTP client for the
// payment service. TimeoutSeconds bounds the blocking create-payment call.
type PaymentServiceConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

type EmailConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

// ReconcilerConfig drives the payment-link reconciliation sweep.
type ReconcilerConfig struct {
	IntervalSeconds int `mapstructure:"interval_seconds"`
	MaxAttempts     int `mapstructure:"max_attempts"`
}

var GlobalConfig Config

// Validate checks the parts every deployment needs. Gateway credentials are
// only required when mock mode is off.
func (c *Config) Validate() error {
	if c.Database.Host == "" || c.Database.User == "" || c.Database.DBName == "" {
		return errors.New("database configuration is incomplete")
	}
	if c.Redis.Addr == "" {
		return errors.New("redis address is required")
	}
	if !c.Razorpay.Mock && (c.Razorpay.KeyID == "" || c.Razorpay.KeySecret == "") {
		return errors.New("razorpay credentials are required unless mock mode is enabled")
	}
	if c.App.Env == "production" && c.Razorpay.Mock {
		return errors.New("razorpay mock mode must not be enabled in production")
	}
	if c.JWT.Secret != "" && len(c.JWT.Secret) < 32 {
		return errors.New("JWT secret should be at least 32 characters")
	}
	return nil
}

// LoadConfig reads configs/config.yaml (or config.<APP_ENV>.yaml), applies
// defaults and environment overrides, then validates into GlobalConfig.
func LoadConfig() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}

	configName := "config"
	if env != "dev" {
		configName = "config." + env
	}

	viper.SetConfigName(configName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath(".")

	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("jwt.expire", 24)
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("app.env", env)
	viper.SetDefault("app.debug", env == "dev")
	viper.SetDefault("razorpay.currency", "INR")
	viper.SetDefault("razorpay.mock", false)
	viper.SetDefault("payment_service.base_url", "http://localhost:8081")
	viper.SetDefault("payment_service.timeout_seconds", 10)
	viper.SetDefault("reconciler.interval_seconds", 60)
	viper.SetDefault("reconciler.max_attempts", 5)

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: Config file not found, using defaults or env vars: %v", err)
	}

	viper.AutomaticEnv()

	if err := viper.Unmarshal(&GlobalConfig); err != nil {
		log.Fatalf("Unable to decode config into struct: %v", err)
	}

	// Explicit env overrides for values that matter in containers.
	if host := os.Getenv("DB_HOST"); host != "" {
		GlobalConfig.Database.Host = host
	}
	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		GlobalConfig.Redis.Addr = redisAddr
	}
	if keySecret := os.Getenv("RAZORPAY_KEY_SECRET"); keySecret != "" {
		GlobalConfig.Razorpay.KeySecret = keySecret
	}
	if paymentURL := os.Getenv("PAYMENT_SERVICE_URL"); paymentURL != "" {
		GlobalConfig.PaymentService.BaseURL = paymentURL
	}

	if err := GlobalConfig.Validate(); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	log.Printf("Configuration loaded and validated successfully. Environment: %s", GlobalConfig.App.Env)
}
