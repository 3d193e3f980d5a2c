package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Database DatabaseConfig `toml:"database"`
	Stripe   StripeConfig   `toml:"stripe"`
	SendGrid SendGridConfig `toml:"sendgrid"`
	Checkout CheckoutConfig `toml:"checkout"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

type StripeConfig struct {
	SecretKey      string `toml:"secret_key"`
	PublishableKey string `toml:"publishable_key"`
	WebhookSecret  string `toml:"webhook_secret"`
}

type SendGridConfig struct {
	APIKey          string `toml:"api_key"`
	SenderAddress   string `toml:"sender_address"`
	SenderName      string `toml:"sender_name"`
	BusinessAddress string `toml:"business_address"`
}

type CheckoutConfig struct {
	StaleIntentWindowMinutes int `toml:"stale_intent_window_minutes"`
}

// DSN возвращает строку подключения к PostgreSQL
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// Load читает конфигурацию из TOML файла.
// Секреты могут быть переопределены переменными окружения:
// STRIPE_SECRET_KEY, STRIPE_WEBHOOK_SECRET, SENDGRID_API_KEY.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	// Переопределение секретов из окружения
	if v := os.Getenv("STRIPE_SECRET_KEY"); v != "" {
		cfg.Stripe.SecretKey = v
	}
	if v := os.Getenv("STRIPE_WEBHOOK_SECRET"); v != "" {
		cfg.Stripe.WebhookSecret = v
	}
	if v := os.Getenv("SENDGRID_API_KEY"); v != "" {
		cfg.SendGrid.APIKey = v
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	cfg.applyDefaults()

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.HTTPPort <= 0 {
		return fmt.Errorf("config: server.http_port must be positive")
	}
	if c.Stripe.SecretKey == "" {
		return fmt.Errorf("config: stripe.secret_key is required")
	}
	if c.Stripe.WebhookSecret == "" {
		return fmt.Errorf("config: stripe.webhook_secret is required")
	}
	if c.SendGrid.APIKey == "" {
		return fmt.Errorf("config: sendgrid.api_key is required")
	}
	if c.SendGrid.SenderAddress == "" {
		return fmt.Errorf("config: sendgrid.sender_address is required")
	}
	if c.SendGrid.BusinessAddress == "" {
		return fmt.Errorf("config: sendgrid.business_address is required")
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Checkout.StaleIntentWindowMinutes <= 0 {
		c.Checkout.StaleIntentWindowMinutes = 30
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "pcs-checkout-service"
	}
}
