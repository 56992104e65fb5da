package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/amortization_manager/internal/core/domain"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// AmortizationConfig bounds schedule generation and the write retry loop.
type AmortizationConfig struct {
	MaxRetries        int
	MaxInterestRate   decimal.Decimal
	MaxInstallments   int
	CurrencyPrecision int
}

// SAPConfig holds the Service Layer settings used to post payments.
type SAPConfig struct {
	Enabled       bool
	ServiceURL    string
	CompanyDB     string
	Username      string
	Password      string
	Timeout       time.Duration
	DebitAccount  string
	CreditAccount string
}

// KafkaConfig holds the event broker settings. No brokers means events are only logged.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	MigrationsPath string
	JWTSecret      string
	JWTIssuer      string
	LogLevel       string
	LogFormat      string
	CORSOrigins    []string
	RateLimit      string // limiter formatted rate, e.g. "100-H"

	Amortization AmortizationConfig
	SAP          SAPConfig
	Kafka        KafkaConfig
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("JWT_SECRET", defaultJWTSecret)
	viper.SetDefault("JWT_ISSUER", "amortization-manager")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "json")
	viper.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	viper.SetDefault("RATE_LIMIT", "100-H")
	viper.SetDefault("AMORTIZATION_MAX_RETRIES", 3)
	viper.SetDefault("AMORTIZATION_MAX_INTEREST_RATE", "100")
	viper.SetDefault("AMORTIZATION_MAX_INSTALLMENTS", 999)
	viper.SetDefault("AMORTIZATION_CURRENCY_PRECISION", 2)
	viper.SetDefault("SAP_ENABLED", false)
	viper.SetDefault("SAP_TIMEOUT", "10s")
	viper.SetDefault("KAFKA_TOPIC", "amortization-events")

	viper.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:    viper.GetString("PGSQL_URL"),
		Port:           viper.GetString("PORT"),
		IsProduction:   viper.GetBool("IS_PRODUCTION"),
		EnableDBCheck:  viper.GetBool("ENABLE_DB_CHECK"),
		MigrationsPath: viper.GetString("MIGRATIONS_PATH"),
		JWTSecret:      viper.GetString("JWT_SECRET"),
		JWTIssuer:      viper.GetString("JWT_ISSUER"),
		LogLevel:       viper.GetString("LOG_LEVEL"),
		LogFormat:      viper.GetString("LOG_FORMAT"),
		CORSOrigins:    splitList(viper.GetString("CORS_ORIGINS")),
		RateLimit:      viper.GetString("RATE_LIMIT"),
		Amortization: AmortizationConfig{
			MaxRetries:        viper.GetInt("AMORTIZATION_MAX_RETRIES"),
			MaxInstallments:   viper.GetInt("AMORTIZATION_MAX_INSTALLMENTS"),
			CurrencyPrecision: viper.GetInt("AMORTIZATION_CURRENCY_PRECISION"),
		},
		SAP: SAPConfig{
			Enabled:       viper.GetBool("SAP_ENABLED"),
			ServiceURL:    viper.GetString("SAP_SERVICE_LAYER_URL"),
			CompanyDB:     viper.GetString("SAP_COMPANY_DB"),
			Username:      viper.GetString("SAP_USERNAME"),
			Password:      viper.GetString("SAP_PASSWORD"),
			DebitAccount:  viper.GetString("SAP_DEBIT_ACCOUNT"),
			CreditAccount: viper.GetString("SAP_CREDIT_ACCOUNT"),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(viper.GetString("KAFKA_BROKERS")),
			Topic:   viper.GetString("KAFKA_TOPIC"),
		},
	}

	if cfg.DatabaseURL == "" {
		slog.Warn("PGSQL_URL environment variable not set")
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		cfg.JWTSecret = defaultJWTSecret
		slog.Warn("JWT_SECRET not set, using default insecure key")
	}

	var err error
	if cfg.Amortization.MaxInterestRate, err = decimal.NewFromString(viper.GetString("AMORTIZATION_MAX_INTEREST_RATE")); err != nil {
		return nil, fmt.Errorf("invalid AMORTIZATION_MAX_INTEREST_RATE: %w", err)
	}
	if cfg.SAP.Timeout, err = time.ParseDuration(viper.GetString("SAP_TIMEOUT")); err != nil {
		return nil, fmt.Errorf("invalid SAP_TIMEOUT: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	a := c.Amortization
	switch {
	case a.MaxRetries < 1:
		return fmt.Errorf("AMORTIZATION_MAX_RETRIES must be at least 1, got %d", a.MaxRetries)
	case a.MaxInstallments < 1 || a.MaxInstallments > 999:
		return fmt.Errorf("AMORTIZATION_MAX_INSTALLMENTS must be between 1 and 999, got %d", a.MaxInstallments)
	case a.CurrencyPrecision < 0 || a.CurrencyPrecision > 4:
		return fmt.Errorf("AMORTIZATION_CURRENCY_PRECISION must be between 0 and 4, got %d", a.CurrencyPrecision)
	case !a.MaxInterestRate.IsPositive():
		return fmt.Errorf("AMORTIZATION_MAX_INTEREST_RATE must be positive")
	case c.SAP.Timeout <= 0:
		return fmt.Errorf("SAP_TIMEOUT must be positive")
	case len(c.CORSOrigins) == 0:
		return fmt.Errorf("CORS_ORIGINS must list at least one origin")
	}
	return nil
}

// ScheduleConfig returns the calculator settings derived from the amortization bounds.
func (c *Config) ScheduleConfig() domain.ScheduleConfig {
	sc := domain.DefaultScheduleConfig()
	sc.MaxInterestRate = c.Amortization.MaxInterestRate
	sc.MaxInstallments = c.Amortization.MaxInstallments
	sc.CurrencyPrecision = int32(c.Amortization.CurrencyPrecision)
	return sc
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
