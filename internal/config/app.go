package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type HTTPServer struct {
	Port string `mapstructure:"port" validate:"required,numeric"`
}

type DbServer struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Pass     string `mapstructure:"pass"`
	Name     string `mapstructure:"name"`
	MaxConns int32  `mapstructure:"max_conns" validate:"gte=0"`
}

func (config *DbServer) GetConnectionStr() string {
	return fmt.Sprintf(
		"user=%s password=%s host=%s port=%s dbname=%s sslmode=disable",
		config.User, config.Pass, config.Host, config.Port, config.Name,
	)
}

type HTTPClient struct {
	TimeoutSeconds int `mapstructure:"timeout_seconds" validate:"gt=0"`
}

type Logging struct {
	Level string `mapstructure:"level"`
}

type PrimaryProvider struct {
	BaseURL string `mapstructure:"base_url" validate:"required,url"`
}

type SecondaryProvider struct {
	Enabled bool   `mapstructure:"enabled"`
	BaseURL string `mapstructure:"base_url" validate:"required,url"`
	APIKey  string `mapstructure:"api_key" validate:"required_if=Enabled true"`
}

type Resolver struct {
	RequestTimeoutMs int `mapstructure:"request_timeout_ms" validate:"gt=0"`
}

func (r Resolver) RequestTimeout() time.Duration {
	return time.Duration(r.RequestTimeoutMs) * time.Millisecond
}

// RateCache is off when TTLSeconds is 0.
type RateCache struct {
	TTLSeconds int   `mapstructure:"ttl_seconds" validate:"gte=0"`
	MaxItems   int64 `mapstructure:"max_items" validate:"gt=0"`
}

type Scheduler struct {
	WarmIntervalSec int `mapstructure:"warm_interval_sec" validate:"gte=0"`
}

type History struct {
	Backend  string `mapstructure:"backend" validate:"oneof=memory postgres"`
	Capacity int    `mapstructure:"capacity" validate:"gt=0"`
}

type Conversion struct {
	MaxAmount float64 `mapstructure:"max_amount" validate:"gt=0"`
}

type Currencies struct {
	Supported []string `mapstructure:"supported" validate:"min=1,dive,len=3,uppercase"`
}

// RateLimit uses the limiter format, e.g. "120-M". Empty disables limiting.
type RateLimit struct {
	Rate string `mapstructure:"rate"`
}

type AppConfig struct {
	HTTPServer        HTTPServer        `mapstructure:"http_server"`
	DbServer          DbServer          `mapstructure:"db_server"`
	HTTPClient        HTTPClient        `mapstructure:"http_client"`
	Logging           Logging           `mapstructure:"logging"`
	PrimaryProvider   PrimaryProvider   `mapstructure:"primary_provider"`
	SecondaryProvider SecondaryProvider `mapstructure:"secondary_provider"`
	Resolver          Resolver          `mapstructure:"resolver"`
	RateCache         RateCache         `mapstructure:"rate_cache"`
	Scheduler         Scheduler         `mapstructure:"scheduler"`
	History           History           `mapstructure:"history"`
	Conversion        Conversion        `mapstructure:"conversion"`
	Currencies        Currencies        `mapstructure:"currencies"`
	RateLimit         RateLimit         `mapstructure:"rate_limit"`
}

// Init reads config.yaml and .env from the working directory when present, then
// environment variables. Every key has a default, so both files are optional.
func Init() (*AppConfig, error) {
	var cfg AppConfig

	// .env only feeds the process environment; a missing file is fine
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	setDefaults(v)
	bindEnv(v)

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}
	normalize(&cfg)

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if cfg.History.Backend == "postgres" && cfg.DbServer.Host == "" {
		return nil, errors.New("invalid config: db_server.host is required for postgres history")
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http_server.port", "8080")
	v.SetDefault("db_server.port", "5432")
	v.SetDefault("db_server.max_conns", 10)
	v.SetDefault("http_client.timeout_seconds", 10)
	v.SetDefault("logging.level", "info")
	v.SetDefault("primary_provider.base_url", "https://api.exchangerate-api.com/v4/latest")
	v.SetDefault("secondary_provider.enabled", false)
	v.SetDefault("secondary_provider.base_url", "https://api.currencyapi.com/v3/latest")
	v.SetDefault("resolver.request_timeout_ms", 5000)
	v.SetDefault("rate_cache.ttl_seconds", 0)
	v.SetDefault("rate_cache.max_items", 1000)
	v.SetDefault("scheduler.warm_interval_sec", 0)
	v.SetDefault("history.backend", "memory")
	v.SetDefault("history.capacity", 10)
	v.SetDefault("conversion.max_amount", 999999999)
	v.SetDefault("currencies.supported", []string{"USD", "BRL", "EUR", "GBP", "JPY", "CAD", "AUD"})
	v.SetDefault("rate_limit.rate", "120-M")
}

func bindEnv(v *viper.Viper) {
	// http server env vars
	_ = v.BindEnv("http_server.port", "HTTP_PORT")

	// db server env vars
	_ = v.BindEnv("db_server.host", "DB_HOST")
	_ = v.BindEnv("db_server.port", "DB_PORT")
	_ = v.BindEnv("db_server.user", "DB_USER")
	_ = v.BindEnv("db_server.pass", "DB_PASS")
	_ = v.BindEnv("db_server.name", "DB_NAME")
	_ = v.BindEnv("db_server.max_conns", "DB_MAX_CONNS")

	// http client env vars
	_ = v.BindEnv("http_client.timeout_seconds", "HTTP_CLIENT_TIMEOUT_SECONDS")

	_ = v.BindEnv("logging.level", "LOG_LEVEL")

	// rate providers
	_ = v.BindEnv("primary_provider.base_url", "PRIMARY_PROVIDER_BASE_URL")
	_ = v.BindEnv("secondary_provider.enabled", "SECONDARY_PROVIDER_ENABLED")
	_ = v.BindEnv("secondary_provider.base_url", "SECONDARY_PROVIDER_BASE_URL")
	_ = v.BindEnv("secondary_provider.api_key", "SECONDARY_PROVIDER_API_KEY")
	_ = v.BindEnv("resolver.request_timeout_ms", "RESOLVER_REQUEST_TIMEOUT_MS")

	_ = v.BindEnv("rate_cache.ttl_seconds", "RATE_CACHE_TTL_SECONDS")
	_ = v.BindEnv("rate_cache.max_items", "RATE_CACHE_MAX_ITEMS")
	_ = v.BindEnv("scheduler.warm_interval_sec", "SCHEDULER_WARM_INTERVAL_SEC")

	_ = v.BindEnv("history.backend", "HISTORY_BACKEND")
	_ = v.BindEnv("history.capacity", "HISTORY_CAPACITY")

	_ = v.BindEnv("conversion.max_amount", "CONVERSION_MAX_AMOUNT")
	_ = v.BindEnv("currencies.supported", "SUPPORTED_CURRENCIES")
	_ = v.BindEnv("rate_limit.rate", "RATE_LIMIT")
}

func normalize(cfg *AppConfig) {
	// SUPPORTED_CURRENCIES=usd,eur arrives as a single element
	var codes []string
	for _, raw := range cfg.Currencies.Supported {
		for _, code := range strings.Split(raw, ",") {
			if code = strings.ToUpper(strings.TrimSpace(code)); code != "" {
				codes = append(codes, code)
			}
		}
	}
	cfg.Currencies.Supported = codes
	cfg.History.Backend = strings.ToLower(strings.TrimSpace(cfg.History.Backend))
	cfg.RateLimit.Rate = strings.TrimSpace(cfg.RateLimit.Rate)
}
