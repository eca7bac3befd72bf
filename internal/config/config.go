package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App       AppConfig
	Postgres  PostgresConfig
	Redis     RedisConfig
	Logger    LoggerConfig
	Auth      AuthConfig
	Billing   BillingConfig
	Translate TranslateConfig
	Images    ImagesConfig
	Printer   PrinterConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	PublicBaseURL         string
	RequestTimeoutSeconds int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines authentication parameters.
type AuthConfig struct {
	JWTSecret               string
	SessionTTLHours         int
	PasswordResetTTLMinutes int
	BcryptCost              int
	SuperAdminEmail         string
}

// BillingConfig points at the hosted checkout API.
type BillingConfig struct {
	CheckoutEndpoint string
	SecretKey        string
	SuccessURL       string
	CancelURL        string
}

// TranslateConfig points at the chat-completion API used for menu translation.
type TranslateConfig struct {
	Endpoint string
	APIKey   string
	Model    string
}

// ImagesConfig holds keys for the image search providers, tried in order.
type ImagesConfig struct {
	UnsplashAccessKey string
	PexelsAPIKey      string
	PixabayAPIKey     string
}

// PrinterConfig holds stub printer notification settings.
type PrinterConfig struct {
	WebhookURL string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	maxConns := int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10))
	minConns := int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2))
	runMigrations := getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true)
	connMaxIdle := int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30))
	connMaxLife := int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300))

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "qrmenu-service"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			PublicBaseURL:         getEnv("APP_PUBLIC_BASE_URL", "http://localhost:8080"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       maxConns,
			MinConns:       minConns,
			RunMigrations:  runMigrations,
			ConnMaxIdleSec: connMaxIdle,
			ConnMaxLifeSec: connMaxLife,
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			JWTSecret:               os.Getenv("AUTH_JWT_SECRET"),
			SessionTTLHours:         getEnvAsInt("AUTH_SESSION_TTL_HOURS", 168),
			PasswordResetTTLMinutes: getEnvAsInt("AUTH_PASSWORD_RESET_TTL_MINUTES", 30),
			BcryptCost:              getEnvAsInt("AUTH_BCRYPT_COST", 12),
			SuperAdminEmail:         os.Getenv("AUTH_SUPER_ADMIN_EMAIL"),
		},
		Billing: BillingConfig{
			CheckoutEndpoint: os.Getenv("BILLING_CHECKOUT_ENDPOINT"),
			SecretKey:        os.Getenv("BILLING_SECRET_KEY"),
			SuccessURL:       os.Getenv("BILLING_SUCCESS_URL"),
			CancelURL:        os.Getenv("BILLING_CANCEL_URL"),
		},
		Translate: TranslateConfig{
			Endpoint: getEnv("TRANSLATE_API_ENDPOINT", "https://api.openai.com/v1/chat/completions"),
			APIKey:   os.Getenv("TRANSLATE_API_KEY"),
			Model:    getEnv("TRANSLATE_MODEL", "gpt-4o-mini"),
		},
		Images: ImagesConfig{
			UnsplashAccessKey: os.Getenv("UNSPLASH_ACCESS_KEY"),
			PexelsAPIKey:      os.Getenv("PEXELS_API_KEY"),
			PixabayAPIKey:     os.Getenv("PIXABAY_API_KEY"),
		},
		Printer: PrinterConfig{
			WebhookURL: getEnv("PRINTER_WEBHOOK_URL", ""),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// IsProduction reports whether the service runs with production hardening enabled.
func (a AppConfig) IsProduction() bool {
	return a.Env == "production"
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
