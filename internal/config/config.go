package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	Auth       AuthConfig
	Payment    PaymentConfig
	Prices     PriceConfig
	Investment InvestmentPolicy
	Reconcile  ReconcileConfig
	Poll       PollConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	EventTopic         string
}

type DatabaseConfig struct {
	Connection string
}

type AuthConfig struct {
	JWTSecret   string
	TokenTTL    time.Duration
	CookieName  string
	AdminEmail  string
	AdminSecret string
}

type PaymentConfig struct {
	Provider           string // "stripe" or "midtrans"
	StripeSecretKey    string
	MidtransServerKey  string
	MidtransProduction bool
}

type PriceConfig struct {
	GoldAPIBaseURL string
	GoldAPIKey     string
	CacheTTL       time.Duration
	RequestTimeout time.Duration
}

// InvestmentPolicy holds the monthly investment limits in whole USD.
type InvestmentPolicy struct {
	CheckoutMin float64
	ModifyMin   float64
	ModifyMax   float64
}

type ReconcileConfig struct {
	PendingTTL    time.Duration
	SweepInterval time.Duration
}

type PollConfig struct {
	Interval time.Duration
	MaxPolls int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			EventTopic:         getEnv("EVENT_TOPIC", "vault_events"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Auth: AuthConfig{
			JWTSecret:   getEnv("JWT_SECRET", "default_secret"),
			TokenTTL:    getEnvAsDuration("JWT_TTL", 24*time.Hour),
			CookieName:  getEnv("SESSION_COOKIE_NAME", "pv_session"),
			AdminEmail:  getEnv("SEED_ADMIN_EMAIL", ""),
			AdminSecret: getEnv("SEED_ADMIN_PASSWORD", ""),
		},
		Payment: PaymentConfig{
			Provider:           getEnv("PAYMENT_PROVIDER", "stripe"),
			StripeSecretKey:    getEnv("STRIPE_SECRET_KEY", ""),
			MidtransServerKey:  getEnv("MIDTRANS_SERVER_KEY", ""),
			MidtransProduction: getEnv("MIDTRANS_IS_PRODUCTION", "false") == "true",
		},
		Prices: PriceConfig{
			GoldAPIBaseURL: getEnv("GOLDAPI_BASE_URL", "https://www.goldapi.io/api"),
			GoldAPIKey:     getEnv("GOLDAPI_KEY", ""),
			CacheTTL:       getEnvAsDuration("PRICE_CACHE_TTL", 5*time.Minute),
			RequestTimeout: getEnvAsDuration("PRICE_REQUEST_TIMEOUT", 10*time.Second),
		},
		Investment: InvestmentPolicy{
			CheckoutMin: getEnvAsFloat("CHECKOUT_MIN_INVESTMENT", 1),
			ModifyMin:   getEnvAsFloat("MIN_MONTHLY_INVESTMENT", 10),
			ModifyMax:   getEnvAsFloat("MAX_MONTHLY_INVESTMENT", 1000),
		},
		Reconcile: ReconcileConfig{
			PendingTTL:    getEnvAsDuration("PENDING_TTL", 24*time.Hour),
			SweepInterval: getEnvAsDuration("PENDING_SWEEP_INTERVAL", time.Hour),
		},
		Poll: PollConfig{
			Interval: getEnvAsDuration("ORDER_POLL_INTERVAL", 4*time.Second),
			MaxPolls: getEnvAsInt("ORDER_MAX_POLLS", 5),
		},
	}
}

// SiteURL is where checkout sessions return to.
func (c *Config) SiteURL() string {
	return getEnv("SITE_URL", c.App.ClientURL)
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
