package config

import (
	"fmt"
	"net/netip"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultJWTSecret = "supersecretkey"

// Config holds all application configuration
type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Auth        AuthConfig
	Redis       RedisConfig
	Logging     LoggingConfig
	Stripe      StripeConfig
	Email       EmailConfig
	Storage     StorageConfig
	RateLimit   RateLimitConfig
	Maintenance MaintenanceConfig
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	// AppBaseURL is the public URL of the web app, used to build checkout
	// redirect URLs and links inside emails.
	AppBaseURL     string
	AllowedOrigins []string
	Environment    string
	// TrustedProxies lists the load balancers (CIDR or IP) allowed to set
	// X-Forwarded-For. Empty means the service is reached directly.
	TrustedProxies []string
}

// IsProduction reports whether the server runs in production mode
func (s ServerConfig) IsProduction() bool {
	return s.Environment == "production"
}

// DatabaseConfig contains database configuration
type DatabaseConfig struct {
	Driver          string
	Host            string
	Port            int
	Name            string
	User            string
	Password        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	// For SQLite
	Path string
}

// AuthConfig contains authentication configuration
type AuthConfig struct {
	JWTSecret          string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration
	BCryptCost         int
	SecureCookies      bool
}

// RedisConfig contains Redis configuration
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

// Addr returns host:port
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string
	Format string // json or console
}

// StripeConfig contains payment provider configuration
type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
	// JobBoostPriceCents is the flat price of a job posting boost in BRL cents
	JobBoostPriceCents int64
	// EnforceWebhookIPs restricts webhook callers to Stripe's published
	// addresses. Defaults to true in production.
	EnforceWebhookIPs bool
}

// EmailConfig contains SMTP configuration
type EmailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

// Enabled reports whether an SMTP relay is configured
func (e EmailConfig) Enabled() bool {
	return e.Host != "" && e.From != ""
}

// StorageConfig contains S3-compatible object storage configuration
type StorageConfig struct {
	Endpoint        string
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	PublicURL       string
	MaxUploadBytes  int64
}

// Enabled reports whether object storage credentials are present
func (s StorageConfig) Enabled() bool {
	return s.Bucket != "" && s.AccessKeyID != "" && s.SecretAccessKey != ""
}

// RateLimitConfig contains request throttling configuration
type RateLimitConfig struct {
	Requests int
	Window   time.Duration
	// AuthRequests applies to login and register, per client IP
	AuthRequests int
}

// MaintenanceConfig contains background job configuration
type MaintenanceConfig struct {
	Enabled                bool
	Schedule               string
	PaymentEventsRetention time.Duration
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore errors as it's optional)
	_ = godotenv.Load()

	env := getEnv("ENVIRONMENT", "development")

	cfg := &Config{
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnvAsInt("SERVER_PORT", 8080),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
			AppBaseURL:      strings.TrimRight(getEnv("APP_BASE_URL", "http://localhost:3000"), "/"),
			AllowedOrigins:  getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
			Environment:     env,
			TrustedProxies:  getEnvAsSlice("TRUSTED_PROXIES", nil),
		},
		Database: DatabaseConfig{
			Driver:          getEnv("DB_DRIVER", "sqlite"),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvAsInt("DB_PORT", 5432),
			Name:            getEnv("DB_NAME", "trampo"),
			User:            getEnv("DB_USER", ""),
			Password:        getEnv("DB_PASSWORD", ""),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
			Path:            getEnv("DB_PATH", "./trampo.db"),
		},
		Auth: AuthConfig{
			JWTSecret:          getEnv("JWT_SECRET", defaultJWTSecret),
			AccessTokenExpiry:  getEnvAsDuration("JWT_ACCESS_EXPIRY", 15*time.Minute),
			RefreshTokenExpiry: getEnvAsDuration("JWT_REFRESH_EXPIRY", 7*24*time.Hour),
			BCryptCost:         getEnvAsInt("BCRYPT_COST", 12),
			SecureCookies:      getEnvAsBool("SECURE_COOKIES", env == "production"),
		},
		Redis: RedisConfig{
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Stripe: StripeConfig{
			SecretKey:          getEnv("STRIPE_SECRET_KEY", ""),
			WebhookSecret:      getEnv("STRIPE_WEBHOOK_SECRET", ""),
			JobBoostPriceCents: int64(getEnvAsInt("JOB_BOOST_PRICE_CENTS", 2990)),
			EnforceWebhookIPs:  getEnvAsBool("STRIPE_ENFORCE_WEBHOOK_IPS", env == "production"),
		},
		Email: EmailConfig{
			Host:     getEnv("SMTP_HOST", ""),
			Port:     getEnvAsInt("SMTP_PORT", 587),
			Username: getEnv("SMTP_USERNAME", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("EMAIL_FROM", ""),
			FromName: getEnv("EMAIL_FROM_NAME", "Trampo"),
		},
		Storage: StorageConfig{
			Endpoint:        getEnv("STORAGE_ENDPOINT", ""),
			Region:          getEnv("STORAGE_REGION", "auto"),
			Bucket:          getEnv("STORAGE_BUCKET", ""),
			AccessKeyID:     getEnv("STORAGE_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("STORAGE_SECRET_ACCESS_KEY", ""),
			PublicURL:       strings.TrimRight(getEnv("STORAGE_PUBLIC_URL", ""), "/"),
			MaxUploadBytes:  int64(getEnvAsInt("STORAGE_MAX_UPLOAD_BYTES", 5<<20)),
		},
		RateLimit: RateLimitConfig{
			Requests:     getEnvAsInt("RATE_LIMIT_REQUESTS", 100),
			Window:       getEnvAsDuration("RATE_LIMIT_WINDOW", time.Minute),
			AuthRequests: getEnvAsInt("RATE_LIMIT_AUTH_REQUESTS", 10),
		},
		Maintenance: MaintenanceConfig{
			Enabled:                getEnvAsBool("MAINTENANCE_ENABLED", true),
			Schedule:               getEnv("MAINTENANCE_SCHEDULE", "0 3 * * *"),
			PaymentEventsRetention: getEnvAsDuration("PAYMENT_EVENTS_RETENTION", 90*24*time.Hour),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must be set")
	}
	if c.Server.IsProduction() && c.Auth.JWTSecret == defaultJWTSecret {
		return fmt.Errorf("JWT_SECRET must not use the default value in production")
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	for _, proxy := range c.Server.TrustedProxies {
		if _, err := netip.ParsePrefix(proxy); err == nil {
			continue
		}
		if _, err := netip.ParseAddr(proxy); err != nil {
			return fmt.Errorf("invalid TRUSTED_PROXIES entry: %q", proxy)
		}
	}

	if c.Database.Driver != "sqlite" && c.Database.Driver != "postgres" {
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}

	if c.Stripe.JobBoostPriceCents <= 0 {
		return fmt.Errorf("JOB_BOOST_PRICE_CENTS must be positive")
	}

	if c.RateLimit.Requests < 1 || c.RateLimit.Window <= 0 {
		return fmt.Errorf("invalid rate limit: %d per %s", c.RateLimit.Requests, c.RateLimit.Window)
	}

	if c.Maintenance.PaymentEventsRetention < 72*time.Hour {
		return fmt.Errorf("PAYMENT_EVENTS_RETENTION must cover Stripe's 3 day redelivery window")
	}

	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
