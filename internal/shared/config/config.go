package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the storefront backend
type Config struct {
	// Server configuration
	Port           string
	GinMode        string
	APIVersion     string
	APIPrefix      string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxHeaderBytes int

	// Database configuration
	Database DatabaseConfig

	// Redis configuration
	Redis RedisConfig

	// Admin surface configuration
	Admin AdminConfig

	// Rate limiting
	RateLimit RateLimitConfig

	// Receipt upload
	Upload UploadConfig

	// Ticket pricing rules
	Pricing PricingConfig

	// Venue geometry
	Venue VenueConfig

	// Kafka notifications
	Kafka KafkaConfig

	// Logging
	LogLevel string

	// External services
	AWS   AWSConfig
	Email EmailConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	DSN      string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Addr     string

	// TTL values for different operations
	SessionTTL       time.Duration
	ReservedSeatsTTL time.Duration
	CacheTTL         time.Duration
}

// AdminConfig holds the operator credential and session settings.
// There are no shopper accounts; the passphrase hash gates the admin
// surface only.
type AdminConfig struct {
	PassphraseHash string // bcrypt hash of the operator passphrase
	JWTSecret      string
	TokenExpiresIn time.Duration
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Enabled         bool          `json:"enabled"`
	WindowDuration  time.Duration `json:"window_duration"`
	DefaultRequests int           `json:"default_requests"`
	PublicRequests  int           `json:"public_requests"`
	BookingRequests int           `json:"booking_requests"`
	AdminRequests   int           `json:"admin_requests"`
	WhitelistedIPs  []string      `json:"whitelisted_ips"`
}

// UploadConfig holds receipt upload rules. The size and type limits are
// enforced by the booking flow before the blob store is ever called.
// AllowedTypes lists filename extensions, not MIME types.
type UploadConfig struct {
	MaxSize      int64
	AllowedTypes []string
	KeyPrefix    string
}

// PricingConfig parameterizes the venue's ticket pricing rules. The shape
// of the rules (two-tier time pricing, fixed-size zone bundles) is part of
// the engine; only the constants live here.
type PricingConfig struct {
	EarlyBirdCutoff time.Time
	Timezone        *time.Location

	DeluxeEarlyBird float64
	DeluxeStandard  float64
	DeluxeBundle    float64

	StandardEarlyBird float64
	StandardStandard  float64
	StandardBundle    float64

	BundleSize int
}

// VenueConfig parameterizes the seat map geometry.
type VenueConfig struct {
	DeluxeStartRow int
	DeluxeEndRow   int
}

// KafkaConfig holds Kafka notification settings
type KafkaConfig struct {
	Enabled       bool
	Brokers       []string
	Topic         string
	ConsumerGroup string
}

// AWSConfig holds AWS configuration
type AWSConfig struct {
	Region   string
	S3Bucket string
}

// EmailConfig holds email configuration
type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromEmail    string
}

// Load loads configuration from environment variables
func Load() *Config {
	cfg := &Config{
		// Server configuration
		Port:           getEnv("PORT", "8080"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		APIVersion:     getEnv("API_VERSION", "v1"),
		APIPrefix:      getEnv("API_PREFIX", "/api"),
		ReadTimeout:    getDurationEnv("READ_TIMEOUT", 15*time.Second),
		WriteTimeout:   getDurationEnv("WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:    getDurationEnv("IDLE_TIMEOUT", 60*time.Second),
		MaxHeaderBytes: getIntEnv("MAX_HEADER_BYTES", 1<<20), // 1 MB

		// Database configuration
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "stagepass_db"),
			User:     getEnv("DB_USER", "stagepass_user"),
			Password: getEnv("DB_PASSWORD", "stagepass_password"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},

		// Redis configuration
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),

			SessionTTL:       getDurationEnv("REDIS_SESSION_TTL", 24*time.Hour),
			ReservedSeatsTTL: getDurationEnv("REDIS_RESERVED_SEATS_TTL", 15*time.Second),
			CacheTTL:         getDurationEnv("REDIS_CACHE_TTL", 1*time.Hour),
		},

		// Admin surface
		Admin: AdminConfig{
			PassphraseHash: getEnv("ADMIN_PASSPHRASE_HASH", ""),
			JWTSecret:      getEnv("ADMIN_JWT_SECRET", "change-me-before-going-live"),
			TokenExpiresIn: getDurationEnv("ADMIN_TOKEN_EXPIRES_IN", 4*time.Hour),
		},

		// Rate limiting
		RateLimit: RateLimitConfig{
			Enabled:         getBoolEnv("RATE_LIMIT_ENABLED", true),
			WindowDuration:  getDurationEnv("RATE_LIMIT_WINDOW_DURATION", 60*time.Second),
			DefaultRequests: getIntEnv("RATE_LIMIT_DEFAULT_REQUESTS", 60),
			PublicRequests:  getIntEnv("RATE_LIMIT_PUBLIC_REQUESTS", 100),
			BookingRequests: getIntEnv("RATE_LIMIT_BOOKING_REQUESTS", 20),
			AdminRequests:   getIntEnv("RATE_LIMIT_ADMIN_REQUESTS", 200),
			WhitelistedIPs:  getStringSliceEnv("RATE_LIMIT_WHITELISTED_IPS", []string{}),
		},

		// Receipt upload
		Upload: UploadConfig{
			MaxSize:      getInt64Env("MAX_UPLOAD_SIZE", 5*1024*1024), // 5 MB
			AllowedTypes: getStringSliceEnv("UPLOAD_ALLOWED_TYPES", []string{"png", "jpg", "jpeg", "pdf"}),
			KeyPrefix:    getEnv("UPLOAD_KEY_PREFIX", "receipts"),
		},

		// Pricing
		Pricing: loadPricingConfig(),

		// Venue geometry
		Venue: VenueConfig{
			DeluxeStartRow: getIntEnv("VENUE_DELUXE_START_ROW", 5),
			DeluxeEndRow:   getIntEnv("VENUE_DELUXE_END_ROW", 9),
		},

		// Kafka notifications
		Kafka: KafkaConfig{
			Enabled:       getBoolEnv("KAFKA_ENABLED", false),
			Brokers:       getStringSliceEnv("KAFKA_BROKERS", []string{"localhost:9092"}),
			Topic:         getEnv("KAFKA_NOTIFICATION_TOPIC", "booking-confirmations"),
			ConsumerGroup: getEnv("KAFKA_CONSUMER_GROUP", "stagepass-notifications"),
		},

		// Logging
		LogLevel: getEnv("LOG_LEVEL", "debug"),

		// AWS configuration
		AWS: AWSConfig{
			Region:   getEnv("AWS_REGION", ""),
			S3Bucket: getEnv("S3_BUCKET", ""),
		},

		// Email configuration
		Email: EmailConfig{
			SMTPHost:     getEnv("SMTP_HOST", ""),
			SMTPPort:     getIntEnv("SMTP_PORT", 587),
			SMTPUsername: getEnv("SMTP_USERNAME", ""),
			SMTPPassword: getEnv("SMTP_PASSWORD", ""),
			FromEmail:    getEnv("FROM_EMAIL", "tickets@stagepass.local"),
		},
	}

	// Build composite values
	cfg.Database.DSN = buildDatabaseDSN(cfg.Database)
	cfg.Redis.Addr = cfg.Redis.Host + ":" + cfg.Redis.Port

	return cfg
}

// loadPricingConfig loads the venue pricing constants. The cutoff is a fixed
// instant evaluated in one civil timezone so early-bird eligibility never
// depends on where the shopper's clock is.
func loadPricingConfig() PricingConfig {
	tz, err := time.LoadLocation(getEnv("VENUE_TIMEZONE", "Asia/Kuala_Lumpur"))
	if err != nil {
		tz = time.UTC
	}

	cutoff, err := time.ParseInLocation(time.RFC3339, getEnv("EARLY_BIRD_CUTOFF", "2025-09-18T00:00:00+08:00"), tz)
	if err != nil {
		// A zero cutoff means early-bird is already over, never that it lasts forever.
		cutoff = time.Time{}
	}

	return PricingConfig{
		EarlyBirdCutoff: cutoff,
		Timezone:        tz,

		DeluxeEarlyBird: getFloatEnv("PRICE_DELUXE_EARLY_BIRD", 35),
		DeluxeStandard:  getFloatEnv("PRICE_DELUXE_STANDARD", 40),
		DeluxeBundle:    getFloatEnv("PRICE_DELUXE_BUNDLE", 30),

		StandardEarlyBird: getFloatEnv("PRICE_STANDARD_EARLY_BIRD", 18),
		StandardStandard:  getFloatEnv("PRICE_STANDARD_STANDARD", 20),
		StandardBundle:    getFloatEnv("PRICE_STANDARD_BUNDLE", 15),

		BundleSize: getIntEnv("PRICE_BUNDLE_SIZE", 6),
	}
}

// buildDatabaseDSN builds the database connection string
func buildDatabaseDSN(db DatabaseConfig) string {
	return "host=" + db.Host +
		" port=" + db.Port +
		" user=" + db.User +
		" password=" + db.Password +
		" dbname=" + db.Name +
		" sslmode=" + db.SSLMode
}

// GetServerAddress returns the full server address
func (c *Config) GetServerAddress() string {
	return ":" + c.Port
}

// GetAPIBasePath returns the API base path
func (c *Config) GetAPIBasePath() string {
	return c.APIPrefix + "/" + c.APIVersion
}

// IsDevelopment returns true when running in debug mode
func (c *Config) IsDevelopment() bool {
	return c.GinMode == "debug"
}

// getEnv gets an environment variable with a fallback value
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getIntEnv gets an integer environment variable with a fallback value
func getIntEnv(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return fallback
}

// getInt64Env gets an int64 environment variable with a fallback value
func getInt64Env(key string, fallback int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return fallback
}

// getFloatEnv gets a float environment variable with a fallback value
func getFloatEnv(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return fallback
}

// getDurationEnv gets a duration environment variable with a fallback value
func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return fallback
}

// getBoolEnv gets a boolean environment variable with a fallback value
func getBoolEnv(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return fallback
}

// getStringSliceEnv gets a comma-separated environment variable as a slice
func getStringSliceEnv(key string, fallback []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return fallback
}
