package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"realty-service/internal/pkg/jwt"
)

type AppConfig struct {
	// Server
	Env          string
	HTTPAddr     string
	CORSOrigins  []string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// Storage
	DatabaseURL   string
	RedisAddr     string
	RedisPass     string
	RedisDB       int
	RunMigrations bool

	// Logging
	LogLevel string
	LogDir   string

	// Auth
	JWT                 jwt.Config
	AdminCreationSecret string
	AdminLimit          int
	LockoutThreshold    int
	LockoutDuration     time.Duration

	// Optional first account, created only while no admin exists
	BootstrapAdminEmail    string
	BootstrapAdminPassword string
	BootstrapAdminName     string

	// Rate limits (requests per minute per client IP)
	LoginRateLimit      int
	PublicFormRateLimit int

	// SMTP
	SMTPHost     string
	SMTPPort     string
	SMTPUser     string
	SMTPPass     string
	SMTPFromName string
	SMTPSecure   bool

	// Asset store (S3 compatible)
	S3Region        string
	S3Endpoint      string
	S3AccessKey     string
	S3SecretKey     string
	S3Bucket        string
	S3PublicBaseURL string
	S3UsePathStyle  bool
}

// Load loads environment variables into AppConfig.
func Load() AppConfig {
	return AppConfig{
		Env:          getEnv("APP_ENV", "development"),
		HTTPAddr:     getEnv("HTTP_ADDR", ":8000"),
		CORSOrigins:  getEnvSlice("CORS_ORIGINS", []string{"http://localhost:3000"}),
		ReadTimeout:  getEnvDuration("HTTP_READ_TIMEOUT", 15*time.Second),
		WriteTimeout: getEnvDuration("HTTP_WRITE_TIMEOUT", 15*time.Second),

		DatabaseURL:   getEnv("DATABASE_URL", ""),
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPass:     getEnv("REDIS_PASS", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		RunMigrations: getEnvBool("RUN_MIGRATIONS", true),

		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogDir:   getEnv("LOG_DIR", ""),

		JWT: jwt.Config{
			Secret:   getEnv("SESSION_SECRET", ""),
			PrivPath: getEnv("JWT_PRIVATE_KEY_PATH", ""),
			PubPath:  getEnv("JWT_PUBLIC_KEY_PATH", ""),
			Issuer:   getEnv("JWT_ISSUER", "realty-service"),
			Audience: getEnv("JWT_AUDIENCE", "realty-admin"),
			TTL:      getEnvDuration("SESSION_TTL", 30*24*time.Hour),
			KID:      getEnv("JWT_KID", ""),
		},
		AdminCreationSecret: getEnv("ADMIN_CREATION_SECRET", ""),
		AdminLimit:          getEnvInt("ADMIN_LIMIT", 5),
		LockoutThreshold:    getEnvInt("LOCKOUT_THRESHOLD", 5),
		LockoutDuration:     getEnvDuration("LOCKOUT_DURATION", 15*time.Minute),

		BootstrapAdminEmail:    getEnv("BOOTSTRAP_ADMIN_EMAIL", ""),
		BootstrapAdminPassword: getEnv("BOOTSTRAP_ADMIN_PASSWORD", ""),
		BootstrapAdminName:     getEnv("BOOTSTRAP_ADMIN_NAME", "Administrator"),

		LoginRateLimit:      getEnvInt("LOGIN_RATE_LIMIT", 20),
		PublicFormRateLimit: getEnvInt("PUBLIC_FORM_RATE_LIMIT", 5),

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnv("SMTP_PORT", "465"),
		SMTPUser:     getEnv("SMTP_USER", ""),
		SMTPPass:     getEnv("SMTP_PASS", ""),
		SMTPFromName: getEnv("SMTP_FROM_NAME", "Marrk Feet Realty"),
		SMTPSecure:   getEnvBool("SMTP_SECURE", true),

		S3Region:        getEnv("S3_REGION", "us-east-1"),
		S3Endpoint:      getEnv("S3_ENDPOINT", ""),
		S3AccessKey:     getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey:     getEnv("S3_SECRET_KEY", ""),
		S3Bucket:        getEnv("S3_BUCKET", ""),
		S3PublicBaseURL: getEnv("S3_PUBLIC_BASE_URL", ""),
		S3UsePathStyle:  getEnvBool("S3_USE_PATH_STYLE", true),
	}
}

// Validate reports settings the service cannot start without.
func (c AppConfig) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.JWT.Secret == "" && (c.JWT.PrivPath == "" || c.JWT.PubPath == "") {
		return fmt.Errorf("SESSION_SECRET or JWT key paths are required")
	}
	if c.AdminLimit < 1 {
		return fmt.Errorf("ADMIN_LIMIT must be at least 1")
	}
	if c.LockoutThreshold < 1 {
		return fmt.Errorf("LOCKOUT_THRESHOLD must be at least 1")
	}
	return nil
}

// IsDevelopment reports whether verification codes may be echoed in responses.
func (c AppConfig) IsDevelopment() bool {
	return c.Env == "development"
}

// AssetStoreEnabled reports whether S3 settings are complete.
func (c AppConfig) AssetStoreEnabled() bool {
	return c.S3Bucket != "" && c.S3AccessKey != "" && c.S3SecretKey != ""
}

// --- Helper functions ---

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		return strings.ToLower(v) == "true"
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	}
	return defaultValue
}
