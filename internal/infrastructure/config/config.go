package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion string

	// Server
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// Time limit for one submission: rendering plus all outbound calls
	SubmissionTimeout time.Duration

	// PostgreSQL
	PostgresURI string

	// MongoDB
	MongoURI string
	MongoDB  string

	// Redis
	RedisAddr     string
	RedisPassword string
	HotelCacheTTL time.Duration

	// Supabase storage
	StorageURL    string
	StorageKey    string
	StorageBucket string

	// Completion service
	CompletionBaseURL string
	CompletionAPIKey  string
	CompletionModel   string

	// Gmail delivery (optional; disabled when the client id is empty)
	GmailClientID     string
	GmailClientSecret string
	GmailRefreshToken string
	GmailSender       string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	config := &Config{
		AppVersion:   getEnv("APP_VERSION", "1.0.0"),
		Port:         getEnv("PORT", "8080"),
		ReadTimeout:  time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout: time.Duration(getEnvAsInt("WRITE_TIMEOUT", 120)) * time.Second,

		SubmissionTimeout: time.Duration(getEnvAsInt("SUBMISSION_TIMEOUT", 60)) * time.Second,

		PostgresURI: getEnv("POSTGRES_DSN", "postgres://localhost:5432/traveldocs"),

		MongoURI: getEnv("MONGODB_DSN", "mongodb://localhost:27017"),
		MongoDB:  getEnv("MONGO_DB", "traveldocs"),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		HotelCacheTTL: time.Duration(getEnvAsInt("HOTEL_CACHE_TTL", 300)) * time.Second,

		StorageURL:    getEnv("SUPABASE_URL", ""),
		StorageKey:    getEnv("SUPABASE_SERVICE_KEY", ""),
		StorageBucket: getEnv("SUPABASE_BUCKET", "travel-documents"),

		CompletionBaseURL: getEnv("COMPLETION_BASE_URL", "https://api.groq.com"),
		CompletionAPIKey:  getEnv("COMPLETION_API_KEY", ""),
		CompletionModel:   getEnv("COMPLETION_MODEL", "llama3-8b-8192"),

		GmailClientID:     getEnv("GMAIL_CLIENT_ID", ""),
		GmailClientSecret: getEnv("GMAIL_CLIENT_SECRET", ""),
		GmailRefreshToken: getEnv("GMAIL_REFRESH_TOKEN", ""),
		GmailSender:       getEnv("GMAIL_SENDER", ""),
	}

	return config, nil
}

// MailEnabled reports whether Gmail link delivery is configured.
func (c *Config) MailEnabled() bool {
	return c.GmailClientID != "" && c.GmailClientSecret != "" && c.GmailRefreshToken != ""
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}
