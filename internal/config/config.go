package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Google    GoogleConfig
	Session   SessionConfig
	Storage   StorageConfig
	Ai        AIConfig
	RateLimit RateLimitConfig
	Telemetry TelemetryConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	AfterLoginURL      string
	UnauthenticatedURL string
}

func (c AppConfig) IsProduction() bool {
	return c.Environment == "production"
}

type DatabaseConfig struct {
	Connection string
	LogLevel   string // silent, error, warn, info
}

type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

type SessionConfig struct {
	CookieName string
	// StateSecret signs the short-lived OAuth state cookie.
	StateSecret string
	CacheTTL    time.Duration
}

type StorageConfig struct {
	Endpoint        string
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	UseSSL          bool
	PublicURL       string
}

type AIConfig struct {
	LLMProvider    string // "openai" or "ollama"
	LLMModel       string
	OpenAIAPIKey   string
	OpenAIBaseURL  string
	OllamaBaseURL  string
	MaxTokens      int
	RequestTimeout time.Duration
}

type RateLimitConfig struct {
	AnalyzeLimit  int
	AnalyzeWindow time.Duration
}

type TelemetryConfig struct {
	Enabled      bool
	OTLPEndpoint string
	ServiceName  string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			AfterLoginURL:      getEnv("AFTER_LOGIN_URL", "/"),
			UnauthenticatedURL: getEnv("UNAUTHENTICATED_URL", "/sign-in"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
			LogLevel:   getEnv("DB_LOG_LEVEL", "warn"),
		},
		Google: GoogleConfig{
			ClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
			ClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
			RedirectURL:  getEnv("GOOGLE_REDIRECT_URL", "http://localhost:3000/api/login/google/callback"),
		},
		Session: SessionConfig{
			CookieName:  getEnv("SESSION_COOKIE_NAME", "session"),
			StateSecret: getEnv("OAUTH_STATE_SECRET", "change-me"),
			CacheTTL:    getEnvAsDuration("SESSION_CACHE_TTL", time.Minute),
		},
		Storage: StorageConfig{
			Endpoint:        getEnv("S3_ENDPOINT", "localhost:9000"),
			Region:          getEnv("S3_REGION", "us-east-1"),
			Bucket:          getEnv("S3_BUCKET", "coursehub"),
			AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
			UseSSL:          getEnvAsBool("S3_USE_SSL", false),
			PublicURL:       getEnv("S3_PUBLIC_URL", ""),
		},
		Ai: AIConfig{
			LLMProvider:    getEnv("LLM_PROVIDER", "openai"),
			LLMModel:       getEnv("LLM_MODEL", "gpt-4o-mini"),
			OpenAIAPIKey:   getEnv("OPENAI_API_KEY", ""),
			OpenAIBaseURL:  getEnv("OPENAI_BASE_URL", ""),
			OllamaBaseURL:  getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			MaxTokens:      getEnvAsInt("LLM_MAX_TOKENS", 1000),
			RequestTimeout: getEnvAsDuration("LLM_TIMEOUT", 120*time.Second),
		},
		RateLimit: RateLimitConfig{
			AnalyzeLimit:  getEnvAsInt("ANALYZE_RATE_LIMIT", 10),
			AnalyzeWindow: getEnvAsDuration("ANALYZE_RATE_WINDOW", time.Hour),
		},
		Telemetry: TelemetryConfig{
			Enabled:      getEnvAsBool("OTEL_ENABLED", false),
			OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			ServiceName:  getEnv("OTEL_SERVICE_NAME", "coursehub-backend"),
		},
	}
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

func getEnvAsBool(key string, fallback bool) bool {
	strValue := strings.TrimSpace(getEnv(key, ""))
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

// getEnvAsDuration accepts Go duration strings ("90s", "1h").
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
