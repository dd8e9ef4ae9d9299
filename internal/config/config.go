package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	FollowUp  FollowUpConfig
	Messaging MessagingConfig
	Ai        AIConfig
	Topics    TopicConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type FollowUpConfig struct {
	Delay          time.Duration // how long after a summary the check-in fires
	ActivityWindow time.Duration // live-conversation suppression window
	PollInterval   time.Duration
	MaxAttempts    int
	RetryBackoff   time.Duration
}

type MessagingConfig struct {
	Channel       string // "chat" or "email"
	ProviderURL   string
	ProviderToken string
	WebhookToken  string
	SMTPHost      string
	SMTPPort      int
	SMTPEmail     string
	SMTPPassword  string
	SenderName    string
}

type AIConfig struct {
	ClassifierProvider string // "ollama" or "keyword"
	OllamaBaseURL      string
	OllamaModel        string
}

type TopicConfig struct {
	ProcessSummary string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		FollowUp: FollowUpConfig{
			Delay:          getEnvAsDuration("FOLLOWUP_DELAY", 24*time.Hour),
			ActivityWindow: getEnvAsDuration("FOLLOWUP_ACTIVITY_WINDOW", 6*time.Hour),
			PollInterval:   getEnvAsDuration("FOLLOWUP_POLL_INTERVAL", 5*time.Second),
			MaxAttempts:    getEnvAsInt("FOLLOWUP_MAX_ATTEMPTS", 5),
			RetryBackoff:   getEnvAsDuration("FOLLOWUP_RETRY_BACKOFF", 30*time.Second),
		},
		Messaging: MessagingConfig{
			Channel:       getEnv("MESSAGING_CHANNEL", "chat"),
			ProviderURL:   getEnv("CHAT_PROVIDER_URL", "http://localhost:8088"),
			ProviderToken: getEnv("CHAT_PROVIDER_TOKEN", ""),
			WebhookToken:  getEnv("WEBHOOK_TOKEN", ""),
			SMTPHost:      getEnv("SMTP_HOST", ""),
			SMTPPort:      getEnvAsInt("SMTP_PORT", 587),
			SMTPEmail:     getEnv("SMTP_EMAIL", ""),
			SMTPPassword:  getEnv("SMTP_PASSWORD", ""),
			SenderName:    getEnv("SMTP_SENDER_NAME", "CareNote"),
		},
		Ai: AIConfig{
			ClassifierProvider: getEnv("CLASSIFIER_PROVIDER", "keyword"),
			OllamaBaseURL:      getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:        getEnv("OLLAMA_MODEL", "llama3"),
		},
		Topics: TopicConfig{
			ProcessSummary: getEnv("PROCESS_SUMMARY_TOPIC_NAME", "PROCESS_CARE_SUMMARY"),
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

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
