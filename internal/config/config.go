package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	SMTP     SMTPConfig
	Keys     APIKeys
	Ai       AIConfig
	Search   SearchConfig
	Export   ExportConfig
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
	UploadDir          string
}

type DatabaseConfig struct {
	Connection string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

type APIKeys struct {
	GoogleGemini string
	Groq         string
	Serper       string
	GoogleCSE    string
	GoogleCSECX  string
	StepTopic    string // Topic name for the step auto-save bus
}

type AIConfig struct {
	GeminiModel   string
	GroqModel     string
	OllamaBaseURL string
	OllamaModel   string
}

type SearchConfig struct {
	MaxResults      int
	CountryCode     string
	Language        string
	DefaultQueryTpl string
}

type ExportConfig struct {
	ReportEmail string // Optional address to mail finished reports to
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
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
			UploadDir:          getEnv("UPLOAD_DIR", "./uploads"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "MarketAnalysis"),
		},
		Keys: APIKeys{
			GoogleGemini: getEnv("GOOGLE_GEMINI_API_KEY", ""),
			Groq:         getEnv("GROQ_API_KEY", ""),
			Serper:       getEnv("SERPER_API_KEY", ""),
			GoogleCSE:    getEnv("GOOGLE_CSE_API_KEY", ""),
			GoogleCSECX:  getEnv("GOOGLE_CSE_CX", ""),
			StepTopic:    getEnv("ANALYSIS_STEP_TOPIC_NAME", "ANALYSIS_STEP_SAVED"),
		},
		Ai: AIConfig{
			GeminiModel:   getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
			GroqModel:     getEnv("GROQ_MODEL", "llama-3.3-70b-versatile"),
			OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:   getEnv("OLLAMA_MODEL", "llama3"),
		},
		Search: SearchConfig{
			MaxResults:      getEnvAsInt("SEARCH_MAX_RESULTS", 10),
			CountryCode:     getEnv("SEARCH_COUNTRY", "br"),
			Language:        getEnv("SEARCH_LANGUAGE", "pt-br"),
			DefaultQueryTpl: getEnv("SEARCH_QUERY_TEMPLATE", "mercado de %s no brasil desde 2022"),
		},
		Export: ExportConfig{
			ReportEmail: getEnv("REPORT_DELIVERY_EMAIL", ""),
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
