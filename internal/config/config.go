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
	Ai        AIConfig
	Assistant AssistantConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	RedisURL           string
	ResumeFilesDir     string
}

type AIConfig struct {
	LLMProvider   string // "ollama", "openai", "gemini"
	LLMModel      string // e.g. "gpt-4o-mini", "llama3", "gemini-2.0-flash"
	LLMBaseURL    string
	OpenAIKey     string
	GeminiKey     string
	OllamaBaseURL string
}

// AssistantConfig carries the conversation tuning knobs. The classifier
// thresholds and readiness policy are deliberately configuration, not
// literals in control flow.
type AssistantConfig struct {
	// DeclineShortLen: a negation counts as a decline only below this many
	// runes (unless a save keyword corroborates it).
	DeclineShortLen int
	// ModificationMinLen: after a confirmation prompt, ambiguous input
	// longer than this many runes is treated as a modification request.
	ModificationMinLen int

	// Readiness policy for advancing to style selection. Both false means
	// the default bar: position plus skills OR experience.
	ReadinessRequireSkills     bool
	ReadinessRequireExperience bool

	// SessionStore selects the repository backing: "memory" or "redis".
	SessionStore string
	SessionTTL   time.Duration

	// SessionFallback enables the legacy single-user shim that resolves a
	// turn without an identifier to the most recent session.
	SessionFallback bool
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
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log.csv"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			ResumeFilesDir:     getEnv("RESUME_FILES_DIR", "files/resumes"),
		},
		Ai: AIConfig{
			LLMProvider:   getEnv("LLM_PROVIDER", "openai"),
			LLMModel:      getEnv("LLM_MODEL", "gpt-4o-mini"),
			LLMBaseURL:    getEnv("LLM_BASE_URL", ""),
			OpenAIKey:     getEnv("OPENAI_API_KEY", ""),
			GeminiKey:     getEnv("GOOGLE_GEMINI_API_KEY", ""),
			OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
		},
		Assistant: AssistantConfig{
			DeclineShortLen:            getEnvAsInt("ASSISTANT_DECLINE_SHORT_LEN", 15),
			ModificationMinLen:         getEnvAsInt("ASSISTANT_MODIFICATION_MIN_LEN", 5),
			ReadinessRequireSkills:     getEnvAsBool("ASSISTANT_READINESS_REQUIRE_SKILLS", false),
			ReadinessRequireExperience: getEnvAsBool("ASSISTANT_READINESS_REQUIRE_EXPERIENCE", false),
			SessionStore:               getEnv("SESSION_STORE", "memory"),
			SessionTTL:                 time.Duration(getEnvAsInt("SESSION_TTL_MINUTES", 60)) * time.Minute,
			SessionFallback:            getEnvAsBool("ASSISTANT_SESSION_FALLBACK", true),
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
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}
