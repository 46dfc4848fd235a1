package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	Port      string
	Env       string
	DataDir   string
	OutputDir string
	LogFile   string

	OpenAIAPIKey      string
	LetterModel       string
	FilenameModel     string
	MaxTokens         int
	FilenameMaxTokens int
	Temperature       float64
	TopP              float64

	FontName string
	FontSize float64
	FontPath string
}

// EnvFile is where the managed OPENAI_API_KEY lives. Settings updates
// rewrite this file in place.
const EnvFile = ".env"

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	_ = godotenv.Load(EnvFile)
	_ = godotenv.Load(filepath.Join("cmd", EnvFile))

	env := normalizeEnv(getEnv("ENV", "dev"))

	return Config{
		Port:      getEnv("PORT", "8080"),
		Env:       env,
		DataDir:   getEnv("DATA_DIR", "./data"),
		OutputDir: getEnv("OUTPUT_DIR", "./out"),
		LogFile:   getEnv("LOG_FILE", ""),

		OpenAIAPIKey:      os.Getenv("OPENAI_API_KEY"),
		LetterModel:       getEnv("OPENAI_MODEL", "gpt-5.1"),
		FilenameModel:     getEnv("OPENAI_FILENAME_MODEL", "gpt-5.1"),
		MaxTokens:         getEnvInt("OPENAI_MAX_TOKENS", 1200),
		FilenameMaxTokens: getEnvInt("OPENAI_FILENAME_MAX_TOKENS", 60),
		Temperature:       getEnvFloat("OPENAI_TEMPERATURE", 0.3),
		TopP:              getEnvFloat("OPENAI_TOP_P", 0.95),

		FontName: getEnv("LETTER_FONT", "Helvetica"),
		FontSize: getEnvFloat("LETTER_FONT_SIZE", 12),
		FontPath: getEnv("LETTER_FONT_PATH", ""),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func getEnvFloat(key string, def float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return def
	}
	return parsed
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}
