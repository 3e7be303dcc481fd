package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	DatabaseURL     string
	CORSAllowOrigin []string

	PageSpeedAPIKey string

	AnthropicAPIKey string
	AnthropicModel  string

	BrevoAPIKey string
	MailSender  MailSender

	DataForSEOLogin    string
	DataForSEOPassword string

	ProcessTimeout time.Duration
	LinkCheckLimit int
	AutoProcess    bool
}

// MailSender identifies the transactional-email sender address.
type MailSender struct {
	Name    string
	Address string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	if err := godotenv.Load(); err != nil {
		_ = godotenv.Load("cmd/.env")
	}

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")

	if env == "production" && dbURL == "" {
		log.Printf("DATABASE_URL is required in production")
	}

	return Config{
		Port:            getEnv("PORT", "8080"),
		Env:             env,
		DatabaseURL:     dbURL,
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "*")),
		PageSpeedAPIKey: getEnv("PAGESPEED_API_KEY", ""),
		AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),
		AnthropicModel:  getEnv("ANTHROPIC_MODEL", "claude-sonnet-4-20250514"),
		BrevoAPIKey:     getEnv("BREVO_API_KEY", ""),
		MailSender: MailSender{
			Name:    getEnv("MAIL_SENDER_NAME", "Bojan - arsenio.at"),
			Address: getEnv("MAIL_SENDER_ADDRESS", "office@arsenio.at"),
		},
		DataForSEOLogin:    getEnv("DATAFORSEO_LOGIN", ""),
		DataForSEOPassword: getEnv("DATAFORSEO_PASSWORD", ""),
		ProcessTimeout:     time.Duration(getEnvInt("PROCESS_TIMEOUT_SECONDS", 120)) * time.Second,
		LinkCheckLimit:     getEnvInt("LINK_CHECK_LIMIT", 8),
		AutoProcess:        getEnvBool("AUTO_PROCESS", false),
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
	val, err := strconv.Atoi(raw)
	if err != nil || val <= 0 {
		log.Printf("config: %s invalid int %q, using %d", key, raw, def)
		return def
	}
	return val
}

func getEnvBool(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return val
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}
