package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	AppURL                 string
	DatabaseDriver         string
	DatabaseDSN            string
	AllowedOrigins         []string
	ListPerMinute          int
	MutationsPerMinute     int
	ChatPerMinute          int
	HistoryPerMinute       int
	RedisAddr              string
	GeminiAPIKey           string
	GeminiModel            string
	AgentTimeoutSeconds    int
	AgentMaxToolRounds     int
	AuditLogPath           string
	NATSURL                string
	NATSSubject            string
	ShutdownTimeoutSeconds int
}

func Load() Config {
	appHost := getEnv("APP_HOST", "127.0.0.1")
	appPort := getEnv("APP_PORT", "8080")

	cfg := Config{
		AppURL:                 fmt.Sprintf("%s:%s", appHost, appPort),
		DatabaseDriver:         getEnv("DATABASE_DRIVER", "sqlite"),
		DatabaseDSN:            getEnv("DATABASE_DSN", "donext.db"),
		AllowedOrigins:         getEnvAsList("ALLOWED_ORIGINS", "http://localhost:3000"),
		ListPerMinute:          getEnvAsInt("RATE_LIMIT_LIST_PER_MINUTE", 60),
		MutationsPerMinute:     getEnvAsInt("RATE_LIMIT_WRITE_PER_MINUTE", 30),
		ChatPerMinute:          getEnvAsInt("RATE_LIMIT_CHAT_PER_MINUTE", 10),
		HistoryPerMinute:       getEnvAsInt("RATE_LIMIT_HISTORY_PER_MINUTE", 30),
		RedisAddr:              getEnv("REDIS_ADDR", ""),
		GeminiAPIKey:           getEnv("GEMINI_API_KEY", ""),
		GeminiModel:            getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		AgentTimeoutSeconds:    getEnvAsInt("AGENT_TIMEOUT_SECONDS", 30),
		AgentMaxToolRounds:     getEnvAsInt("AGENT_MAX_TOOL_ROUNDS", 5),
		AuditLogPath:           getEnv("AUDIT_LOG_PATH", "logs/audit.log"),
		NATSURL:                getEnv("NATS_URL", ""),
		NATSSubject:            getEnv("NATS_SUBJECT", "donext.audit"),
		ShutdownTimeoutSeconds: getEnvAsInt("SHUTDOWN_TIMEOUT_SECONDS", 20),
	}

	validate(cfg)
	return cfg
}

func validate(cfg Config) {
	if cfg.AppURL == "" {
		log.Fatal("APP_URL must not be empty (e.g. 127.0.0.1:8080)")
	}
	if cfg.DatabaseDriver != "sqlite" && cfg.DatabaseDriver != "postgres" {
		log.Fatal("DATABASE_DRIVER must be sqlite or postgres")
	}
	if cfg.DatabaseDSN == "" {
		log.Fatal("DATABASE_DSN must not be empty")
	}
	if cfg.ListPerMinute <= 0 {
		log.Fatal("RATE_LIMIT_LIST_PER_MINUTE must be greater than 0")
	}
	if cfg.MutationsPerMinute <= 0 {
		log.Fatal("RATE_LIMIT_WRITE_PER_MINUTE must be greater than 0")
	}
	if cfg.ChatPerMinute <= 0 {
		log.Fatal("RATE_LIMIT_CHAT_PER_MINUTE must be greater than 0")
	}
	if cfg.HistoryPerMinute <= 0 {
		log.Fatal("RATE_LIMIT_HISTORY_PER_MINUTE must be greater than 0")
	}
	if cfg.AgentTimeoutSeconds <= 0 {
		log.Fatal("AGENT_TIMEOUT_SECONDS must be greater than 0")
	}
	if cfg.AgentMaxToolRounds <= 0 {
		log.Fatal("AGENT_MAX_TOOL_ROUNDS must be greater than 0")
	}
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			log.Fatalf("invalid integer value for %s", key)
		}
		return i
	}
	return defaultVal
}

func getEnvAsList(key, defaultVal string) []string {
	raw := getEnv(key, defaultVal)
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
