package config

import (
	"os"
	"strconv"
)

// Config carries everything the daemon reads from the environment.
type Config struct {
	HTTPPort string
	LogMode  string
	UseTLS   bool

	// Store selection: "demo", "file", "postgres" or "remote".
	StoreBackend string
	DataDir      string
	PostgresDSN  string
	StoreAddr    string

	// Side channels. An empty URL means the corresponding action is skipped,
	// never that startup fails.
	MarketingWebhookURL string
	PromptGeneratorURL  string
	EnrichQueueSize     int
}

func Parse() Config {
	return Config{
		HTTPPort:            getString("ADFORGE_HTTP_PORT", "8090"),
		LogMode:             getString("LOG_MODE", "development"),
		UseTLS:              getString("ADFORGE_TLS", "") == "true",
		StoreBackend:        getString("ADFORGE_STORE_BACKEND", "demo"),
		DataDir:             getString("ADFORGE_DATA_DIR", "./data"),
		PostgresDSN:         getString("ADFORGE_POSTGRES_DSN", ""),
		StoreAddr:           getString("ADFORGE_STORE_ADDR", ""),
		MarketingWebhookURL: getString("MARKETING_WEBHOOK_URL", ""),
		PromptGeneratorURL:  getString("PROMPT_GENERATOR_URL", ""),
		EnrichQueueSize:     getInt("ENRICH_QUEUE_SIZE", 64),
	}
}

func getString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
