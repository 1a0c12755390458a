// Package config loads application configuration from the environment.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration for the API server.
type Config struct {
	Env      string
	HTTPAddr string

	CORSAllowAll bool
	CORSOrigins  []string

	// Qualification service
	AgentAPIURL string
	AgentAPIKey string

	// Agent roster. The manager agent receives every submission; the
	// sub-agents are listed for the dashboard roster only.
	ManagerAgentID       string
	EmailAgentID         string
	EnrichmentAgentID    string
	QualificationAgentID string

	// Live activity stream (websocket endpoint, session ID appended as path)
	ActivityStreamURL string

	// Delay between opening the live stream and dispatching the agent call,
	// giving the socket time to connect before events start flowing.
	StreamWarmup time.Duration

	// Rate limiting
	RateLimitPerSecond float64
	RateLimitBurst     int
}

// Load reads configuration from the environment, with .env support.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:3000"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cfg := &Config{
		Env:                  getEnv("APP_ENV", "development"),
		HTTPAddr:             getEnv("HTTP_ADDR", ":8080"),
		CORSAllowAll:         corsAllowAll,
		CORSOrigins:          corsOrigins,
		AgentAPIURL:          getEnv("AGENT_API_URL", "https://agent-prod.studio.lyzr.ai/v3/inference/chat/"),
		AgentAPIKey:          getEnv("AGENT_API_KEY", ""),
		ManagerAgentID:       getEnv("MANAGER_AGENT_ID", ""),
		EmailAgentID:         getEnv("EMAIL_AGENT_ID", ""),
		EnrichmentAgentID:    getEnv("ENRICHMENT_AGENT_ID", ""),
		QualificationAgentID: getEnv("QUALIFICATION_AGENT_ID", ""),
		ActivityStreamURL:    getEnv("ACTIVITY_STREAM_URL", "wss://metrics.studio.lyzr.ai/ws"),
		StreamWarmup:         getDuration("STREAM_WARMUP", 300*time.Millisecond),
		RateLimitPerSecond:   10,
		RateLimitBurst:       20,
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func splitCSV(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func containsWildcard(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
