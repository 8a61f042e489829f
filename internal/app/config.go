package app

import (
	"time"

	"github.com/hyperifyio/clauseease/internal/summarize"
)

// Config holds runtime configuration for the service and the CLI.
type Config struct {
	ListenAddr string
	DBPath     string

	LLMBaseURL string
	LLMModel   string
	LLMAPIKey  string
	// SSLVerify controls TLS certificate checks for the model backend.
	SSLVerify bool

	CacheDir         string
	CacheMaxAge      time.Duration
	CacheMaxBytes    int64
	CacheMaxCount    int
	CacheStrictPerms bool

	// GlossaryPath replaces the built-in legal glossary when set.
	GlossaryPath string

	ModelTimeout   time.Duration
	SessionTTL     time.Duration
	MaxUploadBytes int64

	SummaryWeights summarize.Weights
	DefaultRatio   float64

	// AdminEmail and AdminPassword seed an administrator account at startup.
	AdminEmail    string
	AdminPassword string

	Verbose   bool
	LogFormat string
}

// Defaults returns the configuration used when nothing else is set.
func Defaults() Config {
	return Config{
		ListenAddr:     ":8080",
		DBPath:         "clauseease.db",
		SSLVerify:      true,
		CacheDir:       ".clauseease-cache",
		ModelTimeout:   60 * time.Second,
		SessionTTL:     24 * time.Hour,
		MaxUploadBytes: 10 << 20,
		SummaryWeights: summarize.DefaultWeights,
		DefaultRatio:   0.4,
		LogFormat:      "console",
	}
}

// ModelConfigured reports whether a generative backend is configured.
func (c Config) ModelConfigured() bool {
	return c.LLMBaseURL != "" && c.LLMModel != ""
}
