package app

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hyperifyio/clauseease/internal/summarize"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestLoadConfigFile_YAML(t *testing.T) {
	p := writeFile(t, "clauseease.yaml", `
server:
  listen: ":9090"
  maxUploadBytes: 4096
  sessionTTL: 12h
db:
  path: data/ce.db
llm:
  base: http://localhost:8000/v1
  model: flan-t5
  timeout: 20s
  sslVerify: false
cache:
  dir: /tmp/ce-cache
  maxAge: 48h
  maxCount: 100
summary:
  weights: {lexical: 0.4, position: 0.4, length: 0.2}
  ratio: 0.3
log:
  format: json
`)
	fc, err := LoadConfigFile(p)
	if err != nil {
		t.Fatalf("LoadConfigFile: %v", err)
	}
	cfg := Defaults()
	if err := ApplyFileConfig(&cfg, fc); err != nil {
		t.Fatalf("ApplyFileConfig: %v", err)
	}
	if cfg.ListenAddr != ":9090" || cfg.MaxUploadBytes != 4096 || cfg.SessionTTL != 12*time.Hour {
		t.Fatalf("server section not applied: %+v", cfg)
	}
	if cfg.DBPath != "data/ce.db" {
		t.Fatalf("DBPath=%q", cfg.DBPath)
	}
	if cfg.LLMModel != "flan-t5" || cfg.ModelTimeout != 20*time.Second || cfg.SSLVerify {
		t.Fatalf("llm section not applied: %+v", cfg)
	}
	if cfg.CacheDir != "/tmp/ce-cache" || cfg.CacheMaxAge != 48*time.Hour || cfg.CacheMaxCount != 100 {
		t.Fatalf("cache section not applied: %+v", cfg)
	}
	if cfg.SummaryWeights != (summarize.Weights{Lexical: 0.4, Position: 0.4, Length: 0.2}) || cfg.DefaultRatio != 0.3 {
		t.Fatalf("summary section not applied: %+v", cfg)
	}
	if cfg.LogFormat != "json" {
		t.Fatalf("LogFormat=%q", cfg.LogFormat)
	}
	// Unset sections keep their defaults.
	if cfg.GlossaryPath != "" || cfg.AdminEmail != "" {
		t.Fatalf("unexpected values: %+v", cfg)
	}
}

func TestLoadConfigFile_JSON(t *testing.T) {
	p := writeFile(t, "clauseease.json", `{"db":{"path":"x.db"},"server":{"sessionTTL":"90"}}`)
	fc, err := LoadConfigFile(p)
	if err != nil {
		t.Fatalf("LoadConfigFile: %v", err)
	}
	cfg := Defaults()
	if err := ApplyFileConfig(&cfg, fc); err != nil {
		t.Fatalf("ApplyFileConfig: %v", err)
	}
	if cfg.DBPath != "x.db" || cfg.SessionTTL != 90*time.Second {
		t.Fatalf("json not applied: %+v", cfg)
	}
}

func TestLoadConfigFile_Malformed(t *testing.T) {
	p := writeFile(t, "bad.yaml", "server: [unterminated")
	if _, err := LoadConfigFile(p); err == nil {
		t.Fatalf("expected parse error")
	}
	p = writeFile(t, "bad-duration.yaml", "server:\n  sessionTTL: tomorrow\n")
	if _, err := LoadConfigFile(p); err == nil {
		t.Fatalf("expected duration error")
	}
}

func TestApplyFileConfig_InvalidWeights(t *testing.T) {
	p := writeFile(t, "w.yaml", "summary:\n  weights: {lexical: 0.9, position: 0.3, length: 0.2}\n")
	fc, err := LoadConfigFile(p)
	if err != nil {
		t.Fatalf("LoadConfigFile: %v", err)
	}
	cfg := Defaults()
	err = ApplyFileConfig(&cfg, fc)
	var ce *ConfigError
	if !errors.As(err, &ce) || ce.Key != "summary.weights" {
		t.Fatalf("want ConfigError for summary.weights, got %v", err)
	}
}

// Environment values win over the config file.
func TestPrecedence_EnvOverFile(t *testing.T) {
	p := writeFile(t, "c.yaml", "db:\n  path: file.db\nserver:\n  listen: \":7000\"\n")
	t.Setenv("DB_PATH", "env.db")
	fc, err := LoadConfigFile(p)
	if err != nil {
		t.Fatalf("LoadConfigFile: %v", err)
	}
	cfg := Defaults()
	if err := ApplyFileConfig(&cfg, fc); err != nil {
		t.Fatalf("ApplyFileConfig: %v", err)
	}
	if err := ApplyEnvOverrides(&cfg); err != nil {
		t.Fatalf("ApplyEnvOverrides: %v", err)
	}
	if cfg.DBPath != "env.db" {
		t.Fatalf("DBPath=%q, want env.db", cfg.DBPath)
	}
	if cfg.ListenAddr != ":7000" {
		t.Fatalf("ListenAddr=%q, want file value", cfg.ListenAddr)
	}
}

func TestValidateConfig(t *testing.T) {
	if err := ValidateConfig(Defaults()); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"empty db path", func(c *Config) { c.DBPath = "" }, "database path"},
		{"zero ratio", func(c *Config) { c.DefaultRatio = 0 }, "ratio"},
		{"ratio above one", func(c *Config) { c.DefaultRatio = 1.5 }, "ratio"},
		{"bad weights", func(c *Config) { c.SummaryWeights = summarize.Weights{Lexical: 1, Position: 1} }, "weights"},
		{"model without base", func(c *Config) { c.LLMModel = "m" }, "set together"},
		{"log format", func(c *Config) { c.LogFormat = "xml" }, "log format"},
		{"upload limit", func(c *Config) { c.MaxUploadBytes = 0 }, "upload"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := ValidateConfig(cfg)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("ValidateConfig error %v, want mention of %q", err, tt.want)
			}
		})
	}
}
