package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	yaml "gopkg.in/yaml.v3"

	"github.com/hyperifyio/clauseease/internal/summarize"
)

// Duration reads "90s" style strings or bare seconds from YAML and JSON.
type Duration time.Duration

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := ParseDuration(string(b))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// FileConfig represents the single-file configuration schema.
// Nested sections map onto the environment keys.
type FileConfig struct {
	Server struct {
		Listen         string   `yaml:"listen" json:"listen"`
		MaxUploadBytes int64    `yaml:"maxUploadBytes" json:"maxUploadBytes"`
		SessionTTL     Duration `yaml:"sessionTTL" json:"sessionTTL"`
	} `yaml:"server" json:"server"`

	DB struct {
		Path string `yaml:"path" json:"path"`
	} `yaml:"db" json:"db"`

	LLM struct {
		BaseURL   string   `yaml:"base" json:"base"`
		Model     string   `yaml:"model" json:"model"`
		APIKey    string   `yaml:"key" json:"key"`
		Timeout   Duration `yaml:"timeout" json:"timeout"`
		SSLVerify *bool    `yaml:"sslVerify" json:"sslVerify"`
	} `yaml:"llm" json:"llm"`

	Cache struct {
		Dir         string   `yaml:"dir" json:"dir"`
		MaxAge      Duration `yaml:"maxAge" json:"maxAge"`
		MaxBytes    int64    `yaml:"maxBytes" json:"maxBytes"`
		MaxCount    int      `yaml:"maxCount" json:"maxCount"`
		StrictPerms bool     `yaml:"strictPerms" json:"strictPerms"`
	} `yaml:"cache" json:"cache"`

	Glossary struct {
		Path string `yaml:"path" json:"path"`
	} `yaml:"glossary" json:"glossary"`

	Summary struct {
		Weights *summarize.Weights `yaml:"weights" json:"weights"`
		Ratio   float64            `yaml:"ratio" json:"ratio"`
	} `yaml:"summary" json:"summary"`

	Admin struct {
		Email    string `yaml:"email" json:"email"`
		Password string `yaml:"password" json:"password"`
	} `yaml:"admin" json:"admin"`

	Log struct {
		Verbose bool   `yaml:"verbose" json:"verbose"`
		Format  string `yaml:"format" json:"format"`
	} `yaml:"log" json:"log"`
}

// LoadConfigFile reads YAML or JSON into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	default:
		// Try YAML then JSON
		if err := yaml.Unmarshal(b, &fc); err != nil {
			if jerr := json.Unmarshal(b, &fc); jerr != nil {
				return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
			}
		}
	}
	return fc, nil
}

// ApplyFileConfig overlays every non-zero value of fc onto cfg. Call it on
// Defaults() before ApplyEnvOverrides so the environment wins over the file.
func ApplyFileConfig(cfg *Config, fc FileConfig) error {
	if cfg == nil {
		return nil
	}
	overlay(&cfg.ListenAddr, fc.Server.Listen)
	if fc.Server.MaxUploadBytes != 0 {
		cfg.MaxUploadBytes = fc.Server.MaxUploadBytes
	}
	if fc.Server.SessionTTL != 0 {
		cfg.SessionTTL = time.Duration(fc.Server.SessionTTL)
	}
	overlay(&cfg.DBPath, fc.DB.Path)

	overlay(&cfg.LLMBaseURL, fc.LLM.BaseURL)
	overlay(&cfg.LLMModel, fc.LLM.Model)
	overlay(&cfg.LLMAPIKey, fc.LLM.APIKey)
	if fc.LLM.Timeout != 0 {
		cfg.ModelTimeout = time.Duration(fc.LLM.Timeout)
	}
	if fc.LLM.SSLVerify != nil {
		cfg.SSLVerify = *fc.LLM.SSLVerify
	}

	overlay(&cfg.CacheDir, fc.Cache.Dir)
	if fc.Cache.MaxAge != 0 {
		cfg.CacheMaxAge = time.Duration(fc.Cache.MaxAge)
	}
	if fc.Cache.MaxBytes != 0 {
		cfg.CacheMaxBytes = fc.Cache.MaxBytes
	}
	if fc.Cache.MaxCount != 0 {
		cfg.CacheMaxCount = fc.Cache.MaxCount
	}
	if fc.Cache.StrictPerms {
		cfg.CacheStrictPerms = true
	}

	overlay(&cfg.GlossaryPath, fc.Glossary.Path)

	if fc.Summary.Weights != nil {
		if err := fc.Summary.Weights.Validate(); err != nil {
			return &ConfigError{Key: "summary.weights", Value: fc.Summary.Weights.String(), Err: err}
		}
		cfg.SummaryWeights = *fc.Summary.Weights
	}
	if fc.Summary.Ratio != 0 {
		cfg.DefaultRatio = fc.Summary.Ratio
	}

	overlay(&cfg.AdminEmail, fc.Admin.Email)
	overlay(&cfg.AdminPassword, fc.Admin.Password)

	if fc.Log.Verbose {
		cfg.Verbose = true
	}
	overlay(&cfg.LogFormat, fc.Log.Format)
	return nil
}

func overlay(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}

// ValidateConfig performs basic validation of a merged configuration.
func ValidateConfig(cfg Config) error {
	var problems []string
	if strings.TrimSpace(cfg.ListenAddr) == "" {
		problems = append(problems, "listen address is required")
	}
	if strings.TrimSpace(cfg.DBPath) == "" {
		problems = append(problems, "database path is required")
	}
	if cfg.MaxUploadBytes <= 0 {
		problems = append(problems, "max upload bytes must be positive")
	}
	if cfg.SessionTTL <= 0 {
		problems = append(problems, "session TTL must be positive")
	}
	if cfg.ModelTimeout < 0 || cfg.CacheMaxAge < 0 {
		problems = append(problems, "durations must not be negative")
	}
	if cfg.CacheMaxBytes < 0 || cfg.CacheMaxCount < 0 {
		problems = append(problems, "cache limits must not be negative")
	}
	if !(cfg.DefaultRatio > 0 && cfg.DefaultRatio <= 1) {
		problems = append(problems, summarize.ErrInvalidRatio.Error())
	}
	if err := cfg.SummaryWeights.Validate(); err != nil {
		problems = append(problems, err.Error())
	}
	if (cfg.LLMBaseURL == "") != (cfg.LLMModel == "") {
		problems = append(problems, "LLM base URL and model must be set together")
	}
	switch cfg.LogFormat {
	case "", "console", "json":
	default:
		problems = append(problems, fmt.Sprintf("unknown log format %q", cfg.LogFormat))
	}
	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}
