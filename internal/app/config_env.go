package app

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hyperifyio/clauseease/internal/summarize"
)

// ConfigError reports a configuration value that could not be parsed.
type ConfigError struct {
	Key   string
	Value string
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s=%q: %v", e.Key, e.Value, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// ApplyEnvOverrides sets every field whose environment variable is present,
// replacing values from defaults or the config file. Malformed numbers and
// durations return a *ConfigError naming the variable.
func ApplyEnvOverrides(cfg *Config) error {
	if cfg == nil {
		return nil
	}
	setString(&cfg.ListenAddr, "LISTEN_ADDR")
	setString(&cfg.DBPath, "DB_PATH")
	setString(&cfg.LLMBaseURL, "LLM_BASE_URL")
	setString(&cfg.LLMModel, "LLM_MODEL")
	setString(&cfg.LLMAPIKey, "LLM_API_KEY")
	setString(&cfg.CacheDir, "CACHE_DIR")
	setString(&cfg.GlossaryPath, "GLOSSARY_PATH")
	setString(&cfg.AdminEmail, "ADMIN_EMAIL")
	setString(&cfg.AdminPassword, "ADMIN_PASSWORD")
	setString(&cfg.LogFormat, "LOG_FORMAT")

	for _, step := range []func() error{
		func() error { return setBool(&cfg.SSLVerify, "SSL_VERIFY") },
		func() error { return setBool(&cfg.CacheStrictPerms, "CACHE_STRICT_PERMS") },
		func() error { return setBool(&cfg.Verbose, "VERBOSE") },
		func() error { return setDuration(&cfg.CacheMaxAge, "CACHE_MAX_AGE") },
		func() error { return setDuration(&cfg.ModelTimeout, "MODEL_TIMEOUT") },
		func() error { return setDuration(&cfg.SessionTTL, "SESSION_TTL") },
		func() error { return setInt64(&cfg.MaxUploadBytes, "MAX_UPLOAD_BYTES") },
		func() error { return setInt64(&cfg.CacheMaxBytes, "CACHE_MAX_BYTES") },
		func() error { return setInt(&cfg.CacheMaxCount, "CACHE_MAX_COUNT") },
		func() error { return setFloat(&cfg.DefaultRatio, "DEFAULT_RATIO") },
		func() error { return setWeights(&cfg.SummaryWeights, "SUMMARY_WEIGHTS") },
	} {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

func setString(dst *string, key string) {
	if v, ok := lookup(key); ok {
		*dst = v
	}
}

func setBool(dst *bool, key string) error {
	v, ok := lookup(key)
	if !ok {
		return nil
	}
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		*dst = true
	case "0", "false", "no", "off":
		*dst = false
	default:
		return &ConfigError{Key: key, Value: v, Err: fmt.Errorf("not a boolean")}
	}
	return nil
}

func setDuration(dst *time.Duration, key string) error {
	v, ok := lookup(key)
	if !ok {
		return nil
	}
	d, err := ParseDuration(v)
	if err != nil {
		return &ConfigError{Key: key, Value: v, Err: err}
	}
	*dst = d
	return nil
}

func setInt64(dst *int64, key string) error {
	v, ok := lookup(key)
	if !ok {
		return nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return &ConfigError{Key: key, Value: v, Err: err}
	}
	*dst = n
	return nil
}

func setInt(dst *int, key string) error {
	v, ok := lookup(key)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return &ConfigError{Key: key, Value: v, Err: err}
	}
	*dst = n
	return nil
}

func setFloat(dst *float64, key string) error {
	v, ok := lookup(key)
	if !ok {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return &ConfigError{Key: key, Value: v, Err: err}
	}
	*dst = f
	return nil
}

func setWeights(dst *summarize.Weights, key string) error {
	v, ok := lookup(key)
	if !ok {
		return nil
	}
	w, err := summarize.ParseWeights(v)
	if err != nil {
		return &ConfigError{Key: key, Value: v, Err: err}
	}
	*dst = w
	return nil
}

// ParseDuration accepts Go duration syntax ("90s", "1h30m") or a bare number
// of seconds.
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	return time.ParseDuration(s)
}
