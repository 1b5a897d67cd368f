package config

import (
	"fmt"
	"strings"

	"go.uber.org/zap/zapcore"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every problem found in one pass
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	messages := make([]string, len(e))
	for i, err := range e {
		messages[i] = err.Error()
	}
	return strings.Join(messages, "\n")
}

// ValidateConfig checks the configuration for the current environment
func ValidateConfig(cfg *Config) error {
	var errs ValidationErrors
	add := func(field, message string) {
		errs = append(errs, ValidationError{Field: field, Message: message})
	}

	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		add("server.port", "must be between 1 and 65535")
	}

	switch cfg.DB.Driver {
	case "postgres":
		if cfg.DB.Host == "" {
			add("db.host", "is required")
		}
		if cfg.DB.Name == "" {
			add("db.name", "is required")
		}
	case "sqlite":
		if cfg.DB.Name == "" {
			add("db.name", "is required")
		}
	default:
		add("db.driver", fmt.Sprintf("unsupported driver %q", cfg.DB.Driver))
	}

	if cfg.Cache.Enabled && cfg.Cache.TTL <= 0 {
		add("cache.ttl", "must be positive when the cache is enabled")
	}
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.Requests < 1 {
			add("rate_limit.requests", "must be at least 1")
		}
		if cfg.RateLimit.Window <= 0 {
			add("rate_limit.window", "must be positive")
		}
	}
	if strings.TrimSpace(cfg.Match.DefaultLanguage) == "" {
		add("match.default_language", "is required")
	}
	if cfg.Match.UseIndex && cfg.Match.IndexRefresh <= 0 {
		add("match.index_refresh", "must be positive when match.use_index is set")
	}
	if _, err := zapcore.ParseLevel(cfg.Log.Level); err != nil {
		add("log.level", err.Error())
	}

	// Sensitive values are mandatory outside local development
	if cfg.Env == Production || cfg.Env == CI {
		if cfg.JWT.Secret == "" {
			add("jwt.secret", "is required")
		}
		if cfg.DB.Driver == "postgres" && cfg.DB.Password == "" {
			add("db.password", "is required")
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
