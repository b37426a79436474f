package config

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	EnvironmentDevelopment = "development"
	EnvironmentProduction  = "production"
	EnvironmentStaging     = "staging"
)

var environmentAliases = map[string]string{
	"prod":  EnvironmentProduction,
	"dev":   EnvironmentDevelopment,
	"stag":  EnvironmentStaging,
	"stage": EnvironmentStaging,
}

// NormalizeEnvironment maps aliases such as "prod" to their canonical name and
// defaults to development.
func NormalizeEnvironment(env string) string {
	env = strings.ToLower(strings.TrimSpace(env))
	if env == "" {
		return EnvironmentDevelopment
	}
	if canonical, ok := environmentAliases[env]; ok {
		return canonical
	}
	return env
}

// ApplyEnv overlays API_PORT, API_ENV, STATIC_DIR, TRANSFORMER_DIR and
// CORS_ALLOWED_ORIGINS (comma-separated) onto the server section.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("API_PORT"); v != "" {
		c.Server.Port = v
	}
	if v := os.Getenv("API_ENV"); v != "" {
		c.Server.Env = v
	}
	c.Server.Env = NormalizeEnvironment(c.Server.Env)
	if v := os.Getenv("STATIC_DIR"); v != "" {
		c.Server.StaticDir = v
	}
	if v := os.Getenv("TRANSFORMER_DIR"); v != "" {
		c.Server.TransformerDir = v
	}
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		c.Server.AllowedOrigins = splitList(v)
	}
}

// FromEnv builds a config for binaries started without a config file.
func FromEnv() *Config {
	c := &Config{}
	c.applyDefaults()
	c.ApplyEnv()
	return c
}

// IsProduction reports whether the server runs in production mode.
func (s ServerConfig) IsProduction() bool {
	return NormalizeEnvironment(s.Env) == EnvironmentProduction
}

// ResolveTransformerDir returns an absolute preset directory, defaulting to
// examples/transformers under the working directory.
func (s ServerConfig) ResolveTransformerDir() string {
	dir := s.TransformerDir
	if dir == "" {
		if wd, err := os.Getwd(); err == nil {
			dir = filepath.Join(wd, "examples", "transformers")
		} else {
			dir = "./examples/transformers"
		}
	}
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	return dir
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
