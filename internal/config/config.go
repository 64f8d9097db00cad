// Package config loads papercode settings from defaults, an optional YAML file
// and PAPERCODE_* environment variables, in increasing order of precedence.
package config

import (
	"fmt"
	"time"

	"github.com/paper-code/go-papercode/pkg/ai"
)

// Config is the root configuration.
type Config struct {
	App       AppConfig       `yaml:"app" mapstructure:"app"`
	Logging   LoggingConfig   `yaml:"logging" mapstructure:"logging"`
	AI        AIConfig        `yaml:"ai" mapstructure:"ai"`
	Templates TemplatesConfig `yaml:"templates" mapstructure:"templates"`
	Catalog   CatalogConfig   `yaml:"catalog" mapstructure:"catalog"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Tracing   TracingConfig   `yaml:"tracing" mapstructure:"tracing"`
	Metrics   MetricsConfig   `yaml:"metrics" mapstructure:"metrics"`
}

type AppConfig struct {
	Name    string `yaml:"name" mapstructure:"name"`
	Version string `yaml:"version" mapstructure:"version"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// AIConfig configures the OpenAI-compatible chat model. APIKey also reads
// OPENAI_API_KEY.
type AIConfig struct {
	APIKey      string        `yaml:"api_key" mapstructure:"api_key"`
	BaseURL     string        `yaml:"base_url" mapstructure:"base_url"`
	Model       string        `yaml:"model" mapstructure:"model"`
	MaxTokens   int           `yaml:"max_tokens" mapstructure:"max_tokens"`
	Temperature float64       `yaml:"temperature" mapstructure:"temperature"`
	Timeout     time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// Provider converts the section into ai.Config.
func (c AIConfig) Provider() ai.Config {
	return ai.Config{
		APIKey:      c.APIKey,
		BaseURL:     c.BaseURL,
		Model:       c.Model,
		MaxTokens:   c.MaxTokens,
		Temperature: c.Temperature,
		Timeout:     c.Timeout,
	}
}

// TemplatesConfig points the engine at a template directory replacing the
// embedded bundle. Empty keeps the embedded templates.
type TemplatesConfig struct {
	Dir string `yaml:"dir" mapstructure:"dir"`
}

// CatalogConfig points at a catalog file or directory. Empty keeps the
// embedded catalog.
type CatalogConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

type ServerConfig struct {
	Host            string        `yaml:"host" mapstructure:"host"`
	Port            int           `yaml:"port" mapstructure:"port"`
	WorkDir         string        `yaml:"work_dir" mapstructure:"work_dir"`
	RequestTimeout  time.Duration `yaml:"request_timeout" mapstructure:"request_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
	CORS            CORSConfig    `yaml:"cors" mapstructure:"cors"`
	// TemplateRoot enables template_dir in API requests, resolved beneath it.
	TemplateRoot    string        `yaml:"template_root" mapstructure:"template_root"`
}

// Addr returns host:port.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

type TracingConfig struct {
	Enabled    bool    `yaml:"enabled" mapstructure:"enabled"`
	Endpoint   string  `yaml:"endpoint" mapstructure:"endpoint"`
	SampleRate float64 `yaml:"sample_rate" mapstructure:"sample_rate"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Path    string `yaml:"path" mapstructure:"path"`
}
