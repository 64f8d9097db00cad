package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. PAPERCODE_SERVER_PORT.
const EnvPrefix = "PAPERCODE"

// DefaultFileName is looked up in the working directory and the user config
// directory when no explicit path is given.
const DefaultFileName = "papercode.yaml"

var envPattern = regexp.MustCompile(`\${(\w+)(:([^}]*))?}`)

// Load builds the configuration. path names an explicit YAML file; when empty
// the default locations are searched and a missing file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)

	if path != "" {
		if err := loadConfigFile(v, path, false); err != nil {
			return nil, err
		}
	} else {
		for _, candidate := range defaultPaths() {
			if err := loadConfigFile(v, candidate, true); err != nil {
				return nil, err
			}
			if v.ConfigFileUsed() != "" {
				break
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("ai.api_key", EnvPrefix+"_AI_API_KEY", "OPENAI_API_KEY"); err != nil {
		return nil, fmt.Errorf("config: bind ai.api_key: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	return &cfg, nil
}

// MustLoad is Load that panics on error.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

func defaultPaths() []string {
	paths := []string{DefaultFileName}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "papercode", DefaultFileName))
	}
	return paths
}

// loadConfigFile reads path, expands ${VAR:default} placeholders and loads
// the result into v.
func loadConfigFile(v *viper.Viper, path string, optional bool) error {
	content, err := os.ReadFile(path)
	if err != nil {
		if optional && os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := v.ReadConfig(strings.NewReader(expandEnv(string(content)))); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	v.SetConfigFile(path)
	return nil
}

// expandEnv replaces ${VAR} and ${VAR:default}. Undefined variables without a
// default are left as written so they are easy to spot.
func expandEnv(s string) string {
	return envPattern.ReplaceAllStringFunc(s, func(match string) string {
		sub := envPattern.FindStringSubmatch(match)
		if val, ok := os.LookupEnv(sub[1]); ok {
			return val
		}
		if sub[2] != "" {
			return sub[3]
		}
		return match
	})
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "papercode")
	v.SetDefault("app.version", "v0.0.0")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	v.SetDefault("ai.api_key", "")
	v.SetDefault("ai.base_url", "")
	v.SetDefault("ai.model", "gpt-4o-mini")
	v.SetDefault("ai.max_tokens", 300)
	v.SetDefault("ai.temperature", 0.7)
	v.SetDefault("ai.timeout", "60s")

	v.SetDefault("templates.dir", "")
	v.SetDefault("catalog.path", "")

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.work_dir", filepath.Join(os.TempDir(), "paper-code-web"))
	v.SetDefault("server.request_timeout", "120s")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.cors.allowed_origins", []string{"*"})
	v.SetDefault("server.template_root", "")

	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.endpoint", "localhost:4317")
	v.SetDefault("tracing.sample_rate", 1.0)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
}
