package engine

import (
	"io/fs"
	"log/slog"
	"strings"

	rendertemplate "github.com/paper-code/go-papercode/pkg/render/template"
)

// Option customises the engine configuration.
type Option func(*config)

type config struct {
	templatesFS  fs.FS
	templatesDir string
	merges       *MergeRegistry
	factory      rendertemplate.Factory
	logger       *slog.Logger
}

// WithTemplatesFS replaces the embedded template bundle. When fsys has no
// manifest.yaml the built-in manifest is used against it.
func WithTemplatesFS(fsys fs.FS) Option {
	return func(cfg *config) {
		cfg.templatesFS = fsys
	}
}

// WithTemplatesDir loads the base template bundle from a directory on disk.
// A per-project TemplateDir still takes precedence.
func WithTemplatesDir(dir string) Option {
	return func(cfg *config) {
		cfg.templatesDir = strings.TrimSpace(dir)
	}
}

// WithMergeStrategies supplies the registry consulted in update mode.
func WithMergeStrategies(registry *MergeRegistry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.merges = registry
		}
	}
}

// WithRendererFactory swaps the template renderer implementation.
func WithRendererFactory(factory rendertemplate.Factory) Option {
	return func(cfg *config) {
		if factory != nil {
			cfg.factory = factory
		}
	}
}

// WithLogger sets the logger used for per-document debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}
