package papercode

import (
	"io/fs"

	"github.com/paper-code/go-papercode/pkg/engine"
)

// EmbeddedTemplates exposes the built-in template bundle, manifest.yaml
// included, so callers can copy it as a starting point for a template_dir
// override.
func EmbeddedTemplates() fs.FS {
	return engine.TemplatesFS()
}
