package template

import (
	"io"
	"io/fs"
)

// TemplateRenderer is the seam the document engine renders through. Template
// names are slash-separated paths relative to the renderer's template source.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}

// Factory builds a renderer bound to a template source.
type Factory func(fsys fs.FS) (TemplateRenderer, error)
