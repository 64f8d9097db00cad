// Package template defines the renderer-agnostic contract used by the document
// engine. The jinja subpackage provides the pongo2-backed implementation.
package template
