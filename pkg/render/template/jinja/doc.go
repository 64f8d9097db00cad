// Package jinja implements template.TemplateRenderer with pongo2, which
// accepts Jinja2 syntax. Templates are markdown, so autoescaping is off and
// block tags trim their surrounding whitespace by default.
//
// Three filters are registered process-wide: slug, bullets and sanitize. The
// built-in documents never apply sanitize to user or AI text.
package jinja
