package model

import (
	"strings"
	"unicode"
)

// DefaultSlug stands in for a project name that has no letters or digits.
const DefaultSlug = "project"

// ProjectConfig is the loosely validated request payload. Field tags match the
// wire names used by the REST surface and project files.
type ProjectConfig struct {
	ProjectName string   `json:"project_name" yaml:"project_name"`
	Description string   `json:"description" yaml:"description"`
	ProjectType string   `json:"project_type" yaml:"project_type"`
	TechStack   string   `json:"tech_stack" yaml:"tech_stack"`
	Libraries   []string `json:"libraries" yaml:"libraries"`
	AIGenerate  bool     `json:"ai_generate" yaml:"ai_generate"`
	AIHint      string   `json:"ai_hint,omitempty" yaml:"ai_hint,omitempty"`
	TemplateDir string   `json:"template_dir,omitempty" yaml:"template_dir,omitempty"`
	UpdateMode  bool     `json:"update_mode" yaml:"update_mode"`
}

// Project is a ProjectConfig that passed catalog validation. Names are trimmed
// and Libraries is de-duplicated and ordered by the catalog, so downstream
// components never re-validate raw input. Treat values as read-only.
type Project struct {
	Name        string
	Description string
	Type        string
	TechStack   string
	Libraries   []string
	AIGenerate  bool
	AIHint      string
	TemplateDir string
	UpdateMode  bool
}

// WithDescription returns a copy of p carrying description.
func (p Project) WithDescription(description string) Project {
	out := p
	out.Description = description
	out.Libraries = append([]string(nil), p.Libraries...)
	return out
}

// Slug returns a filesystem-friendly identifier derived from the project name.
// It is never empty.
func (p Project) Slug() string {
	return SlugifyOr(p.Name, DefaultSlug)
}

// GeneratedProject describes the files present under an output root after a
// generation run.
type GeneratedProject struct {
	OutputRoot string   `json:"output_path"`
	Files      []string `json:"files_generated"`
}

// Slugify lowercases s and collapses every run of characters that are not
// letters or digits into a single dash. "Node.js" becomes "node-js" and
// non-Latin scripts are kept as written. The result is empty when s holds no
// letters or digits.
func Slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			b.WriteRune(r)
			dash = false
		case r == '+':
			b.WriteString("plus")
			dash = false
		case r == '#':
			b.WriteString("sharp")
			dash = false
		default:
			if !dash && b.Len() > 0 {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// SlugifyOr is Slugify with a fallback for input that yields an empty slug.
func SlugifyOr(s, fallback string) string {
	if slug := Slugify(s); slug != "" {
		return slug
	}
	return fallback
}
