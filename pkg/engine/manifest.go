package engine

import (
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/paper-code/go-papercode/pkg/model"
)

// ManifestFile is the manifest name looked up at the root of a template source.
const ManifestFile = "manifest.yaml"

// EachLibrary expands a document once per selected library.
const EachLibrary = "library"

// Manifest lists the documents a template source can produce.
type Manifest struct {
	Documents []Document `yaml:"documents"`
}

// Document describes one generated file, or one file per library when Each is
// "library".
type Document struct {
	Name         string   `yaml:"name"`
	Template     string   `yaml:"template"`
	Output       string   `yaml:"output"`
	ProjectTypes []string `yaml:"project_types,omitempty"`
	TechStacks   []string `yaml:"tech_stacks,omitempty"`
	Each         string   `yaml:"each,omitempty"`
	Requires     []string `yaml:"requires,omitempty"`
	Merge        string   `yaml:"merge,omitempty"`
}

// ParseManifest decodes and checks a manifest.
func ParseManifest(data []byte) (Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("engine: parse manifest: %w", err)
	}
	if len(m.Documents) == 0 {
		return Manifest{}, fmt.Errorf("engine: manifest declares no documents")
	}

	seen := make(map[string]struct{}, len(m.Documents))
	for i, doc := range m.Documents {
		name := strings.TrimSpace(doc.Name)
		switch {
		case name == "":
			return Manifest{}, fmt.Errorf("engine: manifest document %d has no name", i)
		case strings.TrimSpace(doc.Template) == "":
			return Manifest{}, fmt.Errorf("engine: manifest document %q has no template", name)
		case strings.TrimSpace(doc.Output) == "":
			return Manifest{}, fmt.Errorf("engine: manifest document %q has no output", name)
		case doc.Each != "" && doc.Each != EachLibrary:
			return Manifest{}, fmt.Errorf("engine: manifest document %q: unsupported each %q", name, doc.Each)
		}
		if _, dup := seen[name]; dup {
			return Manifest{}, fmt.Errorf("engine: manifest declares document %q twice", name)
		}
		seen[name] = struct{}{}
		m.Documents[i].Name = name
	}
	return m, nil
}

// Applies reports whether the document is produced for project.
func (d Document) Applies(project model.Project) bool {
	if len(d.ProjectTypes) > 0 && !slices.Contains(d.ProjectTypes, project.Type) {
		return false
	}
	if len(d.TechStacks) > 0 && !slices.Contains(d.TechStacks, project.TechStack) {
		return false
	}
	return true
}

// Select returns the documents that apply to project, in manifest order.
func (m Manifest) Select(project model.Project) []Document {
	out := make([]Document, 0, len(m.Documents))
	for _, doc := range m.Documents {
		if doc.Applies(project) {
			out = append(out, doc)
		}
	}
	return out
}
