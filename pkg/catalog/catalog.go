package catalog

import (
	"fmt"
	"slices"
	"strings"

	apperrors "github.com/paper-code/go-papercode/pkg/errors"
	"github.com/paper-code/go-papercode/pkg/model"
)

// Definition is the on-disk shape of a catalog. Sequences are used instead of
// maps so declaration order survives every supported format.
type Definition struct {
	ProjectTypes []ProjectTypeDef `json:"project_types" yaml:"project_types" toml:"project_types"`
	TechStacks   []TechStackDef   `json:"tech_stacks" yaml:"tech_stacks" toml:"tech_stacks"`
}

// ProjectTypeDef lists the tech stacks available for a project type.
type ProjectTypeDef struct {
	Name       string   `json:"name" yaml:"name" toml:"name"`
	TechStacks []string `json:"tech_stacks" yaml:"tech_stacks" toml:"tech_stacks"`
}

// TechStackDef lists the libraries available for a tech stack.
type TechStackDef struct {
	Name      string   `json:"name" yaml:"name" toml:"name"`
	Libraries []string `json:"libraries" yaml:"libraries" toml:"libraries"`
}

// Snapshot is the full catalog structure, shaped for JSON responses.
type Snapshot struct {
	ProjectTypes []string            `json:"project_types"`
	TechStacks   map[string][]string `json:"tech_stacks"`
	Libraries    map[string][]string `json:"libraries"`
}

// Catalog is the immutable registry of project types, tech stacks and
// libraries. A Catalog is safe for concurrent use because nothing mutates it
// after New returns.
type Catalog struct {
	types     []string
	stacks    map[string][]string
	libraries map[string][]string
	libIndex  map[string]map[string]int
}

// New validates def and builds a Catalog. Every stack referenced by a project
// type must have a tech_stacks entry (its library list may be empty).
func New(def Definition) (*Catalog, error) {
	c := &Catalog{
		stacks:    make(map[string][]string, len(def.ProjectTypes)),
		libraries: make(map[string][]string, len(def.TechStacks)),
		libIndex:  make(map[string]map[string]int, len(def.TechStacks)),
	}

	for _, stack := range def.TechStacks {
		name := strings.TrimSpace(stack.Name)
		if name == "" {
			return nil, fmt.Errorf("catalog: tech stack with empty name")
		}
		if _, exists := c.libraries[name]; exists {
			return nil, fmt.Errorf("catalog: duplicate tech stack %q", name)
		}
		libs, index, err := normaliseList(stack.Libraries)
		if err != nil {
			return nil, fmt.Errorf("catalog: tech stack %q: %w", name, err)
		}
		c.libraries[name] = libs
		c.libIndex[name] = index
	}

	for _, pt := range def.ProjectTypes {
		name := strings.TrimSpace(pt.Name)
		if name == "" {
			return nil, fmt.Errorf("catalog: project type with empty name")
		}
		if _, exists := c.stacks[name]; exists {
			return nil, fmt.Errorf("catalog: duplicate project type %q", name)
		}
		stacks, _, err := normaliseList(pt.TechStacks)
		if err != nil {
			return nil, fmt.Errorf("catalog: project type %q: %w", name, err)
		}
		for _, stack := range stacks {
			if _, ok := c.libraries[stack]; !ok {
				return nil, fmt.Errorf("catalog: project type %q references tech stack %q with no libraries entry", name, stack)
			}
		}
		c.types = append(c.types, name)
		c.stacks[name] = stacks
	}

	return c, nil
}

// MustNew is New that panics on error.
func MustNew(def Definition) *Catalog {
	c, err := New(def)
	if err != nil {
		panic(err)
	}
	return c
}

func normaliseList(values []string) ([]string, map[string]int, error) {
	out := make([]string, 0, len(values))
	index := make(map[string]int, len(values))
	for i, raw := range values {
		v := strings.TrimSpace(raw)
		if v == "" {
			return nil, nil, fmt.Errorf("empty entry at index %d", i)
		}
		if _, dup := index[v]; dup {
			return nil, nil, fmt.Errorf("duplicate entry %q", v)
		}
		index[v] = len(out)
		out = append(out, v)
	}
	return out, index, nil
}

// ProjectTypes returns every project type in declaration order.
func (c *Catalog) ProjectTypes() []string {
	return slices.Clone(c.types)
}

// TechStacks returns the stacks registered for projectType, or an empty slice
// when the type is unknown.
func (c *Catalog) TechStacks(projectType string) []string {
	stacks, ok := c.stacks[projectType]
	if !ok {
		return []string{}
	}
	return slices.Clone(stacks)
}

// Libraries returns the libraries registered for techStack, or an empty slice
// when the stack is unknown.
func (c *Catalog) Libraries(techStack string) []string {
	libs, ok := c.libraries[techStack]
	if !ok {
		return []string{}
	}
	return slices.Clone(libs)
}

// Snapshot returns a deep copy of the catalog. Only stacks reachable from a
// project type appear in TechStacks; Libraries holds every declared stack.
func (c *Catalog) Snapshot() Snapshot {
	snap := Snapshot{
		ProjectTypes: slices.Clone(c.types),
		TechStacks:   make(map[string][]string, len(c.stacks)),
		Libraries:    make(map[string][]string, len(c.libraries)),
	}
	for k, v := range c.stacks {
		snap.TechStacks[k] = slices.Clone(v)
	}
	for k, v := range c.libraries {
		snap.Libraries[k] = slices.Clone(v)
	}
	return snap
}

// Validate checks cfg against the catalog and returns the normalised Project.
// Library checks fail on the first unknown entry. Blank library entries are
// ignored, duplicates collapse, and the result follows catalog order.
func (c *Catalog) Validate(cfg model.ProjectConfig) (model.Project, error) {
	name := strings.TrimSpace(cfg.ProjectName)
	if name == "" {
		return model.Project{}, apperrors.InvalidField("project_name", cfg.ProjectName, "project name is required")
	}

	projectType := strings.TrimSpace(cfg.ProjectType)
	stacks, ok := c.stacks[projectType]
	if !ok {
		return model.Project{}, apperrors.UnknownProjectType(cfg.ProjectType)
	}

	techStack := strings.TrimSpace(cfg.TechStack)
	if !slices.Contains(stacks, techStack) {
		return model.Project{}, apperrors.UnknownTechStack(projectType, cfg.TechStack)
	}

	index := c.libIndex[techStack]
	seen := make(map[string]struct{}, len(cfg.Libraries))
	selected := make([]string, 0, len(cfg.Libraries))
	for _, raw := range cfg.Libraries {
		lib := strings.TrimSpace(raw)
		if lib == "" {
			continue
		}
		if _, ok := index[lib]; !ok {
			return model.Project{}, apperrors.UnknownLibrary(techStack, raw)
		}
		if _, dup := seen[lib]; dup {
			continue
		}
		seen[lib] = struct{}{}
		selected = append(selected, lib)
	}
	slices.SortFunc(selected, func(a, b string) int {
		return index[a] - index[b]
	})

	return model.Project{
		Name:        name,
		Description: strings.TrimSpace(cfg.Description),
		Type:        projectType,
		TechStack:   techStack,
		Libraries:   selected,
		AIGenerate:  cfg.AIGenerate,
		AIHint:      strings.TrimSpace(cfg.AIHint),
		TemplateDir: strings.TrimSpace(cfg.TemplateDir),
		UpdateMode:  cfg.UpdateMode,
	}, nil
}
