package engine

import (
	"maps"
	"strconv"
	"strings"

	"github.com/paper-code/go-papercode/pkg/model"
)

// templateData builds the context every document template receives.
func templateData(p model.Project) map[string]any {
	libs := append([]string{}, p.Libraries...)
	return map[string]any{
		"project": map[string]any{
			"name":            p.Name,
			"slug":            p.Slug(),
			"description":     p.Description,
			"type":            p.Type,
			"type_slug":       model.SlugifyOr(p.Type, "type"),
			"tech_stack":      p.TechStack,
			"tech_stack_slug": model.SlugifyOr(p.TechStack, "stack"),
			"libraries":       libs,
			"library_notes":   libraryNotes(p.Libraries),
			"ai_generated":    p.AIGenerate,
		},
		"generator": map[string]any{
			"name": "paper-code",
			"url":  "https://github.com/paper-code/go-papercode",
		},
	}
}

// expand returns one data map per output of doc: a single map, or one per
// library when the document repeats for each library.
func expand(doc Document, p model.Project, base map[string]any) []map[string]any {
	if doc.Each != EachLibrary {
		return []map[string]any{base}
	}
	out := make([]map[string]any, 0, len(p.Libraries))
	for i, lib := range p.Libraries {
		data := maps.Clone(base)
		data["library"] = map[string]any{
			"name": lib,
			"slug": librarySlug(lib, i),
		}
		out = append(out, data)
	}
	return out
}

// librarySlug names the per-library note. Names without letters or digits fall
// back to their position so each library keeps a distinct path.
func librarySlug(lib string, i int) string {
	return model.SlugifyOr(lib, "library-"+strconv.Itoa(i+1))
}

func libraryNotes(libs []string) []map[string]any {
	notes := make([]map[string]any, len(libs))
	for i, lib := range libs {
		notes[i] = map[string]any{"name": lib, "slug": librarySlug(lib, i)}
	}
	return notes
}

// lookup resolves a dotted key such as "project.name" against data.
func lookup(data map[string]any, key string) any {
	var cur any = data
	for _, part := range strings.Split(key, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur, ok = m[part]
		if !ok {
			return nil
		}
	}
	return cur
}

func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	case []string:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	default:
		return false
	}
}
