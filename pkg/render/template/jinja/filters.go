package jinja

import (
	"fmt"
	"html"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	"github.com/microcosm-cc/bluemonday"

	"github.com/paper-code/go-papercode/pkg/model"
)

var (
	filtersOnce sync.Once

	sanitizeOnce   sync.Once
	sanitizePolicy *bluemonday.Policy
)

func registerDefaultFilters() {
	filtersOnce.Do(func() {
		for name, fn := range map[string]pongo2.FilterFunction{
			"slug":     filterSlug,
			"bullets":  filterBullets,
			"sanitize": filterSanitize,
		} {
			if !pongo2.FilterExists(name) {
				_ = pongo2.RegisterFilter(name, fn)
			}
		}
	})
}

func filterSlug(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsValue(model.Slugify(in.String())), nil
}

// filterBullets renders a list as markdown bullet lines. The optional param is
// emitted as a single bullet when the list is empty.
func filterBullets(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	var items []string
	switch v := in.Interface().(type) {
	case nil:
	case []string:
		items = v
	case []any:
		for _, item := range v {
			items = append(items, fmt.Sprint(item))
		}
	default:
		if s := strings.TrimSpace(in.String()); s != "" {
			items = []string{s}
		}
	}

	if len(items) == 0 {
		if param != nil && param.String() != "" {
			return pongo2.AsValue("- " + param.String()), nil
		}
		return pongo2.AsValue(""), nil
	}

	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "- " + item
	}
	return pongo2.AsValue(strings.Join(lines, "\n")), nil
}

// filterSanitize strips HTML from text known to carry markup. It is opt-in:
// free text such as descriptions is substituted as written, because anything
// shaped like a tag (Vec<T>, <Button>) would be dropped.
func filterSanitize(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsValue(Sanitize(in.String())), nil
}

// Sanitize removes every HTML element from raw and unescapes the remaining
// entities.
func Sanitize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	sanitizeOnce.Do(func() {
		sanitizePolicy = bluemonday.StrictPolicy()
	})
	return strings.TrimSpace(html.UnescapeString(sanitizePolicy.Sanitize(trimmed)))
}
