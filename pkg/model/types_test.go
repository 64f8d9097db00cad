package model

import "testing"

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Test Project":   "test-project",
		"Node.js":        "node-js",
		"  React Native": "react-native",
		"C++":            "cplusplus",
		"C#":             "csharp",
		"Vue 3 / Vite!":  "vue-3-vite",
		"":               "",
		"日本語ツール":         "日本語ツール",
		"Тест Проект":    "тест-проект",
		"!!!":            "",
	}
	for in, want := range cases {
		if got := Slugify(in); got != want {
			t.Errorf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestProjectWithDescriptionCopies(t *testing.T) {
	p := Project{Name: "demo", Description: "old", Libraries: []string{"Axios"}}
	next := p.WithDescription("new")

	if p.Description != "old" {
		t.Fatalf("original mutated: %q", p.Description)
	}
	if next.Description != "new" {
		t.Fatalf("description not applied: %q", next.Description)
	}
	next.Libraries[0] = "changed"
	if p.Libraries[0] != "Axios" {
		t.Fatalf("libraries share backing array with original")
	}
}

func TestProjectSlugNeverEmpty(t *testing.T) {
	cases := map[string]string{
		"My Tool": "my-tool",
		"日本語ツール":  "日本語ツール",
		"!!!":     DefaultSlug,
		"   ":     DefaultSlug,
	}
	for name, want := range cases {
		if got := (Project{Name: name}).Slug(); got != want {
			t.Errorf("Project{Name: %q}.Slug() = %q, want %q", name, got, want)
		}
	}
}
