package engine

import (
	"testing"

	"github.com/paper-code/go-papercode/pkg/model"
)

func TestParseManifestRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"empty":        `documents: []`,
		"no name":      "documents:\n  - template: a.j2\n    output: A.md\n",
		"no template":  "documents:\n  - name: a\n    output: A.md\n",
		"no output":    "documents:\n  - name: a\n    template: a.j2\n",
		"bad each":     "documents:\n  - name: a\n    template: a.j2\n    output: A.md\n    each: stack\n",
		"duplicate":    "documents:\n  - name: a\n    template: a.j2\n    output: A.md\n  - name: a\n    template: b.j2\n    output: B.md\n",
		"invalid yaml": "documents: [",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseManifest([]byte(body)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestBuiltinManifestTemplatesExist(t *testing.T) {
	src := source{fsys: TemplatesFS(), manifest: BuiltinManifest()}
	for _, doc := range src.manifest.Documents {
		if !src.hasTemplate(doc) {
			t.Errorf("document %q references missing template %q", doc.Name, doc.Template)
		}
	}
}

func TestDocumentApplies(t *testing.T) {
	doc := Document{ProjectTypes: []string{"Backend"}, TechStacks: []string{"Go"}}
	if !doc.Applies(model.Project{Type: "Backend", TechStack: "Go"}) {
		t.Fatalf("expected match")
	}
	if doc.Applies(model.Project{Type: "Backend", TechStack: "Django"}) {
		t.Fatalf("stack filter ignored")
	}
	if doc.Applies(model.Project{Type: "Frontend", TechStack: "Go"}) {
		t.Fatalf("type filter ignored")
	}
}

func TestCleanOutputPath(t *testing.T) {
	ok := map[string]string{
		"README.md":             "README.md",
		" docs//a/../b.md ":     "docs/b.md",
		`docs\libraries\x.md`:   "docs/libraries/x.md",
		".github/TEMPLATE.md":   ".github/TEMPLATE.md",
	}
	for in, want := range ok {
		got, err := cleanOutputPath(in)
		if err != nil || got != want {
			t.Errorf("cleanOutputPath(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	for _, bad := range []string{"", ".", "../x.md", "/etc/passwd", "docs/../../x"} {
		if _, err := cleanOutputPath(bad); err == nil {
			t.Errorf("cleanOutputPath(%q) should fail", bad)
		}
	}
}

func TestLookupAndIsEmpty(t *testing.T) {
	data := templateData(model.Project{Name: "Demo", TechStack: "Go"})
	if got := lookup(data, "project.name"); got != "Demo" {
		t.Fatalf("lookup project.name = %v", got)
	}
	if !isEmpty(lookup(data, "project.description")) {
		t.Fatalf("empty description should be empty")
	}
	if !isEmpty(lookup(data, "project.libraries")) {
		t.Fatalf("no libraries should be empty")
	}
	if !isEmpty(lookup(data, "library.name")) {
		t.Fatalf("missing key should be empty")
	}
}

func TestMergeRegistry(t *testing.T) {
	r := NewMergeRegistry()
	if got := r.List(); len(got) != 2 || got[0] != MergeOverwrite || got[1] != MergeSkip {
		t.Fatalf("List() = %v", got)
	}
	skip, err := r.Get("")
	if err != nil || skip.Name() != MergeSkip {
		t.Fatalf("empty name should resolve to skip, got %v %v", skip, err)
	}
	if err := r.Register(MergeFunc(MergeSkip, nil)); err == nil {
		t.Fatalf("duplicate registration should fail")
	}
	if _, err := r.Get("missing"); err == nil {
		t.Fatalf("expected error for unknown strategy")
	}
}
