package jinja_test

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/paper-code/go-papercode/pkg/render/template/jinja"
	"github.com/paper-code/go-papercode/pkg/testsupport"
)

func newEngine(t *testing.T) *jinja.Engine {
	t.Helper()
	engine, err := jinja.New(jinja.WithFS(os.DirFS(filepath.Join("testdata", "templates"))))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func TestEngine_RenderTemplate(t *testing.T) {
	engine := newEngine(t)

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("hello", map[string]any{"name": "Ada"}, w)
	})

	want := testsupport.MustReadGoldenString(t, filepath.Join("testdata", "hello.golden"))
	if result != want {
		t.Fatalf("render mismatch result\nwant: %q\n got: %q", want, result)
	}
	if written != want {
		t.Fatalf("render mismatch writer\nwant: %q\n got: %q", want, written)
	}
}

func TestEngine_TrimBlocksAndBullets(t *testing.T) {
	engine := newEngine(t)

	data := map[string]any{
		"project": map[string]any{
			"name":      "Demo",
			"libraries": []string{"Axios", "TailwindCSS"},
		},
	}
	got, err := engine.RenderTemplate("project.j2", data)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	golden := filepath.Join("testdata", "project.golden")
	if testsupport.WriteMaybeGolden(t, golden, []byte(got)) {
		return
	}
	if diff := testsupport.CompareGolden(testsupport.MustReadGoldenString(t, golden), got); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestEngine_StructDataRoundTrips(t *testing.T) {
	engine := newEngine(t)

	type project struct {
		Name string `json:"name"`
	}
	got, err := engine.RenderString("{{ name }}", project{Name: "Typed"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "Typed" {
		t.Fatalf("got %q", got)
	}
}

func TestEngine_AutoescapeDisabled(t *testing.T) {
	engine := newEngine(t)

	got, err := engine.RenderString("{{ value }}", map[string]any{"value": "<b>a & b</b>"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "<b>a & b</b>" {
		t.Fatalf("expected raw output, got %q", got)
	}
}

func TestEngine_BuiltinFilters(t *testing.T) {
	engine := newEngine(t)

	cases := []struct {
		tpl  string
		data map[string]any
		want string
	}{
		{`{{ name|slug }}`, map[string]any{"name": "Node.js"}, "node-js"},
		{`{{ libs|bullets:"None selected" }}`, map[string]any{"libs": []string{}}, "- None selected"},
		{`{{ libs|bullets }}`, map[string]any{"libs": []string{"Redux"}}, "- Redux"},
		{`{{ text|sanitize }}`, map[string]any{"text": "<script>alert(1)</script>Fast &amp; <b>small</b>"}, "Fast & small"},
	}
	for _, tc := range cases {
		got, err := engine.RenderString(tc.tpl, tc.data)
		if err != nil {
			t.Fatalf("%s: %v", tc.tpl, err)
		}
		if got != tc.want {
			t.Errorf("%s: got %q, want %q", tc.tpl, got, tc.want)
		}
	}
}

func TestEngine_RegisterFilter(t *testing.T) {
	engine := newEngine(t)
	err := engine.RegisterFilter("shout_test", func(input any, _ any) (any, error) {
		return fmt.Sprintf("%s!", strings.ToUpper(fmt.Sprint(input))), nil
	})
	if err != nil {
		t.Fatalf("register filter: %v", err)
	}
	if err := engine.RegisterFilter("shout_test", func(any, any) (any, error) { return nil, nil }); err == nil {
		t.Fatalf("expected duplicate registration to fail")
	}

	got, err := engine.RenderString("{{ name|shout_test }}", map[string]any{"name": "ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "ADA!" {
		t.Fatalf("got %q", got)
	}
}

func TestEngine_GlobalContext(t *testing.T) {
	engine, err := jinja.New(
		jinja.WithFS(os.DirFS(filepath.Join("testdata", "templates"))),
		jinja.WithGlobalData(map[string]any{"generator": "paper-code"}),
	)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	got, err := engine.RenderString("{{ generator }}/{{ name }}", map[string]any{"name": "x"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "paper-code/x" {
		t.Fatalf("got %q", got)
	}
}

func TestEngine_MissingTemplate(t *testing.T) {
	engine := newEngine(t)
	if _, err := engine.RenderTemplate("absent", nil); err == nil {
		t.Fatalf("expected error for missing template")
	}
}

func TestNew_RequiresSource(t *testing.T) {
	if _, err := jinja.New(); err == nil {
		t.Fatalf("expected error without template source")
	}
}

func TestSanitize(t *testing.T) {
	if got := jinja.Sanitize("  <p>Hello</p>  "); got != "Hello" {
		t.Fatalf("got %q", got)
	}
	if got := jinja.Sanitize(""); got != "" {
		t.Fatalf("got %q", got)
	}
}
