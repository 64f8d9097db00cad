package httpapi

import (
	"context"
	"net/http"
	"regexp"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/paper-code/go-papercode/pkg/testsupport"
)

var ginParam = regexp.MustCompile(`:(\w+)`)

func TestSpecValidates(t *testing.T) {
	doc := Spec("v1.2.3")
	if err := doc.Validate(context.Background()); err != nil {
		t.Fatalf("spec does not validate: %v", err)
	}
	if doc.Info.Version != "v1.2.3" {
		t.Fatalf("version = %q", doc.Info.Version)
	}
}

func TestSpecCoversEveryRoute(t *testing.T) {
	srv, _ := newTestServer(t, &stubGenerator{})
	doc := Spec("test")

	for _, route := range srv.engine.Routes() {
		if route.Path == "/metrics" {
			continue
		}
		path := ginParam.ReplaceAllString(route.Path, "{$1}")
		item := doc.Paths.Value(path)
		if item == nil {
			t.Errorf("route %s %s missing from spec", route.Method, route.Path)
			continue
		}
		if item.GetOperation(route.Method) == nil {
			t.Errorf("operation %s %s missing from spec", route.Method, path)
		}
	}
}

func TestOpenAPIRoute(t *testing.T) {
	srv, _ := newTestServer(t, &stubGenerator{})
	rec := do(t, srv, http.MethodGet, "/api/openapi.json", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	doc, err := openapi3.NewLoader().LoadFromData(rec.Body.Bytes())
	if err != nil {
		t.Fatalf("load served spec: %v", err)
	}
	if doc.Paths.Value("/api/generate") == nil {
		t.Fatalf("served spec lacks /api/generate")
	}
	if diff := testsupport.CompareGolden("test", doc.Info.Version); diff != "" {
		t.Fatalf("version (-want +got):\n%s", diff)
	}
}
