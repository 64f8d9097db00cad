package papercode

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/paper-code/go-papercode/pkg/logger"
	"github.com/paper-code/go-papercode/pkg/orchestrator"
	"github.com/paper-code/go-papercode/pkg/testsupport"
)

func TestEmbeddedTemplatesContainManifest(t *testing.T) {
	data, err := fs.ReadFile(EmbeddedTemplates(), "manifest.yaml")
	if err != nil {
		t.Fatalf("expected manifest to be readable: %v", err)
	}
	if !strings.Contains(string(data), "core/README.md.j2") {
		t.Fatalf("manifest should reference the README template")
	}
}

func TestDefaultCatalogHasFrontendReact(t *testing.T) {
	libs := DefaultCatalog().Libraries("React")
	joined := strings.Join(libs, ",")
	if !strings.Contains(joined, "Axios") || !strings.Contains(joined, "TailwindCSS") {
		t.Fatalf("React libraries = %v", libs)
	}
}

func TestGenerateProject(t *testing.T) {
	root := t.TempDir()
	result, err := GenerateProject(testsupport.Context(), testsupport.CanonicalConfig(), root,
		orchestrator.WithLogger(logger.Discard()))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(result.Files) == 0 || result.OutputRoot != root {
		t.Fatalf("unexpected result: %+v", result)
	}
}
