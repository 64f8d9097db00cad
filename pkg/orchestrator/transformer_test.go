package orchestrator_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/paper-code/go-papercode/pkg/model"
	"github.com/paper-code/go-papercode/pkg/orchestrator"
	"github.com/paper-code/go-papercode/pkg/testsupport"
)

func TestOrchestrator_AppliesTransformers(t *testing.T) {
	t.Parallel()

	var order []string
	first := orchestrator.TransformerFunc(func(_ context.Context, p *model.Project) error {
		order = append(order, "first")
		p.Description = strings.ToUpper(p.Description)
		return nil
	})
	second := orchestrator.TransformerFunc(func(_ context.Context, p *model.Project) error {
		order = append(order, "second")
		p.Description += " (reviewed)"
		return nil
	})

	orch := newOrchestrator(
		orchestrator.WithDescriber(&stubDescriber{}),
		orchestrator.WithTransformer(first),
		orchestrator.WithTransformer(second),
		orchestrator.WithTransformer(nil),
	)
	root := t.TempDir()
	if _, err := orch.Generate(testsupport.Context(), testsupport.CanonicalConfig(), root); err != nil {
		t.Fatalf("generate: %v", err)
	}

	if strings.Join(order, ",") != "first,second" {
		t.Fatalf("transformer order = %v", order)
	}
	if readme := testsupport.ReadTree(t, root)["README.md"]; !strings.Contains(readme, "A TEST PROJECT (reviewed)") {
		t.Fatalf("transformed description missing:\n%s", readme)
	}
}

func TestOrchestrator_TransformerErrorStopsRender(t *testing.T) {
	t.Parallel()

	gen := &countingGenerator{}
	boom := errors.New("boom")
	orch := newOrchestrator(
		orchestrator.WithEngine(gen),
		orchestrator.WithTransformer(orchestrator.TransformerFunc(func(context.Context, *model.Project) error {
			return boom
		})),
	)

	_, err := orch.Generate(testsupport.Context(), testsupport.CanonicalConfig(), t.TempDir())
	if !errors.Is(err, boom) {
		t.Fatalf("expected transformer error, got %v", err)
	}
	if gen.calls != 0 {
		t.Fatalf("engine should not run after a transformer failure")
	}
}

func TestTransformerFuncNil(t *testing.T) {
	var fn orchestrator.TransformerFunc
	if err := fn.Transform(context.Background(), &model.Project{}); err != nil {
		t.Fatalf("nil func should be a no-op, got %v", err)
	}
}
