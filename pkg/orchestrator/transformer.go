package orchestrator

import (
	"context"
	"fmt"

	"github.com/paper-code/go-papercode/pkg/model"
)

// Transformer mutates a validated Project before it is rendered. Transformers
// run after the optional AI description step, in registration order, and
// their changes are not re-validated against the catalog.
type Transformer interface {
	Transform(ctx context.Context, project *model.Project) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, project *model.Project) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, project *model.Project) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, project)
}

// WithTransformer appends a transformer to the pipeline.
func WithTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		if t != nil {
			o.transformers = append(o.transformers, t)
		}
	}
}

func (o *Orchestrator) transform(ctx context.Context, project model.Project) (model.Project, error) {
	for i, t := range o.transformers {
		if err := ctx.Err(); err != nil {
			return model.Project{}, err
		}
		if err := t.Transform(ctx, &project); err != nil {
			return model.Project{}, fmt.Errorf("orchestrator: transformer %d: %w", i, err)
		}
	}
	return project, nil
}
