package orchestrator

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/paper-code/go-papercode/pkg/ai"
	"github.com/paper-code/go-papercode/pkg/catalog"
	"github.com/paper-code/go-papercode/pkg/engine"
	apperrors "github.com/paper-code/go-papercode/pkg/errors"
	"github.com/paper-code/go-papercode/pkg/logger"
	"github.com/paper-code/go-papercode/pkg/metrics"
	"github.com/paper-code/go-papercode/pkg/model"
	"github.com/paper-code/go-papercode/pkg/tracer"
)

// Validator turns raw configuration into a validated project. *catalog.Catalog
// satisfies it.
type Validator interface {
	Validate(cfg model.ProjectConfig) (model.Project, error)
}

// Describer produces AI descriptions. *ai.Provider satisfies it.
type Describer interface {
	Available() bool
	Describe(ctx context.Context, in ai.DescribeInput) (string, error)
}

// Generator renders a project into an output root. *engine.Engine satisfies it.
type Generator interface {
	Generate(ctx context.Context, project model.Project, outputRoot string) ([]string, error)
}

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithCatalog injects the catalog used for validation.
func WithCatalog(v Validator) Option {
	return func(o *Orchestrator) {
		o.catalog = v
	}
}

// WithDescriber injects the AI description provider.
func WithDescriber(d Describer) Option {
	return func(o *Orchestrator) {
		o.describer = d
	}
}

// WithEngine injects the template engine.
func WithEngine(g Generator) Option {
	return func(o *Orchestrator) {
		o.engine = g
	}
}

// WithLogger sets the logger used for request start and finish lines.
func WithLogger(l *slog.Logger) Option {
	return func(o *Orchestrator) {
		if l != nil {
			o.logger = l
		}
	}
}

// Orchestrator composes validation, the optional AI description step and the
// template engine. It performs no retries and holds no per-request state.
type Orchestrator struct {
	catalog       Validator
	describer     Describer
	engine        Generator
	transformers  []Transformer
	logger        *slog.Logger
	initialiseErr error
}

// New constructs an Orchestrator. Missing collaborators default to the
// embedded catalog, an AI provider keyed by OPENAI_API_KEY, and the embedded
// template engine.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

func (o *Orchestrator) applyDefaults() {
	if o.logger == nil {
		o.logger = logger.Default()
	}
	if o.catalog == nil {
		o.catalog = catalog.Default()
	}
	if o.describer == nil {
		o.describer = ai.New(ai.Config{APIKey: os.Getenv("OPENAI_API_KEY")}, ai.WithLogger(o.logger))
	}
	if o.engine == nil {
		eng, err := engine.New(engine.WithLogger(o.logger))
		if err != nil {
			o.initialiseErr = err
			return
		}
		o.engine = eng
	}
}

// AIAvailable reports whether AI descriptions can be requested.
func (o *Orchestrator) AIAvailable() bool {
	return o.describer != nil && o.describer.Available()
}

// Generate validates cfg, optionally replaces its description with an AI
// generated one, and renders the documentation under outputRoot. Errors from
// each stage are returned unchanged. When AI is requested but unavailable the
// call fails before anything is written.
func (o *Orchestrator) Generate(ctx context.Context, cfg model.ProjectConfig, outputRoot string) (model.GeneratedProject, error) {
	if ctx == nil {
		return model.GeneratedProject{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return model.GeneratedProject{}, err
	}
	if err := o.initialiseErr; err != nil {
		return model.GeneratedProject{}, err
	}
	if outputRoot == "" {
		return model.GeneratedProject{}, apperrors.InvalidField("output_root", "", "output root is required")
	}

	ctx, span := tracer.Start(ctx, "orchestrator.generate")
	defer span.End()

	start := time.Now()
	log := logger.Enrich(ctx, o.logger)
	log.Info("generation started",
		"project_type", cfg.ProjectType,
		"tech_stack", cfg.TechStack,
		"ai_generate", cfg.AIGenerate,
		"update_mode", cfg.UpdateMode,
	)

	result, err := o.generate(ctx, cfg, outputRoot)

	status := "ok"
	if err != nil {
		status = string(apperrors.AsAppError(err).Code)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.Warn("generation failed", "error", err.Error(), "elapsed", time.Since(start))
	} else {
		span.SetAttributes(attribute.Int("generation.files", len(result.Files)))
		log.Info("generation finished", "files", len(result.Files), "elapsed", time.Since(start))
	}
	metrics.RecordGeneration(cfg.ProjectType, status, len(result.Files), time.Since(start))

	return result, err
}

func (o *Orchestrator) generate(ctx context.Context, cfg model.ProjectConfig, outputRoot string) (model.GeneratedProject, error) {
	project, err := o.catalog.Validate(cfg)
	if err != nil {
		return model.GeneratedProject{}, err
	}
	tracer.SpanFromContext(ctx).SetAttributes(
		attribute.String("project.type", project.Type),
		attribute.String("project.tech_stack", project.TechStack),
	)

	if project.AIGenerate {
		project, err = o.describe(ctx, project)
		if err != nil {
			return model.GeneratedProject{}, err
		}
	}

	project, err = o.transform(ctx, project)
	if err != nil {
		return model.GeneratedProject{}, err
	}

	files, err := o.engine.Generate(ctx, project, outputRoot)
	if err != nil {
		return model.GeneratedProject{}, err
	}
	return model.GeneratedProject{OutputRoot: outputRoot, Files: files}, nil
}

func (o *Orchestrator) describe(ctx context.Context, project model.Project) (model.Project, error) {
	if !o.AIAvailable() {
		return model.Project{}, apperrors.AIUnavailable(ai.UnavailableHint)
	}

	description, err := o.describer.Describe(ctx, ai.DescribeInput{
		ProjectName: project.Name,
		ProjectType: project.Type,
		TechStack:   project.TechStack,
		Libraries:   project.Libraries,
		Hint:        project.AIHint,
	})
	if err != nil {
		if apperrors.IsAppError(err) {
			return model.Project{}, err
		}
		return model.Project{}, apperrors.AIRequestFailed(err)
	}
	return project.WithDescription(description), nil
}
