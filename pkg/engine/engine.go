package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"path/filepath"
	"strings"

	apperrors "github.com/paper-code/go-papercode/pkg/errors"
	"github.com/paper-code/go-papercode/pkg/logger"
	"github.com/paper-code/go-papercode/pkg/model"
	rendertemplate "github.com/paper-code/go-papercode/pkg/render/template"
	"github.com/paper-code/go-papercode/pkg/render/template/jinja"
)

// Document actions reported in debug logs and PlannedFile.Action.
const (
	ActionWritten = "written"
	ActionSkipped = "skipped"
	ActionMerged  = "merged"
)

// Engine renders projects into documentation trees. It holds no per-request
// state and is safe for concurrent use on distinct output roots.
type Engine struct {
	base         source
	baseRenderer rendertemplate.TemplateRenderer
	merges       *MergeRegistry
	factory      rendertemplate.Factory
	logger       *slog.Logger
}

// PlannedFile is one rendered document ready to be written.
type PlannedFile struct {
	Document string
	Template string
	Path     string
	Merge    string
	Content  []byte
}

// New constructs an Engine applying any provided options.
func New(opts ...Option) (*Engine, error) {
	cfg := config{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.merges == nil {
		cfg.merges = NewMergeRegistry()
	}
	if cfg.factory == nil {
		cfg.factory = jinja.NewFactory(jinja.WithExtension(TemplateExt))
	}
	if cfg.logger == nil {
		cfg.logger = logger.Default()
	}

	var (
		base source
		err  error
	)
	switch {
	case cfg.templatesDir != "":
		fsys, openErr := openDir(cfg.templatesDir)
		if openErr != nil {
			return nil, openErr
		}
		base, err = loadSource(fsys, cfg.templatesDir)
	case cfg.templatesFS != nil:
		base, err = loadSource(cfg.templatesFS, "custom templates")
	default:
		base = source{fsys: TemplatesFS(), manifest: BuiltinManifest(), label: "embedded templates"}
	}
	if err != nil {
		return nil, err
	}

	renderer, err := cfg.factory(base.fsys)
	if err != nil {
		return nil, fmt.Errorf("engine: configure template renderer: %w", err)
	}

	return &Engine{
		base:         base,
		baseRenderer: renderer,
		merges:       cfg.merges,
		factory:      cfg.factory,
		logger:       cfg.logger,
	}, nil
}

// MergeStrategies exposes the registry consulted in update mode.
func (e *Engine) MergeStrategies() *MergeRegistry {
	return e.merges
}

// Generate renders every document that applies to project and writes it under
// outputRoot. It returns every regular file present under outputRoot after the
// run, sorted. All documents are rendered before anything is written, so a
// render failure leaves the output root untouched.
func (e *Engine) Generate(ctx context.Context, project model.Project, outputRoot string) ([]string, error) {
	if e == nil {
		return nil, apperrors.New(apperrors.CodeInternal, "engine is nil")
	}
	log := logger.Enrich(ctx, e.logger)

	planned, err := e.Plan(ctx, project)
	if err != nil {
		return nil, err
	}
	if err := ensureRoot(outputRoot); err != nil {
		return nil, err
	}

	for _, file := range planned {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		action, err := e.write(outputRoot, file, project.UpdateMode)
		if err != nil {
			return nil, err
		}
		log.Debug("document processed",
			"document", file.Document,
			"path", file.Path,
			"action", action,
		)
	}

	return ListFiles(outputRoot)
}

// Plan resolves the template source for project and renders every applicable
// document in memory. Nothing touches the filesystem outside the template
// source.
func (e *Engine) Plan(ctx context.Context, project model.Project) ([]PlannedFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	src, renderer, err := e.resolve(project)
	if err != nil {
		return nil, err
	}

	docs := src.manifest.Select(project)
	if src.override {
		available := docs[:0:0]
		for _, doc := range docs {
			if src.hasTemplate(doc) {
				available = append(available, doc)
				continue
			}
			logger.Enrich(ctx, e.logger).Debug("template missing from override, document skipped",
				"document", doc.Name, "template", doc.Template, "dir", src.label)
		}
		if len(available) == 0 {
			return nil, apperrors.TemplateSourceNotFound(src.label, "no template for any selected document")
		}
		docs = available
	}

	base := templateData(project)
	planned := make([]PlannedFile, 0, len(docs))
	owners := make(map[string]string, len(docs))
	for _, doc := range docs {
		if _, err := e.merges.Get(doc.Merge); err != nil {
			return nil, apperrors.TemplateRenderError(doc.Template, err)
		}
		for _, data := range expand(doc, project, base) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			file, err := renderDocument(renderer, doc, data)
			if err != nil {
				return nil, err
			}
			if owner, dup := owners[file.Path]; dup {
				return nil, apperrors.TemplateRenderError(doc.Template,
					fmt.Errorf("output %q already produced by document %q", file.Path, owner))
			}
			owners[file.Path] = doc.Name
			planned = append(planned, file)
		}
	}
	return planned, nil
}

func (e *Engine) resolve(project model.Project) (source, rendertemplate.TemplateRenderer, error) {
	if project.TemplateDir == "" {
		return e.base, e.baseRenderer, nil
	}

	fsys, err := openDir(project.TemplateDir)
	if err != nil {
		return source{}, nil, err
	}
	src, err := loadSource(fsys, project.TemplateDir)
	if err != nil {
		return source{}, nil, err
	}
	src.override = true

	renderer, err := e.factory(fsys)
	if err != nil {
		return source{}, nil, apperrors.TemplateSourceNotFound(project.TemplateDir, err.Error())
	}
	return src, renderer, nil
}

func renderDocument(renderer rendertemplate.TemplateRenderer, doc Document, data map[string]any) (PlannedFile, error) {
	for _, key := range doc.Requires {
		if isEmpty(lookup(data, key)) {
			return PlannedFile{}, apperrors.TemplateRenderError(doc.Template,
				fmt.Errorf("required placeholder %q is empty", key))
		}
	}

	rawPath, err := renderer.RenderString(doc.Output, data)
	if err != nil {
		return PlannedFile{}, apperrors.TemplateRenderError(doc.Template, err)
	}
	rel, err := cleanOutputPath(rawPath)
	if err != nil {
		return PlannedFile{}, apperrors.TemplateRenderError(doc.Template, err)
	}

	content, err := renderer.RenderTemplate(templateFile(doc.Template), data)
	if err != nil {
		return PlannedFile{}, apperrors.TemplateRenderError(doc.Template, err)
	}

	return PlannedFile{
		Document: doc.Name,
		Template: doc.Template,
		Path:     rel,
		Merge:    doc.Merge,
		Content:  []byte(content),
	}, nil
}

// cleanOutputPath normalises a rendered output path and rejects anything that
// would land outside the output root.
func cleanOutputPath(raw string) (string, error) {
	rel := path.Clean(strings.TrimSpace(strings.ReplaceAll(raw, "\\", "/")))
	if rel == "." || rel == "" || !filepath.IsLocal(filepath.FromSlash(rel)) {
		return "", fmt.Errorf("output path %q escapes the output root", raw)
	}
	return rel, nil
}

func (e *Engine) write(outputRoot string, file PlannedFile, updateMode bool) (string, error) {
	target := filepath.Join(outputRoot, filepath.FromSlash(file.Path))

	existing, exists, err := readExisting(target)
	if errors.Is(err, errSymlink) {
		if updateMode {
			return ActionSkipped, nil
		}
		err = nil
	}
	if err != nil {
		return "", err
	}
	if !exists || !updateMode {
		return ActionWritten, writeAtomic(target, file.Content)
	}

	strategy, err := e.merges.Get(file.Merge)
	if err != nil {
		return "", apperrors.TemplateRenderError(file.Template, err)
	}
	merged, err := strategy.Merge(existing, file.Content)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.CodeInternal, "merge strategy failed").WithDetail(strategy.Name() + ": " + file.Path)
	}
	if bytes.Equal(merged, existing) {
		return ActionSkipped, nil
	}
	return ActionMerged, writeAtomic(target, merged)
}
