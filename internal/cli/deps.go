package cli

import (
	"github.com/paper-code/go-papercode/pkg/ai"
	"github.com/paper-code/go-papercode/pkg/catalog"
	"github.com/paper-code/go-papercode/pkg/engine"
	"github.com/paper-code/go-papercode/pkg/orchestrator"
)

type deps struct {
	catalog      *catalog.Catalog
	engine       *engine.Engine
	provider     *ai.Provider
	orchestrator *orchestrator.Orchestrator
}

// build wires the pipeline from the loaded configuration.
func (a *app) build() (*deps, error) {
	cat := catalog.Default()
	if a.cfg.Catalog.Path != "" {
		loaded, err := catalog.LoadFile(a.cfg.Catalog.Path)
		if err != nil {
			return nil, err
		}
		cat = loaded
	}

	eng, err := engine.New(
		engine.WithTemplatesDir(a.cfg.Templates.Dir),
		engine.WithLogger(a.logger),
	)
	if err != nil {
		return nil, err
	}

	provider := ai.New(a.cfg.AI.Provider(), ai.WithLogger(a.logger))

	return &deps{
		catalog:  cat,
		engine:   eng,
		provider: provider,
		orchestrator: orchestrator.New(
			orchestrator.WithCatalog(cat),
			orchestrator.WithDescriber(provider),
			orchestrator.WithEngine(eng),
			orchestrator.WithLogger(a.logger),
		),
	}, nil
}
