// Package papercode turns a short project description into a documentation
// tree: README, architecture and setup guides, per-library notes and more.
//
// The quickest entry point is GenerateProject, which validates the request
// against the embedded catalog, optionally asks an OpenAI-compatible model for
// a description, and renders the embedded templates under outputRoot.
package papercode

import (
	"context"

	"github.com/paper-code/go-papercode/pkg/model"
	"github.com/paper-code/go-papercode/pkg/orchestrator"
)

// ProjectConfig is the raw generation request.
type ProjectConfig = model.ProjectConfig

// Project is a validated generation request.
type Project = model.Project

// GeneratedProject lists the files present under an output root.
type GeneratedProject = model.GeneratedProject

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// GenerateProject runs a single generation with a fresh orchestrator. The
// caller owns outputRoot and must not share it with concurrent requests.
func GenerateProject(ctx context.Context, cfg ProjectConfig, outputRoot string, options ...orchestrator.Option) (GeneratedProject, error) {
	return orchestrator.New(options...).Generate(ctx, cfg, outputRoot)
}
