// Package prompt walks a user through the catalog interactively and produces
// a project configuration.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/paper-code/go-papercode/pkg/model"
)

// Catalog is the listing surface the wizard needs. *catalog.Catalog
// satisfies it.
type Catalog interface {
	ProjectTypes() []string
	TechStacks(projectType string) []string
	Libraries(techStack string) []string
}

// Wizard asks for every ProjectConfig field in catalog order: name,
// description, project type, stack, libraries, then the AI and update flags.
type Wizard struct {
	driver      Driver
	catalog     Catalog
	aiAvailable bool
}

// NewWizard builds a wizard. When aiAvailable is false the AI question is
// skipped and ai_generate stays off.
func NewWizard(driver Driver, catalog Catalog, aiAvailable bool) *Wizard {
	return &Wizard{driver: driver, catalog: catalog, aiAvailable: aiAvailable}
}

// Run collects a configuration. It does not validate against the catalog
// beyond offering only catalog choices.
func (w *Wizard) Run(ctx context.Context) (model.ProjectConfig, error) {
	var cfg model.ProjectConfig
	var err error

	cfg.ProjectName, err = w.driver.Input(ctx, InputConfig{
		Message:   "Project name:",
		Validator: required("project name"),
	})
	if err != nil {
		return model.ProjectConfig{}, err
	}
	cfg.ProjectName = strings.TrimSpace(cfg.ProjectName)

	cfg.Description, err = w.driver.Input(ctx, InputConfig{
		Message: "Short description:",
		Help:    "Leave empty to fill it in later or let the AI write it.",
	})
	if err != nil {
		return model.ProjectConfig{}, err
	}

	if cfg.ProjectType, err = w.choose(ctx, "Project type:", w.catalog.ProjectTypes()); err != nil {
		return model.ProjectConfig{}, err
	}
	if cfg.TechStack, err = w.choose(ctx, "Tech stack:", w.catalog.TechStacks(cfg.ProjectType)); err != nil {
		return model.ProjectConfig{}, err
	}

	libraries := w.catalog.Libraries(cfg.TechStack)
	cfg.Libraries = []string{}
	if len(libraries) > 0 {
		picked, err := w.driver.MultiSelect(ctx, SelectConfig{
			Message:  "Libraries:",
			Options:  libraries,
			PageSize: 10,
		})
		if err != nil {
			return model.ProjectConfig{}, err
		}
		for _, idx := range picked {
			if idx >= 0 && idx < len(libraries) {
				cfg.Libraries = append(cfg.Libraries, libraries[idx])
			}
		}
	}

	if w.aiAvailable {
		cfg.AIGenerate, err = w.driver.Confirm(ctx, ConfirmConfig{
			Message: "Generate the description with AI?",
		})
		if err != nil {
			return model.ProjectConfig{}, err
		}
		if cfg.AIGenerate {
			cfg.AIHint, err = w.driver.Input(ctx, InputConfig{Message: "Extra guidance for the AI (optional):"})
			if err != nil {
				return model.ProjectConfig{}, err
			}
		}
	} else if err := w.driver.Info(ctx, "AI descriptions disabled: no API key configured."); err != nil {
		return model.ProjectConfig{}, err
	}

	cfg.UpdateMode, err = w.driver.Confirm(ctx, ConfirmConfig{
		Message: "Keep existing files in the output directory?",
		Default: true,
	})
	if err != nil {
		return model.ProjectConfig{}, err
	}
	return cfg, nil
}

func (w *Wizard) choose(ctx context.Context, message string, options []string) (string, error) {
	if len(options) == 0 {
		return "", fmt.Errorf("prompt: no options for %q", strings.TrimSuffix(message, ":"))
	}
	idx, err := w.driver.Select(ctx, SelectConfig{Message: message, Options: options, PageSize: 10})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(options) {
		return "", fmt.Errorf("prompt: selection out of range for %q", strings.TrimSuffix(message, ":"))
	}
	return options[idx], nil
}

func required(label string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(label + " is required")
		}
		return nil
	}
}
