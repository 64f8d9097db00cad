package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/paper-code/go-papercode/pkg/model"
)

type generateFlags struct {
	from        string
	output      string
	dryRun      bool
	name        string
	description string
	projectType string
	techStack   string
	libraries   []string
	ai          bool
	aiHint      string
	templateDir string
	update      bool
}

func newGenerateCmd(a *app) *cobra.Command {
	f := &generateFlags{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Render documentation for a project",
		Example: "  papercode generate --name Demo --type Frontend --stack React --library Axios -o ./docs-out\n" +
			"  papercode generate --from project.yaml --update",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := f.projectConfig(cmd)
			if err != nil {
				return err
			}
			d, err := a.build()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if f.dryRun {
				project, err := d.catalog.Validate(cfg)
				if err != nil {
					return err
				}
				if project.AIGenerate {
					fmt.Fprintln(out, "Dry run: AI description skipped")
				}
				plan, err := d.engine.Plan(cmd.Context(), project)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Would write %d files under %s\n", len(plan), f.output)
				for _, file := range plan {
					fmt.Fprintf(out, "  %s (%s)\n", file.Path, file.Document)
				}
				return nil
			}

			result, err := d.orchestrator.Generate(cmd.Context(), cfg, f.output)
			if err != nil {
				return err
			}
			printFiles(out, result.OutputRoot, result.Files)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.from, "from", "", "read the project configuration from a YAML or JSON file")
	flags.StringVarP(&f.output, "output", "o", "./docs-output", "output root")
	flags.BoolVar(&f.dryRun, "dry-run", false, "validate and list planned files without writing")
	flags.StringVar(&f.name, "name", "", "project name")
	flags.StringVar(&f.description, "description", "", "project description")
	flags.StringVar(&f.projectType, "type", "", "project type")
	flags.StringVar(&f.techStack, "stack", "", "tech stack")
	flags.StringSliceVar(&f.libraries, "library", nil, "library (repeatable or comma separated)")
	flags.BoolVar(&f.ai, "ai", false, "generate the description with the configured AI model")
	flags.StringVar(&f.aiHint, "ai-hint", "", "extra guidance for the AI description")
	flags.StringVar(&f.templateDir, "template-dir", "", "template directory replacing the built-in templates")
	flags.BoolVar(&f.update, "update", false, "keep existing files in the output root")
	return cmd
}

// projectConfig reads --from when given, then applies explicitly set flags.
func (f *generateFlags) projectConfig(cmd *cobra.Command) (model.ProjectConfig, error) {
	var cfg model.ProjectConfig
	if f.from != "" {
		data, err := os.ReadFile(f.from)
		if err != nil {
			return model.ProjectConfig{}, fmt.Errorf("read %s: %w", f.from, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return model.ProjectConfig{}, fmt.Errorf("parse %s: %w", f.from, err)
		}
	}

	changed := cmd.Flags().Changed
	if changed("name") {
		cfg.ProjectName = f.name
	}
	if changed("description") {
		cfg.Description = f.description
	}
	if changed("type") {
		cfg.ProjectType = f.projectType
	}
	if changed("stack") {
		cfg.TechStack = f.techStack
	}
	if changed("library") {
		cfg.Libraries = f.libraries
	}
	if changed("ai") {
		cfg.AIGenerate = f.ai
	}
	if changed("ai-hint") {
		cfg.AIHint = f.aiHint
	}
	if changed("template-dir") {
		cfg.TemplateDir = f.templateDir
	}
	if changed("update") {
		cfg.UpdateMode = f.update
	}
	if cfg.Libraries == nil {
		cfg.Libraries = []string{}
	}
	return cfg, nil
}
