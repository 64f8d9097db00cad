package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/paper-code/go-papercode/internal/prompt"
)

func newInitCmd(a *app) *cobra.Command {
	var (
		output string
		save   string
	)
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Interactively describe a project and generate its documentation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := a.build()
			if err != nil {
				return err
			}
			driver := a.driver
			if driver == nil {
				driver = prompt.NewSurveyDriver(cmd.OutOrStdout())
			}

			cfg, err := prompt.NewWizard(driver, d.catalog, d.provider.Available()).Run(cmd.Context())
			if err != nil {
				return err
			}

			if save != "" {
				data, err := yaml.Marshal(cfg)
				if err != nil {
					return fmt.Errorf("encode project config: %w", err)
				}
				if err := os.WriteFile(save, data, 0o644); err != nil {
					return fmt.Errorf("write %s: %w", save, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved project configuration to %s\n", save)
			}

			result, err := d.orchestrator.Generate(cmd.Context(), cfg, output)
			if err != nil {
				return err
			}
			printFiles(cmd.OutOrStdout(), result.OutputRoot, result.Files)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "./docs-output", "output root")
	cmd.Flags().StringVar(&save, "save", "", "also write the answers to this YAML file for reuse with generate --from")
	return cmd
}
