package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newCatalogCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "catalog [project-type [tech-stack]]",
		Short: "List project types, the stacks of a type, or the libraries of a stack",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.build()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(d.catalog.Snapshot())
			}

			var items []string
			switch len(args) {
			case 0:
				items = d.catalog.ProjectTypes()
			case 1:
				items = d.catalog.TechStacks(args[0])
			default:
				items = d.catalog.Libraries(args[1])
			}
			for _, item := range items {
				fmt.Fprintln(out, item)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the whole catalog as JSON")
	return cmd
}
