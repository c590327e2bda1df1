package main

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"sourcelike.dev/typegen/schema"
)

func newRenderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "render [schema...]",
		Short: "Render one or all of the project's schemas",
		RunE: func(cmd *cobra.Command, args []string) error {
			pr, err := schema.LoadProject(projectDir())
			if err != nil {
				return err
			}
			srcs, err := pr.FilterSources(args...)
			if err != nil {
				return err
			}
			for _, src := range srcs {
				out, err := renderSource(pr, src)
				if err != nil {
					return err
				}
				pterm.Success.Printfln("%s -> %s", src.Name, out)
			}
			return nil
		},
	}
}
