package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"sourcelike.dev/typegen/schema"
)

func newStatusCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Print the project's target and schema manifest",
		RunE: func(cmd *cobra.Command, args []string) error {
			pr, err := schema.LoadProject(projectDir())
			if err != nil {
				return err
			}
			w := bufio.NewWriter(os.Stdout)
			defer w.Flush()
			switch format {
			case "", "text":
				return pr.Status(w)
			case "toml":
				return toml.NewEncoder(w).Encode(pr)
			default:
				return fmt.Errorf("unknown status format %q", format)
			}
		},
	}
	cmd.Flags().StringVar(&format, "format", "text", "output format: text or toml")
	return cmd
}
