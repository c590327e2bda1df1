// Command typegen renders JSON Schema documents into target-language
// source using the dry-struct renderer, driven over a project file.
package main

import (
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	dirFlag string
	v       = viper.New()
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "typegen",
		Short: "Render JSON Schema documents into target-language source",
	}
	root.PersistentFlags().StringVar(&dirFlag, "dir", ".", "project directory or a path below it")
	v.BindPFlag("dir", root.PersistentFlags().Lookup("dir"))
	v.SetEnvPrefix("TYPEGEN")
	v.AutomaticEnv()

	root.AddCommand(newRenderCmd(), newStatusCmd(), newWatchCmd(), newReplCmd(), newTailCmd())
	return root
}

func projectDir() string {
	if d := v.GetString("dir"); d != "" {
		return d
	}
	return dirFlag
}

