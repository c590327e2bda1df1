package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"sourcelike.dev/typegen/schema"
)

func replHistoryPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "typegen/repl.history")
}

func newReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactively render a project's schemas",
		RunE: func(cmd *cobra.Command, args []string) error {
			pr, err := schema.LoadProject(projectDir())
			if err != nil {
				return err
			}
			return runRepl(pr)
		},
	}
}

func runRepl(pr *schema.Project) error {
	lin := liner.NewLiner()
	defer lin.Close()
	lin.SetMultiLineMode(false)

	hist := replHistoryPath()
	if hist != "" {
		if f, err := os.Open(hist); err == nil {
			lin.ReadHistory(f)
			f.Close()
		}
	}

	fmt.Println("typegen repl: enter a schema name to render it, 'list' to see schemas, or Ctrl-D to quit")
	for {
		line, err := lin.Prompt("> ")
		if err != nil {
			if err == io.EOF {
				fmt.Println()
				break
			}
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lin.AppendHistory(line)
		switch line {
		case "list":
			for _, s := range pr.Sources {
				fmt.Printf("  %s  %s\n", s.Name, pr.Path(s))
			}
		case "quit", "exit":
			goto done
		default:
			srcs, err := pr.FilterSources(line)
			if err != nil {
				fmt.Println(err)
				continue
			}
			out, err := renderSource(pr, srcs[0])
			if err != nil {
				fmt.Println(err)
				continue
			}
			data, err := os.ReadFile(out)
			if err != nil {
				fmt.Println(err)
				continue
			}
			fmt.Print(string(data))
		}
	}
done:
	if hist != "" {
		if err := os.MkdirAll(filepath.Dir(hist), 0755); err == nil {
			if f, err := os.Create(hist); err == nil {
				lin.WriteHistory(f)
				f.Close()
			}
		}
	}
	return nil
}
