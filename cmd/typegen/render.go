package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"

	"sourcelike.dev/typegen/render"
	"sourcelike.dev/typegen/render/ruby"
	"sourcelike.dev/typegen/schema"
)

// strategyFor resolves a project's configured target to a render.Strategy.
// dry-struct is the only worked-out target; anything else is a future
// Open Question, not a silently accepted no-op.
func strategyFor(target string) (render.Strategy, error) {
	switch target {
	case "", "ruby", "dry-struct":
		return ruby.New(), nil
	default:
		return nil, fmt.Errorf("unknown render target %q", target)
	}
}

// renderSource loads one schema.Source, renders it against strategy, and
// writes the result under the project's configured out directory.
// It returns the absolute path written.
func renderSource(pr *schema.Project, src schema.Source) (string, error) {
	path := pr.Path(src)
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	g, err := schema.LoadJSONSchema(src.Name, f)
	if err != nil {
		return "", errors.Wrapf(err, "load schema %s", src.Name)
	}
	strat, err := strategyFor(pr.Target)
	if err != nil {
		return "", err
	}
	res, err := render.Render(g, strat)
	if err != nil {
		// Wrapped with a stack trace here, at the CLI boundary: a fatal
		// core error alone does not say which schema or call path hit it.
		return "", errors.Wrapf(err, "render %s", src.Name)
	}

	outDir := pr.Out
	if outDir == "" {
		outDir = pr.Dir
	} else if !filepath.IsAbs(outDir) {
		outDir = filepath.Join(pr.Dir, outDir)
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return "", err
	}
	outPath := filepath.Join(outDir, res.Stem+res.Extension)
	out, err := os.Create(outPath)
	if err != nil {
		return "", err
	}
	defer out.Close()
	for _, line := range res.Lines {
		if _, err := fmt.Fprintln(out, line); err != nil {
			return "", err
		}
	}
	return outPath, nil
}
