package schema

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ProjectFileName is the sentinel DiscoverProject walks parent directories
// looking for.
const ProjectFileName = "typegen.yaml"

// Source names one JSON Schema document that feeds the project, relative
// to the project file's directory unless File is absolute.
type Source struct {
	Name string `yaml:"name" toml:"name"`
	File string `yaml:"file" toml:"file"`
}

// Project is the parsed project file: a target render language and the
// schema documents that make up the render job.
type Project struct {
	Dir     string            `yaml:"-" toml:"-"`
	Name    string            `yaml:"name" toml:"name"`
	Target  string            `yaml:"target" toml:"target"`
	Out     string            `yaml:"out" toml:"out"`
	Sources []Source          `yaml:"schemas" toml:"schemas"`
	Options map[string]string `yaml:"options" toml:"options"`
}

// DiscoverProject looks for a project file based on path and returns a
// cleaned path to it.
//
// If path points to a file it checks whether the file has a project file
// name. If path points to a directory, it looks for a project file in the
// current and then in all its parent directories.
func DiscoverProject(path string) (string, error) {
	path, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	fi, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if !fi.IsDir() {
		if fi.Name() == ProjectFileName {
			return path, nil
		}
		path = filepath.Dir(path)
	}
	res, err := DiscoverProject(filepath.Join(path, ProjectFileName))
	if err == nil {
		return res, nil
	}
	dir := filepath.Dir(path)
	if dir == path {
		return "", fmt.Errorf("no %s found above %s", ProjectFileName, path)
	}
	return DiscoverProject(dir)
}

// LoadProject discovers and reads the project file governing dir.
func LoadProject(dir string) (*Project, error) {
	path, err := DiscoverProject(dir)
	if err != nil {
		return nil, fmt.Errorf("discover project: %w", err)
	}
	return OpenProject(path)
}

func OpenProject(path string) (*Project, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadProject(f, path)
}

func ReadProject(r io.Reader, path string) (*Project, error) {
	var p Project
	if err := yaml.NewDecoder(r).Decode(&p); err != nil {
		return nil, fmt.Errorf("read project %s: %w", path, err)
	}
	p.Dir = filepath.Dir(path)
	return &p, nil
}

// FilterSources narrows the project's schema list down to the named
// sources, in the order requested, erroring on any name not present.
func (p *Project) FilterSources(names ...string) ([]Source, error) {
	if len(names) == 0 {
		return p.Sources, nil
	}
	byName := make(map[string]Source, len(p.Sources))
	for _, s := range p.Sources {
		byName[s.Name] = s
	}
	res := make([]Source, 0, len(names))
	for _, name := range names {
		s, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("schema %q not found in project", name)
		}
		res = append(res, s)
	}
	return res, nil
}

// Path resolves a Source's file against the project directory.
func (p *Project) Path(s Source) string {
	if filepath.IsAbs(s.File) {
		return s.File
	}
	return filepath.Join(p.Dir, s.File)
}

// Status writes a short human summary of the project's configuration.
func (p *Project) Status(w io.Writer) error {
	_, err := fmt.Fprintf(w, "Project: %s\ntarget: %s\nout: %s\n", p.Name, p.Target, p.Out)
	if err != nil {
		return err
	}
	for _, s := range p.Sources {
		if _, err := fmt.Fprintf(w, "  %s  %s\n", s.Name, p.Path(s)); err != nil {
			return err
		}
	}
	return nil
}
