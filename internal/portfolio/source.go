package portfolio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Source supplies the set of projects to appraise.
type Source interface {
	Load() ([]Project, error)
	Name() string
}

// FileSource reads a YAML portfolio from disk on every Load, so edits take
// effect on the next evaluation run without a restart.
type FileSource struct {
	Path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

func (f *FileSource) Name() string { return "file:" + f.Path }

func (f *FileSource) Load() ([]Project, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("read portfolio: %w", err)
	}
	return Parse(data)
}

// StaticSource returns a fixed project list; used by the CLI and in tests.
type StaticSource struct {
	Projects []Project
}

func (s *StaticSource) Name() string { return "static" }

func (s *StaticSource) Load() ([]Project, error) {
	out := make([]Project, len(s.Projects))
	copy(out, s.Projects)
	return out, nil
}

// Parse decodes a YAML portfolio document and resolves every entry.
func Parse(data []byte) ([]Project, error) {
	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse portfolio: %w", err)
	}

	seen := make(map[string]bool, len(doc.Projects))
	projects := make([]Project, 0, len(doc.Projects))
	for i, e := range doc.Projects {
		if e.Name == "" {
			return nil, fmt.Errorf("project #%d: name is required", i+1)
		}
		if seen[e.Name] {
			return nil, fmt.Errorf("project %q: duplicate name", e.Name)
		}
		seen[e.Name] = true

		p, err := e.resolve()
		if err != nil {
			return nil, fmt.Errorf("project %q: %w", e.Name, err)
		}
		projects = append(projects, p)
	}
	return projects, nil
}
