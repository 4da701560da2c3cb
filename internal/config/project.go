package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Project configuration paths relative to the repo root. The YAML file is
// read when both exist.
const (
	ProjectFile     = ".specify/specenv.yaml"
	ProjectTOMLFile = ".specify/specenv.toml"
)

// Project holds optional per-repository settings. Every field extends the
// built-in defaults; nothing here can remove a default.
//
//	tools:
//	  validate: [vale]
//	  cleanup: [deadcode]
//	languages:
//	  .kt: kotlin
//	reserved_features: [develop]
type Project struct {
	Tools            ToolLists         `yaml:"tools"             toml:"tools"`
	Languages        map[string]string `yaml:"languages"         toml:"languages"`
	ReservedFeatures []string          `yaml:"reserved_features" toml:"reserved_features"`

	// Source is the file the project was read from, empty when none exists.
	Source string `yaml:"-" toml:"-"`
}

// ToolLists holds extra PATH tools to probe per mode.
type ToolLists struct {
	Validate []string `yaml:"validate" toml:"validate"`
	Cleanup  []string `yaml:"cleanup"  toml:"cleanup"`
}

// LoadProject reads ProjectFile, or ProjectTOMLFile when no YAML file
// exists, under root. A missing file yields an empty Project and no error.
func LoadProject(root string) (*Project, error) {
	candidates := []struct {
		file      string
		unmarshal func([]byte, any) error
	}{
		{ProjectFile, yaml.Unmarshal},
		{ProjectTOMLFile, toml.Unmarshal},
	}

	for _, candidate := range candidates {
		path := filepath.Join(root, filepath.FromSlash(candidate.file))
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}

		var project Project
		if err := candidate.unmarshal(data, &project); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		project.Source = path
		project.normalize()
		return &project, nil
	}
	return &Project{}, nil
}

// normalize lower-cases extensions and adds a missing leading dot.
func (p *Project) normalize() {
	if len(p.Languages) == 0 {
		return
	}
	langs := make(map[string]string, len(p.Languages))
	for ext, name := range p.Languages {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" || name == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		langs[ext] = name
	}
	p.Languages = langs
}
