package prp

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gorewood/specenv/internal/output"
)

// ErrTemplateNotFound is returned when the template file does not exist.
var ErrTemplateNotFound = errors.New("template not found")

// DefaultTemplate is the template location relative to the repo root.
const DefaultTemplate = ".specify/templates/prp-template.md"

// Template is a loaded PRP template.
type Template struct {
	Content string
	// Source is the path the template was read from.
	Source string
}

// DefaultTemplatePath returns the conventional template path under root.
func DefaultTemplatePath(root string) string {
	return filepath.Join(root, filepath.FromSlash(DefaultTemplate))
}

// LoadTemplate reads the template at path.
func LoadTemplate(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, output.NewUserErrorWithCause(
				"template not found: "+path,
				fmt.Errorf("%s: %w", path, ErrTemplateNotFound))
		}
		return nil, output.NewSystemErrorWithCause("reading template "+path, err)
	}
	return &Template{Content: string(data), Source: path}, nil
}
