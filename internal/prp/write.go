package prp

import (
	"os"
	"path/filepath"

	"github.com/gorewood/specenv/internal/output"
)

// Dir holds materialized PRP documents under the repo root.
const Dir = "prps"

// Path returns prps/<feature>.md under root.
func Path(root, feature string) string {
	return filepath.Join(root, Dir, feature+".md")
}

// Write stores content at Path(root, feature), replacing any existing file.
func Write(root, feature, content string) (string, error) {
	path := Path(root, feature)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", output.NewSystemErrorWithCause("creating "+filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", output.NewSystemErrorWithCause("writing "+path, err)
	}
	return path, nil
}
