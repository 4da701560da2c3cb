package workspace

import (
	"io/fs"
	"path/filepath"
	"slices"
	"strings"
)

// DefaultLanguages maps source extensions to language names.
var DefaultLanguages = map[string]string{
	".py":   "python",
	".js":   "javascript",
	".ts":   "typescript",
	".go":   "go",
	".rs":   "rust",
	".java": "java",
}

// DetectLanguages walks root, skipping .git, and returns the sorted set of
// languages with at least one matching file. Each extension stops being
// searched at its first match and the walk ends once all are found.
// Unreadable directories are skipped.
func DetectLanguages(root string, extensions map[string]string) []string {
	pending := make(map[string]string, len(extensions))
	for ext, lang := range extensions {
		pending[ext] = lang
	}
	found := make(map[string]bool)

	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() && path != root {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return fs.SkipDir
			}
			return nil
		}

		ext := strings.ToLower(filepath.Ext(d.Name()))
		if lang, ok := pending[ext]; ok {
			found[lang] = true
			delete(pending, ext)
			if len(pending) == 0 {
				return fs.SkipAll
			}
		}
		return nil
	})

	langs := make([]string, 0, len(found))
	for lang := range found {
		langs = append(langs, lang)
	}
	slices.Sort(langs)
	return langs
}
