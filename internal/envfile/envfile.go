// Package envfile loads environment variables from .env files so overrides
// such as SPECIFY_FEATURE can live alongside a repository.
// Variables already set in the environment take precedence.
package envfile

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/joho/godotenv"
)

// Load reads a .env file and sets any variables not already in the
// environment. It returns the sorted names it applied.
// A missing file is not an error.
func Load(path string) ([]string, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading env file %s: %w", path, err)
	}

	var applied []string
	for _, key := range slices.Sorted(maps.Keys(values)) {
		if _, set := os.LookupEnv(key); set {
			continue
		}
		if err := os.Setenv(key, values[key]); err != nil {
			return applied, fmt.Errorf("setting %s from %s: %w", key, path, err)
		}
		applied = append(applied, key)
	}
	return applied, nil
}

// LoadAll loads each path in order. Earlier files win because later files
// never overwrite a variable that is already set.
// A file that fails to parse does not stop the remaining files from loading;
// every failure is returned joined.
func LoadAll(paths ...string) (map[string]string, error) {
	sources := make(map[string]string)
	var errs []error
	for _, path := range paths {
		if path == "" {
			continue
		}
		applied, err := Load(path)
		for _, key := range applied {
			sources[key] = path
		}
		if err != nil {
			errs = append(errs, err)
		}
	}
	return sources, errors.Join(errs...)
}
