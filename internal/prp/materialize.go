package prp

import (
	"maps"
	"regexp"
	"slices"
	"strings"
)

var placeholderRe = regexp.MustCompile(`\{\{([A-Za-z0-9_]+)\}\}`)

// Materialize replaces every {{NAME}} in content whose NAME is in vars.
// Matching is case-sensitive and values are inserted verbatim.
func Materialize(content string, vars map[string]string) string {
	if len(vars) == 0 {
		return content
	}

	pairs := make([]string, 0, len(vars)*2)
	for _, name := range slices.Sorted(maps.Keys(vars)) {
		pairs = append(pairs, "{{"+name+"}}", vars[name])
	}
	// A Replacer makes one pass, so {{X}} inside a value stays literal.
	return strings.NewReplacer(pairs...).Replace(content)
}

// Unconsumed returns the sorted, distinct placeholder names left in content.
func Unconsumed(content string) []string {
	var names []string
	for _, match := range placeholderRe.FindAllStringSubmatch(content, -1) {
		if !slices.Contains(names, match[1]) {
			names = append(names, match[1])
		}
	}
	slices.Sort(names)
	return names
}
