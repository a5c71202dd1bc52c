// Package strings holds small string-slice helpers shared across packages.
package strings

import "strings"

// DedupeAndTrim trims whitespace from each element and drops empties and
// duplicates, keeping first-occurrence order. Used to normalise
// comma-separated lists taken from the environment, such as broker seeds.
func DedupeAndTrim(values []string) []string {
	out := values[:0:0]
	seen := make(map[string]struct{}, len(values))
	for _, raw := range values {
		v := strings.TrimSpace(raw)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
