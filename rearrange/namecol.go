package rearrange

import "strings"

// findNameCol returns the first column whose lowercase name contains
// "name", used as the tiebreak field when resolving collisions. It
// returns "" if no such column exists, in which case rearrangement
// falls back to leaving collisions unresolved.
func findNameCol(columns []string) string {
	for _, c := range columns {
		if strings.Contains(strings.ToLower(c), "name") {
			return c
		}
	}

	return ""
}
