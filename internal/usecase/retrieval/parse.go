package retrieval

import (
	"strconv"
	"strings"
)

// parseIndices extracts document indices from a scoring response of the form
// "1,3,5". The parse is permissive: whitespace is trimmed, tokens that are not
// non-negative integers are skipped, and duplicates are dropped while keeping
// the backend's ordering. Malformed responses yield an empty slice, never an
// error.
func parseIndices(raw string) []int {
	var out []int
	seen := make(map[int]struct{})

	for _, token := range strings.Split(raw, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		n, err := strconv.Atoi(token)
		if err != nil || n < 0 {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}

	return out
}
