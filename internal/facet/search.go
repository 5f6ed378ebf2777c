package facet

import (
	"strconv"
	"strings"
)

// Search reports whether any string or number leaf anywhere in the witness's
// full nested structure contains the query, case-insensitively. No field
// weighting, no tokenization.
func Search(w interface{ Document() map[string]any }, query string) bool {
	if w == nil || query == "" {
		return false
	}
	return searchValue(w.Document(), strings.ToLower(query))
}

func searchValue(v any, query string) bool {
	switch val := v.(type) {
	case string:
		return strings.Contains(strings.ToLower(val), query)
	case float64:
		return strings.Contains(strconv.FormatFloat(val, 'f', -1, 64), query)
	case bool:
		return false
	case []any:
		for _, item := range val {
			if searchValue(item, query) {
				return true
			}
		}
	case map[string]any:
		for _, item := range val {
			if searchValue(item, query) {
				return true
			}
		}
	}
	return false
}
