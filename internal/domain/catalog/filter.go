package catalog

import (
	"fmt"
	"strings"
)

// NoResultsError indicates a non-empty query matched no products. The caller
// surfaces it to the user; all entries are hidden in that case since none
// matched.
type NoResultsError struct {
	Query string
}

func (e *NoResultsError) Error() string {
	return fmt.Sprintf("no products found for %q", e.Query)
}

// FilterResult partitions catalog entries into those matching the query and
// those hidden by it. It is a transient view-layer value, fully recomputed on
// each query.
type FilterResult struct {
	Visible []Product
	Hidden  []Product
}

// Filter partitions entries by case-insensitive substring match of the query
// against the product name. The query is trimmed first; an empty query makes
// every entry visible. A non-empty query matching nothing returns a
// NoResultsError alongside the all-hidden result.
func Filter(entries []Product, query string) (FilterResult, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return FilterResult{Visible: entries}, nil
	}

	var res FilterResult
	for _, p := range entries {
		if strings.Contains(strings.ToLower(p.Name), q) {
			res.Visible = append(res.Visible, p)
		} else {
			res.Hidden = append(res.Hidden, p)
		}
	}

	if len(res.Visible) == 0 {
		return res, &NoResultsError{Query: q}
	}
	return res, nil
}
