// Package search canonicalizes loosely-typed list queries so every search
// screen (agreements, customers, vehicles, reservations, users, locations)
// builds identical requests for identical intent.
package search

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// DefaultPageNumber is used whenever a query omits the page or asks for
// a page below the first.
const DefaultPageNumber = 1

// Query is the raw, possibly-partial search input. Zero values mean absent.
type Query struct {
	Page    int
	Size    int
	Filters map[string]interface{}
}

// Normalized is the canonical, fully-populated search request. Two
// semantically equal queries normalize to identical values, which keeps
// derived cache keys stable.
type Normalized struct {
	PageNumber    int
	Size          int
	SearchFilters map[string]string
}

// Normalize converts a raw query into its canonical form. Missing or
// sub-minimum paging values are clamped to defaults, filter values are
// coerced to canonical strings, and blank filters are dropped entirely.
// It is pure and never fails for well-typed input.
func Normalize(q Query, defaultSize int) Normalized {
	if defaultSize < 1 {
		defaultSize = 10
	}

	n := Normalized{
		PageNumber:    q.Page,
		Size:          q.Size,
		SearchFilters: make(map[string]string, len(q.Filters)),
	}
	if n.PageNumber < 1 {
		n.PageNumber = DefaultPageNumber
	}
	if n.Size < 1 {
		n.Size = defaultSize
	}

	for name, value := range q.Filters {
		canonical, ok := canonicalValue(value)
		if !ok {
			continue
		}
		n.SearchFilters[name] = canonical
	}

	return n
}

// AsQuery converts a normalized request back to query form. Normalizing the
// result is a fixed point: Normalize(n.AsQuery(), d) == n.
func (n Normalized) AsQuery() Query {
	filters := make(map[string]interface{}, len(n.SearchFilters))
	for name, value := range n.SearchFilters {
		filters[name] = value
	}
	return Query{Page: n.PageNumber, Size: n.Size, Filters: filters}
}

// CacheKey derives a deterministic cache key for the normalized request.
func (n Normalized) CacheKey(prefix string) string {
	names := make([]string, 0, len(n.SearchFilters))
	for name := range n.SearchFilters {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(prefix)
	b.WriteString(":p")
	b.WriteString(strconv.Itoa(n.PageNumber))
	b.WriteString(":s")
	b.WriteString(strconv.Itoa(n.Size))
	for _, name := range names {
		b.WriteByte(':')
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(n.SearchFilters[name])
	}
	return b.String()
}

// Offset returns the row offset for the normalized page.
func (n Normalized) Offset() int {
	return (n.PageNumber - 1) * n.Size
}

// canonicalValue coerces a filter value to its canonical string form.
// The second return is false when the entry should be omitted.
func canonicalValue(value interface{}) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", false
	case string:
		trimmed := strings.TrimSpace(v)
		return trimmed, trimmed != ""
	case bool:
		return strconv.FormatBool(v), true
	case int:
		return strconv.Itoa(v), true
	case int32:
		return strconv.FormatInt(int64(v), 10), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case float32:
		return canonicalFloat(float64(v)), true
	case float64:
		return canonicalFloat(v), true
	case fmt.Stringer:
		trimmed := strings.TrimSpace(v.String())
		return trimmed, trimmed != ""
	default:
		trimmed := strings.TrimSpace(fmt.Sprintf("%v", v))
		return trimmed, trimmed != ""
	}
}

// canonicalFloat renders whole floats without a trailing ".0" so numeric
// identifiers decoded from JSON coerce to plain digit strings.
func canonicalFloat(f float64) string {
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
