package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeInjectsDefaults(t *testing.T) {
	n := Normalize(Query{}, 10)

	assert.Equal(t, 1, n.PageNumber)
	assert.Equal(t, 10, n.Size)
	assert.Empty(t, n.SearchFilters)
}

func TestNormalizeClampsNegativeValues(t *testing.T) {
	n := Normalize(Query{Page: -3, Size: -50}, 25)

	assert.Equal(t, 1, n.PageNumber)
	assert.Equal(t, 25, n.Size)
}

func TestNormalizeCoercesFilterValues(t *testing.T) {
	n := Normalize(Query{
		Page: 2,
		Size: 10,
		Filters: map[string]interface{}{
			"Statuses":   "2",
			"IsOpen":     true,
			"IsClosed":   false,
			"CustomerId": 1042,
			"VehicleId":  float64(77), // JSON numbers decode as float64
			"Rate":       19.5,
			"Keyword":    "  smith  ",
			"Blank":      "",
			"Spaces":     "   ",
			"Missing":    nil,
		},
	}, 10)

	assert.Equal(t, map[string]string{
		"Statuses":   "2",
		"IsOpen":     "true",
		"IsClosed":   "false",
		"CustomerId": "1042",
		"VehicleId":  "77",
		"Rate":       "19.5",
		"Keyword":    "smith",
	}, n.SearchFilters)
}

func TestNormalizeIsIdempotent(t *testing.T) {
	inputs := []Query{
		{},
		{Page: 3, Size: 7},
		{Filters: map[string]interface{}{"Active": true, "Keyword": "van", "Empty": ""}},
		{Page: -1, Size: 0, Filters: map[string]interface{}{"CustomerId": 9}},
	}

	for _, q := range inputs {
		once := Normalize(q, 10)
		twice := Normalize(once.AsQuery(), 10)
		assert.Equal(t, once, twice)
	}
}

func TestNormalizedCacheKeyIsOrderIndependent(t *testing.T) {
	a := Normalize(Query{Filters: map[string]interface{}{"b": "2", "a": "1"}}, 10)
	b := Normalize(Query{Filters: map[string]interface{}{"a": "1", "b": "2"}}, 10)

	assert.Equal(t, a.CacheKey("agreements"), b.CacheKey("agreements"))
	assert.Equal(t, "agreements:p1:s10:a=1:b=2", a.CacheKey("agreements"))
}

func TestNormalizedOffset(t *testing.T) {
	n := Normalize(Query{Page: 3, Size: 20}, 10)
	assert.Equal(t, 40, n.Offset())
}
