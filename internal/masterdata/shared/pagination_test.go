package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListFiltersOffset(t *testing.T) {
	cases := []struct {
		filters ListFilters
		want    int
	}{
		{ListFilters{Page: 1, Limit: 20}, 0},
		{ListFilters{Page: 3, Limit: 20}, 40},
		{ListFilters{Page: 3, Limit: 0}, 0},
		{ListFilters{Page: 0, Limit: 10}, 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.filters.Offset())
	}
}

func TestSortDirection(t *testing.T) {
	assert.Equal(t, "DESC", SortDirection("desc"))
	assert.Equal(t, "ASC", SortDirection("asc"))
	assert.Equal(t, "ASC", SortDirection("; DROP TABLE"))
}
