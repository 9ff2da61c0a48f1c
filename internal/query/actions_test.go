package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func Test_WithSearch_ResetsPage(t *testing.T) {
	s := Default().WithPage(4).WithSearch("cdn-7")
	assert.Equal(t, "cdn-7", s.CName)
	assert.Equal(t, 1, s.Page)
}

func Test_WithStatuses(t *testing.T) {
	s := Default().WithPage(2).WithStatuses("active", "", "disabled", "active")
	assert.Equal(t, "active,disabled", s.Status)
	assert.Equal(t, 1, s.Page)

	s = s.WithStatuses()
	assert.Empty(t, s.Status)
}

func Test_WithDateRange(t *testing.T) {
	from := time.Date(2024, 1, 1, 15, 30, 0, 0, time.UTC)
	to := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	s := Default().WithPage(3).WithDateRange(from, to)
	assert.Equal(t, "2024-01-01", s.CreatedFrom)
	assert.Equal(t, "2024-01-31", s.CreatedTo)
	assert.Equal(t, 1, s.Page)

	s = s.WithDateRange(time.Time{}, time.Time{})
	assert.Empty(t, s.CreatedFrom)
	assert.Empty(t, s.CreatedTo)
}

func Test_ToggleSort(t *testing.T) {
	type testCase struct {
		name     string
		sort     string
		expected string
	}
	testCases := []testCase{
		{name: "descending to ascending", sort: "-created_at", expected: "created_at"},
		{name: "ascending to descending", sort: "name", expected: "-name"},
		{name: "empty toggles from default", sort: "", expected: "created_at"},
	}
	run := func(t *testing.T, tc testCase) {
		s := State{Sort: tc.sort}.ToggleSort()
		assert.Equal(t, tc.expected, s.Sort)
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			run(t, tc)
		})
	}
}

func Test_ToggleSort_Twice(t *testing.T) {
	s := State{Sort: "created_at"}
	assert.Equal(t, s, s.ToggleSort().ToggleSort())
}

func Test_WithLimit(t *testing.T) {
	s := Default().WithPage(5).WithLimit(50)
	assert.Equal(t, 50, s.Limit)
	assert.Equal(t, 1, s.Page)

	s = s.WithLimit(0)
	assert.Equal(t, DefaultLimit, s.Limit)
}

func Test_Reset(t *testing.T) {
	s := fullState().Reset()
	assert.Equal(t, State{Page: 1, Limit: 50}, s)
	assert.False(t, s.HasActiveFilters())
}

func Test_ActiveFilterCount(t *testing.T) {
	assert.Equal(t, 0, Default().ActiveFilterCount())
	assert.Equal(t, 11, fullState().ActiveFilterCount())

	s := Default().WithFilter(ParamDomainType, "apex")
	s.CreatedTo = "2024-01-01"
	assert.Equal(t, 2, s.ActiveFilterCount())
	assert.True(t, s.HasActiveFilters())
}
