package query

import (
	"strings"
	"time"
)

// WithSearch sets the CNAME search term and returns to the first page.
func (s State) WithSearch(term string) State {
	s.CName = term
	s.Page = DefaultPage
	return s
}

// WithStatuses replaces the status set and returns to the first page. Empty
// and repeated tokens are dropped.
func (s State) WithStatuses(tokens ...string) State {
	seen := make(map[string]struct{}, len(tokens))
	set := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		set = append(set, t)
	}
	s.Status = strings.Join(set, ",")
	s.Page = DefaultPage
	return s
}

// WithFilter sets a string filter parameter and returns to the first page.
func (s State) WithFilter(param, value string) State {
	s = s.Set(param, value)
	s.Page = DefaultPage
	return s
}

// WithDateRange sets the created range from calendar dates. A zero time
// clears its bound.
func (s State) WithDateRange(from, to time.Time) State {
	s.CreatedFrom = formatDate(from)
	s.CreatedTo = formatDate(to)
	s.Page = DefaultPage
	return s
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// ToggleSort flips the direction of the current sort. An empty sort toggles
// from DefaultSort.
func (s State) ToggleSort() State {
	current := s.Sort
	if current == "" {
		current = DefaultSort
	}
	if strings.HasPrefix(current, "-") {
		s.Sort = current[1:]
	} else {
		s.Sort = "-" + current
	}
	return s
}

// WithSort sorts by field, descending when desc is set.
func (s State) WithSort(field string, desc bool) State {
	field = strings.TrimPrefix(field, "-")
	if desc && field != "" {
		field = "-" + field
	}
	s.Sort = field
	return s
}

// WithPage moves to page n.
func (s State) WithPage(n int) State {
	s.Page = n
	return s.Normalize()
}

// WithLimit changes the page size and returns to the first page.
func (s State) WithLimit(n int) State {
	s.Limit = n
	s.Page = DefaultPage
	return s.Normalize()
}

// Reset clears every filter and the sort, keeping the page size.
func (s State) Reset() State {
	return State{
		Page:  DefaultPage,
		Limit: s.Limit,
	}.Normalize()
}

// ActiveFilterCount counts the active filters the way the toolbar badge
// does: the created range counts once and a sort other than the default
// counts as a filter.
func (s State) ActiveFilterCount() int {
	count := 0
	for _, f := range Filters {
		if s.Get(f.Param) != "" {
			count++
		}
	}
	if s.CreatedFrom != "" || s.CreatedTo != "" {
		count++
	}
	if s.Sort != "" && s.Sort != DefaultSort {
		count++
	}
	return count
}

// HasActiveFilters reports whether any filter is active.
func (s State) HasActiveFilters() bool {
	return s.ActiveFilterCount() > 0
}
