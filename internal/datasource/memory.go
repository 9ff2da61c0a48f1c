package datasource

import (
	"context"
	"slices"
	"strings"
	"time"

	"cdnctl/internal/query"
)

// InMemory answers queries against a fixed collection without network I/O.
// The collection is copied at construction and never modified.
type InMemory[T any] struct {
	items  []T
	schema Schema[T]
	loc    *time.Location
}

type InMemoryOption[T any] func(*InMemory[T])

// WithLocation sets the location date bounds and date-only timestamps are
// interpreted in. The default is time.Local.
func WithLocation[T any](loc *time.Location) InMemoryOption[T] {
	return func(m *InMemory[T]) {
		if loc != nil {
			m.loc = loc
		}
	}
}

// NewInMemory creates an in-memory data source. It fails if the schema does
// not cover every filterable field.
func NewInMemory[T any](items []T, schema Schema[T], opts ...InMemoryOption[T]) (*InMemory[T], error) {
	if err := schema.Validate(); err != nil {
		return nil, err
	}
	m := &InMemory[T]{
		items:  slices.Clone(items),
		schema: schema,
		loc:    time.Local,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Len returns the size of the backing collection.
func (m *InMemory[T]) Len() int {
	return len(m.items)
}

// FetchPage filters, sorts and paginates the collection, in that order. The
// only error is an UnknownFieldError for a sort field absent from the schema.
func (m *InMemory[T]) FetchPage(_ context.Context, q query.State) (*ResultPage[T], error) {
	q = q.Normalize()

	field, desc := q.SortField()
	if field == "" {
		field, desc = query.FieldCreatedAt, true
	}
	sortBy, ok := m.schema[field]
	if !ok {
		return nil, &UnknownFieldError{Field: field}
	}

	filtered := m.filter(query.Conditions(q))
	slices.SortStableFunc(filtered, func(a, b T) int {
		c := m.compare(sortBy(a), sortBy(b))
		if desc {
			return -c
		}
		return c
	})

	total := len(filtered)
	items := []T{}
	if start, end, ok := q.Window(total); ok {
		items = filtered[start:end]
	}

	return &ResultPage[T]{
		Items: items,
		Page:  q.Page,
		Limit: q.Limit,
		Total: total,
	}, nil
}

func (m *InMemory[T]) filter(conds []query.Condition) []T {
	out := make([]T, 0, len(m.items))
	for _, item := range m.items {
		if m.matchAll(item, conds) {
			out = append(out, item)
		}
	}
	return out
}

func (m *InMemory[T]) matchAll(item T, conds []query.Condition) bool {
	for _, c := range conds {
		if !m.match(m.schema[c.Field](item), c) {
			return false
		}
	}
	return true
}

func (m *InMemory[T]) match(v Value, c query.Condition) bool {
	switch c.Op {
	case query.OpLike:
		return strings.Contains(strings.ToLower(v.String()), strings.ToLower(c.Value))
	case query.OpIn:
		return slices.Contains(c.Tokens(), v.String())
	case query.OpEq:
		if v.Kind == KindBool {
			return v.Bool == (c.Value == "true")
		}
		return v.String() == c.Value
	case query.OpBetween:
		return m.between(v, c.From, c.To)
	}
	return true
}

// between treats an unparsable timestamp or bound like an invalid date: a
// comparison against it never excludes the item.
func (m *InMemory[T]) between(v Value, from, to string) bool {
	at, ok := parseInstant(v.Str, m.loc)
	if !ok {
		return true
	}
	if from != "" {
		if lower, ok := m.dayStart(from); ok && at.Before(lower) {
			return false
		}
	}
	if to != "" {
		if lower, ok := m.dayStart(to); ok {
			upper := lower.AddDate(0, 0, 1).Add(-time.Millisecond)
			if at.After(upper) {
				return false
			}
		}
	}
	return true
}

func (m *InMemory[T]) dayStart(raw string) (time.Time, bool) {
	t, err := time.ParseInLocation(query.DateLayout, raw, m.loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// compare orders two values of the same field. Time values compare as
// instants, with unparsable ones sorting as the Unix epoch; strings compare
// case-insensitively and booleans as false < true.
func (m *InMemory[T]) compare(a, b Value) int {
	switch a.Kind {
	case KindTime:
		return m.instant(a).Compare(m.instant(b))
	case KindBool:
		switch {
		case a.Bool == b.Bool:
			return 0
		case !a.Bool:
			return -1
		default:
			return 1
		}
	default:
		return strings.Compare(strings.ToLower(a.Str), strings.ToLower(b.Str))
	}
}

func (m *InMemory[T]) instant(v Value) time.Time {
	if t, ok := parseInstant(v.Str, m.loc); ok {
		return t
	}
	return time.Unix(0, 0)
}
