// Package datasource produces pages of list results from a query state,
// either through the distributions API or from a collection held in memory.
package datasource

import (
	"context"
	"fmt"
	"time"

	"cdnctl/internal/api"
	"cdnctl/internal/metrics"
	"cdnctl/internal/query"
)

// ResultPage is one page of items plus the total number of matching items.
type ResultPage[T any] struct {
	Items []T `json:"items" yaml:"items"`
	Page  int `json:"page" yaml:"page"`
	Limit int `json:"limit" yaml:"limit"`
	Total int `json:"total" yaml:"total"`
}

// TotalPages returns ceil(Total/Limit), at least 1.
func (p ResultPage[T]) TotalPages() int {
	if p.Limit < 1 || p.Total <= p.Limit {
		return 1
	}
	return (p.Total + p.Limit - 1) / p.Limit
}

// DataSource produces a ResultPage from a query state.
type DataSource[T any] interface {
	FetchPage(ctx context.Context, q query.State) (*ResultPage[T], error)
}

// DataSourceFunc adapts a function to the DataSource interface.
type DataSourceFunc[T any] func(ctx context.Context, q query.State) (*ResultPage[T], error)

// FetchPage implements DataSource.
func (f DataSourceFunc[T]) FetchPage(ctx context.Context, q query.State) (*ResultPage[T], error) {
	return f(ctx, q)
}

// Instrument records every fetch of ds in m under the given source label.
func Instrument[T any](source string, ds DataSource[T], m *metrics.Metrics) DataSource[T] {
	return DataSourceFunc[T](func(ctx context.Context, q query.State) (*ResultPage[T], error) {
		start := time.Now()
		page, err := ds.FetchPage(ctx, q)
		total := 0
		if page != nil {
			total = page.Total
		}
		m.ObserveFetch(source, time.Since(start), total, err)
		return page, err
	})
}

// Kind selects a DataSource variant.
type Kind string

const (
	KindRemote Kind = "remote"
	KindMemory Kind = "memory"
)

// ParseKind parses a backend name from the configuration.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindRemote, KindMemory:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("unknown backend %q, expected %q or %q", s, KindRemote, KindMemory)
	}
}

// NewDistributions builds the distributions data source of the given kind.
// client is only used by KindRemote and items only by KindMemory.
func NewDistributions(kind Kind, client *api.Client, items []api.Distribution, m *metrics.Metrics) (DataSource[api.Distribution], error) {
	var ds DataSource[api.Distribution]
	switch kind {
	case KindRemote:
		if client == nil {
			return nil, fmt.Errorf("remote backend requires an API client")
		}
		ds = NewRemote(client)
	case KindMemory:
		mem, err := NewInMemory(items, DistributionSchema)
		if err != nil {
			return nil, err
		}
		ds = mem
	default:
		return nil, fmt.Errorf("unknown backend %q", kind)
	}
	if m != nil {
		ds = Instrument(string(kind), ds, m)
	}
	return ds, nil
}
