package cmd

import (
	"context"
	"errors"

	"cdnctl/internal/api"
	"cdnctl/internal/config"
	"cdnctl/internal/datasource"
	"cdnctl/internal/fixtures"
	"cdnctl/internal/metrics"
	"cdnctl/internal/query"

	log "github.com/sirupsen/logrus"
)

// loadItems returns the demo collection: the fixture file when configured,
// generated dummy data otherwise.
func loadItems(s config.Settings) ([]api.Distribution, error) {
	if s.Fixtures != "" {
		items, err := fixtures.Load(s.Fixtures)
		if err != nil {
			return nil, err
		}
		log.WithField("path", s.Fixtures).Debugf("Loaded %d distributions", len(items))
		return items, nil
	}
	count := s.Count
	if count <= 0 {
		count = fixtures.DefaultCount
	}
	return fixtures.Generate(count, s.Seed), nil
}

// newSource builds the data source for kind. With fallback set, a remote
// source falls back to the in-memory collection when the API fails.
func newSource(kind datasource.Kind, s config.Settings, fallback bool, m *metrics.Metrics) (datasource.DataSource[api.Distribution], error) {
	if kind == datasource.KindMemory {
		items, err := loadItems(s)
		if err != nil {
			return nil, err
		}
		return datasource.NewDistributions(kind, nil, items, m)
	}

	client := api.NewClient(s.APIURL, s.APIKey)
	remote, err := datasource.NewDistributions(kind, client, nil, m)
	if err != nil || !fallback {
		return remote, err
	}

	items, err := loadItems(s)
	if err != nil {
		return nil, err
	}
	memory, err := datasource.NewDistributions(datasource.KindMemory, nil, items, m)
	if err != nil {
		return nil, err
	}
	return withFallback(remote, memory), nil
}

// withFallback answers from secondary when primary fails with an API error.
// Other errors, such as a canceled context, are returned as is.
func withFallback[T any](primary, secondary datasource.DataSource[T]) datasource.DataSource[T] {
	return datasource.DataSourceFunc[T](func(ctx context.Context, q query.State) (*datasource.ResultPage[T], error) {
		page, err := primary.FetchPage(ctx, q)
		if err == nil {
			return page, nil
		}
		var reqErr *api.RequestError
		var decErr *api.DecodeError
		if !errors.As(err, &reqErr) && !errors.As(err, &decErr) {
			return nil, err
		}
		if ctx.Err() != nil {
			return nil, err
		}
		log.WithError(err).Warn("API unavailable, using the in-memory collection")
		return secondary.FetchPage(ctx, q)
	})
}
