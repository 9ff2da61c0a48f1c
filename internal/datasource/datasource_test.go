package datasource

import (
	"context"
	"errors"
	"testing"

	"cdnctl/internal/api"
	"cdnctl/internal/metrics"
	"cdnctl/internal/query"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_TotalPages(t *testing.T) {
	type testCase struct {
		name     string
		total    int
		limit    int
		expected int
	}
	testCases := []testCase{
		{name: "empty", total: 0, limit: 15, expected: 1},
		{name: "single partial page", total: 7, limit: 15, expected: 1},
		{name: "exact pages", total: 30, limit: 15, expected: 2},
		{name: "partial last page", total: 31, limit: 15, expected: 3},
		{name: "invalid limit", total: 31, limit: 0, expected: 1},
	}
	run := func(t *testing.T, tc testCase) {
		p := ResultPage[int]{Total: tc.total, Limit: tc.limit}
		assert.Equal(t, tc.expected, p.TotalPages())
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			run(t, tc)
		})
	}
}

func Test_ParseKind(t *testing.T) {
	k, err := ParseKind("memory")
	require.NoError(t, err)
	assert.Equal(t, KindMemory, k)

	k, err = ParseKind("remote")
	require.NoError(t, err)
	assert.Equal(t, KindRemote, k)

	_, err = ParseKind("sqlite")
	assert.Error(t, err)
}

func Test_NewDistributions(t *testing.T) {
	ds, err := NewDistributions(KindMemory, nil, testCollection(), nil)
	require.NoError(t, err)
	_, ok := ds.(*InMemory[api.Distribution])
	assert.True(t, ok)

	ds, err = NewDistributions(KindRemote, api.NewClient("http://example.invalid", ""), nil, nil)
	require.NoError(t, err)
	_, ok = ds.(*Remote)
	assert.True(t, ok)

	_, err = NewDistributions(KindRemote, nil, nil, nil)
	assert.Error(t, err)

	_, err = NewDistributions(Kind("other"), nil, nil, nil)
	assert.Error(t, err)
}

func Test_NewDistributions_Instrumented(t *testing.T) {
	m := metrics.New()
	ds, err := NewDistributions(KindMemory, nil, testCollection(), m)
	require.NoError(t, err)

	page, err := ds.FetchPage(context.Background(), query.Default())
	require.NoError(t, err)
	assert.Equal(t, 4, page.Total)

	_, err = ds.FetchPage(context.Background(), query.State{Sort: "nope"})
	assert.Error(t, err)

	count, err := testutil.GatherAndCount(m.Registry(), "datasource_fetches_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func Test_Instrument_PassesThrough(t *testing.T) {
	boom := errors.New("boom")
	inner := DataSourceFunc[int](func(_ context.Context, q query.State) (*ResultPage[int], error) {
		if q.CName == "fail" {
			return nil, boom
		}
		return &ResultPage[int]{Items: []int{1, 2}, Page: q.Page, Limit: q.Limit, Total: 2}, nil
	})
	ds := Instrument[int]("test", inner, metrics.New())

	page, err := ds.FetchPage(context.Background(), query.Default())
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, page.Items)

	_, err = ds.FetchPage(context.Background(), query.Default().WithSearch("fail"))
	assert.ErrorIs(t, err, boom)
}
