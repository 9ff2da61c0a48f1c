package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cdnctl/internal/api"
	"cdnctl/internal/datasource"
	"cdnctl/internal/fixtures"
	"cdnctl/internal/metrics"
	"cdnctl/internal/query"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, items []api.Distribution) (*httptest.Server, *metrics.Metrics) {
	t.Helper()
	mem, err := datasource.NewInMemory(items, datasource.DistributionSchema, datasource.WithLocation[api.Distribution](time.UTC))
	require.NoError(t, err)
	m := metrics.New()
	srv := httptest.NewServer(New(mem, m).Handler())
	t.Cleanup(srv.Close)
	return srv, m
}

func Test_ListDistributions_EndToEnd(t *testing.T) {
	srv, _ := newTestServer(t, []api.Distribution{
		{Name: "a", Status: "active", CreatedAt: "2024-01-01"},
		{Name: "b", Status: "disabled", CreatedAt: "2024-02-01"},
		{Name: "c", Status: "active", CreatedAt: "2024-03-01"},
	})

	remote := datasource.NewRemote(api.NewClient(srv.URL, ""))
	page, err := remote.FetchPage(context.Background(), query.State{Status: "active", Sort: "-created_at", Page: 1, Limit: 10})
	require.NoError(t, err)

	require.Len(t, page.Items, 2)
	assert.Equal(t, "c", page.Items[0].Name)
	assert.Equal(t, "a", page.Items[1].Name)
	assert.Equal(t, 2, page.Total)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 10, page.Limit)
}

func Test_ListDistributions_MatchesInMemory(t *testing.T) {
	items := fixtures.Generate(60, 3)
	srv, _ := newTestServer(t, items)
	mem, err := datasource.NewInMemory(items, datasource.DistributionSchema, datasource.WithLocation[api.Distribution](time.UTC))
	require.NoError(t, err)
	remote := datasource.NewRemote(api.NewClient(srv.URL, ""))

	states := []query.State{
		query.Default(),
		query.Default().WithStatuses("active", "provisioning").WithLimit(7).WithPage(2),
		query.Default().WithFilter(query.ParamEnableSSL, "true").WithSort("name", false),
		query.Default().WithSearch("cdn-1").WithFilter(query.ParamDomainType, "apex"),
		query.State{Page: 1, Limit: 20, CreatedFrom: "2024-03-01", CreatedTo: "2024-06-30", Sort: "updated_at"},
		query.Default().Reset(),
	}
	for _, s := range states {
		want, err := mem.FetchPage(context.Background(), s)
		require.NoError(t, err)
		got, err := remote.FetchPage(context.Background(), s)
		require.NoError(t, err)
		assert.Equal(t, want, got, "%+v", s)
	}
}

func Test_ListDistributions_Envelope(t *testing.T) {
	srv, _ := newTestServer(t, fixtures.Generate(35, 1))

	resp, err := http.Get(srv.URL + "/distributions?page=2&limit=10&sort=name")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.NotEmpty(t, resp.Header.Get(RequestIDHeader))

	var body api.DistributionsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Success)
	assert.Equal(t, listMessage, body.Message)
	assert.Len(t, body.Data, 10)
	assert.Equal(t, "distribution-011", body.Data[0].Name)
	assert.Equal(t, api.Pagination{Page: 2, PageSize: 10, Total: 35, TotalPages: 4}, body.Meta.Pagination)
	assert.Equal(t, "/distributions?page=3&limit=10&sort=name", body.Meta.Links.Next)
	assert.Equal(t, "/distributions?page=4&limit=10&sort=name", body.Meta.Links.Last)
}

func Test_ListDistributions_BeyondLastPage(t *testing.T) {
	srv, _ := newTestServer(t, fixtures.Generate(5, 1))

	resp, err := http.Get(srv.URL + "/distributions?page=4&limit=10")
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"data":[]`)

	decoded, err := api.DecodeResponse(raw)
	require.NoError(t, err)
	assert.Equal(t, 5, decoded.Meta.Pagination.Total)
}

func Test_ListDistributions_PageTooFarOut(t *testing.T) {
	srv, _ := newTestServer(t, fixtures.Generate(4, 1))

	resp, err := http.Get(srv.URL + "/distributions?page=4611686018427387905&limit=2")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body api.DistributionsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Empty(t, body.Data)
	assert.Equal(t, api.Pagination{Page: 4611686018427387905, PageSize: 2, Total: 4, TotalPages: 2}, body.Meta.Pagination)
	assert.Equal(t, "/distributions?page=2&limit=2", body.Meta.Links.Next)
}

func Test_ListDistributions_UnknownSortField(t *testing.T) {
	srv, _ := newTestServer(t, fixtures.Generate(5, 1))

	remote := datasource.NewRemote(api.NewClient(srv.URL, ""))
	_, err := remote.FetchPage(context.Background(), query.Default().WithSort("origin", true))

	var reqErr *api.RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, http.StatusBadRequest, reqErr.StatusCode)
}

func Test_ErrorStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, errorStatus(&datasource.UnknownFieldError{Field: "x"}))
	assert.Equal(t, http.StatusBadGateway, errorStatus(&api.RequestError{StatusCode: 500}))
	assert.Equal(t, http.StatusBadGateway, errorStatus(&api.DecodeError{Reason: "missing data"}))
	assert.Equal(t, http.StatusInternalServerError, errorStatus(errors.New("boom")))
}

func Test_Health(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func Test_RequestID_Propagated(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/healthz", nil)
	require.NoError(t, err)
	req.Header.Set(RequestIDHeader, "req_fixed")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "req_fixed", resp.Header.Get(RequestIDHeader))
}

func Test_Metrics(t *testing.T) {
	srv, _ := newTestServer(t, fixtures.Generate(3, 1))

	for _, path := range []string{"/distributions", "/distributions?sort=nope"} {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
	}

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `served_requests_total{code="200"} 1`)
	assert.Contains(t, string(raw), `served_requests_total{code="400"} 1`)
}

func Test_ListenAndServe_Shutdown(t *testing.T) {
	mem, err := datasource.NewInMemory(nil, datasource.DistributionSchema)
	require.NoError(t, err)
	s := New(mem, metrics.New())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- s.ListenAndServe(ctx, "127.0.0.1:0")
	}()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
