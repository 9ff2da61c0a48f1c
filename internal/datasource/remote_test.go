package datasource

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"cdnctl/internal/api"
	"cdnctl/internal/query"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Remote_FetchPage(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "like-me", r.URL.Query().Get("filter[cname][like]"))
		w.Write([]byte(`{
			"data": [{"name": "a"}, {"name": "b"}],
			"meta": {"pagination": {"page": 3, "page_size": 2, "total": 9, "total_pages": 5}}
		}`))
	}))
	defer srv.Close()

	r := NewRemote(api.NewClient(srv.URL, ""))
	page, err := r.FetchPage(context.Background(), query.Default().WithSearch("like-me"))
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, names(page.Items))
	assert.Equal(t, 3, page.Page)
	assert.Equal(t, 2, page.Limit)
	assert.Equal(t, 9, page.Total)
	assert.Equal(t, 5, page.TotalPages())

	_, err = r.FetchPage(context.Background(), query.Default().WithSearch("like-me"))
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func Test_Remote_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("filter[name][like]") == "broken" {
			w.Write([]byte(`{"data": []}`))
			return
		}
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()
	r := NewRemote(api.NewClient(srv.URL, ""))

	_, err := r.FetchPage(context.Background(), query.Default())
	var reqErr *api.RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, http.StatusBadGateway, reqErr.StatusCode)

	_, err = r.FetchPage(context.Background(), query.Default().WithFilter(query.ParamName, "broken"))
	var decErr *api.DecodeError
	require.True(t, errors.As(err, &decErr))
}
