package datasource

import (
	"context"

	"cdnctl/internal/api"
	"cdnctl/internal/query"
)

// Remote fetches distribution pages from the distributions API. Errors from
// the client (api.RequestError, api.DecodeError) are returned unchanged.
type Remote struct {
	client *api.Client
}

func NewRemote(client *api.Client) *Remote {
	return &Remote{client: client}
}

// FetchPage performs exactly one request per call.
func (r *Remote) FetchPage(ctx context.Context, q query.State) (*ResultPage[api.Distribution], error) {
	resp, err := r.client.ListDistributions(ctx, q)
	if err != nil {
		return nil, err
	}
	pg := resp.Meta.Pagination
	return &ResultPage[api.Distribution]{
		Items: resp.Data,
		Page:  pg.Page,
		Limit: pg.PageSize,
		Total: pg.Total,
	}, nil
}
