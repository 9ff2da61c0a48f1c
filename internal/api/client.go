package api

import (
	"context"
	"encoding/json"

	"cdnctl/internal/query"

	"github.com/go-resty/resty/v2"
)

const (
	DefaultBaseURL    = "http://localhost:8080"
	DistributionsPath = "/distributions"
)

type Client struct {
	restyClient *resty.Client
	apiKey      string
}

// NewClient creates a client for the distributions API at baseURL. The API
// key is sent as X-API-KEY when it is not empty.
func NewClient(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	client := resty.New()
	client.SetBaseURL(baseURL)
	return &Client{restyClient: client, apiKey: apiKey}
}

func (c *Client) getAuthHeader() map[string]string {
	if c.apiKey == "" {
		return nil
	}
	return map[string]string{"X-API-KEY": c.apiKey}
}

// ListDistributions issues a single GET /distributions for the given state.
// It never retries and never caches.
func (c *Client) ListDistributions(ctx context.Context, s query.State) (*DistributionsResponse, error) {
	resp, err := c.restyClient.R().
		SetContext(ctx).
		SetHeaders(c.getAuthHeader()).
		SetQueryParamsFromValues(query.EncodeAPIQuery(s).Values()).
		Get(DistributionsPath)
	if err != nil {
		return nil, &RequestError{Err: err}
	}
	if !resp.IsSuccess() {
		return nil, &RequestError{StatusCode: resp.StatusCode(), Status: resp.Status()}
	}
	return DecodeResponse(resp.Body())
}

// wireResponse mirrors DistributionsResponse with pointers on the parts that
// must be present.
type wireResponse struct {
	Data *[]Distribution `json:"data"`
	Meta *struct {
		Pagination *struct {
			Page       *int `json:"page"`
			PageSize   *int `json:"page_size"`
			Total      *int `json:"total"`
			TotalPages int  `json:"total_pages"`
		} `json:"pagination"`
		Links Links `json:"links"`
	} `json:"meta"`
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// DecodeResponse parses a GET /distributions body. It fails with a
// DecodeError when data or meta.pagination is missing.
func DecodeResponse(body []byte) (*DistributionsResponse, error) {
	var wire wireResponse
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, &DecodeError{Reason: "invalid body", Err: err}
	}
	if wire.Data == nil {
		return nil, &DecodeError{Reason: "missing data"}
	}
	if wire.Meta == nil || wire.Meta.Pagination == nil {
		return nil, &DecodeError{Reason: "missing meta.pagination"}
	}
	pg := wire.Meta.Pagination
	if pg.Page == nil || pg.PageSize == nil || pg.Total == nil {
		return nil, &DecodeError{Reason: "incomplete meta.pagination"}
	}

	return &DistributionsResponse{
		Data: *wire.Data,
		Meta: Meta{
			Pagination: Pagination{
				Page:       *pg.Page,
				PageSize:   *pg.PageSize,
				Total:      *pg.Total,
				TotalPages: pg.TotalPages,
			},
			Links: wire.Meta.Links,
		},
		Success: wire.Success,
		Message: wire.Message,
	}, nil
}
