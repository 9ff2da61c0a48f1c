package api

// Distribution is a CDN delivery configuration as listed by the API.
type Distribution struct {
	ID                    string `json:"id" yaml:"id"`
	Name                  string `json:"name" yaml:"name"`
	CName                 string `json:"cname" yaml:"cname"`
	Domain                string `json:"domain" yaml:"domain"`
	Description           string `json:"description" yaml:"description"`
	Status                string `json:"status" yaml:"status"`
	DomainType            string `json:"domain_type" yaml:"domain_type"`
	CacheStrategy         string `json:"cache_strategy" yaml:"cache_strategy"`
	OrganizationID        string `json:"organization_id" yaml:"organization_id"`
	ACMEChallengeCName    string `json:"acme_challenge_cname" yaml:"acme_challenge_cname"`
	ACMEChallengeDomain   string `json:"acme_challenge_domain" yaml:"acme_challenge_domain"`
	CreatedAt             string `json:"created_at" yaml:"created_at"`
	UpdatedAt             string `json:"updated_at" yaml:"updated_at"`
	IsACMEChallengeValid  bool   `json:"is_acme_challenge_valid" yaml:"is_acme_challenge_valid"`
	EnableSSL             bool   `json:"enable_ssl" yaml:"enable_ssl"`
	LEIssue               bool   `json:"le_issue" yaml:"le_issue"`
	IsRedirectHTTPToHTTPS bool   `json:"is_redirect_http_to_https" yaml:"is_redirect_http_to_https"`
	IsHTTP2               bool   `json:"is_http2" yaml:"is_http2"`
	IsCNAMEValid          bool   `json:"is_cname_valid" yaml:"is_cname_valid"`
	IsHTTP3               bool   `json:"is_http3" yaml:"is_http3"`
}

type Pagination struct {
	Page       int `json:"page" yaml:"page"`
	PageSize   int `json:"page_size" yaml:"page_size"`
	Total      int `json:"total" yaml:"total"`
	TotalPages int `json:"total_pages" yaml:"total_pages"`
}

type Links struct {
	Self  string `json:"self" yaml:"self"`
	First string `json:"first" yaml:"first"`
	Next  string `json:"next" yaml:"next"`
	Last  string `json:"last" yaml:"last"`
}

type Meta struct {
	Pagination Pagination `json:"pagination" yaml:"pagination"`
	Links      Links      `json:"links" yaml:"links"`
}

// DistributionsResponse is the body of GET /distributions.
type DistributionsResponse struct {
	Data    []Distribution `json:"data" yaml:"data"`
	Meta    Meta           `json:"meta" yaml:"meta"`
	Success bool           `json:"success" yaml:"success"`
	Message string         `json:"message" yaml:"message"`
}
