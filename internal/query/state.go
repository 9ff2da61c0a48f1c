// Package query holds the list request state shared by the dashboard URL, the
// distributions API and the in-memory data source, together with the codecs
// translating between them.
package query

import (
	"math"
	"strings"
)

// URL parameter names.
const (
	ParamPage          = "page"
	ParamLimit         = "limit"
	ParamCName         = "cname"
	ParamStatus        = "status"
	ParamCreatedFrom   = "created_from"
	ParamCreatedTo     = "created_to"
	ParamSort          = "sort"
	ParamName          = "name"
	ParamDomain        = "domain"
	ParamDomainType    = "domain_type"
	ParamCacheStrategy = "cache_strategy"
	ParamEnableSSL     = "enable_ssl"
	ParamIsHTTP2       = "is_http2"
	ParamIsHTTP3       = "is_http3"
)

// Defaults
const (
	DefaultPage  = 1
	DefaultLimit = 15
	DefaultSort  = "-created_at"
)

// DateLayout is the layout of created_from and created_to.
const DateLayout = "2006-01-02"

// stringParams lists the string-valued parameters in URL order.
var stringParams = []string{
	ParamCName,
	ParamStatus,
	ParamCreatedFrom,
	ParamCreatedTo,
	ParamSort,
	ParamName,
	ParamDomain,
	ParamDomainType,
	ParamCacheStrategy,
	ParamEnableSSL,
	ParamIsHTTP2,
	ParamIsHTTP3,
}

// State is the full set of filter, sort and page parameters describing one
// list request. It is a value type: every mutation returns a copy.
type State struct {
	Page          int
	Limit         int
	CName         string
	Status        string
	CreatedFrom   string
	CreatedTo     string
	Sort          string
	Name          string
	Domain        string
	DomainType    string
	CacheStrategy string
	EnableSSL     string
	IsHTTP2       string
	IsHTTP3       string
}

// Default returns the state used when no parameter is set.
func Default() State {
	return State{
		Page:  DefaultPage,
		Limit: DefaultLimit,
		Sort:  DefaultSort,
	}
}

// Normalize enforces page >= 1 and limit > 0.
func (s State) Normalize() State {
	if s.Page < 1 {
		s.Page = DefaultPage
	}
	if s.Limit < 1 {
		s.Limit = DefaultLimit
	}
	return s
}

// Offset returns the index of the first item of the page, saturating at
// math.MaxInt for pages too far out to address.
func (s State) Offset() int {
	s = s.Normalize()
	if s.Page-1 > math.MaxInt/s.Limit {
		return math.MaxInt
	}
	return (s.Page - 1) * s.Limit
}

// Window returns the half-open index range [start, end) the page covers in
// a list of total items. ok is false when the page lies past the last item.
func (s State) Window(total int) (start, end int, ok bool) {
	s = s.Normalize()
	if total <= 0 || s.Page-1 > (total-1)/s.Limit {
		return 0, 0, false
	}
	start = (s.Page - 1) * s.Limit
	return start, start + min(s.Limit, total-start), true
}

// Get returns the string parameter named param. Page and limit are not
// string parameters and yield "".
func (s State) Get(param string) string {
	if p := s.ref(param); p != nil {
		return *p
	}
	return ""
}

// Set returns a copy of the state with the string parameter param set to
// value. Unknown parameters leave the state unchanged.
func (s State) Set(param, value string) State {
	if p := s.ref(param); p != nil {
		*p = value
	}
	return s
}

func (s *State) ref(param string) *string {
	switch param {
	case ParamCName:
		return &s.CName
	case ParamStatus:
		return &s.Status
	case ParamCreatedFrom:
		return &s.CreatedFrom
	case ParamCreatedTo:
		return &s.CreatedTo
	case ParamSort:
		return &s.Sort
	case ParamName:
		return &s.Name
	case ParamDomain:
		return &s.Domain
	case ParamDomainType:
		return &s.DomainType
	case ParamCacheStrategy:
		return &s.CacheStrategy
	case ParamEnableSSL:
		return &s.EnableSSL
	case ParamIsHTTP2:
		return &s.IsHTTP2
	case ParamIsHTTP3:
		return &s.IsHTTP3
	}
	return nil
}

// Statuses splits the status set on "," and drops empty tokens.
func (s State) Statuses() []string {
	return SplitTokens(s.Status)
}

// SortField returns the sort field without its "-" prefix and whether the
// order is descending. An empty sort yields an empty field.
func (s State) SortField() (field string, desc bool) {
	if strings.HasPrefix(s.Sort, "-") {
		return s.Sort[1:], true
	}
	return s.Sort, false
}

// SplitTokens splits a comma-joined set and drops empty tokens.
func SplitTokens(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			tokens = append(tokens, p)
		}
	}
	return tokens
}
