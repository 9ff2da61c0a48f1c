package query

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// Op is a filter operator of the distributions API.
type Op string

const (
	OpLike    Op = "like"
	OpIn      Op = "in"
	OpEq      Op = "eq"
	OpBetween Op = "between"
)

// FieldCreatedAt is the item field the created range applies to.
const FieldCreatedAt = "created_at"

// Filter binds a URL parameter to the item field and operator it filters on.
type Filter struct {
	Param string
	Field string
	Op    Op
}

// Filters lists the scalar filters in API order. The created range is
// handled separately because it spans two parameters.
var Filters = []Filter{
	{Param: ParamCName, Field: "cname", Op: OpLike},
	{Param: ParamName, Field: "name", Op: OpLike},
	{Param: ParamDomain, Field: "domain", Op: OpLike},
	{Param: ParamStatus, Field: "status", Op: OpIn},
	{Param: ParamDomainType, Field: "domain_type", Op: OpEq},
	{Param: ParamCacheStrategy, Field: "cache_strategy", Op: OpEq},
	{Param: ParamEnableSSL, Field: "enable_ssl", Op: OpEq},
	{Param: ParamIsHTTP2, Field: "is_http2", Op: OpEq},
	{Param: ParamIsHTTP3, Field: "is_http3", Op: OpEq},
}

// Fields returns every item field a filter or the created range refers to.
func Fields() []string {
	fields := make([]string, 0, len(Filters)+1)
	for _, f := range Filters {
		fields = append(fields, f.Field)
	}
	return append(fields, FieldCreatedAt)
}

// Condition is one active predicate derived from a state.
type Condition struct {
	Field string
	Op    Op
	Value string
	// From and To are only used by OpBetween; either may be empty.
	From string
	To   string
}

// Tokens returns the membership set of an OpIn condition.
func (c Condition) Tokens() []string {
	return SplitTokens(c.Value)
}

// APIKey returns the filter[<field>][<op>] query key.
func (c Condition) APIKey() string {
	return "filter[" + c.Field + "][" + string(c.Op) + "]"
}

// APIValue returns the query value of the condition.
func (c Condition) APIValue() string {
	if c.Op == OpBetween {
		return c.From + "," + c.To
	}
	return c.Value
}

// Conditions returns the active predicates of s. Filters with an empty value
// are skipped.
func Conditions(s State) []Condition {
	var conds []Condition
	for _, f := range Filters {
		value := s.Get(f.Param)
		if value == "" {
			continue
		}
		conds = append(conds, Condition{Field: f.Field, Op: f.Op, Value: value})
	}
	if s.CreatedFrom != "" || s.CreatedTo != "" {
		conds = append(conds, Condition{
			Field: FieldCreatedAt,
			Op:    OpBetween,
			From:  s.CreatedFrom,
			To:    s.CreatedTo,
		})
	}
	return conds
}

// EncodeAPIQuery maps a state to the query parameters of
// GET /distributions.
func EncodeAPIQuery(s State) Params {
	p := Params{}.
		Add(ParamPage, strconv.Itoa(s.Page)).
		Add(ParamLimit, strconv.Itoa(s.Limit))
	for _, c := range Conditions(s) {
		p = p.Add(c.APIKey(), c.APIValue())
	}
	if s.Sort != "" {
		p = p.Add(ParamSort, s.Sort)
	}
	return p
}

var filterKey = regexp.MustCompile(`^filter\[([a-z0-9_]+)\]\[([a-z]+)\]$`)

// DecodeAPIQuery is the inverse of EncodeAPIQuery. Unknown filter keys are
// ignored and a missing sort key leaves the sort empty.
func DecodeAPIQuery(v url.Values) State {
	s := Default()
	s.Sort = ""
	s.Page = intParam(v, ParamPage, DefaultPage)
	s.Limit = intParam(v, ParamLimit, DefaultLimit)
	s = s.Normalize()
	if _, ok := v[ParamSort]; ok {
		s.Sort = v.Get(ParamSort)
	}

	for key := range v {
		m := filterKey.FindStringSubmatch(key)
		if m == nil {
			continue
		}
		field, op := m[1], Op(m[2])
		value := v.Get(key)

		if field == FieldCreatedAt && op == OpBetween {
			from, to, _ := strings.Cut(value, ",")
			s.CreatedFrom, s.CreatedTo = from, to
			continue
		}
		for _, f := range Filters {
			if f.Field == field && f.Op == op {
				s = s.Set(f.Param, value)
				break
			}
		}
	}
	s.Status = strings.Join(s.Statuses(), ",")
	return s
}
