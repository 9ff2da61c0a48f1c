package query

import (
	"net/url"
	"strconv"
	"strings"
)

// Param is a single query-string pair.
type Param struct {
	Key   string
	Value string
}

// Params is an ordered sequence of query-string pairs.
type Params []Param

// Add appends a pair.
func (p Params) Add(key, value string) Params {
	return append(p, Param{Key: key, Value: value})
}

// Get returns the value of the first pair with the given key.
func (p Params) Get(key string) (string, bool) {
	for _, kv := range p {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return "", false
}

// Values converts the pairs to url.Values.
func (p Params) Values() url.Values {
	v := make(url.Values, len(p))
	for _, kv := range p {
		v.Add(kv.Key, kv.Value)
	}
	return v
}

// Encode renders the pairs as a query string, keeping their order.
func (p Params) Encode() string {
	var b strings.Builder
	for i, kv := range p {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(kv.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(kv.Value))
	}
	return b.String()
}

// EncodeParams maps a state to the flat URL parameters of the dashboard.
// Page and limit are always present, string parameters only when set. The
// sort key is written whenever it differs from DefaultSort, so a cleared sort
// survives as "sort=".
func EncodeParams(s State) Params {
	p := Params{}.
		Add(ParamPage, strconv.Itoa(s.Page)).
		Add(ParamLimit, strconv.Itoa(s.Limit))

	for _, name := range stringParams {
		value := s.Get(name)
		if name == ParamSort {
			if value != DefaultSort {
				p = p.Add(name, value)
			}
			continue
		}
		if value != "" {
			p = p.Add(name, value)
		}
	}
	return p
}

// DecodeParams is the inverse of EncodeParams. Missing or malformed integers
// fall back to their defaults; a missing sort key yields DefaultSort.
func DecodeParams(v url.Values) State {
	s := Default()
	s.Page = intParam(v, ParamPage, DefaultPage)
	s.Limit = intParam(v, ParamLimit, DefaultLimit)
	s = s.Normalize()

	for _, name := range stringParams {
		if name == ParamSort {
			if _, ok := v[name]; ok {
				s.Sort = v.Get(name)
			}
			continue
		}
		s = s.Set(name, v.Get(name))
	}
	s.Status = strings.Join(s.Statuses(), ",")
	return s
}

// ParseParams decodes a raw dashboard query string.
func ParseParams(raw string) (State, error) {
	v, err := url.ParseQuery(strings.TrimPrefix(raw, "?"))
	if err != nil {
		return State{}, err
	}
	return DecodeParams(v), nil
}

func intParam(v url.Values, key string, fallback int) int {
	raw := v.Get(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
