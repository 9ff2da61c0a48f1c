package datasource

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"cdnctl/internal/api"
	"cdnctl/internal/query"
)

// ValueKind is the type of a field value.
type ValueKind int

const (
	KindString ValueKind = iota
	KindBool
	KindTime
)

// Value is a field value looked up by name. Time values keep their raw
// text and are parsed when compared.
type Value struct {
	Kind ValueKind
	Str  string
	Bool bool
}

func StringValue(s string) Value { return Value{Kind: KindString, Str: s} }
func BoolValue(b bool) Value     { return Value{Kind: KindBool, Bool: b} }
func TimeValue(raw string) Value { return Value{Kind: KindTime, Str: raw} }

// String returns the textual form used by substring and membership filters.
func (v Value) String() string {
	if v.Kind == KindBool {
		return strconv.FormatBool(v.Bool)
	}
	return v.Str
}

// Accessor returns the value of one field of an item.
type Accessor[T any] func(T) Value

// Schema maps field names to accessors. It must be enumerated statically for
// every item type so that unknown field names are rejected.
type Schema[T any] map[string]Accessor[T]

// Validate checks that the schema covers every field the query filters use.
func (s Schema[T]) Validate() error {
	var missing []string
	for _, f := range query.Fields() {
		if _, ok := s[f]; !ok {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("schema is missing fields: %s", strings.Join(missing, ", "))
	}
	return nil
}

// UnknownFieldError reports a field name absent from the schema.
type UnknownFieldError struct {
	Field string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown field %q", e.Field)
}

// DistributionSchema is the accessor map of api.Distribution.
var DistributionSchema = Schema[api.Distribution]{
	"id":                        func(d api.Distribution) Value { return StringValue(d.ID) },
	"name":                      func(d api.Distribution) Value { return StringValue(d.Name) },
	"cname":                     func(d api.Distribution) Value { return StringValue(d.CName) },
	"domain":                    func(d api.Distribution) Value { return StringValue(d.Domain) },
	"description":               func(d api.Distribution) Value { return StringValue(d.Description) },
	"status":                    func(d api.Distribution) Value { return StringValue(d.Status) },
	"domain_type":               func(d api.Distribution) Value { return StringValue(d.DomainType) },
	"cache_strategy":            func(d api.Distribution) Value { return StringValue(d.CacheStrategy) },
	"organization_id":           func(d api.Distribution) Value { return StringValue(d.OrganizationID) },
	"acme_challenge_cname":      func(d api.Distribution) Value { return StringValue(d.ACMEChallengeCName) },
	"acme_challenge_domain":     func(d api.Distribution) Value { return StringValue(d.ACMEChallengeDomain) },
	"created_at":                func(d api.Distribution) Value { return TimeValue(d.CreatedAt) },
	"updated_at":                func(d api.Distribution) Value { return TimeValue(d.UpdatedAt) },
	"is_acme_challenge_valid":   func(d api.Distribution) Value { return BoolValue(d.IsACMEChallengeValid) },
	"enable_ssl":                func(d api.Distribution) Value { return BoolValue(d.EnableSSL) },
	"le_issue":                  func(d api.Distribution) Value { return BoolValue(d.LEIssue) },
	"is_redirect_http_to_https": func(d api.Distribution) Value { return BoolValue(d.IsRedirectHTTPToHTTPS) },
	"is_http2":                  func(d api.Distribution) Value { return BoolValue(d.IsHTTP2) },
	"is_cname_valid":            func(d api.Distribution) Value { return BoolValue(d.IsCNAMEValid) },
	"is_http3":                  func(d api.Distribution) Value { return BoolValue(d.IsHTTP3) },
}

// parseInstant parses an item timestamp. Date-only values are read in loc.
func parseInstant(raw string, loc *time.Location) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t, true
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04:05", raw, loc); err == nil {
		return t, true
	}
	if t, err := time.ParseInLocation(query.DateLayout, raw, loc); err == nil {
		return t, true
	}
	return time.Time{}, false
}
