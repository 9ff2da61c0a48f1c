// Package fixtures provides the demo collection behind the in-memory backend.
package fixtures

import (
	"bytes"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"cdnctl/internal/api"

	"gopkg.in/yaml.v3"
)

const (
	DefaultCount = 150
	DefaultSeed  = 1
)

// TimestampLayout matches the API's millisecond UTC timestamps.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

var (
	statuses        = []string{"active", "provisioning", "disabled"}
	domainTypes     = []string{"cname", "apex", "subdomain"}
	cacheStrategies = []string{"aggressive", "balanced", "conservative"}
	organizations   = []string{"org-001", "org-002", "org-003", "org-004", "org-005"}
	environments    = []string{"Production", "Staging", "Development"}
)

// Generate returns n dummy distributions created during 2024. The same seed
// always yields the same collection.
func Generate(n int, seed uint64) []api.Distribution {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	out := make([]api.Distribution, 0, n)
	for i := 1; i <= n; i++ {
		created := base.AddDate(0, 0, rng.IntN(365))
		updated := created.AddDate(0, 0, rng.IntN(30))

		name := fmt.Sprintf("distribution-%03d", i)
		cname := fmt.Sprintf("cdn-%d.example.com", i)
		domain := fmt.Sprintf("example%d.com", i%10)

		out = append(out, api.Distribution{
			ID:                    fmt.Sprintf("dist-%06d", i),
			Name:                  name,
			CName:                 cname,
			Domain:                domain,
			ACMEChallengeCName:    "_acme-challenge." + cname,
			ACMEChallengeDomain:   "_acme-challenge." + domain,
			Description:           fmt.Sprintf("CDN distribution for %s - %s environment", name, environments[i%3]),
			Status:                pick(rng, statuses),
			DomainType:            pick(rng, domainTypes),
			CacheStrategy:         pick(rng, cacheStrategies),
			OrganizationID:        pick(rng, organizations),
			CreatedAt:             created.Format(TimestampLayout),
			UpdatedAt:             updated.Format(TimestampLayout),
			IsACMEChallengeValid:  rng.Float64() > 0.3,
			EnableSSL:             rng.Float64() > 0.2,
			LEIssue:               rng.Float64() > 0.8,
			IsRedirectHTTPToHTTPS: rng.Float64() > 0.3,
			IsHTTP2:               rng.Float64() > 0.1,
			IsHTTP3:               rng.Float64() > 0.4,
			IsCNAMEValid:          rng.Float64() > 0.2,
		})
	}
	return out
}

func pick(rng *rand.Rand, values []string) string {
	return values[rng.IntN(len(values))]
}

// Load reads a fixture file. It accepts YAML or JSON holding either a list
// of distributions or an object with a data list, like an API response.
func Load(path string) ([]api.Distribution, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(raw)
}

// Parse decodes fixture content, see Load.
func Parse(raw []byte) ([]api.Distribution, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("fixture is empty")
	}

	var list []api.Distribution
	if err := yaml.Unmarshal(trimmed, &list); err == nil {
		return list, nil
	}

	var wrapped struct {
		Data []api.Distribution `yaml:"data"`
	}
	if err := yaml.Unmarshal(trimmed, &wrapped); err != nil {
		return nil, fmt.Errorf("failed to parse fixture: %w", err)
	}
	if wrapped.Data == nil {
		return nil, fmt.Errorf("fixture has no data list")
	}
	return wrapped.Data, nil
}
