// Package daterange resolves the preset ranges of the created-date picker.
package daterange

import (
	"fmt"
	"time"

	"cdnctl/internal/query"
)

const (
	AllTime     = "all-time"
	Last8Hours  = "last-8-hours"
	Last24Hours = "last-24-hours"
	Last7Days   = "last-7-days"
	Last30Days  = "last-30-days"
	ThisMonth   = "this-month"
	Custom      = "custom"
)

type Preset struct {
	Name  string
	Label string
}

// Presets in picker order.
var Presets = []Preset{
	{Name: AllTime, Label: "All Time"},
	{Name: Last8Hours, Label: "Last 8 Hours"},
	{Name: Last24Hours, Label: "Last 24 Hours"},
	{Name: Last7Days, Label: "Last 7 Days"},
	{Name: Last30Days, Label: "Last 30 Days"},
	{Name: ThisMonth, Label: "This Month"},
	{Name: Custom, Label: "Custom Date Range"},
}

// Range is an inclusive span of time.
type Range struct {
	From time.Time
	To   time.Time
}

// Resolve computes the range of a preset relative to now, in now's location.
// Every preset ends at the end of the current day. Custom has no fixed range
// and is rejected like unknown names.
func Resolve(name string, now time.Time) (Range, error) {
	from := now
	switch name {
	case AllTime:
		from = time.Date(1970, 1, 1, 0, 0, 0, 0, now.Location())
	case Last8Hours:
		from = now.Add(-8 * time.Hour)
	case Last24Hours:
		from = now.AddDate(0, 0, -1)
	case Last7Days:
		from = startOfDay(now.AddDate(0, 0, -6))
	case Last30Days:
		from = startOfDay(now.AddDate(0, 0, -29))
	case ThisMonth:
		from = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	case Custom:
		return Range{}, fmt.Errorf("preset %q has no fixed range", name)
	default:
		return Range{}, fmt.Errorf("unknown date range preset: %s", name)
	}
	return Range{From: from, To: endOfDay(now)}, nil
}

// Apply writes the range into the created filter of s as calendar dates.
func (r Range) Apply(s query.State) query.State {
	return s.WithDateRange(r.From, r.To)
}

// Label returns the display label of a preset name, or the name itself.
func Label(name string) string {
	for _, p := range Presets {
		if p.Name == name {
			return p.Label
		}
	}
	return name
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
}
