package climate

import (
	"context"
	"fmt"
	"strings"

	"github.com/agenthands/storymap/internal/core/gather"
	"github.com/agenthands/storymap/internal/core/model"
	"github.com/agenthands/storymap/internal/logging"
	"github.com/agenthands/storymap/internal/search"
)

const (
	EventBushfires = "bushfires"
	EventFloods    = "floods"
	EventDroughts  = "droughts"
)

type eventSite struct {
	name     string
	lat, lon float64
	state    string
}

type eventKind struct {
	kind     string
	prefix   string
	query    string
	noun     string
	maxCount int

	// counts above high are "high", above medium are "medium"
	high, medium int
	sites        []eventSite
}

var eventCatalogue = []eventKind{
	{
		kind: EventBushfires, prefix: "bushfire", noun: "bushfire event",
		query: "Australia bushfires 2020-2024 locations", maxCount: 5, high: 3, medium: 1,
		sites: []eventSite{
			{"Blue Mountains", -33.7, 150.3, "NSW"},
			{"Adelaide Hills", -34.9, 138.7, "SA"},
			{"Grampians", -37.2, 142.5, "VIC"},
			{"Perth Hills", -31.9, 116.1, "WA"},
			{"Kangaroo Island", -35.8, 137.2, "SA"},
			{"East Gippsland", -37.5, 148.2, "VIC"},
			{"Hawkesbury", -33.6, 150.8, "NSW"},
		},
	},
	{
		kind: EventFloods, prefix: "flood", noun: "flood event",
		query: "Australia floods 2020-2024 locations", maxCount: 4, high: 2, medium: 1,
		sites: []eventSite{
			{"Brisbane", -27.5, 153.0, "QLD"},
			{"Lismore", -28.8, 153.3, "NSW"},
			{"Townsville", -19.3, 146.8, "QLD"},
			{"Katherine", -14.5, 132.3, "NT"},
			{"Rockhampton", -23.4, 150.5, "QLD"},
			{"Charleville", -26.4, 146.3, "QLD"},
		},
	},
	{
		kind: EventDroughts, prefix: "drought", noun: "drought period",
		query: "Australia drought 2020-2024 locations", maxCount: 3, high: 2, medium: 1,
		sites: []eventSite{
			{"Murray-Darling Basin", -34.5, 142.0, "Multi"},
			{"Broken Hill", -31.9, 141.4, "NSW"},
			{"Charleville", -26.4, 146.3, "QLD"},
			{"Dubbo", -32.2, 148.6, "NSW"},
			{"Mildura", -34.2, 142.1, "VIC"},
			{"Longreach", -23.4, 144.3, "QLD"},
		},
	},
}

// Events returns the catalogue of known climate event sites. Each site's
// count is one plus the number of recent search results that mention it,
// capped per event kind.
func (a *Aggregator) Events(ctx context.Context) []model.ClimateEvent {
	fns := make([]func(context.Context) (*search.Response, error), len(eventCatalogue))
	for i, k := range eventCatalogue {
		fns[i] = func(ctx context.Context) (*search.Response, error) {
			return a.Search.Search(ctx, search.Request{Query: k.query, MaxResults: 10})
		}
	}
	results := gather.Settle(ctx, fns...)

	var events []model.ClimateEvent
	for i, k := range eventCatalogue {
		var resp *search.Response
		if results[i].OK() {
			resp = results[i].Value
		} else {
			logging.Ctx(ctx).Warn().Err(results[i].Err).Str("kind", k.kind).Msg("climate event search failed")
		}
		for j, site := range k.sites {
			count := min(1+mentions(resp, site.name), k.maxCount)
			events = append(events, model.ClimateEvent{
				ID:          fmt.Sprintf("%s_%d", k.prefix, j),
				Type:        k.kind,
				Latitude:    site.lat,
				Longitude:   site.lon,
				Location:    site.name,
				State:       site.state,
				Count:       count,
				Severity:    k.severity(count),
				Description: fmt.Sprintf("%d %s recorded in %s", count, plural(k.noun, count), site.name),
			})
		}
	}
	return events
}

func (k eventKind) severity(count int) string {
	switch {
	case count > k.high:
		return "high"
	case count > k.medium:
		return "medium"
	default:
		return "low"
	}
}

func plural(noun string, n int) string {
	if n == 1 {
		return noun
	}
	return noun + "s"
}

func mentions(resp *search.Response, name string) int {
	if resp == nil {
		return 0
	}
	n := 0
	needle := strings.ToLower(name)
	for _, r := range resp.Results {
		if strings.Contains(strings.ToLower(r.Title+" "+r.Content), needle) {
			n++
		}
	}
	return n
}
