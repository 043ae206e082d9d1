// Package culture gathers music, art, food and cultural insights for a place.
package culture

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/agenthands/storymap/internal/core/common"
	"github.com/agenthands/storymap/internal/core/gather"
	"github.com/agenthands/storymap/internal/core/model"
	"github.com/agenthands/storymap/internal/logging"
	"github.com/agenthands/storymap/internal/metrics"
	"github.com/agenthands/storymap/internal/music"
	"github.com/agenthands/storymap/internal/search"
)

const (
	maxMusicItems = 5
	maxArtItems   = 6
	maxListItems  = 5
)

type MusicSource interface {
	ArtistsByArea(ctx context.Context, place string, limit int) ([]music.Artist, error)
}

type Searcher interface {
	Search(ctx context.Context, req search.Request) (*search.Response, error)
}

type Aggregator struct {
	Music  MusicSource
	Search Searcher
	now    func() time.Time
}

func NewAggregator(m MusicSource, s Searcher) *Aggregator {
	return &Aggregator{Music: m, Search: s, now: time.Now}
}

// finding is the normalised output of one lookup.
type finding struct {
	summary string
	items   []model.Item
}

func (f finding) empty() bool {
	return f.summary == "" && len(f.items) == 0
}

var artQueries = []string{
	"art galleries museums %s Australia",
	"artists painters sculptors %s Australia",
	"cultural centers exhibitions %s Australia",
}

// Branch order in Insights.
const (
	branchMusic = iota
	branchArt1
	branchArt2
	branchArt3
	branchEvents
	branchLandmarks
	branchFood
)

// Insights returns all four categories for location. Provider failures
// turn into the category's no-results state; it never fails.
func (a *Aggregator) Insights(ctx context.Context, location string) *model.InsightsResponse {
	place := model.PlaceName(location)

	fns := []func(context.Context) (finding, error){
		func(ctx context.Context) (finding, error) { return a.music(ctx, place) },
	}
	for _, q := range artQueries {
		fns = append(fns, func(ctx context.Context) (finding, error) {
			return a.searchItems(ctx, fmt.Sprintf(q, place), 3, false, place, artKeywords, artItem(place))
		})
	}
	fns = append(fns,
		func(ctx context.Context) (finding, error) {
			return a.searchItems(ctx, fmt.Sprintf("%s Australia cultural events festivals concerts exhibitions", place),
				maxListItems, true, place, eventKeywords, eventItem)
		},
		func(ctx context.Context) (finding, error) {
			return a.searchItems(ctx, fmt.Sprintf("%s Australia museums galleries cultural sites heritage landmarks attractions", place),
				maxListItems, true, place, landmarkKeywords, landmarkItem)
		},
		func(ctx context.Context) (finding, error) {
			return a.searchItems(ctx, fmt.Sprintf("%s Australia local food restaurants cuisine specialties dishes", place),
				maxListItems, true, place, foodKeywords, foodItem)
		},
	)

	results := gather.Settle(ctx, fns...)
	found := make([]finding, len(results))
	for i, r := range results {
		if r.Err != nil {
			logging.Ctx(ctx).Warn().Err(r.Err).Int("branch", i).Str("location", place).Msg("cultural lookup failed")
			continue
		}
		found[i] = r.Value
	}

	musicF := found[branchMusic]
	artF := mergeArt(found[branchArt1], found[branchArt2], found[branchArt3])
	events, landmarks, food := found[branchEvents], found[branchLandmarks], found[branchFood]

	insights := model.CulturalInsights{
		Music:   category("music", place, musicF, fmt.Sprintf("Musical artists from %s and the surrounding region", place)),
		Art:     category("art", place, artF, fmt.Sprintf("Galleries, museums and artists in %s", place)),
		Food:    category("food", place, food, fmt.Sprintf("Local cuisine and food specialties from %s", place)),
		Culture: category("culture", place, mergeCulture(events, landmarks), fmt.Sprintf("Cultural heritage of %s", place)),
	}
	for _, c := range []model.Category{insights.Music, insights.Art, insights.Food, insights.Culture} {
		if !c.HasResults {
			metrics.RecordFallback("culture")
		}
	}

	total := len(insights.Music.Items) + len(insights.Art.Items) + len(insights.Food.Items) + len(insights.Culture.Items)
	return &model.InsightsResponse{
		Insights: insights,
		Metadata: model.InsightsMetadata{
			Location: location,
			Sources: map[string]model.Availability{
				"music":     availability(!musicF.empty(), model.NoResults),
				"art":       availability(!artF.empty(), model.NoResults),
				"events":    availability(!events.empty(), model.Limited),
				"landmarks": availability(!landmarks.empty(), model.Limited),
				"food":      availability(!food.empty(), model.Limited),
			},
			Validation: model.Validation{
				MusicResults: len(insights.Music.Items),
				ArtResults:   len(insights.Art.Items),
				TotalResults: total,
			},
			Timestamp: a.now(),
		},
	}
}

func availability(ok bool, otherwise model.Availability) model.Availability {
	if ok {
		return model.Available
	}
	return otherwise
}

func category(name, place string, f finding, defaultSummary string) model.Category {
	if f.empty() {
		return model.EmptyCategory(name, place)
	}
	summary := f.summary
	if summary == "" {
		summary = defaultSummary
	}
	items := f.items
	if items == nil {
		items = []model.Item{}
	}
	return model.Category{Summary: summary, HasResults: true, Items: items}
}

func (a *Aggregator) music(ctx context.Context, place string) (finding, error) {
	artists, err := a.Music.ArtistsByArea(ctx, place, 10)
	if err != nil {
		return finding{}, err
	}

	var items []model.Item
	for _, ar := range artists {
		c := Candidate{Title: ar.Name, Area: ar.Area, CountryCode: ar.CountryCode}
		if !IsRelevant(c, place, nil) {
			continue
		}
		kind := ar.Type
		if kind == "" {
			kind = "Artist"
		}
		area := ar.Area
		if area == "" {
			area = place
		}
		genres := ar.Tags
		if len(genres) > 3 {
			genres = genres[:3]
		}
		items = append(items, model.Item{
			Name:        ar.Name,
			Type:        kind,
			Description: fmt.Sprintf("%s from %s", kind, area),
			Location:    area,
			URL:         ar.URL(),
			Genres:      genres,
		})
		if len(items) == maxMusicItems {
			break
		}
	}
	return finding{items: items}, nil
}

func (a *Aggregator) searchItems(ctx context.Context, query string, limit int, withAnswer bool, place string,
	keywords []string, toItem func(search.Result) model.Item) (finding, error) {
	resp, err := a.Search.Search(ctx, search.Request{
		Query:         query,
		Depth:         search.DepthBasic,
		IncludeAnswer: withAnswer,
		MaxResults:    limit,
	})
	if err != nil {
		return finding{}, err
	}
	if resp == nil {
		return finding{}, search.ErrEmptyResponse
	}

	var items []model.Item
	for _, r := range resp.Results {
		if IsRelevant(Candidate{Title: r.Title, Content: r.Content, URL: r.URL}, place, keywords) {
			items = append(items, toItem(r))
		}
	}
	// the answer only counts when a relevant result backs it
	summary := ""
	if len(items) > 0 {
		summary = strings.TrimSpace(resp.Answer)
	}
	return finding{summary: summary, items: items}, nil
}

func mergeArt(parts ...finding) finding {
	seen := make(map[string]struct{})
	var items []model.Item
	for _, p := range parts {
		for _, it := range p.items {
			key := it.URL
			if key == "" {
				key = it.Name
			}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			items = append(items, it)
			if len(items) == maxArtItems {
				return finding{items: items}
			}
		}
	}
	return finding{items: items}
}

func mergeCulture(events, landmarks finding) finding {
	summary := landmarks.summary
	if summary == "" {
		summary = events.summary
	}
	items := append(append([]model.Item{}, events.items...), landmarks.items...)
	if len(items) == 0 {
		items = nil
	}
	return finding{summary: summary, items: items}
}

func artItem(place string) func(search.Result) model.Item {
	return func(r search.Result) model.Item {
		return model.Item{
			Name:        r.Title,
			Type:        ArtType(r.Title, r.Content),
			Description: common.Truncate(r.Content, 150),
			URL:         r.URL,
			Location:    place,
		}
	}
}

// ArtType classifies an art result by the first matching keyword.
func ArtType(title, content string) string {
	text := strings.ToLower(title + " " + content)
	switch {
	case strings.Contains(text, "gallery"):
		return "Gallery"
	case strings.Contains(text, "museum"):
		return "Museum"
	case strings.Contains(text, "artist"), strings.Contains(text, "painter"):
		return "Artist"
	case strings.Contains(text, "sculpture"):
		return "Sculpture"
	case strings.Contains(text, "exhibition"):
		return "Exhibition"
	case strings.Contains(text, "cultural center"), strings.Contains(text, "cultural centre"):
		return "Cultural Center"
	default:
		return "Art Venue"
	}
}

var yearPattern = regexp.MustCompile(`\b(19|20)\d{2}\b`)

func eventItem(r search.Result) model.Item {
	return model.Item{
		Name:        r.Title,
		Type:        "Event",
		Description: common.Truncate(r.Content, 150),
		Date:        lastYear(r.Content),
		URL:         r.URL,
	}
}

func lastYear(s string) string {
	years := yearPattern.FindAllString(s, -1)
	if len(years) == 0 {
		return ""
	}
	return years[len(years)-1]
}

func landmarkItem(r search.Result) model.Item {
	return model.Item{
		Name:        r.Title,
		Type:        "Landmark",
		Description: common.Truncate(r.Content, 150),
		URL:         r.URL,
	}
}

func foodItem(r search.Result) model.Item {
	return model.Item{
		Name:        foodName(r.Title),
		Type:        "Local Cuisine",
		Description: common.Truncate(r.Content, 100),
		URL:         r.URL,
	}
}

// foodName trims site suffixes such as " - TripAdvisor" from venue titles.
func foodName(title string) string {
	for _, sep := range []string{" - ", " | "} {
		if name, _, ok := strings.Cut(title, sep); ok && name != "" {
			return strings.TrimSpace(name)
		}
	}
	return title
}
