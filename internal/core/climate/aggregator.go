// Package climate summarises past, present and projected climate for a
// point, and known climate events across Australia.
package climate

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/agenthands/storymap/internal/core/common"
	"github.com/agenthands/storymap/internal/core/gather"
	"github.com/agenthands/storymap/internal/core/model"
	"github.com/agenthands/storymap/internal/logging"
	"github.com/agenthands/storymap/internal/metrics"
	"github.com/agenthands/storymap/internal/search"
)

var (
	PastFallback    = model.ClimateSnapshot{Temperature: 26, Rainfall: 450, WindSpeed: 14, Fallback: true}
	FutureFallback  = model.ClimateSnapshot{Temperature: 30, Rainfall: 380, WindSpeed: 17, Fallback: true}
	CurrentFallback = model.ClimateSnapshot{Temperature: 28, Rainfall: 420, WindSpeed: 15, Fallback: true}
)

type Searcher interface {
	Search(ctx context.Context, req search.Request) (*search.Response, error)
}

type Aggregator struct {
	Search Searcher
}

func NewAggregator(s Searcher) *Aggregator {
	return &Aggregator{Search: s}
}

func (a *Aggregator) lookup(ctx context.Context, query string, fallback model.ClimateSnapshot) (model.ClimateSnapshot, *search.Response) {
	resp, err := a.Search.Search(ctx, search.Request{
		Query:         query,
		Depth:         search.DepthAdvanced,
		IncludeAnswer: true,
		MaxResults:    5,
	})
	if err == nil && resp == nil {
		err = search.ErrEmptyResponse
	}
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("query", query).Msg("climate lookup failed, using fallback")
		metrics.RecordFallback("climate")
		return fallback, nil
	}

	var sb strings.Builder
	sb.WriteString(resp.Answer)
	for _, r := range resp.Results {
		sb.WriteString("\n")
		sb.WriteString(r.Content)
	}
	return extractSnapshot(sb.String(), fallback), resp
}

// Comparison contrasts 1990-2020 observations with 2050-2080 projections.
// It never fails; missing values come from fixed fallbacks.
func (a *Aggregator) Comparison(ctx context.Context, lat, lon float64) *model.ClimateComparison {
	queries := []struct {
		query    string
		fallback model.ClimateSnapshot
	}{
		{fmt.Sprintf("historical climate data 1990-2020 %.4f %.4f Australia temperature rainfall", lat, lon), PastFallback},
		{fmt.Sprintf("climate projections 2050-2080 %.4f %.4f Australia global warming future temperature", lat, lon), FutureFallback},
	}

	fns := make([]func(context.Context) (model.ClimateSnapshot, error), len(queries))
	for i, q := range queries {
		fns[i] = func(ctx context.Context) (model.ClimateSnapshot, error) {
			s, _ := a.lookup(ctx, q.query, q.fallback)
			return s, nil
		}
	}

	results := gather.Settle(ctx, fns...)
	past, future := PastFallback, FutureFallback
	if results[0].OK() {
		past = results[0].Value
	}
	if results[1].OK() {
		future = results[1].Value
	}

	return &model.ClimateComparison{
		Past:   past,
		Future: future,
		Changes: model.ClimateChanges{
			Temperature: Delta(past.Temperature, future.Temperature),
			Rainfall:    Delta(past.Rainfall, future.Rainfall),
			WindSpeed:   Delta(past.WindSpeed, future.WindSpeed),
		},
	}
}

// Snapshot reports climate for a point over timeframe (e.g. "current").
func (a *Aggregator) Snapshot(ctx context.Context, lat, lon float64, timeframe string) *model.ClimateData {
	if timeframe == "" {
		timeframe = "current"
	}
	query := fmt.Sprintf("climate data %.4f %.4f Australia temperature rainfall %s", lat, lon, timeframe)
	snap, resp := a.lookup(ctx, query, CurrentFallback)

	data := &model.ClimateData{
		Latitude:  lat,
		Longitude: lon,
		Timeframe: timeframe,
		Snapshot:  snap,
	}
	if resp != nil {
		data.Summary = resp.Answer
		data.Sources = resp.Sources()
	}
	return data
}

var yearPattern = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)

// EventsFor searches for recorded climate events near location.
func (a *Aggregator) EventsFor(ctx context.Context, location string) ([]model.ClimateEventReport, error) {
	resp, err := a.Search.Search(ctx, search.Request{
		Query:         fmt.Sprintf("%s Australia climate events bushfires floods droughts historical timeline 2000-2024", location),
		Depth:         search.DepthAdvanced,
		IncludeAnswer: true,
		MaxResults:    10,
	})
	if err != nil {
		return nil, fmt.Errorf("climate events for %s: %w", location, err)
	}
	if resp == nil {
		return []model.ClimateEventReport{}, nil
	}

	reports := make([]model.ClimateEventReport, 0, len(resp.Results))
	for _, r := range resp.Results {
		date := "Unknown"
		if years := yearPattern.FindAllString(r.Content, -1); len(years) > 0 {
			date = years[len(years)-1]
		}
		desc := common.Truncate(r.Content, 200)
		reports = append(reports, model.ClimateEventReport{
			Title:       r.Title,
			Description: desc,
			Date:        date,
			Type:        ClassifyEvent(r.Title + " " + r.Content),
			URL:         r.URL,
		})
	}
	return reports, nil
}

// ClassifyEvent maps free text to bushfires, floods, droughts or other.
func ClassifyEvent(text string) string {
	t := strings.ToLower(text)
	switch {
	case strings.Contains(t, "fire"):
		return EventBushfires
	case strings.Contains(t, "flood"):
		return EventFloods
	case strings.Contains(t, "drought"), strings.Contains(t, "dry"):
		return EventDroughts
	default:
		return "other"
	}
}
