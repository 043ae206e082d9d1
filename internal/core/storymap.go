// Package core wires the StoryMap services together behind one facade.
package core

import (
	"context"
	"time"

	"github.com/agenthands/storymap/internal/config"
	"github.com/agenthands/storymap/internal/core/climate"
	"github.com/agenthands/storymap/internal/core/culture"
	"github.com/agenthands/storymap/internal/core/indigenous"
	"github.com/agenthands/storymap/internal/core/location"
	"github.com/agenthands/storymap/internal/core/model"
	"github.com/agenthands/storymap/internal/core/narrative"
	"github.com/agenthands/storymap/internal/llm"
	"github.com/agenthands/storymap/internal/search"
)

type Searcher interface {
	Search(ctx context.Context, req search.Request) (*search.Response, error)
}

type WeatherSource interface {
	Current(ctx context.Context, lat, lon float64) model.Weather
}

// Deps are the upstream clients a StoryMap is built from.
type Deps struct {
	LLM      llm.LLMClient
	Search   Searcher
	Geocoder location.Geocoder
	Music    culture.MusicSource
	Weather  WeatherSource
}

type StoryMap struct {
	Locations  *location.Resolver
	Narratives *narrative.Generator
	Culture    *culture.Aggregator
	Climate    *climate.Aggregator
	Indigenous *indigenous.Service
	Weather    WeatherSource
	now        func() time.Time
}

func New(cfg *config.Config, d Deps) *StoryMap {
	return &StoryMap{
		Locations:  location.NewResolver(d.Geocoder, cfg.Geocoder.CountryCodes),
		Narratives: narrative.NewGenerator(d.LLM, d.Search, cfg.Prompts),
		Culture:    culture.NewAggregator(d.Music, d.Search),
		Climate:    climate.NewAggregator(d.Search),
		Indigenous: indigenous.NewService(d.LLM, d.Search, cfg.Prompts, cfg.Quiz),
		Weather:    d.Weather,
		now:        time.Now,
	}
}

func (s *StoryMap) SearchLocations(ctx context.Context, query string) ([]model.Location, error) {
	return s.Locations.Search(ctx, query)
}

func (s *StoryMap) LocationDetails(ctx context.Context, lat, lon float64) (*model.Location, error) {
	return s.Locations.Details(ctx, lat, lon)
}

func (s *StoryMap) Story(ctx context.Context, location, theme string) model.Story {
	return s.Narratives.GenerateNarrative(ctx, location, theme)
}

func (s *StoryMap) Stories(ctx context.Context, location string) (*model.StoriesResponse, error) {
	return s.Narratives.GenerateStories(ctx, location)
}

func (s *StoryMap) Character(ctx context.Context, location, characterType string) (*model.Character, error) {
	return s.Narratives.GenerateCharacter(ctx, location, characterType)
}

func (s *StoryMap) CulturalInsights(ctx context.Context, location string) *model.InsightsResponse {
	return s.Culture.Insights(ctx, location)
}

func (s *StoryMap) ClimateData(ctx context.Context, lat, lon float64, timeframe string) *model.ClimateData {
	return s.Climate.Snapshot(ctx, lat, lon, timeframe)
}

func (s *StoryMap) ClimateComparison(ctx context.Context, lat, lon float64) *model.ClimateComparison {
	return s.Climate.Comparison(ctx, lat, lon)
}

// ClimateEvents returns the event catalogue with per-type totals.
func (s *StoryMap) ClimateEvents(ctx context.Context) *model.ClimateEventsResponse {
	events := s.Climate.Events(ctx)
	byType := make(map[string]int)
	for _, e := range events {
		byType[e.Type]++
	}
	return &model.ClimateEventsResponse{
		Events:    events,
		Total:     len(events),
		ByType:    byType,
		Timestamp: s.now(),
	}
}

func (s *StoryMap) SearchClimateEvents(ctx context.Context, location string) ([]model.ClimateEventReport, error) {
	return s.Climate.EventsFor(ctx, location)
}

func (s *StoryMap) IndigenousKnowledge(ctx context.Context, location, topic string) *model.Knowledge {
	return s.Indigenous.Knowledge(ctx, location, topic)
}

func (s *StoryMap) GroundedQuiz(ctx context.Context, location string) (*model.Quiz, error) {
	return s.Indigenous.GroundedQuiz(ctx, location)
}

func (s *StoryMap) GenericQuiz(ctx context.Context, location, difficulty string, count int) (*model.Quiz, error) {
	return s.Indigenous.GenericQuiz(ctx, location, difficulty, count)
}

func (s *StoryMap) LearningModules(ctx context.Context, location string) []model.LearningModule {
	return s.Indigenous.LearningModules(ctx, location)
}

func (s *StoryMap) CurrentWeather(ctx context.Context, lat, lon float64) model.Weather {
	return s.Weather.Current(ctx, lat, lon)
}
