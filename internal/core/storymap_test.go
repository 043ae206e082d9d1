package core

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/storymap/internal/config"
	"github.com/agenthands/storymap/internal/core/climate"
	"github.com/agenthands/storymap/internal/core/model"
	"github.com/agenthands/storymap/internal/llm"
	"github.com/agenthands/storymap/internal/music"
	"github.com/agenthands/storymap/internal/search"
)

var errDown = errors.New("upstream down")

type downLLM struct{}

func (downLLM) Generate(ctx context.Context, req llm.Request) (string, error) { return "", errDown }

type downSearch struct{}

func (downSearch) Search(ctx context.Context, req search.Request) (*search.Response, error) {
	return nil, errDown
}

type downMusic struct{}

func (downMusic) ArtistsByArea(ctx context.Context, place string, limit int) ([]music.Artist, error) {
	return nil, errDown
}

type stubGeocoder struct{ locs []model.Location }

func (g stubGeocoder) Search(ctx context.Context, query string) ([]model.Location, error) {
	return g.locs, nil
}

func (g stubGeocoder) Reverse(ctx context.Context, lat, lon float64) (*model.Location, error) {
	return &model.Location{DisplayName: "Broken Hill, New South Wales, Australia", Latitude: lat, Longitude: lon}, nil
}

type stubWeather struct{}

func (stubWeather) Current(ctx context.Context, lat, lon float64) model.Weather {
	return model.Weather{Location: "Stub", Mock: true}
}

func newStoryMap() *StoryMap {
	return New(config.Default(), Deps{
		LLM:    downLLM{},
		Search: downSearch{},
		Geocoder: stubGeocoder{locs: []model.Location{
			{DisplayName: "Broken Hill, NSW, Australia", Address: map[string]string{"country_code": "au"}},
			{DisplayName: "Broken Hill, Ontario, Canada", Address: map[string]string{"country_code": "ca"}},
		}},
		Music:   downMusic{},
		Weather: stubWeather{},
	})
}

func TestStoryMapWithEveryUpstreamDown(t *testing.T) {
	s := newStoryMap()
	ctx := context.Background()

	story := s.Story(ctx, "Broken Hill", "")
	assert.True(t, story.Fallback)

	_, err := s.Stories(ctx, "Broken Hill")
	assert.Error(t, err)

	insights := s.CulturalInsights(ctx, "Broken Hill")
	assert.False(t, insights.Insights.Music.HasResults)

	cmp := s.ClimateComparison(ctx, -31.95, 141.45)
	assert.Equal(t, climate.PastFallback, cmp.Past)

	_, err = s.GroundedQuiz(ctx, "Broken Hill")
	assert.ErrorIs(t, err, errDown)

	assert.Len(t, s.LearningModules(ctx, "Broken Hill"), 2)
	assert.True(t, s.IndigenousKnowledge(ctx, "Broken Hill", "songlines").Fallback)
	assert.True(t, s.CurrentWeather(ctx, -31.95, 141.45).Mock)
}

func TestSearchLocationsFiltersToAustralia(t *testing.T) {
	locs, err := newStoryMap().SearchLocations(context.Background(), "Broken Hill")
	require.NoError(t, err)
	require.Len(t, locs, 1)
	assert.Equal(t, "Broken Hill, NSW, Australia", locs[0].DisplayName)
}

func TestClimateEventsTotals(t *testing.T) {
	resp := newStoryMap().ClimateEvents(context.Background())

	assert.Equal(t, len(resp.Events), resp.Total)
	assert.Equal(t, 7, resp.ByType[climate.EventBushfires])
	assert.Equal(t, 6, resp.ByType[climate.EventFloods])
	assert.Equal(t, 6, resp.ByType[climate.EventDroughts])
	assert.False(t, resp.Timestamp.IsZero())
}
