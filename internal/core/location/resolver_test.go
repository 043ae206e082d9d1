package location

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/storymap/internal/core/model"
)

type MockGeocoder struct {
	Results  []model.Location
	Reversed *model.Location
	Err      error
	Queries  []string
}

func (m *MockGeocoder) Search(ctx context.Context, query string) ([]model.Location, error) {
	m.Queries = append(m.Queries, query)
	return m.Results, m.Err
}

func (m *MockGeocoder) Reverse(ctx context.Context, lat, lon float64) (*model.Location, error) {
	return m.Reversed, m.Err
}

func TestSearchFiltersToCountry(t *testing.T) {
	g := &MockGeocoder{Results: []model.Location{
		{DisplayName: "Perth, Western Australia, Australia", Address: map[string]string{"country": "Australia", "country_code": "au"}},
		{DisplayName: "Perth, Scotland, United Kingdom", Address: map[string]string{"country": "United Kingdom", "country_code": "gb"}},
		{DisplayName: "Perth (no address)"},
	}}
	r := NewResolver(g, "au")

	locs, err := r.Search(context.Background(), "  Perth ")
	require.NoError(t, err)
	assert.Equal(t, []string{"Perth"}, g.Queries)
	require.Len(t, locs, 2)
	assert.Equal(t, "Perth, Western Australia, Australia", locs[0].DisplayName)
	assert.Equal(t, "Perth (no address)", locs[1].DisplayName)
}

func TestSearchEmptyQueryMakesNoCall(t *testing.T) {
	g := &MockGeocoder{}
	_, err := NewResolver(g, "au").Search(context.Background(), " ")

	assert.ErrorIs(t, err, ErrEmptyQuery)
	assert.Empty(t, g.Queries)
}

func TestSearchWrapsError(t *testing.T) {
	boom := errors.New("nominatim down")
	_, err := NewResolver(&MockGeocoder{Err: boom}, "").Search(context.Background(), "Darwin")
	assert.ErrorIs(t, err, boom)
}

func TestDetails(t *testing.T) {
	g := &MockGeocoder{Reversed: &model.Location{DisplayName: "Uluru"}}
	loc, err := NewResolver(g, "au").Details(context.Background(), -25.34, 131.03)
	require.NoError(t, err)
	assert.Equal(t, "Uluru", loc.DisplayName)

	_, err = NewResolver(g, "au").Details(context.Background(), 123, 0)
	assert.ErrorIs(t, err, ErrBadCoordinates)
}
