// Package location turns user queries and map clicks into places.
package location

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/agenthands/storymap/internal/core/model"
)

var (
	ErrEmptyQuery     = errors.New("query is required")
	ErrBadCoordinates = errors.New("coordinates out of range")
)

type Geocoder interface {
	Search(ctx context.Context, query string) ([]model.Location, error)
	Reverse(ctx context.Context, lat, lon float64) (*model.Location, error)
}

type Resolver struct {
	geocoder Geocoder
	// country restricts search results; empty disables the filter
	country string
}

func NewResolver(g Geocoder, country string) *Resolver {
	return &Resolver{geocoder: g, country: country}
}

// Search returns candidate places for query, keeping only places inside
// the configured country.
func (r *Resolver) Search(ctx context.Context, query string) ([]model.Location, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	locs, err := r.geocoder.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search locations: %w", err)
	}
	if r.country == "" {
		return locs, nil
	}
	return FilterCountry(locs, r.country), nil
}

func (r *Resolver) Details(ctx context.Context, lat, lon float64) (*model.Location, error) {
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return nil, fmt.Errorf("%w: %f,%f", ErrBadCoordinates, lat, lon)
	}
	loc, err := r.geocoder.Reverse(ctx, lat, lon)
	if err != nil {
		return nil, fmt.Errorf("location details: %w", err)
	}
	return loc, nil
}

// FilterCountry keeps locations whose address country or country code
// matches code (e.g. "au"). Locations without address details are kept.
func FilterCountry(locs []model.Location, code string) []model.Location {
	out := make([]model.Location, 0, len(locs))
	for _, l := range locs {
		if l.Address == nil {
			out = append(out, l)
			continue
		}
		cc := l.Address["country_code"]
		country := l.Address["country"]
		if strings.EqualFold(cc, code) || strings.EqualFold(country, code) || (strings.EqualFold(code, "au") && country == "Australia") {
			out = append(out, l)
		}
	}
	return out
}
