// Package geocode resolves place names and coordinates through Nominatim.
package geocode

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/agenthands/storymap/internal/config"
	"github.com/agenthands/storymap/internal/core/model"
	"github.com/agenthands/storymap/internal/provider"
)

var ErrNotFound = errors.New("location not found")

type Client struct {
	http         *provider.Client
	baseURL      string
	countryCodes string
	limit        int
}

func New(cfg config.GeocoderConfig, timeout time.Duration) *Client {
	limit := cfg.Limit
	if limit <= 0 {
		limit = 5
	}
	return &Client{
		http:         provider.New("nominatim", timeout, cfg.UserAgent),
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		countryCodes: cfg.CountryCodes,
		limit:        limit,
	}
}

// Search returns forward-geocoding candidates for query.
func (c *Client) Search(ctx context.Context, query string) ([]model.Location, error) {
	q := url.Values{
		"q":              {query},
		"format":         {"json"},
		"limit":          {strconv.Itoa(c.limit)},
		"addressdetails": {"1"},
	}
	if c.countryCodes != "" {
		q.Set("countrycodes", c.countryCodes)
	}

	body, err := c.http.GetJSON(ctx, c.baseURL+"/search", q)
	if err != nil {
		return nil, err
	}

	results := gjson.ParseBytes(body).Array()
	locations := make([]model.Location, 0, len(results))
	for _, r := range results {
		locations = append(locations, parseLocation(r))
	}
	return locations, nil
}

// Reverse resolves coordinates to the nearest addressable place.
func (c *Client) Reverse(ctx context.Context, lat, lon float64) (*model.Location, error) {
	q := url.Values{
		"lat":            {strconv.FormatFloat(lat, 'f', -1, 64)},
		"lon":            {strconv.FormatFloat(lon, 'f', -1, 64)},
		"format":         {"json"},
		"addressdetails": {"1"},
	}

	body, err := c.http.GetJSON(ctx, c.baseURL+"/reverse", q)
	if err != nil {
		return nil, err
	}

	r := gjson.ParseBytes(body)
	if r.Get("error").Exists() || !r.Get("display_name").Exists() {
		return nil, ErrNotFound
	}
	loc := parseLocation(r)
	return &loc, nil
}

func parseLocation(r gjson.Result) model.Location {
	loc := model.Location{
		DisplayName: r.Get("display_name").String(),
		Latitude:    r.Get("lat").Float(),
		Longitude:   r.Get("lon").Float(),
		Type:        r.Get("type").String(),
		Importance:  r.Get("importance").Float(),
	}
	if loc.DisplayName == "" {
		loc.DisplayName = r.Get("name").String()
	}
	if loc.Type == "" {
		loc.Type = "location"
	}
	for _, v := range r.Get("boundingbox").Array() {
		loc.BoundingBox = append(loc.BoundingBox, v.Float())
	}
	if addr := r.Get("address"); addr.IsObject() {
		loc.Address = make(map[string]string)
		addr.ForEach(func(k, v gjson.Result) bool {
			loc.Address[k.String()] = v.String()
			return true
		})
	}
	return loc
}
