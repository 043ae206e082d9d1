// Package music looks up artists associated with a place on MusicBrainz.
package music

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/agenthands/storymap/internal/config"
	"github.com/agenthands/storymap/internal/provider"
)

type Artist struct {
	ID             string
	Name           string
	Type           string
	Area           string
	CountryCode    string
	Disambiguation string
	Tags           []string
}

// URL is the artist's MusicBrainz page.
func (a Artist) URL() string {
	return "https://musicbrainz.org/artist/" + a.ID
}

type Client struct {
	http    *provider.Client
	baseURL string
}

func New(cfg config.MusicConfig, timeout time.Duration) *Client {
	return &Client{
		http:    provider.New("musicbrainz", timeout, cfg.UserAgent),
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
	}
}

// ArtistsByArea returns artists whose area or begin-area matches place.
func (c *Client) ArtistsByArea(ctx context.Context, place string, limit int) ([]Artist, error) {
	q := url.Values{
		"query": {fmt.Sprintf(`area:"%s" OR beginarea:"%s"`, place, place)},
		"fmt":   {"json"},
		"limit": {fmt.Sprint(limit)},
	}

	body, err := c.http.GetJSON(ctx, c.baseURL+"/artist", q)
	if err != nil {
		return nil, err
	}

	var artists []Artist
	gjson.GetBytes(body, "artists").ForEach(func(_, a gjson.Result) bool {
		artists = append(artists, parseArtist(a))
		return true
	})
	return artists, nil
}

func parseArtist(a gjson.Result) Artist {
	area := a.Get("area")
	if !area.Exists() {
		area = a.Get("begin-area")
	}
	country := a.Get(`area.iso-3166-1-codes.0`).String()
	if country == "" {
		country = a.Get(`begin-area.iso-3166-1-codes.0`).String()
	}
	if country == "" {
		country = a.Get("country").String()
	}

	artist := Artist{
		ID:             a.Get("id").String(),
		Name:           a.Get("name").String(),
		Type:           a.Get("type").String(),
		Area:           area.Get("name").String(),
		CountryCode:    country,
		Disambiguation: a.Get("disambiguation").String(),
	}
	for _, tag := range a.Get("tags.#.name").Array() {
		artist.Tags = append(artist.Tags, tag.String())
	}
	return artist
}
