package music

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/storymap/internal/config"
)

const artistsBody = `{
  "count": 2,
  "artists": [
    {
      "id": "a1",
      "name": "The Outback Band",
      "type": "Group",
      "area": {"name": "Broken Hill", "iso-3166-1-codes": ["AU"]},
      "tags": [{"name": "country"}, {"name": "folk"}]
    },
    {
      "id": "a2",
      "name": "Somebody Else",
      "begin-area": {"name": "Broken Hill"},
      "country": "US",
      "disambiguation": "US singer"
    }
  ]
}`

func TestArtistsByArea(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/artist", r.URL.Path)
		assert.Equal(t, `area:"Broken Hill" OR beginarea:"Broken Hill"`, r.URL.Query().Get("query"))
		assert.Equal(t, "json", r.URL.Query().Get("fmt"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		w.Write([]byte(artistsBody))
	}))
	defer srv.Close()

	c := New(config.MusicConfig{BaseURL: srv.URL, UserAgent: "StoryMap.ai/1.0"}, time.Second)
	artists, err := c.ArtistsByArea(context.Background(), "Broken Hill", 10)
	require.NoError(t, err)
	require.Len(t, artists, 2)

	assert.Equal(t, "AU", artists[0].CountryCode)
	assert.Equal(t, []string{"country", "folk"}, artists[0].Tags)
	assert.Equal(t, "https://musicbrainz.org/artist/a1", artists[0].URL())

	assert.Equal(t, "Broken Hill", artists[1].Area)
	assert.Equal(t, "US", artists[1].CountryCode)
}

func TestArtistsByAreaEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"count":0,"artists":[]}`))
	}))
	defer srv.Close()

	c := New(config.MusicConfig{BaseURL: srv.URL}, time.Second)
	artists, err := c.ArtistsByArea(context.Background(), "Nowhere", 10)
	require.NoError(t, err)
	assert.Empty(t, artists)
}
