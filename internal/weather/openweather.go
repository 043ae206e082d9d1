// Package weather reports current conditions from OpenWeatherMap.
package weather

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/agenthands/storymap/internal/config"
	"github.com/agenthands/storymap/internal/core/model"
	"github.com/agenthands/storymap/internal/logging"
	"github.com/agenthands/storymap/internal/metrics"
	"github.com/agenthands/storymap/internal/provider"
)

var errNoKey = errors.New("weather API key is not configured")

var mockConditions = []string{"sunny", "partly cloudy", "cloudy", "light rain"}

type Client struct {
	http    *provider.Client
	apiKey  string
	baseURL string
}

func New(cfg config.WeatherConfig, timeout time.Duration) *Client {
	return &Client{
		http:    provider.New("openweather", timeout, ""),
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
	}
}

// Current returns live conditions, or randomised mock conditions when the
// provider is unconfigured or fails. It never returns an error.
func (c *Client) Current(ctx context.Context, lat, lon float64) model.Weather {
	w, err := c.fetch(ctx, lat, lon)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("weather provider unavailable, using mock data")
		metrics.RecordFallback("weather")
		return c.mock()
	}
	return w
}

func (c *Client) fetch(ctx context.Context, lat, lon float64) (model.Weather, error) {
	if c.apiKey == "" {
		return model.Weather{}, errNoKey
	}
	q := url.Values{
		"lat":   {strconv.FormatFloat(lat, 'f', -1, 64)},
		"lon":   {strconv.FormatFloat(lon, 'f', -1, 64)},
		"appid": {c.apiKey},
		"units": {"metric"},
	}
	body, err := c.http.GetJSON(ctx, c.baseURL+"/weather", q)
	if err != nil {
		return model.Weather{}, err
	}

	r := gjson.ParseBytes(body)
	return model.Weather{
		Location:    r.Get("name").String(),
		Temperature: r.Get("main.temp").Float(),
		FeelsLike:   r.Get("main.feels_like").Float(),
		Humidity:    int(r.Get("main.humidity").Int()),
		Condition:   r.Get("weather.0.description").String(),
		RainChance:  int(math.Round(r.Get("rain.1h").Float() * 10)),
		WindSpeed:   r.Get("wind.speed").Float(),
		Pressure:    int(r.Get("main.pressure").Int()),
	}, nil
}

func (c *Client) mock() model.Weather {
	between := func(lo, hi float64) float64 {
		return math.Round(lo + rand.Float64()*(hi-lo))
	}
	return model.Weather{
		Location:    "Australia",
		Temperature: between(15, 35),
		FeelsLike:   between(15, 35),
		Humidity:    int(between(40, 80)),
		Condition:   mockConditions[rand.IntN(len(mockConditions))],
		RainChance:  int(between(0, 60)),
		WindSpeed:   between(0, 25),
		Pressure:    int(between(1000, 1050)),
		Mock:        true,
	}
}
