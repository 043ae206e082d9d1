// Command smoke exercises a running StoryMap server end to end.
package main

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/agenthands/storymap/internal/provider"
)

var (
	baseURL  string
	place    string
	lat, lon float64
	wait     time.Duration
	timeout  time.Duration
	withLLM  bool
)

type check struct {
	name   string
	method string
	path   string
	query  url.Values
	body   any
	// expect is a gjson path that must exist in the response
	expect string
	llm    bool
}

var rootCmd = &cobra.Command{
	Use:   "smoke",
	Short: "Smoke test a running StoryMap server",
	Long: `Smoke calls each StoryMap API route against a running server and checks
the shape of every response.

Example:
  smoke --base-url http://localhost:5000 --location "Broken Hill"
  smoke --llm   # also run the stories and quiz routes`,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().StringVar(&baseURL, "base-url", "http://localhost:5000", "server base URL")
	rootCmd.Flags().StringVar(&place, "location", "Broken Hill", "place name to query")
	rootCmd.Flags().Float64Var(&lat, "lat", -31.9539, "latitude for climate and weather checks")
	rootCmd.Flags().Float64Var(&lon, "lon", 141.4539, "longitude for climate and weather checks")
	rootCmd.Flags().DurationVar(&wait, "wait", 0, "wait before the first request")
	rootCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "per-request timeout")
	rootCmd.Flags().BoolVar(&withLLM, "llm", false, "include routes that need the completion provider to succeed")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func checks() []check {
	coords := url.Values{
		"lat": {strconv.FormatFloat(lat, 'f', -1, 64)},
		"lon": {strconv.FormatFloat(lon, 'f', -1, 64)},
	}
	byPlace := url.Values{"location": {place}}

	return []check{
		{name: "health", method: "GET", path: "/health", expect: "status"},
		{name: "location search", method: "GET", path: "/api/location/search", query: url.Values{"query": {place}}, expect: "0.display_name"},
		{name: "story", method: "POST", path: "/api/narrative/story", body: map[string]string{"location": place}, expect: "title"},
		{name: "cultural insights", method: "GET", path: "/api/culture/insights", query: byPlace, expect: "insights.music.summary"},
		{name: "climate data", method: "GET", path: "/api/climate/data", query: coords, expect: "data.temperature"},
		{name: "climate comparison", method: "GET", path: "/api/climate/comparison", query: coords, expect: "changes.temperature"},
		{name: "climate events", method: "GET", path: "/api/climate/events", expect: "events.0.severity"},
		{name: "indigenous knowledge", method: "GET", path: "/api/indigenous/knowledge", query: byPlace, expect: "information"},
		{name: "learning modules", method: "GET", path: "/api/indigenous/modules", query: byPlace, expect: "modules.0.title"},
		{name: "weather", method: "GET", path: "/api/weather", query: coords, expect: "temperature"},
		{name: "stories", method: "POST", path: "/api/narrative/stories", body: map[string]string{"location": place}, expect: "stories.0.content", llm: true},
		{name: "quiz", method: "GET", path: "/api/indigenous/quiz", query: byPlace, expect: "questions.0.options.3", llm: true},
	}
}

func run(cmd *cobra.Command, args []string) error {
	if wait > 0 {
		time.Sleep(wait)
	}

	client := provider.New("smoke", timeout, "StoryMap-smoke/1.0")
	failed := 0
	for _, c := range checks() {
		if c.llm && !withLLM {
			fmt.Printf("SKIPPED: %s\n", c.name)
			continue
		}
		if err := runCheck(cmd.Context(), client, c); err != nil {
			fmt.Printf("FAILED: %s: %v\n", c.name, err)
			failed++
			continue
		}
		fmt.Printf("PASSED: %s\n", c.name)
	}

	if failed > 0 {
		return fmt.Errorf("%d check(s) failed", failed)
	}
	return nil
}

func runCheck(ctx context.Context, client *provider.Client, c check) error {
	if ctx == nil {
		ctx = context.Background()
	}

	var (
		body []byte
		err  error
	)
	switch c.method {
	case "POST":
		body, err = client.PostJSON(ctx, baseURL+c.path, c.body)
	default:
		body, err = client.GetJSON(ctx, baseURL+c.path, c.query)
	}
	if err != nil {
		return err
	}
	if !gjson.ValidBytes(body) {
		return fmt.Errorf("response is not JSON")
	}
	if !gjson.GetBytes(body, c.expect).Exists() {
		return fmt.Errorf("response has no %q", c.expect)
	}
	return nil
}
