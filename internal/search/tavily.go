// Package search is a client for the Tavily web search and answer API.
package search

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/agenthands/storymap/internal/config"
	"github.com/agenthands/storymap/internal/core/model"
	"github.com/agenthands/storymap/internal/provider"
)

var (
	ErrNotConfigured = errors.New("search API key is not configured")
	ErrEmptyResponse = errors.New("search returned no response")
)

const (
	DepthBasic    = "basic"
	DepthAdvanced = "advanced"
)

type Request struct {
	Query         string
	Depth         string
	IncludeAnswer bool
	MaxResults    int
}

type Result struct {
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Content string  `json:"content"`
	Score   float64 `json:"score"`
}

type Response struct {
	Query   string   `json:"query"`
	Answer  string   `json:"answer"`
	Results []Result `json:"results"`
}

// Sources converts the results into the source list returned to clients.
func (r *Response) Sources() []model.Source {
	out := make([]model.Source, 0, len(r.Results))
	for _, res := range r.Results {
		out = append(out, model.Source{Title: res.Title, URL: res.URL, Content: res.Content})
	}
	return out
}

// Titles joins the result titles with ", ".
func (r *Response) Titles() string {
	titles := make([]string, 0, len(r.Results))
	for _, res := range r.Results {
		if res.Title != "" {
			titles = append(titles, res.Title)
		}
	}
	return strings.Join(titles, ", ")
}

type tavilyRequest struct {
	APIKey            string `json:"api_key"`
	Query             string `json:"query"`
	SearchDepth       string `json:"search_depth"`
	IncludeAnswer     bool   `json:"include_answer"`
	IncludeImages     bool   `json:"include_images"`
	IncludeRawContent bool   `json:"include_raw_content"`
	MaxResults        int    `json:"max_results"`
}

type Client struct {
	http    *provider.Client
	apiKey  string
	baseURL string
}

func New(cfg config.SearchConfig, timeout time.Duration) *Client {
	return &Client{
		http:    provider.New("tavily", timeout, ""),
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
	}
}

func (c *Client) Search(ctx context.Context, req Request) (*Response, error) {
	if c.apiKey == "" {
		return nil, ErrNotConfigured
	}
	if req.Depth == "" {
		req.Depth = DepthBasic
	}
	if req.MaxResults <= 0 {
		req.MaxResults = 5
	}

	body, err := c.http.PostJSON(ctx, c.baseURL+"/search", tavilyRequest{
		APIKey:        c.apiKey,
		Query:         req.Query,
		SearchDepth:   req.Depth,
		IncludeAnswer: req.IncludeAnswer,
		MaxResults:    req.MaxResults,
	})
	if err != nil {
		return nil, err
	}

	var resp Response
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	return &resp, nil
}
