package model

import (
	"fmt"
	"time"
)

type Item struct {
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Description string   `json:"description"`
	Date        string   `json:"date,omitempty"`
	Location    string   `json:"location,omitempty"`
	URL         string   `json:"url,omitempty"`
	Genres      []string `json:"genres,omitempty"`
}

// Category is one of the four insight groups. HasResults is false when the
// summary is the "no local results" sentinel.
type Category struct {
	Summary    string `json:"summary"`
	HasResults bool   `json:"hasResults"`
	Items      []Item `json:"items"`
}

// EmptyCategory builds the no-results state for a category such as "music".
func EmptyCategory(category, place string) Category {
	return Category{
		Summary:    fmt.Sprintf("No local %s results found for %s — explore nearby regions instead.", category, place),
		HasResults: false,
		Items:      []Item{},
	}
}

type CulturalInsights struct {
	Music   Category `json:"music"`
	Art     Category `json:"art"`
	Food    Category `json:"food"`
	Culture Category `json:"culture"`
}

type Validation struct {
	MusicResults int `json:"musicResults"`
	ArtResults   int `json:"artResults"`
	TotalResults int `json:"totalResults"`
}

type InsightsMetadata struct {
	Location   string                  `json:"location"`
	Sources    map[string]Availability `json:"sources"`
	Validation Validation              `json:"validation"`
	Timestamp  time.Time               `json:"timestamp"`
}

type InsightsResponse struct {
	Insights CulturalInsights `json:"insights"`
	Metadata InsightsMetadata `json:"metadata"`
}
