package model

import "time"

type Theme string

const (
	ThemeHistorical    Theme = "historical"
	ThemeCultural      Theme = "cultural"
	ThemeEnvironmental Theme = "environmental"
	ThemeGeneral       Theme = "general"
)

// Availability reports whether a provider produced usable data.
type Availability string

const (
	Available Availability = "Available"
	NoResults Availability = "No Results"
	Limited   Availability = "Limited"
)

// StoryContext is one grounded input to the factual story pipeline.
type StoryContext struct {
	Theme    Theme
	Title    string
	FactText string
}

type Story struct {
	ID        int       `json:"id,omitempty"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Theme     Theme     `json:"theme"`
	Location  string    `json:"location"`
	Timestamp time.Time `json:"timestamp"`
	Fallback  bool      `json:"fallback,omitempty"`
}

type DataContext struct {
	Historical Availability `json:"historical"`
	Cultural   Availability `json:"cultural"`
	Climate    Availability `json:"climate"`
}

type StoriesResponse struct {
	Location    string      `json:"location"`
	Stories     []Story     `json:"stories"`
	DataContext DataContext `json:"dataContext"`
	Timestamp   time.Time   `json:"timestamp"`
}

type Character struct {
	Character string `json:"character"`
	Location  string `json:"location"`
	Type      string `json:"type"`
}
