package model

import "time"

type ClimateSnapshot struct {
	Temperature float64 `json:"temperature"`
	Rainfall    float64 `json:"rainfall"`
	WindSpeed   float64 `json:"wind_speed"`
	Fallback    bool    `json:"fallback,omitempty"`
}

type ClimateChanges struct {
	Temperature float64 `json:"temperature"`
	Rainfall    float64 `json:"rainfall"`
	WindSpeed   float64 `json:"wind_speed"`
}

type ClimateComparison struct {
	Past    ClimateSnapshot `json:"past"`
	Future  ClimateSnapshot `json:"future"`
	Changes ClimateChanges  `json:"changes"`
}

type ClimateData struct {
	Latitude  float64         `json:"lat"`
	Longitude float64         `json:"lon"`
	Timeframe string          `json:"timeframe"`
	Snapshot  ClimateSnapshot `json:"data"`
	Summary   string          `json:"summary,omitempty"`
	Sources   []Source        `json:"sources,omitempty"`
}

type ClimateEvent struct {
	ID          string  `json:"id"`
	Type        string  `json:"type"`
	Latitude    float64 `json:"lat"`
	Longitude   float64 `json:"lon"`
	Location    string  `json:"location"`
	State       string  `json:"state"`
	Count       int     `json:"count"`
	Severity    string  `json:"severity"`
	Description string  `json:"description"`
}

// ClimateEventReport is a climate event found by searching for a place.
type ClimateEventReport struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Type        string `json:"type"`
	URL         string `json:"url"`
}

type ClimateEventsResponse struct {
	Events    []ClimateEvent `json:"events"`
	Total     int            `json:"total"`
	ByType    map[string]int `json:"byType"`
	Timestamp time.Time      `json:"timestamp"`
}
