package model

import "strings"

type Location struct {
	DisplayName string            `json:"display_name"`
	Latitude    float64           `json:"lat"`
	Longitude   float64           `json:"lon"`
	Type        string            `json:"type,omitempty"`
	Importance  float64           `json:"importance,omitempty"`
	BoundingBox []float64         `json:"boundingbox,omitempty"`
	Address     map[string]string `json:"address,omitempty"`
}

// PlaceName is the first comma-separated part of a display name,
// e.g. "Broken Hill" for "Broken Hill, New South Wales, Australia".
func PlaceName(displayName string) string {
	name, _, _ := strings.Cut(displayName, ",")
	return strings.TrimSpace(name)
}
