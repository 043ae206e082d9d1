package culture

import "strings"

// Candidate is the searchable text and metadata of one provider result.
type Candidate struct {
	Title       string
	Content     string
	URL         string
	Area        string
	CountryCode string
}

var (
	artKeywords = []string{"gallery", "museum", "artist", "artwork", "exhibition", "painting", "sculpture", "art centre", "art center"}

	eventKeywords = []string{"festival", "event", "concert", "exhibition", "show", "celebration", "market", "performance"}

	landmarkKeywords = []string{"museum", "gallery", "heritage", "landmark", "historic", "monument", "memorial", "cultural centre", "cultural center", "national park"}

	foodKeywords = []string{"restaurant", "cafe", "café", "food", "cuisine", "dish", "bakery", "pub", "winery", "bush tucker"}
)

// IsRelevant reports whether c is about place and, when keywords are
// given, about the topic. Place matching accepts an Australian country
// code, an area naming Australia, or the place name in the area, title,
// content or URL. It prefers false negatives.
func IsRelevant(c Candidate, place string, keywords []string) bool {
	return matchesLocation(c, place) && matchesTopic(c, keywords)
}

func matchesLocation(c Candidate, place string) bool {
	if strings.EqualFold(c.CountryCode, "AU") {
		return true
	}
	area := strings.ToLower(c.Area)
	if strings.Contains(area, "australia") {
		return true
	}

	p := strings.ToLower(strings.TrimSpace(place))
	if p == "" {
		return false
	}
	if strings.Contains(area, p) ||
		strings.Contains(strings.ToLower(c.Title), p) ||
		strings.Contains(strings.ToLower(c.Content), p) {
		return true
	}
	url := strings.ToLower(c.URL)
	return strings.Contains(url, strings.ReplaceAll(p, " ", "")) ||
		strings.Contains(url, strings.ReplaceAll(p, " ", "-"))
}

func matchesTopic(c Candidate, keywords []string) bool {
	if len(keywords) == 0 {
		return true
	}
	text := strings.ToLower(c.Title + " " + c.Content)
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}
