package narrative

import (
	"fmt"
	"strings"
)

const (
	maxNarrativeTitle  = 50
	maxContextualTitle = 80
)

func cleanTitle(line string) string {
	s := strings.TrimSpace(line)
	s = strings.TrimLeft(s, "#* ")
	s = strings.TrimRight(s, "* ")
	for _, prefix := range []string{"title:", "story:"} {
		if len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix) {
			s = strings.TrimSpace(s[len(prefix):])
		}
	}
	return strings.TrimSpace(strings.Trim(s, `"'“”*`))
}

func nonEmptyLines(text string) []string {
	var lines []string
	for _, l := range strings.Split(text, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

// splitNarrative derives a title from the first line of a creative story.
// Long first lines are treated as prose and the whole text is kept.
func splitNarrative(text, location string) (title, content string) {
	lines := nonEmptyLines(text)
	if len(lines) == 0 {
		return fmt.Sprintf("Tales from %s", location), ""
	}

	first := cleanTitle(lines[0])
	switch {
	case first == "":
		return fmt.Sprintf("Tales from %s", location), strings.TrimSpace(text)
	case len(first) > maxNarrativeTitle:
		return fmt.Sprintf("Stories from %s", location), strings.TrimSpace(text)
	case len(lines) == 1:
		return first, strings.TrimSpace(text)
	}
	return first, strings.Join(lines[1:], "\n\n")
}

// splitContextual derives a title from the first non-empty line of a
// grounded narrative and returns the remaining lines as content.
func splitContextual(text, location string) (title, content string) {
	lines := nonEmptyLines(text)
	if len(lines) == 0 {
		return fmt.Sprintf("Facts about %s", location), ""
	}

	first := cleanTitle(lines[0])
	if first == "" || len(first) >= maxContextualTitle {
		return fmt.Sprintf("Facts about %s", location), strings.TrimSpace(text)
	}
	if len(lines) == 1 {
		return first, strings.TrimSpace(text)
	}
	return first, strings.Join(lines[1:], "\n\n")
}
