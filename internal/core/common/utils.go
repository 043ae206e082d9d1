package common

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/goccy/go-json"
)

var ErrEmptyResponse = errors.New("empty response")

// StripCodeFence returns the body of the first markdown fence (``` or
// ```json) in an LLM response, dropping any prose around it. A response
// without a fence is returned trimmed.
func StripCodeFence(response string) string {
	s := strings.TrimSpace(response)
	_, after, found := strings.Cut(s, "```")
	if !found {
		return s
	}
	if nl := strings.IndexByte(after, '\n'); nl >= 0 {
		// drop the language tag line, e.g. "json"
		if tag := strings.TrimSpace(after[:nl]); !strings.ContainsAny(tag, "[{") {
			after = after[nl+1:]
		}
	}
	body, _, _ := strings.Cut(after, "```")
	return strings.TrimSpace(body)
}

// ParseJSON strips code fences from an LLM response and unmarshals the rest
// into T. Anything other than a single JSON document is an error.
func ParseJSON[T any](response string) (T, error) {
	var zero T

	cleaned := StripCodeFence(response)
	if cleaned == "" {
		return zero, ErrEmptyResponse
	}

	var result T
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		return zero, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}

	return result, nil
}

// Truncate shortens s to at most n bytes plus "..." without splitting a
// UTF-8 sequence.
func Truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
