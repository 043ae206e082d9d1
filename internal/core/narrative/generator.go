// Package narrative produces creative and fact-grounded stories about places.
package narrative

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/agenthands/storymap/internal/config"
	"github.com/agenthands/storymap/internal/core/model"
	"github.com/agenthands/storymap/internal/llm"
	"github.com/agenthands/storymap/internal/logging"
	"github.com/agenthands/storymap/internal/metrics"
	"github.com/agenthands/storymap/internal/search"
)

// MinContentLength is the shortest grounded narrative accepted from the
// provider.
const MinContentLength = 50

var (
	ErrContentTooShort = errors.New("generated content too short")
	ErrNoStories       = errors.New("failed to generate any factual stories with available data")
)

type Searcher interface {
	Search(ctx context.Context, req search.Request) (*search.Response, error)
}

type Generator struct {
	LLM     llm.LLMClient
	Search  Searcher
	Prompts config.Prompts
	now     func() time.Time
}

func NewGenerator(client llm.LLMClient, s Searcher, prompts config.Prompts) *Generator {
	return &Generator{
		LLM:     client,
		Search:  s,
		Prompts: prompts,
		now:     time.Now,
	}
}

// GenerateNarrative writes a creative story. It never fails: provider
// errors produce a canned story flagged as a fallback.
func (g *Generator) GenerateNarrative(ctx context.Context, location, theme string) model.Story {
	if theme == "" {
		theme = "outback adventure"
	}

	text, err := g.LLM.Generate(ctx, llm.Request{
		System:      g.Prompts.NarrativeSystem,
		Prompt:      fmt.Sprintf(g.Prompts.Narrative, location, theme),
		MaxTokens:   600,
		Temperature: 0.8,
		TopP:        0.9,
	})
	if err == nil && strings.TrimSpace(text) == "" {
		err = ErrContentTooShort
	}
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("kind", string(llm.KindOf(err))).
			Str("location", location).Msg("narrative generation failed, serving fallback")
		metrics.RecordFallback("narrative")
		return g.fallbackStory(location, theme)
	}

	title, content := splitNarrative(text, location)
	return model.Story{
		Title:     title,
		Content:   content,
		Theme:     model.Theme(theme),
		Location:  location,
		Timestamp: g.now(),
	}
}

func (g *Generator) fallbackStory(location, theme string) model.Story {
	return model.Story{
		Title: fmt.Sprintf("Tales from %s", location),
		Content: fmt.Sprintf("The red earth around %s holds stories older than any map. "+
			"Travellers who pause here find wide skies, long roads and locals who measure distance in hours rather than kilometres. "+
			"Ask around and someone will tell you about the land, the seasons and the people who have cared for this country for tens of thousands of years.",
			location),
		Theme:     model.Theme(theme),
		Location:  location,
		Timestamp: g.now(),
		Fallback:  true,
	}
}

// GenerateContextualNarrative writes a story restricted to facts. Provider
// errors and responses under MinContentLength are returned as errors.
func (g *Generator) GenerateContextualNarrative(ctx context.Context, location string, theme model.Theme, facts string) (model.Story, error) {
	text, err := g.LLM.Generate(ctx, llm.Request{
		System:      g.Prompts.ContextualSystem,
		Prompt:      fmt.Sprintf(g.Prompts.Contextual, location, theme, facts),
		MaxTokens:   300,
		Temperature: 0.3,
	})
	if err != nil {
		return model.Story{}, fmt.Errorf("contextual narrative for %s: %w", theme, err)
	}
	text = strings.TrimSpace(text)
	if len(text) < MinContentLength {
		return model.Story{}, fmt.Errorf("%w: %d chars", ErrContentTooShort, len(text))
	}

	title, content := splitContextual(text, location)
	return model.Story{
		Title:     title,
		Content:   content,
		Theme:     theme,
		Location:  location,
		Timestamp: g.now(),
	}, nil
}

// GenerateCharacter writes a short character profile for a resident of
// location.
func (g *Generator) GenerateCharacter(ctx context.Context, location, characterType string) (*model.Character, error) {
	if characterType == "" {
		characterType = "local resident"
	}
	text, err := g.LLM.Generate(ctx, llm.Request{
		System:      g.Prompts.NarrativeSystem,
		Prompt:      fmt.Sprintf(g.Prompts.Character, characterType, location),
		MaxTokens:   400,
		Temperature: 0.7,
	})
	if err != nil {
		return nil, fmt.Errorf("generate character: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrContentTooShort
	}
	return &model.Character{
		Character: strings.TrimSpace(text),
		Location:  location,
		Type:      characterType,
	}, nil
}
