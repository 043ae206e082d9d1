package narrative

import (
	"context"
	"fmt"

	"github.com/agenthands/storymap/internal/core/gather"
	"github.com/agenthands/storymap/internal/core/model"
	"github.com/agenthands/storymap/internal/logging"
	"github.com/agenthands/storymap/internal/search"
)

// MinFactLength is the shortest fact summary that becomes a story context.
const MinFactLength = 50

type factLookup struct {
	theme  model.Theme
	title  string
	query  string
	render func(location string, resp *search.Response) string
}

var factLookups = []factLookup{
	{
		theme: model.ThemeHistorical,
		title: "Historical Background",
		query: "%s Australia history settlement founding historical events timeline",
		render: func(loc string, r *search.Response) string {
			return fmt.Sprintf("Historical facts about %s: %s. Sources: %s", loc, r.Answer, orDefault(r.Titles(), "Historical records"))
		},
	},
	{
		theme: model.ThemeCultural,
		title: "Cultural Heritage",
		query: "%s Australia Aboriginal indigenous culture traditions local customs community",
		render: func(loc string, r *search.Response) string {
			return fmt.Sprintf("Cultural information about %s: %s. Sources: %s", loc, r.Answer, orDefault(r.Titles(), "Cultural records"))
		},
	},
	{
		theme: model.ThemeEnvironmental,
		title: "Environmental Context",
		query: "%s Australia climate environment weather patterns natural landscape",
		render: func(loc string, r *search.Response) string {
			return fmt.Sprintf("Environmental and climate information about %s: %s", loc, r.Answer)
		},
	},
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// GenerateStories looks up facts about location and writes one grounded
// story per usable fact set. Failed lookups and failed stories are
// dropped; it errors only when no story could be written.
func (g *Generator) GenerateStories(ctx context.Context, location string) (*model.StoriesResponse, error) {
	contexts, dataContext := g.storyContexts(ctx, location)

	fns := make([]func(context.Context) (model.Story, error), len(contexts))
	for i, sc := range contexts {
		fns[i] = func(ctx context.Context) (model.Story, error) {
			story, err := g.GenerateContextualNarrative(ctx, location, sc.Theme, sc.FactText)
			if err != nil {
				return model.Story{}, err
			}
			story.ID = i + 1
			if story.Title == "" {
				story.Title = sc.Title
			}
			return story, nil
		}
	}

	var stories []model.Story
	for i, r := range gather.Settle(ctx, fns...) {
		if r.Err != nil {
			logging.Ctx(ctx).Warn().Err(r.Err).Str("theme", string(contexts[i].Theme)).
				Str("location", location).Msg("story skipped")
			continue
		}
		stories = append(stories, r.Value)
	}
	if len(stories) == 0 {
		return nil, ErrNoStories
	}

	return &model.StoriesResponse{
		Location:    location,
		Stories:     stories,
		DataContext: dataContext,
		Timestamp:   g.now(),
	}, nil
}

func (g *Generator) storyContexts(ctx context.Context, location string) ([]model.StoryContext, model.DataContext) {
	fns := make([]func(context.Context) (*search.Response, error), len(factLookups))
	for i, l := range factLookups {
		fns[i] = func(ctx context.Context) (*search.Response, error) {
			return g.Search.Search(ctx, search.Request{
				Query:         fmt.Sprintf(l.query, location),
				Depth:         search.DepthAdvanced,
				IncludeAnswer: true,
				MaxResults:    3,
			})
		}
	}

	availability := make([]model.Availability, len(factLookups))
	var contexts []model.StoryContext
	for i, r := range gather.Settle(ctx, fns...) {
		availability[i] = model.Limited
		if r.Err != nil {
			logging.Ctx(ctx).Warn().Err(r.Err).Str("theme", string(factLookups[i].theme)).Msg("fact lookup failed")
			continue
		}
		if r.Value == nil || len(r.Value.Answer) <= MinFactLength {
			continue
		}
		availability[i] = model.Available
		contexts = append(contexts, model.StoryContext{
			Theme:    factLookups[i].theme,
			Title:    factLookups[i].title,
			FactText: factLookups[i].render(location, r.Value),
		})
	}

	if len(contexts) == 0 {
		contexts = append(contexts, model.StoryContext{
			Theme: model.ThemeGeneral,
			Title: "Regional Overview",
			FactText: fmt.Sprintf("General verified information about %s, Australia, including its geographic location, "+
				"administrative details, and regional characteristics. Focus on documented facts about the area's "+
				"significance and role in the region.", location),
		})
	}

	return contexts, model.DataContext{
		Historical: availability[0],
		Cultural:   availability[1],
		Climate:    availability[2],
	}
}
