package narrative

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/storymap/internal/core/model"
	"github.com/agenthands/storymap/internal/llm"
	"github.com/agenthands/storymap/internal/search"
)

var historyAnswer = &search.Response{
	Answer: "Broken Hill was founded in 1883 after Charles Rasp discovered a silver, lead and zinc lode; it became the birthplace of BHP.",
	Results: []search.Result{
		{Title: "History of Broken Hill", URL: "https://example.org/bh"},
	},
}

func TestGenerateStoriesOnlyHistoricalAvailable(t *testing.T) {
	s := &MockSearcher{
		Answers: map[string]*search.Response{"history settlement": historyAnswer},
		Err:     errors.New("search unavailable"),
	}
	m := &MockLLM{Response: silverStory}
	g := newGenerator(m, s)

	resp, err := g.GenerateStories(context.Background(), "Broken Hill")
	require.NoError(t, err)

	require.Len(t, resp.Stories, 1)
	story := resp.Stories[0]
	assert.Equal(t, 1, story.ID)
	assert.Equal(t, model.ThemeHistorical, story.Theme)
	assert.Equal(t, "Broken Hill", story.Location)

	assert.Equal(t, model.Available, resp.DataContext.Historical)
	assert.Equal(t, model.Limited, resp.DataContext.Cultural)
	assert.Equal(t, model.Limited, resp.DataContext.Climate)

	require.Len(t, m.Requests, 1)
	assert.Contains(t, m.Requests[0].Prompt, "Historical facts about Broken Hill: Broken Hill was founded in 1883")
	assert.Contains(t, m.Requests[0].Prompt, "Sources: History of Broken Hill")
}

func TestGenerateStoriesShortSummaryIsLimited(t *testing.T) {
	s := &MockSearcher{Answers: map[string]*search.Response{
		"history settlement": historyAnswer,
		"Aboriginal":         {Answer: "Barkindji country."},
	}, Err: errors.New("nope")}
	g := newGenerator(&MockLLM{Response: silverStory}, s)

	resp, err := g.GenerateStories(context.Background(), "Broken Hill")
	require.NoError(t, err)
	assert.Len(t, resp.Stories, 1)
	assert.Equal(t, model.Limited, resp.DataContext.Cultural)
}

func TestGenerateStoriesNoFactsUsesRegionalOverview(t *testing.T) {
	s := &MockSearcher{Err: errors.New("search unavailable")}
	m := &MockLLM{Response: silverStory}
	g := newGenerator(m, s)

	resp, err := g.GenerateStories(context.Background(), "Tibooburra")
	require.NoError(t, err)

	require.Len(t, resp.Stories, 1)
	assert.Equal(t, model.ThemeGeneral, resp.Stories[0].Theme)
	assert.Contains(t, m.Requests[0].Prompt, "General verified information about Tibooburra")
}

func TestGenerateStoriesDropsFailedBranches(t *testing.T) {
	s := &MockSearcher{Answers: map[string]*search.Response{
		"history settlement": historyAnswer,
		"Aboriginal":         {Answer: strings.Repeat("The Wilyakali and Barkindji peoples are the traditional owners. ", 2)},
		"climate":            {Answer: strings.Repeat("Broken Hill has a hot desert climate with low rainfall. ", 2)},
	}}
	m := &MockLLM{Respond: func(req llm.Request) (string, error) {
		if strings.Contains(req.Prompt, "Cultural information") {
			return "", &llm.ProviderError{Kind: llm.KindRateLimited, Err: errors.New("429")}
		}
		return silverStory, nil
	}}
	g := newGenerator(m, s)

	resp, err := g.GenerateStories(context.Background(), "Broken Hill")
	require.NoError(t, err)

	require.Len(t, resp.Stories, 2)
	assert.Equal(t, model.ThemeHistorical, resp.Stories[0].Theme)
	assert.Equal(t, 1, resp.Stories[0].ID)
	assert.Equal(t, model.ThemeEnvironmental, resp.Stories[1].Theme)
	assert.Equal(t, 3, resp.Stories[1].ID)
	assert.Equal(t, model.Available, resp.DataContext.Cultural)
}

func TestGenerateStoriesAllFail(t *testing.T) {
	s := &MockSearcher{Answers: map[string]*search.Response{"history settlement": historyAnswer}}
	g := newGenerator(&MockLLM{Response: "too short"}, s)

	_, err := g.GenerateStories(context.Background(), "Broken Hill")
	assert.ErrorIs(t, err, ErrNoStories)
}
