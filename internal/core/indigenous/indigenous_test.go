package indigenous

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/storymap/internal/config"
	"github.com/agenthands/storymap/internal/llm"
	"github.com/agenthands/storymap/internal/search"
)

type mockLLM struct {
	mu       sync.Mutex
	response string
	err      error
	requests []llm.Request
}

func (m *mockLLM) Generate(ctx context.Context, req llm.Request) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, req)
	return m.response, m.err
}

type searchFunc func(ctx context.Context, req search.Request) (*search.Response, error)

func (f searchFunc) Search(ctx context.Context, req search.Request) (*search.Response, error) {
	return f(ctx, req)
}

var errDown = errors.New("search unavailable")

func failingSearch(ctx context.Context, req search.Request) (*search.Response, error) {
	return nil, errDown
}

func newService(m *mockLLM, s searchFunc) *Service {
	cfg := config.Default()
	return NewService(m, s, cfg.Prompts, cfg.Quiz)
}

func question(q string, answer int) string {
	return `{"question":"` + q + `","options":["a","b","c","d"],"correctAnswer":` + string(rune('0'+answer)) + `,"explanation":"because"}`
}

func TestGenerateQuizTruncatesToCount(t *testing.T) {
	qs := make([]string, 7)
	for i := range qs {
		qs[i] = question("Q"+string(rune('1'+i)), i%4)
	}
	m := &mockLLM{response: "```json\n[" + strings.Join(qs, ",") + "]\n```"}

	quiz, err := newService(m, failingSearch).GenerateQuiz(context.Background(), QuizRequest{
		Location: "Broken Hill", Facts: "The Wiljakali people are the traditional owners.", Count: 5,
	})
	require.NoError(t, err)

	assert.Len(t, quiz.Questions, 5)
	assert.Equal(t, "Q1", quiz.Questions[0].Question)
	assert.Equal(t, "Broken Hill", quiz.Location)

	require.Len(t, m.requests, 1)
	req := m.requests[0]
	assert.Equal(t, float32(0.2), req.Temperature)
	assert.Equal(t, 1200, req.MaxTokens)
	assert.Contains(t, req.Prompt, "The Wiljakali people are the traditional owners.")
	assert.Contains(t, req.Prompt, "medium")
}

func TestGenerateQuizDropsInvalidQuestions(t *testing.T) {
	m := &mockLLM{response: `[
		{"question":"Valid?","options":["a","b","c","d"],"correctAnswer":2},
		{"question":"","options":["a","b","c","d"],"correctAnswer":0},
		{"question":"Three options","options":["a","b","c"],"correctAnswer":0},
		{"question":"Blank option","options":["a","  ","c","d"],"correctAnswer":0},
		{"question":"Out of range","options":["a","b","c","d"],"correctAnswer":4}
	]`}

	quiz, err := newService(m, failingSearch).GenerateQuiz(context.Background(), QuizRequest{Location: "Uluru", Count: 5})
	require.NoError(t, err)
	require.Len(t, quiz.Questions, 1)
	assert.Equal(t, "Valid?", quiz.Questions[0].Question)
	require.NotNil(t, quiz.Questions[0].CorrectAnswer)
	assert.Equal(t, 2, *quiz.Questions[0].CorrectAnswer)
}

func TestGenerateQuizKeepsValidQuestionsBesideTypeErrors(t *testing.T) {
	m := &mockLLM{response: `[
		{"question":"Who are the traditional owners?","options":["a","b","c","d"],"correctAnswer":1,"explanation":"x"},
		{"question":"Wrong type","options":["a","b","c","d"],"correctAnswer":"2","explanation":"x"},
		{"question":"Options as string","options":"a,b,c,d","correctAnswer":0}
	]`}

	quiz, err := newService(m, failingSearch).GenerateQuiz(context.Background(), QuizRequest{Location: "Broken Hill", Count: 5})
	require.NoError(t, err)
	require.Len(t, quiz.Questions, 1)
	assert.Equal(t, "Who are the traditional owners?", quiz.Questions[0].Question)
}

func TestGenerateQuizRequiresCorrectAnswer(t *testing.T) {
	m := &mockLLM{response: `[
		{"question":"No answer","options":["a","b","c","d"],"explanation":"x"},
		{"question":"First option","options":["a","b","c","d"],"correctAnswer":0}
	]`}

	quiz, err := newService(m, failingSearch).GenerateQuiz(context.Background(), QuizRequest{Location: "Uluru", Count: 5})
	require.NoError(t, err)
	require.Len(t, quiz.Questions, 1)
	assert.Equal(t, "First option", quiz.Questions[0].Question)
	assert.Equal(t, 0, *quiz.Questions[0].CorrectAnswer)
}

func TestGenerateQuizAcceptsProseAroundFence(t *testing.T) {
	m := &mockLLM{response: "Here is your quiz:\n```json\n[" + question("Q1", 3) + "]\n```\nGood luck!"}

	quiz, err := newService(m, failingSearch).GenerateQuiz(context.Background(), QuizRequest{Location: "Uluru"})
	require.NoError(t, err)
	require.Len(t, quiz.Questions, 1)
	assert.Equal(t, 3, *quiz.Questions[0].CorrectAnswer)
}

func TestGenerateQuizRejectsNonArray(t *testing.T) {
	m := &mockLLM{response: `{"questions":[]}`}

	_, err := newService(m, failingSearch).GenerateQuiz(context.Background(), QuizRequest{Location: "Uluru"})
	assert.ErrorIs(t, err, ErrMalformedQuiz)
}

func TestGenerateQuizMalformed(t *testing.T) {
	m := &mockLLM{response: "Here are some questions: 1. What is..."}

	_, err := newService(m, failingSearch).GenerateQuiz(context.Background(), QuizRequest{Location: "Uluru"})
	assert.ErrorIs(t, err, ErrMalformedQuiz)
}

func TestGenerateQuizNoValidQuestions(t *testing.T) {
	m := &mockLLM{response: `[{"question":"","options":[],"correctAnswer":9}]`}

	_, err := newService(m, failingSearch).GenerateQuiz(context.Background(), QuizRequest{Location: "Uluru"})
	assert.ErrorIs(t, err, ErrNoValidQuestions)
}

func TestGenerateQuizProviderError(t *testing.T) {
	boom := errors.New("provider down")
	m := &mockLLM{err: boom}

	_, err := newService(m, failingSearch).GenerateQuiz(context.Background(), QuizRequest{Location: "Uluru"})
	assert.ErrorIs(t, err, boom)
}

func TestGroundedQuizUsesLookup(t *testing.T) {
	var got search.Request
	s := func(ctx context.Context, req search.Request) (*search.Response, error) {
		got = req
		return &search.Response{
			Answer:  "The Barkindji people have lived along the Darling River for millennia.",
			Results: []search.Result{{Title: "Barkindji Country", URL: "https://example.org"}},
		}, nil
	}
	m := &mockLLM{response: "[" + question("Who?", 1) + "]"}

	quiz, err := newService(m, s).GroundedQuiz(context.Background(), "Wilcannia")
	require.NoError(t, err)

	assert.Contains(t, got.Query, "Wilcannia")
	assert.Contains(t, got.Query, "culture history traditions")
	assert.Equal(t, "Barkindji Country", quiz.Source)
	assert.Contains(t, m.requests[0].Prompt, "Barkindji people")
	assert.Contains(t, m.requests[0].Prompt, "Create exactly 8")
}

func TestGroundedQuizFallsBackWhenLookupFails(t *testing.T) {
	m := &mockLLM{response: "[" + question("Who?", 1) + "]"}

	quiz, err := newService(m, failingSearch).GroundedQuiz(context.Background(), "Wilcannia")
	require.NoError(t, err)

	assert.Equal(t, "General knowledge", quiz.Source)
	assert.Contains(t, m.requests[0].Prompt, "connection to country")
}

func TestGenericQuizDefaults(t *testing.T) {
	m := &mockLLM{response: "[" + question("Q", 0) + "]"}
	called := false
	s := func(ctx context.Context, req search.Request) (*search.Response, error) {
		called = true
		return nil, errDown
	}

	_, err := newService(m, s).GenericQuiz(context.Background(), "Darwin", "", 0)
	require.NoError(t, err)

	assert.False(t, called)
	assert.Contains(t, m.requests[0].Prompt, "Create exactly 5")
	assert.Contains(t, m.requests[0].Prompt, "medium")
}

func TestKnowledge(t *testing.T) {
	s := func(ctx context.Context, req search.Request) (*search.Response, error) {
		return &search.Response{
			Answer:  "Songlines connect sites across the desert.",
			Results: []search.Result{{Title: "Songlines", URL: "https://example.org/songlines"}},
		}, nil
	}

	k := newService(&mockLLM{}, s).Knowledge(context.Background(), "Alice Springs", "songlines")

	assert.Equal(t, "Songlines connect sites across the desert.", k.Information)
	assert.False(t, k.Fallback)
	require.Len(t, k.Sources, 1)
	assert.Equal(t, "https://example.org/songlines", k.Sources[0].URL)
}

func TestKnowledgeFallback(t *testing.T) {
	k := newService(&mockLLM{}, failingSearch).Knowledge(context.Background(), "Alice Springs", "songlines")

	assert.True(t, k.Fallback)
	assert.Equal(t, "Indigenous knowledge about Alice Springs includes traditional land management, cultural practices, and connection to country.", k.Information)
	assert.NotNil(t, k.Sources)
}

func TestLearningModules(t *testing.T) {
	s := func(ctx context.Context, req search.Request) (*search.Response, error) {
		return &search.Response{Results: []search.Result{
			{Title: "Caring for Country", Content: strings.Repeat("x", 200), URL: "https://example.org/country"},
		}}, nil
	}

	modules := newService(&mockLLM{}, s).LearningModules(context.Background(), "Cairns")
	require.Len(t, modules, 1)
	assert.Equal(t, "Caring for Country", modules[0].Title)
	assert.Equal(t, 153, len(modules[0].Description))
}

func TestLearningModulesFallback(t *testing.T) {
	modules := newService(&mockLLM{}, failingSearch).LearningModules(context.Background(), "Cairns")
	require.Len(t, modules, 2)
	assert.Equal(t, "Traditional Land Management", modules[0].Title)
	assert.Equal(t, "Cultural Protocols", modules[1].Title)
}
