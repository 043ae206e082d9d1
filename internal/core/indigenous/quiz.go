// Package indigenous generates quizzes and learning material about
// Aboriginal and Torres Strait Islander knowledge connected to a place.
package indigenous

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"

	"github.com/agenthands/storymap/internal/config"
	"github.com/agenthands/storymap/internal/core/common"
	"github.com/agenthands/storymap/internal/core/model"
	"github.com/agenthands/storymap/internal/llm"
	"github.com/agenthands/storymap/internal/logging"
	"github.com/agenthands/storymap/internal/search"
)

var (
	ErrMalformedQuiz    = errors.New("quiz response is not a JSON array of questions")
	ErrNoValidQuestions = errors.New("quiz response contained no valid questions")
)

const (
	DefaultDifficulty = "medium"
	DefaultCount      = 5
)

type Searcher interface {
	Search(ctx context.Context, req search.Request) (*search.Response, error)
}

type Service struct {
	LLM      llm.LLMClient
	Search   Searcher
	Prompts  config.Prompts
	Quiz     config.QuizConfig
	validate *validator.Validate
}

func NewService(client llm.LLMClient, s Searcher, prompts config.Prompts, quiz config.QuizConfig) *Service {
	return &Service{
		LLM:      client,
		Search:   s,
		Prompts:  prompts,
		Quiz:     quiz,
		validate: validator.New(),
	}
}

type QuizRequest struct {
	Location   string
	Facts      string
	Sources    string
	Difficulty string
	Count      int
}

// GenerateQuiz asks the provider for Count questions grounded in
// req.Facts. Invalid questions are dropped; the rest are truncated to
// Count.
func (s *Service) GenerateQuiz(ctx context.Context, req QuizRequest) (*model.Quiz, error) {
	if req.Difficulty == "" {
		req.Difficulty = DefaultDifficulty
	}
	if req.Count <= 0 {
		req.Count = DefaultCount
	}

	text, err := s.LLM.Generate(ctx, llm.Request{
		System:      s.Prompts.QuizSystem,
		Prompt:      fmt.Sprintf(s.Prompts.Quiz, req.Count, req.Location, req.Difficulty, req.Facts),
		MaxTokens:   1200,
		Temperature: 0.2,
	})
	if err != nil {
		return nil, fmt.Errorf("generate quiz for %s: %w", req.Location, err)
	}

	raw, err := common.ParseJSON[[]json.RawMessage](text)
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Str("location", req.Location).Str("raw", text).Msg("malformed quiz response")
		return nil, fmt.Errorf("%w: %v", ErrMalformedQuiz, err)
	}

	questions := make([]model.QuizQuestion, 0, len(raw))
	for i, elem := range raw {
		q, err := s.decodeQuestion(elem)
		if err != nil {
			logging.Ctx(ctx).Debug().Err(err).Int("index", i).Msg("dropping invalid quiz question")
			continue
		}
		questions = append(questions, q)
		if len(questions) == req.Count {
			break
		}
	}
	if len(questions) == 0 {
		return nil, ErrNoValidQuestions
	}

	return &model.Quiz{
		Questions: questions,
		Location:  req.Location,
		Source:    req.Sources,
	}, nil
}

// decodeQuestion decodes and validates one element of the quiz array.
func (s *Service) decodeQuestion(elem json.RawMessage) (model.QuizQuestion, error) {
	var q model.QuizQuestion
	if err := json.Unmarshal(elem, &q); err != nil {
		return model.QuizQuestion{}, err
	}
	q = normalize(q)
	if err := s.validate.Struct(q); err != nil {
		return model.QuizQuestion{}, err
	}
	return q, nil
}

func normalize(q model.QuizQuestion) model.QuizQuestion {
	q.Question = strings.TrimSpace(q.Question)
	q.Explanation = strings.TrimSpace(q.Explanation)
	opts := make([]string, len(q.Options))
	for i, o := range q.Options {
		opts[i] = strings.TrimSpace(o)
	}
	q.Options = opts
	return q
}

// GroundedQuiz builds a quiz from an Indigenous culture lookup for
// location. A failed lookup falls back to canned information.
func (s *Service) GroundedQuiz(ctx context.Context, location string) (*model.Quiz, error) {
	k := s.Knowledge(ctx, location, "culture history traditions")

	sources := "General knowledge"
	if len(k.Sources) > 0 {
		titles := make([]string, 0, len(k.Sources))
		for _, src := range k.Sources {
			if src.Title != "" {
				titles = append(titles, src.Title)
			}
		}
		if len(titles) > 0 {
			sources = strings.Join(titles, ", ")
		}
	}

	return s.GenerateQuiz(ctx, QuizRequest{
		Location:   location,
		Facts:      k.Information,
		Sources:    sources,
		Difficulty: DefaultDifficulty,
		Count:      s.Quiz.GroundedCount,
	})
}

// GenericQuiz builds a quiz without a fact lookup.
func (s *Service) GenericQuiz(ctx context.Context, location, difficulty string, count int) (*model.Quiz, error) {
	if count <= 0 {
		count = s.Quiz.GenericCount
	}
	return s.GenerateQuiz(ctx, QuizRequest{
		Location: location,
		Facts: fmt.Sprintf("General, widely documented knowledge about Aboriginal and Torres Strait Islander peoples, "+
			"Country, languages, land management and cultural protocols relevant to %s. "+
			"Avoid naming specific sacred sites or restricted knowledge.", location),
		Sources:    "General knowledge",
		Difficulty: difficulty,
		Count:      count,
	})
}
