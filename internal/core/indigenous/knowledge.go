package indigenous

import (
	"context"
	"fmt"

	"github.com/agenthands/storymap/internal/core/common"
	"github.com/agenthands/storymap/internal/core/model"
	"github.com/agenthands/storymap/internal/logging"
	"github.com/agenthands/storymap/internal/metrics"
	"github.com/agenthands/storymap/internal/search"
)

var fallbackModules = []model.LearningModule{
	{Title: "Traditional Land Management", Description: "Learn about indigenous land care practices"},
	{Title: "Cultural Protocols", Description: "Understanding respectful cultural engagement"},
}

// Knowledge looks up Indigenous knowledge about topic at location. Lookup
// failures return canned information flagged as a fallback.
func (s *Service) Knowledge(ctx context.Context, location, topic string) *model.Knowledge {
	resp, err := s.Search.Search(ctx, search.Request{
		Query:         fmt.Sprintf("Aboriginal indigenous culture %s Australia %s traditional knowledge", location, topic),
		Depth:         search.DepthAdvanced,
		IncludeAnswer: true,
		MaxResults:    5,
	})
	if err == nil && (resp == nil || resp.Answer == "") {
		err = search.ErrEmptyResponse
	}
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("location", location).Msg("indigenous knowledge lookup failed, using fallback")
		metrics.RecordFallback("indigenous")
		return &model.Knowledge{
			Location: location,
			Topic:    topic,
			Information: fmt.Sprintf("Indigenous knowledge about %s includes traditional land management, "+
				"cultural practices, and connection to country.", location),
			Sources:  []model.Source{},
			Fallback: true,
		}
	}

	return &model.Knowledge{
		Location:    location,
		Topic:       topic,
		Information: resp.Answer,
		Sources:     resp.Sources(),
	}
}

// LearningModules maps education search results for location to learning
// modules.
func (s *Service) LearningModules(ctx context.Context, location string) []model.LearningModule {
	resp, err := s.Search.Search(ctx, search.Request{
		Query:      fmt.Sprintf("Aboriginal education resources %s Australia cultural learning modules", location),
		MaxResults: 5,
	})
	if err == nil && (resp == nil || len(resp.Results) == 0) {
		err = search.ErrEmptyResponse
	}
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("location", location).Msg("learning module lookup failed, using fallback")
		metrics.RecordFallback("indigenous")
		return append([]model.LearningModule(nil), fallbackModules...)
	}

	modules := make([]model.LearningModule, 0, len(resp.Results))
	for _, r := range resp.Results {
		modules = append(modules, model.LearningModule{
			Title:       r.Title,
			Description: common.Truncate(r.Content, 150),
			URL:         r.URL,
		})
	}
	return modules
}
