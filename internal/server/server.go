// Package server exposes StoryMap over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agenthands/storymap/internal/config"
	"github.com/agenthands/storymap/internal/core/model"
	"github.com/agenthands/storymap/internal/logging"
)

// Service is everything the HTTP layer needs from the application.
type Service interface {
	SearchLocations(ctx context.Context, query string) ([]model.Location, error)
	LocationDetails(ctx context.Context, lat, lon float64) (*model.Location, error)

	Story(ctx context.Context, location, theme string) model.Story
	Stories(ctx context.Context, location string) (*model.StoriesResponse, error)
	Character(ctx context.Context, location, characterType string) (*model.Character, error)

	CulturalInsights(ctx context.Context, location string) *model.InsightsResponse

	ClimateData(ctx context.Context, lat, lon float64, timeframe string) *model.ClimateData
	ClimateComparison(ctx context.Context, lat, lon float64) *model.ClimateComparison
	ClimateEvents(ctx context.Context) *model.ClimateEventsResponse
	SearchClimateEvents(ctx context.Context, location string) ([]model.ClimateEventReport, error)

	IndigenousKnowledge(ctx context.Context, location, topic string) *model.Knowledge
	GroundedQuiz(ctx context.Context, location string) (*model.Quiz, error)
	GenericQuiz(ctx context.Context, location, difficulty string, count int) (*model.Quiz, error)
	LearningModules(ctx context.Context, location string) []model.LearningModule

	CurrentWeather(ctx context.Context, lat, lon float64) model.Weather
}

type Server struct {
	svc Service
	cfg config.ServerConfig
}

func NewServer(svc Service, cfg config.ServerConfig) *Server {
	return &Server{svc: svc, cfg: cfg}
}

func (s *Server) SetupRouter() *gin.Engine {
	if s.cfg.Mode != "" {
		gin.SetMode(s.cfg.Mode)
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestID(), accessLog(), observe(), corsMiddleware(s.cfg.AllowedOrigins))

	r.GET("/health", s.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.GET("/location/search", s.SearchLocations)
		api.GET("/location/details/:lat/:lon", s.LocationDetails)

		api.POST("/narrative/story", s.Story)
		api.POST("/narrative/stories", s.Stories)
		api.POST("/narrative/character", s.Character)

		api.GET("/culture/insights", s.CulturalInsights)

		api.GET("/climate/data", s.ClimateData)
		api.GET("/climate/comparison", s.ClimateComparison)
		api.GET("/climate/events", s.ClimateEvents)
		api.GET("/climate/events/search", s.SearchClimateEvents)

		api.GET("/indigenous/knowledge", s.IndigenousKnowledge)
		api.GET("/indigenous/quiz", s.GroundedQuiz)
		api.POST("/indigenous/quiz", s.GenericQuiz)
		api.GET("/indigenous/modules", s.LearningModules)

		api.GET("/weather", s.Weather)
	}

	return r
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	port := s.cfg.Port
	if port == "" {
		port = "5000"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           s.SetupRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", srv.Addr).Msg("starting server")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	logging.Info().Msg("shutting down server")
	return srv.Shutdown(shutdownCtx)
}
