package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/agenthands/storymap/internal/core/location"
	"github.com/agenthands/storymap/internal/geocode"
	"github.com/agenthands/storymap/internal/logging"
)

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

func serverError(c *gin.Context, err error, msg string) {
	logging.Ctx(c.Request.Context()).Error().Err(err).Str("path", c.FullPath()).Msg(msg)
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
}

// requiredQuery returns the trimmed query parameter key, or "" after
// writing a 400.
func requiredQuery(c *gin.Context, key, msg string) string {
	v := strings.TrimSpace(c.Query(key))
	if v == "" {
		badRequest(c, msg)
	}
	return v
}

type coordinates struct {
	Lat *float64 `form:"lat" binding:"required"`
	Lon *float64 `form:"lon" binding:"required"`
}

func bindCoordinates(c *gin.Context) (float64, float64, bool) {
	var q coordinates
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, "Latitude and longitude are required")
		return 0, 0, false
	}
	return *q.Lat, *q.Lon, true
}

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
	})
}

func (s *Server) SearchLocations(c *gin.Context) {
	query := requiredQuery(c, "query", "Query parameter is required")
	if query == "" {
		return
	}
	locs, err := s.svc.SearchLocations(c.Request.Context(), query)
	if err != nil {
		serverError(c, err, "Failed to search locations")
		return
	}
	c.JSON(http.StatusOK, locs)
}

func (s *Server) LocationDetails(c *gin.Context) {
	lat, errLat := strconv.ParseFloat(c.Param("lat"), 64)
	lon, errLon := strconv.ParseFloat(c.Param("lon"), 64)
	if errLat != nil || errLon != nil {
		badRequest(c, "Latitude and longitude must be numbers")
		return
	}
	loc, err := s.svc.LocationDetails(c.Request.Context(), lat, lon)
	if errors.Is(err, location.ErrBadCoordinates) {
		badRequest(c, "Latitude must be within [-90, 90] and longitude within [-180, 180]")
		return
	}
	if errors.Is(err, geocode.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Location not found"})
		return
	}
	if err != nil {
		serverError(c, err, "Failed to get location details")
		return
	}
	c.JSON(http.StatusOK, loc)
}

type storyRequest struct {
	Location string `json:"location" binding:"required"`
	Theme    string `json:"theme"`
}

func (s *Server) Story(c *gin.Context) {
	var req storyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Location is required")
		return
	}
	c.JSON(http.StatusOK, s.svc.Story(c.Request.Context(), req.Location, req.Theme))
}

type storiesRequest struct {
	Location string `json:"location" binding:"required"`
}

func (s *Server) Stories(c *gin.Context) {
	var req storiesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Location is required")
		return
	}
	resp, err := s.svc.Stories(c.Request.Context(), req.Location)
	if err != nil {
		serverError(c, err, "Failed to generate stories")
		return
	}
	c.JSON(http.StatusOK, resp)
}

type characterRequest struct {
	Location      string `json:"location" binding:"required"`
	CharacterType string `json:"characterType"`
}

func (s *Server) Character(c *gin.Context) {
	var req characterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Location is required")
		return
	}
	character, err := s.svc.Character(c.Request.Context(), req.Location, req.CharacterType)
	if err != nil {
		serverError(c, err, "Failed to generate character")
		return
	}
	c.JSON(http.StatusOK, character)
}

func (s *Server) CulturalInsights(c *gin.Context) {
	place := requiredQuery(c, "location", "Location parameter is required")
	if place == "" {
		return
	}
	c.JSON(http.StatusOK, s.svc.CulturalInsights(c.Request.Context(), place))
}

func (s *Server) ClimateData(c *gin.Context) {
	lat, lon, ok := bindCoordinates(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.svc.ClimateData(c.Request.Context(), lat, lon, c.DefaultQuery("timeframe", "current")))
}

func (s *Server) ClimateComparison(c *gin.Context) {
	lat, lon, ok := bindCoordinates(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.svc.ClimateComparison(c.Request.Context(), lat, lon))
}

func (s *Server) ClimateEvents(c *gin.Context) {
	c.JSON(http.StatusOK, s.svc.ClimateEvents(c.Request.Context()))
}

func (s *Server) SearchClimateEvents(c *gin.Context) {
	place := requiredQuery(c, "location", "Location parameter is required")
	if place == "" {
		return
	}
	events, err := s.svc.SearchClimateEvents(c.Request.Context(), place)
	if err != nil {
		serverError(c, err, "Failed to search climate events")
		return
	}
	c.JSON(http.StatusOK, gin.H{"location": place, "events": events})
}

func (s *Server) IndigenousKnowledge(c *gin.Context) {
	place := requiredQuery(c, "location", "Location parameter is required")
	if place == "" {
		return
	}
	topic := c.DefaultQuery("topic", "culture")
	c.JSON(http.StatusOK, s.svc.IndigenousKnowledge(c.Request.Context(), place, topic))
}

func (s *Server) GroundedQuiz(c *gin.Context) {
	place := requiredQuery(c, "location", "Location parameter is required")
	if place == "" {
		return
	}
	quiz, err := s.svc.GroundedQuiz(c.Request.Context(), place)
	if err != nil {
		serverError(c, err, "Failed to generate quiz")
		return
	}
	c.JSON(http.StatusOK, quiz)
}

type quizRequest struct {
	Location      string `json:"location" binding:"required"`
	Difficulty    string `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
	QuestionCount int    `json:"questionCount" binding:"omitempty,min=1,max=20"`
}

func (s *Server) GenericQuiz(c *gin.Context) {
	var req quizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid quiz request: location is required")
		return
	}
	quiz, err := s.svc.GenericQuiz(c.Request.Context(), req.Location, req.Difficulty, req.QuestionCount)
	if err != nil {
		serverError(c, err, "Failed to generate quiz")
		return
	}
	c.JSON(http.StatusOK, quiz)
}

func (s *Server) LearningModules(c *gin.Context) {
	place := requiredQuery(c, "location", "Location parameter is required")
	if place == "" {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"location": place,
		"modules":  s.svc.LearningModules(c.Request.Context(), place),
	})
}

func (s *Server) Weather(c *gin.Context) {
	lat, lon, ok := bindCoordinates(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.svc.CurrentWeather(c.Request.Context(), lat, lon))
}
