// Package server exposes the planning pipeline over HTTP.
package server

import (
	"context"
	"net/http"
	"time"

	"ai-travel-planner/internal/config"
	"ai-travel-planner/internal/metrics"
	"ai-travel-planner/internal/planner"
	"ai-travel-planner/internal/shared"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// PlanGenerator is the planning pipeline as seen by the HTTP layer.
type PlanGenerator interface {
	GeneratePlan(ctx context.Context, req planner.Request) (*planner.TravelPlan, []shared.StageMeta, error)
}

// Server wires the gin router, the planner and the metrics store.
type Server struct {
	engine       *gin.Engine
	planner      PlanGenerator
	metricsStore *metrics.Store
}

// New builds the router with CORS, request logging, per-client rate limiting
// and optional bearer-token auth on the API group.
func New(cfg *config.Config, p PlanGenerator, store *metrics.Store) *Server {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(RequestLogger())
	engine.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	s := &Server{engine: engine, planner: p, metricsStore: store}

	engine.GET("/health", s.handleHealth)

	api := engine.Group("/api")
	api.Use(RateLimit(cfg.RateLimitPerMinute))
	if cfg.AuthSecret != "" {
		api.Use(Auth(cfg.AuthSecret))
	}
	api.POST("/generate_plan", s.handleGeneratePlan)

	return s
}

// Handler returns the underlying http.Handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "healthy",
		"server_time": time.Now().Format(time.RFC3339),
	})
}

type planRequest struct {
	Source      string `json:"source" binding:"required"`
	Destination string `json:"destination" binding:"required"`
	DepartDate  string `json:"depart_date" binding:"required"`
	ReturnDate  string `json:"return_date" binding:"required"`
	Theme       string `json:"theme"`
	TripType    string `json:"trip_type"`
	NumDays     int    `json:"num_days"`
}

func (s *Server) handleGeneratePlan(c *gin.Context) {
	var req planRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	plan, metas, err := s.planner.GeneratePlan(c.Request.Context(), planner.Request{
		Source:      req.Source,
		Destination: req.Destination,
		DepartDate:  req.DepartDate,
		ReturnDate:  req.ReturnDate,
		Theme:       req.Theme,
		TripType:    req.TripType,
		NumDays:     req.NumDays,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "travel plan generation failed: " + err.Error()})
		return
	}

	s.recordStageMetrics(metas)

	c.JSON(http.StatusOK, plan)
}

func (s *Server) recordStageMetrics(metas []shared.StageMeta) {
	if s.metricsStore == nil {
		return
	}
	for _, meta := range metas {
		if err := s.metricsStore.RecordMeta(meta); err != nil {
			log.Warn().Err(err).Str("stage", meta.StageName).Msg("failed to record stage metrics")
		}
	}
}
