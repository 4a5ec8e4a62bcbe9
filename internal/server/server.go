// internal/server/server.go

// Package server exposes the NLU pipeline over HTTP. Routes follow the
// voice-assistant contract: single parse, conversation-stage parses,
// batching, and session inspection.
package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hydropony/junction2025-googlecloud/internal/catalog"
	"github.com/hydropony/junction2025-googlecloud/internal/common/config"
	"github.com/hydropony/junction2025-googlecloud/internal/common/database"
	"github.com/hydropony/junction2025-googlecloud/internal/common/logger"
	"github.com/hydropony/junction2025-googlecloud/internal/common/validation"
	"github.com/hydropony/junction2025-googlecloud/internal/nlu/pipeline"
	"github.com/hydropony/junction2025-googlecloud/internal/session"
)

type Server struct {
	cfg      *config.Config
	pipeline *pipeline.Pipeline
	sessions *session.Store
	catalog  *catalog.Catalog
	redis    *database.RedisClient
	limits   validation.Limits
	log      logger.Logger
	started  time.Time
}

func New(cfg *config.Config, p *pipeline.Pipeline, sessions *session.Store, cat *catalog.Catalog, redisClient *database.RedisClient, log logger.Logger) *Server {
	return &Server{
		cfg:      cfg,
		pipeline: p,
		sessions: sessions,
		catalog:  cat,
		redis:    redisClient,
		limits: validation.Limits{
			MinTextLength: cfg.Validation.MinTextLength,
			MaxTextLength: cfg.Validation.MaxTextLength,
			MaxBatchSize:  cfg.Validation.MaxBatchSize,
		},
		log:     log,
		started: time.Now(),
	}
}

// Router builds the gin engine with all routes and middleware attached.
func (s *Server) Router() *gin.Engine {
	if !s.cfg.Server.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(s.log))
	if s.cfg.CORS.Enabled {
		router.Use(corsMiddleware(s.cfg.CORS))
	}

	router.GET("/", s.handleRoot)
	router.GET("/health", s.handleHealth)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	nluRoutes := router.Group("/nlu")
	nluRoutes.Use(observeRequests())
	{
		nluRoutes.POST("/parse", s.handleParse)
		nluRoutes.POST("/pre-parse", s.handlePreParse)
		nluRoutes.POST("/post-parse", s.handlePostParse)
		nluRoutes.POST("/parse/batch", s.handleParseBatch)
		nluRoutes.GET("/session/:id", s.handleGetSession)
		nluRoutes.DELETE("/session/:id", s.handleDeleteSession)
	}

	return router
}

// HTTPServer wraps the router in an http.Server bound to the configured
// address.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:    fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port),
		Handler: s.Router(),
	}
}
