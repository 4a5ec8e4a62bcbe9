// internal/server/handlers.go
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hydropony/junction2025-googlecloud/internal/common/errors"
	"github.com/hydropony/junction2025-googlecloud/internal/common/metrics"
	"github.com/hydropony/junction2025-googlecloud/internal/common/validation"
	"github.com/hydropony/junction2025-googlecloud/internal/nlu"
	"github.com/hydropony/junction2025-googlecloud/internal/nlu/pipeline"
	"github.com/hydropony/junction2025-googlecloud/internal/session"
)

type parseRequest struct {
	Text      string                 `json:"text"`
	Language  string                 `json:"language"`
	Context   map[string]interface{} `json:"context"`
	SessionID string                 `json:"session_id"`
}

type batchRequest struct {
	Texts     []string               `json:"texts"`
	Context   map[string]interface{} `json:"context"`
	SessionID string                 `json:"session_id"`
}

func (s *Server) respondError(c *gin.Context, err error) {
	stdErr := errors.Normalize(err)
	if stdErr.Code == errors.ErrCodeInternal {
		s.log.Error("Request failed", map[string]interface{}{
			"path":  c.Request.URL.Path,
			"error": stdErr.Details,
		})
	}
	c.JSON(stdErr.HTTPStatus(), gin.H{"error": stdErr})
}

func (s *Server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "nlu-parser",
		"version": s.cfg.App.Version,
		"message": "NLU Parser API is running. Try /health or POST /nlu/parse.",
		"endpoints": []string{
			"/health",
			"/nlu/parse",
			"/nlu/pre-parse",
			"/nlu/post-parse",
			"/nlu/parse/batch",
		},
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	redisUp := s.pingRedis(c.Request.Context())

	components := gin.H{
		"language_detector":   true,
		"intent_classifier":   true,
		"entity_extractor":    true,
		"text_normalizer":     true,
		"product_catalog":     s.catalog.Len() > 0,
		"product_count":       s.catalog.Len(),
		"semantic_classifier": s.pipeline.SemanticAvailable(),
		"redis":               redisUp,
	}

	// Redis is only required while sessions are on.
	healthy := !s.cfg.Session.Enabled || redisUp
	status := "healthy"
	code := http.StatusOK
	if !healthy {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":         status,
		"service":        "nlu-parser",
		"version":        s.cfg.App.Version,
		"uptime_seconds": int(time.Since(s.started).Seconds()),
		"components":     components,
		"config": gin.H{
			"session_enabled":          s.cfg.Session.Enabled,
			"fuzzy_matching_available": true,
		},
	})
}

func (s *Server) handleParse(c *gin.Context) {
	s.parseWith(c, "parse", s.pipeline.Parse)
}

func (s *Server) handlePreParse(c *gin.Context) {
	s.parseWith(c, "pre-parse", s.pipeline.ParsePreOrder)
}

func (s *Server) handlePostParse(c *gin.Context) {
	s.parseWith(c, "post-parse", s.pipeline.ParsePostDelivery)
}

func (s *Server) parseWith(c *gin.Context, endpoint string, run func(context.Context, pipeline.Request) (*pipeline.Result, error)) {
	req, stdErr := s.decodeParseRequest(c)
	if stdErr != nil {
		s.respondError(c, stdErr)
		return
	}

	result, err := run(c.Request.Context(), pipeline.Request{
		Text:      req.Text,
		Language:  nlu.Language(req.Language),
		Context:   req.Context,
		SessionID: req.SessionID,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}

	if result.Uncertain {
		metrics.UncertainResults.WithLabelValues(endpoint).Inc()
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleParseBatch(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil || len(body) == 0 {
		s.respondError(c, errors.NewValidationError("Request body is required", "MISSING_BODY"))
		return
	}
	if stdErr := validateBody(batchSchema, body); stdErr != nil {
		s.respondError(c, stdErr)
		return
	}

	var req batchRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.respondError(c, errors.NewValidationError("Request body is not valid JSON", "MALFORMED_JSON"))
		return
	}

	texts, stdErr := validation.ValidateBatch(req.Texts, s.limits)
	if stdErr != nil {
		s.respondError(c, stdErr)
		return
	}
	reqContext, stdErr := validation.ValidateContext(req.Context)
	if stdErr != nil {
		s.respondError(c, stdErr)
		return
	}
	sessionID, stdErr := validation.ValidateSessionID(req.SessionID)
	if stdErr != nil {
		s.respondError(c, stdErr)
		return
	}

	result := s.pipeline.ParseBatch(c.Request.Context(), texts, reqContext, sessionID)
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleGetSession(c *gin.Context) {
	sessionID, stdErr := validation.ValidateSessionID(c.Param("id"))
	if stdErr != nil {
		s.respondError(c, stdErr)
		return
	}

	sess, err := s.sessions.Get(c.Request.Context(), sessionID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	if sess == nil {
		s.respondError(c, errors.NewSessionNotFoundError(sessionID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session_id":        sess.SessionID,
		"created_at":        sess.CreatedAt,
		"last_activity":     sess.LastActivity,
		"interaction_count": len(sess.History),
		"history":           lastInteractions(sess.History, 5),
		"context":           sess.Context,
	})
}

func (s *Server) handleDeleteSession(c *gin.Context) {
	sessionID, stdErr := validation.ValidateSessionID(c.Param("id"))
	if stdErr != nil {
		s.respondError(c, stdErr)
		return
	}

	if err := s.sessions.Delete(c.Request.Context(), sessionID); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Session deleted"})
}

func (s *Server) decodeParseRequest(c *gin.Context) (*parseRequest, *errors.StandardError) {
	body, err := c.GetRawData()
	if err != nil || len(body) == 0 {
		return nil, errors.NewValidationError("Request body is required", "MISSING_BODY")
	}
	if stdErr := validateBody(parseSchema, body); stdErr != nil {
		return nil, stdErr
	}

	var req parseRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, errors.NewValidationError("Request body is not valid JSON", "MALFORMED_JSON")
	}

	text, stdErr := validation.ValidateText(req.Text, s.limits)
	if stdErr != nil {
		return nil, stdErr
	}
	reqContext, stdErr := validation.ValidateContext(req.Context)
	if stdErr != nil {
		return nil, stdErr
	}
	sessionID, stdErr := validation.ValidateSessionID(req.SessionID)
	if stdErr != nil {
		return nil, stdErr
	}

	req.Text = text
	req.Context = reqContext
	req.SessionID = sessionID
	return &req, nil
}

func (s *Server) pingRedis(ctx context.Context) bool {
	if s.redis == nil {
		return false
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.redis.Ping(pingCtx) == nil
}

func lastInteractions(history []session.Interaction, n int) []session.Interaction {
	if len(history) <= n {
		return history
	}
	return history[len(history)-n:]
}
