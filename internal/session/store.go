// internal/session/store.go

// Package session keeps per-conversation state in Redis so repeated calls
// from the same caller can lean on earlier turns. Sessions expire through
// Redis TTLs; reads and writes refresh the clock.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/hydropony/junction2025-googlecloud/internal/common/config"
	"github.com/hydropony/junction2025-googlecloud/internal/common/database"
	"github.com/hydropony/junction2025-googlecloud/internal/common/errors"
	"github.com/hydropony/junction2025-googlecloud/internal/common/logger"
	"github.com/hydropony/junction2025-googlecloud/internal/common/metrics"
	"github.com/hydropony/junction2025-googlecloud/internal/nlu"
	"github.com/hydropony/junction2025-googlecloud/internal/nlu/entity"
)

const (
	keyPrefix       = "nlu:session:"
	historyTextCap  = 100
	storeLabelRedis = "redis"
)

// Interaction is one recorded turn of the conversation.
type Interaction struct {
	Timestamp  time.Time       `json:"timestamp"`
	Intent     nlu.Intent      `json:"intent"`
	Confidence float64         `json:"confidence"`
	Text       string          `json:"text"`
	Entities   entity.Entities `json:"entities"`
}

// Session is the stored conversation state.
type Session struct {
	SessionID    string                 `json:"session_id"`
	CreatedAt    time.Time              `json:"created_at"`
	LastActivity time.Time              `json:"last_activity"`
	History      []Interaction          `json:"history"`
	Context      map[string]interface{} `json:"context"`
}

// Store reads and writes sessions. Disabled stores answer every call with
// empty results so callers need no feature checks.
type Store struct {
	redis      *database.RedisClient
	log        logger.Logger
	enabled    bool
	maxHistory int
	ttl        time.Duration
}

func NewStore(redisClient *database.RedisClient, cfg config.SessionConfig, log logger.Logger) *Store {
	return &Store{
		redis:      redisClient,
		log:        log,
		enabled:    cfg.Enabled,
		maxHistory: cfg.MaxHistory,
		ttl:        time.Duration(cfg.TTLSeconds) * time.Second,
	}
}

// EnsureID returns the given session ID, or a fresh UUID when empty.
func (s *Store) EnsureID(sessionID string) string {
	if sessionID != "" {
		return sessionID
	}
	return uuid.NewString()
}

func sessionKey(sessionID string) string {
	return keyPrefix + sessionID
}

// Get loads a session. Returns nil without error when the session does not
// exist, the store is disabled, or the ID is empty. Reading refreshes the
// TTL so active conversations stay alive.
func (s *Store) Get(ctx context.Context, sessionID string) (*Session, error) {
	if !s.enabled || sessionID == "" {
		return nil, nil
	}

	raw, err := s.redis.Get(ctx, sessionKey(sessionID))
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, errors.NewSessionStoreError(fmt.Errorf("failed to load session: %w", err))
	}

	var session Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		s.log.Warn("Discarding undecodable session", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		_ = s.redis.Del(ctx, sessionKey(sessionID))
		return nil, nil
	}

	if err := s.redis.Expire(ctx, sessionKey(sessionID), s.ttl); err != nil {
		s.log.Warn("Failed to refresh session TTL", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
	}
	return &session, nil
}

// GetOrCreate loads the session or starts a new one, updating last activity
// either way.
func (s *Store) GetOrCreate(ctx context.Context, sessionID string) (*Session, error) {
	if !s.enabled || sessionID == "" {
		return nil, nil
	}

	session, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		now := time.Now().UTC()
		session = &Session{
			SessionID:    sessionID,
			CreatedAt:    now,
			LastActivity: now,
			History:      []Interaction{},
			Context:      map[string]interface{}{},
		}
		metrics.ActiveSessions.WithLabelValues(storeLabelRedis).Inc()
	} else {
		session.LastActivity = time.Now().UTC()
	}

	if err := s.save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// AddToHistory appends one interaction, trimming history to the configured
// bound. Text is truncated for storage.
func (s *Store) AddToHistory(ctx context.Context, sessionID string, in nlu.Intent, confidence float64, text string, entities entity.Entities) error {
	if !s.enabled || sessionID == "" {
		return nil
	}

	session, err := s.GetOrCreate(ctx, sessionID)
	if err != nil {
		return err
	}

	if runes := []rune(text); len(runes) > historyTextCap {
		text = string(runes[:historyTextCap])
	}

	session.History = append(session.History, Interaction{
		Timestamp:  time.Now().UTC(),
		Intent:     in,
		Confidence: confidence,
		Text:       text,
		Entities:   entities,
	})
	if s.maxHistory > 0 && len(session.History) > s.maxHistory {
		session.History = session.History[len(session.History)-s.maxHistory:]
	}
	session.LastActivity = time.Now().UTC()

	return s.save(ctx, session)
}

// Context builds the conversation context used to bias parsing: the last
// three intents, the most recent intent, the interaction count, and any
// caller-stored session context.
func (s *Store) Context(ctx context.Context, sessionID string) (map[string]interface{}, error) {
	if !s.enabled || sessionID == "" {
		return map[string]interface{}{}, nil
	}

	session, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return map[string]interface{}{}, nil
	}

	history := session.History
	previous := make([]string, 0, 3)
	start := len(history) - 3
	if start < 0 {
		start = 0
	}
	for _, h := range history[start:] {
		previous = append(previous, string(h.Intent))
	}

	var lastIntent interface{}
	if len(history) > 0 {
		lastIntent = string(history[len(history)-1].Intent)
	}

	sessionContext := session.Context
	if sessionContext == nil {
		sessionContext = map[string]interface{}{}
	}

	return map[string]interface{}{
		nlu.CtxPreviousIntents:  previous,
		nlu.CtxLastIntent:       lastIntent,
		nlu.CtxInteractionCount: len(history),
		nlu.CtxSessionContext:   sessionContext,
	}, nil
}

// Delete removes a session. Missing sessions are an error so callers can
// answer 404.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	if !s.enabled {
		return errors.NewSessionNotFoundError(sessionID)
	}

	n, err := s.redis.GetClient().Del(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		return errors.NewSessionStoreError(fmt.Errorf("failed to delete session: %w", err))
	}
	if n == 0 {
		return errors.NewSessionNotFoundError(sessionID)
	}
	metrics.ActiveSessions.WithLabelValues(storeLabelRedis).Dec()
	return nil
}

func (s *Store) save(ctx context.Context, session *Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return errors.NewSessionStoreError(fmt.Errorf("failed to encode session: %w", err))
	}
	if err := s.redis.Set(ctx, sessionKey(session.SessionID), payload, s.ttl); err != nil {
		return errors.NewSessionStoreError(fmt.Errorf("failed to store session: %w", err))
	}
	return nil
}
