// cmd/nlu-server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/hydropony/junction2025-googlecloud/internal/catalog"
	"github.com/hydropony/junction2025-googlecloud/internal/common/config"
	"github.com/hydropony/junction2025-googlecloud/internal/common/database"
	"github.com/hydropony/junction2025-googlecloud/internal/common/logger"
	"github.com/hydropony/junction2025-googlecloud/internal/nlu/entity"
	"github.com/hydropony/junction2025-googlecloud/internal/nlu/intent"
	"github.com/hydropony/junction2025-googlecloud/internal/nlu/language"
	"github.com/hydropony/junction2025-googlecloud/internal/nlu/normalizer"
	"github.com/hydropony/junction2025-googlecloud/internal/nlu/pipeline"
	"github.com/hydropony/junction2025-googlecloud/internal/nlu/semantic"
	"github.com/hydropony/junction2025-googlecloud/internal/server"
	"github.com/hydropony/junction2025-googlecloud/internal/session"
)

// retryWithBackoff attempts an operation with exponential backoff.
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting NLU parser service",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	// --- Redis (session store) ---
	var redisClient *database.RedisClient
	if cfg.Session.Enabled {
		err = retryWithBackoff(func() error {
			var err error
			redisClient, err = database.NewRedis(cfg.Redis)
			if err != nil {
				return err
			}
			pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return redisClient.Ping(pingCtx)
		}, 10, 2*time.Second, zapLog, "Redis connection")
		if err != nil {
			zapLog.Fatal("redis unavailable", zap.Error(err))
		}
		defer redisClient.Close()
	}

	// --- Product catalog ---
	cat, err := catalog.Load(cfg.Paths.CatalogFile, log)
	if err != nil {
		zapLog.Fatal("catalog load failed", zap.Error(err))
	}

	// --- NLU components ---
	classifierOpts := intent.Options{
		UseSemanticFallback: cfg.NLU.UseSemanticFallback,
		SemanticThreshold:   cfg.NLU.SemanticThreshold,
		SemanticWeight:      cfg.NLU.SemanticWeight,
	}
	var fallback intent.Fallback = intent.NoFallback()
	if cfg.NLU.UseSemanticFallback {
		fallback = semantic.NewClassifier(log)
	}

	extractor := entity.NewExtractor(cat, entity.NewVaderScorer(), entity.Options{
		FuzzyThreshold:  cfg.ProductMatching.FuzzyThreshold,
		MaxFuzzyResults: cfg.ProductMatching.MaxFuzzyResults,
	})

	sessions := session.NewStore(redisClient, cfg.Session, log)

	p := pipeline.New(pipeline.Deps{
		Detector:   language.NewDetector(),
		Normalizer: normalizer.NewNormalizer(),
		Classifier: intent.NewClassifier(classifierOpts, fallback),
		Extractor:  extractor,
		Fallback:   fallback,
		Sessions:   sessions,
		Confidence: cfg.Confidence,
		Logger:     log,
	})

	srv := server.New(cfg, p, sessions, cat, redisClient, log)
	httpServer := srv.HTTPServer()

	go func() {
		zapLog.Info("HTTP server listening", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLog.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("forced shutdown", zap.Error(err))
	}
	zapLog.Info("Shutdown complete")
}
