package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/avelichko/lingtube-backend/internal/adapter/postgres"
	historyrepo "github.com/avelichko/lingtube-backend/internal/adapter/postgres/history"
	videorepo "github.com/avelichko/lingtube-backend/internal/adapter/postgres/video"
	vocabrepo "github.com/avelichko/lingtube-backend/internal/adapter/postgres/vocabulary"
	"github.com/avelichko/lingtube-backend/internal/adapter/provider/google"
	"github.com/avelichko/lingtube-backend/internal/adapter/provider/openaitr"
	"github.com/avelichko/lingtube-backend/internal/adapter/provider/quizgen"
	"github.com/avelichko/lingtube-backend/internal/adapter/provider/translate"
	"github.com/avelichko/lingtube-backend/internal/adapter/provider/ytranscript"
	"github.com/avelichko/lingtube-backend/internal/config"
	"github.com/avelichko/lingtube-backend/internal/service/ingest"
	"github.com/avelichko/lingtube-backend/internal/service/session"
	"github.com/avelichko/lingtube-backend/internal/service/vocabulary"
	"github.com/avelichko/lingtube-backend/internal/translation"
	"github.com/avelichko/lingtube-backend/internal/transport/middleware"
	"github.com/avelichko/lingtube-backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, wires the
// adapters and services, and serves HTTP until ctx is canceled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	txm := postgres.NewTxManager(pool)

	videos := videorepo.New(pool, txm)
	vocabItems := vocabrepo.New(pool)
	history := historyrepo.New(pool)

	var translator translation.Translator
	if cfg.OpenAI.APIKey != "" {
		translator, err = openaitr.New(cfg.OpenAI.APIKey, cfg.OpenAI.Model, logger)
		if err != nil {
			return fmt.Errorf("create translator: %w", err)
		}
	} else {
		logger.Warn("OPENAI_API_KEY not set, using stub translations; quiz and feedback disabled")
		translator = translate.NewStub()
	}

	wordCache := translation.NewCache(translator, logger)
	sentenceCache := translation.NewCache(translator, logger)

	registry := vocabulary.NewRegistry(func() *vocabulary.Service {
		return vocabulary.NewService(vocabulary.Config{
			Repo:       vocabItems,
			Translator: translator,
			Logger:     logger,
			SourceLang: cfg.Translation.SourceLang,
			TargetLang: cfg.Translation.TargetLang,
		})
	})

	sessions := session.NewManager(session.ManagerConfig{
		Videos:  videos,
		History: history,
		Vocabulary: func(userID uuid.UUID) session.VocabularyLoader {
			return registry.ForUser(userID)
		},
		Logger: logger,
	})

	transcripts := ytranscript.NewProvider(cfg.Transcript.BaseURL, cfg.Transcript.Language, logger)
	ingestSvc := ingest.NewService(transcripts, videos, logger)

	quizHandler := rest.NewQuizHandler(nil, sessions, registry, cfg.Quiz.MaxQuestions, logger)
	if cfg.OpenAI.APIKey != "" {
		gen, err := quizgen.New(cfg.OpenAI.APIKey, cfg.OpenAI.Model, logger)
		if err != nil {
			return fmt.Errorf("create quiz generator: %w", err)
		}
		quizHandler = rest.NewQuizHandler(gen, sessions, registry, cfg.Quiz.MaxQuestions, logger)
	}

	router := rest.NewRouter(rest.RouterConfig{
		Session:     rest.NewSessionHandler(sessions, logger),
		Ingest:      rest.NewIngestHandler(ingestSvc, logger),
		Vocabulary:  rest.NewVocabularyHandler(registry, logger),
		Translation: rest.NewTranslationHandler(wordCache, sentenceCache, cfg.Translation.SourceLang, cfg.Translation.TargetLang, logger),
		Quiz:        quizHandler,
		History:     rest.NewHistoryHandler(history, logger),
		Health:      rest.NewHealthHandler(pool, BuildVersion()),
	})

	mws := []middleware.Middleware{
		middleware.RequestID(),
		middleware.Recovery(logger),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
	}
	if cfg.Server.RateLimitPerMinute > 0 {
		limiter := middleware.NewRateLimiter(time.Minute)
		defer limiter.Stop()
		mws = append(mws, limiter.Limit(cfg.Server.RateLimitPerMinute))
	}
	mws = append(mws, middleware.Auth(google.NewVerifier(cfg.Auth.GoogleClientID, logger)))
	if cfg.Auth.DevUserID != "" {
		devID, err := uuid.Parse(cfg.Auth.DevUserID)
		if err != nil {
			return fmt.Errorf("parse dev user id: %w", err)
		}
		logger.Warn("dev user enabled, anonymous requests act as a fixed user",
			slog.String("user_id", devID.String()),
		)
		mws = append(mws, middleware.DevUser(devID))
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      middleware.Chain(mws...)(router),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	return nil
}
