// Command ingest pre-processes videos offline: it fetches transcripts from
// the transcript provider and stores them so sessions can load the videos
// without touching the provider. It is intended to be run from a job or by
// hand, not as part of the main server.
//
// Flags:
//
//	--videos  comma-separated video ids to ingest (required)
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/avelichko/lingtube-backend/internal/adapter/postgres"
	videorepo "github.com/avelichko/lingtube-backend/internal/adapter/postgres/video"
	"github.com/avelichko/lingtube-backend/internal/adapter/provider/ytranscript"
	"github.com/avelichko/lingtube-backend/internal/app"
	"github.com/avelichko/lingtube-backend/internal/config"
	"github.com/avelichko/lingtube-backend/internal/service/ingest"
)

func main() {
	videosFlag := flag.String("videos", "", "comma-separated video ids to ingest")
	flag.Parse()

	if *videosFlag == "" {
		log.Fatal("--videos is required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	txm := postgres.NewTxManager(pool)
	videos := videorepo.New(pool, txm)
	transcripts := ytranscript.NewProvider(cfg.Transcript.BaseURL, cfg.Transcript.Language, logger)
	svc := ingest.NewService(transcripts, videos, logger)

	failed := 0
	for _, id := range strings.Split(*videosFlag, ",") {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}

		video, err := svc.IngestVideo(ctx, id)
		if err != nil {
			logger.Error("ingest failed",
				slog.String("video_id", id),
				slog.String("error", err.Error()),
			)
			failed++
			continue
		}

		logger.Info("ingested",
			slog.String("video_id", video.ID),
			slog.String("title", video.Title),
			slog.Int("segments", len(video.Transcript)),
		)
	}

	if failed > 0 {
		logger.Warn("completed with failures", slog.Int("failed", failed))
		os.Exit(1)
	}
}
