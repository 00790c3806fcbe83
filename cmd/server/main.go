// Command server runs the lingtube HTTP API: video practice sessions,
// transcript synchronization, translation toggles, vocabulary, quizzes,
// and watch history.
//
// Configuration comes from CONFIG_PATH (YAML) and environment variables.
// The server shuts down gracefully on SIGINT or SIGTERM.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/avelichko/lingtube-backend/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("server: %v", err)
	}
}
