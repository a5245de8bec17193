package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/pixvera/imageproof/internal/buildinfo"
	"github.com/pixvera/imageproof/internal/client/config"
	"github.com/pixvera/imageproof/internal/client/controller"
	"github.com/pixvera/imageproof/internal/client/gateway"
	"github.com/pixvera/imageproof/internal/client/repositories/sessioncache"
	"github.com/pixvera/imageproof/internal/client/web"
	"github.com/pixvera/imageproof/internal/logging"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	db, err := sessioncache.Open(ctx, cfg.CacheDSN)
	if err != nil {
		log.Fatalf("init session cache: %v", err)
	}

	client := gateway.NewHTTPClient(cfg.APIBaseURL, cfg.RequestTimeout, logger)
	ctrl := controller.New(client, sessioncache.NewSQLiteRepository(db), logger)

	if err := ctrl.RestoreSession(ctx); err != nil {
		logger.Warn(ctx, "could not restore session", "error", err)
	}

	srv := web.NewServer(ctrl, logger)
	if err := srv.Run(ctx, cfg.WebAddr); err != nil {
		log.Fatalf("%v", err)
	}
}
