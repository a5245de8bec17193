package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/pixvera/imageproof/internal/buildinfo"
	"github.com/pixvera/imageproof/internal/client/cli"
	"github.com/pixvera/imageproof/internal/client/config"
	"github.com/pixvera/imageproof/internal/logging"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)
}
