package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/draftkeep/draftkeep/internal/buildinfo"
	"github.com/draftkeep/draftkeep/internal/cli"
	"github.com/draftkeep/draftkeep/internal/config"
	"github.com/draftkeep/draftkeep/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	app := cli.NewApp(ctx, cfg, log)
	app.Run(ctx)

}
