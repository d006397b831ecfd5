package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/urfave/cli"

	"github.com/df07/go-diffuse-raytracer/pkg/renderer"
	"github.com/df07/go-diffuse-raytracer/web/server"
)

// Serve the render API until interrupted.
func Serve(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	config := renderer.DefaultConfig()
	config.NumWorkers = ctx.Int("workers")
	config.TileSize = ctx.Int("tile-size")
	config.Seed = ctx.Int64("seed")
	if err := config.Validate(); err != nil {
		return err
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	addr := fmt.Sprintf("%s:%d", ctx.String("host"), ctx.Int("port"))
	return server.NewServer(ctx.String("dir"), config).Start(sigCtx, addr)
}
