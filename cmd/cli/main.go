package main

import (
	"context"
	"log"

	"github.com/desirppc/parcelace/internal/client/cli"
	"github.com/desirppc/parcelace/internal/client/config"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.LoadConfig()
	app, err := cli.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)
}
