package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/filevault/internal/buildinfo"
	"github.com/dmitrijs2005/filevault/internal/client/cli"
	"github.com/dmitrijs2005/filevault/internal/client/config"
	"github.com/dmitrijs2005/filevault/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(os.Stderr, cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := cli.NewApp(ctx, cfg, logger, os.Stdout)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx, os.Stdin)

}
