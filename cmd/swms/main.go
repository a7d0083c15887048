package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/swms/internal/client/appctx"
	"github.com/dmitrijs2005/swms/internal/client/cli"
	"github.com/dmitrijs2005/swms/internal/client/config"
	"github.com/dmitrijs2005/swms/internal/logging"
)

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()

	logger, err := logging.New(os.Stderr, cfg.LogLevel)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	core, err := appctx.Open(ctx, cfg, logger, cli.ToastSink(os.Stdout))
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	cli.NewApp(core, os.Stdin, os.Stdout).Run(ctx)

}
