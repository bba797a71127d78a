package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/realty/internal/buildinfo"
	"github.com/dmitrijs2005/realty/internal/client/cli"
	"github.com/dmitrijs2005/realty/internal/client/config"
	"github.com/dmitrijs2005/realty/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()
	// the REPL owns stdout
	logger := logging.New(cfg.LogMode, os.Stderr)

	app, err := cli.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
