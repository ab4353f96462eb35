package main

import (
	"context"
	"log"
	"os"

	"github.com/akozyrev/userdir/internal/buildinfo"
	"github.com/akozyrev/userdir/internal/cli"
	"github.com/akozyrev/userdir/internal/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
