package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/messenger/internal/server/config"
	"github.com/dmitrijs2005/messenger/internal/useradmin"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := useradmin.NewApp(ctx, cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	if err := app.Run(ctx, os.Stdin, os.Stdout); err != nil {
		log.Fatalf("%v", err)
	}

}
