package main

import (
	"context"
	"log"

	"github.com/BalajiReddy1/FreshTrack/cmd/config"
	migration "github.com/BalajiReddy1/FreshTrack/cmd/database/migrate"
	"github.com/BalajiReddy1/FreshTrack/internal/utils"
)

func main() {
	utils.LoadConfig()

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	if err := migration.Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app, err := config.NewApp(ctx, db)
	if err != nil {
		log.Fatalf("failed to set up application: %v", err)
	}

	if err := app.Listen(":" + utils.GetConfig("APP_PORT")); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
