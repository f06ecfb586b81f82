package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/cuidarmais/registry/internal/server"
	"github.com/cuidarmais/registry/internal/server/config"
)

func main() {

	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found; relying on existing environment")
	}

	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := server.NewApp(ctx, cfg)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)
}
