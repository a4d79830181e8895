package main

import (
	"context"
	"log"

	"nexter-ai-be/internal/bootstrap"
	"nexter-ai-be/internal/config"
	"nexter-ai-be/internal/server"
	"nexter-ai-be/internal/tracer"

	"github.com/fatih/color"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(cfg)

	// 3. Start Background Services
	go func() {
		log.Println("Background: Starting Archiver Service...")
		if err := container.ArchiverService.Consume(context.Background()); err != nil {
			log.Printf("Background Archiver Error: %v", err)
		}
	}()

	color.New(color.FgCyan, color.Bold).Println("Nexter AI Server")
	color.New(color.FgGreen).Printf("environment=%s provider=%s model=%s\n",
		cfg.App.Environment, cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Initialize and Run Server
	srv := server.New(cfg, container)
	log.Fatal(srv.Run())
}
