package main

import (
	"context"
	"log"

	"pharmachain-portal/internal/bootstrap"
	"pharmachain-portal/internal/config"
	"pharmachain-portal/internal/server"
	"pharmachain-portal/internal/tracer"
)

func main() {
	// 0. Initialize tracer
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load configuration
	cfg := config.Load()

	// 2. Bootstrap dependencies
	container := bootstrap.NewContainer(cfg)
	defer container.Logger.Sync()

	// 3. Start background services
	go container.WebSocketHub.Run()

	if err := container.NotificationService.Start(context.Background()); err != nil {
		log.Printf("Background notification error: %v", err)
	}

	// 4. Run server
	srv := server.New(cfg, container)
	log.Fatal(srv.Run())
}
