package main

import (
	"context"
	"log"

	"tenx-cards-be/internal/bootstrap"
	"tenx-cards-be/internal/config"
	"tenx-cards-be/internal/server"
	"tenx-cards-be/internal/tracer"
	"tenx-cards-be/pkg/database"
)

func main() {
	// 1. Initialize tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 2. Load configuration
	cfg := config.Load()

	// 3. Initialize database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 4. Bootstrap dependencies
	container := bootstrap.NewContainer(gormDB, cfg)

	// 5. Start background consumer
	go func() {
		log.Println("Background: starting consumer service...")
		if err := container.ConsumerService.Consume(context.Background()); err != nil {
			log.Printf("Background consumer error: %v", err)
		}
	}()

	// 6. Run server
	srv := server.New(cfg, container)
	log.Fatal(srv.Run())
}
