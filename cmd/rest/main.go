package main

import (
	"context"
	"log"

	"carenote-be/internal/bootstrap"
	"carenote-be/internal/config"
	"carenote-be/internal/server"
	"carenote-be/internal/tracer"
	"carenote-be/pkg/database"
)

func main() {
	// 0. Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)
	defer container.Logger.Sync()

	// 4. Start Background Services
	ctx := context.Background()

	go func() {
		log.Println("Background: Starting Intake Consumer...")
		if err := container.IntakeService.Consume(ctx); err != nil {
			log.Printf("Background Intake Error: %v", err)
		}
	}()

	go func() {
		log.Println("Background: Starting Check-in Queue Worker...")
		if err := container.CheckinQueue.Run(ctx, container.FollowUpService.ExecuteCheckin); err != nil && err != context.Canceled {
			log.Printf("Background Queue Error: %v", err)
		}
	}()

	if err := container.AuditService.Start(); err != nil {
		log.Printf("Warn: Audit trail unavailable: %v", err)
	}

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}
