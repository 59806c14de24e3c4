package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"coursehub-be/internal/bootstrap"
	"coursehub-be/internal/config"
	"coursehub-be/internal/pkg/logger"
	"coursehub-be/internal/server"
	"coursehub-be/internal/tracer"
	"coursehub-be/pkg/database"
	"coursehub-be/pkg/events"
	pktNats "coursehub-be/pkg/nats"
)

const maintenanceInterval = 5 * time.Minute

func main() {
	// 1. Load Configuration
	cfg := config.Load()
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.IsProduction())
	defer sysLogger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 2. Tracing
	shutdownTracer := tracer.InitTracer(cfg.Telemetry, sysLogger)
	defer shutdownTracer(context.Background())

	// 3. Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection, database.LogLevel(cfg.Database.LogLevel))
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 4. Bootstrap Dependencies (Container)
	infra, err := bootstrap.NewInfrastructure(ctx, cfg, sysLogger)
	if err != nil {
		log.Panicf("Unable to initialize infrastructure: %v", err)
	}
	defer infra.Close()

	container := bootstrap.NewContainer(gormDB, cfg, infra)

	// 5. Background Services
	go func() {
		if err := container.FileCleanupService.Consume(ctx); err != nil {
			sysLogger.Error("MAIN", "File cleanup consumer stopped", map[string]interface{}{"error": err.Error()})
		}
	}()
	go container.FileCleanupService.RunMaintenance(ctx, maintenanceInterval)

	if cfg.App.NatsURL != "" {
		startEventLog(ctx, cfg.App.NatsURL, sysLogger)
	}

	// 6. Server
	srv := server.New(cfg, container)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			sysLogger.Error("MAIN", "Server shutdown failed", map[string]interface{}{"error": err.Error()})
		}
	}()

	if err := srv.Run(); err != nil {
		log.Fatal(err)
	}
}

// startEventLog records every domain event in the application log.
func startEventLog(ctx context.Context, url string, sysLogger logger.ILogger) {
	sub, err := pktNats.NewSubscriber(url, sysLogger)
	if err != nil {
		sysLogger.Warn("MAIN", "Failed to connect NATS subscriber", map[string]interface{}{"error": err.Error()})
		return
	}

	err = sub.Subscribe(ctx, pktNats.SubjectPrefix+">", "coursehub-event-log", func(ctx context.Context, event events.Event) error {
		sysLogger.Info("EVENTS", event.EventType(), event.Payload())
		return nil
	})
	if err != nil {
		sysLogger.Warn("MAIN", "Failed to subscribe to domain events", map[string]interface{}{"error": err.Error()})
		sub.Close()
		return
	}

	go func() {
		<-ctx.Done()
		sub.Close()
	}()
}
