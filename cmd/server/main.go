package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"orderdesk/internal/catalog"
	"orderdesk/internal/commons"
	appconfig "orderdesk/internal/config"
	"orderdesk/internal/infrastructure/logger"
	"orderdesk/internal/infrastructure/mysql"
	"orderdesk/internal/infrastructure/rabbitmq"
	"orderdesk/internal/order"
	"orderdesk/internal/server"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	db, err := mysql.NewConnection(cfg.Database)
	if err != nil {
		zapLogger.Fatal("connecting to database", zap.Error(err))
	}
	defer db.Close()
	zapLogger.Info("database connected")

	publisher, err := rabbitmq.NewPublisher(cfg.RabbitMQ)
	if err != nil {
		zapLogger.Fatal("connecting to rabbitmq", zap.Error(err))
	}
	defer publisher.Close()
	zapLogger.Info("rabbitmq connected")

	catalogCtrl, catalogSvc := catalog.NewModule(db, zapLogger)
	orderCtrl := order.NewModule(db, catalogSvc, publisher, cfg, zapLogger)

	router := server.NewRouter(orderCtrl, catalogCtrl, zapLogger)

	srv := server.New(cfg.Server.Port, router, zapLogger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	zapLogger.Info("received shutdown signal")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("server shutdown failed", zap.Error(err))
	}

	zapLogger.Info("server stopped gracefully")
}

// loadConfig reads from a YAML file when a path is given on the command line,
// from the environment otherwise.
func loadConfig() (*appconfig.Config, error) {
	if len(os.Args) > 1 {
		return commons.LoadConfig(os.Args[1])
	}
	return appconfig.Load()
}
