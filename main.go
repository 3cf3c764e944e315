package main

import (
	"context"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os/signal"
	"syscall"

	"telemarketing/adapters/charts"
	"telemarketing/adapters/excel"
	"telemarketing/internal"
	"telemarketing/internal/config"
	"telemarketing/internal/dashboard"
	"telemarketing/internal/session"
	"telemarketing/ui"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	internal.DefaultLogger.SetLevel(internal.ParseLogLevel(appConfig.Logging.Level))
	gin.SetMode(appConfig.Server.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sessions := session.NewStore(appConfig.Dashboard.SessionTTL)
	sessions.StartSweeper(ctx, appConfig.Dashboard.SessionTTL/4)

	readerConfig := excel.DefaultReaderConfig()
	readerConfig.MaxBytes = appConfig.Upload.MaxBytes

	service := dashboard.NewService(dashboard.Config{
		OutcomeColumn:       appConfig.Dashboard.OutcomeColumn,
		PreviewRows:         appConfig.Dashboard.PreviewRows,
		MaxConcurrentParses: appConfig.Upload.MaxConcurrentParses,
	}, excel.NewDataReader(readerConfig), charts.NewBarChartRenderer())

	server, err := ui.NewServer(service, sessions)
	if err != nil {
		log.Fatalf("Failed to initialize server: %v", err)
	}

	// Start pprof server for performance profiling
	if appConfig.Profiling.Enabled {
		go func() {
			log.Printf("Performance profiling server starting on :%s", appConfig.Profiling.Port)
			if err := http.ListenAndServe(":"+appConfig.Profiling.Port, nil); err != nil {
				log.Printf("pprof server failed: %v", err)
			}
		}()
	}

	httpServer := &http.Server{
		Addr:    ":" + appConfig.Server.Port,
		Handler: server.Handler(),
	}
	go func() {
		<-ctx.Done()
		log.Println("Shutting down")
		if err := httpServer.Shutdown(context.Background()); err != nil {
			log.Printf("Shutdown failed: %v", err)
		}
	}()

	log.Printf("Starting telemarketing dashboard on port %s", appConfig.Server.Port)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
