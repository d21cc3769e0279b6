package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"go.uber.org/zap"

	app "github.com/styleforge/datagovern/internal/application/governance"
	"github.com/styleforge/datagovern/internal/bootstrap"
	infrafile "github.com/styleforge/datagovern/internal/infrastructure/file"
	"github.com/styleforge/datagovern/internal/infrastructure/gemini"
	"github.com/styleforge/datagovern/internal/infrastructure/memory"
	"github.com/styleforge/datagovern/internal/infrastructure/transmit"
)

func main() {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		log.Fatal("GEMINI_API_KEY is required")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()
	model, err := gemini.NewClient(ctx, gemini.Config{
		APIKey:     apiKey,
		TextModel:  os.Getenv("GEMINI_TEXT_MODEL"),
		ImageModel: os.Getenv("GEMINI_IMAGE_MODEL"),
	})
	if err != nil {
		log.Fatalf("failed to create gemini client: %v", err)
	}
	defer model.Close()

	tasks := memory.NewTaskRepository()
	rows := memory.NewAttributeStore()
	fieldConfig := memory.NewFieldConfigStore()

	runner := app.NewEnrichmentRunner(tasks, rows, fieldConfig, model, app.EnrichmentRunnerConfig{
		CallTimeout: time.Duration(parseIntEnv("INFERENCE_TIMEOUT_SECONDS", 30)) * time.Second,
	}, logger)

	server := bootstrap.NewHTTPServer(bootstrap.Dependencies{
		Logger:      logger,
		Tasks:       tasks,
		Rows:        rows,
		FieldConfig: fieldConfig,
		Source:      infrafile.NewLocalSource(getEnv("UPLOAD_BASE_DIR", ".")),
		Concepts:    model,
		Images:      model,
		Transmitter: transmit.NewHTTPTransmitter(time.Duration(parseIntEnv("TRANSMIT_TIMEOUT_SECONDS", 30)) * time.Second),
		Runner:      runner,
		PageSize:    parseIntEnv("VIEW_PAGE_SIZE", app.DefaultPageSize),
	})

	go func() {
		if err := server.Start(":" + port); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("graceful shutdown failed: %v", err)
	}
}

func parseIntEnv(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
