package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"peet-planner/internal/app"
	"peet-planner/internal/card"
	"peet-planner/internal/clipper"
	"peet-planner/internal/config"
	"peet-planner/internal/database"
	"peet-planner/internal/engine"
	"peet-planner/internal/llm"
	"peet-planner/internal/metrics"
	"peet-planner/internal/storage"
	"peet-planner/internal/telegram"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	// 2. Initialize Infrastructure
	var textGen llm.TextGenerator
	if cfg.LLMProvider == "gemini" {
		geminiClient, err := llm.NewGeminiClient(ctx, cfg)
		if err != nil {
			log.Fatalf("Failed to create Gemini client: %v", err)
		}
		defer geminiClient.Close()
		textGen = geminiClient
	} else {
		textGen = llm.NewGroqClient(cfg)
	}

	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	archive, err := storage.NewPlanArchive(cfg.PlanArchivePath)
	if err != nil {
		log.Fatalf("Failed to initialize plan archive: %v", err)
	}

	metricsStore := metrics.NewStore(db.SQL)

	// 3. Initialize Services
	application := app.NewApp(
		engine.NewDefault(),
		textGen,
		app.NewPlanRepository(db.SQL),
		archive,
		metricsStore,
		clipper.NewClipper(textGen),
		cfg,
	)

	cards, err := card.NewService(cfg.CardSigningSecret, 0)
	if err != nil {
		log.Fatalf("Failed to initialize card service: %v", err)
	}

	// 4. Initialize Telegram Bot
	bot, err := telegram.NewBot(cfg, application, telegram.NewPrefsRepository(db.SQL), cards, metricsStore)
	if err != nil {
		log.Fatalf("Failed to initialize Telegram Bot: %v", err)
	}

	// 5. Start Server with Graceful Shutdown
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	bot.RegisterHandlers()

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: nil,
	}

	go func() {
		log.Printf("Telegram Bot Server listening on port %s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
