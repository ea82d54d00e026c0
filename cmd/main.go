package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"promptpilot_server/api"
	"promptpilot_server/config"
	internalapi "promptpilot_server/internal/api"
	"promptpilot_server/internal/preview"
	"promptpilot_server/internal/store"
)

func main() {
	// --- Load .env file ---
	// This must run BEFORE viper loads config so env vars are visible.
	err := godotenv.Load()
	if err != nil {
		// .env is optional (e.g., in production).
		if !os.IsNotExist(err) {
			log.Printf("Warning: Error loading .env file: %v", err)
		} else {
			log.Println("Info: .env file not found, relying on system environment variables.")
		}
	} else {
		log.Println("Info: Loaded environment variables from .env file.")
	}

	// --- Configuration Loading ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Cannot load config: %v", err)
	}

	// --- Dependency Initialization ---
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("Could not open database at %s: %v", cfg.DBPath, err)
	}
	defer st.Close()
	log.Printf("Database ready at %s", cfg.DBPath)

	coalescer := store.NewCoalescer(st, time.Duration(cfg.SaveQuietPeriodMS)*time.Millisecond)
	simulator := preview.NewSimulator(time.Duration(cfg.BuildStepDelayMS) * time.Millisecond)

	apiHandler := internalapi.NewAPIHandler(
		st,
		coalescer,
		simulator,
		cfg.AIBackend,
		cfg.OpenAIKey,
		cfg.AgentModel,
		cfg.GeminiKey,
		cfg.GeminiModel,
	)

	// --- Start API Server ---
	appEnv := os.Getenv("APP_ENV")
	if appEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
		log.Println("Running in Gin Debug Mode")
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if cfg.AllowedOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(cfg.AllowedOrigins, ",")
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-User-Id", "X-Gemini-Key"}
	router.Use(cors.New(corsConfig))

	api.RegisterRoutes(router, apiHandler)

	server := &http.Server{
		Addr:    cfg.ServerAddress,
		Handler: router,
		// Set timeouts to prevent slow client attacks. WriteTimeout is
		// generous because generation calls can take most of a minute.
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Starting API server on %s\n", cfg.ServerAddress)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("API server listen error: %s\n", err)
		}
		log.Println("API server has stopped listening.")
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Printf("Received signal: %s. Shutting down server...", sig)

	shutdownCtx, serverCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer serverCancel()

	log.Println("Shutting down API server...")
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("API server forced shutdown error: %v", err)
	} else {
		log.Println("API server gracefully stopped.")
	}

	// Flush buffered editor saves before the database closes.
	log.Println("Flushing pending file saves...")
	if err := coalescer.Close(shutdownCtx); err != nil {
		log.Printf("Error flushing pending saves: %v", err)
	}

	log.Println("Application exiting.")
}
