package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/bfbl/moneyglow/internal/ai"
	"github.com/bfbl/moneyglow/internal/database"
	"github.com/bfbl/moneyglow/internal/email"
	"github.com/bfbl/moneyglow/internal/logging"
	"github.com/bfbl/moneyglow/internal/server"
	"github.com/bfbl/moneyglow/internal/session"
)

func main() {
	logger := logging.Setup(os.Getenv("MONEYGLOW_LOG_LEVEL"), os.Getenv("MONEYGLOW_LOG_FORMAT"))

	port := os.Getenv("MONEYGLOW_PORT")
	if port == "" {
		port = "8080"
	}

	dbPath := os.Getenv("MONEYGLOW_DB_PATH")
	if dbPath == "" {
		dbPath = "moneyglow.db"
	}

	secret := os.Getenv("MONEYGLOW_SESSION_SECRET")
	if secret == "" {
		log.Fatal("MONEYGLOW_SESSION_SECRET is required")
	}

	appURL := os.Getenv("MONEYGLOW_APP_URL")
	if appURL == "" {
		appURL = "http://localhost:" + port
	}

	db, err := database.Open(dbPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	emailClient := email.NewClient(
		os.Getenv("MAILJET_API_KEY"),
		os.Getenv("MAILJET_SECRET_KEY"),
		os.Getenv("MAILJET_SENDER_EMAIL"),
		appURL,
	)
	if !emailClient.Configured() {
		logger.Warn("mailjet credentials not set, magic link emails will fail")
	}

	aiClient := ai.NewClient(os.Getenv("ANTHROPIC_API_KEY"))
	if !aiClient.Configured() {
		logger.Warn("anthropic api key not set, advice and chat are disabled")
	}

	codec := session.NewCodec(secret)
	cfg := server.Config{
		SecureCookies: strings.HasPrefix(appURL, "https://"),
	}
	srv := server.New(db, emailClient, aiClient, codec, cfg, logger)

	// Hourly sweep of expired magic links and stale rate limit buckets.
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			if n, err := srv.MagicLinkStore().DeleteExpired(time.Now()); err != nil {
				logger.Error("cleanup magic links", "error", err)
			} else if n > 0 {
				logger.Info("cleaned up expired magic links", "count", n)
			}
			srv.RateLimiter().Cleanup()
		}
	}()

	httpServer := &http.Server{
		Addr:         ":" + port,
		Handler:      srv.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		fmt.Printf("MoneyGlow running at http://localhost:%s\n", port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\nShutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Fatalf("shutdown error: %v", err)
	}
}
