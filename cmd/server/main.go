/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the PIXUP HR Engine server. Handles
  configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Parse command-line flags and environment
  2. Initialize SQLite store
  3. Create mailer client and API handler
  4. Configure HTTP router
  5. Start the anniversary notifier
  6. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port             HTTP server port (default: 8080)
  -db               SQLite database path (default: hr.db)
                    Use ":memory:" for in-memory database
  -avatars          Directory for uploaded avatar images (default: ./avatars)
  -site-url         Base URL used in invitation links
  -notify-interval  How often the anniversary notifier checks (default: 1h)
  -no-notify        Disable the background notifier

ENVIRONMENT:
  RESEND_API_KEY             API key for outbound email (empty disables sending)
  NOTIFICATION_SENDER        From address for outbound email
  ADMIN_NOTIFICATION_EMAIL   CC'd on every congratulation email

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Stop the notifier and close the database
  4. Exit

EXAMPLES:
  # Run with file database
  ./server -db="./data/hr.db"

  # Run without the background notifier
  ./server -no-notify

SEE ALSO:
  - api/server.go: Router configuration
  - api/scheduler.go: Anniversary notifier
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pixup/hr-engine/api"
	"github.com/pixup/hr-engine/mailer"
	"github.com/pixup/hr-engine/store/sqlite"
)

func main() {
	// Flags
	port := flag.Int("port", 8080, "HTTP server port")
	dbPath := flag.String("db", "hr.db", "SQLite database path")
	avatarDir := flag.String("avatars", "./avatars", "Directory for uploaded avatar images")
	siteURL := flag.String("site-url", "", "Base URL used in invitation links")
	notifyInterval := flag.Duration("notify-interval", time.Hour, "How often the anniversary notifier checks")
	noNotify := flag.Bool("no-notify", false, "Disable the background notifier")
	flag.Parse()

	// Initialize store
	store, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer store.Close()

	// Initialize mailer from environment
	apiKey := os.Getenv("RESEND_API_KEY")
	if apiKey == "" {
		log.Println("Warning: RESEND_API_KEY not set, outbound email will fail")
	}
	sender := mailer.NewClient(apiKey,
		os.Getenv("NOTIFICATION_SENDER"),
		os.Getenv("ADMIN_NOTIFICATION_EMAIL"))

	// Initialize handler
	handler := api.NewHandler(store, sender, *avatarDir)
	if *siteURL != "" {
		handler.SiteURL = *siteURL
	}

	// Create router
	router := api.NewRouter(handler)

	// Start the anniversary notifier
	notifier := api.NewNotifier(store, sender)
	notifier.CheckInterval = *notifyInterval
	notifier.Enabled = !*noNotify
	notifier.Start()
	defer notifier.Stop()

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("🚀 Server starting on http://localhost:%d", *port)
		log.Printf("📊 API available at http://localhost:%d/api", *port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
