package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"gate-tracker-server/config"
	"gate-tracker-server/db"
	"gate-tracker-server/handlers"
	"gate-tracker-server/ingestion"
	"gate-tracker-server/middleware"
	"gate-tracker-server/suggest"
	"gate-tracker-server/syllabus"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	ctx := context.Background()

	// Initialize database connection pool
	store, err := db.InitDB(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v", err)
	}
	defer store.Close()

	if err := store.CreateSchema(ctx); err != nil {
		log.Fatalf("Error creating database schema: %v", err)
	}

	catalog, err := syllabus.Load()
	if err != nil {
		log.Fatalf("Error loading syllabus: %v", err)
	}

	engine := suggest.NewEngine().WithReviewThreshold(cfg.Suggest.ReviewThreshold)

	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.HTMLRender = handlers.NewRenderer("templates")

	handlers.RegisterRoutes(router, handlers.Deps{
		Store:         store,
		Catalog:       catalog,
		Engine:        engine,
		JWTSigningKey: cfg.Auth.JWTSigningKey,
		Issuer:        cfg.Auth.Issuer,
	})

	// Start background inbox watcher
	watchCtx, stopWatch := context.WithCancel(ctx)
	defer stopWatch()
	if cfg.Ingestion.Watch {
		pipeline := &ingestion.Pipeline{
			PdftotextPath: cfg.Ingestion.PdftotextPath,
			OutputDir:     cfg.Ingestion.OutputDir,
			Engine:        engine,
			Errors:        store,
		}
		go func() {
			if err := os.MkdirAll(cfg.Ingestion.InboxDir, 0o755); err != nil {
				log.Printf("Error creating inbox %s: %v", cfg.Ingestion.InboxDir, err)
				return
			}
			if err := pipeline.Watch(watchCtx, cfg.Ingestion.InboxDir); err != nil {
				log.Printf("Inbox watcher stopped: %v", err)
				store.LogAdminEvent(context.Background(), "system", "watch_failed", cfg.Ingestion.InboxDir, err.Error())
			}
		}()
	}

	listener, err := listenWithFallback(cfg.ServerPort, cfg.PortFallbackAttempts)
	if err != nil {
		log.Fatalf("Server startup error: %v", err)
	}

	srv := &http.Server{
		Handler: router,
	}

	// Goroutine to gracefully shut down the server
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("Shutting down server...")
		stopWatch()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Fatalf("Server forced to shutdown: %v", err)
		}
	}()

	log.Printf("GATE Tracker server starting on %s", listener.Addr())
	if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Server error: %v", err)
	}
	log.Println("Server exited gracefully.")
}

// listenWithFallback binds addr, moving to the next port while the current
// one is in use, for up to attempts tries.
func listenWithFallback(addr string, attempts int) (net.Listener, error) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT %q: %w", addr, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT %q: %w", addr, err)
	}
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		candidate := net.JoinHostPort(host, strconv.Itoa(port+i))
		l, err := net.Listen("tcp", candidate)
		if err == nil {
			if i > 0 {
				log.Printf("Port %d in use, using %d instead", port, port+i)
			}
			return l, nil
		}
		if !errors.Is(err, syscall.EADDRINUSE) {
			return nil, err
		}
		lastErr = err
	}
	return nil, fmt.Errorf("no free port in %d..%d: %w", port, port+attempts-1, lastErr)
}
