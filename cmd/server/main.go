package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"legal-roster/app"
	"legal-roster/config"
	"legal-roster/database"
	"legal-roster/handlers"
	"legal-roster/logger"

	"github.com/gin-gonic/gin"
)

func main() {
	configFile := flag.String("c", envOr("ROSTER_CONFIG", ""), "path to JSON configuration file (config.json when present)")
	flag.Parse()

	// Credentials may live in a .env next to the binary or at the project root
	cfg, err := config.LoadWithOptions(config.LoadOptions{
		ConfigFile: *configFile,
		EnvFile:    envFile(),
	})
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appLog := app.NewLogger(cfg, os.Stderr)

	a, err := app.New(ctx, cfg, appLog)
	if err != nil {
		if errors.Is(err, database.ErrConnectivity) {
			appLog.WithField("error", err.Error()).Fatal("Failed to initialize database pool")
		}
		log.Fatalf("Failed to start: %v", err)
	}
	defer a.Close()

	// Setup Gin router
	r := gin.New()
	r.Use(gin.Recovery(), handlers.RequestLogger(a.Log))

	handlers.NewRosterHandler(a.Records).RegisterRoutes(r)
	handlers.NewExportHandler(a.Exports, a.Storage).RegisterRoutes(r)

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		a.Log.WithField("error", err.Error()).Error("Failed to listen")
		a.Close()
		os.Exit(1)
	}

	a.Log.WithField("addr", ln.Addr().String()).Info("Server starting")
	if err := serve(ctx, srv, ln, a.Log, shutdownGrace); err != nil {
		a.Log.WithField("error", err.Error()).Error("Server stopped")
		a.Close()
		os.Exit(1)
	}
}

const shutdownGrace = 15 * time.Second

// serve runs srv on ln until ctx is done, then stops accepting and waits up
// to grace for in-flight requests.
func serve(ctx context.Context, srv *http.Server, ln net.Listener, log logger.Logger, grace time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func envFile() string {
	for _, p := range []string{".env", "../../.env"} {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
