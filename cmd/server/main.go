/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the shipment forecast server. Handles flags,
  configuration, dependency wiring, and graceful shutdown.

STARTUP SEQUENCE:
  1. Parse command-line flags
  2. Load engine config (missing file -> stock defaults)
  3. Open SQLite store
  4. Configure router and start serving
  5. Drain on SIGINT/SIGTERM (30s timeout)

COMMAND-LINE FLAGS:
  -port    HTTP server port (default: 8080)
  -db      SQLite database path (default: forecasts.db)
           Use ":memory:" for an in-memory database
  -config  Engine config YAML (default: engine.yaml)

EXAMPLES:
  ./server -db=./data/forecasts.db -config=./engine.yaml
  ./server -db=:memory: -port=3000
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/bloomgate/shipment-engine/api"
	"github.com/bloomgate/shipment-engine/config"
	"github.com/bloomgate/shipment-engine/store/sqlite"
)

func main() {
	port := flag.Int("port", 8080, "HTTP server port")
	dbPath := flag.String("db", "forecasts.db", "SQLite database path (':memory:' for in-memory)")
	cfgPath := flag.String("config", "engine.yaml", "engine config YAML path")
	flag.Parse()

	log, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatal("failed to load config", zap.String("path", *cfgPath), zap.Error(err))
	}
	if warn := cfg.PatternWarning(); warn != nil {
		log.Warn("configured pattern corrected", zap.String("detail", warn.Message()))
	}

	store, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatal("failed to open store", zap.String("db", *dbPath), zap.Error(err))
	}
	defer store.Close()

	handler := api.NewHandler(store, cfg, log)
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", *port),
		Handler: api.NewRouter(handler),
	}

	go func() {
		log.Info("server listening",
			zap.Int("port", *port),
			zap.String("db", *dbPath),
			zap.Bool("adjust_shipping_days", cfg.AdjustShippingDays))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("shutdown error", zap.Error(err))
	}
}
