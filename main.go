// cycling.report serves an interactive dashboard over the French
// bicycle-accident dataset: one cleaning pass at startup, then
// read-only JSON and chart endpoints.
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/velodata/cycling.report/internal/api"
	"github.com/velodata/cycling.report/internal/config"
	"github.com/velodata/cycling.report/internal/dataset"
	"github.com/velodata/cycling.report/internal/report"
	"github.com/velodata/cycling.report/internal/version"
)

var (
	dataPath   = flag.String("data", "data/accidentsVelofull.csv", "Path to the accident CSV file")
	configPath = flag.String("config", "", "Path to a JSON config file (optional)")
	listen     = flag.String("listen", ":8080", "Listen address")
)

func main() {
	flag.Parse()
	log.Printf("cycling.report %s", version.String())

	if *listen == "" {
		log.Fatal("Listen address is required")
	}

	cfg := &config.Config{}
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
	}

	store := dataset.NewStore(cfg.PipelineOptions())
	snap, err := store.LoadFile(*dataPath)
	if err != nil {
		log.Fatalf("failed to load dataset: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mux := http.NewServeMux()
	mux.Handle("/api/", http.StripPrefix("/api", api.NewServer(snap).ServeMux()))
	mux.Handle("/charts/", http.StripPrefix("/charts", report.NewHandler(snap).ServeMux()))
	mux.Handle("/", http.RedirectHandler("/charts/", http.StatusFound))

	server := &http.Server{
		Addr:    *listen,
		Handler: api.LoggingMiddleware(mux),
	}

	go func() {
		log.Printf("serving dashboard on %s", *listen)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down HTTP server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}
	log.Printf("graceful shutdown complete")
}
