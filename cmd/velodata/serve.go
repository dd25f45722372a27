package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/velodata/cycling.report/internal/api"
	"github.com/velodata/cycling.report/internal/report"
)

var serveListen string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard and JSON API over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := loadSnapshot()
		if err != nil {
			return err
		}

		mux := http.NewServeMux()
		mux.Handle("/api/", http.StripPrefix("/api", api.NewServer(snap).ServeMux()))
		mux.Handle("/charts/", http.StripPrefix("/charts", report.NewHandler(snap).ServeMux()))
		mux.Handle("/", http.RedirectHandler("/charts/", http.StatusFound))

		server := &http.Server{
			Addr:    serveListen,
			Handler: api.LoggingMiddleware(mux),
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		errc := make(chan error, 1)
		go func() {
			cmd.Printf("serving dashboard on %s\n", serveListen)
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				errc <- err
			}
		}()

		select {
		case err := <-errc:
			return err
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveListen, "listen", ":8080", "listen address")
	rootCmd.AddCommand(serveCmd)
}
