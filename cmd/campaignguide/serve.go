package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/campaignguide/internal/presentation/tui"
	httpAdapter "github.com/aretw0/campaignguide/pkg/adapters/http"
	"github.com/aretw0/campaignguide/pkg/observability"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long: `Serves the campaign over a JSON API: traces, next scenario, decisions, undo,
graphs and a live trace stream per campaign instance. Prometheus metrics are
exposed on /metrics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			addr := a.cfg.HTTPAddr
			if cmd.Flags().Changed("addr") {
				addr, _ = cmd.Flags().GetString("addr")
			}

			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
			metrics, err := observability.NewMetrics(reg)
			if err != nil {
				return err
			}

			eng, closer, err := a.newEngine(metrics.Hooks())
			if err != nil {
				return err
			}
			defer closer.Close()

			r := chi.NewRouter()
			r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
			r.Mount("/", httpAdapter.NewHandler(eng, httpAdapter.WithLogger(a.logger)))

			srv := &http.Server{
				Addr:              addr,
				Handler:           r,
				ReadHeaderTimeout: 10 * time.Second,
			}

			if isTerminal(cmd.ErrOrStderr()) {
				tui.PrintBanner(cmd.ErrOrStderr())
			}

			serverErrors := make(chan error, 1)
			go func() {
				a.logger.Info("campaign guide server listening", "address", addr, "campaign", eng.Name, "store", a.cfg.StoreKind)
				serverErrors <- srv.ListenAndServe()
			}()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			select {
			case err := <-serverErrors:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return fmt.Errorf("server error: %w", err)
			case <-ctx.Done():
				a.logger.Info("shutting down server")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := srv.Shutdown(shutdownCtx); err != nil {
					srv.Close()
					return fmt.Errorf("graceful shutdown did not complete: %w", err)
				}
				a.logger.Info("server stopped gracefully")
				return nil
			}
		},
	}
	cmd.Flags().String("addr", "", "Address to listen on (env CAMPAIGNGUIDE_HTTP_ADDR)")
	return cmd
}
