package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/paper-code/go-papercode/internal/httpapi"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalog and generation API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := a.build()
			if err != nil {
				return err
			}
			sc := a.cfg.Server
			if err := os.MkdirAll(sc.WorkDir, 0o755); err != nil {
				return fmt.Errorf("create work dir %s: %w", sc.WorkDir, err)
			}
			if addr == "" {
				addr = sc.Addr()
			}

			api := httpapi.New(d.orchestrator, d.catalog, httpapi.Options{
				WorkDir:        sc.WorkDir,
				RequestTimeout: sc.RequestTimeout,
				AllowedOrigins: sc.CORS.AllowedOrigins,
				ServiceName:    a.cfg.App.Name,
				Version:        a.cfg.App.Version,
				Tracing:        a.cfg.Tracing.Enabled,
				Metrics:        a.cfg.Metrics.Enabled,
				MetricsPath:    a.cfg.Metrics.Path,
				TemplateRoot:   sc.TemplateRoot,
			}, a.logger)

			srv := &http.Server{
				Addr:              addr,
				Handler:           api.Handler(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServer(ctx, srv, sc.ShutdownTimeout, a)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default server.host:server.port)")
	return cmd
}

// runServer serves until ctx is done, then drains connections for at most
// shutdownTimeout.
func runServer(ctx context.Context, srv *http.Server, shutdownTimeout time.Duration, a *app) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("server shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
