package cli

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vaultpass/passgen/internal/handler"
	"github.com/vaultpass/passgen/internal/session"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API and web form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServer(ctx, a)
		},
	}

	f := cmd.Flags()
	f.StringP("port", "p", "8080", "listen port")
	f.Duration("session-ttl", 30*time.Minute, "lifetime of a generator session")
	a.v.BindPFlag("port", f.Lookup("port"))
	a.v.BindPFlag("session_ttl", f.Lookup("session-ttl"))

	return cmd
}

func runServer(ctx context.Context, a *app) error {
	src, err := a.source()
	if err != nil {
		return err
	}
	// The server has no display of its own; browsers copy on their side.
	cb, err := a.clipboard("memory")
	if err != nil {
		return err
	}

	store, err := session.NewStore(session.Options{
		TTL:         a.cfg.SessionTTL,
		MaxSessions: a.cfg.MaxSessions,
		Source:      src,
		Clipboard:   cb,
	})
	if err != nil {
		return err
	}
	defer store.Close()

	srv := &http.Server{
		Addr: ":" + a.cfg.Port,
		Handler: handler.NewRouter(ctx, handler.RouterConfig{
			Store:          store,
			JWTSecret:      a.cfg.JWTSecret,
			Source:         src,
			RateLimitRPS:   a.cfg.RateLimitRPS,
			RateLimitBurst: a.cfg.RateLimitBurst,
			MetricsPath:    a.cfg.MetricsPath,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "port", a.cfg.Port, "env", a.cfg.Env, "random_source", a.cfg.RandomSource)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			slog.Error("server error", "error", err)
		}
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		return err
	}

	slog.Info("server stopped")
	return nil
}
