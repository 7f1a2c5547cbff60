package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"task-api/internal/config"
	"task-api/internal/httpapi"
	"task-api/internal/ids"
	"task-api/internal/observability/jsonlog"
	"task-api/internal/store/memorystore"
	"task-api/internal/task"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the task HTTP service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := jsonlog.New(cmd.ErrOrStderr(), a.cfg.Log.Level, a.cfg.Log.Format)
			return runServe(cmd.Context(), a.cfg, logger)
		},
	}

	flags := cmd.Flags()
	flags.String("host", "0.0.0.0", "interface to bind")
	flags.Int("port", 8000, "port to listen on")
	flags.String("id-policy", string(ids.PolicySequential), "task id assignment: sequential (length+1) or monotonic")
	_ = a.v.BindPFlag("http.host", flags.Lookup("host"))
	_ = a.v.BindPFlag("http.port", flags.Lookup("port"))
	_ = a.v.BindPFlag("tasks.id_policy", flags.Lookup("id-policy"))

	return cmd
}

func newHTTPServer(cfg config.Config, logger *slog.Logger) (*http.Server, error) {
	policy, err := ids.ParsePolicy(cfg.Tasks.IDPolicy)
	if err != nil {
		return nil, err
	}

	repo := memorystore.NewTaskStore(ids.New(policy), memorystore.DefaultSeed())
	service := task.NewService(repo)

	return &http.Server{
		Addr:              cfg.HTTP.Addr(),
		Handler:           httpapi.NewServer(service, logger),
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
	}, nil
}

// runServe blocks until ctx is cancelled or SIGINT/SIGTERM arrives, then
// drains in-flight requests for up to cfg.HTTP.ShutdownTimeout.
func runServe(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	srv, err := newHTTPServer(cfg, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		logger.Info("listening", "addr", srv.Addr, "id_policy", cfg.Tasks.IDPolicy)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	logger.Info("bye")
	return nil
}
