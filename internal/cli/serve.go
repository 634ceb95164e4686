package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/sysviz/sysviz/internal/api"
	"github.com/sysviz/sysviz/pkg/config"
)

const shutdownTimeout = 10 * time.Second

// serveCommand creates the serve command for running the diagram HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the diagram HTTP API",
		Long: `Run the diagram HTTP API.

The server computes layouts for submitted SysML models and stores the
results. Diagrams persist in MongoDB when a URI is configured (config file
or SYSVIZ_MONGO_URI), otherwise in memory. Layout caching uses Redis when
configured (SYSVIZ_REDIS_URL), otherwise the local file cache.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}

	store, err := c.newStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initialize store: %w", err)
	}
	defer store.Close(context.Background())

	runner, err := c.newRunner(ctx, cfg, false)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           api.NewServer(store, runner, cfg, c.Logger).Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", cfg.Server.Addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	c.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// newStore selects the diagram store: MongoDB when configured, otherwise
// in-memory.
func (c *CLI) newStore(ctx context.Context, cfg config.Config) (api.Store, error) {
	if cfg.Server.MongoURI == "" {
		printWarning("No MongoDB URI configured, diagrams will not persist")
		return api.NewMemoryStore(), nil
	}
	return api.NewMongoStore(ctx, cfg.Server.MongoURI, cfg.Server.MongoDatabase)
}
