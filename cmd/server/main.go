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

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/kiliankoe/otiyot/internal/config"
	"github.com/kiliankoe/otiyot/internal/logging"
	"github.com/kiliankoe/otiyot/internal/screen"
	"github.com/kiliankoe/otiyot/internal/tui"
)

const version = "v0.3.0-dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfg config.Config

	root := &cobra.Command{
		Use:     "otiyot",
		Short:   "Hebrew letter games for kids",
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// A missing .env is fine; the environment may be set some other way.
			_ = godotenv.Load()
			c, err := config.FromEnv()
			if err != nil {
				return err
			}
			cfg = c
			return nil
		},
		SilenceUsage: true,
	}

	serve := newServeCmd(&cfg)
	root.AddCommand(serve, newPlayCmd(&cfg))
	// Running without a subcommand serves.
	root.RunE = serve.RunE
	root.Flags().AddFlagSet(serve.Flags())
	return root
}

func newServeCmd(cfg *config.Config) *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the games over HTTP and Socket.IO",
		RunE: func(cmd *cobra.Command, args []string) error {
			if port != "" {
				cfg.Port = port
				if err := cfg.Validate(); err != nil {
					return err
				}
			}
			if err := logging.Setup(cfg.LogLevel, cfg.LogFormat, os.Stdout); err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, *cfg)
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "Port to listen on (overrides PORT env var)")
	return cmd
}

func newPlayCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Play in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			// The terminal belongs to the game; only warnings go to stderr.
			if err := logging.Setup("warn", "json", os.Stderr); err != nil {
				return err
			}
			return tui.Run(cfg.ScreenOptions())
		},
	}
}

func serve(ctx context.Context, cfg config.Config) error {
	mgr := screen.NewManager(cfg.ScreenOptions())
	defer mgr.CloseAll()

	r, io := newRouter(cfg, mgr)
	defer io.Close()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("version", version).Msg("listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}
	log.Info().Int("screens", mgr.Count()).Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
