package serve

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"scamshield/internal/api/server"
	"scamshield/internal/app"
	applog "scamshield/internal/app/logger"
	"scamshield/internal/config"
)

var addr string

func init() {
	Cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address, e.g. :8080 (default from environment)")
}

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the analysis HTTP API",
	Long: `Run the analysis HTTP API.

- POST /api/v1/analyze scores message text
- POST /api/v1/analyze/audio transcribes and scores a recording
- GET /api/v1/history and /api/v1/engines expose state`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := config.LoadEnv(); err != nil {
			log.Fatalf("failed to load environment: %v", err)
		}
		settings, err := config.FromEnv()
		if err != nil {
			log.Fatalf("invalid configuration: %v", err)
		}

		listenAddr := settings.ListenAddr
		if addr != "" {
			listenAddr = addr
		}

		a := app.InitializeAnalyzer()
		defer a.Store().Close()

		logger := applog.MustNewLogger(settings.Development)
		defer logger.Sync()

		srv := server.NewServer(server.Config{
			Addr:         listenAddr,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 10 * time.Minute,
			IdleTimeout:  2 * time.Minute,
			Development:  settings.Development,
		}, a, logger)

		errCh := make(chan error, 1)
		go func() {
			errCh <- srv.Start()
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case err := <-errCh:
			if err != nil {
				log.Fatalf("server error: %v", err)
			}
		case <-quit:
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				log.Fatalf("shutdown error: %v", err)
			}
		}
	},
}
