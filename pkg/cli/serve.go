package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/takeline-lab/takeline/pkg/cli/config"
	httpctrl "github.com/takeline-lab/takeline/pkg/controller/http"
	"github.com/takeline-lab/takeline/pkg/usecase"
	"github.com/takeline-lab/takeline/pkg/utils/logging"
)

func cmdServe() *cli.Command {
	var addr string
	var repoCfg config.Repository
	var assembliesCfg config.Assemblies
	var pricingCfg config.Pricing
	var plansCfg config.Plans
	var sentryCfg config.Sentry

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("TAKELINE_ADDR"),
			Destination: &addr,
		},
	}
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, assembliesCfg.Flags()...)
	flags = append(flags, pricingCfg.Flags()...)
	flags = append(flags, plansCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			flush, err := sentryCfg.Configure(c.Root().Version)
			if err != nil {
				return goerr.Wrap(err, "failed to configure error reporting")
			}
			defer flush()

			// Initialize repository based on backend type
			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			// Load assembly catalog
			catalog, err := assembliesCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load assembly catalog")
			}

			ucOpts := []usecase.Option{
				usecase.WithAssemblyCatalog(catalog),
			}

			// Initialize pricing service if configured
			pricingSvc, err := pricingCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure pricing service")
			}
			if pricingSvc != nil {
				ucOpts = append(ucOpts, usecase.WithPricingService(pricingSvc))
				logging.Default().Info("Pricing service enabled")
			} else {
				logging.Default().Info("Pricing service not configured, pricing features will be limited")
			}

			// Initialize plan store if configured
			planStore, err := plansCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to configure plan store")
			}
			if planStore != nil {
				defer func() {
					if err := planStore.Close(); err != nil {
						logging.Default().Error("failed to close plan store", "error", err.Error())
					}
				}()
				ucOpts = append(ucOpts, usecase.WithPlanStore(planStore))
				logging.Default().Info("Plan store enabled")
			} else {
				logging.Default().Info("Plans bucket not configured, plan features will be limited")
			}

			uc := usecase.New(repo, ucOpts...)

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(uc),
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			// Wait for shutdown signal or server error
			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}
