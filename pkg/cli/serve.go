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

	"github.com/sustain-lab/esgradar/pkg/cli/config"
	httpctrl "github.com/sustain-lab/esgradar/pkg/controller/http"
	"github.com/sustain-lab/esgradar/pkg/service/worker"
	"github.com/sustain-lab/esgradar/pkg/usecase"
	"github.com/sustain-lab/esgradar/pkg/utils/logging"
)

func cmdServe() *cli.Command {
	var addr string
	var reviewOrgs []string
	var reviewInterval time.Duration
	var refDataCfg config.RefData
	var repoCfg config.Repository
	var slackCfg config.Slack

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("ESGRADAR_ADDR"),
			Destination: &addr,
		},
		&cli.StringSliceFlag{
			Name:        "review-org",
			Usage:       "Organization IDs to review periodically (repeatable)",
			Sources:     cli.EnvVars("ESGRADAR_REVIEW_ORGS"),
			Destination: &reviewOrgs,
		},
		&cli.DurationFlag{
			Name:        "review-interval",
			Usage:       "Interval between periodic review cycles",
			Value:       24 * time.Hour,
			Sources:     cli.EnvVars("ESGRADAR_REVIEW_INTERVAL"),
			Destination: &reviewInterval,
		},
	}

	// Add shared config flags
	flags = append(flags, refDataCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			refData, err := refDataCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load reference data")
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			ucOpts := []usecase.Option{
				usecase.WithReferenceData(refData),
			}

			notifier, err := slackCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure Slack notifier")
			}
			if notifier != nil {
				ucOpts = append(ucOpts, usecase.WithNotifier(notifier))
				logging.Default().Info("Slack gap alerts enabled", "slack", slackCfg)
			} else {
				logging.Default().Info("Slack not configured, gap alerts disabled")
			}

			uc := usecase.New(repo, ucOpts...)

			var reviewWorker *worker.ReviewWorker
			if len(reviewOrgs) > 0 {
				reviewWorker = worker.NewReviewWorker(uc, reviewOrgs, reviewInterval)
				if err := reviewWorker.Start(ctx); err != nil {
					return goerr.Wrap(err, "failed to start review worker")
				}
			}

			httpHandler, err := httpctrl.New(uc)
			if err != nil {
				return goerr.Wrap(err, "failed to create http server")
			}
			server := &http.Server{
				Addr:              addr,
				Handler:           httpHandler,
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

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				if reviewWorker != nil {
					reviewWorker.Stop()
				}

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
