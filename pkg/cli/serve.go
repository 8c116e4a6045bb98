package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"github.com/wedlock-lab/mandap/pkg/cli/config"
	controller "github.com/wedlock-lab/mandap/pkg/controller/http"
	"github.com/wedlock-lab/mandap/pkg/domain/types"
	"github.com/wedlock-lab/mandap/pkg/usecase"
)

func cmdServe() *cli.Command {
	var (
		serverCfg    config.Server
		authCfg      config.Auth
		rosterCfg    config.Roster
		twilioCfg    config.Twilio
		sendgridCfg  config.SendGrid
		slackCfg     config.Slack
		firestoreCfg config.Firestore
		eventCfg     config.Event
	)

	flags := joinFlags(
		serverCfg.Flags(),
		authCfg.Flags(),
		rosterCfg.Flags(),
		twilioCfg.Flags(),
		sendgridCfg.Flags(),
		slackCfg.Flags(),
		firestoreCfg.Flags(),
		eventCfg.Flags(),
	)

	return &cli.Command{
		Name:  "serve",
		Usage: "Start HTTP server",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			logger.Info("Starting mandap server",
				slog.String("addr", serverCfg.Addr),
				slog.Any("auth", authCfg),
				slog.Any("roster", rosterCfg),
				slog.Any("twilio", twilioCfg),
				slog.Any("sendgrid", sendgridCfg),
				slog.Any("slack", slackCfg),
				slog.Any("firestore", firestoreCfg),
				slog.Any("event", eventCfg),
			)

			repo, err := firestoreCfg.Configure(ctx)
			if err != nil {
				return err
			}
			defer repo.Close()

			event, err := eventCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load event config")
			}

			ops := slackCfg.Configure(logger)

			if eventCfg.DryRun {
				logger.Warn("Dry-run mode enabled - no provider will be contacted")
			}

			// Create use cases
			authUC := usecase.NewAuth(authCfg.Password)
			groupsUC := usecase.NewGroups(rosterCfg.Configure(), repo)
			notifyUC := usecase.NewNotify(
				twilioCfg.ConfigureSMS(),
				twilioCfg.ConfigureWhatsApp(),
				sendgridCfg.Configure(event),
				repo,
				ops,
				event,
				eventCfg.DryRun,
			)
			statusUC := usecase.NewStatus(repo)

			// Mirror operator status changes into the ops channel
			statusUC.Subscribe(func(n types.GroupNumber, s types.QueueStatus) {
				ops.NotifyStatusChange(ctx, n.String(), s.String())
			})

			server := controller.NewServer(
				ctx,
				serverCfg.Addr,
				authUC,
				groupsUC,
				notifyUC,
				statusUC,
				authCfg.IsConfigured(),
			)

			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("HTTP server error", slog.Any("error", err))
				}
			}()

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
