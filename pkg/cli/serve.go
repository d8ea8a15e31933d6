package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/psq-lab/psiquo/pkg/cli/config"
	httpctrl "github.com/psq-lab/psiquo/pkg/controller/http"
	"github.com/psq-lab/psiquo/pkg/service/render"
	"github.com/psq-lab/psiquo/pkg/usecase"
	"github.com/psq-lab/psiquo/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

const shutdownGrace = 15 * time.Second

func cmdServe() *cli.Command {
	var addr string
	var noAuth bool
	var repoCfg config.Repository
	var blobCfg config.Blob
	var assessCfg config.Assessment

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("PSIQUO_ADDR"),
			Destination: &addr,
		},
		&cli.BoolFlag{
			Name:        "no-auth",
			Usage:       "Skip authentication and take the acting company from the X-Company-ID header (development only)",
			Category:    "Authentication",
			Sources:     cli.EnvVars("PSIQUO_NO_AUTH"),
			Destination: &noAuth,
		},
	}
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, blobCfg.Flags()...)
	flags = append(flags, assessCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			blobStore, err := blobCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize blob storage")
			}

			assessmentCfg, err := assessCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load assessment configuration")
			}

			renderer, err := render.NewHTML()
			if err != nil {
				return goerr.Wrap(err, "failed to initialize report renderer")
			}

			uc := usecase.New(repo,
				usecase.WithBlobStorage(blobStore),
				usecase.WithRenderer(renderer),
				usecase.WithAssessmentConfig(assessmentCfg),
			)

			var httpOpts []httpctrl.Options
			if noAuth {
				logging.Default().Warn("Running in no-auth mode (development only)")
				httpOpts = append(httpOpts, httpctrl.WithNoAuth(true))
			}

			server := httpctrl.New(uc, httpOpts...)

			httpServer := &http.Server{
				Addr:              addr,
				Handler:           server,
				ReadHeaderTimeout: 10 * time.Second,
			}

			sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("HTTP server listening", "addr", addr)
				if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- goerr.Wrap(err, "http server failed")
					return
				}
				errCh <- nil
			}()

			select {
			case err := <-errCh:
				return err
			case <-sigCtx.Done():
			}

			logging.Default().Info("Shutting down HTTP server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
			defer cancel()
			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown http server")
			}

			return <-errCh
		},
	}
}
