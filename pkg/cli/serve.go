package cli

import (
	"context"
	"os"

	"github.com/m-mizutani/aiforge/pkg/server"
	"github.com/m-mizutani/aiforge/pkg/usecase"
	"github.com/m-mizutani/aiforge/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func serveCommand() *cli.Command {
	var cfg config

	flags := serverFlags(&cfg)
	flags = append(flags, llmFlags(&cfg)...)

	return &cli.Command{
		Name:  "serve",
		Usage: "Run the AI Forge API server",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.New(cfg.logLevel, os.Stdout)
			logging.SetDefault(logger)
			ctx = logging.With(ctx, logger)

			repo, err := cfg.newRepository(ctx)
			if err != nil {
				return err
			}
			defer repo.Close()

			gemini, err := cfg.newGemini(ctx)
			if err != nil {
				return err
			}

			verifier, err := cfg.newVerifier(ctx)
			if err != nil {
				return err
			}

			uc := usecase.New(repo, gemini)
			srv := server.New(uc, verifier)

			logger.Info("starting server", "addr", cfg.addr)
			if err := srv.Run(cfg.addr); err != nil {
				return goerr.Wrap(err, "server failed", goerr.V("addr", cfg.addr))
			}

			return nil
		},
	}
}
