package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func statsCommand() *cli.Command {
	var cfg config

	return &cli.Command{
		Name:  "stats",
		Usage: "Show per-kind record counts for the authenticated user",
		Flags: clientFlags(&cfg),
		Action: func(ctx context.Context, c *cli.Command) error {
			api, err := cfg.newClient()
			if err != nil {
				return err
			}

			stats, err := api.UserStats(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to fetch user stats")
			}

			fmt.Fprintf(c.Root().Writer, "chat:      %d\n", stats.ChatCount)
			fmt.Fprintf(c.Root().Writer, "code:      %d\n", stats.CodeCount)
			fmt.Fprintf(c.Root().Writer, "image:     %d\n", stats.ImageCount)
			fmt.Fprintf(c.Root().Writer, "optimizer: %d\n", stats.OptimizerCount)

			return nil
		},
	}
}
