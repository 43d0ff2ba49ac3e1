package cli

import (
	"context"

	"github.com/urfave/cli/v3"
)

type Error struct {
	Code    int
	Message string
}

func Run(ctx context.Context, argv []string) *Error {
	cmd := &cli.Command{
		Name:  "aiforge",
		Usage: "AI-assisted tool suite: chat, code generation, image analysis, prompt optimization",
		Commands: []*cli.Command{
			serveCommand(),
			chatCommand(),
			historyCommand(),
			statsCommand(),
		},
	}

	if err := cmd.Run(ctx, argv); err != nil {
		return &Error{
			Code:    1,
			Message: err.Error(),
		}
	}

	return nil
}
