package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
	"github.com/chzyer/readline"
	"github.com/m-mizutani/aiforge/pkg/model"
	"github.com/m-mizutani/aiforge/pkg/session"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func chatCommand() *cli.Command {
	var (
		cfg      config
		recordID string
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "id",
			Usage:       "Record ID to resume an existing conversation",
			Sources:     cli.EnvVars("AIFORGE_CHAT_ID"),
			Destination: &recordID,
		},
	}
	flags = append(flags, clientFlags(&cfg)...)

	return &cli.Command{
		Name:  "chat",
		Usage: "Interactive chat session against a running server",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			api, err := cfg.newClient()
			if err != nil {
				return err
			}

			sess := session.New(api)
			if recordID != "" {
				if err := sess.Load(ctx, model.RecordID(recordID)); err != nil {
					if goerr.HasTag(err, model.ErrTagNotFound) {
						fmt.Fprintf(c.Root().Writer, "Conversation %s not found, starting a new one.\n", recordID)
					} else {
						return goerr.Wrap(err, "failed to resume conversation")
					}
				} else {
					for _, turn := range sess.Turns() {
						fmt.Fprintf(c.Root().Writer, "[%s] %s\n", turn.Role, turn.Text)
					}
				}
			}

			rl, err := readline.New("> ")
			if err != nil {
				return goerr.Wrap(err, "failed to initialize readline")
			}
			defer rl.Close()

			sp := spinner.New(spinner.CharSets[14], 100*time.Millisecond)

			fmt.Fprintf(c.Root().Writer, "Chat session started. Type 'exit' to quit.\n")

			for {
				line, err := rl.Readline()
				if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
					break
				}
				if err != nil {
					return goerr.Wrap(err, "failed to read input")
				}

				if line == "exit" {
					break
				}
				if line == "" {
					continue
				}

				hadID := sess.RecordID() != ""

				sp.Start()
				text, err := sess.Submit(ctx, line)
				sp.Stop()

				if err != nil {
					fmt.Fprintf(c.Root().Writer, "Error: %s\n", err.Error())
					continue
				}

				fmt.Fprintf(c.Root().Writer, "%s\n", text)

				if !hadID && sess.RecordID() != "" {
					fmt.Fprintf(c.Root().Writer, "(conversation id: %s)\n", sess.RecordID())
				}
			}

			fmt.Fprintf(c.Root().Writer, "\nChat session completed\n")
			return nil
		},
	}
}
