package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/aiforge/pkg/model"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func historyCommand() *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Inspect and manage generation history",
		Commands: []*cli.Command{
			historyListCommand(),
			historyRenameCommand(),
			historyDeleteCommand(),
		},
	}
}

func historyListCommand() *cli.Command {
	var (
		cfg      config
		kindName string
		limit    int
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "type",
			Aliases:     []string{"t"},
			Usage:       "Record kind (chat, code, image, optimizer)",
			Value:       string(model.KindChat),
			Destination: &kindName,
		},
		&cli.IntFlag{
			Name:        "limit",
			Aliases:     []string{"n"},
			Usage:       "Maximum number of records (0 = no limit)",
			Destination: &limit,
		},
	}
	flags = append(flags, clientFlags(&cfg)...)

	return &cli.Command{
		Name:  "list",
		Usage: "List history records, most recent first",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			kind, err := model.ParseKind(kindName)
			if err != nil {
				return err
			}

			api, err := cfg.newClient()
			if err != nil {
				return err
			}

			records, err := api.ListRecords(ctx, kind, limit)
			if err != nil {
				return goerr.Wrap(err, "failed to list records")
			}

			if len(records) == 0 {
				fmt.Fprintf(c.Root().Writer, "No history found for %s\n", kind)
				return nil
			}

			for _, r := range records {
				fmt.Fprintf(c.Root().Writer, "%s\t%s\t%s\t%s\n",
					r.ID,
					r.Title,
					r.CreatedAt.Format("2006-01-02 15:04:05"),
					r.UpdatedAt.Format("2006-01-02 15:04:05"),
				)
			}

			return nil
		},
	}
}

func historyRenameCommand() *cli.Command {
	var (
		cfg      config
		kindName string
		id       string
		title    string
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "type",
			Aliases:     []string{"t"},
			Usage:       "Record kind",
			Value:       string(model.KindChat),
			Destination: &kindName,
		},
		&cli.StringFlag{
			Name:        "id",
			Usage:       "Record ID",
			Required:    true,
			Destination: &id,
		},
		&cli.StringFlag{
			Name:        "title",
			Usage:       "New title",
			Required:    true,
			Destination: &title,
		},
	}
	flags = append(flags, clientFlags(&cfg)...)

	return &cli.Command{
		Name:  "rename",
		Usage: "Rename a history record",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			kind, err := model.ParseKind(kindName)
			if err != nil {
				return err
			}

			api, err := cfg.newClient()
			if err != nil {
				return err
			}

			if err := api.RenameRecord(ctx, kind, model.RecordID(id), title); err != nil {
				return goerr.Wrap(err, "failed to rename record")
			}

			fmt.Fprintf(c.Root().Writer, "Renamed %s\n", id)
			return nil
		},
	}
}

func historyDeleteCommand() *cli.Command {
	var (
		cfg      config
		kindName string
		id       string
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "type",
			Aliases:     []string{"t"},
			Usage:       "Record kind",
			Value:       string(model.KindChat),
			Destination: &kindName,
		},
		&cli.StringFlag{
			Name:        "id",
			Usage:       "Record ID",
			Required:    true,
			Destination: &id,
		},
	}
	flags = append(flags, clientFlags(&cfg)...)

	return &cli.Command{
		Name:  "delete",
		Usage: "Permanently delete a history record",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			kind, err := model.ParseKind(kindName)
			if err != nil {
				return err
			}

			api, err := cfg.newClient()
			if err != nil {
				return err
			}

			if err := api.DeleteRecord(ctx, kind, model.RecordID(id)); err != nil {
				return goerr.Wrap(err, "failed to delete record")
			}

			fmt.Fprintf(c.Root().Writer, "Deleted %s\n", id)
			return nil
		},
	}
}
