package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/urfave/cli/v3"

	"github.com/vyrodovalexey/itemserver/internal/client"
	"github.com/vyrodovalexey/itemserver/internal/domain"
	"github.com/vyrodovalexey/itemserver/internal/model"
)

const defaultServer = "http://localhost:8080"

var (
	errMissingID     = errors.New("missing item id argument")
	errMissingDomain = errors.New("missing domain name argument")
)

// newApp builds the itemctl command tree. Results are written to out.
func newApp(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:                  "itemctl",
		Usage:                 "Manage items on an item API server",
		EnableShellCompletion: true,
		Writer:                out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "server",
				Aliases: []string{"s"},
				Value:   defaultServer,
				Usage:   "Base URL of the item API server",
				Sources: cli.EnvVars("ITEMCTL_SERVER"),
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"o"},
				Value:   string(FormatTable),
				Usage:   "Output format (table, json, yaml)",
				Sources: cli.EnvVars("ITEMCTL_FORMAT"),
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Value: client.DefaultTimeout,
				Usage: "Timeout for each request",
			},
		},
		Commands: []*cli.Command{
			listCmd(),
			getCmd(),
			createCmd(),
			updateCmd(),
			deleteCmd(),
			checkDomainCmd(),
		},
	}
}

func listCmd() *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List all items in insertion order",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			c, p, err := setup(cmd)
			if err != nil {
				return err
			}

			items, err := c.List(ctx)
			if err != nil {
				return fmt.Errorf("list items: %w", err)
			}
			return p.items(items)
		},
	}
}

func getCmd() *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "Show a single item",
		ArgsUsage: "<id>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			id, err := parseID(cmd)
			if err != nil {
				return err
			}
			c, p, err := setup(cmd)
			if err != nil {
				return err
			}

			item, err := c.Get(ctx, id)
			if err != nil {
				return fmt.Errorf("get item %d: %w", id, err)
			}
			return p.item(item)
		},
	}
}

func createCmd() *cli.Command {
	return &cli.Command{
		Name:  "create",
		Usage: "Create an item",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "name",
				Usage:    "Item name (1 to 63 bytes)",
				Required: true,
			},
			&cli.Int64Flag{
				Name:     "value",
				Usage:    "Item value",
				Required: true,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			c, p, err := setup(cmd)
			if err != nil {
				return err
			}

			item, err := c.Create(ctx, cmd.String("name"), cmd.Int64("value"))
			if err != nil {
				return fmt.Errorf("create item: %w", err)
			}
			return p.item(item)
		},
	}
}

func updateCmd() *cli.Command {
	return &cli.Command{
		Name:      "update",
		Usage:     "Change the name or value of an item",
		ArgsUsage: "<id>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "name",
				Usage: "New item name",
			},
			&cli.Int64Flag{
				Name:  "value",
				Usage: "New item value",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			id, err := parseID(cmd)
			if err != nil {
				return err
			}

			var patch model.ItemPatch
			if cmd.IsSet("name") {
				name := cmd.String("name")
				patch.Name = &name
			}
			if cmd.IsSet("value") {
				value := cmd.Int64("value")
				patch.Value = &value
			}
			if patch.IsEmpty() {
				return errors.New("nothing to update: set --name or --value")
			}

			c, p, err := setup(cmd)
			if err != nil {
				return err
			}

			item, err := c.Update(ctx, id, patch)
			if err != nil {
				return fmt.Errorf("update item %d: %w", id, err)
			}
			return p.item(item)
		},
	}
}

func deleteCmd() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Aliases:   []string{"rm"},
		Usage:     "Delete an item",
		ArgsUsage: "<id>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			id, err := parseID(cmd)
			if err != nil {
				return err
			}
			c, p, err := setup(cmd)
			if err != nil {
				return err
			}

			msg, err := c.Delete(ctx, id)
			if err != nil {
				return fmt.Errorf("delete item %d: %w", id, err)
			}
			return p.message(msg)
		},
	}
}

func checkDomainCmd() *cli.Command {
	return &cli.Command{
		Name:      "check-domain",
		Usage:     "Check that a name is a valid DNS domain name",
		ArgsUsage: "<name>",
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() == 0 {
				return errMissingDomain
			}

			name := cmd.Args().First()
			if err := domain.Validate(name); err != nil {
				return err
			}

			_, err := fmt.Fprintf(cmd.Root().Writer, "%s is a valid domain name\n", name)
			return err
		},
	}
}

// setup builds the API client and output printer from the global flags.
func setup(cmd *cli.Command) (*client.Client, printer, error) {
	format, err := parseFormat(cmd.String("format"))
	if err != nil {
		return nil, printer{}, err
	}

	c, err := client.New(cmd.String("server"), client.WithTimeout(cmd.Duration("timeout")))
	if err != nil {
		return nil, printer{}, err
	}

	return c, printer{format: format, out: cmd.Root().Writer}, nil
}

func parseID(cmd *cli.Command) (int64, error) {
	if cmd.Args().Len() == 0 {
		return 0, errMissingID
	}

	arg := cmd.Args().First()
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid item id %q: must be a positive integer", arg)
	}
	return id, nil
}
