// Package cli exposes the storage catalog services as storagectl commands.
// Every command prints its result as JSON on the app writer.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/bookshelf/internal/server"
	"github.com/dmitrijs2005/bookshelf/internal/server/config"
	"github.com/google/uuid"
	"github.com/urfave/cli/v2"
)

var ErrNotFound = errors.New("not found")

// NewApp builds the storagectl command tree. Results go to stdout, logs and
// errors to stderr.
func NewApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "storagectl",
		Usage:     "manage storages and the files uploaded to them",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags:     config.Flags(),
		Commands: []*cli.Command{
			createCommand(),
			listCommand(),
			getCommand(),
			updateCommand(),
			deleteCommand(),
			uploadCommand(),
			rmFileCommand(),
			usersCommand(),
		},
	}
}

// withApp loads configuration, boots the server App for one command and
// closes it afterwards.
func withApp(fn func(c *cli.Context, app *server.App) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		cfg, err := config.FromCLI(c)
		if err != nil {
			return err
		}

		app, err := server.NewApp(c.Context, cfg, c.App.ErrWriter)
		if err != nil {
			return err
		}
		defer app.Close()

		return fn(c, app)
	}
}

func printJSON(c *cli.Context, v any) error {
	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// idArg parses the positional argument at i as a storage or user id.
func idArg(c *cli.Context, i int) (uuid.UUID, error) {
	raw := c.Args().Get(i)
	if raw == "" {
		return uuid.Nil, fmt.Errorf("missing ID argument")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid ID %q: %w", raw, err)
	}
	return id, nil
}
