package cli

import (
	"fmt"

	"github.com/dmitrijs2005/bookshelf/internal/server"
	"github.com/dmitrijs2005/bookshelf/internal/server/pagination"
	"github.com/dmitrijs2005/bookshelf/internal/server/storage"
	"github.com/dmitrijs2005/bookshelf/internal/server/storage/engine"
	"github.com/urfave/cli/v2"
)

var flagName = &cli.StringFlag{
	Name:     "name",
	Usage:    "storage name, 3 to 255 characters",
	Required: true,
}

var flagType = &cli.StringFlag{
	Name:  "type",
	Value: string(engine.KindFS),
	Usage: "engine type: fs or s3",
}

var (
	flagBasePath  = &cli.StringFlag{Name: "base-path", Usage: "fs: directory files are written to"}
	flagBucket    = &cli.StringFlag{Name: "bucket", Usage: "s3: bucket name"}
	flagPrefix    = &cli.StringFlag{Name: "prefix", Usage: "s3: key prefix"}
	flagRegion    = &cli.StringFlag{Name: "region", Usage: "s3: region"}
	flagEndpoint  = &cli.StringFlag{Name: "endpoint", Usage: "s3: endpoint for S3-compatible services"}
	flagAccessKey = &cli.StringFlag{Name: "access-key", Usage: "s3: access key id"}
	flagSecretKey = &cli.StringFlag{Name: "secret-key", Usage: "s3: secret access key"}
	flagPathStyle = &cli.BoolFlag{Name: "path-style", Usage: "s3: use path-style addressing"}
)

func settingsFlags() []cli.Flag {
	return []cli.Flag{
		flagName, flagType, flagBasePath,
		flagBucket, flagPrefix, flagRegion, flagEndpoint, flagAccessKey, flagSecretKey, flagPathStyle,
	}
}

func settingsFromFlags(c *cli.Context) (storage.Settings, error) {
	switch engine.Kind(c.String(flagType.Name)) {
	case engine.KindFS:
		if c.String(flagBasePath.Name) == "" {
			return nil, fmt.Errorf("--%s is required for fs storages", flagBasePath.Name)
		}
		return storage.FSSettings{BasePath: c.String(flagBasePath.Name)}, nil
	case engine.KindS3:
		if c.String(flagBucket.Name) == "" {
			return nil, fmt.Errorf("--%s is required for s3 storages", flagBucket.Name)
		}
		return storage.S3Settings{
			Bucket:       c.String(flagBucket.Name),
			Prefix:       c.String(flagPrefix.Name),
			Region:       c.String(flagRegion.Name),
			Endpoint:     c.String(flagEndpoint.Name),
			AccessKey:    c.String(flagAccessKey.Name),
			SecretKey:    c.String(flagSecretKey.Name),
			UsePathStyle: c.Bool(flagPathStyle.Name),
		}, nil
	default:
		return nil, fmt.Errorf("unknown storage type %q", c.String(flagType.Name))
	}
}

func nameAndSettings(c *cli.Context) (storage.Name, storage.Settings, error) {
	name, err := storage.NewName(c.String(flagName.Name))
	if err != nil {
		return storage.Name{}, nil, err
	}
	settings, err := settingsFromFlags(c)
	if err != nil {
		return storage.Name{}, nil, err
	}
	return name, settings, nil
}

func createCommand() *cli.Command {
	return &cli.Command{
		Name:  "create",
		Usage: "create a storage",
		Flags: settingsFlags(),
		Action: withApp(func(c *cli.Context, app *server.App) error {
			name, settings, err := nameAndSettings(c)
			if err != nil {
				return err
			}

			id, err := app.Services.Creator.Create(c.Context, name, settings)
			if err != nil {
				return err
			}

			return printJSON(c, map[string]any{"id": id})
		}),
	}
}

func listCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "list storages, one page at a time",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "cursor", Usage: "token from the previous page"},
		},
		Action: withApp(func(c *cli.Context, app *server.App) error {
			var cursor *pagination.Cursor
			if c.IsSet("cursor") {
				decoded, err := pagination.Decode(c.String("cursor"))
				if err != nil {
					return err
				}
				cursor = &decoded
			}

			page, err := app.Services.Lister.List(c.Context, cursor)
			if err != nil {
				return err
			}

			return printJSON(c, page)
		}),
	}
}

func getCommand() *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "show one storage",
		ArgsUsage: "ID",
		Action: withApp(func(c *cli.Context, app *server.App) error {
			id, err := idArg(c, 0)
			if err != nil {
				return err
			}

			st, err := app.Services.Getter.Get(c.Context, id)
			if err != nil {
				return err
			}
			if st == nil {
				return fmt.Errorf("storage %s: %w", id, ErrNotFound)
			}

			return printJSON(c, st)
		}),
	}
}

func updateCommand() *cli.Command {
	return &cli.Command{
		Name:      "update",
		Usage:     "replace the name and settings of a storage",
		ArgsUsage: "ID",
		Flags:     settingsFlags(),
		Action: withApp(func(c *cli.Context, app *server.App) error {
			id, err := idArg(c, 0)
			if err != nil {
				return err
			}
			name, settings, err := nameAndSettings(c)
			if err != nil {
				return err
			}

			st, err := app.Services.Updater.Update(c.Context, id, name, settings)
			if err != nil {
				return err
			}

			return printJSON(c, st)
		}),
	}
}

func deleteCommand() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "delete a storage record; uploaded files are kept",
		ArgsUsage: "ID",
		Action: withApp(func(c *cli.Context, app *server.App) error {
			id, err := idArg(c, 0)
			if err != nil {
				return err
			}
			return app.Services.Deleter.Delete(c.Context, id)
		}),
	}
}
