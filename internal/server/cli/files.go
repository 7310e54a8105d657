package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/bookshelf/internal/server"
	"github.com/dmitrijs2005/bookshelf/internal/server/storage/engine"
	"github.com/urfave/cli/v2"
)

func uploadCommand() *cli.Command {
	return &cli.Command{
		Name:      "upload",
		Usage:     "upload a local file to a storage",
		ArgsUsage: "ID FILE",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "as", Usage: "object name, defaults to the file's base name"},
		},
		Action: withApp(func(c *cli.Context, app *server.App) error {
			id, err := idArg(c, 0)
			if err != nil {
				return err
			}

			src := c.Args().Get(1)
			if src == "" {
				return fmt.Errorf("missing FILE argument")
			}

			f, err := os.Open(src)
			if err != nil {
				return err
			}
			defer f.Close()

			name := c.String("as")
			if name == "" {
				name = filepath.Base(src)
			}

			p, err := app.Services.FileUploader.Upload(c.Context, id, name, f)
			if err != nil {
				return err
			}

			return printJSON(c, p)
		}),
	}
}

func rmFileCommand() *cli.Command {
	return &cli.Command{
		Name:      "rm-file",
		Usage:     "delete a previously uploaded file",
		ArgsUsage: "ID",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "type", Value: string(engine.KindFS), Usage: "path type: fs or s3"},
			&cli.StringFlag{Name: "value", Required: true, Usage: "path value returned by upload"},
		},
		Action: withApp(func(c *cli.Context, app *server.App) error {
			id, err := idArg(c, 0)
			if err != nil {
				return err
			}

			p := engine.Path{Kind: engine.Kind(c.String("type")), Value: c.String("value")}
			return app.Services.FileDeleter.Delete(c.Context, id, p)
		}),
	}
}
