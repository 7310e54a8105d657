package cli

import (
	"fmt"

	"github.com/dmitrijs2005/bookshelf/internal/server"
	"github.com/dmitrijs2005/bookshelf/internal/server/users"
	"github.com/urfave/cli/v2"
)

var flagRole = &cli.StringFlag{
	Name:  "role",
	Value: string(users.RoleOrdinary),
	Usage: "admin or ordinary",
}

var (
	flagLogin      = &cli.StringFlag{Name: "login", Usage: "email address of an internal user"}
	flagPassword   = &cli.StringFlag{Name: "password", Usage: "password of an internal user; prompted for when omitted"}
	flagExternalID = &cli.StringFlag{Name: "external-id", Usage: "identity provider id of an external user"}
)

// passwordFromFlags falls back to a terminal prompt when --password is absent.
func passwordFromFlags(c *cli.Context) (string, error) {
	if c.IsSet(flagPassword.Name) {
		return c.String(flagPassword.Name), nil
	}
	return promptPassword(c.App.ErrWriter)
}

func usersCommand() *cli.Command {
	return &cli.Command{
		Name:  "users",
		Usage: "manage users",
		Subcommands: []*cli.Command{
			usersSyncCommand(),
			usersCreateCommand(),
			usersGetCommand(),
			usersSetRoleCommand(),
			usersLoginCommand(),
		},
	}
}

func usersSyncCommand() *cli.Command {
	return &cli.Command{
		Name:      "sync",
		Usage:     "register an externally authenticated user; a known user keeps its role",
		ArgsUsage: "ID",
		Action: withApp(func(c *cli.Context, app *server.App) error {
			id, err := idArg(c, 0)
			if err != nil {
				return err
			}
			return app.Services.UserSync.Sync(c.Context, id)
		}),
	}
}

func usersCreateCommand() *cli.Command {
	return &cli.Command{
		Name:  "create",
		Usage: "create an internal user (--login) or an external one (--external-id)",
		Flags: []cli.Flag{flagRole, flagLogin, flagPassword, flagExternalID},
		Action: withApp(func(c *cli.Context, app *server.App) error {
			role, err := users.ParseRole(c.String(flagRole.Name))
			if err != nil {
				return err
			}

			hasLogin, hasExternal := c.IsSet(flagLogin.Name), c.IsSet(flagExternalID.Name)
			if hasLogin == hasExternal {
				return fmt.Errorf("exactly one of --%s and --%s is required", flagLogin.Name, flagExternalID.Name)
			}

			if hasExternal {
				ext, err := users.NewExternalID(c.String(flagExternalID.Name))
				if err != nil {
					return err
				}
				u, err := app.Services.UserCreator.CreateExternal(c.Context, ext, role)
				if err != nil {
					return err
				}
				return printJSON(c, u)
			}

			login, err := users.NewLogin(c.String(flagLogin.Name))
			if err != nil {
				return err
			}
			raw, err := passwordFromFlags(c)
			if err != nil {
				return err
			}
			password, err := users.NewPassword(raw)
			if err != nil {
				return err
			}

			u, err := app.Services.UserCreator.CreateInternal(c.Context, login, password, role)
			if err != nil {
				return err
			}
			return printJSON(c, u)
		}),
	}
}

func usersGetCommand() *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "show one user",
		ArgsUsage: "ID",
		Action: withApp(func(c *cli.Context, app *server.App) error {
			id, err := idArg(c, 0)
			if err != nil {
				return err
			}

			u, err := app.Services.UserGetter.Get(c.Context, id)
			if err != nil {
				return err
			}
			return printJSON(c, u)
		}),
	}
}

func usersSetRoleCommand() *cli.Command {
	return &cli.Command{
		Name:      "set-role",
		Usage:     "change the role of a user",
		ArgsUsage: "ID",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: flagRole.Name, Usage: flagRole.Usage, Required: true},
		},
		Action: withApp(func(c *cli.Context, app *server.App) error {
			id, err := idArg(c, 0)
			if err != nil {
				return err
			}
			role, err := users.ParseRole(c.String(flagRole.Name))
			if err != nil {
				return err
			}
			return app.Services.RoleAssigner.Assign(c.Context, id, role)
		}),
	}
}

func usersLoginCommand() *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "check the password of an internal user and print the user",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: flagLogin.Name, Usage: flagLogin.Usage, Required: true},
			flagPassword,
		},
		Action: withApp(func(c *cli.Context, app *server.App) error {
			login, err := users.NewLogin(c.String(flagLogin.Name))
			if err != nil {
				return err
			}
			password, err := passwordFromFlags(c)
			if err != nil {
				return err
			}

			u, err := app.Services.Authenticator.Authenticate(c.Context, login, password)
			if err != nil {
				return err
			}
			return printJSON(c, u)
		}),
	}
}
