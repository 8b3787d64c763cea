package main

import (
	"github.com/urfave/cli/v2"

	"github.com/jwar28/rappiclone/pkg/infrastructure/mysql"
)

func migrate() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "apply pending database migrations",
		Flags: []cli.Flag{logLevelFlag},
		Action: func(c *cli.Context) error {
			cfg, err := configure(c)
			if err != nil {
				return err
			}
			return mysql.Migrate(cfg.DSN())
		},
	}
}
