package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/jwar28/rappiclone/pkg/infrastructure/auth"
)

// issueToken signs a bearer token for local testing; production tokens come
// from the identity provider sharing MARKETPLACE_JWT_SECRET.
func issueToken() *cli.Command {
	return &cli.Command{
		Name:  "issue-token",
		Usage: "sign a development bearer token",
		Flags: []cli.Flag{
			logLevelFlag,
			&cli.StringFlag{Name: "user-id", Required: true},
			&cli.StringFlag{Name: "email", Required: true},
			&cli.DurationFlag{Name: "ttl", Value: 24 * time.Hour, Usage: "token lifetime"},
		},
		Action: func(c *cli.Context) error {
			cfg, err := configure(c)
			if err != nil {
				return err
			}
			if cfg.JWTSecret == "" {
				return errors.New("MARKETPLACE_JWT_SECRET is required")
			}

			userID, err := uuid.Parse(c.String("user-id"))
			if err != nil {
				return errors.Wrap(err, "invalid user id")
			}
			token, err := auth.NewTokens(cfg.JWTSecret).Issue(auth.Identity{UserID: userID, Email: c.String("email")}, c.Duration("ttl"))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(c.App.Writer, token)
			return err
		},
	}
}
