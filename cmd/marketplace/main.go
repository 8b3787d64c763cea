package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func main() {
	log.SetFormatter(&log.JSONFormatter{})

	app := &cli.App{
		Name:  appID,
		Usage: "delivery marketplace backend",
		Commands: []*cli.Command{
			service(),
			migrate(),
			issueToken(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.WithError(err).Fatal("marketplace failed")
	}
}

func configure(c *cli.Context) (*config, error) {
	cfg, err := parseEnv()
	if err != nil {
		return nil, err
	}

	level := cfg.LogLevel
	if c.IsSet("log-level") {
		level = c.String("log-level")
	}
	parsed, err := log.ParseLevel(level)
	if err != nil {
		log.WithField("level", level).Warn("unknown log level, using info")
		parsed = log.InfoLevel
	}
	log.SetLevel(parsed)
	return cfg, nil
}

var logLevelFlag = &cli.StringFlag{
	Name:  "log-level",
	Usage: "overrides MARKETPLACE_LOG_LEVEL",
}
