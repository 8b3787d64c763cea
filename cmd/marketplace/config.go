package main

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/jwar28/rappiclone/pkg/infrastructure/mysql"
)

const appID = "marketplace"

type config struct {
	ServeHTTPAddress string   `envconfig:"serve_http_address" default:":8080"`
	ServeGRPCAddress string   `envconfig:"serve_grpc_address" default:":8081"`
	AllowedOrigins   []string `envconfig:"allowed_origins" default:"*"`
	LogLevel         string   `envconfig:"log_level" default:"info"`

	DBUser           string `envconfig:"db_user" default:"marketplace"`
	DBPassword       string `envconfig:"db_password" default:""`
	DBHost           string `envconfig:"db_host" default:"localhost:3306"`
	DBName           string `envconfig:"db_name" default:"marketplace"`
	DBMaxConnections int    `envconfig:"db_max_connections" default:"10"`

	JWTSecret string `envconfig:"jwt_secret"`

	DeliveryTicks        int           `envconfig:"delivery_ticks" default:"15"`
	DeliveryTickInterval time.Duration `envconfig:"delivery_tick_interval" default:"1m"`
	DeliveryRetain       time.Duration `envconfig:"delivery_retain" default:"10m"`
	RecentOrdersLimit    int           `envconfig:"recent_orders_limit" default:"1000"`
	HealthCheckPeriod    time.Duration `envconfig:"health_check_period" default:"10s"`
}

func (c *config) DSN() mysql.DSN {
	return mysql.DSN{
		User:     c.DBUser,
		Password: c.DBPassword,
		Host:     c.DBHost,
		Database: c.DBName,
	}
}

// parseEnv reads MARKETPLACE_* variables. A .env file in the working directory
// fills in whatever the environment does not already set.
func parseEnv() (*config, error) {
	if err := godotenv.Load(); err != nil {
		log.WithError(err).Debug("no .env file loaded")
	}

	c := new(config)
	if err := envconfig.Process(appID, c); err != nil {
		return nil, errors.Wrap(err, "failed to parse env")
	}
	return c, nil
}
