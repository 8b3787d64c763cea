package mysql

import (
	"context"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

type DSN struct {
	User     string
	Password string
	Host     string
	Database string
}

func (d DSN) String() string {
	cfg := mysqldriver.NewConfig()
	cfg.User = d.User
	cfg.Passwd = d.Password
	cfg.Net = "tcp"
	cfg.Addr = d.Host
	cfg.DBName = d.Database
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	// rows affected counts matched rows, so an update that changes nothing is not a miss
	cfg.ClientFoundRows = true
	cfg.MultiStatements = true
	return cfg.FormatDSN()
}

func Open(ctx context.Context, dsn DSN, maxConnections int) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "mysql", dsn.String())
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}

	db.SetMaxOpenConns(maxConnections)
	db.SetMaxIdleConns(maxConnections)
	db.SetConnMaxLifetime(time.Hour)
	return db, nil
}
