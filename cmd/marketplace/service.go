package main

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	appservice "github.com/jwar28/rappiclone/pkg/application/service"
	"github.com/jwar28/rappiclone/pkg/application/store"
	"github.com/jwar28/rappiclone/pkg/common/domain"
	"github.com/jwar28/rappiclone/pkg/domain/model"
	domainservice "github.com/jwar28/rappiclone/pkg/domain/service"
	"github.com/jwar28/rappiclone/pkg/infrastructure/auth"
	"github.com/jwar28/rappiclone/pkg/infrastructure/event"
	infragrpc "github.com/jwar28/rappiclone/pkg/infrastructure/grpc"
	"github.com/jwar28/rappiclone/pkg/infrastructure/mysql"
	"github.com/jwar28/rappiclone/pkg/infrastructure/mysql/repository"
	"github.com/jwar28/rappiclone/pkg/infrastructure/transport"
)

func service() *cli.Command {
	return &cli.Command{
		Name:  "service",
		Usage: "serve the HTTP API and the gRPC health endpoint",
		Flags: []cli.Flag{logLevelFlag},
		Action: func(c *cli.Context) error {
			cfg, err := configure(c)
			if err != nil {
				return err
			}
			if cfg.JWTSecret == "" {
				return errors.New("MARKETPLACE_JWT_SECRET is required")
			}

			db, err := mysql.Open(c.Context, cfg.DSN(), cfg.DBMaxConnections)
			if err != nil {
				return err
			}
			defer db.Close()

			return runService(cfg, db)
		},
	}
}

func runService(cfg *config, db *sqlx.DB) error {
	dispatcher := event.NewDispatcher(log.StandardLogger())
	stores := store.NewRegistry()
	recent := store.NewRecentOrders(cfg.RecentOrdersLimit)
	customers := &store.ProfileStore{}
	carts := store.NewCarts()

	// dashboards of owners whose data went away are rebuilt from scratch
	dispatcher.Subscribe(model.BusinessDeleted{}.Type(), func(e domain.Event) error {
		if deleted, ok := e.(model.BusinessDeleted); ok {
			stores.Forget(deleted.OwnerID)
		}
		return nil
	})
	dispatcher.Subscribe(model.ProfileUpdated{}.Type(), func(e domain.Event) error {
		if updated, ok := e.(model.ProfileUpdated); ok {
			customers.Forget(updated.ProfileID)
		}
		return nil
	})
	dispatcher.Subscribe(model.ProfileDeleted{}.Type(), func(e domain.Event) error {
		if deleted, ok := e.(model.ProfileDeleted); ok {
			stores.Forget(deleted.ProfileID)
			customers.Forget(deleted.ProfileID)
			carts.Forget(deleted.ProfileID)
		}
		return nil
	})

	businesses := repository.NewBusinessRepository(db)
	products := repository.NewProductRepository(db)
	orders := repository.NewOrderRepository(db)
	items := repository.NewOrderItemRepository(db)
	profiles := repository.NewProfileRepository(db)

	orderService := domainservice.NewOrderService(orders, items, recent, dispatcher)
	tracker := appservice.NewDeliveryTracker(orderService, appservice.TrackerConfig{
		Ticks:        cfg.DeliveryTicks,
		TickInterval: cfg.DeliveryTickInterval,
		Retain:       cfg.DeliveryRetain,
	})
	defer tracker.Stop()

	router := transport.Router(transport.Services{
		Profiles:   domainservice.NewProfileService(profiles, dispatcher),
		Businesses: domainservice.NewBusinessService(businesses, dispatcher),
		Products:   domainservice.NewProductService(products, businesses, dispatcher),
		Orders:     orderService,
		Dashboard:  appservice.NewDashboardService(businesses, products, orders, profiles),
		Catalog:    appservice.NewCatalogService(businesses, products),
		Tracker:    tracker,
		Stores:     stores,
		Recent:     recent,
		Customers:  customers,
		Carts:      carts,
		Tokens:     auth.NewTokens(cfg.JWTSecret),
	}, cfg.AllowedOrigins)

	listener, err := net.Listen("tcp", cfg.ServeGRPCAddress)
	if err != nil {
		return errors.Wrap(err, "failed to listen for grpc")
	}
	health := infragrpc.NewHealthServer(db.PingContext, cfg.HealthCheckPeriod)
	health.Serve(listener)
	defer health.Stop()

	killSignalChan := getKillSignalChan()
	srv := startServer(cfg.ServeHTTPAddress, router)

	waitForKillSignalChan(killSignalChan)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

func startServer(serverURL string, router http.Handler) *http.Server {
	log.WithFields(log.Fields{"url": serverURL}).Info("starting server")

	srv := &http.Server{
		Addr:              serverURL,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("failed to start server")
		}
	}()
	return srv
}

func getKillSignalChan() chan os.Signal {
	osKillSignalChan := make(chan os.Signal, 1)
	signal.Notify(osKillSignalChan, os.Interrupt, syscall.SIGTERM)
	return osKillSignalChan
}

func waitForKillSignalChan(killSignalChan <-chan os.Signal) {
	killSignal := <-killSignalChan
	switch killSignal {
	case os.Interrupt:
		log.Info("got SIGINT...")
	case syscall.SIGTERM:
		log.Info("got SIGTERM...")
	}
}
