package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"restaurant-orders-api/config"
	"restaurant-orders-api/events"
	"restaurant-orders-api/handlers"
	"restaurant-orders-api/middleware"
	"restaurant-orders-api/routes"
	"restaurant-orders-api/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		logrus.WithError(err).Fatal("server stopped")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := config.SetupLogging(cfg); err != nil {
		return err
	}

	// Set Gin mode
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.AMQPURL != "" {
		amqpPublisher, err := events.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			return err
		}
		defer amqpPublisher.Close()
		publisher = amqpPublisher
		logrus.WithField("exchange", cfg.AMQPExchange).Info("publishing order events")
	}

	policy, err := services.ParseItemDeletePolicy(cfg.ItemDeletePolicy)
	if err != nil {
		return err
	}
	if err := handlers.RegisterValidators(); err != nil {
		return err
	}

	h := handlers.New(
		services.NewOrderService(db, publisher),
		services.NewMenuService(db, policy),
		services.NewStaffService(db),
	)

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(), middleware.CORS())
	routes.SetupRoutes(r, h, cfg.AuthEnabled)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logrus.WithFields(logrus.Fields{
			"port": cfg.Port,
			"auth": cfg.AuthEnabled,
		}).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logrus.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
