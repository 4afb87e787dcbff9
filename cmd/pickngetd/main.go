// Entry point: loads config, wires services, starts the HTTP server and the
// location sweeper.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/kemsguy7/pick-n-get/internal/config"
	"github.com/kemsguy7/pick-n-get/internal/geo"
	httptransport "github.com/kemsguy7/pick-n-get/internal/http"
	"github.com/kemsguy7/pick-n-get/internal/infra"
	"github.com/kemsguy7/pick-n-get/internal/logging"
	"github.com/kemsguy7/pick-n-get/internal/modules/earnings"
	"github.com/kemsguy7/pick-n-get/internal/modules/location"
	"github.com/kemsguy7/pick-n-get/internal/modules/matching"
	"github.com/kemsguy7/pick-n-get/internal/modules/pickup"
	"github.com/kemsguy7/pick-n-get/internal/modules/rider"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := logging.NewLogger(cfg.Log.Level, cfg.Log.Directory)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		logger.Fatal("database connect failed", zap.Error(err))
	}
	defer dbPool.Close()

	var locationStore location.Store
	switch cfg.Location.Backend {
	case config.LocationBackendMemory:
		locationStore = location.NewMemoryStore()
	default:
		locationStore = location.NewRedisStore(infra.NewRedis(cfg.Redis.Addr, cfg.Redis.Password))
	}
	locationSvc := location.NewService(locationStore, cfg.Location.StaleAfter, logger)

	if cfg.Maps.APIKey == "" {
		logger.Fatal("MAPS_API_KEY is required")
	}
	mapsClient, err := infra.NewMapsClient(cfg.Maps.APIKey)
	if err != nil {
		logger.Fatal("maps client init failed", zap.Error(err))
	}
	geocoder := geo.NewGoogleGeocoder(mapsClient, cfg.Matching.ExternalTimeout)
	matrix := geo.NewGoogleMatrix(mapsClient, cfg.Matching.ExternalTimeout)

	riderStore := rider.NewStore(dbPool)
	riderSvc := rider.NewService(riderStore)

	earningsSvc := earnings.NewService(earnings.NewStore(dbPool))

	var publisher pickup.EventPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		writer := infra.NewKafkaWriter(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer func() { _ = writer.Close() }()
		publisher = pickup.NewKafkaPublisher(writer)
	}

	pickupStore := pickup.NewStore(dbPool)
	pickupSvc := pickup.NewService(pickupStore, riderStore, earningsSvc, publisher, logger)

	matchingSvc := matching.NewService(geocoder, riderStore, locationSvc, matrix, cfg.Matching, logger)

	sweeper := cron.New()
	if _, err := sweeper.AddFunc(cfg.Location.SweepSpec, func() {
		locationSvc.SweepStale(ctx)
	}); err != nil {
		logger.Fatal("location sweep schedule invalid", zap.Error(err))
	}
	sweeper.Start()
	defer sweeper.Stop()

	router := httptransport.NewRouter(httptransport.RouterDeps{
		Matching:    matchingSvc,
		Pickups:     pickupSvc,
		PickupStore: pickupStore,
		Riders:      riderSvc,
		Locations:   locationSvc,
		Logger:      logger,
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: router}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Warn("shutdown", zap.Error(err))
		}
	}()

	logger.Info("listening", zap.String("addr", cfg.HTTP.Addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server", zap.Error(err))
	}
}
