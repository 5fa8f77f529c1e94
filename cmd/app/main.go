package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/carrental/api"
	"github.com/Domenick1991/carrental/config"
	"github.com/Domenick1991/carrental/internal/bootstrap"
	"github.com/Domenick1991/carrental/internal/cache"
	"github.com/Domenick1991/carrental/internal/kafka"
	"github.com/Domenick1991/carrental/internal/logger"
	"github.com/Domenick1991/carrental/internal/notify"
	"github.com/Domenick1991/carrental/internal/repository"
	"github.com/Domenick1991/carrental/internal/service/booking"
	"github.com/Domenick1991/carrental/internal/service/cart"
	"github.com/Domenick1991/carrental/internal/service/catalog"
	"github.com/Domenick1991/carrental/internal/service/history"
	"github.com/Domenick1991/carrental/internal/service/payment"
	"github.com/Domenick1991/carrental/internal/service/profile"
	"github.com/Domenick1991/carrental/internal/storage"
	"github.com/Domenick1991/carrental/internal/validation"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	lg, err := logger.New(cfg.Logger.Level, cfg.Logger.Format)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer lg.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		pool        *pgxpool.Pool
		redisClient *redis.Client
	)
	if cfg.Storage.Backend == config.BackendPostgres || cfg.Catalog.Source == config.CatalogSourcePostgres {
		pool, err = pgxpool.New(ctx, cfg.Database.DSN())
		if err != nil {
			lg.Fatal("connect postgres", zap.Error(err))
		}
		defer pool.Close()
	}
	if cfg.Redis.Addr != "" {
		redisClient = storage.NewRedisClient(cfg.Redis)
		defer redisClient.Close()
	}

	var kv storage.KeyValue
	switch cfg.Storage.Backend {
	case config.BackendRedis:
		if redisClient == nil {
			lg.Fatal("redis backend requires redis.addr")
		}
		kv = storage.NewRedisStore(redisClient, cfg.Storage.KeyPrefix)
	case config.BackendPostgres:
		pgStore := storage.NewPGStore(pool, cfg.Storage.KeyPrefix)
		if err := pgStore.EnsureSchema(ctx); err != nil {
			lg.Fatal("ensure kv schema", zap.Error(err))
		}
		kv = pgStore
	default:
		kv = storage.NewMemoryStore()
	}

	if cfg.Storage.AsyncMirror {
		mirror := storage.NewMirror(kv, lg)
		defer func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := mirror.Close(closeCtx); err != nil {
				lg.Error("close storage mirror", zap.Error(err))
			}
		}()
		kv = mirror
	}

	var carRepo repository.CarRepository
	if cfg.Catalog.Source == config.CatalogSourcePostgres {
		carRepo = repository.NewCarRepository(pool)
	} else {
		carRepo = repository.NewMemoryCarRepository(repository.SeedCars())
	}
	var carCache catalog.CarCache
	if redisClient != nil {
		carCache = cache.NewRedisCache(redisClient, time.Duration(cfg.Catalog.CacheTTLSeconds)*time.Second)
	}
	catalogService := catalog.NewCatalogService(carRepo, carCache, lg)

	validator := validation.New()
	cartStore := cart.NewStore(ctx, kv, cart.WithLogger(lg))
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := cartStore.Close(closeCtx); err != nil {
			lg.Error("close cart store", zap.Error(err))
		}
	}()
	historyStore := history.NewStore(kv, lg)
	paymentStore := payment.NewStore(ctx, kv, lg)
	profileStore := profile.NewStore(kv, validator)

	var (
		dispatcher  notify.Dispatcher = notify.NewLogDispatcher(lg)
		bookingOpts                   = []booking.BookingServiceOption{booking.WithLogger(lg)}
	)
	if cfg.Kafka.Enabled() {
		producer := kafka.NewProducer(cfg.Kafka.Brokers, lg)
		defer producer.Close()
		if err := producer.CheckConnection(ctx); err != nil {
			lg.Warn("kafka is not reachable", zap.Error(err))
		}
		if cfg.Kafka.NotificationsTopic != "" {
			dispatcher = notify.NewKafkaDispatcher(producer, cfg.Kafka.NotificationsTopic)
		}
		if cfg.Kafka.BookingTopic != "" {
			bookingOpts = append(bookingOpts, booking.WithBookingEvents(producer, cfg.Kafka.BookingTopic))
		}
	}

	bookingService := booking.NewBookingService(
		cartStore,
		paymentStore,
		historyStore,
		dispatcher,
		validator,
		cfg.Checkout.DriversFeeRate,
		bookingOpts...,
	)

	err = bootstrap.Run(ctx, cfg, lg,
		api.NewCarHandler(catalogService),
		api.NewCartHandler(cartStore, catalogService),
		api.NewPaymentHandler(paymentStore),
		api.NewNotificationHandler(historyStore),
		api.NewCheckoutHandler(bookingService),
		api.NewProfileHandler(profileStore),
	)
	if err != nil {
		lg.Error("server error", zap.Error(err))
	}
}
