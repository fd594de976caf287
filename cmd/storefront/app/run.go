package app

import (
	"context"
	"database/sql"
	"errors"

	"github.com/IBM/sarama"
	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"
	"github.com/quocluongg/telectric-web-sub001/configs"
	"github.com/quocluongg/telectric-web-sub001/internal/adapter/cache"
	"github.com/quocluongg/telectric-web-sub001/internal/adapter/http"
	"github.com/quocluongg/telectric-web-sub001/internal/adapter/http/middleware"
	"github.com/quocluongg/telectric-web-sub001/internal/adapter/kafka"
	"github.com/quocluongg/telectric-web-sub001/internal/adapter/mail"
	"github.com/quocluongg/telectric-web-sub001/internal/adapter/observ"
	"github.com/quocluongg/telectric-web-sub001/internal/adapter/queue"
	"github.com/quocluongg/telectric-web-sub001/internal/adapter/repo"
	"github.com/quocluongg/telectric-web-sub001/internal/logging"
	"github.com/quocluongg/telectric-web-sub001/internal/usecase"
	"github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
)

type App struct {
	Router *gin.Engine
}

func InitWithConfig(cfg configs.Config) (*App, func(), error) {
	log := logging.New("app")

	// init database
	db, err := sql.Open("mysql", cfg.MySQL.DSN)
	if err != nil {
		return nil, nil, err
	}
	db.SetConnMaxLifetime(cfg.MySQL.ConnMaxLifetime)
	db.SetMaxOpenConns(cfg.MySQL.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MySQL.MaxIdleConns)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ReadTimeout)
	err = db.PingContext(ctx)
	cancel()
	if err != nil {
		return nil, nil, err
	}

	if err := repo.RunMigrations(db, cfg.MySQL.MigrationsDir); err != nil {
		return nil, nil, err
	}

	log.Info("storefront: starting up")

	// init redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       0,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, nil, err
	}

	// init rabbitmq
	conn, err := amqp091.Dial(cfg.Rabbit.URL)
	if err != nil {
		return nil, nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		return nil, nil, err
	}

	// infra
	orderRepo := repo.NewMySQLOrderRepo(db)
	cartStorage := cache.NewRedisCartStorage(rdb, cfg.Cart.TTL)
	statusCache := cache.NewRedisStatusCache(rdb, cfg.Cart.TTL)
	sender := mail.NewSMTPSender(cfg)
	producer, err := queue.NewRabbitProducer(ch, cfg.Rabbit.Exchange, cfg.Rabbit.RoutingKey, cfg.Rabbit.Queue)
	if err != nil {
		return nil, nil, err
	}

	// cart store + process-lifetime bus observer
	bus := usecase.NewChangeBus()
	bus.Subscribe(observ.CartChanged)
	cartStore := usecase.NewCartStore(cartStorage, bus)

	// use cases
	dispatchUC := usecase.NewDispatchOrder(sender, cfg.SMTP.From, cfg.SMTP.OperatorTo)
	placeUC := usecase.NewPlaceOrder(cartStore, orderRepo, dispatchUC, producer)
	listUC := usecase.NewListOrders(orderRepo, cfg.Admin.PageSize)

	// register queue-handler
	if err := setupQueue(ch, cfg, statusCache); err != nil {
		return nil, nil, err
	}

	// register kafka-listener; the cancel func stops the consume loop on
	// shutdown so the group leaves cleanly
	consumeCtx, stopConsumers := context.WithCancel(context.Background())
	grp, err := setupKafkaListener(consumeCtx, cfg, orderRepo, statusCache)
	if err != nil {
		stopConsumers()
		return nil, nil, err
	}

	// init handlers + routers + middleware
	cartH := http.NewCartHandler(cartStore)
	checkoutH := http.NewCheckoutHandler(placeUC)
	statusH := http.NewOrderStatusHandler(statusCache, orderRepo)
	adminH := http.NewAdminOrdersHandler(listUC, orderRepo)
	th := http.NewTokenHandler(cfg)
	auth := middleware.NewAuthz(cfg)
	router := http.NewRouter(cartH, checkoutH, statusH, adminH, th, auth)

	cleanup := func() {
		stopConsumers()
		_ = grp.Close()
		_ = ch.Close()
		_ = conn.Close()
		_ = rdb.Close()
		_ = db.Close()
	}

	return &App{Router: router}, cleanup, nil
}

func setupQueue(ch *amqp091.Channel, cfg configs.Config, statusCache usecase.OrderCache) error {
	h := queue.NewOrderPlacedHandler(statusCache)

	router := queue.NewRouter(ch, queue.WithPrefetch(50))
	router.Register(cfg.Rabbit.Queue, queue.JSONHandler[usecase.PlacedMsg]{HandleFunc: h.HandlePlaced})

	return router.Start()
}

func setupKafkaListener(ctx context.Context, cfg configs.Config, orderRepo usecase.OrderRepo, statusCache usecase.OrderCache) (sarama.ConsumerGroup, error) {
	grp, err := kafka.NewGroup(cfg.Kafka.Brokers, cfg.Kafka.GroupID)
	if err != nil {
		return nil, err
	}

	h := kafka.NewOrderStatusChangedHandler(orderRepo, statusCache)
	consumer := kafka.NewConsumer(grp, []string{cfg.Kafka.Topic}, h.Handle)

	go func() {
		if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logging.New("kafka").Error("consumer stopped", "err", err)
		}
	}()
	return grp, nil
}
