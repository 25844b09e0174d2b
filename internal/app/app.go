package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/corray333/backend-labs/restaurant/internal/dal/interfaces/ieventpublisher"
	"github.com/corray333/backend-labs/restaurant/internal/dal/interfaces/ifoodrepo"
	"github.com/corray333/backend-labs/restaurant/internal/dal/interfaces/iorderrepo"
	"github.com/corray333/backend-labs/restaurant/internal/dal/interfaces/ioutboxrepo"
	"github.com/corray333/backend-labs/restaurant/internal/dal/interfaces/iuow"
	"github.com/corray333/backend-labs/restaurant/internal/dal/postgres"
	"github.com/corray333/backend-labs/restaurant/internal/dal/rabbitmq"
	"github.com/corray333/backend-labs/restaurant/internal/dal/redis"
	eventsrepo "github.com/corray333/backend-labs/restaurant/internal/dal/repositories/events/rabbitmq"
	foodmemory "github.com/corray333/backend-labs/restaurant/internal/dal/repositories/food/memory"
	foodpostgres "github.com/corray333/backend-labs/restaurant/internal/dal/repositories/food/postgres"
	foodredis "github.com/corray333/backend-labs/restaurant/internal/dal/repositories/food/redis"
	ordermemory "github.com/corray333/backend-labs/restaurant/internal/dal/repositories/order/memory"
	orderpostgres "github.com/corray333/backend-labs/restaurant/internal/dal/repositories/order/postgres"
	outboxpostgres "github.com/corray333/backend-labs/restaurant/internal/dal/repositories/outbox/postgres"
	"github.com/corray333/backend-labs/restaurant/internal/dal/uow"
	"github.com/corray333/backend-labs/restaurant/internal/otel"
	"github.com/corray333/backend-labs/restaurant/internal/service/models/currency"
	"github.com/corray333/backend-labs/restaurant/internal/service/services/billingsvc"
	"github.com/corray333/backend-labs/restaurant/internal/service/services/menusvc"
	"github.com/corray333/backend-labs/restaurant/internal/service/services/ordersvc"
	grpctransport "github.com/corray333/backend-labs/restaurant/internal/transport/grpc"
	httptransport "github.com/corray333/backend-labs/restaurant/internal/transport/http"
	outboxworker "github.com/corray333/backend-labs/restaurant/internal/worker/outbox"
	"github.com/spf13/viper"
)

// App represents the application.
type App struct {
	httpTransport  *httptransport.HTTPTransport
	grpcTransport  *grpctransport.GRPCTransport
	outboxWorker   *outboxworker.Worker
	otel           *otel.OtelController
	postgresClient *postgres.Client
	redisClient    *redis.Client
	rabbitClient   *rabbitmq.Client
}

// storage holds the repositories of the configured storage driver.
type storage struct {
	orderRepo  iorderrepo.IOrderRepository
	foodRepo   ifoodrepo.IFoodRepository
	newUOW     iuow.Factory
	outboxRepo ioutboxrepo.IOutboxRepository
}

// MustNewApp creates a new application from the loaded configuration.
func MustNewApp() *App {
	a := &App{}

	if viper.GetBool("otel.enabled") {
		a.otel = otel.MustInitOtel()
	}

	store := a.mustNewStorage()

	foodRepo := store.foodRepo
	if viper.GetBool("redis.enabled") {
		a.redisClient = redis.MustNewClient()
		foodRepo = foodredis.NewCachedFoodRepository(
			foodRepo,
			a.redisClient.Redis(),
			time.Duration(viper.GetInt("redis.food_ttl_seconds"))*time.Second,
		)
	}

	var publisher ieventpublisher.IEventPublisher
	if viper.GetBool("rabbitmq.enabled") {
		a.rabbitClient = rabbitmq.MustNewClient()
		publisher = eventsrepo.MustNewEventRabbitMQRepository(a.rabbitClient, store.outboxRepo)
		if store.outboxRepo != nil {
			a.outboxWorker = outboxworker.NewWorker(store.outboxRepo, a.rabbitClient)
		}
	}

	billCurrency, err := currency.ParseCurrency(viper.GetString("billing.currency"))
	if err != nil {
		panic("invalid billing.currency: " + err.Error())
	}

	orderSvc := ordersvc.MustNewOrderService(
		ordersvc.WithOrderRepository(store.orderRepo),
		ordersvc.WithCatalog(foodRepo),
		ordersvc.WithUnitOfWork(store.newUOW),
		ordersvc.WithEventPublisher(publisher),
	)
	billingSvc := billingsvc.MustNewBillingService(
		billingsvc.WithOrderRepository(store.orderRepo),
		billingsvc.WithCatalog(foodRepo),
		billingsvc.WithUnitOfWork(store.newUOW),
		billingsvc.WithEventPublisher(publisher),
		billingsvc.WithCurrency(billCurrency),
	)
	menuSvc := menusvc.MustNewMenuService(
		menusvc.WithFoodRepository(foodRepo),
	)

	a.httpTransport = httptransport.NewHTTPTransport(orderSvc, billingSvc, menuSvc)
	a.httpTransport.RegisterRoutes()
	a.grpcTransport = grpctransport.NewGRPCTransport()

	return a
}

func (a *App) mustNewStorage() storage {
	switch driver := viper.GetString("storage.driver"); driver {
	case "memory":
		orderRepo := ordermemory.NewOrderRepository()
		slog.Warn("Using in-memory storage, data is lost on restart")

		return storage{
			orderRepo: orderRepo,
			foodRepo:  foodmemory.NewFoodRepository(),
			newUOW: func() iuow.IUnitOfWork {
				return uow.NewMemoryUnitOfWork(orderRepo)
			},
		}
	case "postgres":
		a.postgresClient = postgres.MustNewClient()
		pool := a.postgresClient.Pool()

		return storage{
			orderRepo: orderpostgres.NewPostgresOrderRepository(pool),
			foodRepo:  foodpostgres.NewPostgresFoodRepository(pool),
			newUOW: func() iuow.IUnitOfWork {
				return uow.NewUnitOfWork(a.postgresClient)
			},
			outboxRepo: outboxpostgres.NewOutboxRepository(pool),
		}
	default:
		panic("unknown storage.driver: " + driver)
	}
}

// Run starts the application.
// Tracks interrupt signal to gracefully shut down the application.
func (a *App) Run() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := a.httpTransport.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	go func() {
		if err := a.grpcTransport.Run(); err != nil {
			slog.Error("gRPC server error", "error", err)
		}
	}()

	if a.outboxWorker != nil {
		go a.outboxWorker.Start(ctx)
	}

	<-ctx.Done()
	slog.Info("Shutdown signal received")

	a.shutdown()
}

func (a *App) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpTransport.Shutdown(ctx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped gracefully")
	}

	if err := a.grpcTransport.Shutdown(ctx); err != nil {
		slog.Error("gRPC server shutdown error", "error", err)
	} else {
		slog.Info("gRPC server stopped gracefully")
	}

	if a.rabbitClient != nil {
		if err := a.rabbitClient.Close(); err != nil {
			slog.Error("RabbitMQ connection close error", "error", err)
		} else {
			slog.Info("RabbitMQ connection closed gracefully")
		}
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			slog.Error("Redis connection close error", "error", err)
		} else {
			slog.Info("Redis connection closed gracefully")
		}
	}

	if a.postgresClient != nil {
		a.postgresClient.Close()
		slog.Info("Database connection closed gracefully")
	}

	if a.otel != nil {
		if err := a.otel.Shutdown(ctx); err != nil {
			slog.Error("Tracer provider shutdown error", "error", err)
		}
	}

	slog.Info("Application shutdown complete")
}
