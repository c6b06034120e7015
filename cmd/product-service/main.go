package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/iyhunko/product-service/internal/config"
	httpAPI "github.com/iyhunko/product-service/internal/http"
	"github.com/iyhunko/product-service/internal/http/controller"
	"github.com/iyhunko/product-service/internal/logger"
	"github.com/iyhunko/product-service/internal/metrics"
	"github.com/iyhunko/product-service/internal/repository"
	"github.com/iyhunko/product-service/internal/repository/mongo"
	"github.com/iyhunko/product-service/internal/repository/sql"
	"github.com/iyhunko/product-service/internal/service"
	sqspkg "github.com/iyhunko/product-service/internal/sqs"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger.InitJSONLogger()

	conf, err := config.LoadFromEnv()
	handleErr("loading config", err)

	log := logger.New(os.Stdout, conf.LogFormat, conf.DebugMode)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	productRepository, closeStorage, err := openStorage(ctx, conf)
	handleErr("opening storage", err)

	// events are optional for the API; without a queue the service runs standalone
	var publisher service.EventPublisher
	if conf.EventsEnabled() {
		sqsClient, err := sqspkg.NewClient(ctx, conf.AWS)
		handleErr("loading AWS config", err)
		publisher = sqspkg.NewPublisher(sqsClient, conf.AWS.SQSQueueURL)
		log.Info("product events enabled", slog.String("queue_url", conf.AWS.SQSQueueURL))
	}

	productService := service.NewProductService(productRepository, publisher, log)

	if !conf.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	httpAPI.InitRouter(engine, controller.New(), controller.NewProductController(productService, log), log)

	httpServer := &http.Server{
		Addr:              ":" + conf.HTTPServer.Port,
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
	}
	metricsServer := metrics.NewServer(conf)

	go func() {
		log.Info("HTTP server starting", slog.String("port", conf.HTTPServer.Port), slog.String("storage", conf.StorageDriver))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			handleErr("listening to HTTP requests", err)
		}
	}()

	go func() {
		log.Info("Metrics server starting", slog.String("port", conf.MetricsServer.Port))
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			handleErr("listening to metrics requests", err)
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to stop HTTP server", slog.Any("err", err))
	}
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to stop metrics server", slog.Any("err", err))
	}
	if err := closeStorage(shutdownCtx); err != nil {
		log.Error("failed to close storage", slog.Any("err", err))
	}
}

// openStorage connects the configured backend and returns its repository with a close func.
func openStorage(ctx context.Context, conf *config.Config) (repository.ProductRepository, func(context.Context) error, error) {
	switch conf.StorageDriver {
	case config.StoragePostgres:
		db, err := sql.StartDB(ctx, conf.Database)
		if err != nil {
			return nil, nil, err
		}
		return sql.NewProductRepository(db), func(context.Context) error { return db.Close() }, nil
	default:
		client, err := mongo.Connect(ctx, conf.Mongo)
		if err != nil {
			return nil, nil, err
		}
		return mongo.NewProductRepository(mongo.Collection(client, conf.Mongo)), client.Disconnect, nil
	}
}

func handleErr(msg string, err error) {
	if err != nil {
		log.Fatalf("error while %s: %v", msg, err)
	}
}
