package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/iyhunko/product-service/internal/config"
	"github.com/iyhunko/product-service/internal/logger"
	sqspkg "github.com/iyhunko/product-service/internal/sqs"
)

func main() {
	logger.InitJSONLogger()

	conf, err := config.LoadConsumerFromEnv()
	handleErr("loading config", err)

	log := logger.New(os.Stdout, conf.LogFormat, conf.DebugMode)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sqsClient, err := sqspkg.NewClient(ctx, conf.AWS)
	handleErr("loading AWS config", err)

	consumer := sqspkg.NewConsumer(sqsClient, conf.AWS.SQSQueueURL, log)

	log.Info("Product events consumer started. Listening for messages...", slog.String("queue_url", conf.AWS.SQSQueueURL))
	if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("consumer stopped", slog.Any("err", err))
		os.Exit(1)
	}
	log.Info("Shutting down gracefully...")
}

func handleErr(msg string, err error) {
	if err != nil {
		log.Fatalf("error while %s: %v", msg, err)
	}
}
