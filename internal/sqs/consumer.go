package sqs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
)

// ConsumerAPI defines the interface for SQS operations used by Consumer.
type ConsumerAPI interface {
	ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error)
	DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error)
}

// Consumer handles consuming product events from AWS SQS.
type Consumer struct {
	client   ConsumerAPI
	queueURL string
	logger   *slog.Logger
}

// NewConsumer creates a new SQS Consumer with the given client and queue URL.
func NewConsumer(client ConsumerAPI, queueURL string, logger *slog.Logger) *Consumer {
	return &Consumer{
		client:   client,
		queueURL: queueURL,
		logger:   logger,
	}
}

// Start begins consuming messages from the SQS queue until the context is cancelled.
func (c *Consumer) Start(ctx context.Context) error {
	c.logger.Info("starting SQS consumer", slog.String("queue_url", c.queueURL))

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("stopping SQS consumer")
			return ctx.Err()
		default:
			if err := c.receiveMessages(ctx); err != nil {
				c.logger.Error("error receiving messages", slog.Any("err", err))
			}
		}
	}
}

func (c *Consumer) receiveMessages(ctx context.Context) error {
	result, err := c.client.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
		QueueUrl:            aws.String(c.queueURL),
		MaxNumberOfMessages: 10,
		WaitTimeSeconds:     20, // long polling
	})
	if err != nil {
		return fmt.Errorf("failed to receive messages: %w", err)
	}

	for _, message := range result.Messages {
		if err := c.processMessage(ctx, message); err != nil {
			c.logger.Error("error processing message", slog.Any("err", err))
			continue
		}

		if err := c.deleteMessage(ctx, message); err != nil {
			c.logger.Error("error deleting message", slog.Any("err", err))
		}
	}

	return nil
}

func (c *Consumer) processMessage(ctx context.Context, message types.Message) error {
	if message.Body == nil {
		return fmt.Errorf("message body is nil")
	}

	var productMsg ProductMessage
	if err := json.Unmarshal([]byte(*message.Body), &productMsg); err != nil {
		return fmt.Errorf("failed to unmarshal message: %w", err)
	}

	c.logger.InfoContext(ctx, "received product event",
		slog.String("action", productMsg.Action),
		slog.String("product_id", productMsg.ProductID),
		slog.String("name", productMsg.Name),
		slog.String("sku_code", productMsg.SkuCode),
		slog.String("price", productMsg.Price.String()),
	)

	return nil
}

func (c *Consumer) deleteMessage(ctx context.Context, message types.Message) error {
	_, err := c.client.DeleteMessage(ctx, &sqs.DeleteMessageInput{
		QueueUrl:      aws.String(c.queueURL),
		ReceiptHandle: message.ReceiptHandle,
	})
	if err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}
	return nil
}
