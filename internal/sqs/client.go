package sqs

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/iyhunko/product-service/internal/config"
)

// NewClient creates and configures a new AWS SQS client.
// It loads the AWS configuration from the environment and optionally sets a custom endpoint (LocalStack).
func NewClient(ctx context.Context, conf config.AWSConfig) (*sqs.Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(conf.Region),
	)
	if err != nil {
		return nil, err
	}

	if conf.Endpoint != "" {
		awsCfg.BaseEndpoint = aws.String(conf.Endpoint)
	}

	return sqs.NewFromConfig(awsCfg), nil
}
