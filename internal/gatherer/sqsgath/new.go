// Package sqsgath sends run events to an SQS queue.
package sqsgath

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/programme-lv/neetrunner/internal/gatherer"
)

// New loads the default AWS config for region and creates a gatherer
// that sends events of run runUuid to queueUrl.
func New(ctx context.Context, runUuid string, queueUrl string, region string, log *slog.Logger) (*gatherer.Publisher, error) {
	opts := []func(*config.LoadOptions) error{}
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}
	return NewWithClient(sqs.NewFromConfig(cfg), runUuid, queueUrl, log), nil
}

func NewWithClient(client Sender, runUuid string, queueUrl string, log *slog.Logger) *gatherer.Publisher {
	return gatherer.NewPublisher(&sqsSink{client: client, queueUrl: queueUrl}, runUuid, log)
}
