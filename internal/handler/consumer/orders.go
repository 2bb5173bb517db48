package consumer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"serial-inventory/internal/handler/dto/request"
	"serial-inventory/internal/pkg/errs"
	"serial-inventory/internal/usecase/commands"

	"github.com/segmentio/kafka-go"
)

const maxRetryBackoff = 30 * time.Second

// MessageReader is the subset of *kafka.Reader the consumer needs.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// OrderConsumer feeds order events forwarded to Kafka into the same reconciler the webhooks use.
// Offsets are committed only once a message is reconciled or found to be unprocessable.
type OrderConsumer struct {
	reader     MessageReader
	reconciler commands.Reconciler
	backoff    time.Duration
}

func NewOrderConsumer(reader MessageReader, reconciler commands.Reconciler) *OrderConsumer {
	return &OrderConsumer{reader: reader, reconciler: reconciler, backoff: 500 * time.Millisecond}
}

// Run consumes until ctx ends or the reader is closed. Fetch failures are retried
// with backoff, so a broker outage pauses consumption instead of ending it.
func (c *OrderConsumer) Run(ctx context.Context) error {
	slog.InfoContext(ctx, "order event consumer started")
	wait := c.backoff
	for {
		msg, err := c.reader.FetchMessage(ctx)
		switch {
		case err == nil:
			wait = c.backoff
		case ctx.Err() != nil, errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			slog.InfoContext(ctx, "order event consumer stopped")
			return nil
		case errors.Is(err, io.EOF):
			slog.InfoContext(ctx, "order event reader closed")
			return nil
		default:
			slog.ErrorContext(ctx, "failed to fetch order event, retrying", "retry_in", wait, "error", err.Error())
			if !sleep(ctx, wait) {
				return nil
			}
			wait = min(wait*2, maxRetryBackoff)
			continue
		}

		if err := c.process(ctx, msg); err != nil {
			// only context cancellation reaches here
			return nil
		}
		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			slog.ErrorContext(ctx, "failed to commit order event",
				"partition", msg.Partition, "offset", msg.Offset, "error", err.Error())
		}
	}
}

// process retries infrastructure failures until the context ends. Invalid
// messages are logged and skipped since a redelivery cannot fix them.
func (c *OrderConsumer) process(ctx context.Context, msg kafka.Message) error {
	wait := c.backoff
	for {
		err := c.HandleMessage(ctx, msg)
		switch {
		case err == nil:
			return nil
		case errs.Is(err, errs.ErrValidation):
			slog.WarnContext(ctx, "skipping invalid order event",
				"partition", msg.Partition, "offset", msg.Offset, "error", err.Error())
			return nil
		}

		slog.ErrorContext(ctx, "order event failed, retrying",
			"partition", msg.Partition, "offset", msg.Offset, "retry_in", wait, "error", err.Error())
		if !sleep(ctx, wait) {
			return ctx.Err()
		}
		wait = min(wait*2, maxRetryBackoff)
	}
}

// sleep waits for d and reports false when ctx ended first.
func sleep(ctx context.Context, d time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}

func (c *OrderConsumer) HandleMessage(ctx context.Context, msg kafka.Message) error {
	meta := request.WebhookMeta{
		Topic:      request.ParseTopic(header(msg, request.HeaderTopic)),
		Shop:       header(msg, request.HeaderShopDomain),
		DeliveryID: header(msg, request.HeaderWebhookID),
	}
	if meta.DeliveryID == "" {
		meta.DeliveryID = fmt.Sprintf("kafka:%s:%d:%d", msg.Topic, msg.Partition, msg.Offset)
	}

	ev, err := request.DecodeOrderEvent(meta, msg.Value)
	if err != nil {
		return err
	}
	_, err = c.reconciler.Handle(ctx, ev)
	return err
}

func header(msg kafka.Message, key string) string {
	for _, h := range msg.Headers {
		if strings.EqualFold(h.Key, key) {
			return string(h.Value)
		}
	}
	return ""
}
