package bootstrap

import (
	"context"
	"log/slog"

	"serial-inventory/internal/handler/consumer"
	"serial-inventory/internal/pkg/config"
	"serial-inventory/internal/usecase/commands"

	"github.com/segmentio/kafka-go"
	"go.uber.org/fx"
)

var KafkaModule = fx.Module("kafka",
	fx.Invoke(
		StartOrderConsumer,
	),
)

func NewOrderReader(cfg config.KafkaConfig) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Brokers,
		Topic:    cfg.Topic,
		GroupID:  cfg.GroupID,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
}

// StartOrderConsumer runs the order event consumer for the app's lifetime when KAFKA_BROKERS is set.
func StartOrderConsumer(lc fx.Lifecycle, cfg config.Config, reconciler commands.Reconciler) {
	if !cfg.Kafka.Enabled() {
		slog.Info("kafka not configured, order event consumer disabled")
		return
	}

	reader := NewOrderReader(cfg.Kafka)
	c := consumer.NewOrderConsumer(reader, reconciler)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				defer close(done)
				if err := c.Run(ctx); err != nil {
					slog.Error("order event consumer exited", "error", err.Error())
				}
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
			case <-stopCtx.Done():
			}
			return reader.Close()
		},
	})
}
