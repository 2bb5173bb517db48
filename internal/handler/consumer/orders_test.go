//go:build unit

package consumer

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"serial-inventory/internal/domain/order"
	"serial-inventory/internal/handler/dto/request"
	"serial-inventory/internal/pkg/errs"
	"serial-inventory/internal/usecase/commands"
	commandsmock "serial-inventory/tests/mock/commands"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// fakeReader serves queue in order and reports io.EOF, as a closed reader does, once empty.
// The first fetchErrs fetches fail with those errors.
type fakeReader struct {
	mu        sync.Mutex
	queue     []kafka.Message
	fetchErrs []error
	fetches   int
	committed []int64
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fetches++
	if len(r.fetchErrs) > 0 {
		err := r.fetchErrs[0]
		r.fetchErrs = r.fetchErrs[1:]
		return kafka.Message{}, err
	}
	if len(r.queue) == 0 {
		return kafka.Message{}, io.EOF
	}
	msg := r.queue[0]
	r.queue = r.queue[1:]
	return msg, nil
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range msgs {
		r.committed = append(r.committed, m.Offset)
	}
	return nil
}

func (r *fakeReader) Close() error { return nil }

func message(offset int64, topic, body string, extra ...kafka.Header) kafka.Message {
	headers := append([]kafka.Header{
		{Key: "x-shopify-topic", Value: []byte(topic)},
		{Key: request.HeaderShopDomain, Value: []byte("test-shop.myshopify.com")},
	}, extra...)
	return kafka.Message{Topic: "storefront.orders", Partition: 0, Offset: offset, Headers: headers, Value: []byte(body)}
}

func TestOrderConsumer_HandleMessage(t *testing.T) {
	ctrl := gomock.NewController(t)
	reconciler := commandsmock.NewMockReconciler(ctrl)
	c := NewOrderConsumer(&fakeReader{}, reconciler)

	t.Run("webhook id header is the delivery id", func(t *testing.T) {
		reconciler.EXPECT().Handle(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, ev commands.Event) (*commands.ReconcileResult, error) {
				assert.Equal(t, order.TopicOrderPaid, ev.Topic)
				assert.Equal(t, "wh-1", ev.DeliveryID)
				assert.Equal(t, "1001", ev.Paid.OrderID)
				return &commands.ReconcileResult{}, nil
			})

		msg := message(3, "orders/paid", `{"id": 1001}`, kafka.Header{Key: request.HeaderWebhookID, Value: []byte("wh-1")})
		require.NoError(t, c.HandleMessage(context.Background(), msg))
	})

	t.Run("offset is the delivery id without a webhook id", func(t *testing.T) {
		reconciler.EXPECT().Handle(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, ev commands.Event) (*commands.ReconcileResult, error) {
				assert.Equal(t, "kafka:storefront.orders:0:9", ev.DeliveryID)
				return &commands.ReconcileResult{}, nil
			})

		require.NoError(t, c.HandleMessage(context.Background(), message(9, "ORDERS_CANCELLED", `{"id": 1001}`)))
	})
}

func TestOrderConsumer_Run(t *testing.T) {
	t.Run("commits processed and invalid messages", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		reconciler := commandsmock.NewMockReconciler(ctrl)
		reader := &fakeReader{queue: []kafka.Message{
			message(1, "orders/paid", `{"id": 1001}`),
			message(2, "products/update", `{}`),
			message(3, "orders/paid", `not json`),
		}}
		reconciler.EXPECT().Handle(gomock.Any(), gomock.Any()).Return(&commands.ReconcileResult{}, nil)

		require.NoError(t, NewOrderConsumer(reader, reconciler).Run(context.Background()))
		assert.Equal(t, []int64{1, 2, 3}, reader.committed)
	})

	t.Run("retries infrastructure failures before committing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		reconciler := commandsmock.NewMockReconciler(ctrl)
		reader := &fakeReader{queue: []kafka.Message{message(1, "orders/paid", `{"id": 1001}`)}}
		dbDown := errs.Mark(errs.New("connection refused"), errs.ErrDatabaseOperationFailed)
		gomock.InOrder(
			reconciler.EXPECT().Handle(gomock.Any(), gomock.Any()).Return(nil, dbDown),
			reconciler.EXPECT().Handle(gomock.Any(), gomock.Any()).Return(&commands.ReconcileResult{}, nil),
		)

		c := NewOrderConsumer(reader, reconciler)
		c.backoff = time.Millisecond
		require.NoError(t, c.Run(context.Background()))
		assert.Equal(t, []int64{1}, reader.committed)
	})

	t.Run("keeps fetching after broker errors", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		reconciler := commandsmock.NewMockReconciler(ctrl)
		brokerDown := errors.New("dial tcp: connection refused")
		reader := &fakeReader{
			fetchErrs: []error{brokerDown, brokerDown},
			queue:     []kafka.Message{message(7, "orders/paid", `{"id": 1001}`)},
		}
		reconciler.EXPECT().Handle(gomock.Any(), gomock.Any()).Return(&commands.ReconcileResult{}, nil)

		c := NewOrderConsumer(reader, reconciler)
		c.backoff = time.Millisecond
		require.NoError(t, c.Run(context.Background()))
		assert.Equal(t, []int64{7}, reader.committed)
		assert.Equal(t, 4, reader.fetches)
	})

	t.Run("stops when cancelled after a fetch error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		reconciler := commandsmock.NewMockReconciler(ctrl)
		reader := &fakeReader{fetchErrs: []error{errors.New("leader not available")}}
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		require.NoError(t, NewOrderConsumer(reader, reconciler).Run(ctx))
		assert.Equal(t, 1, reader.fetches)
	})

	t.Run("stops without committing when cancelled mid-retry", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		reconciler := commandsmock.NewMockReconciler(ctrl)
		reader := &fakeReader{queue: []kafka.Message{message(1, "orders/paid", `{"id": 1001}`)}}
		ctx, cancel := context.WithCancel(context.Background())
		reconciler.EXPECT().Handle(gomock.Any(), gomock.Any()).DoAndReturn(
			func(context.Context, commands.Event) (*commands.ReconcileResult, error) {
				cancel()
				return nil, errs.Mark(errs.New("connection refused"), errs.ErrDatabaseOperationFailed)
			})

		require.NoError(t, NewOrderConsumer(reader, reconciler).Run(ctx))
		assert.Empty(t, reader.committed)
	})
}
