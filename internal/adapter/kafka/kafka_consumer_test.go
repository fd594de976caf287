package kafka

import (
	"context"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/quocluongg/telectric-web-sub001/internal/usecase"
	"github.com/stretchr/testify/require"
)

// stubGroup blocks in Consume until the context ends, like a healthy group
// with no traffic.
type stubGroup struct{}

func (stubGroup) Consume(ctx context.Context, _ []string, _ sarama.ConsumerGroupHandler) error {
	<-ctx.Done()
	return ctx.Err()
}
func (stubGroup) Errors() <-chan error      { return nil }
func (stubGroup) Close() error              { return nil }
func (stubGroup) Pause(map[string][]int32)  {}
func (stubGroup) Resume(map[string][]int32) {}
func (stubGroup) PauseAll()                 {}
func (stubGroup) ResumeAll()                {}

func TestConsumerStopsOnContextCancel(t *testing.T) {
	c := NewConsumer(stubGroup{}, []string{"storefront.order.status"},
		func(context.Context, usecase.OrderStatusChangedMsg) error { return nil })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Start(ctx) }()

	cancel()
	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("consumer did not stop after cancellation")
	}
}
