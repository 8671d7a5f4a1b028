package kafka

import (
	"context"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"milahouse/internal/infra/inbox"
)

func TestProducerPublish(t *testing.T) {
	sp := mocks.NewSyncProducer(t, nil)
	sp.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		assert.Equal(t, "booking.events.v1", msg.Topic)
		key, err := msg.Key.Encode()
		require.NoError(t, err)
		assert.Equal(t, "req-1", string(key))
		require.Len(t, msg.Headers, 1)
		assert.Equal(t, "content-type", string(msg.Headers[0].Key))
		return nil
	})
	p := NewProducerWith(sp)
	err := p.Publish(context.Background(), "booking.events.v1", "req-1", []byte(`{}`), map[string]string{"content-type": "application/cloudevents+json"})
	require.NoError(t, err)
	require.NoError(t, p.Close())
}

func TestProducerHonoursCancelledContext(t *testing.T) {
	sp := mocks.NewSyncProducer(t, nil)
	p := NewProducerWith(sp)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, p.Publish(ctx, "t", "k", nil, nil), context.Canceled)
	require.NoError(t, p.Close())
}

func TestInvalidationHandle(t *testing.T) {
	ctx := context.Background()
	refreshes := 0
	h := Invalidation{
		Inbox:   inbox.NewStore(16),
		Types:   []string{"reservation."},
		Refresh: func() { refreshes++ },
	}

	structured := &sarama.ConsumerMessage{Value: []byte(`{"id":"e1","type":"reservation.confirmed.v1"}`)}
	require.NoError(t, h.Handle(ctx, structured))
	require.NoError(t, h.Handle(ctx, structured))
	assert.Equal(t, 1, refreshes)

	binary := &sarama.ConsumerMessage{Headers: []*sarama.RecordHeader{
		{Key: []byte("ce_id"), Value: []byte("e2")},
		{Key: []byte("ce_type"), Value: []byte("reservation.cancelled.v1")},
	}}
	require.NoError(t, h.Handle(ctx, binary))
	assert.Equal(t, 2, refreshes)

	other := &sarama.ConsumerMessage{Value: []byte(`{"id":"e3","type":"booking.request_submitted.v1"}`)}
	require.NoError(t, h.Handle(ctx, other))
	assert.Equal(t, 2, refreshes)

	garbage := &sarama.ConsumerMessage{Value: []byte(`not json`)}
	require.NoError(t, Invalidation{Refresh: func() { refreshes++ }}.Handle(ctx, garbage))
	assert.Equal(t, 3, refreshes)
}
