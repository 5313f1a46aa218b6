package queue

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unclebandit/customer-service/internal/logger"
)

func TestInMemoryQueue_NoSubscribers(t *testing.T) {
	q := NewInMemoryQueue(logger.Nop())

	err := q.Publish(context.Background(), "customer_events", 1)
	assert.ErrorContains(t, err, "no subscribers")
}

func TestInMemoryQueue_Delivers(t *testing.T) {
	q := NewInMemoryQueue(logger.Nop())
	got := make(chan any, 1)
	require.NoError(t, q.Subscribe("customer_events", func(payload any) error {
		got <- payload
		return nil
	}))

	require.NoError(t, q.Publish(context.Background(), "customer_events", "hello"))

	select {
	case p := <-got:
		assert.Equal(t, "hello", p)
	case <-time.After(time.Second):
		t.Fatal("payload not delivered")
	}
}

func TestInMemoryQueue_RetriesThenGivesUp(t *testing.T) {
	q := NewInMemoryQueue(logger.Nop())
	q.MaxRetries = 2
	q.Backoff = time.Millisecond

	var calls atomic.Int32
	done := make(chan struct{})
	require.NoError(t, q.Subscribe("t", func(any) error {
		if calls.Add(1) == 3 {
			close(done)
		}
		return errors.New("handler failed")
	}))

	require.NoError(t, q.Publish(context.Background(), "t", 1))

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("handler was not retried")
	}
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(3), calls.Load())
}

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestInMemoryQueue_RetryLogsUseInjectedLogger(t *testing.T) {
	out := &lockedBuffer{}
	l := &logger.Logger{Logger: zerolog.New(out).With().Str("role", "server").Logger()}

	q := NewInMemoryQueue(l)
	q.MaxRetries = 1
	q.Backoff = time.Millisecond

	var calls atomic.Int32
	require.NoError(t, q.Subscribe("t", func(any) error {
		calls.Add(1)
		return errors.New("handler failed")
	}))
	require.NoError(t, q.Publish(context.Background(), "t", 1))

	require.Eventually(t, func() bool {
		return bytes.Contains([]byte(out.String()), []byte("job permanently failed"))
	}, time.Second, 5*time.Millisecond)

	logs := out.String()
	assert.Contains(t, logs, `"message":"job failed"`)
	assert.Contains(t, logs, `"role":"server"`)
	assert.Equal(t, int32(2), calls.Load())
}

func TestInMemoryQueue_NilLogger(t *testing.T) {
	q := NewInMemoryQueue(nil)
	require.NotNil(t, q.log)
}

func TestInMemoryQueue_CanceledContext(t *testing.T) {
	q := NewInMemoryQueue(logger.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, q.Publish(ctx, "t", 1), context.Canceled)
}

type fakeChannel struct {
	declared  []string
	published []amqp.Publishing
	keys      []string
	pubErr    error
	closed    bool
}

func (f *fakeChannel) QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error) {
	f.declared = append(f.declared, name)
	return amqp.Queue{Name: name}, nil
}

func (f *fakeChannel) Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	if f.pubErr != nil {
		return f.pubErr
	}
	f.keys = append(f.keys, key)
	f.published = append(f.published, msg)
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func TestAMQPPublisher_DeclaresOnceAndPublishesJSON(t *testing.T) {
	ch := &fakeChannel{}
	p := newAMQPPublisher(nil, ch)

	require.NoError(t, p.Publish(context.Background(), "customer_events", map[string]string{"type": "customer.created"}))
	require.NoError(t, p.Publish(context.Background(), "customer_events", map[string]string{"type": "customer.deleted"}))

	assert.Equal(t, []string{"customer_events"}, ch.declared)
	assert.Equal(t, []string{"customer_events", "customer_events"}, ch.keys)
	require.Len(t, ch.published, 2)
	assert.Equal(t, "application/json", ch.published[0].ContentType)
	assert.Equal(t, uint8(amqp.Persistent), ch.published[0].DeliveryMode)

	var body map[string]string
	require.NoError(t, json.Unmarshal(ch.published[1].Body, &body))
	assert.Equal(t, "customer.deleted", body["type"])

	require.NoError(t, p.Close())
	assert.True(t, ch.closed)
}

func TestAMQPPublisher_PublishError(t *testing.T) {
	ch := &fakeChannel{pubErr: errors.New("channel closed")}
	p := newAMQPPublisher(nil, ch)

	err := p.Publish(context.Background(), "customer_events", 1)
	assert.ErrorContains(t, err, "failed to publish message")
}
