package queue

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/unclebandit/customer-service/internal/logger"
)

// Publisher delivers a payload to everyone listening on topic.
type Publisher interface {
	Publish(ctx context.Context, topic string, payload any) error
}

// Handler consumes one payload; a non-nil error triggers a retry.
type Handler func(payload any) error

// InMemoryQueue fans payloads out to local subscribers with retry.
type InMemoryQueue struct {
	mu         sync.Mutex
	handlers   map[string][]Handler
	MaxRetries int
	Backoff    time.Duration
	log        *logger.Logger
}

// NewInMemoryQueue creates a new queue. A nil log discards retry logs.
func NewInMemoryQueue(log *logger.Logger) *InMemoryQueue {
	if log == nil {
		log = logger.Nop()
	}
	return &InMemoryQueue{
		handlers:   make(map[string][]Handler),
		MaxRetries: 3,
		Backoff:    500 * time.Millisecond,
		log:        log,
	}
}

// JobPayload wraps a message payload with retry info
type JobPayload struct {
	Payload    any
	RetryCount int
	MaxRetries int
}

// Publish hands the payload to every subscriber of topic in its own goroutine.
func (q *InMemoryQueue) Publish(ctx context.Context, topic string, payload any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	q.mu.Lock()
	handlers := append([]Handler(nil), q.handlers[topic]...)
	q.mu.Unlock()

	if len(handlers) == 0 {
		return fmt.Errorf("no subscribers for topic %s", topic)
	}

	job := JobPayload{
		Payload:    payload,
		MaxRetries: q.MaxRetries,
	}

	for _, handler := range handlers {
		go q.processJob(handler, job)
	}

	return nil
}

// processJob retries with a linear backoff and gives up after MaxRetries.
func (q *InMemoryQueue) processJob(handler Handler, job JobPayload) {
	for job.RetryCount <= job.MaxRetries {
		err := handler(job.Payload)
		if err == nil {
			return
		}

		job.RetryCount++
		q.log.Warn().Err(err).Int("attempt", job.RetryCount).Int("max_retries", job.MaxRetries).Msg("job failed")

		if job.RetryCount > job.MaxRetries {
			q.log.Error().Int("attempts", job.RetryCount).Msg("job permanently failed")
			return
		}

		time.Sleep(time.Duration(job.RetryCount) * q.Backoff)
	}
}

// Subscribe adds a handler for a topic
func (q *InMemoryQueue) Subscribe(topic string, handler Handler) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.handlers[topic] = append(q.handlers[topic], handler)
	return nil
}

var _ Publisher = (*InMemoryQueue)(nil)
