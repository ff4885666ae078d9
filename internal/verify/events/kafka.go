package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"
)

// DefaultTopic is where attempt events land unless configured otherwise.
const DefaultTopic = "licensure.verification.attempts"

const defaultBufferSize = 1024

// KafkaPublisher buffers events in memory and produces them from a single
// worker goroutine. When the buffer is full, new events are dropped and
// counted; callers are never blocked.
type KafkaPublisher struct {
	client *kgo.Client
	topic  string
	logger *slog.Logger

	inbox     chan AttemptEvent
	closeOnce sync.Once
	dropped   atomic.Int64
}

// KafkaOption configures the KafkaPublisher.
type KafkaOption func(*KafkaPublisher)

// WithLogger sets a logger for produce failures and drops.
func WithLogger(logger *slog.Logger) KafkaOption {
	return func(p *KafkaPublisher) {
		p.logger = logger
	}
}

// WithTopic overrides the destination topic.
func WithTopic(topic string) KafkaOption {
	return func(p *KafkaPublisher) {
		p.topic = topic
	}
}

// WithBufferSize overrides the in-memory buffer capacity.
func WithBufferSize(n int) KafkaOption {
	return func(p *KafkaPublisher) {
		if n > 0 {
			p.inbox = make(chan AttemptEvent, n)
		}
	}
}

// NewKafka creates a publisher against the given brokers. The connection is
// lazy; Run must be started for events to reach the broker.
func NewKafka(brokers []string, opts ...KafkaOption) (*KafkaPublisher, error) {
	p := &KafkaPublisher{
		topic: DefaultTopic,
		inbox: make(chan AttemptEvent, defaultBufferSize),
	}
	for _, opt := range opts {
		opt(p)
	}

	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.ClientID("licensure"),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	p.client = client
	return p, nil
}

// EnsureTopic creates the destination topic if it does not exist yet.
func (p *KafkaPublisher) EnsureTopic(ctx context.Context, partitions int32, replication int16) error {
	adm := kadm.NewClient(p.client)
	res, err := adm.CreateTopics(ctx, partitions, replication, nil, p.topic)
	if err != nil {
		return fmt.Errorf("create topic %s: %w", p.topic, err)
	}
	for _, t := range res {
		if t.Err != nil && !errors.Is(t.Err, kerr.TopicAlreadyExists) {
			return fmt.Errorf("create topic %s: %w", t.Topic, t.Err)
		}
	}
	return nil
}

// Publish enqueues one event. Drops and counts the event when the buffer is
// full.
func (p *KafkaPublisher) Publish(ctx context.Context, event AttemptEvent) {
	select {
	case p.inbox <- event:
	default:
		p.dropped.Add(1)
		if p.logger != nil {
			p.logger.WarnContext(ctx, "attempt event dropped, buffer full",
				"attempt_id", event.AttemptID,
				"dropped_total", p.dropped.Load(),
			)
		}
	}
}

// Run drains the buffer until the context ends. Produce failures are logged
// and the event is discarded; the attempt log already holds the record.
func (p *KafkaPublisher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-p.inbox:
			p.produce(ctx, event)
		}
	}
}

func (p *KafkaPublisher) produce(ctx context.Context, event AttemptEvent) {
	value, err := json.Marshal(event)
	if err != nil {
		if p.logger != nil {
			p.logger.ErrorContext(ctx, "marshal attempt event", "attempt_id", event.AttemptID, "error", err)
		}
		return
	}

	record := &kgo.Record{
		Topic: p.topic,
		// Keyed by provider so one provider's attempts stay ordered.
		Key:   []byte(event.ProviderID),
		Value: value,
	}
	if err := p.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		if p.logger != nil {
			p.logger.ErrorContext(ctx, "produce attempt event", "attempt_id", event.AttemptID, "error", err)
		}
	}
}

// Dropped returns the total number of events discarded on a full buffer.
func (p *KafkaPublisher) Dropped() int64 {
	return p.dropped.Load()
}

// Close flushes buffered produce requests and releases the client.
func (p *KafkaPublisher) Close() error {
	p.closeOnce.Do(func() {
		p.client.Close()
	})
	return nil
}
