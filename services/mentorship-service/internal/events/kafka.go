package events

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/md-rashed-zaman/mentorconnect/libs/kafkax"
	otelx "github.com/md-rashed-zaman/mentorconnect/libs/otel"
)

var ErrQueueFull = errors.New("event queue full")

const flushTimeout = 5 * time.Second

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type queued struct {
	msg   kafka.Message
	trace otelx.TraceContext
}

// KafkaPublisher queues events and writes them to Kafka from Run.
// The topic is the event type and the key is the aggregate id.
type KafkaPublisher struct {
	writer messageWriter
	logger *slog.Logger
	queue  chan queued
	once   sync.Once
}

type KafkaConfig struct {
	Brokers   string
	QueueSize int
}

func NewKafkaPublisher(cfg KafkaConfig, logger *slog.Logger) *KafkaPublisher {
	writer := kafka.NewWriter(kafka.WriterConfig{
		Brokers:  kafkax.SplitBrokers(cfg.Brokers),
		Balancer: &kafka.Hash{},
	})
	return newKafkaPublisher(writer, cfg.QueueSize, logger)
}

func newKafkaPublisher(w messageWriter, queueSize int, logger *slog.Logger) *KafkaPublisher {
	if queueSize <= 0 {
		queueSize = 256
	}
	return &KafkaPublisher{
		writer: w,
		logger: logger,
		queue:  make(chan queued, queueSize),
	}
}

// Publish never blocks on the broker. Trace context is captured so the
// message carries the caller's span.
func (p *KafkaPublisher) Publish(ctx context.Context, e Event) error {
	value, err := json.Marshal(e)
	if err != nil {
		return err
	}
	item := queued{
		msg: kafka.Message{
			Topic:   e.Type,
			Key:     []byte(e.AggregateID),
			Value:   value,
			Headers: kafkax.EventHeaders(e.ID, e.Type),
		},
		trace: otelx.CaptureTraceContext(ctx),
	}
	select {
	case p.queue <- item:
		return nil
	default:
		p.logger.Warn("dropping domain event", "event_id", e.ID, "event_type", e.Type, "err", ErrQueueFull)
		return ErrQueueFull
	}
}

// Run drains the queue until ctx is cancelled, then flushes what is left and closes the writer.
func (p *KafkaPublisher) Run(ctx context.Context) {
	defer p.close()
	for {
		select {
		case <-ctx.Done():
			p.flush()
			return
		case item := <-p.queue:
			p.deliver(ctx, item)
		}
	}
}

// deliver writes one event on a context detached from ctx's cancellation,
// so a write already under way when shutdown starts still completes.
func (p *KafkaPublisher) deliver(ctx context.Context, item queued) {
	wctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), flushTimeout)
	defer cancel()
	p.write(wctx, item)
}

// flush gives the remaining events a bounded window to reach the broker.
func (p *KafkaPublisher) flush() {
	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()
	for {
		select {
		case item := <-p.queue:
			p.write(ctx, item)
		default:
			return
		}
	}
}

func (p *KafkaPublisher) write(ctx context.Context, item queued) {
	msgCtx := item.trace.Attach(ctx)
	msg := item.msg
	msg.Headers = kafkax.InjectTraceHeaders(msgCtx, msg.Headers)
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("kafka publish failed",
			"topic", msg.Topic,
			"event_id", kafkax.HeaderValue(msg.Headers, kafkax.HeaderEventID),
			"err", err,
		)
	}
}

func (p *KafkaPublisher) close() {
	p.once.Do(func() {
		if err := p.writer.Close(); err != nil {
			p.logger.Warn("kafka writer close failed", "err", err)
		}
	})
}
