package queue

import (
	"context"
	"sync"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"
	"github.com/twmb/franz-go/pkg/sasl/plain"
	"github.com/twmb/franz-go/plugin/kotel"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

type KafkaConfig struct {
	Seeds    []string
	Topic    string
	User     string
	Password string
}

// producer is the part of *kgo.Client the queue needs.
type producer interface {
	Produce(ctx context.Context, r *kgo.Record, promise func(*kgo.Record, error))
	Close()
}

type KafkaQueue struct {
	logger       *zap.SugaredLogger
	KafkaClient  producer
	topic        string
	producerChan chan Message

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

func NewKafkaQueue(logger *zap.SugaredLogger, cfg *KafkaConfig) (*KafkaQueue, error) {
	tracer := kotel.NewTracer(kotel.TracerProvider(otel.GetTracerProvider()))
	kotelService := kotel.NewKotel(kotel.WithTracer(tracer))

	opts := []kgo.Opt{
		kgo.SeedBrokers(cfg.Seeds...),
		kgo.DefaultProduceTopic(cfg.Topic),
		kgo.WithHooks(kotelService.Hooks()...),
	}

	if cfg.User != "" {
		opts = append(opts, kgo.SASL(plain.Auth{
			User: cfg.User,
			Pass: cfg.Password,
		}.AsMechanism()))
	}

	client, err := kgo.NewClient(opts...)
	if err != nil {
		return nil, err
	}

	return newKafkaQueue(logger, client, cfg.Topic), nil
}

func newKafkaQueue(logger *zap.SugaredLogger, client producer, topic string) *KafkaQueue {
	return &KafkaQueue{
		logger:       logger,
		KafkaClient:  client,
		topic:        topic,
		producerChan: make(chan Message, ChannelBufferLimit),
		done:         make(chan struct{}),
	}
}

func (q *KafkaQueue) Enqueue(ctx context.Context, msg Message) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return ErrQueueClosed
	}

	select {
	case q.producerChan <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// StartQueueProducer batches enqueued messages and sends them when the batch is full or on
// every tick. It returns after CloseQueue, once the last batch has been sent.
func (q *KafkaQueue) StartQueueProducer() {
	defer close(q.done)

	items := make([]Message, 0, ChannelBufferLimit)
	flushTicker := time.NewTicker(tickerTimeout)
	defer flushTicker.Stop()

	for {
		select {
		case item, ok := <-q.producerChan:
			if !ok {
				if len(items) > 0 {
					q.sendToKafka(items)
				}
				return
			}

			items = append(items, item)
			if len(items) >= ChannelBufferLimit {
				q.sendToKafka(items)
				items = make([]Message, 0, ChannelBufferLimit)
			}
		case <-flushTicker.C:
			if len(items) > 0 {
				q.sendToKafka(items)
				items = make([]Message, 0, ChannelBufferLimit)
			}
		}
	}
}

func (q *KafkaQueue) sendToKafka(items []Message) {
	records := make([]*kgo.Record, 0, len(items))

	for _, item := range items {
		records = append(records, &kgo.Record{
			Topic: q.topic,
			Key:   item.Key,
			Value: item.Value,
		})
	}

	q.produceRecords(records)
}

func (q *KafkaQueue) produceRecords(records []*kgo.Record) {
	ctx, cancel := context.WithTimeout(context.Background(), SingleRequestTimeout)
	defer cancel()

	var wg sync.WaitGroup

	for _, record := range records {
		wg.Add(1)
		q.KafkaClient.Produce(ctx, record, func(r *kgo.Record, err error) {
			defer wg.Done()
			if err != nil {
				q.logger.Warnw("Failed to produce state record in kafka", "topic", r.Topic, "key", string(r.Key), "err", err)
			}
		})
	}

	wg.Wait()

	q.logger.Infow("Produced state records", "topic", q.topic, "count", len(records))
}

// CloseQueue stops accepting messages, waits for the producer loop to flush and closes the client.
func (q *KafkaQueue) CloseQueue(ctx context.Context) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil
	}
	q.closed = true
	close(q.producerChan)
	q.mu.Unlock()

	err := waitClosed(ctx, q.done)
	q.KafkaClient.Close()

	return err
}
