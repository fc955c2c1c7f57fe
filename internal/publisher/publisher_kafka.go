package publisher

import (
	"context"
	"fmt"
	"mars-photos/internal/publisher/queue"

	"go.uber.org/zap"
)

// KafkaPublisher keys every record by controller id so one controller's states stay ordered
// within a partition.
type KafkaPublisher struct {
	logger *zap.SugaredLogger
	queue  queue.Queue
}

func NewKafkaPublisher(logger *zap.SugaredLogger, q queue.Queue) *KafkaPublisher {
	return &KafkaPublisher{
		logger: logger,
		queue:  q,
	}
}

func (p *KafkaPublisher) Name() string {
	return "kafka"
}

func (p *KafkaPublisher) Run() {
	p.queue.StartQueueProducer()
}

func (p *KafkaPublisher) Publish(ctx context.Context, event *StateEvent) error {
	if event == nil {
		return ErrNilEvent
	}

	payload, err := event.MarshalBinary()
	if err != nil {
		return fmt.Errorf("marshal state event: %w", err)
	}

	return p.queue.Enqueue(ctx, queue.Message{
		Key:   []byte(event.ControllerID),
		Value: payload,
	})
}

func (p *KafkaPublisher) Close(ctx context.Context) error {
	return p.queue.CloseQueue(ctx)
}
