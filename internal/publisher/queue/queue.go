package queue

import (
	"context"
	"errors"
	"time"
)

const (
	ChannelBufferLimit = 50

	SingleRequestTimeout = 30 * time.Second
	tickerTimeout        = 1 * time.Second
)

var ErrQueueClosed = errors.New("queue is closed")

// Message is one record headed for the broker. Key decides the partition.
type Message struct {
	Key   []byte
	Value []byte
}

type Queue interface {
	Enqueue(ctx context.Context, msg Message) error
	StartQueueProducer()
	CloseQueue(ctx context.Context) error
}
