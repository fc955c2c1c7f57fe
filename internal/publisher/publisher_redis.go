package publisher

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const DefaultRedisChannel = "photos:state"

// RedisPublisher announces state events on a pub/sub channel. Nothing is stored.
type RedisPublisher struct {
	Logger  *zap.SugaredLogger
	Client  *redis.Client
	channel string
}

func NewRedisPublisher(client *redis.Client, logger *zap.SugaredLogger, channel string) *RedisPublisher {
	if channel == "" {
		channel = DefaultRedisChannel
	}

	return &RedisPublisher{
		Logger:  logger,
		Client:  client,
		channel: channel,
	}
}

func (p *RedisPublisher) Name() string {
	return "redis"
}

func (p *RedisPublisher) Publish(ctx context.Context, event *StateEvent) error {
	if event == nil {
		return ErrNilEvent
	}

	payload, err := event.MarshalBinary()
	if err != nil {
		return fmt.Errorf("marshal state event: %w", err)
	}

	receivers, err := p.Client.Publish(ctx, p.channel, payload).Result()
	if err != nil {
		return fmt.Errorf("redis publish to %s: %w", p.channel, err)
	}

	p.Logger.Debugw("Published state event to redis", "channel", p.channel, "eventID", event.EventID, "receivers", receivers)
	return nil
}

func (p *RedisPublisher) Close(_ context.Context) error {
	return p.Client.Close()
}
