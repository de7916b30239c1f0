package notify

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const DefaultChannel = "asksolve:pending"

// RedisBroker shares counts between API instances over Redis pub/sub.
type RedisBroker struct {
	client  *redis.Client
	channel string
	logger  *zap.Logger
}

var _ Broker = (*RedisBroker)(nil)

func NewRedisBroker(client *redis.Client, channel string, logger *zap.Logger) *RedisBroker {
	if channel == "" {
		channel = DefaultChannel
	}
	return &RedisBroker{client: client, channel: channel, logger: logger}
}

func (b *RedisBroker) Publish(ctx context.Context, count int64) error {
	if err := b.client.Publish(ctx, b.channel, strconv.FormatInt(count, 10)).Err(); err != nil {
		return fmt.Errorf("publish pending count: %w", err)
	}
	return nil
}

func (b *RedisBroker) Subscribe(ctx context.Context) (<-chan int64, func(), error) {
	ps := b.client.Subscribe(ctx, b.channel)
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, nil, fmt.Errorf("subscribe pending count: %w", err)
	}

	out := make(chan int64, 1)
	done := make(chan struct{})
	go func() {
		defer close(out)
		msgs := ps.Channel()
		for {
			select {
			case <-done:
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				n, err := strconv.ParseInt(msg.Payload, 10, 64)
				if err != nil {
					b.logger.Warn("dropping malformed pending count", zap.String("payload", msg.Payload))
					continue
				}
				offerLatest(out, n)
			}
		}
	}()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			close(done)
			_ = ps.Close()
		})
	}
	return out, cancel, nil
}
