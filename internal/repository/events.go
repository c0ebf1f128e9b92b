package repo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"gogame/internal/domain/game"
)

// Envelope is the message delivered on a topic channel and forwarded as is
// to websocket clients.
type Envelope struct {
	Kind    game.EventKind `json:"kind"`
	Payload any            `json:"payload,omitempty"`
}

// EncodeEvent renders e the way subscribers receive it.
func EncodeEvent(e game.Event) ([]byte, error) {
	return json.Marshal(Envelope{Kind: e.Kind, Payload: e.Payload})
}

// RedisEventPublisher publishes every event on the Redis channel named by
// its topic, so all server instances can fan it out to their clients.
type RedisEventPublisher struct {
	log    *zap.SugaredLogger
	client *redis.Client
}

func NewRedisEventPublisher(log *zap.SugaredLogger, client *redis.Client) *RedisEventPublisher {
	return &RedisEventPublisher{log: log, client: client}
}

func (p *RedisEventPublisher) Publish(ctx context.Context, events ...game.Event) error {
	if len(events) == 0 {
		return nil
	}

	pipe := p.client.Pipeline()
	for _, e := range events {
		msg, err := EncodeEvent(e)
		if err != nil {
			return fmt.Errorf("encode %s event: %w", e.Kind, err)
		}
		pipe.Publish(ctx, e.Topic, msg)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("publish %d events: %w", len(events), err)
	}
	p.log.Debugf("published %d events to %s", len(events), events[0].Topic)
	return nil
}
