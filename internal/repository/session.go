package repo

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	errs "gogame/internal/errors"
)

// RedisSessionStorage maps session ids to user ids. Sessions are issued by
// the account service; the game server only reads and drops them.
type RedisSessionStorage struct {
	client *redis.Client
}

func NewSessionRedisStorage(redis *redis.Client) *RedisSessionStorage {
	return &RedisSessionStorage{client: redis}
}

func sessionKey(sessionID string) string {
	return "session:" + sessionID
}

func (r *RedisSessionStorage) GetUserIdBySession(ctx context.Context, sessionID string) (string, error) {
	v, err := r.client.Get(ctx, sessionKey(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", errs.ErrSessionNotFound
	}
	if err != nil {
		return "", err
	}
	return v, nil
}

func (r *RedisSessionStorage) DeleteSession(ctx context.Context, sessionID string) error {
	n, err := r.client.Del(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return errs.ErrSessionNotFound
	}
	return nil
}
