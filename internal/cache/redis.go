package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"
)

// InvalidationChannel carries the id of every store whose cached reads
// were dropped, for other instances or edge caches to follow.
const InvalidationChannel = "carcare:store-invalidated"

type Redis struct {
	client *redis.Client
}

func NewRedis(ctx context.Context, url string) (*Redis, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &Redis{client: client}, nil
}

// NewRedisWithClient wraps an existing client.
func NewRedisWithClient(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func (r *Redis) Get(ctx context.Context, key string, dest any) (bool, error) {
	b, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get from cache: %w", err)
	}
	if err := json.Unmarshal(b, dest); err != nil {
		// stale shape after a deploy; treat as a miss
		_ = r.client.Del(ctx, key).Err()
		return false, nil
	}
	return true, nil
}

func (r *Redis) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode cache value: %w", err)
	}
	if err := r.client.Set(ctx, key, b, ttl).Err(); err != nil {
		return fmt.Errorf("set in cache: %w", err)
	}
	return nil
}

func (r *Redis) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("delete from cache: %w", err)
	}
	return nil
}

func (r *Redis) InvalidateStore(ctx context.Context, storeID string) error {
	if err := r.Delete(ctx, StoreDetailKey(storeID)); err != nil {
		return err
	}
	if err := r.client.Publish(ctx, InvalidationChannel, storeID).Err(); err != nil {
		log.Warn().Err(err).Str("store_id", storeID).Msg("publish invalidation failed")
	}
	return nil
}

// Subscribe streams invalidated store ids until ctx is done.
func (r *Redis) Subscribe(ctx context.Context) <-chan string {
	out := make(chan string, 16)
	pubsub := r.client.Subscribe(ctx, InvalidationChannel)

	go func() {
		defer close(out)
		defer pubsub.Close()

		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				select {
				case out <- msg.Payload:
				default:
					log.Warn().Str("store_id", msg.Payload).Msg("invalidation subscriber full, skipping")
				}
			}
		}
	}()

	return out
}

func (r *Redis) Close() error {
	return r.client.Close()
}

var _ StoreCache = (*Redis)(nil)
