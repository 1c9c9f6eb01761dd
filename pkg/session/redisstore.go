package session

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-redis/redis/v8"

	"github.com/stackshift-net/stackshift/pkg/model"
	"github.com/stackshift-net/stackshift/pkg/util"
)

const redisKeyPrefix = "stackshift:stack:"

// RedisStore keeps stack sessions in Redis, for setups where the
// processing and generation steps run on different machines.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to Redis at addr ("host:port").
func NewRedisStore(addr string) *RedisStore {
	return &RedisStore{
		client: redis.NewClient(&redis.Options{Addr: addr}),
	}
}

// NewRedisStoreWithClient wraps an existing client, mainly for tests.
func NewRedisStoreWithClient(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Save stores the stack as a JSON blob under its name.
func (s *RedisStore) Save(ctx context.Context, st *model.Stack) error {
	if st.Name == "" {
		return util.NewMissingFieldError("stack name")
	}

	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encoding stack %s: %w", st.Name, err)
	}

	if err := s.client.Set(ctx, redisKeyPrefix+st.Name, data, 0).Err(); err != nil {
		return fmt.Errorf("saving stack %s to redis: %w", st.Name, err)
	}
	return nil
}

// Load fetches a stack by name.
func (s *RedisStore) Load(ctx context.Context, name string) (*model.Stack, error) {
	data, err := s.client.Get(ctx, redisKeyPrefix+name).Bytes()
	if err == redis.Nil {
		return nil, fmt.Errorf("stack %q: %w", name, util.ErrStackNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("loading stack %s from redis: %w", name, err)
	}

	var st model.Stack
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("decoding stack %s: %w", name, err)
	}
	return &st, nil
}

// List returns the names of all saved stacks.
func (s *RedisStore) List(ctx context.Context) ([]string, error) {
	keys, err := s.client.Keys(ctx, redisKeyPrefix+"*").Result()
	if err != nil {
		return nil, fmt.Errorf("listing stacks in redis: %w", err)
	}

	names := make([]string, 0, len(keys))
	for _, k := range keys {
		names = append(names, strings.TrimPrefix(k, redisKeyPrefix))
	}
	return names, nil
}

// Delete removes a saved stack. Deleting a missing stack is not an error.
func (s *RedisStore) Delete(ctx context.Context, name string) error {
	return s.client.Del(ctx, redisKeyPrefix+name).Err()
}

// Close releases the underlying Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

var _ Store = (*RedisStore)(nil)
