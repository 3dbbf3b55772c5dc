package calls

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	redisKeyPrefix = "vitalcall:call:"
	redisRecordTTL = 7 * 24 * time.Hour
)

// RedisStore keeps call records in Redis so they survive a process
// restart. Updates to the same record are serialized with a per-key lock;
// the lock is process-local, matching the single-writer deployment of the
// call service.
type RedisStore struct {
	client *redis.Client
	locks  sync.Map // callID -> *sync.Mutex
}

// NewRedisStore creates a store backed by the given Redis client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, callID string) (*Record, bool, error) {
	data, err := s.client.Get(ctx, redisKeyPrefix+callID).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get call record from redis: %w", err)
	}

	var record Record
	if err := json.Unmarshal([]byte(data), &record); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal call record: %w", err)
	}
	return &record, true, nil
}

func (s *RedisStore) Put(ctx context.Context, record *Record) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal call record: %w", err)
	}

	if err := s.client.Set(ctx, redisKeyPrefix+record.CallID, data, redisRecordTTL).Err(); err != nil {
		return fmt.Errorf("failed to set call record in redis: %w", err)
	}
	return nil
}

func (s *RedisStore) Update(ctx context.Context, callID string, fn func(*Record)) (*Record, bool, error) {
	lock := s.lockFor(callID)
	lock.Lock()
	defer lock.Unlock()

	record, ok, err := s.Get(ctx, callID)
	if err != nil || !ok {
		return nil, ok, err
	}

	fn(record)

	if err := s.Put(ctx, record); err != nil {
		return nil, true, err
	}
	return record, true, nil
}

func (s *RedisStore) lockFor(callID string) *sync.Mutex {
	lock, _ := s.locks.LoadOrStore(callID, &sync.Mutex{})
	return lock.(*sync.Mutex)
}
