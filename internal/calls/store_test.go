package calls

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecord(callID string) *Record {
	return &Record{
		CallID:      callID,
		ProviderSID: "CA0123456789",
		PatientID:   "PATIENT_001",
		SummaryText: "summary text",
		Status:      StatusQueued,
		To:          "+15552223333",
		From:        "+15550001111",
		CreatedAt:   time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC),
	}
}

func TestMemoryStoreGetMissing(t *testing.T) {
	store := NewMemoryStore()

	record, ok, err := store.Get(context.Background(), "call_missing")

	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, record)
}

func TestMemoryStorePutGet(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Put(context.Background(), sampleRecord("call_abc12345")))

	record, ok, err := store.Get(context.Background(), "call_abc12345")

	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "PATIENT_001", record.PatientID)
	assert.Equal(t, StatusQueued, record.Status)
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Put(context.Background(), sampleRecord("call_abc12345")))

	first, _, err := store.Get(context.Background(), "call_abc12345")
	require.NoError(t, err)
	first.Status = StatusFailed

	second, _, err := store.Get(context.Background(), "call_abc12345")
	require.NoError(t, err)
	assert.Equal(t, StatusQueued, second.Status)
}

func TestMemoryStoreUpdate(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Put(context.Background(), sampleRecord("call_abc12345")))

	completed := time.Date(2026, 3, 14, 10, 5, 0, 0, time.UTC)
	updated, ok, err := store.Update(context.Background(), "call_abc12345", func(r *Record) {
		r.Status = StatusCompleted
		r.CompletedAt = &completed
	})

	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, StatusCompleted, updated.Status)

	stored, _, err := store.Get(context.Background(), "call_abc12345")
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, stored.Status)
	require.NotNil(t, stored.CompletedAt)
	assert.Equal(t, completed, *stored.CompletedAt)
}

func TestMemoryStoreUpdateMissing(t *testing.T) {
	store := NewMemoryStore()

	_, ok, err := store.Update(context.Background(), "call_missing", func(r *Record) {
		r.Status = StatusCompleted
	})

	require.NoError(t, err)
	assert.False(t, ok)
}

func newTestRedisStore(t *testing.T) *RedisStore {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisStore(client)
}

func TestRedisStorePutGet(t *testing.T) {
	store := newTestRedisStore(t)
	require.NoError(t, store.Put(context.Background(), sampleRecord("call_abc12345")))

	record, ok, err := store.Get(context.Background(), "call_abc12345")

	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "call_abc12345", record.CallID)
	assert.Equal(t, "summary text", record.SummaryText)
	assert.True(t, record.CreatedAt.Equal(time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)))
}

func TestRedisStoreGetMissing(t *testing.T) {
	store := newTestRedisStore(t)

	record, ok, err := store.Get(context.Background(), "call_missing")

	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, record)
}

func TestRedisStoreUpdate(t *testing.T) {
	store := newTestRedisStore(t)
	require.NoError(t, store.Put(context.Background(), sampleRecord("call_abc12345")))

	duration := 90
	updated, ok, err := store.Update(context.Background(), "call_abc12345", func(r *Record) {
		r.Status = StatusCompleted
		r.DurationSeconds = &duration
	})

	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, StatusCompleted, updated.Status)

	stored, _, err := store.Get(context.Background(), "call_abc12345")
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, stored.Status)
	require.NotNil(t, stored.DurationSeconds)
	assert.Equal(t, 90, *stored.DurationSeconds)
}

func TestRedisStoreUpdateMissing(t *testing.T) {
	store := newTestRedisStore(t)

	_, ok, err := store.Update(context.Background(), "call_missing", func(r *Record) {
		r.Status = StatusCompleted
	})

	require.NoError(t, err)
	assert.False(t, ok)
}
