package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"clinic-etl/internal/models"

	"github.com/go-redis/redis/v8"
)

// ErrCacheMiss means no records are cached for a digest.
var ErrCacheMiss = errors.New("cache miss")

// KVStore is the string store behind RecordCache.
type KVStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}

// RedisKVStore keeps cache entries in Redis and reports redis.Nil as
// ErrCacheMiss.
type RedisKVStore struct {
	client *redis.Client
}

func NewRedisKVStore(client *redis.Client) *RedisKVStore {
	return &RedisKVStore{client: client}
}

func (r *RedisKVStore) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrCacheMiss
	}
	return val, err
}

func (r *RedisKVStore) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

// DefaultKeyPrefix namespaces cached extractions.
const DefaultKeyPrefix = "clinic-etl:records:"

// RecordCache keeps the extracted records of a workbook under the digest of
// its content, so an unchanged workbook is not parsed twice.
type RecordCache struct {
	kv     KVStore
	prefix string
	ttl    time.Duration
}

// NewRecordCache creates a cache. A zero ttl keeps entries forever.
func NewRecordCache(kv KVStore, ttl time.Duration) *RecordCache {
	return &RecordCache{
		kv:     kv,
		prefix: DefaultKeyPrefix,
		ttl:    ttl,
	}
}

// Digest is the hex SHA-256 of a workbook's bytes.
func Digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Get returns the records cached for digest, or ErrCacheMiss.
func (c *RecordCache) Get(ctx context.Context, digest string) ([]models.PatientRecord, error) {
	val, err := c.kv.Get(ctx, c.prefix+digest)
	if err != nil {
		return nil, err
	}
	var records []models.PatientRecord
	if err := json.Unmarshal([]byte(val), &records); err != nil {
		return nil, fmt.Errorf("failed to decode cached records %s: %w", digest, err)
	}
	return records, nil
}

// Set caches records under digest.
func (c *RecordCache) Set(ctx context.Context, digest string, records []models.PatientRecord) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to encode records: %w", err)
	}
	if err := c.kv.Set(ctx, c.prefix+digest, string(data), c.ttl); err != nil {
		return fmt.Errorf("failed to cache records %s: %w", digest, err)
	}
	return nil
}
