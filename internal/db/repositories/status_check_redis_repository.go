package repositories

import (
	"context"
	"encoding/json"

	"design-studio/backend/internal/constants"
	"design-studio/backend/internal/models/entities"

	"github.com/redis/go-redis/v9"
)

const driverRedis = "redis"

// StatusCheckRedisRepository appends status check documents, JSON encoded,
// to a Redis list. List order is insertion order.
type StatusCheckRedisRepository struct {
	client *redis.Client
	key    string
}

// NewStatusCheckRedisRepository creates a repository over the status_checks list
func NewStatusCheckRedisRepository(client *redis.Client) *StatusCheckRedisRepository {
	return &StatusCheckRedisRepository{
		client: client,
		key:    constants.StatusCollection,
	}
}

func (r *StatusCheckRedisRepository) Driver() string {
	return driverRedis
}

func (r *StatusCheckRedisRepository) Save(ctx context.Context, check entities.StatusCheck) error {
	data, err := json.Marshal(check.Document())
	if err != nil {
		return &StorageError{Driver: driverRedis, Op: "save", Err: err}
	}

	if err := r.client.RPush(ctx, r.key, data).Err(); err != nil {
		return &StorageError{Driver: driverRedis, Op: "save", Err: err}
	}
	return nil
}

func (r *StatusCheckRedisRepository) ListRecent(ctx context.Context, limit int) ([]entities.StatusCheck, error) {
	n := int64(normalizeLimit(limit))

	values, err := r.client.LRange(ctx, r.key, -n, -1).Result()
	if err != nil {
		return nil, &StorageError{Driver: driverRedis, Op: "list_recent", Err: err}
	}

	// newest first, to match decodeDocuments
	docs := make([]entities.Document, len(values))
	for i, v := range values {
		var doc entities.Document
		if err := json.Unmarshal([]byte(v), &doc); err != nil {
			return nil, &StorageError{Driver: driverRedis, Op: "decode", Err: err}
		}
		docs[len(values)-1-i] = doc
	}
	return decodeDocuments(driverRedis, docs)
}

func (r *StatusCheckRedisRepository) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return &StorageError{Driver: driverRedis, Op: "ping", Err: err}
	}
	return nil
}

func (r *StatusCheckRedisRepository) Close(_ context.Context) error {
	return r.client.Close()
}
