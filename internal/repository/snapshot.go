package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/boardgames/internal/apperror"
	"github.com/rocketscienceinc/boardgames/internal/entity"
)

const snapshotPrefix = "snapshot:"

type SnapshotRepository interface {
	Save(ctx context.Context, snapshot *entity.Snapshot) error
	GetByID(ctx context.Context, id string) (*entity.Snapshot, error)
	DeleteByID(ctx context.Context, id string) error
	List(ctx context.Context) ([]string, error)
}

type redisSnapshot struct {
	client *redis.Client
}

func NewRedisSnapshotRepository(client *redis.Client) SnapshotRepository {
	return &redisSnapshot{
		client: client,
	}
}

func (that *redisSnapshot) Save(ctx context.Context, snapshot *entity.Snapshot) error {
	data, err := encode(snapshot)
	if err != nil {
		return err
	}

	if err = that.client.Set(ctx, snapshotPrefix+snapshot.ID, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to set snapshot: %w", err)
	}

	return nil
}

func (that *redisSnapshot) GetByID(ctx context.Context, id string) (*entity.Snapshot, error) {
	response, err := that.client.Get(ctx, snapshotPrefix+id).Bytes()

	if errors.Is(err, redis.Nil) {
		return nil, apperror.ErrSnapshotNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot by id: %w", err)
	}

	return decode(response)
}

func (that *redisSnapshot) DeleteByID(ctx context.Context, id string) error {
	if err := that.client.Del(ctx, snapshotPrefix+id).Err(); err != nil {
		return fmt.Errorf("failed to delete snapshot by id: %w", err)
	}

	return nil
}

// List - ids of every stored snapshot.
func (that *redisSnapshot) List(ctx context.Context) ([]string, error) {
	var ids []string

	iter := that.client.Scan(ctx, 0, snapshotPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		ids = append(ids, strings.TrimPrefix(iter.Val(), snapshotPrefix))
	}

	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan snapshots: %w", err)
	}

	return ids, nil
}
