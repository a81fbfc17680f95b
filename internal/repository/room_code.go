package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RoomCodeRepository keeps room codes unique across server instances sharing one store.
type RoomCodeRepository interface {
	// Reserve claims code, reporting false when it is already taken.
	Reserve(ctx context.Context, code string) (bool, error)
	// Touch extends the reservation of a code whose room is still in use.
	Touch(ctx context.Context, code string) error
	Release(ctx context.Context, code string) error
}

type dbRoomCode struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRoomCodeRepository - reservations expire after ttl of inactivity so codes of crashed instances come back.
func NewRoomCodeRepository(client *redis.Client, ttl time.Duration) RoomCodeRepository {
	return &dbRoomCode{
		client: client,
		ttl:    ttl,
	}
}

func (that *dbRoomCode) Reserve(ctx context.Context, code string) (bool, error) {
	ok, err := that.client.SetNX(ctx, roomCodeKey(code), time.Now().Unix(), that.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to reserve room code: %w", err)
	}

	return ok, nil
}

func (that *dbRoomCode) Touch(ctx context.Context, code string) error {
	if err := that.client.Expire(ctx, roomCodeKey(code), that.ttl).Err(); err != nil {
		return fmt.Errorf("failed to touch room code: %w", err)
	}

	return nil
}

func (that *dbRoomCode) Release(ctx context.Context, code string) error {
	if err := that.client.Del(ctx, roomCodeKey(code)).Err(); err != nil {
		return fmt.Errorf("failed to release room code: %w", err)
	}

	return nil
}

func roomCodeKey(code string) string {
	return "room:" + code
}
