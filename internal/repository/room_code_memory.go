package repository

import (
	"context"
	"sync"
)

type memoryRoomCode struct {
	mu    sync.Mutex
	codes map[string]struct{}
}

// NewMemoryRoomCodeRepository is used when the server runs without redis.
func NewMemoryRoomCodeRepository() RoomCodeRepository {
	return &memoryRoomCode{
		codes: make(map[string]struct{}),
	}
}

func (that *memoryRoomCode) Reserve(_ context.Context, code string) (bool, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.codes[code]; ok {
		return false, nil
	}

	that.codes[code] = struct{}{}

	return true, nil
}

// Touch - memory reservations never expire.
func (that *memoryRoomCode) Touch(context.Context, string) error {
	return nil
}

func (that *memoryRoomCode) Release(_ context.Context, code string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	delete(that.codes, code)

	return nil
}
