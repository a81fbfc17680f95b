package pkg

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"math/big"
	mathrand "math/rand"

	"github.com/google/uuid"
)

// roomCodeAlphabet leaves out 0/O and 1/I so codes survive being read aloud.
const roomCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateRoomCode - generates an upper-case code of the given length.
func GenerateRoomCode(length int) (string, error) {
	code := make([]byte, length)
	limit := big.NewInt(int64(len(roomCodeAlphabet)))

	for i := range code {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", fmt.Errorf("failed to generate room code: %w", err)
		}
		code[i] = roomCodeAlphabet[n.Int64()]
	}

	return string(code), nil
}

// GenerateConnectionID - generates a new unique connection id.
func GenerateConnectionID() string {
	return uuid.NewString()
}

// NewSeededRand - math/rand source seeded from crypto/rand.
func NewSeededRand() (*mathrand.Rand, error) {
	var seed [8]byte
	if _, err := rand.Read(seed[:]); err != nil {
		return nil, fmt.Errorf("failed to seed random source: %w", err)
	}

	return mathrand.New(mathrand.NewSource(int64(binary.LittleEndian.Uint64(seed[:])))), nil //nolint: gosec // not used for secrets
}
