package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
	"github.com/rocketscienceinc/gomoku-backend/internal/pkg"
)

var ErrNoFreeRoomCode = errors.New("no free room code")

type gamePlayService interface {
	CreateRoom(code string, size int, mode entity.Mode, creator string) (*entity.Room, []entity.Notification, error)
	JoinRoom(room *entity.Room, who string) ([]entity.Notification, error)
	MakeTurn(room *entity.Room, requester string, row, col int) ([]entity.Notification, error)
	RequestRematch(room *entity.Room) []entity.Notification
	LeaveRoom(room *entity.Room, who string) []entity.Notification
}

type roomCodeRepo interface {
	Reserve(ctx context.Context, code string) (bool, error)
	Touch(ctx context.Context, code string) error
	Release(ctx context.Context, code string) error
}

type notifier interface {
	Notify(notes ...entity.Notification)
}

// CodeOptions controls room code generation.
type CodeOptions struct {
	Length   int
	Attempts int
}

type roomEntry struct {
	mu      sync.Mutex
	room    *entity.Room
	removed bool
}

// GameManager owns every room of this instance. Operations on one room are serialized by the
// room's mutex, different rooms run in parallel. Lock order is room, then registry.
type GameManager struct {
	logger *slog.Logger

	gamePlay gamePlayService
	codeRepo roomCodeRepo
	notifier notifier

	codes    CodeOptions
	generate func(length int) (string, error)

	mu          sync.RWMutex
	rooms       map[string]*roomEntry
	memberships map[string]map[string]struct{}
}

func NewGameManager(logger *slog.Logger, gamePlay gamePlayService, codeRepo roomCodeRepo, notifier notifier, codes CodeOptions) *GameManager {
	return &GameManager{
		logger: logger,

		gamePlay: gamePlay,
		codeRepo: codeRepo,
		notifier: notifier,

		codes:    codes,
		generate: pkg.GenerateRoomCode,

		rooms:       make(map[string]*roomEntry),
		memberships: make(map[string]map[string]struct{}),
	}
}

// CreateRoom - creates a room owned by creator and returns its code.
func (that *GameManager) CreateRoom(ctx context.Context, creator string, size int, mode string) (string, error) {
	log := that.logger.With("method", "CreateRoom", "participant", creator)

	code, err := that.reserveCode(ctx)
	if err != nil {
		return "", err
	}

	room, notes, err := that.gamePlay.CreateRoom(code, size, entity.ParseMode(mode), creator)
	if err != nil {
		that.releaseCode(ctx, code)
		return "", fmt.Errorf("failed to create room: %w", err)
	}

	entry := &roomEntry{room: room}
	entry.mu.Lock()
	defer entry.mu.Unlock()

	that.mu.Lock()
	that.rooms[code] = entry
	that.addMembership(creator, code)
	that.mu.Unlock()

	that.notifier.Notify(notes...)

	log.Info("room created", "room", code, "mode", room.Mode)

	return code, nil
}

func (that *GameManager) JoinRoom(ctx context.Context, who, code string) error {
	err := that.withRoom(code, func(room *entity.Room) error {
		notes, err := that.gamePlay.JoinRoom(room, who)
		if err != nil {
			return fmt.Errorf("failed to join room: %w", err)
		}

		that.mu.Lock()
		that.addMembership(who, room.Code)
		that.mu.Unlock()

		that.notifier.Notify(notes...)

		that.logger.Info("participant joined", "method", "JoinRoom", "room", room.Code, "participant", who)

		return nil
	})
	if err != nil {
		return err
	}

	that.touchCode(ctx, code)

	return nil
}

// MakeTurn - applies the move and, in bot rooms, the bot's reply as one step.
func (that *GameManager) MakeTurn(ctx context.Context, who, code string, row, col int) error {
	err := that.withRoom(code, func(room *entity.Room) error {
		notes, err := that.gamePlay.MakeTurn(room, who, row, col)
		if err != nil {
			return fmt.Errorf("failed to make turn: %w", err)
		}

		that.notifier.Notify(notes...)

		if room.IsFinished() {
			that.logger.Info("game finished", "method", "MakeTurn", "room", room.Code, "winner", room.Winner.String())
		}

		return nil
	})
	if err != nil {
		return err
	}

	that.touchCode(ctx, code)

	return nil
}

// RequestRematch - unknown rooms and non-participants are ignored.
func (that *GameManager) RequestRematch(_ context.Context, who, code string) error {
	err := that.withRoom(code, func(room *entity.Room) error {
		if !room.HasParticipant(who) {
			return nil
		}

		that.notifier.Notify(that.gamePlay.RequestRematch(room)...)

		return nil
	})
	if errors.Is(err, apperror.ErrRoomNotFound) {
		return nil
	}

	return err
}

// LeaveRoom - leaving a room twice or a room that is gone is a no-op.
func (that *GameManager) LeaveRoom(ctx context.Context, who, code string) error {
	entry, err := that.lookup(code)
	if errors.Is(err, apperror.ErrRoomNotFound) {
		return nil
	}

	if err != nil {
		return err
	}

	that.leave(ctx, entry, who)

	return nil
}

// Disconnect - removes who from all of its rooms. Safe to call more than once.
func (that *GameManager) Disconnect(ctx context.Context, who string) {
	that.mu.Lock()
	codes := that.memberships[who]
	delete(that.memberships, who)

	entries := make([]*roomEntry, 0, len(codes))
	for code := range codes {
		if entry, ok := that.rooms[code]; ok {
			entries = append(entries, entry)
		}
	}
	that.mu.Unlock()

	for _, entry := range entries {
		that.leave(ctx, entry, who)
	}
}

// GetRoom - returns a snapshot of the room.
func (that *GameManager) GetRoom(code string) (*entity.RoomView, error) {
	var view *entity.RoomView

	err := that.withRoom(code, func(room *entity.Room) error {
		view = room.View()
		return nil
	})
	if err != nil {
		return nil, err
	}

	return view, nil
}

func (that *GameManager) leave(ctx context.Context, entry *roomEntry, who string) {
	entry.mu.Lock()

	if entry.removed {
		entry.mu.Unlock()
		return
	}

	room := entry.room
	notes := that.gamePlay.LeaveRoom(room, who)

	that.mu.Lock()
	that.removeMembership(who, room.Code)
	empty := len(room.Participants) == 0
	if empty {
		entry.removed = true
		delete(that.rooms, room.Code)
	}
	that.mu.Unlock()

	that.notifier.Notify(notes...)
	entry.mu.Unlock()

	that.logger.Info("participant left", "method", "leave", "room", room.Code, "participant", who, "removed", empty)

	if empty {
		that.releaseCode(ctx, room.Code)
	}
}

func (that *GameManager) withRoom(code string, fn func(room *entity.Room) error) error {
	entry, err := that.lookup(code)
	if err != nil {
		return err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if entry.removed {
		return fmt.Errorf("%w: %s", apperror.ErrRoomNotFound, code)
	}

	return fn(entry.room)
}

func (that *GameManager) lookup(code string) (*roomEntry, error) {
	code = NormalizeCode(code)

	that.mu.RLock()
	entry, ok := that.rooms[code]
	that.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", apperror.ErrRoomNotFound, code)
	}

	return entry, nil
}

func (that *GameManager) reserveCode(ctx context.Context) (string, error) {
	log := that.logger.With("method", "reserveCode")

	for attempt := 0; attempt < max(that.codes.Attempts, 1); attempt++ {
		code, err := that.generate(that.codes.Length)
		if err != nil {
			return "", err
		}

		that.mu.RLock()
		_, taken := that.rooms[code]
		that.mu.RUnlock()

		if taken {
			log.Debug("room code collision", "code", code)
			continue
		}

		ok, err := that.codeRepo.Reserve(ctx, code)
		if err != nil {
			return "", fmt.Errorf("failed to reserve room code: %w", err)
		}

		if ok {
			return code, nil
		}

		log.Debug("room code already reserved", "code", code)
	}

	return "", ErrNoFreeRoomCode
}

// touchCode keeps the reservation of a live room from expiring. Called outside the room lock.
func (that *GameManager) touchCode(ctx context.Context, code string) {
	code = NormalizeCode(code)

	if err := that.codeRepo.Touch(ctx, code); err != nil {
		that.logger.Warn("failed to touch room code", "method", "touchCode", "room", code, "error", err)
	}
}

func (that *GameManager) releaseCode(ctx context.Context, code string) {
	if err := that.codeRepo.Release(ctx, code); err != nil {
		that.logger.Error("failed to release room code", "method", "releaseCode", "room", code, "error", err)
	}
}

// addMembership and removeMembership expect the registry lock to be held.
func (that *GameManager) addMembership(who, code string) {
	codes, ok := that.memberships[who]
	if !ok {
		codes = make(map[string]struct{})
		that.memberships[who] = codes
	}

	codes[code] = struct{}{}
}

func (that *GameManager) removeMembership(who, code string) {
	codes, ok := that.memberships[who]
	if !ok {
		return
	}

	delete(codes, code)

	if len(codes) == 0 {
		delete(that.memberships, who)
	}
}

// NormalizeCode - room codes are case-insensitive.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
