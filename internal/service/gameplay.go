package service

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

// BoardLimits bounds the board sizes a room may be created with.
type BoardLimits struct {
	Default int
	Max     int
}

// GamePlayService applies intents to a single room. Callers serialize access per room.
type GamePlayService interface {
	CreateRoom(code string, size int, mode entity.Mode, creator string) (*entity.Room, []entity.Notification, error)
	JoinRoom(room *entity.Room, who string) ([]entity.Notification, error)
	MakeTurn(room *entity.Room, requester string, row, col int) ([]entity.Notification, error)
	RequestRematch(room *entity.Room) []entity.Notification
	LeaveRoom(room *entity.Room, who string) []entity.Notification
}

type gamePlayService struct {
	logger *slog.Logger

	botService BotService
	limits     BoardLimits
}

func NewGamePlayService(logger *slog.Logger, botService BotService, limits BoardLimits) GamePlayService {
	return &gamePlayService{
		logger:     logger,
		botService: botService,
		limits:     limits,
	}
}

func (that *gamePlayService) CreateRoom(code string, size int, mode entity.Mode, creator string) (*entity.Room, []entity.Notification, error) {
	size, err := that.normalizeSize(size)
	if err != nil {
		return nil, nil, err
	}

	room, err := entity.NewRoom(code, size, mode, creator)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create room: %w", err)
	}

	notes := []entity.Notification{
		notify(room, entity.ActionRoomCreated, entity.RoomCreatedPayload{
			RoomCode: room.Code,
			Size:     size,
			Mode:     room.Mode,
		}),
	}

	if room.IsPlaying() {
		notes = append(notes, gameStarted(room))
	}

	that.logger.Debug("room created", "method", "CreateRoom", "room", room.Code, "mode", room.Mode, "size", size)

	return room, notes, nil
}

func (that *gamePlayService) JoinRoom(room *entity.Room, who string) ([]entity.Notification, error) {
	if room.Mode != entity.ModeRemotePvP {
		return nil, fmt.Errorf("%w: room %s is %s", apperror.ErrWrongMode, room.Code, room.Mode)
	}

	if room.IsFull() || room.HasParticipant(who) {
		return nil, fmt.Errorf("%w: room %s", apperror.ErrRoomFull, room.Code)
	}

	// a room someone left never resumes
	if !room.IsWaiting() {
		return nil, fmt.Errorf("%w: room %s is %s", apperror.ErrRoomFull, room.Code, room.Status)
	}

	room.Participants = append(room.Participants, who)
	room.Status = entity.StatusPlaying

	return []entity.Notification{gameStarted(room)}, nil
}

func (that *gamePlayService) MakeTurn(room *entity.Room, requester string, row, col int) ([]entity.Notification, error) {
	if err := room.ConfirmPlaying(); err != nil {
		return nil, err
	}

	if !room.Board.InBounds(row, col) {
		return nil, fmt.Errorf("%w: (%d, %d)", apperror.ErrOutOfBounds, row, col)
	}

	if !room.Board.IsEmpty(row, col) {
		return nil, fmt.Errorf("%w: (%d, %d)", apperror.ErrCellOccupied, row, col)
	}

	mark, err := room.ResolveTurn(requester)
	if err != nil {
		return nil, err
	}

	room.Board.Place(row, col, mark)
	notes := []entity.Notification{boardUpdated(room, entity.Move{Row: row, Col: col, Mark: mark})}

	if finished, note := settle(room, mark); finished {
		return append(notes, note), nil
	}

	if !room.IsWithBot() {
		room.Turn = mark.Opponent()
		return append(notes, turnChanged(room)), nil
	}

	room.Turn = entity.PlayerO

	move, err := that.botService.MakeTurn(room.Board, entity.PlayerO)
	if err != nil {
		return nil, fmt.Errorf("bot failed to make turn: %w", err)
	}

	notes = append(notes, boardUpdated(room, move))

	if finished, note := settle(room, entity.PlayerO); finished {
		return append(notes, note), nil
	}

	room.Turn = entity.PlayerX

	return append(notes, turnChanged(room)), nil
}

func (that *gamePlayService) RequestRematch(room *entity.Room) []entity.Notification {
	if len(room.Participants) == 0 {
		return nil
	}

	if room.Mode == entity.ModeRemotePvP && len(room.Participants) < entity.MaxParticipants {
		return nil
	}

	room.Reset()

	return []entity.Notification{
		notify(room, entity.ActionRematchStarted, entity.RematchStartedPayload{
			Board: room.Board.Cells(),
			Turn:  room.Turn.String(),
		}),
	}
}

func (that *gamePlayService) LeaveRoom(room *entity.Room, who string) []entity.Notification {
	if !room.Remove(who) {
		return nil
	}

	room.Status = entity.StatusFinished

	if len(room.Participants) == 0 {
		return nil
	}

	return []entity.Notification{notify(room, entity.ActionOpponentLeft, entity.OpponentLeftPayload{})}
}

func (that *gamePlayService) normalizeSize(size int) (int, error) {
	switch {
	case size == 0:
		size = that.limits.Default
	case that.limits.Max > 0 && size > that.limits.Max:
		return 0, fmt.Errorf("%w: %d", apperror.ErrInvalidSize, size)
	}

	return max(size, entity.MinBoardSize), nil
}

// settle finishes the room if mark just won or filled the board.
func settle(room *entity.Room, mark entity.Mark) (bool, entity.Notification) {
	switch room.Board.DetectOutcome(mark) {
	case entity.OutcomeWin:
		room.Finish(mark)
		return true, notify(room, entity.ActionGameFinished, entity.GameFinishedPayload{Winner: mark.String()})
	case entity.OutcomeDraw:
		room.Finish(entity.EmptyCell)
		return true, notify(room, entity.ActionGameFinished, entity.GameFinishedPayload{Winner: entity.WinnerNone})
	default:
		return false, entity.Notification{}
	}
}

func notify(room *entity.Room, action string, payload any) entity.Notification {
	return entity.Notification{
		Recipients: slices.Clone(room.Participants),
		Action:     action,
		Payload:    payload,
	}
}

func gameStarted(room *entity.Room) entity.Notification {
	return notify(room, entity.ActionGameStarted, entity.GameStartedPayload{
		RoomCode: room.Code,
		Size:     room.Board.Size(),
		Board:    room.Board.Cells(),
		Turn:     room.Turn.String(),
		Players:  room.Players(),
		Mode:     room.Mode,
	})
}

func boardUpdated(room *entity.Room, move entity.Move) entity.Notification {
	return notify(room, entity.ActionBoardUpdated, entity.BoardUpdatedPayload{
		Board:    room.Board.Cells(),
		LastMove: entity.LastMove{Row: move.Row, Col: move.Col, Mark: move.Mark.String()},
	})
}

func turnChanged(room *entity.Room) entity.Notification {
	return notify(room, entity.ActionTurnChanged, entity.TurnChangedPayload{Turn: room.Turn.String()})
}
