package entity

import (
	"fmt"
	"slices"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
)

type Mode string

const (
	ModeRemotePvP   Mode = "pvp"
	ModeVsBot       Mode = "bot"
	ModeSharedLocal Mode = "local"
)

// ParseMode - unknown modes fall back to pvp.
func ParseMode(mode string) Mode {
	switch Mode(mode) {
	case ModeVsBot:
		return ModeVsBot
	case ModeSharedLocal:
		return ModeSharedLocal
	default:
		return ModeRemotePvP
	}
}

type Status string

const (
	StatusWaiting  Status = "waiting"
	StatusPlaying  Status = "playing"
	StatusFinished Status = "finished"
)

// MaxParticipants in a pvp room.
const MaxParticipants = 2

type Room struct {
	Code         string
	Mode         Mode
	Board        *Board
	Participants []string
	Turn         Mark
	Status       Status
	Winner       Mark
}

// NewRoom - creates a room owned by creator. Only pvp rooms wait for a second participant.
func NewRoom(code string, size int, mode Mode, creator string) (*Room, error) {
	board, err := NewBoard(size)
	if err != nil {
		return nil, fmt.Errorf("failed to create board: %w", err)
	}

	status := StatusPlaying
	if mode == ModeRemotePvP {
		status = StatusWaiting
	}

	return &Room{
		Code:         code,
		Mode:         mode,
		Board:        board,
		Participants: []string{creator},
		Turn:         PlayerX,
		Status:       status,
	}, nil
}

func (that *Room) IsWaiting() bool {
	return that.Status == StatusWaiting
}

func (that *Room) IsPlaying() bool {
	return that.Status == StatusPlaying
}

func (that *Room) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Room) IsWithBot() bool {
	return that.Mode == ModeVsBot
}

func (that *Room) IsFull() bool {
	return len(that.Participants) >= MaxParticipants
}

func (that *Room) HasParticipant(id string) bool {
	return slices.Contains(that.Participants, id)
}

func (that *Room) ConfirmPlaying() error {
	if !that.IsPlaying() {
		return fmt.Errorf("%w: room is %s", apperror.ErrNotPlaying, that.Status)
	}

	return nil
}

// ResolveTurn decides whether requester may move now and with which mark.
func (that *Room) ResolveTurn(requester string) (Mark, error) {
	switch that.Mode {
	case ModeRemotePvP:
		idx := int(that.Turn) - 1
		if idx >= len(that.Participants) || that.Participants[idx] != requester {
			return EmptyCell, apperror.ErrNotYourTurn
		}
		return that.Turn, nil
	case ModeVsBot:
		if len(that.Participants) == 0 || that.Participants[0] != requester {
			return EmptyCell, apperror.ErrNotYourGame
		}
		if that.Turn != PlayerX {
			return EmptyCell, apperror.ErrNotYourTurn
		}
		return PlayerX, nil
	case ModeSharedLocal:
		return that.Turn, nil
	default:
		return EmptyCell, fmt.Errorf("unknown room mode %q", that.Mode)
	}
}

// Remove - drops participant, reports whether it was present.
func (that *Room) Remove(participant string) bool {
	idx := slices.Index(that.Participants, participant)
	if idx == -1 {
		return false
	}

	that.Participants = slices.Delete(that.Participants, idx, idx+1)

	return true
}

// Reset starts a fresh game in place, keeping code and participants.
func (that *Room) Reset() {
	that.Board.Clear()
	that.Turn = PlayerX
	that.Winner = EmptyCell
	that.Status = StatusPlaying
}

func (that *Room) Finish(winner Mark) {
	that.Status = StatusFinished
	that.Winner = winner
}

// Players - participants with their marks; bot rooms list the bot as O.
func (that *Room) Players() []*Player {
	players := make([]*Player, 0, MaxParticipants)
	for i, id := range that.Participants {
		players = append(players, &Player{ID: id, Mark: Mark(i + 1).String()})
	}

	if that.IsWithBot() {
		players = append(players, NewBotPlayer())
	}

	return players
}

// RoomView is a read-only snapshot of a room.
type RoomView struct {
	Code    string    `json:"code"`
	Mode    Mode      `json:"mode"`
	Size    int       `json:"size"`
	Board   [][]Mark  `json:"board"`
	Players []*Player `json:"players"`
	Turn    string    `json:"turn"`
	Status  Status    `json:"status"`
	Winner  string    `json:"winner,omitempty"`
}

func (that *Room) View() *RoomView {
	return &RoomView{
		Code:    that.Code,
		Mode:    that.Mode,
		Size:    that.Board.Size(),
		Board:   that.Board.Cells(),
		Players: that.Players(),
		Turn:    that.Turn.String(),
		Status:  that.Status,
		Winner:  that.Winner.String(),
	}
}
