package service

import (
	"errors"
	"math/rand"
	"sync"

	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

var ErrNoAvailableMoves = errors.New("no available moves")

type BotService interface {
	MakeTurn(board *entity.Board, self entity.Mark) (entity.Move, error)
}

// pattern describes one step of the bot's decision policy.
type pattern struct {
	rival    bool
	count    int
	openEnds bool
}

// policy is evaluated top to bottom, the first step that finds a window wins.
var policy = []pattern{
	{rival: false, count: 4},                 // take the win
	{rival: true, count: 4},                  // block the loss
	{rival: true, count: 3, openEnds: true},  // block an open three
	{rival: true, count: 3},                  // block any three
	{rival: false, count: 3},                 // build
	{rival: false, count: 2},
	{rival: false, count: 1},
}

type botService struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewBotService - rng is used only when no pattern matches; calls are serialized on it.
func NewBotService(rng *rand.Rand) BotService {
	return &botService{rng: rng}
}

// MakeTurn picks a cell for self, places the mark and reports the move.
// Win and draw detection is left to the caller.
func (that *botService) MakeTurn(board *entity.Board, self entity.Mark) (entity.Move, error) {
	if board.IsFull() {
		return entity.Move{}, ErrNoAvailableMoves
	}

	move, ok := that.chooseMove(board, self)
	if !ok {
		move = that.randomMove(board)
	}

	move.Mark = self
	board.Place(move.Row, move.Col, self)

	return move, nil
}

func (that *botService) chooseMove(board *entity.Board, self entity.Mark) (entity.Move, bool) {
	for _, step := range policy {
		target := self
		if step.rival {
			target = self.Opponent()
		}

		for _, dir := range entity.Directions {
			if move, ok := findWindow(board, dir, target, step.count, step.openEnds); ok {
				return move, true
			}
		}
	}

	return entity.Move{}, false
}

func (that *botService) randomMove(board *entity.Board) entity.Move {
	empty := board.EmptyCells()

	that.mu.Lock()
	idx := that.rng.Intn(len(empty))
	that.mu.Unlock()

	return empty[idx]
}

// findWindow scans windows along dir in row-major origin order. A window qualifies when
// exactly count cells hold target and the rest are empty. The first empty cell of the
// first qualifying window is returned.
//
// With openEnds the cells just before and just after the window must also be on the board
// and empty.
func findWindow(board *entity.Board, dir entity.Direction, target entity.Mark, count int, openEnds bool) (entity.Move, bool) {
	size := board.Size()

	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			if !board.WindowFits(row, col, dir) {
				continue
			}

			if openEnds && !hasOpenEnds(board, row, col, dir) {
				continue
			}

			if cell, ok := matchWindow(board, row, col, dir, target, count); ok {
				return cell, true
			}
		}
	}

	return entity.Move{}, false
}

func matchWindow(board *entity.Board, row, col int, dir entity.Direction, target entity.Mark, count int) (entity.Move, bool) {
	var (
		matched  int
		firstGap *entity.Move
	)

	for step := 0; step < entity.WinLength; step++ {
		r, c := row+step*dir.DRow, col+step*dir.DCol

		switch board.At(r, c) {
		case target:
			matched++
		case entity.EmptyCell:
			if firstGap == nil {
				firstGap = &entity.Move{Row: r, Col: c}
			}
		default:
			return entity.Move{}, false
		}
	}

	if matched != count || firstGap == nil {
		return entity.Move{}, false
	}

	return *firstGap, true
}

func hasOpenEnds(board *entity.Board, row, col int, dir entity.Direction) bool {
	beforeRow, beforeCol := row-dir.DRow, col-dir.DCol
	afterRow, afterCol := row+entity.WinLength*dir.DRow, col+entity.WinLength*dir.DCol

	return board.InBounds(beforeRow, beforeCol) && board.IsEmpty(beforeRow, beforeCol) &&
		board.InBounds(afterRow, afterCol) && board.IsEmpty(afterRow, afterCol)
}
