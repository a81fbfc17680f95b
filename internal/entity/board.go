package entity

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
)

// MinBoardSize is the smallest board a five-in-a-row can fit on.
const MinBoardSize = 5

// WinLength - how many consecutive marks win the game.
const WinLength = 5

type Mark int

const (
	EmptyCell Mark = iota
	PlayerX
	PlayerO
)

func (that Mark) String() string {
	switch that {
	case PlayerX:
		return "X"
	case PlayerO:
		return "O"
	default:
		return ""
	}
}

// Opponent - returns the other player's mark.
func (that Mark) Opponent() Mark {
	if that == PlayerX {
		return PlayerO
	}
	return PlayerX
}

type Outcome int

const (
	OutcomeOngoing Outcome = iota
	OutcomeWin
	OutcomeDraw
)

func (that Outcome) String() string {
	switch that {
	case OutcomeWin:
		return "win"
	case OutcomeDraw:
		return "draw"
	default:
		return "ongoing"
	}
}

// Direction is a step between two neighbouring cells of a window.
type Direction struct {
	DRow int
	DCol int
}

// Directions are scanned in this order everywhere: east, south, south-east, south-west.
var Directions = [4]Direction{
	{DRow: 0, DCol: 1},
	{DRow: 1, DCol: 0},
	{DRow: 1, DCol: 1},
	{DRow: 1, DCol: -1},
}

type Move struct {
	Row  int  `json:"row"`
	Col  int  `json:"col"`
	Mark Mark `json:"mark"`
}

type Board struct {
	size   int
	cells  [][]Mark
	placed int
}

func NewBoard(size int) (*Board, error) {
	if size < MinBoardSize {
		return nil, fmt.Errorf("%w: %d", apperror.ErrInvalidSize, size)
	}

	cells := make([][]Mark, size)
	for row := range cells {
		cells[row] = make([]Mark, size)
	}

	return &Board{size: size, cells: cells}, nil
}

func (that *Board) Size() int {
	return that.size
}

// Placed - number of non-empty cells.
func (that *Board) Placed() int {
	return that.placed
}

func (that *Board) InBounds(row, col int) bool {
	return row >= 0 && row < that.size && col >= 0 && col < that.size
}

func (that *Board) At(row, col int) Mark {
	return that.cells[row][col]
}

func (that *Board) IsEmpty(row, col int) bool {
	return that.cells[row][col] == EmptyCell
}

func (that *Board) IsFull() bool {
	return that.placed == that.size*that.size
}

// Place puts mark on the cell. Bounds and occupancy are checked by the caller.
func (that *Board) Place(row, col int, mark Mark) {
	if that.cells[row][col] == EmptyCell && mark != EmptyCell {
		that.placed++
	}
	that.cells[row][col] = mark
}

// Clear empties every cell, keeping the size.
func (that *Board) Clear() {
	for row := range that.cells {
		clear(that.cells[row])
	}
	that.placed = 0
}

// EmptyCells - returns the empty cells in row-major order.
func (that *Board) EmptyCells() []Move {
	empty := make([]Move, 0, that.size*that.size-that.placed)
	for row := range that.cells {
		for col, cell := range that.cells[row] {
			if cell == EmptyCell {
				empty = append(empty, Move{Row: row, Col: col})
			}
		}
	}

	return empty
}

// Cells - returns a copy of the grid, safe to hand to other goroutines.
func (that *Board) Cells() [][]Mark {
	cells := make([][]Mark, that.size)
	for row := range that.cells {
		cells[row] = append([]Mark(nil), that.cells[row]...)
	}

	return cells
}

// WindowFits reports whether a window starting at (row, col) along dir stays on the board.
func (that *Board) WindowFits(row, col int, dir Direction) bool {
	return that.InBounds(row, col) &&
		that.InBounds(row+(WinLength-1)*dir.DRow, col+(WinLength-1)*dir.DCol)
}

// DetectOutcome - scans the whole board for five consecutive marks.
func (that *Board) DetectOutcome(mark Mark) Outcome {
	for row := 0; row < that.size; row++ {
		for col := 0; col < that.size; col++ {
			for _, dir := range Directions {
				if that.isLine(row, col, dir, mark) {
					return OutcomeWin
				}
			}
		}
	}

	if that.IsFull() {
		return OutcomeDraw
	}

	return OutcomeOngoing
}

func (that *Board) isLine(row, col int, dir Direction, mark Mark) bool {
	if !that.WindowFits(row, col, dir) {
		return false
	}

	for step := 0; step < WinLength; step++ {
		if that.cells[row+step*dir.DRow][col+step*dir.DCol] != mark {
			return false
		}
	}

	return true
}

func (that *Board) MarshalJSON() ([]byte, error) {
	return json.Marshal(that.cells)
}
