package service

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

func newBoardWith(t *testing.T, size int, marks map[[2]int]entity.Mark) *entity.Board {
	t.Helper()

	board, err := entity.NewBoard(size)
	require.NoError(t, err)

	for cell, mark := range marks {
		board.Place(cell[0], cell[1], mark)
	}

	return board
}

func newTestBot() BotService {
	return NewBotService(rand.New(rand.NewSource(42))) //nolint: gosec // deterministic tests
}

func TestBotService_MakeTurn(t *testing.T) {
	t.Run("Completes its own four", func(t *testing.T) {
		// Given: X holds (0,0)-(0,3) on a 5x5 board
		board := newBoardWith(t, 5, map[[2]int]entity.Mark{
			{0, 0}: entity.PlayerX, {0, 1}: entity.PlayerX, {0, 2}: entity.PlayerX, {0, 3}: entity.PlayerX,
		})

		// When: the bot plays X
		move, err := newTestBot().MakeTurn(board, entity.PlayerX)

		// Then: it takes (0,4) and wins
		require.NoError(t, err)
		assert.Equal(t, entity.Move{Row: 0, Col: 4, Mark: entity.PlayerX}, move)
		assert.Equal(t, entity.OutcomeWin, board.DetectOutcome(entity.PlayerX))
	})

	t.Run("Prefers winning over blocking", func(t *testing.T) {
		// Given: both sides have four in a row
		board := newBoardWith(t, 10, map[[2]int]entity.Mark{
			{5, 0}: entity.PlayerO, {5, 1}: entity.PlayerO, {5, 2}: entity.PlayerO, {5, 3}: entity.PlayerO,
			{8, 2}: entity.PlayerX, {8, 3}: entity.PlayerX, {8, 4}: entity.PlayerX, {8, 5}: entity.PlayerX,
		})

		// When: the bot plays X
		move, err := newTestBot().MakeTurn(board, entity.PlayerX)

		// Then: it completes its own line
		require.NoError(t, err)
		assert.Equal(t, 8, move.Row)
		assert.Contains(t, []int{1, 6}, move.Col)
		assert.Equal(t, entity.OutcomeWin, board.DetectOutcome(entity.PlayerX))
	})

	t.Run("Blocks the rival's four", func(t *testing.T) {
		board := newBoardWith(t, 10, map[[2]int]entity.Mark{
			{5, 0}: entity.PlayerO, {5, 1}: entity.PlayerO, {5, 2}: entity.PlayerO, {5, 3}: entity.PlayerO,
			{0, 0}: entity.PlayerX, {0, 1}: entity.PlayerX, {0, 2}: entity.PlayerX,
		})

		move, err := newTestBot().MakeTurn(board, entity.PlayerX)

		require.NoError(t, err)
		assert.Equal(t, entity.Move{Row: 5, Col: 4, Mark: entity.PlayerX}, move)
	})

	t.Run("Blocks an open three at one of its ends", func(t *testing.T) {
		// Given: O holds (2,1)-(2,3) with (2,0) and (2,4) empty
		board := newBoardWith(t, 10, map[[2]int]entity.Mark{
			{2, 1}: entity.PlayerO, {2, 2}: entity.PlayerO, {2, 3}: entity.PlayerO,
		})

		// When: the bot plays X
		move, err := newTestBot().MakeTurn(board, entity.PlayerX)

		// Then: it blocks at (2,0) or (2,4)
		require.NoError(t, err)
		assert.Equal(t, 2, move.Row)
		assert.Contains(t, []int{0, 4}, move.Col)
		assert.Equal(t, entity.PlayerX, board.At(move.Row, move.Col))
	})

	t.Run("Open three outranks its own three", func(t *testing.T) {
		board := newBoardWith(t, 10, map[[2]int]entity.Mark{
			{0, 0}: entity.PlayerX, {0, 1}: entity.PlayerX, {0, 2}: entity.PlayerX,
			{3, 3}: entity.PlayerO, {4, 3}: entity.PlayerO, {5, 3}: entity.PlayerO,
		})

		move, err := newTestBot().MakeTurn(board, entity.PlayerX)

		// Then: the earliest open window (1,3)-(5,3) is blocked at its first gap
		require.NoError(t, err)
		assert.Equal(t, entity.Move{Row: 1, Col: 3, Mark: entity.PlayerX}, move)
	})

	t.Run("Open three ahead of a blocked rival three", func(t *testing.T) {
		// Given: O has an open three at (2,3)-(2,5) and a vertical three at (5,8)-(7,8)
		board := newBoardWith(t, 12, map[[2]int]entity.Mark{
			{2, 3}: entity.PlayerO, {2, 4}: entity.PlayerO, {2, 5}: entity.PlayerO, {2, 7}: entity.PlayerX,
			{5, 8}: entity.PlayerO, {6, 8}: entity.PlayerO, {7, 8}: entity.PlayerO,
		})

		move, err := newTestBot().MakeTurn(board, entity.PlayerX)

		require.NoError(t, err)
		assert.Equal(t, entity.Move{Row: 2, Col: 1, Mark: entity.PlayerX}, move)
	})

	t.Run("Blocks a closed three before building", func(t *testing.T) {
		// Given: O has three against the edge, X has three in the middle
		board := newBoardWith(t, 10, map[[2]int]entity.Mark{
			{0, 0}: entity.PlayerO, {0, 1}: entity.PlayerO, {0, 2}: entity.PlayerO,
			{5, 5}: entity.PlayerX, {5, 6}: entity.PlayerX, {5, 7}: entity.PlayerX,
		})

		move, err := newTestBot().MakeTurn(board, entity.PlayerX)

		// Then: the rival's three is blocked first
		require.NoError(t, err)
		assert.Equal(t, entity.Move{Row: 0, Col: 3, Mark: entity.PlayerX}, move)
	})

	t.Run("Fills the first gap of the window", func(t *testing.T) {
		board := newBoardWith(t, 10, map[[2]int]entity.Mark{
			{0, 0}: entity.PlayerX, {0, 2}: entity.PlayerX, {0, 3}: entity.PlayerX, {0, 4}: entity.PlayerX,
		})

		move, err := newTestBot().MakeTurn(board, entity.PlayerX)

		require.NoError(t, err)
		assert.Equal(t, entity.Move{Row: 0, Col: 1, Mark: entity.PlayerX}, move)
	})

	t.Run("Extends its single mark", func(t *testing.T) {
		board := newBoardWith(t, 10, map[[2]int]entity.Mark{
			{4, 4}: entity.PlayerO,
		})

		move, err := newTestBot().MakeTurn(board, entity.PlayerO)

		// Then: the first window containing (4,4) eastwards starts at (4,0)
		require.NoError(t, err)
		assert.Equal(t, entity.Move{Row: 4, Col: 0, Mark: entity.PlayerO}, move)
	})

	t.Run("Falls back to a random empty cell", func(t *testing.T) {
		board := newBoardWith(t, 5, nil)

		move, err := newTestBot().MakeTurn(board, entity.PlayerO)

		require.NoError(t, err)
		assert.True(t, board.InBounds(move.Row, move.Col))
		assert.Equal(t, entity.PlayerO, board.At(move.Row, move.Col))
		assert.Equal(t, 1, board.Placed())
	})

	t.Run("Fails on a full board", func(t *testing.T) {
		board := newBoardWith(t, 5, nil)
		for _, cell := range board.EmptyCells() {
			board.Place(cell.Row, cell.Col, entity.PlayerX)
		}

		_, err := newTestBot().MakeTurn(board, entity.PlayerO)

		require.ErrorIs(t, err, ErrNoAvailableMoves)
	})
}

func TestFindWindow(t *testing.T) {
	t.Run("A rival mark disqualifies the window", func(t *testing.T) {
		board := newBoardWith(t, 5, map[[2]int]entity.Mark{
			{0, 0}: entity.PlayerX, {0, 1}: entity.PlayerX, {0, 2}: entity.PlayerX, {0, 3}: entity.PlayerO,
		})

		_, ok := findWindow(board, entity.Directions[0], entity.PlayerX, 3, false)

		assert.False(t, ok)
	})

	t.Run("Open ends must be on the board", func(t *testing.T) {
		board := newBoardWith(t, 10, map[[2]int]entity.Mark{
			{0, 0}: entity.PlayerO, {0, 1}: entity.PlayerO, {0, 2}: entity.PlayerO,
		})

		_, ok := findWindow(board, entity.Directions[0], entity.PlayerO, 3, true)
		assert.False(t, ok)

		move, ok := findWindow(board, entity.Directions[0], entity.PlayerO, 3, false)
		require.True(t, ok)
		assert.Equal(t, entity.Move{Row: 0, Col: 3}, move)
	})

	t.Run("Open window may start with empty cells", func(t *testing.T) {
		// Given: the three sits at offsets 2-4 of the window (2,1)-(2,5)
		board := newBoardWith(t, 12, map[[2]int]entity.Mark{
			{2, 3}: entity.PlayerO, {2, 4}: entity.PlayerO, {2, 5}: entity.PlayerO, {2, 7}: entity.PlayerX,
		})

		move, ok := findWindow(board, entity.Directions[0], entity.PlayerO, 3, true)

		// Then: both flanks (2,0) and (2,6) are empty, the first gap is taken
		require.True(t, ok)
		assert.Equal(t, entity.Move{Row: 2, Col: 1}, move)
	})

	t.Run("Scans south-west windows", func(t *testing.T) {
		board := newBoardWith(t, 6, map[[2]int]entity.Mark{
			{0, 5}: entity.PlayerX, {1, 4}: entity.PlayerX, {2, 3}: entity.PlayerX, {3, 2}: entity.PlayerX,
		})

		move, ok := findWindow(board, entity.Directions[3], entity.PlayerX, 4, false)

		require.True(t, ok)
		assert.Equal(t, entity.Move{Row: 4, Col: 1}, move)
	})
}
