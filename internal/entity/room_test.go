package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
)

func TestParseMode(t *testing.T) {
	assert.Equal(t, ModeVsBot, ParseMode("bot"))
	assert.Equal(t, ModeSharedLocal, ParseMode("local"))
	assert.Equal(t, ModeRemotePvP, ParseMode("pvp"))
	assert.Equal(t, ModeRemotePvP, ParseMode(""))
	assert.Equal(t, ModeRemotePvP, ParseMode("chess"))
}

func TestNewRoom(t *testing.T) {
	t.Run("Pvp room waits for an opponent", func(t *testing.T) {
		room, err := NewRoom("ABC123", 10, ModeRemotePvP, "alice")

		require.NoError(t, err)
		assert.True(t, room.IsWaiting())
		assert.Equal(t, PlayerX, room.Turn)
		assert.Equal(t, []string{"alice"}, room.Participants)
	})

	t.Run("Bot and local rooms start playing", func(t *testing.T) {
		for _, mode := range []Mode{ModeVsBot, ModeSharedLocal} {
			room, err := NewRoom("ABC123", 10, mode, "alice")

			require.NoError(t, err)
			assert.True(t, room.IsPlaying(), mode)
		}
	})

	t.Run("Invalid size is rejected", func(t *testing.T) {
		_, err := NewRoom("ABC123", 3, ModeRemotePvP, "alice")

		require.ErrorIs(t, err, apperror.ErrInvalidSize)
	})
}

func TestRoom_ResolveTurn(t *testing.T) {
	t.Run("Pvp follows the participant order", func(t *testing.T) {
		// Given: a full pvp room
		room, err := NewRoom("ABC123", 10, ModeRemotePvP, "alice")
		require.NoError(t, err)
		room.Participants = append(room.Participants, "bob")
		room.Status = StatusPlaying

		// When: bob tries to move on X's turn
		_, err = room.ResolveTurn("bob")

		// Then: it's not his turn, alice moves as X
		require.ErrorIs(t, err, apperror.ErrNotYourTurn)

		mark, err := room.ResolveTurn("alice")
		require.NoError(t, err)
		assert.Equal(t, PlayerX, mark)

		room.Turn = PlayerO
		mark, err = room.ResolveTurn("bob")
		require.NoError(t, err)
		assert.Equal(t, PlayerO, mark)
	})

	t.Run("Pvp without a second participant rejects O", func(t *testing.T) {
		room, err := NewRoom("ABC123", 10, ModeRemotePvP, "alice")
		require.NoError(t, err)
		room.Turn = PlayerO

		_, err = room.ResolveTurn("alice")
		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
	})

	t.Run("Bot room accepts only its owner on X", func(t *testing.T) {
		room, err := NewRoom("ABC123", 10, ModeVsBot, "alice")
		require.NoError(t, err)

		_, err = room.ResolveTurn("mallory")
		require.ErrorIs(t, err, apperror.ErrNotYourGame)

		room.Turn = PlayerO
		_, err = room.ResolveTurn("alice")
		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
	})

	t.Run("Local room accepts anyone as the current mark", func(t *testing.T) {
		room, err := NewRoom("ABC123", 10, ModeSharedLocal, "alice")
		require.NoError(t, err)
		room.Turn = PlayerO

		mark, err := room.ResolveTurn("somebody")
		require.NoError(t, err)
		assert.Equal(t, PlayerO, mark)
	})
}

func TestRoom_Reset(t *testing.T) {
	room, err := NewRoom("ABC123", 7, ModeSharedLocal, "alice")
	require.NoError(t, err)

	room.Board.Place(1, 1, PlayerX)
	room.Turn = PlayerO
	room.Finish(PlayerX)

	// When: the room is reset
	room.Reset()

	// Then: a fresh game of the same size starts
	assert.True(t, room.IsPlaying())
	assert.Equal(t, PlayerX, room.Turn)
	assert.Equal(t, EmptyCell, room.Winner)
	assert.Equal(t, 0, room.Board.Placed())
	assert.Equal(t, 7, room.Board.Size())
	assert.Equal(t, "ABC123", room.Code)
	assert.Equal(t, []string{"alice"}, room.Participants)
}

func TestRoom_Remove(t *testing.T) {
	room, err := NewRoom("ABC123", 10, ModeRemotePvP, "alice")
	require.NoError(t, err)
	room.Participants = append(room.Participants, "bob")

	assert.True(t, room.Remove("alice"))
	assert.False(t, room.Remove("alice"))
	assert.Equal(t, []string{"bob"}, room.Participants)
}

func TestRoom_View(t *testing.T) {
	room, err := NewRoom("ABC123", 5, ModeVsBot, "alice")
	require.NoError(t, err)
	room.Board.Place(2, 2, PlayerX)

	view := room.View()

	assert.Equal(t, "ABC123", view.Code)
	assert.Equal(t, 5, view.Size)
	assert.Equal(t, PlayerX, view.Board[2][2])
	assert.Equal(t, "X", view.Turn)
	assert.Empty(t, view.Winner)
	require.Len(t, view.Players, 2)
	assert.Equal(t, "alice", view.Players[0].ID)
	assert.Equal(t, "X", view.Players[0].Mark)
	assert.True(t, view.Players[1].IsBot)
	assert.Equal(t, "O", view.Players[1].Mark)
}
