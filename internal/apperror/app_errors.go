package apperror

import "errors"

var (
	ErrRoomNotFound     = errors.New("room not found")
	ErrWrongMode        = errors.New("this room is not a pvp room")
	ErrRoomFull         = errors.New("room is full")
	ErrNotPlaying       = errors.New("game is not in progress")
	ErrOutOfBounds      = errors.New("out of bounds")
	ErrCellOccupied     = errors.New("cell is already occupied")
	ErrNotYourTurn      = errors.New("it's not your turn")
	ErrNotYourGame      = errors.New("not your game")
	ErrInvalidSize      = errors.New("invalid board size")
	ErrMalformedRequest = errors.New("malformed request")
)

const internalMessage = "internal error"

// userFacing lists the errors whose text may be shown to the requester.
var userFacing = []error{
	ErrRoomNotFound,
	ErrWrongMode,
	ErrRoomFull,
	ErrNotPlaying,
	ErrOutOfBounds,
	ErrCellOccupied,
	ErrNotYourTurn,
	ErrNotYourGame,
	ErrInvalidSize,
	ErrMalformedRequest,
}

// Message - returns the text sent back to a client for err.
func Message(err error) string {
	for _, target := range userFacing {
		if errors.Is(err, target) {
			return target.Error()
		}
	}

	return internalMessage
}

// IsUserFacing - reports whether err is a validation failure rather than an infrastructure one.
func IsUserFacing(err error) bool {
	return Message(err) != internalMessage
}
