package entity

// Outbound actions sent to room participants.
const (
	ActionConnected      = "connected"
	ActionRoomCreated    = "roomCreated"
	ActionGameStarted    = "gameStarted"
	ActionBoardUpdated   = "boardUpdated"
	ActionTurnChanged    = "turnChanged"
	ActionGameFinished   = "gameFinished"
	ActionRematchStarted = "rematchStarted"
	ActionOpponentLeft   = "opponentLeft"
	ActionErrorMessage   = "errorMessage"
)

// WinnerNone is reported in gameFinished for a draw.
const WinnerNone = "none"

// Notification is one outbound message addressed to Recipients.
type Notification struct {
	Recipients []string
	Action     string
	Payload    any
}

type RoomCreatedPayload struct {
	RoomCode string `json:"roomCode"`
	Size     int    `json:"size"`
	Mode     Mode   `json:"mode"`
}

type GameStartedPayload struct {
	RoomCode string    `json:"roomCode"`
	Size     int       `json:"size"`
	Board    [][]Mark  `json:"board"`
	Turn     string    `json:"turn"`
	Players  []*Player `json:"players"`
	Mode     Mode      `json:"mode"`
}

type BoardUpdatedPayload struct {
	Board    [][]Mark `json:"board"`
	LastMove LastMove `json:"lastMove"`
}

// LastMove carries the mark as "X" or "O".
type LastMove struct {
	Row  int    `json:"row"`
	Col  int    `json:"col"`
	Mark string `json:"mark"`
}

type TurnChangedPayload struct {
	Turn string `json:"turn"`
}

type GameFinishedPayload struct {
	Winner string `json:"winner"`
}

type RematchStartedPayload struct {
	Board [][]Mark `json:"board"`
	Turn  string   `json:"turn"`
}

type OpponentLeftPayload struct{}

type ErrorPayload struct {
	Message string `json:"message"`
}

type ConnectedPayload struct {
	ID string `json:"id"`
}
