package websocket

import (
	"encoding/json"
	"fmt"
)

// Inbound actions.
const (
	actionCreateRoom     = "createRoom"
	actionJoinRoom       = "joinRoom"
	actionMakeMove       = "makeMove"
	actionRequestRematch = "requestRematch"
	actionLeaveRoom      = "leaveRoom"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type createRoomRequest struct {
	Size int    `json:"size"`
	Mode string `json:"mode"`
}

type roomRequest struct {
	RoomCode string `json:"roomCode"`
}

type moveRequest struct {
	RoomCode string `json:"roomCode"`
	Row      *int   `json:"row"`
	Col      *int   `json:"col"`
}

func encodeMessage(action string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	message, err := json.Marshal(Message{Action: action, Payload: data})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal message: %w", err)
	}

	return message, nil
}
