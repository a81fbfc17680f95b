package websocket

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
)

func (that *Server) handleCreateRoom(ctx context.Context, client *client, msg *Message) error {
	var payloadReq createRoomRequest
	if err := decodePayload(msg, &payloadReq); err != nil {
		return err
	}

	code, err := that.uGame.CreateRoom(ctx, client.id, payloadReq.Size, payloadReq.Mode)
	if err != nil {
		return fmt.Errorf("failed to create room: %w", err)
	}

	that.logger.Info("room created", "method", "handleCreateRoom", "participant", client.id, "room", code)

	return nil
}

func (that *Server) handleJoinRoom(ctx context.Context, client *client, msg *Message) error {
	var payloadReq roomRequest
	if err := decodePayload(msg, &payloadReq); err != nil {
		return err
	}

	if err := that.uGame.JoinRoom(ctx, client.id, payloadReq.RoomCode); err != nil {
		return fmt.Errorf("room %s: %w", payloadReq.RoomCode, err)
	}

	return nil
}

func (that *Server) handleMakeMove(ctx context.Context, client *client, msg *Message) error {
	var payloadReq moveRequest
	if err := decodePayload(msg, &payloadReq); err != nil {
		return err
	}

	if payloadReq.Row == nil || payloadReq.Col == nil {
		return fmt.Errorf("%w: row and col are required", apperror.ErrMalformedRequest)
	}

	if err := that.uGame.MakeTurn(ctx, client.id, payloadReq.RoomCode, *payloadReq.Row, *payloadReq.Col); err != nil {
		return fmt.Errorf("room %s: %w", payloadReq.RoomCode, err)
	}

	return nil
}

func (that *Server) handleRequestRematch(ctx context.Context, client *client, msg *Message) error {
	var payloadReq roomRequest
	if err := decodePayload(msg, &payloadReq); err != nil {
		return err
	}

	if err := that.uGame.RequestRematch(ctx, client.id, payloadReq.RoomCode); err != nil {
		return fmt.Errorf("room %s: %w", payloadReq.RoomCode, err)
	}

	return nil
}

func (that *Server) handleLeaveRoom(ctx context.Context, client *client, msg *Message) error {
	var payloadReq roomRequest
	if err := decodePayload(msg, &payloadReq); err != nil {
		return err
	}

	if err := that.uGame.LeaveRoom(ctx, client.id, payloadReq.RoomCode); err != nil {
		return fmt.Errorf("room %s: %w", payloadReq.RoomCode, err)
	}

	return nil
}

// decodePayload - an absent payload leaves target zeroed.
func decodePayload(msg *Message, target any) error {
	if len(msg.Payload) == 0 {
		return nil
	}

	if err := json.Unmarshal(msg.Payload, target); err != nil {
		return fmt.Errorf("%w: %w", apperror.ErrMalformedRequest, err)
	}

	return nil
}
