package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
	"github.com/rocketscienceinc/gomoku-backend/internal/pkg"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	maxMessageSize = 4096
)

type uGame interface {
	CreateRoom(ctx context.Context, creator string, size int, mode string) (string, error)
	JoinRoom(ctx context.Context, who, code string) error
	MakeTurn(ctx context.Context, who, code string, row, col int) error
	RequestRematch(ctx context.Context, who, code string) error
	LeaveRoom(ctx context.Context, who, code string) error
	Disconnect(ctx context.Context, who string)
}

type handler func(ctx context.Context, client *client, msg *Message) error

type Server struct {
	logger *slog.Logger
	hub    *Hub
	uGame  uGame

	upgrader websocket.Upgrader
	handlers map[string]handler
}

func New(logger *slog.Logger, hub *Hub, uGame uGame) *Server {
	server := &Server{
		logger: logger.With("component", "websocket"),
		hub:    hub,
		uGame:  uGame,

		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		handlers: make(map[string]handler),
	}

	server.handlers[actionCreateRoom] = server.handleCreateRoom
	server.handlers[actionJoinRoom] = server.handleJoinRoom
	server.handlers[actionMakeMove] = server.handleMakeMove
	server.handlers[actionRequestRematch] = server.handleRequestRematch
	server.handlers[actionLeaveRoom] = server.handleLeaveRoom

	return server
}

// Start - starts WebSocket server, it stops when ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.ServeWS(ctx, w, r)
	})

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shutdown server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// ServeWS - upgrades the connection and serves it until the client goes away.
func (that *Server) ServeWS(ctx context.Context, writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "ServeWS")

	conn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	id := pkg.GenerateConnectionID()
	client := that.hub.register(id)

	log = log.With("participant", id)
	log.Info("WebSocket connection established")

	that.hub.SendTo(id, entity.ActionConnected, entity.ConnectedPayload{ID: id})

	go that.writeMessages(conn, client)

	that.handleMessages(ctx, conn, client)

	that.uGame.Disconnect(ctx, id)
	that.hub.unregister(id)

	log.Info("WebSocket connection closed")
}

// handleMessages - processes messages from the client.
func (that *Server) handleMessages(ctx context.Context, conn *websocket.Conn, client *client) {
	log := that.logger.With("method", "handleMessages", "participant", client.id)

	defer conn.Close()

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("unexpected close", "error", err)
			}
			return
		}

		var message Message
		if err = json.Unmarshal(data, &message); err != nil {
			log.Warn("failed to unmarshal message", "error", err)
			that.sendErrorResponse(client, fmt.Errorf("%w: %w", apperror.ErrMalformedRequest, err))
			continue
		}

		handle, ok := that.handlers[message.Action]
		if !ok {
			log.Warn("unknown action", "action", message.Action)
			that.sendErrorResponse(client, fmt.Errorf("%w: unknown action %q", apperror.ErrMalformedRequest, message.Action))
			continue
		}

		if err = handle(ctx, client, &message); err != nil {
			if apperror.IsUserFacing(err) {
				log.Info("request rejected", "action", message.Action, "reason", err)
			} else {
				log.Error("error processing message", "action", message.Action, "error", err)
			}

			that.sendErrorResponse(client, err)
		}
	}
}

// writeMessages - drains the client's queue and keeps the connection alive with pings.
func (that *Server) writeMessages(conn *websocket.Conn, client *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = conn.Close()
	}()

	for {
		select {
		case message, ok := <-client.send:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
				that.logger.Debug("failed to write message", "participant", client.id, "error", err)
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (that *Server) sendErrorResponse(client *client, err error) {
	that.hub.SendTo(client.id, entity.ActionErrorMessage, entity.ErrorPayload{Message: apperror.Message(err)})
}
