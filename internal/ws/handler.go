package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
	"github.com/lk16/reversi/internal/games"
	"github.com/lk16/reversi/internal/models"
)

const (
	requestTimeout = 2 * time.Second
)

type Handler struct {
	manager *games.Manager
	gameID  uuid.UUID
	ws      *websocket.Conn
}

// NewHandler creates a new Handler for one game.
func NewHandler(ws *websocket.Conn, manager *games.Manager, gameID uuid.UUID) *Handler {
	return &Handler{manager: manager, gameID: gameID, ws: ws}
}

func (h *Handler) readMessage() (*Incoming, error) {
	var req Incoming

	msgType, msg, err := h.ws.ReadMessage()
	if err != nil {
		return nil, fmt.Errorf("ws read error: %w", err)
	}

	slog.Debug("read ws message", "msgType", msgType, "msg", msg)

	if msgType != websocket.TextMessage {
		return nil, fmt.Errorf("unexpected message type: %d", msgType)
	}

	if err = json.Unmarshal(msg, &req); err != nil {
		return nil, fmt.Errorf("unmarshal error: %w", err)
	}

	return &req, nil
}

func (h *Handler) writeMessage(outgoing *Outgoing) error {
	msg, err := json.Marshal(outgoing)
	if err != nil {
		return fmt.Errorf("marshal error: %w", err)
	}

	slog.Debug("write ws message", "msg", string(msg))

	if err = h.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
		return fmt.Errorf("write error: %w", err)
	}

	return nil
}

// handleMessage returns the reply to req. Errors from the game itself, such as
// illegal moves, are part of the reply. A returned error ends the connection.
func (h *Handler) handleMessage(req *Incoming) (*Outgoing, error) {
	if req.Event == "" {
		return nil, errors.New("event field is either empty or missing")
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	var (
		data any
		err  error
	)

	switch req.Event {
	case "state_request":
		data, err = h.manager.State(ctx, h.gameID)
	case "legal_moves_request":
		data, err = h.manager.LegalMoves(ctx, h.gameID)
	case "move_request":
		var reqData models.MoveRequest
		if err = json.Unmarshal(req.Data, &reqData); err != nil {
			return nil, fmt.Errorf("ws move request unmarshal error: %w", err)
		}
		if err = reqData.Validate(); err != nil {
			break
		}
		data, err = h.manager.Move(ctx, h.gameID, *reqData.Row, *reqData.Col)
	case "pass_request":
		data, err = h.manager.Pass(ctx, h.gameID)
	case "undo_request":
		data, err = h.manager.Undo(ctx, h.gameID)
	default:
		return nil, fmt.Errorf("unknown event: %s", req.Event)
	}

	if err != nil {
		return &Outgoing{ID: req.ID, Error: err.Error()}, nil
	}

	return &Outgoing{ID: req.ID, Data: data}, nil
}

// Handle handles the websocket connection.
func (h *Handler) Handle() error {
	for {
		req, err := h.readMessage()
		if err != nil {
			return fmt.Errorf("ws read error: %w", err)
		}

		respData, err := h.handleMessage(req)
		if err != nil {
			return fmt.Errorf("ws handle error: %w", err)
		}

		if err = h.writeMessage(respData); err != nil {
			return fmt.Errorf("ws write error: %w", err)
		}
	}
}
