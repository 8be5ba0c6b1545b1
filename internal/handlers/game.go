package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/tobz1000/mines/internal/config"
	"github.com/tobz1000/mines/internal/protocol"
)

// Games is the game server behind the handlers.
type Games interface {
	NewGame(ctx context.Context, req protocol.NewGameRequest) (*protocol.ServerResponse, error)
	Turn(ctx context.Context, req protocol.TurnRequest) (*protocol.ServerResponse, error)
	Status(ctx context.Context, id string) (*protocol.ServerResponse, error)
}

type GameHandler struct {
	logger *slog.Logger
	games  Games
	ws     *config.WebSocket
}

func NewGameHandler(logger *slog.Logger, games Games, ws *config.WebSocket) *GameHandler {
	return &GameHandler{
		logger: logger,
		games:  games,
		ws:     ws,
	}
}

func (g GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	var req protocol.NewGameRequest
	if err := decodeBody(w, r, &req); err != nil {
		sendBadRequest(w, g.logger, err)
		return
	}

	resp, err := g.games.NewGame(r.Context(), req)
	if err != nil {
		sendError(w, g.logger, err)
		return
	}

	sendJSONOrLog(w, g.logger, resp)
}

func (g GameHandler) Turn(w http.ResponseWriter, r *http.Request) {
	var req protocol.TurnRequest
	if err := decodeBody(w, r, &req); err != nil {
		sendBadRequest(w, g.logger, err)
		return
	}

	resp, err := g.games.Turn(r.Context(), req)
	if err != nil {
		sendError(w, g.logger, err)
		return
	}

	sendJSONOrLog(w, g.logger, resp)
}

func (g GameHandler) Status(w http.ResponseWriter, r *http.Request) {
	var req protocol.StatusRequest
	if err := decodeBody(w, r, &req); err != nil {
		sendBadRequest(w, g.logger, err)
		return
	}
	g.status(w, r, req.ID)
}

func (g GameHandler) StatusQuery(w http.ResponseWriter, r *http.Request) {
	req, err := ParseStatusRequest(r.URL.Query())
	if err != nil {
		sendBadRequest(w, g.logger, err)
		return
	}
	g.status(w, r, req.ID)
}

func (g GameHandler) status(w http.ResponseWriter, r *http.Request, id string) {
	resp, err := g.games.Status(r.Context(), id)
	if err != nil {
		sendError(w, g.logger, err)
		return
	}
	sendJSONOrLog(w, g.logger, resp)
}

// ConnectWS plays a game over a websocket: every text message is a turn
// request for the game in the path, answered with the server response or an
// error message. The connection closes once the game is over.
func (g GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if _, err := g.games.Status(r.Context(), id); err != nil {
		sendError(w, g.logger, err)
		return
	}

	c, err := g.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.logger.Error("unable to upgrade", slog.Any("error", err))
		return
	}
	defer c.Close()
	c.SetReadLimit(g.ws.ReadLimit)

	logger := g.logger.With(slog.String("id", id))
	logger.Debug("websocket connected")

	for {
		var req protocol.TurnRequest
		if err := c.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(
				err, websocket.CloseNormalClosure, websocket.CloseGoingAway,
			) {
				logger.Warn("abnormal ws break", slog.Any("error", err))
			}
			return
		}
		req.ID = id

		resp, err := g.games.Turn(r.Context(), req)
		if err != nil {
			if statusCode(err) == http.StatusInternalServerError {
				logger.Error("unable to take turn", slog.Any("error", err))
				err = errors.New(http.StatusText(http.StatusInternalServerError))
			}
			if err := c.WriteJSON(wrapError(err)); err != nil {
				logger.Error("unable to write json", slog.Any("error", err))
				return
			}
			continue
		}

		if err := c.WriteJSON(resp); err != nil {
			logger.Error("unable to write json", slog.Any("error", err))
			return
		}

		if resp.GameOver {
			c.WriteMessage(
				websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, "game over"),
			)
			return
		}
	}
}
