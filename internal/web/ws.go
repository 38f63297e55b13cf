package web

import (
	"context"
	"net/http"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/peterkuimelis/mythduel/internal/game"
	mdnet "github.com/peterkuimelis/mythduel/internal/net"
)

// handleWebSocket attaches a client to one seat of a match. The client gets
// a state view on connect and after every action on the match. A connection
// without ?player= watches as a spectator and may not act.
func (s *Server) handleWebSocket(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	// Subscribe first: an action that lands before the snapshot load still
	// reaches the client as an update.
	updates, cancel := s.svc.Subscribe(id)
	defer cancel()

	m, err := s.svc.Get(ctx, id)
	if err != nil {
		s.fail(c, err)
		return
	}

	playerID := c.Query("player")
	seat := -1
	if playerID != "" {
		if seat = m.PlayerIndex(playerID); seat < 0 {
			c.JSON(http.StatusForbidden, gin.H{"error": "player is not in this match"})
			return
		}
	}

	conn, err := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		s.logger.Warn("websocket accept", zap.Error(err))
		return
	}
	defer conn.CloseNow()

	logger := s.logger.With(zap.String("match_id", id), zap.String("player_id", playerID))
	logger.Info("websocket connected")

	ctx, stop := context.WithCancel(ctx)
	defer stop()
	go func() {
		s.readActions(ctx, conn, id, playerID, logger)
		stop()
	}()

	if err := wsjson.Write(ctx, conn, stateMessage(m, seat, nil, "")); err != nil {
		return
	}
	for {
		select {
		case <-ctx.Done():
			conn.Close(websocket.StatusNormalClosure, "")
			logger.Info("websocket disconnected")
			return
		case u, ok := <-updates:
			if !ok {
				conn.Close(websocket.StatusGoingAway, "match deleted")
				return
			}
			res := u.Result
			msg := stateMessage(u.Match, seat, &res, u.Action.String())
			if err := wsjson.Write(ctx, conn, msg); err != nil {
				logger.Debug("websocket write", zap.Error(err))
				return
			}
		}
	}
}

// readActions submits every action message from the client until the
// connection fails. Results arrive through the match subscription.
func (s *Server) readActions(ctx context.Context, conn *websocket.Conn, id, playerID string, logger *zap.Logger) {
	for {
		var msg mdnet.ClientMessage
		if err := wsjson.Read(ctx, conn, &msg); err != nil {
			return
		}
		if playerID == "" {
			s.sendError(ctx, conn, "spectators cannot act")
			continue
		}
		a, err := msg.ToAction(playerID)
		if err != nil {
			s.sendError(ctx, conn, err.Error())
			continue
		}
		if _, _, err := s.svc.Submit(ctx, id, a); err != nil {
			logger.Warn("submit failed", zap.Error(err))
			s.sendError(ctx, conn, err.Error())
		}
	}
}

func (s *Server) sendError(ctx context.Context, conn *websocket.Conn, text string) {
	_ = wsjson.Write(ctx, conn, mdnet.ServerMessage{Type: mdnet.MsgError, Error: text})
}

func stateMessage(m *game.Match, seat int, res *game.Result, action string) mdnet.ServerMessage {
	return mdnet.ServerMessage{
		Type:   mdnet.MsgState,
		State:  mdnet.BuildMatchView(m, seat),
		Result: res,
		Action: action,
	}
}
