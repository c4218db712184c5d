package server

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/nechto-online/nechto-server/internal/game"
	"github.com/nechto-online/nechto-server/internal/room"
)

// client is one connected player.
type client struct {
	server *Server
	conn   *websocket.Conn
	send   chan []byte

	ctx    context.Context
	cancel context.CancelFunc

	roomID string
	seat   int

	watchCancel context.CancelFunc
}

func (c *client) readPump() {
	defer func() {
		c.cancel()
		if c.watchCancel != nil {
			c.watchCancel()
		}
		c.conn.Close()
	}()

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.server.log.Warn("websocket read error", zap.Error(err))
			}
			return
		}

		var req Request
		if err := json.Unmarshal(raw, &req); err != nil {
			c.reply(Response{Type: "error", Error: "malformed request"})
			continue
		}
		c.handle(req)
	}
}

func (c *client) writePump() {
	interval := c.server.cfg.PingInterval
	if interval <= 0 {
		interval = 30 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	writeTimeout := c.server.cfg.WriteTimeout
	if writeTimeout <= 0 {
		writeTimeout = 10 * time.Second
	}

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.ctx.Done():
			return
		}
	}
}

func (c *client) reply(resp Response) {
	raw, err := json.Marshal(resp)
	if err != nil {
		c.server.log.Error("failed to encode response", zap.Error(err))
		return
	}
	select {
	case c.send <- raw:
	default:
		c.server.log.Warn("dropping frame for slow client",
			zap.String("room", c.roomID),
			zap.Int("seat", c.seat),
		)
	}
}

func (c *client) fail(reqType string, err error) {
	c.reply(Response{Type: reqType, Error: err.Error()})
}

func (c *client) handle(req Request) {
	mgr := c.server.rooms

	switch req.Type {
	case "create_room":
		snap, seat, err := mgr.CreateRoom(req.Name, req.Code, req.PlayerName)
		if err != nil {
			c.fail(req.Type, err)
			return
		}
		c.roomID = snap.ID
		c.seat = seat
		c.reply(Response{Type: req.Type, RoomID: snap.ID, Seat: seat, Seats: snap.Seats})

	case "join_room":
		seat, err := mgr.JoinRoom(req.RoomID, req.Code, req.PlayerName, false)
		if err != nil {
			c.fail(req.Type, err)
			return
		}
		c.roomID = req.RoomID
		c.seat = seat
		snap, _ := mgr.Room(req.RoomID)
		c.reply(Response{Type: req.Type, RoomID: req.RoomID, Seat: seat, Seats: snap.Seats})

	case "start_game":
		st, err := mgr.StartGame(c.ctx, c.roomID)
		if err != nil {
			c.fail(req.Type, err)
			return
		}
		c.startWatch()
		c.reply(Response{Type: req.Type, RoomID: c.roomID, State: st})

	case "restart_game":
		st, err := mgr.RestartGame(c.ctx, c.roomID)
		if err != nil {
			c.fail(req.Type, err)
			return
		}
		c.startWatch()
		c.reply(Response{Type: req.Type, RoomID: c.roomID, State: st})

	case "end_game":
		if err := mgr.EndGame(c.ctx, c.roomID); err != nil {
			c.fail(req.Type, err)
			return
		}
		c.reply(Response{Type: req.Type, RoomID: c.roomID})

	case "watch":
		c.startWatch()
		c.reply(Response{Type: req.Type, RoomID: c.roomID})

	case "action":
		res, err := mgr.Resolve(c.ctx, c.roomID, c.seat, req.Action)
		if err != nil {
			c.fail(req.Type, err)
			return
		}
		c.reply(Response{
			Type:     req.Type,
			RoomID:   c.roomID,
			State:    res.State,
			Seats:    res.Roster.Seats,
			Finished: res.Finished,
		})

	case "legality":
		leg, err := mgr.Legality(c.ctx, c.roomID, c.seat)
		if err != nil {
			c.fail(req.Type, err)
			return
		}
		c.reply(Response{Type: req.Type, RoomID: c.roomID, Legality: &leg})

	default:
		c.reply(Response{Type: "error", Error: "unknown request type: " + req.Type})
	}
}

// startWatch subscribes the connection to the room's state stream and
// forwards snapshots as "state" frames.
func (c *client) startWatch() {
	if c.watchCancel != nil {
		c.watchCancel()
		c.watchCancel = nil
	}

	ctx, cancel := context.WithCancel(c.ctx)
	ch, err := c.server.store.Watch(ctx, c.roomID)
	if err != nil {
		cancel()
		c.server.log.Warn("watch failed",
			zap.String("room", c.roomID),
			zap.Error(err),
		)
		return
	}
	c.watchCancel = cancel

	go func() {
		for st := range ch {
			c.reply(Response{Type: "state", RoomID: st.RoomID, State: st, Finished: st.Finished})
		}
	}()
}

// Request is one inbound frame.
type Request struct {
	Type string `json:"type"`

	RoomID     string `json:"roomId,omitempty"`
	Name       string `json:"name,omitempty"`
	Code       string `json:"code,omitempty"`
	PlayerName string `json:"playerName,omitempty"`

	Action room.Action `json:"action,omitempty"`
}

// Response is one outbound frame.
type Response struct {
	Type  string `json:"type"`
	Error string `json:"error,omitempty"`

	RoomID   string         `json:"roomId,omitempty"`
	Seat     int            `json:"playerId,omitempty"`
	Seats    []game.Seat    `json:"seats,omitempty"`
	State    *game.State    `json:"state,omitempty"`
	Legality *room.Legality `json:"legality,omitempty"`
	Finished bool           `json:"finished,omitempty"`
}
