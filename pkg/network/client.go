package network

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gonewx/bastion/pkg/ecs"
	"github.com/gonewx/bastion/pkg/game"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendQueue      = 64
	cachedRequests = 256
)

var errJoinRequired = errors.New("first request must be a join")

type outbound struct {
	kind int
	data []byte
}

// client bridges one WebSocket connection and the simulation loop.
type client struct {
	server *Server
	conn   *websocket.Conn
	send   chan outbound
	done   chan struct{}
	token  string
	player ecs.EntityID
	cache  *requestCache
	log    *logrus.Entry
}

func newClient(s *Server, conn *websocket.Conn) *client {
	token := uuid.New().String()
	return &client{
		server: s,
		conn:   conn,
		send:   make(chan outbound, sendQueue),
		done:   make(chan struct{}),
		token:  token,
		cache:  newRequestCache(cachedRequests),
		log:    s.log.WithField("token", token),
	}
}

// readPump performs the join handshake and then executes requests in order.
func (c *client) readPump(ctx context.Context) {
	defer func() {
		if c.player != ecs.InvalidID {
			c.leave(ctx)
		}
		c.server.hub.unregister(c)
		close(c.send)
		c.log.Info("[Client] disconnected")
	}()

	c.conn.SetReadLimit(maxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.log.WithError(err).Warn("[Client] failed to set read deadline")
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var req Request
		if err := c.conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log.WithError(err).Warn("[Client] read failed")
			}
			return
		}
		if req.ID == "" {
			req.ID = uuid.New().String()
		}

		resp, cached := c.cache.get(req.ID)
		if !cached {
			resp = c.handle(ctx, req)
			c.cache.put(req.ID, resp)
		}
		if !c.reply(resp) {
			return
		}
		if req.Op == OpLeave && resp.OK {
			return
		}
	}
}

func (c *client) reply(resp Response) bool {
	data, err := json.Marshal(resp)
	if err != nil {
		c.log.WithError(err).Error("[Client] response encoding failed")
		return false
	}
	select {
	case c.send <- outbound{kind: websocket.TextMessage, data: data}:
		return true
	case <-c.done:
		return false
	}
}

// handle executes one request on the simulation goroutine.
func (c *client) handle(ctx context.Context, req Request) Response {
	if c.player == ecs.InvalidID {
		if req.Op != OpJoin {
			return failure(req.ID, errJoinRequired)
		}
		return c.join(ctx, req)
	}

	var result Result
	err := c.server.loop.Do(ctx, func(s *game.Simulation) error {
		var err error
		switch req.Op {
		case OpPlaceStructure:
			result.StructureID, err = s.PlaceStructure(c.player, req.TemplateID, req.CellX, req.CellY)
		case OpRemoveStructure:
			err = s.RemoveStructure(c.player, req.StructureID)
		case OpStartWave:
			err = s.StartWave()
		case OpPickAugment:
			result.AugmentID, err = s.PickAugment(c.player, req.Index)
		case OpMove:
			if req.Destination == nil {
				return fmt.Errorf("move: destination required")
			}
			err = s.MovePlayer(c.player, *req.Destination)
		case OpLeave:
			err = s.RemovePlayer(c.player)
		default:
			err = fmt.Errorf("unknown op %q", req.Op)
		}
		return err
	})
	if err != nil {
		c.log.WithError(err).WithField("op", req.Op).Debug("[Client] request rejected")
		return failure(req.ID, err)
	}
	if req.Op == OpLeave {
		c.player = ecs.InvalidID
	}
	return success(req.ID, &result)
}

func (c *client) join(ctx context.Context, req Request) Response {
	name := req.Name
	if name == "" {
		name = "player-" + c.token[:8]
	}
	var id ecs.EntityID
	err := c.server.loop.Do(ctx, func(s *game.Simulation) error {
		var err error
		id, err = s.AddPlayer(name)
		return err
	})
	if err != nil {
		return failure(req.ID, err)
	}
	c.player = id
	c.server.hub.register(c)
	c.log.WithField("player", id).Infof("[Client] %s joined", name)
	return success(req.ID, &Result{Token: c.token, PlayerID: id})
}

func (c *client) leave(ctx context.Context) {
	id := c.player
	c.player = ecs.InvalidID
	err := c.server.loop.Do(ctx, func(s *game.Simulation) error {
		return s.RemovePlayer(id)
	})
	if err != nil && !errors.Is(err, game.ErrLoopStopped) && !errors.Is(err, context.Canceled) {
		c.log.WithError(err).Warn("[Client] failed to remove player")
	}
}

// writePump drains the send queue and keeps the connection alive with pings.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		close(c.done)
		if err := c.conn.Close(); err != nil {
			c.log.WithError(err).Debug("[Client] close failed in writePump")
		}
	}()

	for {
		select {
		case msg, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.log.WithError(err).Warn("[Client] failed to set write deadline")
			}
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(msg.kind, msg.data); err != nil {
				c.log.WithError(err).Debug("[Client] write failed")
				return
			}

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.log.WithError(err).Warn("[Client] failed to set ping write deadline")
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.log.WithError(err).Debug("[Client] ping failed")
				return
			}
		}
	}
}
