package websocket

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 512 * 1024 // 512KB

	// Send buffer size
	sendBufferSize = 16
)

// client is one WebSocket connection speaking JSON-RPC.
type client struct {
	id      string
	conn    *websocket.Conn
	mcp     *mcpserver.MCPServer
	send    chan []byte
	ctx     context.Context
	onClose func()
	logger  *zap.Logger
}

func newClient(ctx context.Context, mcp *mcpserver.MCPServer, conn *websocket.Conn, logger *zap.Logger) *client {
	id := uuid.New().String()
	return &client{
		id:     id,
		conn:   conn,
		mcp:    mcp,
		send:   make(chan []byte, sendBufferSize),
		ctx:    ctx,
		logger: logger.With(zap.String("connectionID", id)),
	}
}

// start begins the client's read and write pumps.
func (c *client) start() {
	go c.writePump()
	go c.readPump()
}

// readPump reads frames off the connection and feeds them to the MCP
// server. Frames are handled one at a time, so responses keep request
// order.
func (c *client) readPump() {
	defer func() {
		close(c.send)
		c.conn.Close()
		if c.onClose != nil {
			c.onClose()
		}
		c.logger.Info("websocket connection closed")
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		messageType, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				c.logger.Warn("websocket read failed", zap.Error(err))
			}
			return
		}
		if messageType != websocket.TextMessage {
			c.logger.Warn("ignoring non-text frame", zap.Int("messageType", messageType))
			continue
		}
		c.handleFrame(message)
	}
}

// handleFrame feeds one JSON-RPC frame to the MCP server and queues the
// response. Notifications produce none.
func (c *client) handleFrame(raw []byte) {
	resp := c.mcp.HandleMessage(c.ctx, json.RawMessage(raw))
	if resp == nil {
		return
	}

	data, err := json.Marshal(resp)
	if err != nil {
		c.logger.Error("marshaling response failed", zap.Error(err))
		return
	}
	c.send <- data
}

// writePump ships queued responses to the peer and keeps the connection
// alive with pings. It also closes the connection on server shutdown.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.logger.Warn("websocket write failed", zap.Error(err))
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.ctx.Done():
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
			return
		}
	}
}
