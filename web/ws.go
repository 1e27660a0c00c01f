// ABOUTME: Copilot chat over a websocket, one session per connection
// ABOUTME: Replies arrive from session timers and go out through a single writer goroutine
package web

import (
	"database/sql"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/harperreed/socialpulse/copilot"
	"github.com/harperreed/socialpulse/db"
	"github.com/harperreed/socialpulse/models"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// The UI is served from localhost only
		return true
	},
}

// Client protocol (JSON messages):
//
//	-> {type: "send", message: string}
//	<- {type: "history", messages: [...]}
//	<- {type: "message", message: {...}}
//	<- {type: "error", error: string}
type wsClientMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type wsServerMessage struct {
	Type     string               `json:"type"`
	Message  *models.ChatMessage  `json:"message,omitempty"`
	Messages []models.ChatMessage `json:"messages,omitempty"`
	Error    string               `json:"error,omitempty"`
}

type chatConn struct {
	conn      *websocket.Conn
	session   *copilot.Session
	db        *sql.DB
	sessionID string
	logger    *zap.Logger
	out       chan wsServerMessage
	done      chan struct{}
}

func (s *Server) handleCopilotWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	c := &chatConn{
		conn:      conn,
		db:        s.db,
		sessionID: uuid.NewString(),
		logger:    s.logger,
		out:       make(chan wsServerMessage, 16),
		done:      make(chan struct{}),
	}

	opts := []copilot.SessionOption{
		copilot.WithReplyDelay(s.replyDelay),
		copilot.WithLogger(s.logger),
		copilot.WithOnReply(c.onReply),
	}
	if s.matcher != nil {
		opts = append(opts, copilot.WithMatcher(s.matcher))
	}
	c.session = copilot.NewSession(opts...)

	copilotSessions.Inc()
	defer copilotSessions.Dec()

	c.serve()
}

func (c *chatConn) serve() {
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		c.writeLoop()
	}()

	history := c.session.Messages()
	for _, msg := range history {
		c.persist(msg)
	}
	c.enqueue(wsServerMessage{Type: "history", Messages: history})

	c.readLoop()

	c.session.Close()
	close(c.done)
	wg.Wait()
	_ = c.conn.Close()
}

func (c *chatConn) readLoop() {
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var in wsClientMessage
		if err := c.conn.ReadJSON(&in); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn("websocket read failed", zap.Error(err))
			}
			return
		}

		switch in.Type {
		case "send":
			msg, ok := c.session.Send(in.Message)
			if !ok {
				continue
			}
			copilotMessages.WithLabelValues(models.RoleUser).Inc()
			c.persist(msg)
			c.enqueue(wsServerMessage{Type: "message", Message: &msg})
		default:
			c.enqueue(wsServerMessage{Type: "error", Error: "unknown message type " + in.Type})
		}
	}
}

func (c *chatConn) writeLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case msg := <-c.out:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(msg); err != nil {
				c.logger.Debug("websocket write failed", zap.Error(err))
				// Unblocks readLoop
				_ = c.conn.Close()
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				_ = c.conn.Close()
				return
			}
		case <-c.done:
			return
		}
	}
}

// onReply runs on the session's timer goroutine.
func (c *chatConn) onReply(msg models.ChatMessage) {
	copilotMessages.WithLabelValues(models.RoleAssistant).Inc()
	c.persist(msg)
	c.enqueue(wsServerMessage{Type: "message", Message: &msg})
}

func (c *chatConn) enqueue(msg wsServerMessage) {
	select {
	case c.out <- msg:
	case <-c.done:
	}
}

func (c *chatConn) persist(msg models.ChatMessage) {
	if c.db == nil {
		return
	}
	if err := db.AppendChatMessage(c.db, c.sessionID, msg); err != nil {
		c.logger.Warn("failed to save chat message", zap.Error(err))
	}
}
