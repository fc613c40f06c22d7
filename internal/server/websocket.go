package server

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/zeusync/wildcatch/internal/core/observability/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024 * 16,
	// Viewers are local renderers on other origins.
	CheckOrigin: func(*http.Request) bool { return true },
}

type client struct {
	conn   *websocket.Conn
	send   chan *encoded
	format Format
}

func (c *client) messageType() int {
	if c.format == FormatJSON {
		return websocket.TextMessage
	}
	return websocket.BinaryMessage
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	format, err := ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", log.Error(err))
		return
	}

	c := &client{
		conn:   conn,
		send:   make(chan *encoded, max(1, s.config.SendBuffer)),
		format: format,
	}
	if !s.register(c) {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseTryAgainLater, "too many viewers"),
			time.Now().Add(time.Second))
		_ = conn.Close()
		return
	}
	s.logger.Debug("viewer connected",
		log.String("remote", conn.RemoteAddr().String()),
		log.Int("viewers", s.ClientCount()),
	)

	if latest := s.latest.Load(); latest != nil {
		select {
		case c.send <- latest:
		default:
		}
	}

	go s.writePump(c)
	s.readPump(c)
}

// readPump discards whatever the viewer sends and keeps the read deadline
// alive through pongs. It unregisters the viewer on the first error.
func (s *Server) readPump(c *client) {
	defer s.unregister(c)

	c.conn.SetReadLimit(4096)
	_ = c.conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Debug("viewer read failed", log.Error(err))
			}
			return
		}
	}
}

// writePump is the only writer on the connection.
func (s *Server) writePump(c *client) {
	ticker := time.NewTicker(s.config.PingInterval)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteMessage(c.messageType(), frame.bytes(c.format)); err != nil {
				s.logger.Debug("viewer write failed", log.Error(err))
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
