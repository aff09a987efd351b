package server

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/raphaelgruber/rebuttal-go/internal/models"
	"github.com/raphaelgruber/rebuttal-go/internal/service"
	"github.com/raphaelgruber/rebuttal-go/internal/session"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // allow all origins for local dev
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// clientFrame is one inbound WebSocket message.
type clientFrame struct {
	Type   string               `json:"type"` // "start", "argument", "end"
	Config *models.DebateConfig `json:"config,omitempty"`
	Text   string               `json:"text,omitempty"`
}

// serverFrame is one outbound WebSocket message.
type serverFrame struct {
	Type      string           `json:"type"` // "session", "typing", "turn", "score", "error"
	SessionID session.ID       `json:"session_id,omitempty"`
	Turn      *models.Turn     `json:"turn,omitempty"`
	Summary   *session.Summary `json:"summary,omitempty"`
	Message   string           `json:"message,omitempty"`
}

// wsConn serializes frame writes; the event pump and the read loop both send.
type wsConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *wsConn) send(frame serverFrame) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return c.conn.WriteJSON(frame)
}

// handleDebateSocket runs one debate session over a WebSocket connection.
// The client starts a session, exchanges arguments and ends it for scoring;
// opponent turns stream back as they are generated.
func (s *Server) handleDebateSocket(w http.ResponseWriter, r *http.Request) {
	raw, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer raw.Close()

	conn := &wsConn{conn: raw}
	var sess *session.Session
	done := make(chan struct{})
	defer close(done)

	for {
		var frame clientFrame
		if err := raw.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Warn("websocket read failed", "error", err)
			}
			return
		}

		switch frame.Type {
		case "start":
			if sess != nil {
				_ = conn.send(serverFrame{Type: "error", Message: "session already started"})
				continue
			}
			if frame.Config == nil {
				_ = conn.send(serverFrame{Type: "error", Message: "config is required"})
				continue
			}

			started, err := s.debates.StartDebate(r.Context(), *frame.Config)
			if err != nil {
				_ = conn.send(serverFrame{Type: "error", Message: err.Error()})
				continue
			}
			sess = started
			_ = conn.send(serverFrame{Type: "session", SessionID: sess.ID()})
			_ = conn.send(serverFrame{Type: "typing"})
			go s.pumpEvents(conn, sess.ID(), done)

		case "argument":
			if sess == nil {
				_ = conn.send(serverFrame{Type: "error", Message: "no active session"})
				continue
			}
			if err := s.debates.SubmitArgument(r.Context(), sess.ID(), frame.Text); err != nil {
				_ = conn.send(serverFrame{Type: "error", Message: userMessage(err)})
				continue
			}
			_ = conn.send(serverFrame{Type: "typing"})

		case "end":
			if sess == nil {
				_ = conn.send(serverFrame{Type: "error", Message: "no active session"})
				continue
			}
			sum, err := s.debates.EndDebate(r.Context(), sess.ID())
			if err != nil {
				_ = conn.send(serverFrame{Type: "error", Message: userMessage(err)})
				continue
			}
			_ = conn.send(serverFrame{Type: "score", Summary: sum})
			return

		default:
			_ = conn.send(serverFrame{Type: "error", Message: "unknown frame type: " + frame.Type})
		}
	}
}

// pumpEvents forwards session events to the socket until the session
// completes or the connection goes away.
func (s *Server) pumpEvents(conn *wsConn, id session.ID, done <-chan struct{}) {
	events := s.debates.Subscribe(id)
	for {
		select {
		case <-done:
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			switch ev.Type {
			case service.EventTurn:
				turn := ev.Turn
				if err := conn.send(serverFrame{Type: "turn", Turn: &turn}); err != nil {
					return
				}
			case service.EventFailure:
				if err := conn.send(serverFrame{Type: "error", Message: ev.Err}); err != nil {
					return
				}
			}
		}
	}
}

// userMessage maps engine errors to the messages shown to the client.
func userMessage(err error) string {
	var verr *session.ValidationError
	switch {
	case errors.As(err, &verr):
		return verr.Reason
	case errors.Is(err, session.ErrTurnPending):
		return "Wait for the opponent's response"
	case errors.Is(err, session.ErrSessionNotFound):
		return "Session not found"
	default:
		return err.Error()
	}
}
