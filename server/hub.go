package server

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	mess "github.com/sudharshan-del/Hostel-Management"
	"go.uber.org/zap"
)

// ErrHubClosed is returned when a stream is opened after the hub shut down.
var ErrHubClosed = errors.New("server: stats hub closed")

const (
	sendBuffer   = 8
	writeTimeout = 5 * time.Second
)

// Hub fans stats updates out to websocket subscribers. Publish matches the
// signature expected by mess.WithOnVote.
type Hub struct {
	upgrader websocket.Upgrader
	logger   *zap.Logger

	mu      sync.Mutex
	clients map[*subscriber]struct{}
	closed  bool
}

type subscriber struct {
	conn *websocket.Conn
	send chan mess.Stats
	done chan struct{}
	once sync.Once
}

func (s *subscriber) stop() {
	s.once.Do(func() { close(s.done) })
}

// NewHub creates an empty hub. A nil logger discards output.
func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		logger:  logger,
		clients: make(map[*subscriber]struct{}),
	}
}

// Publish queues stats for every subscriber. A subscriber whose queue is
// full misses this update; counts are cumulative so the next one catches it
// up.
func (h *Hub) Publish(_ mess.Vote, stats mess.Stats) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for s := range h.clients {
		select {
		case s.send <- stats:
		default:
			h.logger.Debug("stats subscriber lagging, update dropped")
		}
	}
}

// Len returns the number of connected subscribers.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every subscriber and rejects new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for s := range h.clients {
		s.stop()
	}
}

// serve upgrades the request and streams stats to the client, starting with
// initial, until either side goes away.
func (h *Hub) serve(w http.ResponseWriter, r *http.Request, initial mess.Stats) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	s := &subscriber{
		conn: conn,
		send: make(chan mess.Stats, sendBuffer),
		done: make(chan struct{}),
	}
	s.send <- initial

	if !h.add(s) {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"),
			time.Now().Add(writeTimeout))
		return ErrHubClosed
	}
	defer h.remove(s)

	go s.readLoop()
	return s.writeLoop()
}

func (h *Hub) add(s *subscriber) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[s] = struct{}{}
	return true
}

func (h *Hub) remove(s *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, s)
}

// readLoop drains client frames so control messages are handled, and stops
// the subscriber once the connection fails.
func (s *subscriber) readLoop() {
	defer s.stop()
	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (s *subscriber) writeLoop() error {
	for {
		select {
		case stats := <-s.send:
			b, err := json.Marshal(stats)
			if err != nil {
				return err
			}
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := s.conn.WriteMessage(websocket.TextMessage, b); err != nil {
				return err
			}
		case <-s.done:
			_ = s.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeTimeout))
			return nil
		}
	}
}
