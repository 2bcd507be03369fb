package engine

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/go-escapement/escapement/pkg/errors"
)

const streamWriteTimeout = time.Second

// streamHub fans emitted frames out to websocket subscribers. A remote
// rendering collaborator (a browser dial, a network display) connects to
// /stream on the debug server and receives one JSON frame per accepted
// frame. Slow or broken subscribers are dropped rather than allowed to
// stall the frame loop.
type streamHub struct {
	upgrader websocket.Upgrader

	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

func newStreamHub() *streamHub {
	return &streamHub{
		upgrader: websocket.Upgrader{
			// Diagnostic endpoint; same-origin policy is the deployment's
			// concern, not this hub's.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		conns: make(map[*websocket.Conn]struct{}),
	}
}

// handle upgrades an HTTP request into a frame subscription.
func (h *streamHub) handle(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		errors.Report(&errors.EscapementError{
			Op:   "engine.streamHub.handle",
			Kind: errors.KindStream,
			Err:  err,
		})
		return
	}

	h.mu.Lock()
	h.conns[conn] = struct{}{}
	h.mu.Unlock()

	// Drain the connection so close frames are processed; subscribers do
	// not send application data.
	go func() {
		for {
			if _, _, err := conn.NextReader(); err != nil {
				h.drop(conn)
				return
			}
		}
	}()
}

// broadcast writes frame to every subscriber, dropping the ones that fail.
func (h *streamHub) broadcast(frame Frame) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.conns) == 0 {
		return
	}
	for conn := range h.conns {
		conn.SetWriteDeadline(time.Now().Add(streamWriteTimeout))
		if err := conn.WriteJSON(frame); err != nil {
			delete(h.conns, conn)
			conn.Close()
		}
	}
}

// drop removes and closes one subscriber.
func (h *streamHub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	if _, ok := h.conns[conn]; ok {
		delete(h.conns, conn)
	}
	h.mu.Unlock()
	conn.Close()
}

// closeAll disconnects every subscriber, typically at controller stop.
func (h *streamHub) closeAll() {
	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.conns))
	for conn := range h.conns {
		conns = append(conns, conn)
	}
	h.conns = make(map[*websocket.Conn]struct{})
	h.mu.Unlock()

	for _, conn := range conns {
		conn.Close()
	}
}

// subscriberCount reports the number of connected stream subscribers.
func (h *streamHub) subscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}
