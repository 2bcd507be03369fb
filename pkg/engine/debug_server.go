package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"
)

// debugServer manages the optional HTTP server for motion inspection.
// Endpoints:
//
//	GET /motion  latest emitted angles and phase
//	GET /frames  accepted-frame timing history and FPS
//	GET /stream  websocket feed of every emitted frame
//	GET /health  liveness check
type debugServer struct {
	mu       sync.Mutex
	server   *http.Server
	listener net.Listener
}

// start launches the server for c on the given port (0 = ephemeral).
// Returns the actual port.
func (d *debugServer) start(c *Controller, port int) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.server != nil {
		// Already running - return current port
		return d.listener.Addr().(*net.TCPAddr).Port, nil
	}

	// Bind listener first to fail fast on port conflicts
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return 0, fmt.Errorf("debug server listen: %w", err)
	}
	actualPort := listener.Addr().(*net.TCPAddr).Port

	mux := http.NewServeMux()
	mux.HandleFunc("/motion", c.handleMotion)
	mux.HandleFunc("/frames", c.handleFrames)
	mux.HandleFunc("/stream", c.stream.handle)
	mux.HandleFunc("/health", handleHealth)

	server := &http.Server{Handler: mux}
	d.server = server
	d.listener = listener

	go func() {
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			// Server failed - clear state so it can be restarted
			d.mu.Lock()
			d.server = nil
			d.listener = nil
			d.mu.Unlock()
			fmt.Printf("debug server error: %v\n", err)
		}
	}()

	return actualPort, nil
}

// stop shuts the server down gracefully.
func (d *debugServer) stop() {
	d.mu.Lock()
	server := d.server
	d.server = nil
	d.listener = nil
	d.mu.Unlock()

	if server == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	server.Shutdown(ctx)
}

// port returns the active listen port, or 0 when stopped.
func (d *debugServer) port() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.listener == nil {
		return 0
	}
	return d.listener.Addr().(*net.TCPAddr).Port
}

// handleMotion returns the latest emitted frame as JSON.
func (c *Controller) handleMotion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	frame, ok := c.Latest()
	if !ok {
		http.Error(w, "no frame emitted yet", http.StatusServiceUnavailable)
		return
	}

	data, err := json.MarshalIndent(frame, "", "  ")
	if err != nil {
		http.Error(w, fmt.Sprintf("json encode error: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

// frameReport is the /frames response shape.
type frameReport struct {
	FPS         float64   `json:"fps"`
	Accepted    uint64    `json:"accepted"`
	Rejected    uint64    `json:"rejected"`
	Subscribers int       `json:"streamSubscribers"`
	IntervalMs  []float64 `json:"intervalMs"`
}

// handleFrames returns accepted-frame timing diagnostics as JSON.
func (c *Controller) handleFrames(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	accepted, rejected := c.frameCounts()
	samples := c.timing.Snapshot()
	report := frameReport{
		FPS:         c.timing.FPS(),
		Accepted:    accepted,
		Rejected:    rejected,
		Subscribers: c.stream.subscriberCount(),
		IntervalMs:  make([]float64, len(samples)),
	}
	for i, sample := range samples {
		report.IntervalMs[i] = float64(sample) / float64(time.Millisecond)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(report)
}

// handleHealth returns a simple health check response.
func handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
