package engine_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/go-escapement/escapement/pkg/engine"
)

func TestStream_DeliversFrames(t *testing.T) {
	ctl, clk, sched := newDebugController(t)
	if err := ctl.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	port := ctl.DebugPort()
	if err := waitForServer(port, 2*time.Second); err != nil {
		t.Fatalf("server not ready: %v", err)
	}

	url := fmt.Sprintf("ws://localhost:%d/stream", port)
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	clk.SetTimeOfDay(10, 0, 15, 0)
	sched.Pump(0)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var frame engine.Frame
	if err := conn.ReadJSON(&frame); err != nil {
		t.Fatalf("read frame: %v", err)
	}
	if frame.Second != 92 || !frame.Tick {
		t.Errorf("unexpected streamed frame: %+v", frame)
	}
}

func TestStream_DroppedClientDoesNotBlockFrames(t *testing.T) {
	ctl, clk, sched := newDebugController(t)
	if err := ctl.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	port := ctl.DebugPort()
	if err := waitForServer(port, 2*time.Second); err != nil {
		t.Fatalf("server not ready: %v", err)
	}

	conn, _, err := websocket.DefaultDialer.Dial(fmt.Sprintf("ws://localhost:%d/stream", port), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	conn.Close()

	// Frames keep flowing after the subscriber disappears.
	clk.SetTimeOfDay(10, 0, 15, 0)
	sched.Pump(0)
	clk.SetTimeOfDay(10, 0, 15, 100)
	sched.Pump(100 * time.Millisecond)

	if _, ok := ctl.Latest(); !ok {
		t.Error("no frame emitted after subscriber dropped")
	}
}
