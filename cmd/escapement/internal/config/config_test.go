package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadOptional_MissingFile(t *testing.T) {
	cfg, err := LoadOptional(t.TempDir())
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	resolved := cfg.Resolved()
	if resolved.Physics.CreepDuration != 150*time.Millisecond {
		t.Errorf("expected default creep duration, got %v", resolved.Physics.CreepDuration)
	}
	if resolved.Physics.Overshoot != 2 || resolved.Physics.Recoil != -1.5 {
		t.Errorf("unexpected default physics: %+v", resolved.Physics)
	}
	if resolved.DebugServer {
		t.Error("debug server enabled by default")
	}
}

func TestLoadOptional_ParsesFile(t *testing.T) {
	dir := t.TempDir()
	data := []byte(`motion:
  creepDurationMs: 300
  creepAngle: 4
  overshoot: 1
  recoil: -0.5
engine:
  maxRateHz: 50
debug:
  enabled: true
  port: 8973
metrics:
  addr: ":9090"
snapshot:
  out: face.png
  size: 256
`)
	if err := os.WriteFile(filepath.Join(dir, FileName), data, 0o644); err != nil {
		t.Fatal(err)
	}

	resolved, err := Resolve(dir)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved.Physics.CreepDuration != 300*time.Millisecond {
		t.Errorf("creep duration: %v", resolved.Physics.CreepDuration)
	}
	if resolved.Physics.CreepAngle != 4 || resolved.Physics.Overshoot != 1 || resolved.Physics.Recoil != -0.5 {
		t.Errorf("physics: %+v", resolved.Physics)
	}
	if resolved.MaxRateHz != 50 {
		t.Errorf("max rate: %v", resolved.MaxRateHz)
	}
	if !resolved.DebugServer || resolved.DebugPort != 8973 {
		t.Errorf("debug: %v/%d", resolved.DebugServer, resolved.DebugPort)
	}
	if resolved.MetricsAddr != ":9090" {
		t.Errorf("metrics addr: %q", resolved.MetricsAddr)
	}
	if resolved.SnapshotOut != "face.png" || resolved.SnapshotSize != 256 {
		t.Errorf("snapshot: %q/%d", resolved.SnapshotOut, resolved.SnapshotSize)
	}
}

func TestLoadOptional_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte("motion: ["), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadOptional(dir); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestResolved_NormalizesPhysics(t *testing.T) {
	cfg := &Config{Motion: MotionConfig{Recoil: 1.5, CreepAngle: -3}}
	resolved := cfg.Resolved()
	if resolved.Physics.Recoil != -1.5 {
		t.Errorf("positive recoil not normalized: %v", resolved.Physics.Recoil)
	}
	if resolved.Physics.CreepAngle != 0 {
		t.Errorf("negative creep angle not clamped: %v", resolved.Physics.CreepAngle)
	}
}
