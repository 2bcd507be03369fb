package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/go-escapement/escapement/pkg/motion"
)

// FileName is the optional configuration file looked up in the working
// directory.
const FileName = "escapement.yaml"

// Config represents the optional escapement.yaml configuration.
type Config struct {
	Motion   MotionConfig   `yaml:"motion"`
	Engine   EngineConfig   `yaml:"engine"`
	Debug    DebugConfig    `yaml:"debug"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Snapshot SnapshotConfig `yaml:"snapshot"`
}

// MotionConfig tunes the second-hand physics. Zero values keep the
// defaults.
type MotionConfig struct {
	CreepDurationMs int     `yaml:"creepDurationMs,omitempty"`
	CreepAngle      float64 `yaml:"creepAngle,omitempty"`
	Overshoot       float64 `yaml:"overshoot,omitempty"`
	Recoil          float64 `yaml:"recoil,omitempty"`
}

// EngineConfig contains frame loop settings.
type EngineConfig struct {
	MaxRateHz float64 `yaml:"maxRateHz,omitempty"`
	RefreshHz float64 `yaml:"refreshHz,omitempty"`
}

// DebugConfig controls the HTTP debug server.
type DebugConfig struct {
	Enabled bool `yaml:"enabled,omitempty"`
	Port    int  `yaml:"port,omitempty"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Addr string `yaml:"addr,omitempty"`
}

// SnapshotConfig sets defaults for the snapshot command.
type SnapshotConfig struct {
	Out  string `yaml:"out,omitempty"`
	Size int    `yaml:"size,omitempty"`
}

// Resolved contains resolved configuration values ready to hand to the
// engine.
type Resolved struct {
	Physics      motion.Physics
	MaxRateHz    float64
	RefreshHz    float64
	DebugServer  bool
	DebugPort    int
	MetricsAddr  string
	SnapshotOut  string
	SnapshotSize int
}

// LoadOptional reads escapement.yaml from dir if present. A missing file is
// not an error; it yields an empty Config.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}

	return &cfg, nil
}

// Resolve loads escapement.yaml (if present) and resolves defaults.
func Resolve(dir string) (*Resolved, error) {
	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}
	return cfg.Resolved(), nil
}

// Resolved applies defaults to cfg. Sanity limits on the physics are left
// to motion.Physics.Normalized so the file and the API agree on them.
func (c *Config) Resolved() *Resolved {
	physics := motion.DefaultPhysics()
	if c.Motion.CreepDurationMs > 0 {
		physics.CreepDuration = time.Duration(c.Motion.CreepDurationMs) * time.Millisecond
	}
	if c.Motion.CreepAngle != 0 {
		physics.CreepAngle = c.Motion.CreepAngle
	}
	if c.Motion.Overshoot != 0 {
		physics.Overshoot = c.Motion.Overshoot
	}
	if c.Motion.Recoil != 0 {
		physics.Recoil = c.Motion.Recoil
	}

	return &Resolved{
		Physics:      physics.Normalized(),
		MaxRateHz:    c.Engine.MaxRateHz,
		RefreshHz:    c.Engine.RefreshHz,
		DebugServer:  c.Debug.Enabled,
		DebugPort:    c.Debug.Port,
		MetricsAddr:  c.Metrics.Addr,
		SnapshotOut:  c.Snapshot.Out,
		SnapshotSize: c.Snapshot.Size,
	}
}
