package cmd

import (
	"testing"
	"time"

	"github.com/go-escapement/escapement/cmd/escapement/internal/config"
)

func TestParseRunArgs_Defaults(t *testing.T) {
	opts, err := parseRunArgs(nil, (&config.Config{}).Resolved())
	if err != nil {
		t.Fatal(err)
	}
	if opts.rate != 0 || opts.debug || opts.metrics != "" || opts.quiet {
		t.Errorf("unexpected defaults: %+v", opts)
	}
}

func TestParseRunArgs_Flags(t *testing.T) {
	args := []string{"--rate", "50", "--refresh", "90", "--debug", "9000", "--metrics", ":9090", "--duration", "30s", "--quiet"}
	opts, err := parseRunArgs(args, (&config.Config{}).Resolved())
	if err != nil {
		t.Fatal(err)
	}
	if opts.rate != 50 || opts.refresh != 90 {
		t.Errorf("rates: %v/%v", opts.rate, opts.refresh)
	}
	if !opts.debug || opts.port != 9000 {
		t.Errorf("debug: %v/%d", opts.debug, opts.port)
	}
	if opts.metrics != ":9090" {
		t.Errorf("metrics: %q", opts.metrics)
	}
	if opts.duration != 30*time.Second {
		t.Errorf("duration: %v", opts.duration)
	}
	if !opts.quiet {
		t.Error("quiet not set")
	}
}

func TestParseRunArgs_DebugWithoutPort(t *testing.T) {
	opts, err := parseRunArgs([]string{"--debug", "--quiet"}, (&config.Config{}).Resolved())
	if err != nil {
		t.Fatal(err)
	}
	if !opts.debug || opts.port != defaultDebugPort {
		t.Errorf("expected default debug port, got %+v", opts)
	}
	if !opts.quiet {
		t.Error("flag after --debug was consumed as a port")
	}
}

func TestParseRunArgs_FileThenFlagOverride(t *testing.T) {
	resolved := (&config.Config{
		Engine: config.EngineConfig{MaxRateHz: 30},
		Debug:  config.DebugConfig{Enabled: true, Port: 8000},
	}).Resolved()

	opts, err := parseRunArgs([]string{"--rate", "50"}, resolved)
	if err != nil {
		t.Fatal(err)
	}
	if opts.rate != 50 {
		t.Errorf("flag did not override file rate: %v", opts.rate)
	}
	if !opts.debug || opts.port != 8000 {
		t.Errorf("file debug settings lost: %+v", opts)
	}
}

func TestParseRunArgs_Errors(t *testing.T) {
	for _, args := range [][]string{
		{"--rate"},
		{"--rate", "fast"},
		{"--duration", "soon"},
		{"--bogus"},
	} {
		if _, err := parseRunArgs(args, (&config.Config{}).Resolved()); err == nil {
			t.Errorf("%v: expected error", args)
		}
	}
}
