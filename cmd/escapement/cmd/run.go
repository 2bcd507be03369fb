package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-escapement/escapement/cmd/escapement/internal/config"
	"github.com/go-escapement/escapement/pkg/engine"
	"github.com/go-escapement/escapement/pkg/metrics"
	"github.com/go-escapement/escapement/pkg/motion"
)

func init() {
	RegisterCommand(&Command{
		Name:  "run",
		Short: "Run the frame loop with a live readout",
		Long: `Run the clock motion frame loop until interrupted.

Every tick prints the current hand angles and phase to stdout. Settings
come from escapement.yaml in the working directory when present; flags
override the file.

Flags:
  --rate HZ          Logical frame rate cap (default 60)
  --refresh HZ       Emulated display refresh rate (default 120)
  --debug [PORT]     Expose the HTTP debug server (default port 8973)
  --metrics ADDR     Expose Prometheus metrics on ADDR (e.g. :9090)
  --duration D       Stop after a Go duration (e.g. 30s); default runs forever
  --quiet            Suppress the per-tick readout`,
		Usage: "escapement run [--rate HZ] [--refresh HZ] [--debug [PORT]] [--metrics ADDR] [--duration D] [--quiet]",
		Run:   runRun,
	})
}

type runOptions struct {
	rate     float64
	refresh  float64
	debug    bool
	port     int
	metrics  string
	duration time.Duration
	quiet    bool
}

const defaultDebugPort = 8973

func runRun(args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	resolved, err := config.Resolve(cwd)
	if err != nil {
		return err
	}

	opts, err := parseRunArgs(args, resolved)
	if err != nil {
		return err
	}

	scheduler := engine.NewTickerScheduler(opts.refresh)
	defer scheduler.Close()

	physics := resolved.Physics
	ctl := engine.New(engine.Options{
		Physics:      &physics,
		MaxFrameRate: opts.rate,
		Scheduler:    scheduler,
		Diagnostics: &engine.DiagnosticsConfig{
			DebugServer:     opts.debug,
			DebugServerPort: opts.port,
		},
	})

	if !opts.quiet {
		ctl.AddListener(func(f engine.Frame) {
			if !f.Tick {
				return
			}
			now := motion.Now()
			fmt.Printf("%02d:%02d:%02d  hour %6.2f°  minute %6.2f°  second %6.2f°  %s\n",
				now.Hour(), now.Minute(), now.Second(), f.Hour, f.Minute, f.Second, f.Phase)
		})
	}

	if err := ctl.Start(); err != nil {
		return err
	}
	defer ctl.Stop()

	if opts.debug {
		fmt.Printf("debug server on http://localhost:%d (/motion /frames /stream /health)\n", ctl.DebugPort())
	}

	var metricsServer *metrics.Server
	if opts.metrics != "" {
		metricsServer = metrics.NewServer(opts.metrics)
		go func() {
			if err := metricsServer.Start(); err != nil {
				fmt.Fprintf(os.Stderr, "metrics server error: %v\n", err)
			}
		}()
		fmt.Printf("metrics on http://localhost%s/metrics\n", opts.metrics)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if opts.duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.duration)
		defer cancel()
	}
	<-ctx.Done()

	if metricsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		metricsServer.Shutdown(shutdownCtx)
	}

	fmt.Println("\nstopped")
	return nil
}

// parseRunArgs applies flags on top of the resolved file configuration.
func parseRunArgs(args []string, resolved *config.Resolved) (*runOptions, error) {
	opts := &runOptions{
		rate:    resolved.MaxRateHz,
		refresh: resolved.RefreshHz,
		debug:   resolved.DebugServer,
		port:    resolved.DebugPort,
		metrics: resolved.MetricsAddr,
	}
	if opts.debug && opts.port == 0 {
		opts.port = defaultDebugPort
	}

	for i := 0; i < len(args); i++ {
		switch arg := args[i]; arg {
		case "--rate":
			value, err := nextValue(args, &i, arg)
			if err != nil {
				return nil, err
			}
			rate, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return nil, fmt.Errorf("--rate: invalid value %q", value)
			}
			opts.rate = rate
		case "--refresh":
			value, err := nextValue(args, &i, arg)
			if err != nil {
				return nil, err
			}
			refresh, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return nil, fmt.Errorf("--refresh: invalid value %q", value)
			}
			opts.refresh = refresh
		case "--debug":
			opts.debug = true
			if opts.port == 0 {
				opts.port = defaultDebugPort
			}
			// Optional port value
			if i+1 < len(args) {
				if port, err := strconv.Atoi(args[i+1]); err == nil {
					opts.port = port
					i++
				}
			}
		case "--metrics":
			value, err := nextValue(args, &i, arg)
			if err != nil {
				return nil, err
			}
			opts.metrics = value
		case "--duration":
			value, err := nextValue(args, &i, arg)
			if err != nil {
				return nil, err
			}
			d, err := time.ParseDuration(value)
			if err != nil {
				return nil, fmt.Errorf("--duration: invalid value %q", value)
			}
			opts.duration = d
		case "--quiet":
			opts.quiet = true
		default:
			return nil, fmt.Errorf("unknown flag: %s", arg)
		}
	}
	return opts, nil
}

func nextValue(args []string, i *int, flag string) (string, error) {
	if *i+1 >= len(args) {
		return "", fmt.Errorf("%s requires a value", flag)
	}
	*i++
	return args[*i], nil
}
