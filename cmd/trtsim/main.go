// Command trtsim is a thin demonstration entrypoint for the simulator
// core: it loads a Config from a JSON file, runs the tick loop, and
// writes events.csv/values.csv (or streams observations when --stream
// is set). CLI ergonomics are explicitly out of scope for the core
// itself (spec.md §1); this wrapper exists only to make the core
// runnable from a shell.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/ncruces/go-strftime"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rigbyspace/operation-pretzel/internal/metrics"
	"github.com/rigbyspace/operation-pretzel/internal/simulate"
	"github.com/rigbyspace/operation-pretzel/internal/trtsconfig"
)

func setupLogging() {
	if isatty.IsTerminal(os.Stdout.Fd()) {
		slog.SetDefault(slog.New(tint.NewHandler(os.Stdout, &tint.Options{
			Level:      slog.LevelInfo,
			TimeFormat: "15:04:05",
		})))
		return
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))
}

func main() {
	setupLogging()

	configPath := flag.String("config", "trtsim.json", "path to the simulation config JSON file")
	stream := flag.Bool("stream", false, "run without writing CSV files, logging only the observation count")
	watch := flag.Bool("watch", false, "re-run the simulation whenever the config file changes")
	metricsAddr := flag.String("metrics-addr", "", "if set, serve Prometheus metrics on this address (e.g. :2112)")
	archive := flag.Bool("archive", false, "name a timestamped run marker for this invocation")
	flag.Parse()

	if *archive {
		stamp := strftime.Format("%Y%m%d-%H%M%S", time.Now())
		slog.Info("run archive marker", "stamp", stamp)
	}

	var rec *metrics.Recorder
	if *metricsAddr != "" {
		rec = metrics.NewRecorder(prometheus.DefaultRegisterer)
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			slog.Info("serving metrics", "addr", *metricsAddr)
			if err := http.ListenAndServe(*metricsAddr, mux); err != nil {
				slog.Error("metrics server stopped", "error", err)
			}
		}()
	}

	runOnce := func(cfg *trtsconfig.Config) {
		slog.Info("running simulation", "ticks", humanize.Comma(int64(cfg.Ticks)))
		if *stream {
			count := 0
			simulate.SimulateStream(cfg, rec, func(obs simulate.Observation) {
				count++
			})
			slog.Info("stream complete", "observations", humanize.Comma(int64(count)))
			return
		}
		if err := simulate.Simulate(cfg, rec); err != nil {
			slog.Error("simulate failed", "error", err)
			os.Exit(1)
		}
	}

	cfg, err := trtsconfig.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "trtsim: loading config %s: %v\n", *configPath, err)
		os.Exit(1)
	}
	runOnce(cfg)

	if *watch {
		stop := make(chan struct{})
		defer close(stop)
		err := trtsconfig.Watch(*configPath, stop, func(cfg *trtsconfig.Config, err error) {
			if err != nil {
				slog.Error("config reload failed", "error", err)
				return
			}
			slog.Info("config changed, re-running simulation")
			runOnce(cfg)
		})
		if err != nil {
			slog.Error("watch failed", "error", err)
			os.Exit(1)
		}
	}
}
