package simulate

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/rigbyspace/operation-pretzel/internal/metrics"
	"github.com/rigbyspace/operation-pretzel/internal/trtsconfig"
)

// Simulate runs the loop and writes events.csv and values.csv to the
// working directory, per spec.md §6. rec may be nil.
func Simulate(cfg *trtsconfig.Config, rec *metrics.Recorder) error {
	eventsFile, err := os.Create("events.csv")
	if err != nil {
		return fmt.Errorf("simulate: creating events.csv: %w", err)
	}
	defer eventsFile.Close()

	valuesFile, err := os.Create("values.csv")
	if err != nil {
		return fmt.Errorf("simulate: creating values.csv: %w", err)
	}
	defer valuesFile.Close()

	writers, err := newCSVWriters(eventsFile, valuesFile)
	if err != nil {
		return fmt.Errorf("simulate: writing csv headers: %w", err)
	}

	var writeErr error
	Run(cfg, rec, func(obs Observation) {
		if writeErr != nil {
			return
		}
		writeErr = writers.writeObservation(obs)
	})
	if writeErr != nil {
		return fmt.Errorf("simulate: writing csv row: %w", writeErr)
	}

	if err := writers.flush(); err != nil {
		return fmt.Errorf("simulate: flushing csv: %w", err)
	}

	slog.Info("simulate wrote csv output", "events", "events.csv", "values", "values.csv")
	return nil
}

// SimulateStream runs the loop without any file I/O, invoking observe
// once per microtick. rec may be nil.
func SimulateStream(cfg *trtsconfig.Config, rec *metrics.Recorder, observe Observer) {
	Run(cfg, rec, observe)
}
