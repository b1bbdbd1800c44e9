package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestNilRecorderMethodsAreNoOps(t *testing.T) {
	var r *Recorder
	r.ObserveTick()
	r.ObserveMicrotick("E")
	r.ObservePsiFired("standard")
	r.ObserveEngineFailure()
	r.ObserveKoppaStackDepth(3)
}

func TestNewRecorderRegistersOnceAcrossCalls(t *testing.T) {
	reg := prometheus.NewRegistry()

	first := NewRecorder(reg)
	second := NewRecorder(reg)

	if first != second {
		t.Fatal("NewRecorder should return the same shared Recorder on repeated calls")
	}

	first.ObserveTick()
	first.ObserveMicrotick("M")
	first.ObservePsiFired("triple")
	first.ObserveEngineFailure()
	first.ObserveKoppaStackDepth(2)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}
	if len(families) != 5 {
		t.Fatalf("got %d registered metric families, want 5", len(families))
	}
}
