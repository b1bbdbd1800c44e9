// Package simulate drives the 11-microtick-per-tick phase schedule over
// a Config and State, emitting one Observation per microtick. See
// spec.md §4.7.
package simulate

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rigbyspace/operation-pretzel/internal/engine"
	"github.com/rigbyspace/operation-pretzel/internal/koppa"
	"github.com/rigbyspace/operation-pretzel/internal/metrics"
	"github.com/rigbyspace/operation-pretzel/internal/numtheory"
	"github.com/rigbyspace/operation-pretzel/internal/psi"
	"github.com/rigbyspace/operation-pretzel/internal/ratiowindow"
	"github.com/rigbyspace/operation-pretzel/internal/state"
	"github.com/rigbyspace/operation-pretzel/internal/trtsconfig"
)

// Observation is the immutable per-microtick report handed to an
// Observer, per spec.md §6.
type Observation struct {
	Tick      uint64
	Microtick int
	Phase     byte // 'E', 'M', or 'R'

	RhoEvent       bool
	PsiFired       bool
	MuZero         bool
	ForcedEmission bool
	RatioTriggered bool
	TriplePsi      bool
	DualEngine     bool
	RatioThreshold bool
	PsiStrength    bool
	SignFlip       bool

	KoppaSampleIndex int
	State            state.Snapshot
}

// Observer receives exactly one Observation per microtick, synchronously
// on the simulating goroutine. Per spec.md §5 it must not mutate Config
// or State and must return before the next microtick runs.
type Observer func(Observation)

// phaseForMicrotick maps 1..11 to 'E', 'M', or 'R', per spec.md §4.7.
func phaseForMicrotick(microtick int) byte {
	switch microtick {
	case 1, 4, 7, 10:
		return 'E'
	case 2, 5, 8, 11:
		return 'M'
	default:
		return 'R'
	}
}

// patternConfig narrows a trtsconfig.Config to the view numtheory needs.
func patternConfig(cfg *trtsconfig.Config) numtheory.PatternConfig {
	return numtheory.PatternConfig{
		TwinPrimeTrigger:    cfg.TwinPrimeTrigger,
		FibonacciTrigger:    cfg.FibonacciTrigger,
		PerfectPowerTrigger: cfg.PerfectPowerTrigger,
	}
}

// runMicrotick executes one microtick in place on s and returns the
// Observation to emit.
func runMicrotick(cfg *trtsconfig.Config, s *state.State, rec *metrics.Recorder, microtick int) Observation {
	phase := phaseForMicrotick(microtick)
	s.ClearMicrotickFlags()

	obs := Observation{
		Tick:      s.Tick,
		Microtick: microtick,
		Phase:     phase,
	}

	switch phase {
	case 'E':
		s.Epsilon = s.Upsilon.Copy()

		ok, signFlipped := engine.Step(cfg, s, microtick)
		obs.SignFlip = signFlipped
		rec.ObserveMicrotick("E")
		if !ok {
			rec.ObserveEngineFailure()
		}

		primeTarget := s.Epsilon
		if cfg.PrimeTarget == trtsconfig.PrimeOnNewUpsilon {
			primeTarget = s.Upsilon
		}
		if numtheory.HasPatternComponent(primeTarget.Num, primeTarget.Den, patternConfig(cfg)) {
			s.RhoPending = true
			s.RhoLatched = true
			obs.RhoEvent = true
		} else {
			s.RhoPending = false
			s.RhoLatched = false
		}

		if microtick == 10 {
			obs.ForcedEmission = true
			hasPattern := numtheory.HasPatternComponent(primeTarget.Num, primeTarget.Den, patternConfig(cfg))
			if hasPattern || cfg.Mt10Behavior == trtsconfig.Mt10ForcedPsi {
				s.RhoPending = true
				s.RhoLatched = true
			}
		}

	case 'M':
		obs.MuZero = s.Beta.Num.Sign() == 0

		allowStack := koppa.StackAllowsPsi(cfg, s)
		requestPsi := psi.ShouldFire(cfg, s)

		if ratiowindow.InRange(cfg, s.Upsilon, s.Beta) {
			requestPsi = true
			obs.RatioTriggered = true
			s.RatioTriggeredRecent = true
		}
		if ratiowindow.ThresholdOutside(cfg, s.Upsilon, s.Beta) {
			requestPsi = true
			obs.RatioThreshold = true
			s.RatioThresholdRecent = true
		}

		if requestPsi && allowStack {
			obs.PsiFired = psi.Fire(cfg, s)
			obs.TriplePsi = s.PsiTripleRecent
			obs.PsiStrength = s.PsiStrengthApplied
			if obs.PsiFired {
				rec.ObservePsiFired(psiVariant(s))
			}
		} else {
			s.PsiRecent = false
		}

		koppa.Accrue(cfg, s, obs.PsiFired, true, microtick)
		s.RhoLatched = false
		rec.ObserveMicrotick("M")

	case 'R':
		koppa.Accrue(cfg, s, false, false, microtick)
		s.PsiRecent = false
		s.RhoLatched = false
		rec.ObserveMicrotick("R")
	}

	obs.DualEngine = s.DualEngineLastStep
	obs.KoppaSampleIndex = s.KoppaSampleIndex
	rec.ObserveKoppaStackDepth(s.KoppaStackSize)
	obs.State = s.Snapshot()
	return obs
}

func psiVariant(s *state.State) string {
	if s.PsiTripleRecent {
		return "triple"
	}
	return "standard"
}

// Run advances cfg.Ticks ticks from a freshly-seeded State, invoking
// observe once per microtick. rec may be nil.
func Run(cfg *trtsconfig.Config, rec *metrics.Recorder, observe Observer) {
	runID := uuid.NewString()
	start := time.Now()
	slog.Info("simulation started", "run_id", runID, "ticks", cfg.Ticks)

	s := state.New(cfg)
	for tick := uint64(1); tick <= cfg.Ticks; tick++ {
		s.Tick = tick
		for microtick := 1; microtick <= 11; microtick++ {
			obs := runMicrotick(cfg, s, rec, microtick)
			observe(obs)
		}
		rec.ObserveTick()
	}

	slog.Info("simulation finished", "run_id", runID, "elapsed", time.Since(start))
}
