// Package state holds the simulator's mutable State container: the
// three primary rationals (υ, β, ϙ), their snapshots and deltas, the
// ϙ-stack, the ε–φ triangle ratios, and the per-microtick recency flags.
// See spec.md §3.
package state

import (
	"github.com/rigbyspace/operation-pretzel/internal/rational"
	"github.com/rigbyspace/operation-pretzel/internal/trtsconfig"
)

// KoppaStackCapacity is the bound on the ϙ-stack ring (spec.md §3).
const KoppaStackCapacity = 4

// State is the full mutable state of one simulation run. Every rational
// field is an independent Rational value — no sharing of *big.Int
// pointers across fields, so mutating one never aliases another.
type State struct {
	Upsilon rational.Rational
	Beta    rational.Rational
	Koppa   rational.Rational

	Epsilon rational.Rational // snapshot of υ at the start of every E phase
	Phi     rational.Rational // snapshot of υ immediately before ψ

	PreviousUpsilon rational.Rational
	PreviousBeta    rational.Rational

	DeltaUpsilon rational.Rational
	DeltaBeta    rational.Rational

	TrianglePhiOverEpsilon   rational.Rational
	TrianglePrevOverPhi      rational.Rational
	TriangleEpsilonOverPrev  rational.Rational

	KoppaStack     [KoppaStackCapacity]rational.Rational
	KoppaStackSize int

	KoppaSample      rational.Rational
	KoppaSampleIndex int // -1 sentinel

	RhoPending        bool
	RhoLatched        bool
	PsiRecent         bool
	RatioTriggeredRecent bool
	PsiTripleRecent   bool
	DualEngineLastStep bool
	RatioThresholdRecent bool
	PsiStrengthApplied bool
	SignFlipPolarity  bool

	Tick uint64 // current tick number, for Fibonacci-tick gating
}

// New creates a fresh State seeded from cfg, per spec.md §3's lifecycle
// rule: ε=υ₀, φ=β₀, previous_υ=υ₀, previous_β=β₀, stack empty, all flags
// false, sample index = -1, polarity = false.
func New(cfg *trtsconfig.Config) *State {
	s := &State{
		Upsilon:          cfg.InitialUpsilon.Copy(),
		Beta:             cfg.InitialBeta.Copy(),
		Koppa:            cfg.InitialKoppa.Copy(),
		Epsilon:          cfg.InitialUpsilon.Copy(),
		Phi:              cfg.InitialBeta.Copy(),
		PreviousUpsilon:  cfg.InitialUpsilon.Copy(),
		PreviousBeta:     cfg.InitialBeta.Copy(),
		DeltaUpsilon:     rational.Zero(),
		DeltaBeta:        rational.Zero(),
		TrianglePhiOverEpsilon:  rational.Zero(),
		TrianglePrevOverPhi:     rational.Zero(),
		TriangleEpsilonOverPrev: rational.Zero(),
		KoppaSample:      cfg.InitialKoppa.Copy(),
		KoppaSampleIndex: -1,
	}
	for i := range s.KoppaStack {
		s.KoppaStack[i] = rational.Zero()
	}
	return s
}

// ClearMicrotickFlags clears the per-microtick recency/sample flags at
// the top of every microtick, per spec.md §4.7.
func (s *State) ClearMicrotickFlags() {
	s.RatioTriggeredRecent = false
	s.PsiTripleRecent = false
	s.DualEngineLastStep = false
	s.RatioThresholdRecent = false
	s.PsiStrengthApplied = false
	s.KoppaSample = s.Koppa.Copy()
	s.KoppaSampleIndex = -1
}

// PushKoppaStack pushes value onto the bounded ring: if full, the oldest
// entry is discarded and value lands at index 3; otherwise value is
// appended and size grows. Per spec.md §4.5.
func (s *State) PushKoppaStack(value rational.Rational) {
	if s.KoppaStackSize == KoppaStackCapacity {
		for i := 1; i < KoppaStackCapacity; i++ {
			s.KoppaStack[i-1] = s.KoppaStack[i]
		}
		s.KoppaStack[KoppaStackCapacity-1] = value.Copy()
		return
	}
	s.KoppaStack[s.KoppaStackSize] = value.Copy()
	s.KoppaStackSize++
}

// Snapshot is an immutable deep copy of State, handed to observers so
// they can never mutate or alias live simulation state (spec.md §5).
type Snapshot struct {
	Upsilon, Beta, Koppa                                    rational.Rational
	Epsilon, Phi                                             rational.Rational
	PreviousUpsilon, PreviousBeta                            rational.Rational
	DeltaUpsilon, DeltaBeta                                  rational.Rational
	TrianglePhiOverEpsilon, TrianglePrevOverPhi, TriangleEpsilonOverPrev rational.Rational
	KoppaStack                                               [KoppaStackCapacity]rational.Rational
	KoppaStackSize                                           int
	KoppaSample                                              rational.Rational
	KoppaSampleIndex                                         int
}

// Snapshot returns a deep-copy view of s suitable for handing to an
// observer.
func (s *State) Snapshot() Snapshot {
	snap := Snapshot{
		Upsilon:                 s.Upsilon.Copy(),
		Beta:                    s.Beta.Copy(),
		Koppa:                   s.Koppa.Copy(),
		Epsilon:                 s.Epsilon.Copy(),
		Phi:                     s.Phi.Copy(),
		PreviousUpsilon:         s.PreviousUpsilon.Copy(),
		PreviousBeta:            s.PreviousBeta.Copy(),
		DeltaUpsilon:            s.DeltaUpsilon.Copy(),
		DeltaBeta:               s.DeltaBeta.Copy(),
		TrianglePhiOverEpsilon:  s.TrianglePhiOverEpsilon.Copy(),
		TrianglePrevOverPhi:     s.TrianglePrevOverPhi.Copy(),
		TriangleEpsilonOverPrev: s.TriangleEpsilonOverPrev.Copy(),
		KoppaStackSize:          s.KoppaStackSize,
		KoppaSample:             s.KoppaSample.Copy(),
		KoppaSampleIndex:        s.KoppaSampleIndex,
	}
	for i := range s.KoppaStack {
		snap.KoppaStack[i] = s.KoppaStack[i].Copy()
	}
	return snap
}
