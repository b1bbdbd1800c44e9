package state

import (
	"testing"

	"github.com/rigbyspace/operation-pretzel/internal/rational"
	"github.com/rigbyspace/operation-pretzel/internal/trtsconfig"
)

func newTestConfig() *trtsconfig.Config {
	cfg := trtsconfig.Default()
	cfg.InitialUpsilon = rational.New(3, 5)
	cfg.InitialBeta = rational.New(5, 7)
	cfg.InitialKoppa = rational.New(1, 1)
	return cfg
}

func TestNewSeedsPerLifecycleRule(t *testing.T) {
	cfg := newTestConfig()
	s := New(cfg)

	if !rational.Equal(s.Epsilon, cfg.InitialUpsilon) {
		t.Errorf("epsilon should seed from initial upsilon, got %s", s.Epsilon)
	}
	if !rational.Equal(s.PreviousUpsilon, cfg.InitialUpsilon) {
		t.Errorf("previous_upsilon should seed from initial upsilon, got %s", s.PreviousUpsilon)
	}
	if !rational.Equal(s.PreviousBeta, cfg.InitialBeta) {
		t.Errorf("previous_beta should seed from initial beta, got %s", s.PreviousBeta)
	}
	if s.KoppaStackSize != 0 {
		t.Errorf("koppa stack should start empty, got size %d", s.KoppaStackSize)
	}
	if s.KoppaSampleIndex != -1 {
		t.Errorf("koppa sample index should start at -1, got %d", s.KoppaSampleIndex)
	}
}

func TestPushKoppaStackGrowsThenShifts(t *testing.T) {
	cfg := newTestConfig()
	s := New(cfg)

	for i := int64(1); i <= KoppaStackCapacity; i++ {
		s.PushKoppaStack(rational.New(i, 1))
	}
	if s.KoppaStackSize != KoppaStackCapacity {
		t.Fatalf("stack size = %d, want %d", s.KoppaStackSize, KoppaStackCapacity)
	}

	s.PushKoppaStack(rational.New(99, 1))
	if s.KoppaStackSize != KoppaStackCapacity {
		t.Fatalf("stack size after overflow push = %d, want %d (bounded)", s.KoppaStackSize, KoppaStackCapacity)
	}
	if !rational.Equal(s.KoppaStack[0], rational.New(2, 1)) {
		t.Errorf("oldest entry should have been discarded, stack[0] = %s", s.KoppaStack[0])
	}
	if !rational.Equal(s.KoppaStack[KoppaStackCapacity-1], rational.New(99, 1)) {
		t.Errorf("newest entry should land at the last index, got %s", s.KoppaStack[KoppaStackCapacity-1])
	}
}

func TestSnapshotIsIndependentCopy(t *testing.T) {
	cfg := newTestConfig()
	s := New(cfg)
	snap := s.Snapshot()

	s.Upsilon.Num.SetInt64(12345)
	if rational.Equal(snap.Upsilon, s.Upsilon) {
		t.Fatal("mutating live state must not affect a prior snapshot")
	}
}

func TestClearMicrotickFlagsResetsRecencyAndSample(t *testing.T) {
	cfg := newTestConfig()
	s := New(cfg)
	s.RatioTriggeredRecent = true
	s.PsiTripleRecent = true
	s.DualEngineLastStep = true
	s.RatioThresholdRecent = true
	s.PsiStrengthApplied = true
	s.KoppaSampleIndex = 2

	s.ClearMicrotickFlags()

	if s.RatioTriggeredRecent || s.PsiTripleRecent || s.DualEngineLastStep || s.RatioThresholdRecent || s.PsiStrengthApplied {
		t.Fatal("ClearMicrotickFlags should clear all per-microtick recency flags")
	}
	if s.KoppaSampleIndex != -1 {
		t.Errorf("koppa sample index should reset to -1, got %d", s.KoppaSampleIndex)
	}
}
