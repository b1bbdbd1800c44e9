package engine

import (
	"testing"

	"github.com/rigbyspace/operation-pretzel/internal/rational"
	"github.com/rigbyspace/operation-pretzel/internal/state"
	"github.com/rigbyspace/operation-pretzel/internal/trtsconfig"
)

func newTestState() *state.State {
	cfg := trtsconfig.Default()
	cfg.InitialUpsilon = rational.New(3, 5)
	cfg.InitialBeta = rational.New(5, 7)
	cfg.InitialKoppa = rational.New(1, 1)
	return state.New(cfg)
}

func TestStepAddMatchesWorkedExample(t *testing.T) {
	// spec.md §8 scenario 1: engine ADD yields
	// υ = 3/5 + 5/7 + 1/1 = 81/35.
	cfg := trtsconfig.Default()
	cfg.EngineMode = trtsconfig.EngineAdd

	s := newTestState()
	ok, flipped := Step(cfg, s, 1)
	if !ok {
		t.Fatal("ADD step should succeed")
	}
	if flipped {
		t.Fatal("no sign flip configured")
	}
	if !rational.Equal(s.Upsilon, rational.New(81, 35)) {
		t.Errorf("upsilon = %s, want 81/35", s.Upsilon)
	}
}

func TestStepSlideFailsOnZeroKoppa(t *testing.T) {
	// spec.md §8 scenario 2: SLIDE engine with koppa=0/1 fails (no-op).
	cfg := trtsconfig.Default()
	cfg.EngineMode = trtsconfig.EngineSlide

	s := newTestState()
	s.Koppa = rational.New(0, 1)
	before := s.Upsilon.Copy()

	ok, _ := Step(cfg, s, 1)
	if ok {
		t.Fatal("SLIDE with zero-numerator koppa should fail")
	}
	if !rational.Equal(s.Upsilon, before) {
		t.Fatal("state must be unchanged after a failed step")
	}
}

func TestAsymmetricCascadeOverridesByMicrotick(t *testing.T) {
	cfg := trtsconfig.Default()
	cfg.AsymmetricCascade = true

	s := newTestState()
	upsilonMode, betaMode := selectModes(cfg, s, 1)
	if upsilonMode != trtsconfig.TrackMulti || betaMode != trtsconfig.TrackAdd {
		t.Errorf("mt=1 cascade modes = (%v,%v), want (MULTI,ADD)", upsilonMode, betaMode)
	}

	upsilonMode, betaMode = selectModes(cfg, s, 7)
	if upsilonMode != trtsconfig.TrackSlide || betaMode != trtsconfig.TrackMulti {
		t.Errorf("mt=7 cascade modes = (%v,%v), want (SLIDE,MULTI)", upsilonMode, betaMode)
	}
}

func TestStackDepthOverride(t *testing.T) {
	cfg := trtsconfig.Default()
	cfg.StackDepthModes = true

	s := newTestState()
	s.KoppaStackSize = 0
	if mode, _ := selectModes(cfg, s, 1); mode != trtsconfig.TrackAdd {
		t.Errorf("depth 0 = %v, want ADD", mode)
	}
	s.KoppaStackSize = 3
	if mode, _ := selectModes(cfg, s, 1); mode != trtsconfig.TrackMulti {
		t.Errorf("depth 3 = %v, want MULTI", mode)
	}
	s.KoppaStackSize = 4
	if mode, _ := selectModes(cfg, s, 1); mode != trtsconfig.TrackSlide {
		t.Errorf("depth 4 = %v, want SLIDE", mode)
	}
}

func TestModularWrapNoOpWhenBetaZero(t *testing.T) {
	cfg := trtsconfig.Default()
	cfg.ModularWrap = true
	cfg.KoppaWrapThreshold = 1

	s := newTestState()
	s.Beta = rational.New(0, 1)
	s.Koppa = rational.New(100, 1)
	before := s.Koppa.Copy()

	Step(cfg, s, 1)

	if !rational.Equal(s.Koppa, before) {
		t.Fatal("modular wrap must be a no-op when beta is zero")
	}
}

func TestSignFlipAlwaysNegatesEveryStep(t *testing.T) {
	cfg := trtsconfig.Default()
	cfg.SignFlipMode = trtsconfig.SignFlipAlways

	s := newTestState()
	_, flipped := Step(cfg, s, 1)
	if !flipped {
		t.Fatal("SIGN_FLIP_ALWAYS should flip every step")
	}
	if s.Upsilon.Sign() >= 0 {
		t.Fatal("upsilon should be negative after SIGN_FLIP_ALWAYS")
	}
}

func TestSignFlipAlternateTogglesPolarity(t *testing.T) {
	cfg := trtsconfig.Default()
	cfg.SignFlipMode = trtsconfig.SignFlipAlternate

	s := newTestState()
	_, firstFlipped := Step(cfg, s, 1)
	_, secondFlipped := Step(cfg, s, 4)

	if !firstFlipped {
		t.Fatal("first step under ALTERNATE should flip")
	}
	if secondFlipped {
		t.Fatal("second step under ALTERNATE should not flip")
	}
}
