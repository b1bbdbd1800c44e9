package koppa

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

func TestAccrueDumpOnPsi(t *testing.T) {
	cfg := trtsconfig.Default()
	cfg.KoppaMode = trtsconfig.KoppaModeDump
	cfg.KoppaTrigger = trtsconfig.KoppaTriggerOnPsi

	s := newTestState()
	Accrue(cfg, s, true, true, 2)

	want := rational.Add(rational.Zero(), rational.Add(s.Upsilon, s.Beta))
	if !rational.Equal(s.Koppa, want) {
		t.Errorf("koppa after DUMP trigger = %s, want %s", s.Koppa, want)
	}
}

func TestAccrueNoTriggerLeavesKoppaUnchanged(t *testing.T) {
	cfg := trtsconfig.Default()
	cfg.KoppaTrigger = trtsconfig.KoppaTriggerOnPsi

	s := newTestState()
	before := s.Koppa.Copy()
	Accrue(cfg, s, false, true, 3)

	if !rational.Equal(s.Koppa, before) {
		t.Errorf("koppa should be unchanged without a trigger, got %s", s.Koppa)
	}
}

func TestAccruePopUsesEpsilon(t *testing.T) {
	cfg := trtsconfig.Default()
	cfg.KoppaMode = trtsconfig.KoppaModePop
	cfg.KoppaTrigger = trtsconfig.KoppaTriggerOnPsi

	s := newTestState()
	s.Epsilon = rational.New(9, 2)
	Accrue(cfg, s, true, true, 2)

	want := rational.Add(rational.New(9, 2), rational.Add(s.Upsilon, s.Beta))
	if !rational.Equal(s.Koppa, want) {
		t.Errorf("koppa after POP trigger = %s, want %s", s.Koppa, want)
	}
}

func TestPushOntoStackOnTrigger(t *testing.T) {
	cfg := trtsconfig.Default()
	cfg.MultiLevelKoppa = true
	cfg.KoppaTrigger = trtsconfig.KoppaTriggerOnPsi

	s := newTestState()
	previousKoppa := s.Koppa.Copy()
	Accrue(cfg, s, true, true, 2)

	if s.KoppaStackSize != 1 {
		t.Fatalf("stack size = %d, want 1 after one trigger", s.KoppaStackSize)
	}
	if !rational.Equal(s.KoppaStack[0], previousKoppa) {
		t.Errorf("pushed stack entry = %s, want pre-trigger koppa %s", s.KoppaStack[0], previousKoppa)
	}
}

func TestStackAllowsPsiGate(t *testing.T) {
	cfg := trtsconfig.Default()
	cfg.StackDepthModes = true

	s := newTestState()
	for _, size := range []int{0, 1, 3} {
		s.KoppaStackSize = size
		if StackAllowsPsi(cfg, s) {
			t.Errorf("stack size %d should not allow psi when stack_depth_modes is on", size)
		}
	}
	for _, size := range []int{2, 4} {
		s.KoppaStackSize = size
		if !StackAllowsPsi(cfg, s) {
			t.Errorf("stack size %d should allow psi when stack_depth_modes is on", size)
		}
	}
}

func TestStackAllowsPsiAlwaysTrueWhenDisabled(t *testing.T) {
	cfg := trtsconfig.Default()
	cfg.StackDepthModes = false

	s := newTestState()
	s.KoppaStackSize = 0
	if !StackAllowsPsi(cfg, s) {
		t.Fatal("StackAllowsPsi must always be true when stack_depth_modes is disabled")
	}
}
