// Package koppa implements the ϙ accumulator: dump/pop/accumulate base
// reset, the always-on (υ+β) post-accrual term, the bounded 4-slot
// stack, and the per-microtick sampling rule. See spec.md §4.5.
package koppa

import (
	"github.com/rigbyspace/operation-pretzel/internal/rational"
	"github.com/rigbyspace/operation-pretzel/internal/state"
	"github.com/rigbyspace/operation-pretzel/internal/trtsconfig"
)

// trigger reports whether accrual runs this microtick.
func trigger(cfg *trtsconfig.Config, s *state.State, psiFired, isMemoryPhase bool) bool {
	switch cfg.KoppaTrigger {
	case trtsconfig.KoppaTriggerOnPsi:
		return psiFired
	case trtsconfig.KoppaTriggerOnMuAfterPsi:
		return isMemoryPhase && !psiFired && s.PsiRecent
	case trtsconfig.KoppaTriggerOnAllMu:
		return isMemoryPhase
	default:
		return false
	}
}

// updateSample implements the sampling rule from spec.md §4.5: at
// microtick 11 sample stack[0] if non-empty; at microtick 5 sample
// stack[2] if size > 2; otherwise sample the current ϙ with index -1.
func updateSample(s *state.State, microtick int, multiLevelActive bool) {
	s.KoppaSampleIndex = -1
	s.KoppaSample = s.Koppa.Copy()

	if !multiLevelActive {
		return
	}

	switch {
	case microtick == 11 && s.KoppaStackSize > 0:
		s.KoppaSample = s.KoppaStack[0].Copy()
		s.KoppaSampleIndex = 0
	case microtick == 5 && s.KoppaStackSize > 2:
		s.KoppaSample = s.KoppaStack[2].Copy()
		s.KoppaSampleIndex = 2
	}
}

// Accrue runs the full ϙ accrual step for one microtick, per spec.md
// §4.5. psiFired and isMemoryPhase describe the current microtick;
// microtick is 1..11 (used only for sampling).
func Accrue(cfg *trtsconfig.Config, s *state.State, psiFired, isMemoryPhase bool, microtick int) {
	fires := trigger(cfg, s, psiFired, isMemoryPhase)

	if !fires {
		if !psiFired && cfg.KoppaTrigger != trtsconfig.KoppaTriggerOnAllMu {
			s.PsiRecent = s.PsiRecent && cfg.KoppaTrigger == trtsconfig.KoppaTriggerOnMuAfterPsi
		}
		updateSample(s, microtick, cfg.MultiLevelKoppa)
		return
	}

	if cfg.MultiLevelKoppa {
		s.PushKoppaStack(s.Koppa)
	}

	switch cfg.KoppaMode {
	case trtsconfig.KoppaModeDump:
		s.Koppa = rational.Zero()
	case trtsconfig.KoppaModePop:
		s.Koppa = s.Epsilon.Copy()
	case trtsconfig.KoppaModeAccumulate:
		s.Koppa = rational.Add(s.Koppa, s.Epsilon)
	}

	addition := rational.Add(s.Upsilon, s.Beta)
	s.Koppa = rational.Add(s.Koppa, addition)

	if cfg.KoppaTrigger == trtsconfig.KoppaTriggerOnMuAfterPsi {
		s.PsiRecent = false
	} else {
		s.PsiRecent = psiFired
	}

	updateSample(s, microtick, cfg.MultiLevelKoppa)
}

// StackAllowsPsi implements the stack-depth gate on ψ from spec.md §4.5:
// when stack_depth_modes is enabled, ψ is permitted only at stack sizes
// 2 or 4.
func StackAllowsPsi(cfg *trtsconfig.Config, s *state.State) bool {
	if !cfg.StackDepthModes {
		return true
	}
	return s.KoppaStackSize == 2 || s.KoppaStackSize == 4
}
