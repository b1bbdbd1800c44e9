// Package psi implements the ψ transform: the inversion/cross-
// multiplication that rearranges (υ,β) or (υ,β,ϙ) without ever reducing.
// See spec.md §4.4.
package psi

import (
	"math/big"

	"github.com/rigbyspace/operation-pretzel/internal/numtheory"
	"github.com/rigbyspace/operation-pretzel/internal/rational"
	"github.com/rigbyspace/operation-pretzel/internal/state"
	"github.com/rigbyspace/operation-pretzel/internal/trtsconfig"
)

// fibonacciTicks is the fixed set from spec.md §4.4 that gates ρ-driven
// ψ in RHO_ONLY mode (MSTEP_RHO is not gated; see ShouldFire). This is a literal named list, not
// a general Fibonacci-number test (numtheory.IsFibonacci serves that
// separate purpose on rational components) — see DESIGN.md.
var fibonacciTicks = map[uint64]bool{
	5: true, 13: true, 89: true, 233: true, 1597: true, 4181: true,
	10946: true, 28657: true, 75025: true, 196418: true, 514229: true,
}

// IsFibonacciTick reports whether tick is in the fixed Fibonacci-tick
// gate set.
func IsFibonacciTick(tick uint64) bool {
	return fibonacciTicks[tick]
}

// Standard performs the 2-way inversion on non-zero numerators of υ and
// β: φ ← υ, then υ ← (bₙ·u_d)/(b_d·uₙ), β ← (uₙ·b_d)/(u_d·bₙ). Fails
// (no-op) if either numerator is zero.
func Standard(s *state.State) bool {
	if s.Upsilon.Num.Sign() == 0 || s.Beta.Num.Sign() == 0 {
		return false
	}

	upsilonNum, upsilonDen := s.Upsilon.Num, s.Upsilon.Den
	betaNum, betaDen := s.Beta.Num, s.Beta.Den

	newUpsilon := rational.Rational{
		Num: new(big.Int).Mul(betaNum, upsilonDen),
		Den: new(big.Int).Mul(betaDen, upsilonNum),
	}
	newBeta := rational.Rational{
		Num: new(big.Int).Mul(upsilonNum, betaDen),
		Den: new(big.Int).Mul(upsilonDen, betaNum),
	}

	s.Phi = s.Upsilon.Copy()
	s.Upsilon = newUpsilon
	s.Beta = newBeta
	return true
}

// Triple performs the 3-way inversion corresponding to (β/ϙ, ϙ/υ, ϙ/β):
// requires ϙ, υ, β all non-zero. All three updates are computed from the
// same pre-transform snapshot of (υ, β, ϙ) and applied atomically.
func Triple(s *state.State) bool {
	if s.Upsilon.Num.Sign() == 0 || s.Beta.Num.Sign() == 0 || s.Koppa.Num.Sign() == 0 {
		return false
	}

	upsilonNum, upsilonDen := new(big.Int).Set(s.Upsilon.Num), new(big.Int).Set(s.Upsilon.Den)
	betaNum, betaDen := new(big.Int).Set(s.Beta.Num), new(big.Int).Set(s.Beta.Den)
	koppaNum, koppaDen := new(big.Int).Set(s.Koppa.Num), new(big.Int).Set(s.Koppa.Den)

	newUpsilon := rational.Rational{
		Num: new(big.Int).Mul(betaNum, koppaDen),
		Den: new(big.Int).Mul(betaDen, koppaNum),
	}
	newBeta := rational.Rational{
		Num: new(big.Int).Mul(koppaNum, upsilonDen),
		Den: new(big.Int).Mul(koppaDen, upsilonNum),
	}
	newKoppa := rational.Rational{
		Num: new(big.Int).Mul(koppaNum, betaDen),
		Den: new(big.Int).Mul(koppaDen, betaNum),
	}

	s.Phi = s.Upsilon.Copy()
	s.Upsilon = newUpsilon
	s.Beta = newBeta
	s.Koppa = newKoppa
	return true
}

// ConditionalTriple reports whether the conditional-triple predicate
// holds: all of num(υ), num(β), num(ϙ) prime.
func ConditionalTriple(s *state.State) bool {
	return numtheory.IsPrime(s.Upsilon.Num) && numtheory.IsPrime(s.Beta.Num) && numtheory.IsPrime(s.Koppa.Num)
}

// ShouldFire implements spec.md §4.4's firing condition on an M step,
// not including the ratio-window force-fire (callers OR that in).
//
// RHO_ONLY's condition is further restricted by the Fibonacci-tick gate:
// ψ may fire only when rho_pending AND the tick number is in the fixed
// Fibonacci-tick set. MSTEP_RHO's base condition is unconditional
// ("always", per this subsection's own table) — its mention alongside
// RHO_ONLY in the Fibonacci-tick-gate paragraph is read as describing
// when MSTEP_RHO's rho-driven bookkeeping is consulted elsewhere (e.g.
// conditional-triple amplification), not as suppressing its always-fire
// base condition; see DESIGN.md for this resolved ambiguity.
func ShouldFire(cfg *trtsconfig.Config, s *state.State) bool {
	switch cfg.PsiMode {
	case trtsconfig.PsiModeMstep, trtsconfig.PsiModeMstepRho:
		return true
	case trtsconfig.PsiModeRhoOnly:
		return s.RhoPending && IsFibonacciTick(s.Tick)
	case trtsconfig.PsiModeInhibitRho:
		return !s.RhoPending
	default:
		return false
	}
}

// Strength computes the amplification factor: how many of num(υ),
// num(β), num(ϙ) are prime, floored at 1.
func Strength(s *state.State) int {
	count := 0
	if numtheory.IsPrime(s.Upsilon.Num) {
		count++
	}
	if numtheory.IsPrime(s.Beta.Num) {
		count++
	}
	if numtheory.IsPrime(s.Koppa.Num) {
		count++
	}
	if count < 1 {
		return 1
	}
	return count
}

// Fire runs the full ψ firing sequence for one M-step request: selects
// triple vs standard per cfg/state, applies strength amplification when
// enabled, and performs the psi_recent/rho_pending/rho_latched
// bookkeeping from spec.md §4.4. Returns whether any transform fired.
func Fire(cfg *trtsconfig.Config, s *state.State) bool {
	triple := cfg.TriplePsi || (cfg.ConditionalTriplePsi && ConditionalTriple(s))

	strength := 1
	applyStrength := cfg.PsiStrengthParameter && s.RhoPending
	if applyStrength {
		strength = Strength(s)
		if strength > 1 {
			s.PsiStrengthApplied = true
		}
	}

	fired := false
	for i := 0; i < strength; i++ {
		// spec.md §9 open question 3: fire triple on iteration strength-3
		// when strength >= 3 (one source variant), on top of the
		// unconditional triple-ψ-on and conditional-triple clauses —
		// this is a three-way OR, not a positional override.
		useTriple := triple || (applyStrength && strength >= 3 && i == strength-3)

		var ok bool
		if useTriple {
			ok = Triple(s)
			if ok {
				s.PsiTripleRecent = true
			}
		} else {
			ok = Standard(s)
		}

		if !ok {
			break
		}
		fired = true

		if i == 0 {
			s.RhoPending = false
		}
	}

	if fired {
		s.PsiRecent = true
		s.RhoPending = false
		s.RhoLatched = false
	}
	return fired
}
