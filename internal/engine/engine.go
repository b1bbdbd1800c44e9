// Package engine implements the engine step run during E microticks:
// track-mode selection, delta-add/delta-cross propagation, sign flip,
// the ε/φ triangle, and modular wrap. See spec.md §4.3.
package engine

import (
	"math/big"

	"github.com/rigbyspace/operation-pretzel/internal/rational"
	"github.com/rigbyspace/operation-pretzel/internal/state"
	"github.com/rigbyspace/operation-pretzel/internal/trtsconfig"
)

// trackResult applies one component's track mode given its current
// value, its counterpart, and ϙ. SLIDE fails (ok=false) when ϙ's
// numerator is zero; ADD and MULTI never fail.
func trackResult(mode trtsconfig.TrackMode, current, counterpart, koppa rational.Rational) (rational.Rational, bool) {
	switch mode {
	case trtsconfig.TrackAdd:
		return rational.Add(rational.Add(current, counterpart), koppa), true
	case trtsconfig.TrackMulti:
		sum := rational.Add(counterpart, koppa)
		return rational.Mul(current, sum), true
	case trtsconfig.TrackSlide:
		if koppa.Num.Sign() == 0 {
			return rational.Rational{}, false
		}
		sum := rational.Add(current, counterpart)
		return rational.Div(sum, koppa)
	default:
		return rational.Rational{}, false
	}
}

// selectModes runs the mode-selection pipeline of spec.md §4.3 step 1-4.
func selectModes(cfg *trtsconfig.Config, s *state.State, microtick int) (trtsconfig.TrackMode, trtsconfig.TrackMode) {
	var upsilonMode, betaMode trtsconfig.TrackMode

	if cfg.DualTrack {
		upsilonMode, betaMode = cfg.EngineUpsilon, cfg.EngineBeta
	} else {
		mapped := mapEngineMode(cfg.EngineMode)
		upsilonMode, betaMode = mapped, mapped
	}

	if cfg.AsymmetricCascade {
		switch microtick {
		case 1:
			upsilonMode, betaMode = trtsconfig.TrackMulti, trtsconfig.TrackAdd
		case 4:
			upsilonMode, betaMode = trtsconfig.TrackAdd, trtsconfig.TrackSlide
		case 7:
			upsilonMode, betaMode = trtsconfig.TrackSlide, trtsconfig.TrackMulti
		case 10:
			upsilonMode, betaMode = trtsconfig.TrackAdd, trtsconfig.TrackAdd
		}
	}

	if cfg.StackDepthModes {
		upsilonMode = stackDepthMode(s.KoppaStackSize)
		betaMode = stackDepthMode(s.KoppaStackSize)
	}

	if cfg.KoppaGatedEngine {
		upsilonMode = magnitudeMode(s.Koppa.Num)
		betaMode = magnitudeMode(s.Koppa.Num)
	}

	return upsilonMode, betaMode
}

func mapEngineMode(mode trtsconfig.EngineMode) trtsconfig.TrackMode {
	switch mode {
	case trtsconfig.EngineAdd, trtsconfig.EngineDeltaAdd:
		return trtsconfig.TrackAdd
	case trtsconfig.EngineMulti:
		return trtsconfig.TrackMulti
	case trtsconfig.EngineSlide:
		return trtsconfig.TrackSlide
	default:
		return trtsconfig.TrackAdd
	}
}

// stackDepthMode implements spec.md §4.3 step 3: depth<=1 -> ADD,
// 2-3 -> MULTI, 4 -> SLIDE, else ADD.
func stackDepthMode(depth int) trtsconfig.TrackMode {
	switch {
	case depth <= 1:
		return trtsconfig.TrackAdd
	case depth >= 2 && depth <= 3:
		return trtsconfig.TrackMulti
	case depth == 4:
		return trtsconfig.TrackSlide
	default:
		return trtsconfig.TrackAdd
	}
}

// magnitudeMode implements spec.md §4.3 step 4: |num(ϙ)| < 10 -> SLIDE,
// < 100 -> MULTI, else ADD.
func magnitudeMode(koppaNum *big.Int) trtsconfig.TrackMode {
	abs := new(big.Int).Abs(koppaNum)
	if abs.Cmp(big.NewInt(10)) < 0 {
		return trtsconfig.TrackSlide
	}
	if abs.Cmp(big.NewInt(100)) < 0 {
		return trtsconfig.TrackMulti
	}
	return trtsconfig.TrackAdd
}

// Step runs the full engine step for one E microtick, per spec.md §4.3.
// Returns whether the step succeeded (state left unchanged on failure)
// and whether a sign flip was actually applied this step.
func Step(cfg *trtsconfig.Config, s *state.State, microtick int) (succeeded bool, signFlipped bool) {
	upsilonPre := s.Upsilon.Copy()
	betaPre := s.Beta.Copy()

	var newUpsilon, newBeta rational.Rational
	var ok bool

	if cfg.EngineMode == trtsconfig.EngineDeltaAdd && !cfg.DualTrack {
		deltaUpsilon := rational.Sub(s.Upsilon, s.PreviousUpsilon)
		deltaBeta := rational.Sub(s.Beta, s.PreviousBeta)
		newUpsilon = rational.Add(s.Upsilon, deltaUpsilon)
		newBeta = rational.Add(s.Beta, deltaBeta)
		ok = true

		if cfg.DeltaCrossPropagation {
			newUpsilon = rational.Add(newUpsilon, deltaBeta)
			newBeta = rational.Add(newBeta, deltaUpsilon)
			if cfg.DeltaKoppaOffset {
				newUpsilon = rational.Add(newUpsilon, s.Koppa)
				newBeta = rational.Add(newBeta, s.Koppa)
			}
		}
	} else {
		upsilonMode, betaMode := selectModes(cfg, s, microtick)
		newUpsilon, ok = trackResult(upsilonMode, s.Upsilon, s.Beta, s.Koppa)
		if !ok {
			return false, false
		}
		newBeta, ok = trackResult(betaMode, s.Beta, s.Upsilon, s.Koppa)
		if !ok {
			return false, false
		}
	}

	if !ok {
		return false, false
	}

	if cfg.SignFlip() {
		switch cfg.SignFlipMode {
		case trtsconfig.SignFlipAlways:
			newUpsilon = rational.Negate(newUpsilon)
			newBeta = rational.Negate(newBeta)
			signFlipped = true
		case trtsconfig.SignFlipAlternate:
			if !s.SignFlipPolarity {
				newUpsilon = rational.Negate(newUpsilon)
				newBeta = rational.Negate(newBeta)
				signFlipped = true
			}
			s.SignFlipPolarity = !s.SignFlipPolarity
		}
	} else {
		s.SignFlipPolarity = false
	}

	if cfg.EpsilonPhiTriangle {
		s.TrianglePhiOverEpsilon = safeRatio(s.Phi, s.Epsilon)
		s.TrianglePrevOverPhi = safeRatio(s.PreviousUpsilon, s.Phi)
		s.TriangleEpsilonOverPrev = safeRatio(s.Epsilon, s.PreviousUpsilon)
	}

	if cfg.ModularWrap {
		threshold := new(big.Int).SetUint64(cfg.KoppaWrapThreshold)
		absNum := new(big.Int).Abs(s.Koppa.Num)
		if absNum.Cmp(threshold) > 0 && !s.Beta.IsZero() {
			s.Koppa = rational.Mod(s.Koppa, s.Beta)
		}
	}

	s.PreviousUpsilon = upsilonPre
	s.PreviousBeta = betaPre
	s.Upsilon = newUpsilon
	s.Beta = newBeta
	s.DeltaUpsilon = rational.Sub(s.Upsilon, s.PreviousUpsilon)
	s.DeltaBeta = rational.Sub(s.Beta, s.PreviousBeta)
	s.DualEngineLastStep = cfg.DualTrack

	return true, signFlipped
}

// safeRatio computes a/b, returning 0/1 if b is zero, per spec.md §4.3's
// triangle-update zero-denominator rule.
func safeRatio(a, b rational.Rational) rational.Rational {
	if b.IsZero() {
		return rational.Zero()
	}
	result, ok := rational.Div(a, b)
	if !ok {
		return rational.Zero()
	}
	return result
}
