// Package ratiowindow provides the built-in and custom ratio bands used
// to detect when υ/β falls in a "notable" range, plus the
// floating-point-snapshot threshold detector. Adapted from the phi
// package's style (a set of named derived constants plus an
// interface-based membership check) but rebuilt over exact Rational
// band edges: the strict no-canonicalization discipline here forbids
// the float powers-of-Φ that style used, per spec.md §4.6 and §9.
package ratiowindow

import (
	"math/big"

	"github.com/rigbyspace/operation-pretzel/internal/rational"
	"github.com/rigbyspace/operation-pretzel/internal/trtsconfig"
)

// Window is a pair of exact rational band edges (lower, upper).
type Window struct {
	Lower rational.Rational
	Upper rational.Rational
}

// Golden, Sqrt2, and Plastic are the built-in bands from spec.md §4.6,
// named for the irrational ratios whose decimal neighborhoods they
// bracket, but expressed as exact rationals — nothing here is ever a
// float.
var (
	Golden  = Window{Lower: rational.New(3, 2), Upper: rational.New(17, 10)}
	Sqrt2   = Window{Lower: rational.New(13, 10), Upper: rational.New(3, 2)}
	Plastic = Window{Lower: rational.New(6, 5), Upper: rational.New(7, 5)}
)

// ForMode resolves a Config's ratio_trigger_mode to a concrete Window.
// RatioNone has no window; callers must check RatioTriggerMode first.
func ForMode(cfg *trtsconfig.Config) Window {
	switch cfg.RatioTriggerMode {
	case trtsconfig.RatioGolden:
		return Golden
	case trtsconfig.RatioSqrt2:
		return Sqrt2
	case trtsconfig.RatioPlastic:
		return Plastic
	case trtsconfig.RatioCustom:
		return Window{Lower: cfg.RatioCustomLower, Upper: cfg.RatioCustomUpper}
	default:
		return Window{}
	}
}

// InRange reports spec.md §4.6's ratio_in_range: false if β is zero,
// else r = υ/β (no reduction), true iff lower < r < upper.
func InRange(cfg *trtsconfig.Config, upsilon, beta rational.Rational) bool {
	if cfg.RatioTriggerMode == trtsconfig.RatioNone {
		return false
	}
	if beta.IsZero() {
		return false
	}
	ratio, ok := rational.Div(upsilon, beta)
	if !ok {
		return false
	}
	win := ForMode(cfg)
	return rational.Cmp(win.Lower, ratio) < 0 && rational.Cmp(ratio, win.Upper) < 0
}

// ThresholdOutside implements spec.md §4.6's ratio_threshold_outside: the
// single place in the system a float is ever formed, and it must never
// be written back into state. Returns false if β is zero or the feature
// is disabled; otherwise |r| < 0.5 or |r| > 2 using a transient float64
// snapshot of r = υ/β.
func ThresholdOutside(cfg *trtsconfig.Config, upsilon, beta rational.Rational) bool {
	if !cfg.RatioThresholdPsi {
		return false
	}
	if beta.IsZero() {
		return false
	}
	ratio, ok := rational.Div(upsilon, beta)
	if !ok {
		return false
	}

	// Transient-only: this float64 is a local variable that feeds the
	// return value and nothing else. It is never assigned into State.
	snapshot := ratioToFloat(ratio)
	abs := snapshot
	if abs < 0 {
		abs = -abs
	}
	return abs < 0.5 || abs > 2
}

// ratioToFloat forms the one permitted floating-point snapshot, via
// big.Rat's quotient (itself never retained — big.Rat is used here only
// as a division-to-float convenience, not as this system's rational
// type; the system's own Rational type in package rational is what
// actually carries state).
func ratioToFloat(r rational.Rational) float64 {
	quotient := new(big.Rat).SetFrac(r.Num, r.Den)
	f, _ := quotient.Float64()
	return f
}
