// Package rational implements raw numerator/denominator arithmetic over
// arbitrary-precision integers with no implicit reduction.
//
// The defining rule of this package, carried over from the reference
// implementation's rational_strict.h: nothing here may call GCD-based
// normalization on a result. (2/4) and (1/2) are distinct observable
// states and must stay that way across every operation. See reduce()
// below for the trip-wire that makes an accidental reduction loud.
package rational

import "math/big"

// bigMulThreshold is the operand bit-length above which multiplication
// is routed through bigfft instead of big.Int's schoolbook/Karatsuba
// multiply. Cross-multiplied numerators and denominators in this system
// grow every tick (nothing is ever reduced), so long-running simulations
// eventually produce genuinely huge integers.
const bigMulThreshold = 1 << 15

// Rational is a (numerator, denominator) pair. The denominator is always
// non-zero and positive; the sign of the value lives entirely in the
// numerator. Callers must treat the zero value as uninitialized — use
// Zero() or New() to construct one.
type Rational struct {
	Num *big.Int
	Den *big.Int
}

// Zero returns the rational 0/1.
func Zero() Rational {
	return Rational{Num: big.NewInt(0), Den: big.NewInt(1)}
}

// New constructs num/den. Panics (a programming fault, per the numeric
// discipline) if den is zero.
func New(num int64, den uint64) Rational {
	if den == 0 {
		panic("rational: New called with zero denominator")
	}
	d := new(big.Int).SetUint64(den)
	return Rational{Num: big.NewInt(num), Den: d}
}

// FromBig constructs num/den from existing big.Int values, copying them.
// Panics if den is zero.
func FromBig(num, den *big.Int) Rational {
	if den.Sign() == 0 {
		panic("rational: FromBig called with zero denominator")
	}
	return Rational{Num: new(big.Int).Set(num), Den: new(big.Int).Set(den)}
}

// Copy returns an independent deep copy.
func (r Rational) Copy() Rational {
	return Rational{Num: new(big.Int).Set(r.Num), Den: new(big.Int).Set(r.Den)}
}

// Set assigns src's components into r without reduction (mirrors
// rational_set in the reference C source).
func (r *Rational) Set(src Rational) {
	r.Num = new(big.Int).Set(src.Num)
	r.Den = new(big.Int).Set(src.Den)
}

func mulBig(a, b *big.Int) *big.Int {
	if a.BitLen() > bigMulThreshold && b.BitLen() > bigMulThreshold {
		return bigfftMul(a, b)
	}
	return new(big.Int).Mul(a, b)
}

// Add computes a/b + c/d = (ad + bc) / (bd), raw, no reduction.
func Add(a, b Rational) Rational {
	ad := mulBig(a.Num, b.Den)
	bc := mulBig(b.Num, a.Den)
	num := new(big.Int).Add(ad, bc)
	den := mulBig(a.Den, b.Den)
	return Rational{Num: num, Den: den}
}

// Sub computes a/b - c/d = (ad - bc) / (bd).
func Sub(a, b Rational) Rational {
	ad := mulBig(a.Num, b.Den)
	bc := mulBig(b.Num, a.Den)
	num := new(big.Int).Sub(ad, bc)
	den := mulBig(a.Den, b.Den)
	return Rational{Num: num, Den: den}
}

// Mul computes a/b * c/d = (ac) / (bd).
func Mul(a, b Rational) Rational {
	return Rational{Num: mulBig(a.Num, b.Num), Den: mulBig(a.Den, b.Den)}
}

// Div computes a/b / c/d = (ad) / (bc). ok is false (no-op semantics — the
// caller keeps whatever it had) when c's numerator is zero; a zero
// denominator anywhere else is the programming fault described in
// spec.md §7 and is never constructed by this package.
func Div(a, b Rational) (result Rational, ok bool) {
	if b.Num.Sign() == 0 {
		return Rational{}, false
	}
	num := mulBig(a.Num, b.Den)
	den := mulBig(a.Den, b.Num)
	if den.Sign() == 0 {
		panic("rational: Div produced a zero denominator")
	}
	return Rational{Num: num, Den: den}, true
}

// Negate returns -a/b = (-a)/b.
func Negate(a Rational) Rational {
	return Rational{Num: new(big.Int).Neg(a.Num), Den: new(big.Int).Set(a.Den)}
}

// Delta returns a - b, the helper used for δυ/δβ tracks.
func Delta(a, b Rational) Rational {
	return Sub(a, b)
}

// IsZero reports whether the numerator is zero.
func (r Rational) IsZero() bool {
	return r.Num.Sign() == 0
}

// Sign returns the sign of the value: -1, 0, or 1, from the numerator
// (the denominator is always positive by invariant).
func (r Rational) Sign() int {
	return r.Num.Sign()
}

// AbsNum returns |numerator|.
func (r Rational) AbsNum() *big.Int {
	return new(big.Int).Abs(r.Num)
}

// Cmp compares a and b as values by cross-multiplication: a/b ? c/d is
// ad ? bc (both denominators are positive by invariant, so the sign of
// the cross product comparison is not flipped). Returns -1, 0, or 1.
func Cmp(a, b Rational) int {
	lhs := mulBig(a.Num, b.Den)
	rhs := mulBig(b.Num, a.Den)
	return lhs.Cmp(rhs)
}

// Equal reports whether a and b denote the same value (not whether their
// representations are identical — (2/4) and (1/2) are Equal but distinct
// Rational values).
func Equal(a, b Rational) bool {
	return Cmp(a, b) == 0
}

// Floor returns ⌊a⌋ using non-canonical big.Int division (floored, not
// truncated, matching Euclidean floor for negative numerators).
func (r Rational) Floor() *big.Int {
	q, m := new(big.Int).DivMod(r.Num, r.Den, new(big.Int))
	_ = m
	return q
}

// Ceil returns ⌈a⌉.
func (r Rational) Ceil() *big.Int {
	q, m := new(big.Int).DivMod(r.Num, r.Den, new(big.Int))
	if m.Sign() != 0 {
		q.Add(q, big.NewInt(1))
	}
	return q
}

// Mod computes a mod b, defined as a - ⌊a/b⌋·b (spec.md §4.1). Panics if
// b's numerator is zero (division fault).
func Mod(a, b Rational) Rational {
	quotient, ok := Div(a, b)
	if !ok {
		panic("rational: Mod divisor has zero numerator")
	}
	floor := quotient.Floor()
	floorAsRational := Rational{Num: new(big.Int).Set(floor), Den: big.NewInt(1)}
	return Sub(a, Mul(floorAsRational, b))
}

// String renders "num/den" for logs and error messages.
func (r Rational) String() string {
	if r.Num == nil || r.Den == nil {
		return "<uninitialized>/<uninitialized>"
	}
	return r.Num.String() + "/" + r.Den.String()
}

// reduce is never called by any arithmetic path in this package. Its sole
// purpose is to exist as the textual, compiled analog of the reference
// source's "#define mpq_canonicalize(...) abort()" trip-wire: if a future
// change ever reaches for GCD-based normalization, it should call this
// function, and this function always panics. Tests assert that.
func reduce(n, d *big.Int) {
	panic("rational: canonicalization is forbidden (see package doc)")
}
