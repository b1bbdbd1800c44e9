package rational

import (
	"math/big"
	"testing"
)

func TestAddNoCanonicalization(t *testing.T) {
	// 2/4 + 5/7 + 0/1, matching spec.md §8's no-canonicalization law,
	// extended here to the three-term ADD used by the engine step.
	a := New(2, 4)
	b := New(5, 7)
	c := New(0, 1)

	sum := Add(Add(a, b), c)

	wantNum := big.NewInt(34)
	wantDen := big.NewInt(28)
	if sum.Num.Cmp(wantNum) != 0 || sum.Den.Cmp(wantDen) != 0 {
		t.Fatalf("got %s, want 34/28 (unreduced)", sum)
	}
}

func TestAddIsExactCrossMultiply(t *testing.T) {
	a := New(3, 5)
	b := New(5, 7)
	got := Add(a, b)
	// (3*7 + 5*5) / (5*7) = 46/35
	if got.Num.Cmp(big.NewInt(46)) != 0 || got.Den.Cmp(big.NewInt(35)) != 0 {
		t.Fatalf("got %s, want 46/35", got)
	}
}

func TestDivZeroNumeratorIsNoOp(t *testing.T) {
	a := New(1, 2)
	zero := New(0, 5)
	_, ok := Div(a, zero)
	if ok {
		t.Fatal("expected Div by zero-numerator divisor to report ok=false")
	}
}

func TestCmpCrossMultiply(t *testing.T) {
	if Cmp(New(1, 2), New(2, 4)) != 0 {
		t.Fatal("1/2 and 2/4 must compare equal as values")
	}
	if Cmp(New(1, 2), New(1, 3)) <= 0 {
		t.Fatal("1/2 must compare greater than 1/3")
	}
}

func TestEqualDoesNotImplyIdenticalRepresentation(t *testing.T) {
	a := New(1, 2)
	b := New(2, 4)
	if !Equal(a, b) {
		t.Fatal("1/2 and 2/4 must be Equal")
	}
	if a.Num.Cmp(b.Num) == 0 {
		t.Fatal("1/2 and 2/4 must not share a numerator representation")
	}
}

func TestModDefinition(t *testing.T) {
	// 34/28 mod 5/7 = 34/28 - floor((34/28)/(5/7)) * 5/7
	a := New(34, 28)
	b := New(5, 7)
	got := Mod(a, b)
	quotient, _ := Div(a, b)
	floor := quotient.Floor()
	floorAsRational := Rational{Num: new(big.Int).Set(floor), Den: big.NewInt(1)}
	want := Sub(a, Mul(floorAsRational, b))
	if !Equal(got, want) {
		t.Fatalf("Mod mismatch: got %s, want %s", got, want)
	}
}

func TestReduceAlwaysPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected reduce to panic")
		}
	}()
	reduce(big.NewInt(4), big.NewInt(8))
}

func TestNewPanicsOnZeroDenominator(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected New with zero denominator to panic")
		}
	}()
	New(1, 0)
}

func TestCopyIsIndependent(t *testing.T) {
	a := New(3, 5)
	b := a.Copy()
	b.Num.SetInt64(99)
	if a.Num.Cmp(big.NewInt(3)) != 0 {
		t.Fatal("mutating a copy must not affect the original")
	}
}
