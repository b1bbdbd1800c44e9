// Package numtheory implements the number-theoretic predicates the
// simulator uses to detect "notable" rationals: primality, twin-prime,
// Fibonacci-number membership, and perfect powers. All tests operate on
// arbitrary-precision integers, matching spec.md §4.2.
package numtheory

import "math/big"

// millerRabinWitnesses is the minimum witness count spec.md §4.2 requires.
// big.Int.ProbablyPrime already runs a Baillie-PSW test plus this many
// Miller-Rabin rounds — the correct arbitrary-precision primality tool;
// see DESIGN.md for why no pack library improves on this.
const millerRabinWitnesses = 10

// IsPrime reports whether |n| is probably prime, false for |n| < 2.
func IsPrime(n *big.Int) bool {
	if n == nil {
		return false
	}
	abs := new(big.Int).Abs(n)
	if abs.Cmp(big.NewInt(2)) < 0 {
		return false
	}
	return abs.ProbablyPrime(millerRabinWitnesses)
}

// IsTwinPrime reports whether both num and den are prime and
// |num - den| = 2.
func IsTwinPrime(num, den *big.Int) bool {
	if !IsPrime(num) || !IsPrime(den) {
		return false
	}
	diff := new(big.Int).Sub(num, den)
	diff.Abs(diff)
	return diff.Cmp(big.NewInt(2)) == 0
}

// IsFibonacci reports whether the non-negative integer n is a Fibonacci
// number: n is Fibonacci iff 5n²+4 or 5n²-4 is a perfect square.
func IsFibonacci(n *big.Int) bool {
	if n == nil || n.Sign() < 0 {
		return false
	}
	nSq := new(big.Int).Mul(n, n)
	five := big.NewInt(5)
	base := new(big.Int).Mul(five, nSq)

	plus := new(big.Int).Add(base, big.NewInt(4))
	if isPerfectSquare(plus) {
		return true
	}
	minus := new(big.Int).Sub(base, big.NewInt(4))
	return isPerfectSquare(minus)
}

func isPerfectSquare(n *big.Int) bool {
	if n.Sign() < 0 {
		return false
	}
	root := new(big.Int).Sqrt(n)
	check := new(big.Int).Mul(root, root)
	return check.Cmp(n) == 0
}

// maxPerfectPowerExponent is the highest k tested by IsPerfectPower, per
// spec.md §4.2 ("for some k in [2, 64]").
const maxPerfectPowerExponent = 64

// IsPerfectPower reports whether n>0 is a k-th power for some k in
// [2, 64]: for each k, compute the integer k-th root and verify
// root^k == n.
func IsPerfectPower(n *big.Int) bool {
	if n == nil || n.Sign() <= 0 {
		return false
	}
	if n.Cmp(big.NewInt(1)) == 0 {
		return true // 1 = 1^k for any k
	}
	for k := 2; k <= maxPerfectPowerExponent; k++ {
		root := integerKthRoot(n, k)
		power := new(big.Int).Exp(root, big.NewInt(int64(k)), nil)
		if power.Cmp(n) == 0 {
			return true
		}
	}
	return false
}

// integerKthRoot computes ⌊n^(1/k)⌋ for n > 0, k >= 1, via Newton's
// method over big.Int. Arbitrary-precision k-th roots for variable k are
// not exposed by any library in the retrieved pack (they target either
// fixed k=2 via big.Int.Sqrt, or machine-word-sized integers); this
// narrow routine is the justified stdlib exception — see DESIGN.md.
func integerKthRoot(n *big.Int, k int) *big.Int {
	if n.Sign() == 0 {
		return big.NewInt(0)
	}
	if k == 1 {
		return new(big.Int).Set(n)
	}

	kBig := big.NewInt(int64(k))
	kMinus1 := big.NewInt(int64(k - 1))

	// Initial guess: 2^(ceil(bitlen(n)/k)+1), always >= the true root.
	bits := (n.BitLen() + k - 1) / k
	x := new(big.Int).Lsh(big.NewInt(1), uint(bits+1))

	for {
		// x_next = ((k-1)*x + n / x^(k-1)) / k
		xPow := new(big.Int).Exp(x, kMinus1, nil)
		if xPow.Sign() == 0 {
			break
		}
		term := new(big.Int).Div(n, xPow)
		sum := new(big.Int).Mul(kMinus1, x)
		sum.Add(sum, term)
		next := new(big.Int).Div(sum, kBig)

		if next.Cmp(x) >= 0 {
			break
		}
		x = next
	}

	// Correct for the one-off Newton can leave: find the largest x with
	// x^k <= n.
	for {
		power := new(big.Int).Exp(x, kBig, nil)
		if power.Cmp(n) <= 0 {
			break
		}
		x.Sub(x, big.NewInt(1))
	}
	for {
		next := new(big.Int).Add(x, big.NewInt(1))
		power := new(big.Int).Exp(next, kBig, nil)
		if power.Cmp(n) > 0 {
			break
		}
		x = next
	}
	return x
}

// PatternConfig carries the toggles has_pattern_component needs; it is a
// narrow view over trtsconfig.Config so this package doesn't import the
// config package.
type PatternConfig struct {
	TwinPrimeTrigger   bool
	FibonacciTrigger   bool
	PerfectPowerTrigger bool
}

// HasPatternComponent implements spec.md §4.2's composite predicate.
func HasPatternComponent(num, den *big.Int, cfg PatternConfig) bool {
	numPrime := IsPrime(num)
	denPrime := IsPrime(den)
	if numPrime || denPrime {
		return true
	}
	if cfg.TwinPrimeTrigger && numPrime && denPrime {
		diff := new(big.Int).Sub(num, den)
		diff.Abs(diff)
		if diff.Cmp(big.NewInt(2)) == 0 {
			return true
		}
	}
	if cfg.FibonacciTrigger {
		absNum := new(big.Int).Abs(num)
		absDen := new(big.Int).Abs(den)
		if IsFibonacci(absNum) || IsFibonacci(absDen) {
			return true
		}
	}
	if cfg.PerfectPowerTrigger {
		absNum := new(big.Int).Abs(num)
		absDen := new(big.Int).Abs(den)
		if IsPerfectPower(absNum) || IsPerfectPower(absDen) {
			return true
		}
	}
	return false
}
