package rational

import (
	"math/big"

	"github.com/remyoudompheng/bigfft"
)

// bigfftMul multiplies two operands known to be large (see
// bigMulThreshold) using FFT-based multiplication instead of big.Int's
// schoolbook path.
func bigfftMul(a, b *big.Int) *big.Int {
	return bigfft.Mul(a, b)
}
