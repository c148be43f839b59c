package gas

import (
	"math/bits"

	"github.com/obsidianvm/obsidian/types"
)

// Cost computes the charge for a native call from input size alone. It is
// pure, monotonic in inputLen and never inspects input content, so the result
// is identical on every validator regardless of architecture.
func (s *Schedule) Cost(op types.NativeOp, inputLen int) types.Gas {
	c := s.costs[op]
	return c.Base + c.PerByte*types.Gas(inputLen)
}

// CostVdf adds the iteration term for the VDF verify native. Verification is
// sublinear in iterations, so the charge scales with ceil(log2(iterations)).
func (s *Schedule) CostVdf(inputLen int, iterations uint64) types.Gas {
	c := s.costs[types.OpVdfVerify]
	return c.Base + c.PerByte*types.Gas(inputLen) + c.PerLogIteration*types.Gas(CeilLog2(iterations))
}

// CeilLog2 returns ceil(log2(t)) for t >= 1, and 0 for t <= 1.
func CeilLog2(t uint64) int {
	if t <= 1 {
		return 0
	}
	return bits.Len64(t - 1)
}
