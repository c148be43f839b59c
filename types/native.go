package types

import "fmt"

// Gas is the VM's metering unit. Contexts carry the remaining budget as an
// int64 so that an overdraft is representable and rejected before execution.
type Gas = uint64

// NativeFunctionID names a host-implemented function callable from bytecode.
// IDs are built at module-link time and never mutated afterwards.
type NativeFunctionID struct {
	Module   string
	Function string
}

func (id NativeFunctionID) String() string {
	return fmt.Sprintf("%s::%s", id.Module, id.Function)
}

// NativeOp is the closed enumeration of native operations. Every switch over
// it is exhaustive; adding an op means touching the gas schedule, the
// dispatcher and the stdlib table in the same change.
type NativeOp uint8

const (
	OpSha2_256 NativeOp = iota
	OpSha3_256
	OpKeccak256
	OpBlake2b256
	OpVdfVerify

	NumNativeOps = int(OpVdfVerify) + 1
)

func (op NativeOp) String() string {
	switch op {
	case OpSha2_256:
		return "sha2_256"
	case OpSha3_256:
		return "sha3_256"
	case OpKeccak256:
		return "keccak_256"
	case OpBlake2b256:
		return "blake2b_256"
	case OpVdfVerify:
		return "vdf_verify"
	default:
		return fmt.Sprintf("op_%d", uint8(op))
	}
}

// ParseNativeOp maps a schedule key back to its op.
func ParseNativeOp(s string) (NativeOp, bool) {
	for op := NativeOp(0); int(op) < NumNativeOps; op++ {
		if op.String() == s {
			return op, true
		}
	}
	return 0, false
}
