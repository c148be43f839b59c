package natives

import (
	"github.com/holiman/uint256"

	"github.com/obsidianvm/obsidian/common"
	"github.com/obsidianvm/obsidian/types"
)

// The marshaling boundary: every conversion validates the tag (and, for
// sizes, the configured bounds) before any payload is touched. Wrong shapes
// come back as TYPE_MISMATCH or INVALID_LENGTH abort codes, never as host
// faults.

// ToNativeBytes extracts a byte-vector view without copying. The view is
// borrowed for the duration of the call only.
func ToNativeBytes(v types.Value) ([]byte, types.AbortCode) {
	return v.AsBytes()
}

// ToNativeInt extracts an integer of exactly the expected width, widened to
// 256 bits. A differently-tagged value is TYPE_MISMATCH; there is no
// coercion between widths.
func ToNativeInt(v types.Value, width types.Tag) (*uint256.Int, types.AbortCode) {
	if v.Kind() != width {
		return nil, types.TYPE_MISMATCH
	}
	switch width {
	case types.TagU8:
		n, code := v.AsU8()
		return uint256.NewInt(uint64(n)), code
	case types.TagU16:
		n, code := v.AsU16()
		return uint256.NewInt(uint64(n)), code
	case types.TagU32:
		n, code := v.AsU32()
		return uint256.NewInt(uint64(n)), code
	case types.TagU64:
		n, code := v.AsU64()
		return uint256.NewInt(n), code
	case types.TagU128:
		return v.AsU128()
	case types.TagU256:
		return v.AsU256()
	default:
		return nil, types.TYPE_MISMATCH
	}
}

// ToNativeU64 is the common exact-width extraction for u64 operands.
func ToNativeU64(v types.Value) (uint64, types.AbortCode) {
	return v.AsU64()
}

// FromNativeHash wraps a digest as a VM byte vector.
func FromNativeHash(h common.Hash) types.Value {
	return types.NewBytes(h.Bytes())
}

func FromNativeBool(b bool) types.Value {
	return types.NewBool(b)
}

func FromNativeU64(v uint64) types.Value {
	return types.NewU64(v)
}

// checkArity guards the argument list shape before any per-argument work.
func checkArity(args []types.Value, want int) types.AbortCode {
	if len(args) != want {
		return types.TYPE_MISMATCH
	}
	return types.OK
}

// checkInputLength enforces the schedule's input cap so that cost arithmetic
// stays bounded.
func checkInputLength(ctx *Context, b []byte) types.AbortCode {
	if uint64(len(b)) > ctx.Schedule.MaxInputBytes {
		return types.INVALID_LENGTH
	}
	return types.OK
}
