package natives

import (
	"github.com/obsidianvm/obsidian/common"
	"github.com/obsidianvm/obsidian/types"
)

// hashNative adapts a one-shot digest function to the native calling
// convention: one byte-vector argument, one 32-byte vector result. The charge
// lands before the digest runs.
func hashNative(op types.NativeOp, digest func([]byte) common.Hash) NativeFn {
	return func(ctx *Context, args []types.Value) (NativeResult, error) {
		if code := checkArity(args, 1); code != types.OK {
			return abortResult(code), nil
		}
		b, code := ToNativeBytes(args[0])
		if code != types.OK {
			return abortResult(code), nil
		}
		if code := checkInputLength(ctx, b); code != types.OK {
			return abortResult(code), nil
		}
		if err := ctx.Charge(ctx.Schedule.Cost(op, len(b))); err != nil {
			return NativeResult{}, err
		}
		return okResult(FromNativeHash(digest(b))), nil
	}
}
