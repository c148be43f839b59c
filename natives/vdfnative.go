package natives

import (
	"github.com/obsidianvm/obsidian/log"
	"github.com/obsidianvm/obsidian/types"
	"github.com/obsidianvm/obsidian/vdf"
)

// vdfVerifyNative checks a delay-function proof. Arguments, in stack order:
// input (bytes), iterations (u64), output (bytes), proof (bytes). The result
// is a bool value: a well-formed proof that fails verification is an ordinary
// false, only structural damage aborts.
func vdfVerifyNative(ctx *Context, args []types.Value) (NativeResult, error) {
	if code := checkArity(args, 4); code != types.OK {
		return abortResult(code), nil
	}
	input, code := ToNativeBytes(args[0])
	if code != types.OK {
		return abortResult(code), nil
	}
	iterations, code := ToNativeU64(args[1])
	if code != types.OK {
		return abortResult(code), nil
	}
	output, code := ToNativeBytes(args[2])
	if code != types.OK {
		return abortResult(code), nil
	}
	proof, code := ToNativeBytes(args[3])
	if code != types.OK {
		return abortResult(code), nil
	}
	if code := checkInputLength(ctx, input); code != types.OK {
		return abortResult(code), nil
	}
	// a context without params is a host wiring error, not a bytecode fault
	if ctx.VDFParams == nil {
		return NativeResult{}, types.ErrMissingVDFParams
	}

	if err := ctx.Charge(ctx.Schedule.CostVdf(len(input), iterations)); err != nil {
		return NativeResult{}, err
	}

	valid, code := vdf.Verify(ctx.VDFParams, input, iterations, output, proof)
	if code != types.OK {
		log.Debug(log.VdfMonitoring, "VDF VERIFY ABORT", "code", code.String(), "iterations", iterations)
		return abortResult(code), nil
	}
	log.Debug(log.VdfMonitoring, "VDF VERIFY", "valid", valid, "iterations", iterations)
	return okResult(FromNativeBool(valid)), nil
}
