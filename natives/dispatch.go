package natives

import (
	"github.com/obsidianvm/obsidian/log"
	"github.com/obsidianvm/obsidian/types"
)

// Dispatch resolves id and invokes the implementation. It exists for callers
// without a link-time handle (tests, tooling); the interpreter hot path goes
// through Resolve once and DispatchHandle per call.
func (r *Registry) Dispatch(id types.NativeFunctionID, args []types.Value, ctx *Context) (NativeResult, error) {
	h, err := r.Resolve(id)
	if err != nil {
		// unknown native: no marshaling, no charge, transaction dies
		return NativeResult{}, err
	}
	return r.DispatchHandle(h, args, ctx)
}

// DispatchHandle is the per-call entry point from the interpreter: a bounds
// check, the implementation call, nothing else. All marshaling and charging
// happens inside the implementation, after the identifier is known good.
func (r *Registry) DispatchHandle(h Handle, args []types.Value, ctx *Context) (NativeResult, error) {
	e, ok := r.entryAt(h)
	if !ok {
		return NativeResult{}, types.ErrUnknownNative
	}
	res, err := e.fn(ctx, args)
	if err != nil {
		log.Debug(ctx.Logging, "DISPATCH FATAL", "id", e.id.String(), "err", err, "gas", ctx.Gas)
		return NativeResult{}, err
	}
	log.Debug(ctx.Logging, "DISPATCH", "id", e.id.String(), "code", res.Code.String(), "gas", ctx.Gas)
	return res, nil
}
