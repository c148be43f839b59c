package natives

import (
	"github.com/obsidianvm/obsidian/types"
)

// NativeFn is the host implementation behind one native identifier. A nil
// error with a non-OK code is a recoverable abort the bytecode can catch; a
// non-nil error (out of gas, unknown native) kills the transaction.
type NativeFn func(ctx *Context, args []types.Value) (NativeResult, error)

// NativeResult is what a native call produces: either values (Code == OK) or
// a deterministic abort code.
type NativeResult struct {
	Code   types.AbortCode
	Values []types.Value
}

func okResult(values ...types.Value) NativeResult {
	return NativeResult{Code: types.OK, Values: values}
}

func abortResult(code types.AbortCode) NativeResult {
	return NativeResult{Code: code}
}

// Handle is a dense link-time index into the registry. The interpreter
// resolves identifiers once at module-link time and dispatches by handle, so
// the per-call path is an array access, not a map lookup.
type Handle int

type entry struct {
	id types.NativeFunctionID
	op types.NativeOp
	fn NativeFn
}

// Registry is the (module, function) -> implementation table. It is mutable
// only during startup registration; Seal freezes it, after which it is shared
// read-only across concurrent executions.
type Registry struct {
	index   map[types.NativeFunctionID]Handle
	entries []entry
	sealed  bool
}

func NewRegistry() *Registry {
	return &Registry{index: make(map[types.NativeFunctionID]Handle)}
}

// Register adds an implementation under id.
func (r *Registry) Register(id types.NativeFunctionID, op types.NativeOp, fn NativeFn) error {
	if r.sealed {
		return types.ErrRegistrySealed
	}
	if _, exists := r.index[id]; exists {
		return types.ErrDuplicateRegistration
	}
	r.index[id] = Handle(len(r.entries))
	r.entries = append(r.entries, entry{id: id, op: op, fn: fn})
	return nil
}

// Seal freezes the table. Idempotent.
func (r *Registry) Seal() {
	r.sealed = true
}

// Resolve maps an identifier to its handle at module-link time.
func (r *Registry) Resolve(id types.NativeFunctionID) (Handle, error) {
	h, ok := r.index[id]
	if !ok {
		return 0, types.ErrUnknownNative
	}
	return h, nil
}

// Contains reports whether id is registered.
func (r *Registry) Contains(id types.NativeFunctionID) bool {
	_, ok := r.index[id]
	return ok
}

// Len returns the number of registered natives.
func (r *Registry) Len() int {
	return len(r.entries)
}

func (r *Registry) entryAt(h Handle) (*entry, bool) {
	if h < 0 || int(h) >= len(r.entries) {
		return nil, false
	}
	return &r.entries[h], true
}
