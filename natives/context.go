package natives

import (
	"math"

	"github.com/obsidianvm/obsidian/gas"
	"github.com/obsidianvm/obsidian/log"
	"github.com/obsidianvm/obsidian/types"
	"github.com/obsidianvm/obsidian/vdf"
)

// Context is the per-call state handed to a native function. It is owned
// exclusively by one VM execution, created for one call and dropped when the
// call returns; natives must not retain it. The schedule and VDF params are
// shared read-only configuration.
type Context struct {
	// Gas is the remaining budget of the enclosing execution. Signed so an
	// attempted overdraft is representable and rejected.
	Gas int64

	Schedule  *gas.Schedule
	VDFParams *vdf.Params

	// Logging selects the log module tag for this execution context.
	Logging string

	// Ext carries VM-exposed extension data (table/resource access) for
	// natives that need it. Opaque to the dispatch layer.
	Ext any
}

func NewContext(budget types.Gas, schedule *gas.Schedule, params *vdf.Params) *Context {
	if budget > math.MaxInt64 {
		budget = math.MaxInt64
	}
	return &Context{
		Gas:       int64(budget),
		Schedule:  schedule,
		VDFParams: params,
		Logging:   log.NativesMonitoring,
	}
}

// Charge deducts cost from the remaining budget before the primitive runs.
// On overdraft it returns ErrOutOfGas and leaves the budget untouched, so a
// failed dispatch has no side effect.
func (ctx *Context) Charge(cost types.Gas) error {
	beforeGas := ctx.Gas
	if cost > math.MaxInt64 || beforeGas-int64(cost) < 0 {
		return types.ErrOutOfGas
	}
	ctx.Gas = beforeGas - int64(cost)
	log.Debug(log.GasMonitoring, "CHARGE", "gasCharged", cost, "beforeGas", beforeGas, "afterGas", ctx.Gas)
	return nil
}

// Remaining returns the unspent budget.
func (ctx *Context) Remaining() types.Gas {
	if ctx.Gas < 0 {
		return 0
	}
	return types.Gas(ctx.Gas)
}
