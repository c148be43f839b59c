package gas

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/obsidianvm/obsidian/types"
)

//go:embed schedules/*.json
var scheduleFS embed.FS

var scheduleFile = map[string]string{
	"default": "schedules/default.json",
}

// OpCost is the injected rate triple for one native operation. PerLogIteration
// only applies to the VDF verify native; it scales with ceil(log2(iterations)),
// never with the iteration count itself.
type OpCost struct {
	Base            types.Gas `json:"base"`
	PerByte         types.Gas `json:"per_byte"`
	PerLogIteration types.Gas `json:"per_log_iteration,omitempty"`
}

type scheduleRaw struct {
	ID            string            `json:"id"`
	MaxInputBytes uint64            `json:"max_input_bytes"`
	Ops           map[string]OpCost `json:"ops"`
}

// Schedule is the per-deployment gas schedule, loaded once and read-only
// afterwards. Missing ops are a load-time error, not a dispatch-time surprise.
type Schedule struct {
	ID            string
	MaxInputBytes uint64
	costs         [types.NumNativeOps]OpCost
}

// ReadSchedule loads a schedule by well-known id or from an explicit path.
func ReadSchedule(id string) (*Schedule, error) {
	var data []byte
	var err error
	path, ok := scheduleFile[id]
	if ok {
		data, err = scheduleFS.ReadFile(path)
	} else {
		data, err = os.ReadFile(id)
	}
	if err != nil {
		return nil, err
	}
	return ParseSchedule(data)
}

func ParseSchedule(data []byte) (*Schedule, error) {
	var raw scheduleRaw
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if raw.MaxInputBytes == 0 {
		return nil, fmt.Errorf("schedule %q: max_input_bytes must be positive", raw.ID)
	}
	s := &Schedule{ID: raw.ID, MaxInputBytes: raw.MaxInputBytes}
	for op := types.NativeOp(0); int(op) < types.NumNativeOps; op++ {
		c, ok := raw.Ops[op.String()]
		if !ok {
			return nil, fmt.Errorf("schedule %q: missing op %s: %w", raw.ID, op, types.ErrUnknownOp)
		}
		s.costs[op] = c
	}
	return s, nil
}

// OpCost returns the rate triple for op.
func (s *Schedule) OpCost(op types.NativeOp) OpCost {
	return s.costs[op]
}
