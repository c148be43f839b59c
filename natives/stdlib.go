package natives

import (
	"github.com/obsidianvm/obsidian/common"
	"github.com/obsidianvm/obsidian/types"
)

// Stable native identifiers. The bytecode linker resolves against these; the
// strings are wire-visible and never change meaning across releases.
var (
	SHA2_256    = types.NativeFunctionID{Module: "hash", Function: "sha2_256"}
	SHA3_256    = types.NativeFunctionID{Module: "hash", Function: "sha3_256"}
	KECCAK_256  = types.NativeFunctionID{Module: "hash", Function: "keccak_256"}
	BLAKE2B_256 = types.NativeFunctionID{Module: "hash", Function: "blake2b_256"}
	VDF_VERIFY  = types.NativeFunctionID{Module: "vdf", Function: "verify"}
)

// Stdlib builds and seals the standard native table. Called once at process
// startup; the returned registry is immutable and safe for concurrent use.
func Stdlib() (*Registry, error) {
	r := NewRegistry()
	regs := []struct {
		id types.NativeFunctionID
		op types.NativeOp
		fn NativeFn
	}{
		{SHA2_256, types.OpSha2_256, hashNative(types.OpSha2_256, common.Sha2_256)},
		{SHA3_256, types.OpSha3_256, hashNative(types.OpSha3_256, common.Sha3_256)},
		{KECCAK_256, types.OpKeccak256, hashNative(types.OpKeccak256, common.Keccak256)},
		{BLAKE2B_256, types.OpBlake2b256, hashNative(types.OpBlake2b256, common.Blake2b256)},
		{VDF_VERIFY, types.OpVdfVerify, vdfVerifyNative},
	}
	for _, reg := range regs {
		if err := r.Register(reg.id, reg.op, reg.fn); err != nil {
			return nil, err
		}
	}
	r.Seal()
	return r, nil
}
