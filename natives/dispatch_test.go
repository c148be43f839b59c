package natives

import (
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obsidianvm/obsidian/gas"
	"github.com/obsidianvm/obsidian/types"
	"github.com/obsidianvm/obsidian/vdf"
)

const testModulusHex = "811002294a0f36e1f83cb996a3a0c7b270fab070eca2f5aa3d60c51c39d6d354b82b7a83c7c5e3d7fa203cf7a2884b4af609a561e99042c1921cf8fb615a1ec3c543ab197ac51ac6646fe29624bcac7f596886dea1596308bfa011943c4aea5db4cdef03703c60c01657574618e59850d1b52dc4a6363c140adfc8ec7dc30fcd"

func testSetup(t *testing.T, budget types.Gas) (*Registry, *Context) {
	reg, err := Stdlib()
	require.NoError(t, err)
	sched, err := gas.ReadSchedule("default")
	require.NoError(t, err)
	mod, ok := new(big.Int).SetString(testModulusHex, 16)
	require.True(t, ok)
	params, err := vdf.NewParams("test", mod, 2, 1<<32)
	require.NoError(t, err)
	return reg, NewContext(budget, sched, params)
}

func TestStdlibTable(t *testing.T) {
	reg, _ := testSetup(t, 0)
	assert.Equal(t, 5, reg.Len())
	for _, id := range []types.NativeFunctionID{SHA2_256, SHA3_256, KECCAK_256, BLAKE2B_256, VDF_VERIFY} {
		_, err := reg.Resolve(id)
		assert.NoError(t, err, id.String())
	}
}

func TestDispatchHashNatives(t *testing.T) {
	testCases := []struct {
		id       types.NativeFunctionID
		input    string
		expected string
	}{
		{SHA2_256, "", "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"},
		{SHA3_256, "", "a7ffc6f8bf1ed76651c14756a061d662f580ff4de43b49fa82d80a4b80f8434a"},
		{SHA3_256, "abc", "3a985da74fe225b2045c172d6bd390bd855f086e3e9d525b46bfe24511431532"},
		{KECCAK_256, "", "c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470"},
		{BLAKE2B_256, "", "0e5751c026e543b2e8ab2eb06099daa1d1e5df47778f7787faab45cdf12fe3a8"},
	}
	for _, tc := range testCases {
		t.Run(tc.id.String()+"/"+tc.input, func(t *testing.T) {
			reg, ctx := testSetup(t, 100000)
			res, err := reg.Dispatch(tc.id, []types.Value{types.NewBytes([]byte(tc.input))}, ctx)
			require.NoError(t, err)
			require.Equal(t, types.OK, res.Code)
			require.Len(t, res.Values, 1)
			digest, code := res.Values[0].AsBytes()
			require.Equal(t, types.OK, code)
			assert.Equal(t, tc.expected, hex.EncodeToString(digest))
		})
	}
}

func TestDispatchChargesExactly(t *testing.T) {
	reg, ctx := testSetup(t, 10000)
	cost := ctx.Schedule.Cost(types.OpSha3_256, 3)
	res, err := reg.Dispatch(SHA3_256, []types.Value{types.NewBytes([]byte("abc"))}, ctx)
	require.NoError(t, err)
	require.Equal(t, types.OK, res.Code)
	assert.Equal(t, types.Gas(10000)-cost, ctx.Remaining())
}

func TestDispatchOutOfGas(t *testing.T) {
	reg, ctx := testSetup(t, 10) // below sha3 base cost
	before := ctx.Gas
	_, err := reg.Dispatch(SHA3_256, []types.Value{types.NewBytes([]byte("abc"))}, ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrOutOfGas)
	// no side effect on a failed charge
	assert.Equal(t, before, ctx.Gas)
}

func TestDispatchUnknownNative(t *testing.T) {
	reg, ctx := testSetup(t, 10000)
	before := ctx.Gas
	_, err := reg.Dispatch(types.NativeFunctionID{Module: "hash", Function: "md5"}, nil, ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrUnknownNative)
	assert.Equal(t, before, ctx.Gas)

	_, err = reg.DispatchHandle(Handle(99), nil, ctx)
	assert.ErrorIs(t, err, types.ErrUnknownNative)
}

func TestDispatchTypeMismatch(t *testing.T) {
	reg, ctx := testSetup(t, 10000)
	testCases := []struct {
		name string
		args []types.Value
	}{
		{"wrong tag", []types.Value{types.NewU64(1)}},
		{"no args", nil},
		{"too many args", []types.Value{types.NewBytes(nil), types.NewBytes(nil)}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := reg.Dispatch(SHA2_256, tc.args, ctx)
			require.NoError(t, err)
			assert.Equal(t, types.TYPE_MISMATCH, res.Code)
		})
	}
}

func TestDispatchInputTooLong(t *testing.T) {
	reg, err := Stdlib()
	require.NoError(t, err)
	sched, err := gas.ParseSchedule([]byte(`{"id":"tiny","max_input_bytes":4,"ops":{
		"sha2_256":{"base":1,"per_byte":1},"sha3_256":{"base":1,"per_byte":1},
		"keccak_256":{"base":1,"per_byte":1},"blake2b_256":{"base":1,"per_byte":1},
		"vdf_verify":{"base":1,"per_byte":1,"per_log_iteration":1}}}`))
	require.NoError(t, err)
	ctx := NewContext(1000, sched, nil)

	res, err := reg.Dispatch(SHA2_256, []types.Value{types.NewBytes([]byte("12345"))}, ctx)
	require.NoError(t, err)
	assert.Equal(t, types.INVALID_LENGTH, res.Code)
	// rejected before charging
	assert.Equal(t, types.Gas(1000), ctx.Remaining())
}

func TestDispatchVdfVerify(t *testing.T) {
	reg, ctx := testSetup(t, 1000000)
	input := []byte("consensus seed")
	output, proof, err := vdf.Prove(ctx.VDFParams, input, 16)
	require.NoError(t, err)

	args := []types.Value{
		types.NewBytes(input),
		types.NewU64(16),
		types.NewBytes(output),
		types.NewBytes(proof),
	}
	res, err := reg.Dispatch(VDF_VERIFY, args, ctx)
	require.NoError(t, err)
	require.Equal(t, types.OK, res.Code)
	valid, code := res.Values[0].AsBool()
	require.Equal(t, types.OK, code)
	assert.True(t, valid)

	// bit-flipped output, still a canonical group element: false verdict,
	// not an abort
	flipped := append([]byte{}, output...)
	flipped[len(flipped)-1] ^= 0x01
	args[2] = types.NewBytes(flipped)
	res, err = reg.Dispatch(VDF_VERIFY, args, ctx)
	require.NoError(t, err)
	require.Equal(t, types.OK, res.Code)
	valid, _ = res.Values[0].AsBool()
	assert.False(t, valid)

	// flipping the top bit pushes the encoding past the modulus, which is
	// structural damage rather than a failed verdict
	over := append([]byte{}, output...)
	over[0] ^= 0x80
	args[2] = types.NewBytes(over)
	res, err = reg.Dispatch(VDF_VERIFY, args, ctx)
	require.NoError(t, err)
	assert.Equal(t, types.MALFORMED_PROOF, res.Code)

	// truncated proof: recoverable abort
	args[2] = types.NewBytes(output)
	args[3] = types.NewBytes(proof[:len(proof)-1])
	res, err = reg.Dispatch(VDF_VERIFY, args, ctx)
	require.NoError(t, err)
	assert.Equal(t, types.MALFORMED_PROOF, res.Code)

	// iterations as the wrong integer width
	args[1] = types.NewU32(16)
	args[3] = types.NewBytes(proof)
	res, err = reg.Dispatch(VDF_VERIFY, args, ctx)
	require.NoError(t, err)
	assert.Equal(t, types.TYPE_MISMATCH, res.Code)
}

func TestDispatchVdfVerifyMissingParams(t *testing.T) {
	reg, err := Stdlib()
	require.NoError(t, err)
	sched, err := gas.ReadSchedule("default")
	require.NoError(t, err)
	ctx := NewContext(1000000, sched, nil)

	args := []types.Value{
		types.NewBytes([]byte("seed")),
		types.NewU64(16),
		types.NewBytes(make([]byte, 128)),
		types.NewBytes(make([]byte, 512)),
	}
	_, err = reg.Dispatch(VDF_VERIFY, args, ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrMissingVDFParams)
	// rejected before charging
	assert.Equal(t, types.Gas(1000000), ctx.Remaining())
}

func TestDispatchIdempotent(t *testing.T) {
	run := func() (NativeResult, types.Gas) {
		reg, ctx := testSetup(t, 50000)
		res, err := reg.Dispatch(SHA3_256, []types.Value{types.NewBytes([]byte("same input"))}, ctx)
		require.NoError(t, err)
		return res, ctx.Remaining()
	}
	res1, gas1 := run()
	res2, gas2 := run()
	assert.Equal(t, gas1, gas2)
	require.Equal(t, res1.Code, res2.Code)
	require.Len(t, res2.Values, len(res1.Values))
	for i := range res1.Values {
		assert.True(t, res1.Values[i].Equal(res2.Values[i]))
	}
}

func TestRegistryRegistration(t *testing.T) {
	r := NewRegistry()
	id := types.NativeFunctionID{Module: "m", Function: "f"}
	fn := func(ctx *Context, args []types.Value) (NativeResult, error) { return okResult(), nil }

	require.NoError(t, r.Register(id, types.OpSha2_256, fn))
	assert.True(t, r.Contains(id))

	err := r.Register(id, types.OpSha2_256, fn)
	assert.ErrorIs(t, err, types.ErrDuplicateRegistration)

	r.Seal()
	err = r.Register(types.NativeFunctionID{Module: "m", Function: "g"}, types.OpSha2_256, fn)
	assert.ErrorIs(t, err, types.ErrRegistrySealed)
}
