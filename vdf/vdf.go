// Package vdf implements Pietrzak-style verifiable-delay-function checking
// over an RSA group with an injected modulus.
//
// The prover claims output = x^(2^T) mod N for x derived from the input and a
// power-of-two iteration count T. The proof is the chain of midpoint elements
// of the halving protocol; verification folds the claim in log2(T) rounds of
// 128-bit modexps and ends with a single squaring check, so it runs in time
// sublinear in T. All arithmetic is plain modular big-integer math and all
// challenges are SHA3-derived, which keeps the verdict bit-identical across
// validators.
package vdf

import (
	"encoding/binary"
	"fmt"
	"math/big"

	"github.com/obsidianvm/obsidian/common"
	"github.com/obsidianvm/obsidian/types"
)

var one = big.NewInt(1)

// HashToGroup maps an arbitrary input to a group element by counter-expanding
// SHA3-256 to the modulus width and reducing. Deterministic by construction.
func HashToGroup(p *Params, input []byte) *big.Int {
	n := p.elemLen
	buf := make([]byte, 0, n+common.HashLength)
	ctr := make([]byte, 4)
	for i := uint32(0); len(buf) < n; i++ {
		binary.BigEndian.PutUint32(ctr, i)
		h := common.Sha3_256(append(append([]byte{}, input...), ctr...))
		buf = append(buf, h[:]...)
	}
	x := new(big.Int).SetBytes(buf[:n])
	x.Mod(x, p.Modulus)
	if x.Sign() == 0 {
		x.Set(one)
	}
	return x
}

// challenge derives the Fiat-Shamir exponent for one halving round: the low
// 128 bits of SHA3-256 over the fixed-width serialization of (x, y, mu, t).
func challenge(p *Params, x, y, mu *big.Int, t uint64) *big.Int {
	n := p.elemLen
	buf := make([]byte, 0, 3*n+8)
	buf = append(buf, padElement(x, n)...)
	buf = append(buf, padElement(y, n)...)
	buf = append(buf, padElement(mu, n)...)
	buf = binary.BigEndian.AppendUint64(buf, t)
	h := common.Sha3_256(buf)
	return new(big.Int).SetBytes(h[common.HashLength/2:])
}

func padElement(v *big.Int, n int) []byte {
	return v.FillBytes(make([]byte, n))
}

// parseElement rejects anything that is not a canonical group element:
// exactly n bytes, nonzero, strictly below the modulus.
func parseElement(p *Params, raw []byte) (*big.Int, bool) {
	if len(raw) != p.elemLen {
		return nil, false
	}
	v := new(big.Int).SetBytes(raw)
	if v.Sign() == 0 || v.Cmp(p.Modulus) >= 0 {
		return nil, false
	}
	return v, true
}

func isPowerOfTwo(t uint64) bool {
	return t != 0 && t&(t-1) == 0
}

// Verify checks a proof that output is the result of `iterations` sequential
// squarings of the group element derived from input.
//
// The abort code distinguishes caller bugs from honest negatives: structural
// damage (wrong lengths, non-canonical elements) is MALFORMED_PROOF,
// iteration counts outside the configured bounds are INVALID_LENGTH, and a
// well-formed proof that simply does not check out returns (false, OK).
func Verify(p *Params, input []byte, iterations uint64, output []byte, proof []byte) (bool, types.AbortCode) {
	if !isPowerOfTwo(iterations) || iterations < p.MinIterations || iterations > p.MaxIterations {
		return false, types.INVALID_LENGTH
	}
	y, ok := parseElement(p, output)
	if !ok {
		return false, types.MALFORMED_PROOF
	}
	rounds := log2(iterations)
	if len(proof) != rounds*p.elemLen {
		return false, types.MALFORMED_PROOF
	}

	x := HashToGroup(p, input)
	t := iterations
	for i := 0; i < rounds; i++ {
		mu, ok := parseElement(p, proof[i*p.elemLen:(i+1)*p.elemLen])
		if !ok {
			return false, types.MALFORMED_PROOF
		}
		r := challenge(p, x, y, mu, t)
		// x' = x^r * mu, y' = mu^r * y
		xr := new(big.Int).Exp(x, r, p.Modulus)
		x = xr.Mul(xr, mu).Mod(xr, p.Modulus)
		mr := new(big.Int).Exp(mu, r, p.Modulus)
		y = mr.Mul(mr, y).Mod(mr, p.Modulus)
		t >>= 1
	}

	// base case: the residual claim is y = x^2
	check := new(big.Int).Mul(x, x)
	check.Mod(check, p.Modulus)
	return check.Cmp(y) == 0, types.OK
}

// log2 is exact log2 for power-of-two t (t >= 1).
func log2(t uint64) int {
	n := 0
	for t > 1 {
		t >>= 1
		n++
	}
	return n
}

// Prove generates an honest (output, proof) pair by running the full delay
// computation. It exists for tooling and tests; the dispatcher never reaches
// it, and unlike Verify its running time is linear in iterations.
func Prove(p *Params, input []byte, iterations uint64) (output []byte, proof []byte, err error) {
	if !isPowerOfTwo(iterations) || iterations < p.MinIterations || iterations > p.MaxIterations {
		return nil, nil, fmt.Errorf("vdf: iterations %d outside [%d, %d] or not a power of two", iterations, p.MinIterations, p.MaxIterations)
	}
	x := HashToGroup(p, input)
	y := new(big.Int).Set(x)
	for i := uint64(0); i < iterations; i++ {
		y.Mul(y, y).Mod(y, p.Modulus)
	}
	output = padElement(y, p.elemLen)

	xi := new(big.Int).Set(x)
	yi := new(big.Int).Set(y)
	t := iterations
	for t > 1 {
		half := t >> 1
		mu := new(big.Int).Set(xi)
		for i := uint64(0); i < half; i++ {
			mu.Mul(mu, mu).Mod(mu, p.Modulus)
		}
		r := challenge(p, xi, yi, mu, t)
		xr := new(big.Int).Exp(xi, r, p.Modulus)
		xi = xr.Mul(xr, mu).Mod(xr, p.Modulus)
		mr := new(big.Int).Exp(mu, r, p.Modulus)
		yi = mr.Mul(mr, yi).Mod(mr, p.Modulus)
		t = half
		proof = append(proof, padElement(mu, p.elemLen)...)
	}
	return output, proof, nil
}
