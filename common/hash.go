package common

import (
	"crypto/sha256"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

// HashLength is the digest width shared by every hash native.
const HashLength = 32

type Hash [HashLength]byte

func (h Hash) Bytes() []byte { return h[:] }

func BytesToHash(b []byte) Hash {
	var h Hash
	if len(b) > HashLength {
		b = b[len(b)-HashLength:]
	}
	copy(h[HashLength-len(b):], b)
	return h
}

// Sha2_256 computes the SHA2-256 digest of data.
func Sha2_256(data []byte) Hash {
	return Hash(sha256.Sum256(data))
}

// Sha3_256 computes the FIPS-202 SHA3-256 digest of data.
func Sha3_256(data []byte) Hash {
	return Hash(sha3.Sum256(data))
}

// Keccak256 computes the pre-standard Keccak-256 digest of data, the variant
// the EVM ecosystem uses.
func Keccak256(data []byte) Hash {
	hash := sha3.NewLegacyKeccak256()
	hash.Write(data)
	return BytesToHash(hash.Sum(nil))
}

// Blake2b256 computes the BLAKE2b-256 digest of data.
func Blake2b256(data []byte) Hash {
	return Hash(blake2b.Sum256(data))
}

func IsNilHash(h Hash) bool {
	return h == Hash{}
}
