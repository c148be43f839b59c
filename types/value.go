package types

import (
	"bytes"

	"github.com/holiman/uint256"
)

// Tag discriminates the runtime Value union.
type Tag uint8

const (
	TagBool Tag = iota
	TagU8
	TagU16
	TagU32
	TagU64
	TagU128
	TagU256
	TagAddress
	TagBytes
	TagVector
	TagStruct
)

func (t Tag) String() string {
	switch t {
	case TagBool:
		return "bool"
	case TagU8:
		return "u8"
	case TagU16:
		return "u16"
	case TagU32:
		return "u32"
	case TagU64:
		return "u64"
	case TagU128:
		return "u128"
	case TagU256:
		return "u256"
	case TagAddress:
		return "address"
	case TagBytes:
		return "bytes"
	case TagVector:
		return "vector"
	case TagStruct:
		return "struct"
	default:
		return "invalid"
	}
}

// AddressLength is the VM account-address width in bytes.
const AddressLength = 32

type Address [AddressLength]byte

// Value is the VM-owned tagged union crossing the native boundary. Natives
// borrow it for the duration of one call; every accessor validates the tag
// before touching the payload and fails with TYPE_MISMATCH instead of
// coercing.
type Value struct {
	tag   Tag
	b     bool
	n     uint64
	wide  *uint256.Int
	addr  Address
	raw   []byte
	elems []Value
}

func NewBool(b bool) Value  { return Value{tag: TagBool, b: b} }
func NewU8(v uint8) Value   { return Value{tag: TagU8, n: uint64(v)} }
func NewU16(v uint16) Value { return Value{tag: TagU16, n: uint64(v)} }
func NewU32(v uint32) Value { return Value{tag: TagU32, n: uint64(v)} }
func NewU64(v uint64) Value { return Value{tag: TagU64, n: v} }

func NewU256(v *uint256.Int) Value {
	return Value{tag: TagU256, wide: new(uint256.Int).Set(v)}
}

// NewU128 rejects operands wider than 128 bits rather than truncating.
func NewU128(v *uint256.Int) (Value, AbortCode) {
	if v.BitLen() > 128 {
		return Value{}, INVALID_LENGTH
	}
	return Value{tag: TagU128, wide: new(uint256.Int).Set(v)}, OK
}

func NewAddress(a Address) Value { return Value{tag: TagAddress, addr: a} }
func NewBytes(b []byte) Value    { return Value{tag: TagBytes, raw: b} }

func NewVector(elems []Value) Value {
	return Value{tag: TagVector, elems: elems}
}

func NewStruct(fields []Value) Value {
	return Value{tag: TagStruct, elems: fields}
}

func (v Value) Kind() Tag { return v.tag }

func (v Value) AsBool() (bool, AbortCode) {
	if v.tag != TagBool {
		return false, TYPE_MISMATCH
	}
	return v.b, OK
}

func (v Value) AsU8() (uint8, AbortCode) {
	if v.tag != TagU8 {
		return 0, TYPE_MISMATCH
	}
	return uint8(v.n), OK
}

func (v Value) AsU16() (uint16, AbortCode) {
	if v.tag != TagU16 {
		return 0, TYPE_MISMATCH
	}
	return uint16(v.n), OK
}

func (v Value) AsU32() (uint32, AbortCode) {
	if v.tag != TagU32 {
		return 0, TYPE_MISMATCH
	}
	return uint32(v.n), OK
}

func (v Value) AsU64() (uint64, AbortCode) {
	if v.tag != TagU64 {
		return 0, TYPE_MISMATCH
	}
	return v.n, OK
}

func (v Value) AsU128() (*uint256.Int, AbortCode) {
	if v.tag != TagU128 {
		return nil, TYPE_MISMATCH
	}
	return new(uint256.Int).Set(v.wide), OK
}

func (v Value) AsU256() (*uint256.Int, AbortCode) {
	if v.tag != TagU256 {
		return nil, TYPE_MISMATCH
	}
	return new(uint256.Int).Set(v.wide), OK
}

func (v Value) AsAddress() (Address, AbortCode) {
	if v.tag != TagAddress {
		return Address{}, TYPE_MISMATCH
	}
	return v.addr, OK
}

// AsBytes returns a view of the underlying vector without copying. The caller
// must not retain it beyond the native call.
func (v Value) AsBytes() ([]byte, AbortCode) {
	if v.tag != TagBytes {
		return nil, TYPE_MISMATCH
	}
	return v.raw, OK
}

func (v Value) AsVector() ([]Value, AbortCode) {
	if v.tag != TagVector {
		return nil, TYPE_MISMATCH
	}
	return v.elems, OK
}

func (v Value) AsStruct() ([]Value, AbortCode) {
	if v.tag != TagStruct {
		return nil, TYPE_MISMATCH
	}
	return v.elems, OK
}

// Equal deep-compares two values, tag first.
func (v Value) Equal(o Value) bool {
	if v.tag != o.tag {
		return false
	}
	switch v.tag {
	case TagBool:
		return v.b == o.b
	case TagU8, TagU16, TagU32, TagU64:
		return v.n == o.n
	case TagU128, TagU256:
		return v.wide.Eq(o.wide)
	case TagAddress:
		return v.addr == o.addr
	case TagBytes:
		return bytes.Equal(v.raw, o.raw)
	case TagVector, TagStruct:
		if len(v.elems) != len(o.elems) {
			return false
		}
		for i := range v.elems {
			if !v.elems[i].Equal(o.elems[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
