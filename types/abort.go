package types

import "errors"

// AbortCode is the numeric failure signal a native function hands back to the
// calling bytecode. Codes are part of the external error-code table: they are
// stable across releases and a retired code is never reassigned.
type AbortCode uint64

const (
	OK                     AbortCode = 0
	TYPE_MISMATCH          AbortCode = 1
	INVALID_LENGTH         AbortCode = 2
	UNKNOWN_NATIVE         AbortCode = 3
	DUPLICATE_REGISTRATION AbortCode = 4
	OUT_OF_GAS             AbortCode = 5
	MALFORMED_PROOF        AbortCode = 6
)

func (c AbortCode) String() string {
	switch c {
	case OK:
		return "OK"
	case TYPE_MISMATCH:
		return "TYPE_MISMATCH"
	case INVALID_LENGTH:
		return "INVALID_LENGTH"
	case UNKNOWN_NATIVE:
		return "UNKNOWN_NATIVE"
	case DUPLICATE_REGISTRATION:
		return "DUPLICATE_REGISTRATION"
	case OUT_OF_GAS:
		return "OUT_OF_GAS"
	case MALFORMED_PROOF:
		return "MALFORMED_PROOF"
	default:
		return "UNKNOWN"
	}
}

// Recoverable reports whether the calling bytecode is allowed to catch the
// abort and branch on it. OUT_OF_GAS and UNKNOWN_NATIVE terminate the
// enclosing transaction instead.
func (c AbortCode) Recoverable() bool {
	switch c {
	case TYPE_MISMATCH, INVALID_LENGTH, MALFORMED_PROOF:
		return true
	default:
		return false
	}
}

// Fatal conditions surface as Go errors to the outer execution result and
// roll the transaction back; they never appear as catchable abort codes.
var (
	ErrOutOfGas              = errors.New("N1|OutOfGas: gas budget exhausted before native execution.")
	ErrUnknownNative         = errors.New("N2|UnknownNative: native identifier is not in the linked table.")
	ErrDuplicateRegistration = errors.New("N3|DuplicateRegistration: native identifier registered twice.")
	ErrRegistrySealed        = errors.New("N4|RegistrySealed: registration after the table was sealed.")
	ErrUnknownOp             = errors.New("N5|UnknownOp: gas schedule has no entry for the operation.")
	ErrMissingVDFParams      = errors.New("N6|MissingVDFParams: context has no VDF parameters configured.")
)
