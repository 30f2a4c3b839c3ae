package errs

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind enumerates the failures reported by transaction validation and decoding.
type Kind byte

const (
	UnknownVariant Kind = iota + 1
	MissingField
	UnexpectedField
	InvalidType
	OutOfRange
	InvalidEnum
	ProofCountExceeded
	InvalidDataEntry
	TruncatedInput
	InvalidDiscriminant
	TrailingBytes
)

func (k Kind) String() string {
	switch k {
	case UnknownVariant:
		return "UnknownVariant"
	case MissingField:
		return "MissingField"
	case UnexpectedField:
		return "UnexpectedField"
	case InvalidType:
		return "InvalidType"
	case OutOfRange:
		return "OutOfRange"
	case InvalidEnum:
		return "InvalidEnum"
	case ProofCountExceeded:
		return "ProofCountExceeded"
	case InvalidDataEntry:
		return "InvalidDataEntry"
	case TruncatedInput:
		return "TruncatedInput"
	case InvalidDiscriminant:
		return "InvalidDiscriminant"
	case TrailingBytes:
		return "TrailingBytes"
	default:
		return fmt.Sprintf("Kind(%d)", byte(k))
	}
}

// TxError is a failure bound to a transaction type and, where applicable, to a field path
// like "order1.orderType" or "transfers[2].amount".
type TxError struct {
	ValidationErrorImpl
	kind    Kind
	txType  byte
	field   string
	message string
}

func newTxError(kind Kind, txType byte, field, message string) *TxError {
	return &TxError{kind: kind, txType: txType, field: field, message: message}
}

func (a TxError) Error() string {
	return a.message
}

func (a TxError) Kind() Kind {
	return a.kind
}

// TxType returns the discriminant of the failed transaction, zero if it was not read yet.
func (a TxError) TxType() byte {
	return a.txType
}

func (a TxError) Field() string {
	return a.field
}

func (a TxError) Extend(message string) error {
	return newTxError(a.kind, a.txType, a.field, fmtExtend(a, message))
}

// Is matches any TxError of the same kind, so errors.Is(err, errs.ErrMissingField) works through wrapping.
func (a TxError) Is(target error) bool {
	switch t := target.(type) {
	case *TxError:
		return t != nil && t.kind == a.kind
	case TxError:
		return t.kind == a.kind
	default:
		return false
	}
}

var (
	ErrUnknownVariant      = &TxError{kind: UnknownVariant}
	ErrMissingField        = &TxError{kind: MissingField}
	ErrUnexpectedField     = &TxError{kind: UnexpectedField}
	ErrInvalidType         = &TxError{kind: InvalidType}
	ErrOutOfRange          = &TxError{kind: OutOfRange}
	ErrInvalidEnum         = &TxError{kind: InvalidEnum}
	ErrProofCountExceeded  = &TxError{kind: ProofCountExceeded}
	ErrInvalidDataEntry    = &TxError{kind: InvalidDataEntry}
	ErrTruncatedInput      = &TxError{kind: TruncatedInput}
	ErrInvalidDiscriminant = &TxError{kind: InvalidDiscriminant}
	ErrTrailingBytes       = &TxError{kind: TrailingBytes}
)

// KindOf extracts the kind of the first TxError in the chain.
func KindOf(err error) (Kind, bool) {
	var te *TxError
	if errors.As(err, &te) {
		return te.kind, true
	}
	return 0, false
}

func NewUnknownVariant(txType byte) *TxError {
	return newTxError(UnknownVariant, txType, "", fmt.Sprintf("unknown transaction type %d", txType))
}

// NewUnknownDiscriminant reports a "type" value that is not a transaction type byte at all,
// like -1 or 300. TxType of the error is 0.
func NewUnknownDiscriminant(value any) *TxError {
	return newTxError(UnknownVariant, 0, "type", fmt.Sprintf("unknown transaction type %v", value))
}

func NewMissingField(txType byte, field string) *TxError {
	return newTxError(MissingField, txType, field,
		fmt.Sprintf("missing required field '%s' of transaction type %d", field, txType))
}

func NewUnexpectedField(txType byte, field string) *TxError {
	return newTxError(UnexpectedField, txType, field,
		fmt.Sprintf("unexpected field '%s' of transaction type %d", field, txType))
}

func NewInvalidType(txType byte, field, expected string, value any) *TxError {
	return newTxError(InvalidType, txType, field,
		fmt.Sprintf("invalid value of field '%s' of transaction type %d: expected %s, got %T", field, txType, expected, value))
}

func NewOutOfRange(txType byte, field, reason string) *TxError {
	return newTxError(OutOfRange, txType, field,
		fmt.Sprintf("value of field '%s' of transaction type %d is out of range: %s", field, txType, reason))
}

func NewInvalidEnum(txType byte, field string, value any) *TxError {
	return newTxError(InvalidEnum, txType, field,
		fmt.Sprintf("invalid value '%v' of field '%s' of transaction type %d", value, field, txType))
}

func NewProofCountExceeded(txType byte, field string, count, limit int) *TxError {
	return newTxError(ProofCountExceeded, txType, field,
		fmt.Sprintf("too many proofs in field '%s' of transaction type %d: %d, expected no more than %d",
			field, txType, count, limit))
}

func NewInvalidDataEntry(txType byte, field, reason string) *TxError {
	return newTxError(InvalidDataEntry, txType, field,
		fmt.Sprintf("invalid data entry '%s' of transaction type %d: %s", field, txType, reason))
}

func NewTruncatedInput(txType byte, field string, cause error) *TxError {
	return newTxError(TruncatedInput, txType, field,
		fmt.Sprintf("truncated input at field '%s' of transaction type %d: %v", field, txType, cause))
}

func NewInvalidDiscriminant(txType byte, field string) *TxError {
	return newTxError(InvalidDiscriminant, txType, field, fmt.Sprintf("invalid transaction type tag %d", txType))
}

func NewTrailingBytes(txType byte, n int) *TxError {
	return newTxError(TrailingBytes, txType, "",
		fmt.Sprintf("%d unexpected bytes after transaction type %d", n, txType))
}

// NewMismatchedDiscriminant reports a "type" value of a field bag that disagrees with the requested transaction type.
func NewMismatchedDiscriminant(txType byte, field string, got any) *TxError {
	return newTxError(InvalidDiscriminant, txType, field,
		fmt.Sprintf("value '%v' of field '%s' does not match transaction type %d", got, field, txType))
}
