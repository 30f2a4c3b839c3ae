package deserializer

import (
	"encoding/binary"
	"fmt"

	"github.com/pkg/errors"
)

// ErrNotEnoughBytes is returned, wrapped, by every read that runs past the end of input.
var ErrNotEnoughBytes = errors.New("not enough bytes")

type Deserializer struct {
	b []byte
}

func NewDeserializer(b []byte) *Deserializer {
	return &Deserializer{
		b: b,
	}
}

func (a *Deserializer) take(l int, what string) ([]byte, error) {
	if len(a.b) < l {
		return nil, errors.Wrapf(ErrNotEnoughBytes, "failed to deserialize %s, expected at least %d, found %d",
			what, l, len(a.b))
	}
	out := a.b[:l]
	a.b = a.b[l:]
	return out, nil
}

func (a *Deserializer) Byte() (byte, error) {
	b, err := a.take(1, "byte")
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// InvalidBoolError is returned by Bool for a byte other than 0 or 1.
type InvalidBoolError struct {
	Value byte
}

func (e InvalidBoolError) Error() string {
	return fmt.Sprintf("invalid bool value %d", e.Value)
}

func (a *Deserializer) Bool() (bool, error) {
	b, err := a.take(1, "bool")
	if err != nil {
		return false, err
	}
	switch b[0] {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, InvalidBoolError{Value: b[0]}
	}
}

func (a *Deserializer) Uint16() (uint16, error) {
	b, err := a.take(2, "uint16")
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

func (a *Deserializer) Int64() (int64, error) {
	b, err := a.take(8, "int64")
	if err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(b)), nil // #nosec: two's complement bit pattern
}

// Len of the rest bytes.
func (a *Deserializer) Len() int {
	return len(a.b)
}

func (a *Deserializer) Bytes(length int) ([]byte, error) {
	b, err := a.take(length, "bytes")
	if err != nil {
		return nil, err
	}
	out := make([]byte, length)
	copy(out, b)
	return out, nil
}

func (a *Deserializer) ByteStringWithUint16Len() ([]byte, error) {
	l, err := a.Uint16()
	if err != nil {
		return nil, err
	}
	return a.Bytes(int(l))
}
