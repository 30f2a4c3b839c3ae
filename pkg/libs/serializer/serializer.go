package serializer

import (
	"encoding/binary"
	"io"

	"github.com/ccoveille/go-safecast"
	"github.com/pkg/errors"
)

// Serializer writes big-endian fixed width integers and uint16 length prefixed byte strings.
type Serializer struct {
	w io.Writer
}

func New(w io.Writer) *Serializer {
	return &Serializer{w: w}
}

func (a *Serializer) write(b []byte) error {
	_, err := a.w.Write(b)
	return err
}

func (a *Serializer) Byte(b byte) error {
	return a.write([]byte{b})
}

func (a *Serializer) Bool(b bool) error {
	var v byte = 0
	if b {
		v = 1
	}
	return a.write([]byte{v})
}

func (a *Serializer) Uint16(v uint16) error {
	buf := [2]byte{}
	binary.BigEndian.PutUint16(buf[:], v)
	return a.write(buf[:])
}

func (a *Serializer) Uint64(v uint64) error {
	buf := [8]byte{}
	binary.BigEndian.PutUint64(buf[:], v)
	return a.write(buf[:])
}

// Int64 writes the two's complement representation of v.
func (a *Serializer) Int64(v int64) error {
	return a.Uint64(uint64(v)) // #nosec: bit pattern is preserved intentionally
}

func (a *Serializer) Bytes(b []byte) error {
	return a.write(b)
}

// Len writes a uint16 length or count, failing if n does not fit.
func (a *Serializer) Len(n int) error {
	l, err := safecast.ToUint16(n)
	if err != nil {
		return errors.Wrapf(err, "length %d does not fit into two bytes", n)
	}
	return a.Uint16(l)
}

func (a *Serializer) BytesWithUInt16Len(data []byte) error {
	if err := a.Len(len(data)); err != nil {
		return err
	}
	return a.Bytes(data)
}

func (a *Serializer) StringWithUInt16Len(s string) error {
	return a.BytesWithUInt16Len([]byte(s))
}
