package deserializer

import (
	"encoding/binary"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestDeserializer_Byte(t *testing.T) {
	b := []byte{4}
	d := NewDeserializer(b)
	t.Run("valid", func(t *testing.T) {
		rs, err := d.Byte()
		require.NoError(t, err)
		require.EqualValues(t, 4, rs)
	})
	t.Run("invalid", func(t *testing.T) {
		_, err := d.Byte()
		require.Error(t, err)
		require.True(t, errors.Is(err, ErrNotEnoughBytes))
	})
}

func TestDeserializer_Bool(t *testing.T) {
	d := NewDeserializer([]byte{1, 0, 2})
	v, err := d.Bool()
	require.NoError(t, err)
	require.True(t, v)
	v, err = d.Bool()
	require.NoError(t, err)
	require.False(t, v)
	_, err = d.Bool()
	require.EqualError(t, err, "invalid bool value 2")
	var ibe InvalidBoolError
	require.True(t, errors.As(err, &ibe))
	require.Equal(t, byte(2), ibe.Value)
	_, err = d.Bool()
	require.True(t, errors.Is(err, ErrNotEnoughBytes))
}

func TestDeserializer_Int64(t *testing.T) {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, 100500)
	d := NewDeserializer(b)
	t.Run("valid", func(t *testing.T) {
		rs, err := d.Int64()
		require.NoError(t, err)
		require.EqualValues(t, 100500, rs)
	})
	t.Run("invalid", func(t *testing.T) {
		_, err := d.Int64()
		require.True(t, errors.Is(err, ErrNotEnoughBytes))
	})
}

func TestDeserializer_ByteStringWithUint16Len(t *testing.T) {
	d := NewDeserializer([]byte{0, 3, 'a', 'b', 'c', 0, 5, 'x'})
	rs, err := d.ByteStringWithUint16Len()
	require.NoError(t, err)
	require.Equal(t, []byte("abc"), rs)
	require.Equal(t, 3, d.Len())
	_, err = d.ByteStringWithUint16Len()
	require.True(t, errors.Is(err, ErrNotEnoughBytes))
}
