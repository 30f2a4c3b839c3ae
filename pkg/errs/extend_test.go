package errs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtend(t *testing.T) {
	require.EqualError(t, Extend(errors.New("a"), "b"), "b: a")
	require.NoError(t, Extend(nil, "b"))

	err := Extendf(NewMissingField(4, "amount"), "file %q", "lease.json")
	require.EqualError(t, err, `file "lease.json": missing required field 'amount' of transaction type 4`)
	var te *TxError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, MissingField, te.Kind())
	assert.Equal(t, "amount", te.Field())
	assert.Equal(t, byte(4), te.TxType())
}
