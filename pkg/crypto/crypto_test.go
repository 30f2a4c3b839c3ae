package crypto

import (
	"encoding/hex"
	"testing"

	"github.com/mr-tron/base58/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFastHash(t *testing.T, d, h string) {
	data, err := hex.DecodeString(d)
	if assert.NoError(t, err) {
		expected, err := hex.DecodeString(h)
		if assert.NoError(t, err) {
			actual, err := FastHash(data)
			if assert.NoError(t, err) {
				assert.Equal(t, expected, actual[:])
			}
		}
	}
}

func TestFastHash1(t *testing.T) {
	const (
		dataString = "0100000000000000000000000000000000000000000000000000000000000000"
		hashString = "afbc1c053c2f278e3cbd4409c1c094f184aa459dd2f7fca96d6077730ab9ffe3"
	)
	testFastHash(t, dataString, hashString)
}

func TestFastHash2(t *testing.T) {
	const (
		dataString = "0000000000"
		hashString = "569ed9e4a5463896190447e6ffe37c394c4d77ce470aa29ad762e0286b896832"
	)
	testFastHash(t, dataString, hashString)
}

func TestFastHash3(t *testing.T) {
	const (
		dataString = "64617461"
		hashString = "a035872d6af8639ede962dfe7536b0c150b590f3234a922fb7064cd11971b58e"
	)
	testFastHash(t, dataString, hashString)
}

func TestDigestString(t *testing.T) {
	d, err := FastHash([]byte("data"))
	require.NoError(t, err)
	assert.Equal(t, base58.Encode(d[:]), d.String())
	b, err := base58.Decode(d.String())
	require.NoError(t, err)
	assert.Len(t, b, DigestSize)
}
