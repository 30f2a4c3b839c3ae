package crypto

import (
	"github.com/mr-tron/base58/base58"
	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"
)

const DigestSize = 32

// Digest is a BLAKE2b-256 hash, the form of Waves transaction identifiers.
type Digest [DigestSize]byte

// String returns the Base58 representation of the digest.
func (d Digest) String() string {
	return base58.Encode(d[:])
}

// FastHash returns BLAKE2b-256 hash of the data.
func FastHash(data []byte) (Digest, error) {
	var d Digest
	h, err := blake2b.New256(nil)
	if err != nil {
		return d, errors.Wrap(err, "failed to create BLAKE2b hash")
	}
	if _, err := h.Write(data); err != nil {
		return d, errors.Wrap(err, "failed to hash data")
	}
	h.Sum(d[:0])
	return d, nil
}
