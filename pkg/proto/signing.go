package proto

import (
	"github.com/pkg/errors"

	"github.com/wavesplatform/gowaves-transactions/pkg/crypto"
	"github.com/wavesplatform/gowaves-transactions/pkg/errs"
)

//go:generate mockgen -destination ../mock/signer.go -package mock github.com/wavesplatform/gowaves-transactions/pkg/proto Signer

// Signer produces an authorization proof for the canonical bytes of a transaction.
type Signer interface {
	Sign(body []byte) ([]byte, error)
}

// GenerateID returns the transaction identifier: Base58 of BLAKE2b-256 of the canonical bytes.
func GenerateID[L Long[L]](tx Transaction[L]) (Base58, error) {
	body, err := MarshalBinary(tx)
	if err != nil {
		return "", errors.Wrap(err, "failed to generate transaction id")
	}
	d, err := crypto.FastHash(body)
	if err != nil {
		return "", errors.Wrap(err, "failed to generate transaction id")
	}
	return Base58(d.String()), nil
}

// Sign appends the signer's proof to the envelope's proofs and returns the new envelope.
func Sign[L Long[L]](e Envelope[L], signer Signer) (Envelope[L], error) {
	body, err := MarshalBinary(e.Tx)
	if err != nil {
		return Envelope[L]{}, errors.Wrap(err, "failed to sign transaction")
	}
	sig, err := signer.Sign(body)
	if err != nil {
		return Envelope[L]{}, errors.Wrap(err, "failed to sign transaction")
	}
	proofs := e.Proofs.TakeOr(nil)
	if len(proofs) >= MaxProofs {
		return Envelope[L]{}, errs.NewProofCountExceeded(byte(e.Type()), proofsField, len(proofs)+1, MaxProofs)
	}
	proofs = append(proofs.Clone(), NewBase58(sig))
	return WithProofs(e, proofs), nil
}

// WithGeneratedID returns the envelope with the id computed from its transaction.
func WithGeneratedID[L Long[L]](e Envelope[L]) (Envelope[L], error) {
	id, err := GenerateID(e.Tx)
	if err != nil {
		return Envelope[L]{}, err
	}
	return WithID(e, id), nil
}
