package proto

import (
	"github.com/moznion/go-optional"
)

// Envelope is a transaction with optional id and proofs attached alongside.
// Envelopes are values, the With functions return new envelopes and never change their input.
type Envelope[L Long[L]] struct {
	Tx     Transaction[L]
	ID     optional.Option[Base58]
	Proofs optional.Option[Proofs]
}

// Wrap returns a bare envelope of the transaction.
func Wrap[L Long[L]](tx Transaction[L]) Envelope[L] {
	return Envelope[L]{Tx: tx}
}

// WithID returns a copy of the envelope with the id set, replacing the previous one.
func WithID[L Long[L]](e Envelope[L], id Base58) Envelope[L] {
	r := e.Clone()
	r.ID = optional.Some(id)
	return r
}

// WithProofs returns a copy of the envelope with the proofs set, replacing the previous ones.
// The proofs are copied.
func WithProofs[L Long[L]](e Envelope[L], proofs Proofs) Envelope[L] {
	r := e.Clone()
	r.Proofs = optional.Some(proofs.Clone())
	return r
}

// Family reports which of the id and proofs are attached.
func (e Envelope[L]) Family() Family {
	f := FamilyBare
	if e.ID.IsSome() {
		f |= FamilyWithID
	}
	if e.Proofs.IsSome() {
		f |= FamilyWithProofs
	}
	return f
}

// Type returns the discriminant of the wrapped transaction, 0 for an empty envelope.
func (e Envelope[L]) Type() TransactionType {
	if e.Tx == nil {
		return 0
	}
	return e.Tx.GetType()
}

// Clone returns copy of the envelope that shares no mutable memory with the original.
// Transactions are immutable values and are shared.
func (e Envelope[L]) Clone() Envelope[L] {
	r := Envelope[L]{Tx: e.Tx}
	if id, err := e.ID.Take(); err == nil {
		r.ID = optional.Some(id)
	}
	if p, err := e.Proofs.Take(); err == nil {
		r.Proofs = optional.Some(p.Clone())
	}
	return r
}
