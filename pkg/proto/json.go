package proto

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"github.com/valyala/bytebufferpool"

	"github.com/wavesplatform/gowaves-transactions/pkg/errs"
)

// MarshalJSON validates the envelope and writes its structured form as JSON object with keys in schema order.
func (e Envelope[L]) MarshalJSON() ([]byte, error) {
	bag, err := e.Bag()
	if err != nil {
		return nil, err
	}
	fields, err := structured(e.Type(), FamilyBare, bag)
	if err != nil {
		return nil, err
	}
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	if err := writeJSON(buf, fields); err != nil {
		return nil, errors.Wrap(err, "failed to marshal transaction to JSON")
	}
	b := append([]byte(nil), buf.B...)
	if id, err := e.ID.Take(); err == nil {
		if b, err = sjson.SetBytes(b, idField, id.String()); err != nil {
			return nil, errors.Wrap(err, "failed to set transaction id")
		}
	}
	if p, err := e.Proofs.Take(); err == nil {
		proofs := make([]string, len(p))
		for i := range p {
			proofs[i] = p[i].String()
		}
		if b, err = sjson.SetBytes(b, proofsField, proofs); err != nil {
			return nil, errors.Wrap(err, "failed to set transaction proofs")
		}
	}
	return b, nil
}

// UnmarshalJSON reads the discriminant from the "type" field and validates the whole object.
func (e *Envelope[L]) UnmarshalJSON(data []byte) error {
	env, err := ParseJSON[L](data)
	if err != nil {
		return err
	}
	*e = env
	return nil
}

// ParseJSON decodes a JSON object into a validated envelope. Numbers are kept as json.Number,
// so LONG values are exact.
func ParseJSON[L Long[L]](data []byte) (Envelope[L], error) {
	if !gjson.ValidBytes(data) {
		return Envelope[L]{}, errors.New("invalid JSON")
	}
	tr := gjson.GetBytes(data, typeField)
	switch {
	case !tr.Exists():
		return Envelope[L]{}, errs.NewMissingField(0, typeField)
	case tr.Type != gjson.Number:
		return Envelope[L]{}, errs.NewInvalidType(0, typeField, "integer", tr.Value())
	}
	d := json.NewDecoder(bytes.NewReader(data))
	d.UseNumber()
	var bag map[string]any
	if err := d.Decode(&bag); err != nil {
		return Envelope[L]{}, errors.Wrap(err, "failed to decode JSON object")
	}
	return ValidateBag[L](bag)
}

func writeJSON(buf *bytebufferpool.ByteBuffer, v any) error {
	switch x := v.(type) {
	case *Structured:
		buf.WriteByte('{')
		for el, i := x.Front(), 0; el != nil; el, i = el.Next(), i+1 {
			if i > 0 {
				buf.WriteByte(',')
			}
			k, err := json.Marshal(el.Key)
			if err != nil {
				return err
			}
			buf.Write(k)
			buf.WriteByte(':')
			if err := writeJSON(buf, el.Value); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil
	case []any:
		buf.WriteByte('[')
		for i, item := range x {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return err
		}
		buf.Write(b)
		return nil
	}
}
