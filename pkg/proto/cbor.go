package proto

import (
	"encoding/json"
	"reflect"
	"strconv"

	"github.com/fxamacker/cbor/v2"
	"github.com/pkg/errors"
)

var (
	cborEncMode = mustEncMode(cbor.CanonicalEncOptions())
	cborDecMode = mustDecMode(cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
		DupMapKey:      cbor.DupMapKeyEnforcedAPF,
	})
)

func mustEncMode(opts cbor.EncOptions) cbor.EncMode {
	m, err := opts.EncMode()
	if err != nil {
		panic(err)
	}
	return m
}

func mustDecMode(opts cbor.DecOptions) cbor.DecMode {
	m, err := opts.DecMode()
	if err != nil {
		panic(err)
	}
	return m
}

// MarshalCBOR writes the field bag of the envelope as canonical CBOR map, LONG values are CBOR integers.
func (e Envelope[L]) MarshalCBOR() ([]byte, error) {
	bag, err := e.Bag()
	if err != nil {
		return nil, err
	}
	v, err := cborValue(bag)
	if err != nil {
		return nil, err
	}
	b, err := cborEncMode.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal transaction to CBOR")
	}
	return b, nil
}

func (e *Envelope[L]) UnmarshalCBOR(data []byte) error {
	env, err := ParseCBOR[L](data)
	if err != nil {
		return err
	}
	*e = env
	return nil
}

// ParseCBOR decodes a CBOR map into a validated envelope.
func ParseCBOR[L Long[L]](data []byte) (Envelope[L], error) {
	var bag map[string]any
	if err := cborDecMode.Unmarshal(data, &bag); err != nil {
		return Envelope[L]{}, errors.Wrap(err, "failed to decode CBOR map")
	}
	return ValidateBag[L](bag)
}

func cborValue(v any) (any, error) {
	switch x := v.(type) {
	case json.Number:
		n, err := strconv.ParseInt(x.String(), 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "LONG value '%s' does not fit into CBOR integer", x)
		}
		return n, nil
	case map[string]any:
		r := make(map[string]any, len(x))
		for k, item := range x {
			c, err := cborValue(item)
			if err != nil {
				return nil, err
			}
			r[k] = c
		}
		return r, nil
	case []any:
		r := make([]any, len(x))
		for i, item := range x {
			c, err := cborValue(item)
			if err != nil {
				return nil, err
			}
			r[i] = c
		}
		return r, nil
	default:
		return v, nil
	}
}
