package proto

import (
	"encoding/json"
	"strconv"

	"github.com/pkg/errors"
	"github.com/valyala/bytebufferpool"

	"github.com/wavesplatform/gowaves-transactions/pkg/errs"
	"github.com/wavesplatform/gowaves-transactions/pkg/libs/deserializer"
	"github.com/wavesplatform/gowaves-transactions/pkg/libs/serializer"
)

// Presence tags of optional and nullable fields.
const (
	tagAbsent byte = iota
	tagValue
	tagNull
)

// Asset flags.
const (
	assetWaves byte = iota
	assetID
)

// MarshalBinary returns the canonical bytes of the transaction: the type byte followed by the
// fields in schema order. Id and proofs of the transaction are not included, proofs of
// embedded orders are. The transaction is validated first.
func MarshalBinary[L Long[L]](tx Transaction[L]) ([]byte, error) {
	bag, err := plain(tx)
	if err != nil {
		return nil, err
	}
	if _, err := Validate[L](tx.GetType(), bag); err != nil {
		return nil, err
	}
	s, err := SchemaOf(tx.GetType())
	if err != nil {
		return nil, err
	}
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	e := encoder{s: serializer.New(buf), tt: byte(s.Type)}
	if err := e.s.Byte(byte(s.Type)); err != nil {
		return nil, err
	}
	if err := e.fields(s.Fields(FamilyBare), bag); err != nil {
		return nil, errors.Wrapf(err, "failed to marshal %s transaction", s.Name)
	}
	return append([]byte(nil), buf.B...), nil
}

// UnmarshalBinary parses the canonical bytes produced by MarshalBinary. Structural failures
// are TruncatedInput, InvalidDiscriminant or TrailingBytes, field values are checked by Validate.
func UnmarshalBinary[L Long[L]](data []byte) (Transaction[L], error) {
	d := deserializer.NewDeserializer(data)
	tb, err := d.Byte()
	if err != nil {
		return nil, errs.NewTruncatedInput(0, typeField, err)
	}
	t := TransactionType(tb)
	s, err := SchemaOf(t)
	if err != nil {
		return nil, errs.NewInvalidDiscriminant(tb, typeField)
	}
	dec := decoder{d: d, tt: tb}
	bag := map[string]any{typeField: int64(tb)}
	if err := dec.fields(s.Fields(FamilyBare), "", bag); err != nil {
		return nil, err
	}
	if n := d.Len(); n > 0 {
		return nil, errs.NewTrailingBytes(tb, n)
	}
	env, err := Validate[L](t, bag)
	if err != nil {
		return nil, err
	}
	return env.Tx, nil
}

type encoder struct {
	s  *serializer.Serializer
	tt byte
}

func (e encoder) fields(fields []Field, bag map[string]any) error {
	for _, f := range fields {
		v, ok := bag[f.Name]
		if err := e.field(f, v, ok); err != nil {
			return errors.Wrapf(err, "field '%s'", f.Name)
		}
	}
	return nil
}

func (e encoder) field(f Field, v any, present bool) error {
	switch {
	case f.Nullable:
		switch {
		case !present:
			return e.s.Byte(tagAbsent)
		case v == nil:
			return e.s.Byte(tagNull)
		}
		if err := e.s.Byte(tagValue); err != nil {
			return err
		}
	case f.Optional:
		if !present {
			return e.s.Byte(tagAbsent)
		}
		if err := e.s.Byte(tagValue); err != nil {
			return err
		}
	}
	return e.value(f, v)
}

func (e encoder) value(f Field, v any) error {
	switch f.Kind {
	case KindString:
		return e.s.StringWithUInt16Len(v.(string))
	case KindBase58:
		b, err := Base58(v.(string)).Bytes()
		if err != nil {
			return err
		}
		return e.s.BytesWithUInt16Len(b)
	case KindBase64:
		b, err := Base64(v.(string)).Bytes()
		if err != nil {
			return err
		}
		return e.s.BytesWithUInt16Len(b)
	case KindByte, KindChainID:
		return e.s.Byte(byte(v.(int64)))
	case KindInteger:
		return e.s.Int64(v.(int64))
	case KindBool:
		return e.s.Bool(v.(bool))
	case KindLong:
		return e.long(v)
	case KindAsset:
		a, err := NewOptionalAssetFromString(v.(string))
		if err != nil {
			return err
		}
		if !a.Present {
			return e.s.Byte(assetWaves)
		}
		if err := e.s.Byte(assetID); err != nil {
			return err
		}
		b, err := a.ID.Bytes()
		if err != nil {
			return err
		}
		return e.s.BytesWithUInt16Len(b)
	case KindOrderType:
		ot, err := NewOrderTypeFromString(v.(string))
		if err != nil {
			return err
		}
		return e.s.Byte(byte(ot))
	case KindProofs:
		list := v.([]any)
		if err := e.s.Len(len(list)); err != nil {
			return err
		}
		for _, p := range list {
			if err := e.value(Field{Kind: KindBase58}, p); err != nil {
				return err
			}
		}
		return nil
	case KindObject:
		return e.fields(f.Nested, v.(map[string]any))
	case KindList:
		list := v.([]any)
		if err := e.s.Len(len(list)); err != nil {
			return err
		}
		for _, item := range list {
			if err := e.fields(f.Nested, item.(map[string]any)); err != nil {
				return err
			}
		}
		return nil
	case KindDataEntries:
		list := v.([]any)
		if err := e.s.Len(len(list)); err != nil {
			return err
		}
		for _, item := range list {
			if err := e.entry(item.(map[string]any)); err != nil {
				return err
			}
		}
		return nil
	default:
		return errors.Errorf("unsupported field kind %d", f.Kind)
	}
}

func (e encoder) long(v any) error {
	n, err := strconv.ParseInt(v.(json.Number).String(), 10, 64)
	if err != nil {
		return errors.Wrap(err, "LONG value does not fit into 8 bytes")
	}
	return e.s.Int64(n)
}

func (e encoder) entry(m map[string]any) error {
	if err := e.s.StringWithUInt16Len(m["key"].(string)); err != nil {
		return err
	}
	vt, err := NewDataEntryTypeFromString(m["type"].(string))
	if err != nil {
		return err
	}
	if err := e.s.Byte(byte(vt)); err != nil {
		return err
	}
	switch vt {
	case Integer:
		return e.long(m["value"])
	case Boolean:
		return e.s.Bool(m["value"].(bool))
	case Binary:
		return e.value(Field{Kind: KindBase64}, m["value"])
	default:
		return e.s.StringWithUInt16Len(m["value"].(string))
	}
}

type decoder struct {
	d  *deserializer.Deserializer
	tt byte
}

func (d decoder) fail(path string, err error) error {
	if errors.Is(err, deserializer.ErrNotEnoughBytes) {
		return errs.NewTruncatedInput(d.tt, path, err)
	}
	return errors.Wrapf(err, "failed to decode field '%s'", path)
}

func (d decoder) readByte(path string) (byte, error) {
	b, err := d.d.Byte()
	if err != nil {
		return 0, d.fail(path, err)
	}
	return b, nil
}

func (d decoder) readBytes(path string) ([]byte, error) {
	b, err := d.d.ByteStringWithUint16Len()
	if err != nil {
		return nil, d.fail(path, err)
	}
	return b, nil
}

func (d decoder) readCount(path string) (int, error) {
	n, err := d.d.Uint16()
	if err != nil {
		return 0, d.fail(path, err)
	}
	return int(n), nil
}

func (d decoder) readInt64(path string) (int64, error) {
	n, err := d.d.Int64()
	if err != nil {
		return 0, d.fail(path, err)
	}
	return n, nil
}

func (d decoder) fields(fields []Field, path string, bag map[string]any) error {
	for _, f := range fields {
		p := join(path, f.Name)
		present := true
		if f.Nullable || f.Optional {
			tag, err := d.readByte(p)
			if err != nil {
				return err
			}
			switch {
			case tag == tagAbsent:
				present = false
			case tag == tagNull && f.Nullable:
				bag[f.Name] = nil
				continue
			case tag != tagValue:
				return errs.NewInvalidEnum(d.tt, p, tag)
			}
		}
		if !present {
			continue
		}
		v, err := d.value(f, p)
		if err != nil {
			return err
		}
		bag[f.Name] = v
	}
	return nil
}

func (d decoder) value(f Field, path string) (any, error) {
	switch f.Kind {
	case KindString:
		b, err := d.readBytes(path)
		if err != nil {
			return nil, err
		}
		return string(b), nil
	case KindBase58:
		b, err := d.readBytes(path)
		if err != nil {
			return nil, err
		}
		return NewBase58(b).String(), nil
	case KindBase64:
		b, err := d.readBytes(path)
		if err != nil {
			return nil, err
		}
		return NewBase64(b).String(), nil
	case KindByte, KindChainID:
		b, err := d.readByte(path)
		if err != nil {
			return nil, err
		}
		return int64(b), nil
	case KindInteger:
		return d.readInt64(path)
	case KindBool:
		b, err := d.d.Bool()
		if err != nil {
			var ibe deserializer.InvalidBoolError
			if errors.As(err, &ibe) {
				return nil, errs.NewInvalidEnum(d.tt, path, ibe.Value)
			}
			return nil, d.fail(path, err)
		}
		return b, nil
	case KindLong:
		n, err := d.readInt64(path)
		if err != nil {
			return nil, err
		}
		return formatInt(n), nil
	case KindAsset:
		flag, err := d.readByte(path)
		if err != nil {
			return nil, err
		}
		switch flag {
		case assetWaves:
			return WavesAssetName, nil
		case assetID:
			b, err := d.readBytes(path)
			if err != nil {
				return nil, err
			}
			return NewBase58(b).String(), nil
		default:
			return nil, errs.NewInvalidEnum(d.tt, path, flag)
		}
	case KindOrderType:
		b, err := d.readByte(path)
		if err != nil {
			return nil, err
		}
		switch OrderType(b) {
		case Buy, Sell:
			return OrderType(b).String(), nil
		default:
			return nil, errs.NewInvalidEnum(d.tt, path, b)
		}
	case KindProofs:
		n, err := d.readCount(path)
		if err != nil {
			return nil, err
		}
		r := make([]any, n)
		for i := range r {
			b, err := d.readBytes(index(path, i))
			if err != nil {
				return nil, err
			}
			r[i] = NewBase58(b).String()
		}
		return r, nil
	case KindObject:
		m := make(map[string]any, len(f.Nested))
		if err := d.fields(f.Nested, path, m); err != nil {
			return nil, err
		}
		return m, nil
	case KindList:
		n, err := d.readCount(path)
		if err != nil {
			return nil, err
		}
		r := make([]any, n)
		for i := range r {
			m := make(map[string]any, len(f.Nested))
			if err := d.fields(f.Nested, index(path, i), m); err != nil {
				return nil, err
			}
			r[i] = m
		}
		return r, nil
	case KindDataEntries:
		n, err := d.readCount(path)
		if err != nil {
			return nil, err
		}
		r := make([]any, n)
		for i := range r {
			e, err := d.entry(index(path, i))
			if err != nil {
				return nil, err
			}
			r[i] = e
		}
		return r, nil
	default:
		return nil, errors.Errorf("unsupported field kind %d", f.Kind)
	}
}

func (d decoder) entry(path string) (map[string]any, error) {
	key, err := d.readBytes(join(path, "key"))
	if err != nil {
		return nil, err
	}
	tagPath := join(path, "type")
	tag, err := d.readByte(tagPath)
	if err != nil {
		return nil, err
	}
	vt := DataEntryType(tag)
	if vt.String() == "" {
		return nil, errs.NewInvalidEnum(d.tt, tagPath, tag)
	}
	valuePath := join(path, "value")
	var value any
	switch vt {
	case Integer:
		value, err = d.value(Field{Kind: KindLong}, valuePath)
	case Boolean:
		value, err = d.value(Field{Kind: KindBool}, valuePath)
	case Binary:
		value, err = d.value(Field{Kind: KindBase64}, valuePath)
	default:
		value, err = d.value(Field{Kind: KindString}, valuePath)
	}
	if err != nil {
		return nil, err
	}
	return map[string]any{"key": string(key), "type": vt.String(), "value": value}, nil
}

func formatInt(v int64) json.Number {
	return json.Number(strconv.FormatInt(v, 10))
}
