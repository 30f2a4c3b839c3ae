package proto

import (
	"encoding/json"
	"fmt"
	"maps"
	"math"
	"math/big"
	"slices"
	"unicode/utf8"

	"github.com/ccoveille/go-safecast"

	"github.com/wavesplatform/gowaves-transactions/pkg/errs"
)

const (
	// MaxBytesLength is the limit of strings and byte strings, they are uint16 length prefixed.
	MaxBytesLength = math.MaxUint16
	// MaxListLength is the limit of transfers and data entries, they are uint16 count prefixed.
	MaxListLength = math.MaxUint16

	maxSafeFloat = 1 << 53
)

// nullValue marks an explicit null of a nullable field in a record.
type nullValue struct{}

// record holds checked and converted field values of one object, an absent field has no key.
type record map[string]any

type numberStatus byte

const (
	numberOK numberStatus = iota
	notNumber
	numberOutOfRange
)

// parseLong converts a bag value to L. Accepted values are json.Number, decimal strings,
// Go integers and float64 values holding integers exactly. Values beyond int64 are reported
// as out of range because they have no canonical binary form.
func parseLong[L Long[L]](raw any) (L, numberStatus) {
	var zero L
	var s string
	switch x := raw.(type) {
	case json.Number:
		s = x.String()
	case string:
		s = x
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) || x != math.Trunc(x) {
			return zero, notNumber
		}
		if math.Abs(x) > maxSafeFloat {
			return zero, numberOutOfRange
		}
		return zero.FromInt64(int64(x)), numberOK
	case float32:
		return parseLong[L](float64(x))
	case int:
		return zero.FromInt64(int64(x)), numberOK
	case int8:
		return zero.FromInt64(int64(x)), numberOK
	case int16:
		return zero.FromInt64(int64(x)), numberOK
	case int32:
		return zero.FromInt64(int64(x)), numberOK
	case int64:
		return zero.FromInt64(x), numberOK
	case uint8:
		return zero.FromInt64(int64(x)), numberOK
	case uint16:
		return zero.FromInt64(int64(x)), numberOK
	case uint32:
		return zero.FromInt64(int64(x)), numberOK
	case uint:
		return parseUnsigned[L](uint64(x))
	case uint64:
		return parseUnsigned[L](x)
	default:
		return zero, notNumber
	}
	l, err := zero.Parse(s)
	if err != nil {
		if _, ok := new(big.Int).SetString(s, 10); ok {
			return zero, numberOutOfRange
		}
		return zero, notNumber
	}
	if _, ok := l.Int64(); !ok {
		return zero, numberOutOfRange
	}
	return l, numberOK
}

func parseUnsigned[L Long[L]](x uint64) (L, numberStatus) {
	var zero L
	v, err := safecast.ToInt64(x)
	if err != nil {
		return zero, numberOutOfRange
	}
	return zero.FromInt64(v), numberOK
}

// parseInteger converts a numeric bag value to int64, strings are not accepted.
func parseInteger(raw any) (int64, numberStatus) {
	if _, ok := raw.(string); ok {
		return 0, notNumber
	}
	v, st := parseLong[Int64](raw)
	return int64(v), st
}

func join(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

func index(path string, i int) string {
	return fmt.Sprintf("%s[%d]", path, i)
}

type validator[L Long[L]] struct {
	tt byte
}

// Validate checks the field bag against the schema of the transaction type and builds the
// typed transaction. The bag may carry "type", "id" and "proofs" besides the schema fields.
// Checks run in phases and the first failure is returned:
//  1. the discriminant is known and agrees with the "type" key of the bag;
//  2. header fields are present, typed and in range;
//  3. variant fields are present and no other keys are given;
//  4. variant values, id and proofs are typed and satisfy their constraints;
//  5. chain ids are single bytes.
func Validate[L Long[L]](t TransactionType, bag map[string]any) (Envelope[L], error) {
	s, err := SchemaOf(t)
	if err != nil {
		return Envelope[L]{}, err
	}
	v := validator[L]{tt: byte(t)}
	rec, err := v.transaction(s, bag)
	if err != nil {
		return Envelope[L]{}, err
	}
	env := Wrap(builders[L]()[t.index()](rec))
	if id, ok := rec[idField].(Base58); ok {
		env = WithID(env, id)
	}
	if proofs, ok := rec[proofsField].(Proofs); ok {
		env = WithProofs(env, proofs)
	}
	return env, nil
}

// ValidateBag reads the discriminant from the "type" key of the bag and validates it.
func ValidateBag[L Long[L]](bag map[string]any) (Envelope[L], error) {
	raw, ok := bag[typeField]
	if !ok {
		return Envelope[L]{}, errs.NewMissingField(0, typeField)
	}
	n, st := parseInteger(raw)
	if st == notNumber {
		return Envelope[L]{}, errs.NewInvalidType(0, typeField, "integer", raw)
	}
	b, err := safecast.ToUint8(n)
	if st != numberOK || err != nil {
		return Envelope[L]{}, errs.NewUnknownDiscriminant(raw)
	}
	return Validate[L](TransactionType(b), bag)
}

func (v validator[L]) transaction(s *Schema, bag map[string]any) (record, error) {
	if err := v.discriminant(bag); err != nil {
		return nil, err
	}
	rec := make(record, len(bag))
	for _, f := range headerFields {
		raw, ok := bag[f.Name]
		if !ok {
			return nil, errs.NewMissingField(v.tt, f.Name)
		}
		val, err := v.value(f, f.Name, raw)
		if err != nil {
			return nil, err
		}
		rec[f.Name] = val
	}
	for _, f := range s.fields {
		if _, ok := bag[f.Name]; !ok && !f.Optional {
			return nil, errs.NewMissingField(v.tt, f.Name)
		}
	}
	if err := v.unexpected("", append(s.FieldNames(FamilyComplete), typeField), bag); err != nil {
		return nil, err
	}
	variant := append(s.Variant(), idFieldSchema, proofsFieldSchema)
	for _, f := range variant {
		if f.Kind == KindChainID {
			continue
		}
		if err := v.set(rec, f, "", bag); err != nil {
			return nil, err
		}
	}
	for _, f := range s.fields {
		if f.Kind != KindChainID {
			continue
		}
		if err := v.set(rec, f, "", bag); err != nil {
			return nil, err
		}
	}
	return rec, nil
}

func (v validator[L]) discriminant(bag map[string]any) error {
	raw, ok := bag[typeField]
	if !ok {
		return nil
	}
	n, st := parseInteger(raw)
	if st == notNumber {
		return errs.NewInvalidType(v.tt, typeField, "integer", raw)
	}
	if st != numberOK || n != int64(v.tt) {
		return errs.NewMismatchedDiscriminant(v.tt, typeField, raw)
	}
	return nil
}

func (v validator[L]) set(rec record, f Field, path string, bag map[string]any) error {
	raw, ok := bag[f.Name]
	if !ok {
		return nil
	}
	val, err := v.value(f, join(path, f.Name), raw)
	if err != nil {
		return err
	}
	rec[f.Name] = val
	return nil
}

// unexpected reports the first key, in lexical order, that is not in the allowed set.
func (v validator[L]) unexpected(path string, allowed []string, bag map[string]any) error {
	for _, k := range slices.Sorted(maps.Keys(bag)) {
		if !slices.Contains(allowed, k) {
			return errs.NewUnexpectedField(v.tt, join(path, k))
		}
	}
	return nil
}

func (v validator[L]) object(fields []Field, path string, raw any) (record, error) {
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, errs.NewInvalidType(v.tt, path, KindObject.String(), raw)
	}
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
		if _, ok := m[f.Name]; !ok && !f.Optional {
			return nil, errs.NewMissingField(v.tt, join(path, f.Name))
		}
	}
	if err := v.unexpected(path, names, m); err != nil {
		return nil, err
	}
	rec := make(record, len(fields))
	for _, f := range fields {
		if err := v.set(rec, f, path, m); err != nil {
			return nil, err
		}
	}
	return rec, nil
}

func (v validator[L]) value(f Field, path string, raw any) (any, error) {
	if raw == nil {
		if f.Nullable {
			return nullValue{}, nil
		}
		return nil, errs.NewInvalidType(v.tt, path, f.Kind.String(), raw)
	}
	switch f.Kind {
	case KindString:
		return v.str(path, raw)
	case KindBase58:
		return v.base58(path, raw)
	case KindBase64:
		return v.base64(path, raw)
	case KindByte, KindChainID:
		return v.byteValue(f, path, raw)
	case KindInteger:
		n, st := parseInteger(raw)
		switch st {
		case notNumber:
			return nil, errs.NewInvalidType(v.tt, path, f.Kind.String(), raw)
		case numberOutOfRange:
			return nil, errs.NewOutOfRange(v.tt, path, fmt.Sprintf("%v does not fit into 8 bytes", raw))
		}
		return n, nil
	case KindBool:
		b, ok := raw.(bool)
		if !ok {
			return nil, errs.NewInvalidType(v.tt, path, f.Kind.String(), raw)
		}
		return b, nil
	case KindLong:
		return v.long(f, path, raw)
	case KindAsset:
		s, ok := raw.(string)
		if !ok {
			return nil, errs.NewInvalidType(v.tt, path, f.Kind.String(), raw)
		}
		a, err := NewOptionalAssetFromString(s)
		if err != nil {
			return nil, errs.NewInvalidType(v.tt, path, f.Kind.String(), raw).Extend(err.Error())
		}
		return a, nil
	case KindOrderType:
		s, ok := raw.(string)
		if !ok {
			return nil, errs.NewInvalidType(v.tt, path, f.Kind.String(), raw)
		}
		ot, err := NewOrderTypeFromString(s)
		if err != nil {
			return nil, errs.NewInvalidEnum(v.tt, path, s)
		}
		return ot, nil
	case KindProofs:
		return v.proofs(path, raw)
	case KindObject:
		return v.object(f.Nested, path, raw)
	case KindList:
		return v.list(f, path, raw)
	case KindDataEntries:
		return v.entries(path, raw)
	default:
		return nil, errs.NewInvalidType(v.tt, path, f.Kind.String(), raw)
	}
}

func (v validator[L]) str(path string, raw any) (string, error) {
	s, ok := raw.(string)
	if !ok {
		return "", errs.NewInvalidType(v.tt, path, KindString.String(), raw)
	}
	if !utf8.ValidString(s) {
		return "", errs.NewInvalidType(v.tt, path, "UTF-8 string", raw)
	}
	if len(s) > MaxBytesLength {
		return "", errs.NewOutOfRange(v.tt, path, fmt.Sprintf("length %d exceeds %d", len(s), MaxBytesLength))
	}
	return s, nil
}

func (v validator[L]) base58(path string, raw any) (Base58, error) {
	s, ok := raw.(string)
	if !ok {
		return "", errs.NewInvalidType(v.tt, path, KindBase58.String(), raw)
	}
	b, err := Base58(s).Bytes()
	if err != nil {
		return "", errs.NewInvalidType(v.tt, path, KindBase58.String(), raw).Extend(err.Error())
	}
	if len(b) > MaxBytesLength {
		return "", errs.NewOutOfRange(v.tt, path, fmt.Sprintf("length %d exceeds %d", len(b), MaxBytesLength))
	}
	return Base58(s), nil
}

func (v validator[L]) base64(path string, raw any) (Base64, error) {
	s, ok := raw.(string)
	if !ok {
		return "", errs.NewInvalidType(v.tt, path, KindBase64.String(), raw)
	}
	b, err := Base64(s).Bytes()
	if err != nil {
		return "", errs.NewInvalidType(v.tt, path, KindBase64.String(), raw).Extend(err.Error())
	}
	if len(b) > MaxBytesLength {
		return "", errs.NewOutOfRange(v.tt, path, fmt.Sprintf("length %d exceeds %d", len(b), MaxBytesLength))
	}
	return Base64(s), nil
}

func (v validator[L]) byteValue(f Field, path string, raw any) (byte, error) {
	n, st := parseInteger(raw)
	if st == notNumber {
		return 0, errs.NewInvalidType(v.tt, path, f.Kind.String(), raw)
	}
	if st != numberOK || n < f.Min || n > math.MaxUint8 {
		return 0, errs.NewOutOfRange(v.tt, path, fmt.Sprintf("%v is not in [%d, %d]", raw, f.Min, math.MaxUint8))
	}
	return byte(n), nil
}

func (v validator[L]) long(f Field, path string, raw any) (L, error) {
	l, st := parseLong[L](raw)
	switch st {
	case notNumber:
		return l, errs.NewInvalidType(v.tt, path, f.Kind.String(), raw)
	case numberOutOfRange:
		return l, errs.NewOutOfRange(v.tt, path, fmt.Sprintf("%v does not fit into 8 bytes", raw))
	}
	if f.NonNegative && l.Sign() < 0 {
		return l, errs.NewOutOfRange(v.tt, path, fmt.Sprintf("%s is negative", l.String()))
	}
	return l, nil
}

func items(raw any) ([]any, bool) {
	switch x := raw.(type) {
	case []any:
		return x, true
	case []string:
		r := make([]any, len(x))
		for i := range x {
			r[i] = x[i]
		}
		return r, true
	case []map[string]any:
		r := make([]any, len(x))
		for i := range x {
			r[i] = x[i]
		}
		return r, true
	default:
		return nil, false
	}
}

func (v validator[L]) proofs(path string, raw any) (Proofs, error) {
	list, ok := items(raw)
	if !ok {
		return nil, errs.NewInvalidType(v.tt, path, KindProofs.String(), raw)
	}
	if len(list) > MaxProofs {
		return nil, errs.NewProofCountExceeded(v.tt, path, len(list), MaxProofs)
	}
	var proofs Proofs
	for i, item := range list {
		p, err := v.base58(index(path, i), item)
		if err != nil {
			return nil, err
		}
		proofs = append(proofs, p)
	}
	return proofs, nil
}

func (v validator[L]) list(f Field, path string, raw any) ([]record, error) {
	list, ok := items(raw)
	if !ok {
		return nil, errs.NewInvalidType(v.tt, path, f.Kind.String(), raw)
	}
	if f.NonEmpty && len(list) == 0 {
		return nil, errs.NewOutOfRange(v.tt, path, "empty list")
	}
	if len(list) > MaxListLength {
		return nil, errs.NewOutOfRange(v.tt, path, fmt.Sprintf("%d items exceed %d", len(list), MaxListLength))
	}
	r := make([]record, len(list))
	for i, item := range list {
		rec, err := v.object(f.Nested, index(path, i), item)
		if err != nil {
			return nil, err
		}
		r[i] = rec
	}
	return r, nil
}

func (v validator[L]) entries(path string, raw any) ([]DataEntry[L], error) {
	list, ok := items(raw)
	if !ok {
		return nil, errs.NewInvalidType(v.tt, path, KindDataEntries.String(), raw)
	}
	if len(list) > MaxListLength {
		return nil, errs.NewOutOfRange(v.tt, path, fmt.Sprintf("%d items exceed %d", len(list), MaxListLength))
	}
	r := make([]DataEntry[L], len(list))
	for i, item := range list {
		e, err := v.entry(index(path, i), item)
		if err != nil {
			return nil, err
		}
		r[i] = e
	}
	return r, nil
}

// entry checks one data entry, the value is checked against the entry's own type tag.
func (v validator[L]) entry(path string, raw any) (DataEntry[L], error) {
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, errs.NewInvalidType(v.tt, path, "data entry object", raw)
	}
	for _, name := range dataEntryFieldNames {
		if _, ok := m[name]; !ok {
			return nil, errs.NewMissingField(v.tt, join(path, name))
		}
	}
	if err := v.unexpected(path, dataEntryFieldNames, m); err != nil {
		return nil, err
	}
	key, err := v.str(join(path, "key"), m["key"])
	if err != nil {
		return nil, err
	}
	tag, ok := m["type"].(string)
	if !ok {
		return nil, errs.NewInvalidType(v.tt, join(path, "type"), KindString.String(), m["type"])
	}
	vt, err := NewDataEntryTypeFromString(tag)
	if err != nil {
		return nil, errs.NewInvalidEnum(v.tt, join(path, "type"), tag)
	}
	valuePath := join(path, "value")
	value := m["value"]
	mismatch := func() error {
		return errs.NewInvalidDataEntry(v.tt, valuePath, fmt.Sprintf("value %v is not of type %s", value, vt))
	}
	switch vt {
	case Integer:
		l, st := parseLong[L](value)
		switch st {
		case notNumber:
			return nil, mismatch()
		case numberOutOfRange:
			return nil, errs.NewOutOfRange(v.tt, valuePath, fmt.Sprintf("%v does not fit into 8 bytes", value))
		}
		return IntegerDataEntry[L]{Key: key, Value: l}, nil
	case Boolean:
		b, ok := value.(bool)
		if !ok {
			return nil, mismatch()
		}
		return BooleanDataEntry[L]{Key: key, Value: b}, nil
	case String:
		if _, ok := value.(string); !ok {
			return nil, mismatch()
		}
		s, err := v.str(valuePath, value)
		if err != nil {
			return nil, err
		}
		return StringDataEntry[L]{Key: key, Value: s}, nil
	case Binary:
		s, ok := value.(string)
		if !ok {
			return nil, mismatch()
		}
		b, err := Base64(s).Bytes()
		if err != nil {
			return nil, mismatch()
		}
		if len(b) > MaxBytesLength {
			return nil, errs.NewOutOfRange(v.tt, valuePath, fmt.Sprintf("length %d exceeds %d", len(b), MaxBytesLength))
		}
		return BinaryDataEntry[L]{Key: key, Value: Base64(s)}, nil
	default:
		return nil, errs.NewInvalidEnum(v.tt, join(path, "type"), tag)
	}
}
