package proto

import (
	"cmp"
	"math/big"
	"strconv"

	"github.com/ericlagergren/decimal"
	"github.com/pkg/errors"
)

// Long is the contract of the numeric type used for amounts and fees.
// Implementations must be usable as zero values, because the zero value is
// used as a factory through FromInt64 and Parse.
type Long[T any] interface {
	Cmp(other T) int
	Sign() int
	String() string
	// Int64 reports the value as int64 and whether it fits.
	Int64() (int64, bool)
	FromInt64(v int64) T
	Parse(s string) (T, error)
}

// Int64 is the fixed 64-bit deployment of Long.
type Int64 int64

func (a Int64) Cmp(other Int64) int {
	return cmp.Compare(a, other)
}

func (a Int64) Sign() int {
	return cmp.Compare(a, 0)
}

func (a Int64) String() string {
	return strconv.FormatInt(int64(a), 10)
}

func (a Int64) Int64() (int64, bool) {
	return int64(a), true
}

func (Int64) FromInt64(v int64) Int64 {
	return Int64(v)
}

func (Int64) Parse(s string) (Int64, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid integer '%s'", s)
	}
	return Int64(v), nil
}

// BigInt is the arbitrary-precision deployment of Long. The zero value is 0.
type BigInt struct {
	v *big.Int
}

func NewBigInt(v *big.Int) BigInt {
	return BigInt{v: new(big.Int).Set(v)}
}

func (a BigInt) value() *big.Int {
	if a.v == nil {
		return new(big.Int)
	}
	return a.v
}

// Big returns a copy of the underlying value.
func (a BigInt) Big() *big.Int {
	return new(big.Int).Set(a.value())
}

func (a BigInt) Cmp(other BigInt) int {
	return a.value().Cmp(other.value())
}

func (a BigInt) Sign() int {
	return a.value().Sign()
}

func (a BigInt) String() string {
	return a.value().String()
}

func (a BigInt) Int64() (int64, bool) {
	v := a.value()
	if !v.IsInt64() {
		return 0, false
	}
	return v.Int64(), true
}

func (BigInt) FromInt64(v int64) BigInt {
	return BigInt{v: big.NewInt(v)}
}

func (BigInt) Parse(s string) (BigInt, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return BigInt{}, errors.Errorf("invalid integer '%s'", s)
	}
	return BigInt{v: v}, nil
}

// Decimal is the decimal string deployment of Long. Values are kept in canonical
// integer notation, so "1e3" and "01000" both become "1000". The zero value is 0.
type Decimal string

func (a Decimal) big() *decimal.Big {
	if a == "" {
		return decimal.New(0, 0)
	}
	d, ok := decimal.WithContext(decimal.Context128).SetString(string(a))
	if !ok {
		return decimal.New(0, 0)
	}
	return d
}

func (a Decimal) Cmp(other Decimal) int {
	return a.big().Cmp(other.big())
}

func (a Decimal) Sign() int {
	return a.big().Sign()
}

func (a Decimal) String() string {
	if a == "" {
		return "0"
	}
	return string(a)
}

func (a Decimal) Int64() (int64, bool) {
	i := a.big().Int(nil)
	if !i.IsInt64() {
		return 0, false
	}
	return i.Int64(), true
}

func (Decimal) FromInt64(v int64) Decimal {
	return Decimal(strconv.FormatInt(v, 10))
}

func (Decimal) Parse(s string) (Decimal, error) {
	d, ok := decimal.WithContext(decimal.Context128).SetString(s)
	if !ok || d.IsNaN(0) || d.IsInf(0) {
		return "", errors.Errorf("invalid decimal '%s'", s)
	}
	if !d.IsInt() {
		return "", errors.Errorf("decimal '%s' is not an integer", s)
	}
	return Decimal(d.Int(nil).String()), nil
}
