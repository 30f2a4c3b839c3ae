package proto

import (
	"encoding/base64"
	"strings"

	"github.com/jinzhu/copier"
	"github.com/mr-tron/base58/base58"
	"github.com/pkg/errors"
)

// TransactionType is the discriminant of a transaction variant.
type TransactionType byte

// All transaction types supported.
const (
	IssueTransaction TransactionType = iota + 3
	TransferTransaction
	ReissueTransaction
	BurnTransaction
	ExchangeTransaction
	LeaseTransaction
	LeaseCancelTransaction
	CreateAliasTransaction
	MassTransferTransaction
	DataTransaction
	SetScriptTransaction
	SponsorshipTransaction
	SetAssetScriptTransaction
)

const (
	firstTransactionType = IssueTransaction
	lastTransactionType  = SetAssetScriptTransaction
	// TransactionTypesCount is the number of transaction variants, every dispatch table has this length.
	TransactionTypesCount = int(lastTransactionType-firstTransactionType) + 1
)

// Known reports whether the discriminant denotes one of the supported variants.
func (t TransactionType) Known() bool {
	return t >= firstTransactionType && t <= lastTransactionType
}

func (t TransactionType) index() int {
	return int(t - firstTransactionType)
}

const (
	// WavesAssetName is the sentinel that denotes the native asset in asset pairs.
	WavesAssetName = "WAVES"
	scriptPrefix   = "base64:"
	// MaxProofs is the upper bound of the proofs count of a transaction or an order.
	MaxProofs = 8
)

// Base58 is a Base58 encoded byte string: public keys, asset and lease ids, proofs, attachments.
type Base58 string

// NewBase58 encodes bytes as Base58.
func NewBase58(b []byte) Base58 {
	return Base58(base58.Encode(b))
}

// Bytes decodes the string. Only canonical encodings decode successfully.
func (s Base58) Bytes() ([]byte, error) {
	if s == "" {
		return []byte{}, nil
	}
	b, err := base58.Decode(string(s))
	if err != nil {
		return nil, errors.Wrapf(err, "invalid Base58 string '%s'", string(s))
	}
	if base58.Encode(b) != string(s) {
		return nil, errors.Errorf("non-canonical Base58 string '%s'", string(s))
	}
	return b, nil
}

func (s Base58) String() string {
	return string(s)
}

// Base64 is a "base64:" prefixed Base64 string, the text form of scripts and binary data entries.
type Base64 string

func NewBase64(b []byte) Base64 {
	return Base64(scriptPrefix + base64.StdEncoding.EncodeToString(b))
}

// Bytes decodes the string. Only canonical padded encodings decode successfully.
func (s Base64) Bytes() ([]byte, error) {
	str := string(s)
	if !strings.HasPrefix(str, scriptPrefix) {
		return nil, errors.Errorf("no '%s' prefix in '%s'", scriptPrefix, str)
	}
	str = str[len(scriptPrefix):]
	b, err := base64.StdEncoding.Strict().DecodeString(str)
	if err != nil {
		return nil, errors.Wrap(err, "invalid Base64 string")
	}
	if base64.StdEncoding.EncodeToString(b) != str {
		return nil, errors.New("non-canonical Base64 string")
	}
	return b, nil
}

func (s Base64) String() string {
	return string(s)
}

// OptionalAsset identifies an asset of an asset pair, or the native asset if not present.
type OptionalAsset struct {
	Present bool
	ID      Base58
}

func NewOptionalAssetFromString(s string) (OptionalAsset, error) {
	if s == WavesAssetName {
		return OptionalAsset{}, nil
	}
	if _, err := Base58(s).Bytes(); err != nil {
		return OptionalAsset{}, errors.Wrap(err, "failed to create OptionalAsset")
	}
	return OptionalAsset{Present: true, ID: Base58(s)}, nil
}

// String method converts OptionalAsset to its text representation.
func (a OptionalAsset) String() string {
	if a.Present {
		return a.ID.String()
	}
	return WavesAssetName
}

// OrderType is a side of an order, BUY or SELL.
type OrderType byte

const (
	Buy OrderType = iota
	Sell
)

const (
	buyOrderName  = "buy"
	sellOrderName = "sell"
)

func (o OrderType) String() string {
	if o == Buy {
		return buyOrderName
	}
	return sellOrderName
}

// NewOrderTypeFromString accepts only the literal lowercase names.
func NewOrderTypeFromString(s string) (OrderType, error) {
	switch s {
	case buyOrderName:
		return Buy, nil
	case sellOrderName:
		return Sell, nil
	default:
		return 0, errors.Errorf("incorrect OrderType '%s'", s)
	}
}

// DataEntryType is the tag of a data entry.
type DataEntryType byte

// Supported data entry types, the values are the binary tags.
const (
	Integer DataEntryType = iota
	Boolean
	Binary
	String
)

// String translates DataEntryType value to human readable name.
func (vt DataEntryType) String() string {
	switch vt {
	case Integer:
		return "integer"
	case Boolean:
		return "boolean"
	case Binary:
		return "binary"
	case String:
		return "string"
	default:
		return ""
	}
}

func NewDataEntryTypeFromString(s string) (DataEntryType, error) {
	switch s {
	case "integer":
		return Integer, nil
	case "boolean":
		return Boolean, nil
	case "binary":
		return Binary, nil
	case "string":
		return String, nil
	default:
		return 0, errors.Errorf("unknown data entry type '%s'", s)
	}
}

// Proofs is an ordered list of up to MaxProofs authorization strings.
type Proofs []Base58

// NewProofs checks the proofs count and encodings.
func NewProofs(proofs ...Base58) (Proofs, error) {
	if l := len(proofs); l > MaxProofs {
		return nil, errors.Errorf("too many proofs %d, expected no more than %d", l, MaxProofs)
	}
	for i, p := range proofs {
		if _, err := p.Bytes(); err != nil {
			return nil, errors.Wrapf(err, "invalid proof at position %d", i)
		}
	}
	return Proofs(proofs).Clone(), nil
}

// Clone returns a copy that shares no memory with the original.
func (p Proofs) Clone() Proofs {
	if p == nil {
		return nil
	}
	out := make(Proofs, 0, len(p))
	if err := copier.Copy(&out, &p); err != nil {
		panic(err.Error())
	}
	return out
}
