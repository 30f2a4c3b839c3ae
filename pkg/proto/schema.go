package proto

import (
	"github.com/wavesplatform/gowaves-transactions/pkg/errs"
)

// FieldKind is the semantic type of a field, it defines both the accepted structured
// values and the binary encoding of the field.
type FieldKind byte

const (
	KindString     FieldKind = iota + 1 // UTF-8 text, uint16 length prefixed
	KindBase58                          // Base58 text, decoded bytes are uint16 length prefixed
	KindBase64                          // "base64:" text, decoded bytes are uint16 length prefixed
	KindByte                            // integer 0..255, one byte
	KindChainID                         // chain id, one byte
	KindInteger                         // int64, eight bytes
	KindBool                            // one byte 0 or 1
	KindLong                            // LONG, eight bytes
	KindAsset                           // Base58 asset id or "WAVES", flag byte then id
	KindOrderType                       // "buy" or "sell", one byte
	KindProofs                          // list of Base58 proofs, uint16 count
	KindObject                          // nested schema
	KindList                            // list of nested schemas, uint16 count
	KindDataEntries                     // list of typed data entries, uint16 count
)

func (k FieldKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBase58:
		return "Base58 string"
	case KindBase64:
		return "base64: string"
	case KindByte, KindChainID:
		return "byte"
	case KindInteger:
		return "integer"
	case KindBool:
		return "boolean"
	case KindLong:
		return "LONG"
	case KindAsset:
		return "asset id"
	case KindOrderType:
		return "order type"
	case KindProofs:
		return "proofs array"
	case KindObject:
		return "object"
	case KindList:
		return "array"
	case KindDataEntries:
		return "data entries array"
	default:
		return "unknown"
	}
}

// Field describes one field of a transaction, an order or another nested structure.
type Field struct {
	Name string
	Kind FieldKind
	// Optional fields may be omitted.
	Optional bool
	// Nullable fields accept an explicit null distinct from omission.
	Nullable bool
	// NonNegative applies to LONG values.
	NonNegative bool
	// NonEmpty applies to lists.
	NonEmpty bool
	// Min is the lower bound of KindByte values.
	Min int64
	// Nested is the schema of KindObject values and KindList items.
	Nested []Field
}

// Family selects one of the parallel transaction families.
type Family byte

const (
	FamilyBare       Family = 0
	FamilyWithID     Family = 1
	FamilyWithProofs Family = 2
	FamilyComplete          = FamilyWithID | FamilyWithProofs
)

// Families lists all families.
var Families = [...]Family{FamilyBare, FamilyWithID, FamilyWithProofs, FamilyComplete}

func (f Family) String() string {
	switch f {
	case FamilyBare:
		return "bare"
	case FamilyWithID:
		return "with id"
	case FamilyWithProofs:
		return "with proofs"
	case FamilyComplete:
		return "with id and proofs"
	default:
		return "unknown"
	}
}

const (
	typeField   = "type"
	idField     = "id"
	proofsField = "proofs"
)

var (
	headerFields = []Field{
		{Name: "version", Kind: KindByte, Min: 1},
		{Name: "senderPublicKey", Kind: KindBase58},
		{Name: "timestamp", Kind: KindInteger},
		{Name: "fee", Kind: KindLong, NonNegative: true},
	}
	idFieldSchema     = Field{Name: idField, Kind: KindBase58}
	proofsFieldSchema = Field{Name: proofsField, Kind: KindProofs}

	assetPairFields = []Field{
		{Name: "amountAsset", Kind: KindAsset},
		{Name: "priceAsset", Kind: KindAsset},
	}
	orderFields = []Field{
		{Name: "version", Kind: KindByte, Min: 1},
		{Name: "senderPublicKey", Kind: KindBase58},
		{Name: "matcherPublicKey", Kind: KindBase58},
		{Name: "assetPair", Kind: KindObject, Nested: assetPairFields},
		{Name: "orderType", Kind: KindOrderType},
		{Name: "price", Kind: KindLong, NonNegative: true},
		{Name: "amount", Kind: KindLong, NonNegative: true},
		{Name: "timestamp", Kind: KindInteger},
		{Name: "expiration", Kind: KindInteger},
		{Name: "matcherFee", Kind: KindLong, NonNegative: true},
		{Name: "proofs", Kind: KindProofs},
	}
	massTransferItemFields = []Field{
		{Name: "recipient", Kind: KindString},
		{Name: "amount", Kind: KindLong, NonNegative: true},
	}
	dataEntryFieldNames = []string{"key", "type", "value"}
)

// Schema is the field table of one transaction variant.
type Schema struct {
	Type   TransactionType
	Name   string
	fields []Field
}

// Variant returns the variant specific fields in canonical order.
func (s *Schema) Variant() []Field {
	return append([]Field(nil), s.fields...)
}

// Header returns the fields common to every transaction.
func (s *Schema) Header() []Field {
	return append([]Field(nil), headerFields...)
}

// Fields returns the full field table of the family in canonical order, without the
// implicit "type" discriminant field.
func (s *Schema) Fields(f Family) []Field {
	r := make([]Field, 0, len(headerFields)+len(s.fields)+2)
	r = append(r, headerFields...)
	r = append(r, s.fields...)
	if f&FamilyWithID != 0 {
		r = append(r, idFieldSchema)
	}
	if f&FamilyWithProofs != 0 {
		r = append(r, proofsFieldSchema)
	}
	return r
}

// FieldNames lists the names of Fields(f).
func (s *Schema) FieldNames(f Family) []string {
	fs := s.Fields(f)
	r := make([]string, len(fs))
	for i := range fs {
		r[i] = fs[i].Name
	}
	return r
}

var registry = [...]*Schema{
	{Type: IssueTransaction, Name: "Issue", fields: []Field{
		{Name: "name", Kind: KindString},
		{Name: "description", Kind: KindString},
		{Name: "decimals", Kind: KindByte},
		{Name: "quantity", Kind: KindLong, NonNegative: true},
		{Name: "reissuable", Kind: KindBool},
		{Name: "chainId", Kind: KindChainID, Optional: true},
		{Name: "script", Kind: KindBase64, Optional: true, Nullable: true},
	}},
	{Type: TransferTransaction, Name: "Transfer", fields: []Field{
		{Name: "recipient", Kind: KindString},
		{Name: "amount", Kind: KindLong, NonNegative: true},
		{Name: "assetId", Kind: KindBase58, Optional: true, Nullable: true},
		{Name: "feeAssetId", Kind: KindBase58, Optional: true, Nullable: true},
		{Name: "attachment", Kind: KindBase58, Optional: true},
	}},
	{Type: ReissueTransaction, Name: "Reissue", fields: []Field{
		{Name: "assetId", Kind: KindBase58},
		{Name: "quantity", Kind: KindLong, NonNegative: true},
		{Name: "reissuable", Kind: KindBool},
	}},
	{Type: BurnTransaction, Name: "Burn", fields: []Field{
		{Name: "assetId", Kind: KindBase58},
		{Name: "quantity", Kind: KindLong, NonNegative: true},
		{Name: "chainId", Kind: KindChainID, Optional: true},
	}},
	{Type: ExchangeTransaction, Name: "Exchange", fields: []Field{
		{Name: "order1", Kind: KindObject, Nested: orderFields},
		{Name: "order2", Kind: KindObject, Nested: orderFields},
		{Name: "price", Kind: KindLong, NonNegative: true},
		{Name: "amount", Kind: KindLong, NonNegative: true},
		{Name: "buyMatcherFee", Kind: KindLong, NonNegative: true},
		{Name: "sellMatcherFee", Kind: KindLong, NonNegative: true},
	}},
	{Type: LeaseTransaction, Name: "Lease", fields: []Field{
		{Name: "amount", Kind: KindLong, NonNegative: true},
		{Name: "recipient", Kind: KindString},
	}},
	{Type: LeaseCancelTransaction, Name: "LeaseCancel", fields: []Field{
		{Name: "leaseId", Kind: KindBase58},
		{Name: "chainId", Kind: KindChainID, Optional: true},
	}},
	{Type: CreateAliasTransaction, Name: "CreateAlias", fields: []Field{
		{Name: "alias", Kind: KindString},
	}},
	{Type: MassTransferTransaction, Name: "MassTransfer", fields: []Field{
		{Name: "assetId", Kind: KindBase58, Nullable: true},
		{Name: "transfers", Kind: KindList, NonEmpty: true, Nested: massTransferItemFields},
		{Name: "attachment", Kind: KindBase58},
	}},
	{Type: DataTransaction, Name: "Data", fields: []Field{
		{Name: "data", Kind: KindDataEntries},
	}},
	{Type: SetScriptTransaction, Name: "SetScript", fields: []Field{
		{Name: "script", Kind: KindBase64, Nullable: true},
		{Name: "chainId", Kind: KindChainID, Optional: true},
	}},
	{Type: SponsorshipTransaction, Name: "Sponsorship", fields: []Field{
		{Name: "assetId", Kind: KindBase58},
		{Name: "minSponsoredAssetFee", Kind: KindLong, NonNegative: true},
		{Name: "chainId", Kind: KindChainID},
	}},
	{Type: SetAssetScriptTransaction, Name: "SetAssetScript", fields: []Field{
		{Name: "assetId", Kind: KindBase58},
		{Name: "script", Kind: KindBase64},
		{Name: "chainId", Kind: KindChainID, Optional: true},
	}},
}

// The registry must have exactly one schema per transaction type.
var _ [TransactionTypesCount]*Schema = registry

// SchemaOf returns the schema registered for the discriminant.
func SchemaOf(t TransactionType) (*Schema, error) {
	if !t.Known() {
		return nil, errs.NewUnknownVariant(byte(t))
	}
	return registry[t.index()], nil
}

// Schemas returns all registered schemas ordered by discriminant.
func Schemas() []*Schema {
	return append([]*Schema(nil), registry[:]...)
}
