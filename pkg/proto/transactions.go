package proto

import (
	"github.com/moznion/go-optional"

	"github.com/wavesplatform/gowaves-transactions/pkg/libs/nullable"
)

// Transaction is the closed set of transaction variants. It is implemented only by the
// thirteen variant types of this package, all of them plain values that are never mutated.
type Transaction[L Long[L]] interface {
	GetType() TransactionType
	GetVersion() byte
	GetSenderPK() Base58
	GetTimestamp() int64
	GetFee() L
	// Visit calls the visitor method of the concrete variant.
	Visit(v Visitor[L]) error
}

// Visitor has one method per variant. Adding a variant adds a method here, so every
// dispatch site implemented as a Visitor stops compiling until it handles the new kind.
type Visitor[L Long[L]] interface {
	VisitIssue(tx Issue[L]) error
	VisitTransfer(tx Transfer[L]) error
	VisitReissue(tx Reissue[L]) error
	VisitBurn(tx Burn[L]) error
	VisitExchange(tx Exchange[L]) error
	VisitLease(tx Lease[L]) error
	VisitLeaseCancel(tx LeaseCancel[L]) error
	VisitCreateAlias(tx CreateAlias[L]) error
	VisitMassTransfer(tx MassTransfer[L]) error
	VisitData(tx Data[L]) error
	VisitSetScript(tx SetScript[L]) error
	VisitSponsorship(tx Sponsorship[L]) error
	VisitSetAssetScript(tx SetAssetScript[L]) error
}

// Header holds the fields common to all transactions.
type Header[L Long[L]] struct {
	Version   byte
	SenderPK  Base58
	Timestamp int64
	Fee       L
}

func (h Header[L]) GetVersion() byte {
	return h.Version
}

func (h Header[L]) GetSenderPK() Base58 {
	return h.SenderPK
}

func (h Header[L]) GetTimestamp() int64 {
	return h.Timestamp
}

func (h Header[L]) GetFee() L {
	return h.Fee
}

// Issue is a transaction to issue new asset.
// Script distinguishes an omitted script from an explicit null.
type Issue[L Long[L]] struct {
	Header[L]
	Name        string
	Description string
	Decimals    byte
	Quantity    L
	Reissuable  bool
	ChainID     optional.Option[byte]
	Script      nullable.Value[Base64]
}

func (Issue[L]) GetType() TransactionType {
	return IssueTransaction
}

func (tx Issue[L]) Visit(v Visitor[L]) error {
	return v.VisitIssue(tx)
}

// Transfer moves an amount of an asset. Null or absent AssetID and FeeAssetID denote the native asset.
type Transfer[L Long[L]] struct {
	Header[L]
	Recipient  string
	Amount     L
	AssetID    nullable.Value[Base58]
	FeeAssetID nullable.Value[Base58]
	Attachment optional.Option[Base58]
}

func (Transfer[L]) GetType() TransactionType {
	return TransferTransaction
}

func (tx Transfer[L]) Visit(v Visitor[L]) error {
	return v.VisitTransfer(tx)
}

type Reissue[L Long[L]] struct {
	Header[L]
	AssetID    Base58
	Quantity   L
	Reissuable bool
}

func (Reissue[L]) GetType() TransactionType {
	return ReissueTransaction
}

func (tx Reissue[L]) Visit(v Visitor[L]) error {
	return v.VisitReissue(tx)
}

type Burn[L Long[L]] struct {
	Header[L]
	AssetID  Base58
	Quantity L
	ChainID  optional.Option[byte]
}

func (Burn[L]) GetType() TransactionType {
	return BurnTransaction
}

func (tx Burn[L]) Visit(v Visitor[L]) error {
	return v.VisitBurn(tx)
}

// AssetPair is a pair of assets in an order.
type AssetPair struct {
	AmountAsset OptionalAsset
	PriceAsset  OptionalAsset
}

// Order is a buy or sell intent. Embedded in Exchange it carries its own proofs.
type Order[L Long[L]] struct {
	Version    byte
	SenderPK   Base58
	MatcherPK  Base58
	AssetPair  AssetPair
	OrderType  OrderType
	Price      L
	Amount     L
	Timestamp  int64
	Expiration int64
	MatcherFee L
	Proofs     Proofs
}

type Exchange[L Long[L]] struct {
	Header[L]
	Order1         Order[L]
	Order2         Order[L]
	Price          L
	Amount         L
	BuyMatcherFee  L
	SellMatcherFee L
}

func (Exchange[L]) GetType() TransactionType {
	return ExchangeTransaction
}

func (tx Exchange[L]) Visit(v Visitor[L]) error {
	return v.VisitExchange(tx)
}

type Lease[L Long[L]] struct {
	Header[L]
	Amount    L
	Recipient string
}

func (Lease[L]) GetType() TransactionType {
	return LeaseTransaction
}

func (tx Lease[L]) Visit(v Visitor[L]) error {
	return v.VisitLease(tx)
}

type LeaseCancel[L Long[L]] struct {
	Header[L]
	LeaseID Base58
	ChainID optional.Option[byte]
}

func (LeaseCancel[L]) GetType() TransactionType {
	return LeaseCancelTransaction
}

func (tx LeaseCancel[L]) Visit(v Visitor[L]) error {
	return v.VisitLeaseCancel(tx)
}

type CreateAlias[L Long[L]] struct {
	Header[L]
	Alias string
}

func (CreateAlias[L]) GetType() TransactionType {
	return CreateAliasTransaction
}

func (tx CreateAlias[L]) Visit(v Visitor[L]) error {
	return v.VisitCreateAlias(tx)
}

// MassTransferItem is one payout of a MassTransfer, the order of items is part of the signed payload.
type MassTransferItem[L Long[L]] struct {
	Recipient string
	Amount    L
}

type MassTransfer[L Long[L]] struct {
	Header[L]
	AssetID    nullable.Value[Base58]
	Transfers  []MassTransferItem[L]
	Attachment Base58
}

func (MassTransfer[L]) GetType() TransactionType {
	return MassTransferTransaction
}

func (tx MassTransfer[L]) Visit(v Visitor[L]) error {
	return v.VisitMassTransfer(tx)
}

// DataEntry is a common interface of all types of data entries.
// Keys are not required to be unique within one transaction.
type DataEntry[L Long[L]] interface {
	GetKey() string
	GetValueType() DataEntryType
	dataEntry(L)
}

// IntegerDataEntry stores LONG value.
type IntegerDataEntry[L Long[L]] struct {
	Key   string
	Value L
}

func (e IntegerDataEntry[L]) GetKey() string {
	return e.Key
}

func (e IntegerDataEntry[L]) GetValueType() DataEntryType {
	return Integer
}

func (IntegerDataEntry[L]) dataEntry(L) {}

// BooleanDataEntry represents a key-value pair that stores a bool value.
type BooleanDataEntry[L Long[L]] struct {
	Key   string
	Value bool
}

func (e BooleanDataEntry[L]) GetKey() string {
	return e.Key
}

func (e BooleanDataEntry[L]) GetValueType() DataEntryType {
	return Boolean
}

func (BooleanDataEntry[L]) dataEntry(L) {}

type StringDataEntry[L Long[L]] struct {
	Key   string
	Value string
}

func (e StringDataEntry[L]) GetKey() string {
	return e.Key
}

func (e StringDataEntry[L]) GetValueType() DataEntryType {
	return String
}

func (StringDataEntry[L]) dataEntry(L) {}

// BinaryDataEntry keeps its value in "base64:" text form.
type BinaryDataEntry[L Long[L]] struct {
	Key   string
	Value Base64
}

func (e BinaryDataEntry[L]) GetKey() string {
	return e.Key
}

func (e BinaryDataEntry[L]) GetValueType() DataEntryType {
	return Binary
}

func (BinaryDataEntry[L]) dataEntry(L) {}

type Data[L Long[L]] struct {
	Header[L]
	Entries []DataEntry[L]
}

func (Data[L]) GetType() TransactionType {
	return DataTransaction
}

func (tx Data[L]) Visit(v Visitor[L]) error {
	return v.VisitData(tx)
}

// SetScript sets the account script. A null Script removes it.
type SetScript[L Long[L]] struct {
	Header[L]
	Script  nullable.Value[Base64]
	ChainID optional.Option[byte]
}

func (SetScript[L]) GetType() TransactionType {
	return SetScriptTransaction
}

func (tx SetScript[L]) Visit(v Visitor[L]) error {
	return v.VisitSetScript(tx)
}

type Sponsorship[L Long[L]] struct {
	Header[L]
	AssetID              Base58
	MinSponsoredAssetFee L
	ChainID              byte
}

func (Sponsorship[L]) GetType() TransactionType {
	return SponsorshipTransaction
}

func (tx Sponsorship[L]) Visit(v Visitor[L]) error {
	return v.VisitSponsorship(tx)
}

type SetAssetScript[L Long[L]] struct {
	Header[L]
	AssetID Base58
	Script  Base64
	ChainID optional.Option[byte]
}

func (SetAssetScript[L]) GetType() TransactionType {
	return SetAssetScriptTransaction
}

func (tx SetAssetScript[L]) Visit(v Visitor[L]) error {
	return v.VisitSetAssetScript(tx)
}
