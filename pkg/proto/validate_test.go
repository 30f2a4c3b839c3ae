package proto

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wavesplatform/gowaves-transactions/pkg/errs"
)

func requireTxError(t *testing.T, err error, kind errs.Kind, field string) {
	t.Helper()
	require.Error(t, err)
	var te *errs.TxError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, kind, te.Kind(), err.Error())
	assert.Equal(t, field, te.Field(), err.Error())
}

func TestValidateAllVariants(t *testing.T) {
	for _, s := range Schemas() {
		t.Run(s.Name, func(t *testing.T) {
			env, err := Validate[Int64](s.Type, fixtureBag(t, s.Type))
			require.NoError(t, err)
			assert.Equal(t, s.Type, env.Type())
			assert.Equal(t, FamilyBare, env.Family())
		})
	}
}

func TestValidateUnknownVariant(t *testing.T) {
	for _, tt := range []TransactionType{0, 1, 2, 16, 99, 255} {
		_, err := Validate[Int64](tt, fixtureBag(t, TransferTransaction))
		assert.ErrorIs(t, err, errs.ErrUnknownVariant)
		assert.False(t, tt.Known())
	}
	bag := fixtureBag(t, TransferTransaction)
	bag["type"] = json.Number("99")
	_, err := ValidateBag[Int64](bag)
	assert.ErrorIs(t, err, errs.ErrUnknownVariant)

	for _, raw := range []any{json.Number("-1"), json.Number("300"), int64(-1)} {
		bag["type"] = raw
		_, err = ValidateBag[Int64](bag)
		requireTxError(t, err, errs.UnknownVariant, "type")
		assert.EqualError(t, err, fmt.Sprintf("unknown transaction type %v", raw))
	}
}

func TestSchemaRegistry(t *testing.T) {
	schemas := Schemas()
	require.Len(t, schemas, TransactionTypesCount)
	assert.Equal(t, 13, TransactionTypesCount)
	names := make(map[string]bool)
	for i, s := range schemas {
		assert.Equal(t, TransactionType(i+3), s.Type)
		assert.False(t, names[s.Name], "duplicate schema name %s", s.Name)
		names[s.Name] = true
		got, err := SchemaOf(s.Type)
		require.NoError(t, err)
		assert.Same(t, s, got)
	}
	_, err := SchemaOf(99)
	assert.ErrorIs(t, err, errs.ErrUnknownVariant)
}

func TestSchemaFamilies(t *testing.T) {
	s, err := SchemaOf(CreateAliasTransaction)
	require.NoError(t, err)
	base := []string{"version", "senderPublicKey", "timestamp", "fee", "alias"}
	assert.Equal(t, base, s.FieldNames(FamilyBare))
	assert.Equal(t, append(base, "id"), s.FieldNames(FamilyWithID))
	assert.Equal(t, append(base, "proofs"), s.FieldNames(FamilyWithProofs))
	assert.Equal(t, append(base, "id", "proofs"), s.FieldNames(FamilyComplete))
	assert.Len(t, Families, 4)
}

func TestTransferScenario(t *testing.T) {
	env, err := ValidateBag[Int64](decodeBag(t, transferScenario))
	require.NoError(t, err)
	tx, ok := env.Tx.(Transfer[Int64])
	require.True(t, ok)
	assert.True(t, tx.AssetID.Null())
	assert.True(t, tx.FeeAssetID.Null())
	assert.Equal(t, Base58(""), tx.Attachment.Unwrap())
	assert.Equal(t, Int64(500), tx.Amount)
	assert.Equal(t, Int64(100000), tx.Fee)
	assert.Equal(t, byte(2), tx.Version)
	assert.Equal(t, Base58("abc"), tx.SenderPK)
	assert.Equal(t, "3P...", tx.Recipient)

	b, err := MarshalBinary[Int64](tx)
	require.NoError(t, err)
	decoded, err := UnmarshalBinary[Int64](b)
	require.NoError(t, err)
	assert.Equal(t, tx, decoded)
}

func TestTransferAbsentAssetIsNotDefaulted(t *testing.T) {
	bag := decodeBag(t, transferScenario)
	delete(bag, "assetId")
	env, err := Validate[Int64](TransferTransaction, bag)
	require.NoError(t, err)
	tx := env.Tx.(Transfer[Int64])
	assert.True(t, tx.AssetID.Absent())
	fields, err := env.Fields()
	require.NoError(t, err)
	_, ok := fields.Get("assetId")
	assert.False(t, ok)
}

func TestExchangeScenario(t *testing.T) {
	env, err := Validate[Int64](ExchangeTransaction, fixtureBag(t, ExchangeTransaction))
	require.NoError(t, err)
	tx := env.Tx.(Exchange[Int64])
	assert.Equal(t, Buy, tx.Order1.OrderType)
	assert.Equal(t, Sell, tx.Order2.OrderType)
	assert.False(t, tx.Order1.AssetPair.PriceAsset.Present)
	assert.True(t, tx.Order1.AssetPair.AmountAsset.Present)
	assert.Equal(t, Proofs{testProof}, tx.Order1.Proofs)

	bag := fixtureBag(t, ExchangeTransaction)
	bag["order1"].(map[string]any)["orderType"] = "hold"
	_, err = Validate[Int64](ExchangeTransaction, bag)
	requireTxError(t, err, errs.InvalidEnum, "order1.orderType")
	var te *errs.TxError
	require.ErrorAs(t, err, &te)
	assert.EqualValues(t, ExchangeTransaction, te.TxType())

	bag = fixtureBag(t, ExchangeTransaction)
	bag["order2"].(map[string]any)["orderType"] = "SELL"
	_, err = Validate[Int64](ExchangeTransaction, bag)
	requireTxError(t, err, errs.InvalidEnum, "order2.orderType")
}

func TestDataEntryScenario(t *testing.T) {
	bag := fixtureBag(t, DataTransaction)
	bag["data"] = []any{map[string]any{"key": "k", "type": "integer", "value": "not-a-number"}}
	_, err := Validate[Int64](DataTransaction, bag)
	requireTxError(t, err, errs.InvalidDataEntry, "data[0].value")
}

func TestDataEntries(t *testing.T) {
	env := fixtureEnvelope[Int64](t, DataTransaction)
	tx := env.Tx.(Data[Int64])
	require.Len(t, tx.Entries, 5)
	assert.Equal(t, IntegerDataEntry[Int64]{Key: "int", Value: -5}, tx.Entries[0])
	assert.Equal(t, BooleanDataEntry[Int64]{Key: "bool", Value: true}, tx.Entries[1])
	assert.Equal(t, BinaryDataEntry[Int64]{Key: "bin", Value: "base64:AAEC"}, tx.Entries[2])
	assert.Equal(t, StringDataEntry[Int64]{Key: "str", Value: "hello"}, tx.Entries[3])
	assert.Equal(t, "int", tx.Entries[4].GetKey())

	tests := []struct {
		entry map[string]any
		kind  errs.Kind
		field string
	}{
		{map[string]any{"key": "k", "type": "float", "value": 1}, errs.InvalidEnum, "data[0].type"},
		{map[string]any{"key": "k", "type": 1, "value": 1}, errs.InvalidType, "data[0].type"},
		{map[string]any{"key": "k", "type": "boolean", "value": "true"}, errs.InvalidDataEntry, "data[0].value"},
		{map[string]any{"key": "k", "type": "string", "value": 5}, errs.InvalidDataEntry, "data[0].value"},
		{map[string]any{"key": "k", "type": "binary", "value": "AAEC"}, errs.InvalidDataEntry, "data[0].value"},
		{map[string]any{"key": "k", "type": "integer", "value": true}, errs.InvalidDataEntry, "data[0].value"},
		{map[string]any{"key": "k", "type": "integer", "value": json.Number("9223372036854775808")}, errs.OutOfRange, "data[0].value"},
		{map[string]any{"key": "k", "type": "integer"}, errs.MissingField, "data[0].value"},
		{map[string]any{"type": "integer", "value": 1}, errs.MissingField, "data[0].key"},
		{map[string]any{"key": "k", "type": "integer", "value": 1, "extra": 1}, errs.UnexpectedField, "data[0].extra"},
		{map[string]any{"key": 1, "type": "integer", "value": 1}, errs.InvalidType, "data[0].key"},
	}
	for i, tc := range tests {
		bag := fixtureBag(t, DataTransaction)
		bag["data"] = []any{tc.entry}
		_, err := Validate[Int64](DataTransaction, bag)
		require.Error(t, err, "case %d", i)
		requireTxError(t, err, tc.kind, tc.field)
	}
}

func TestProofsBound(t *testing.T) {
	proofs := func(n int) []any {
		r := make([]any, n)
		for i := range r {
			r[i] = testProof
		}
		return r
	}
	for _, n := range []int{0, 1, 8} {
		bag := fixtureBag(t, TransferTransaction)
		bag["proofs"] = proofs(n)
		env, err := Validate[Int64](TransferTransaction, bag)
		require.NoError(t, err, "%d proofs", n)
		assert.Len(t, env.Proofs.Unwrap(), n)
		assert.Equal(t, FamilyWithProofs, env.Family())
	}
	bag := fixtureBag(t, TransferTransaction)
	bag["proofs"] = proofs(9)
	_, err := Validate[Int64](TransferTransaction, bag)
	requireTxError(t, err, errs.ProofCountExceeded, "proofs")
	assert.ErrorIs(t, err, errs.ErrProofCountExceeded)

	bag = fixtureBag(t, ExchangeTransaction)
	bag["order2"].(map[string]any)["proofs"] = proofs(9)
	_, err = Validate[Int64](ExchangeTransaction, bag)
	requireTxError(t, err, errs.ProofCountExceeded, "order2.proofs")

	bag = fixtureBag(t, TransferTransaction)
	bag["proofs"] = []any{testProof, "0OIl"}
	_, err = Validate[Int64](TransferTransaction, bag)
	requireTxError(t, err, errs.InvalidType, "proofs[1]")
}

func TestValidateIDAndProofs(t *testing.T) {
	bag := fixtureBag(t, LeaseTransaction)
	bag["id"] = testLease
	bag["proofs"] = []any{testProof}
	env, err := Validate[Int64](LeaseTransaction, bag)
	require.NoError(t, err)
	assert.Equal(t, FamilyComplete, env.Family())
	assert.Equal(t, Base58(testLease), env.ID.Unwrap())
	assert.Equal(t, Proofs{testProof}, env.Proofs.Unwrap())

	bag["id"] = 5
	_, err = Validate[Int64](LeaseTransaction, bag)
	requireTxError(t, err, errs.InvalidType, "id")
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		tt     TransactionType
		modify func(bag map[string]any)
		kind   errs.Kind
		field  string
	}{
		{"missing recipient", TransferTransaction, func(b map[string]any) { delete(b, "recipient") }, errs.MissingField, "recipient"},
		{"missing fee", TransferTransaction, func(b map[string]any) { delete(b, "fee") }, errs.MissingField, "fee"},
		{"missing sender", IssueTransaction, func(b map[string]any) { delete(b, "senderPublicKey") }, errs.MissingField, "senderPublicKey"},
		{"unexpected field", TransferTransaction, func(b map[string]any) { b["chainId"] = 87 }, errs.UnexpectedField, "chainId"},
		{"reissue has no chain id", ReissueTransaction, func(b map[string]any) { b["chainId"] = 87 }, errs.UnexpectedField, "chainId"},
		{"amount is not a number", TransferTransaction, func(b map[string]any) { b["amount"] = "abc" }, errs.InvalidType, "amount"},
		{"amount is fractional", TransferTransaction, func(b map[string]any) { b["amount"] = json.Number("1.5") }, errs.InvalidType, "amount"},
		{"bool as string", ReissueTransaction, func(b map[string]any) { b["reissuable"] = "true" }, errs.InvalidType, "reissuable"},
		{"timestamp as string", LeaseTransaction, func(b map[string]any) { b["timestamp"] = "100" }, errs.InvalidType, "timestamp"},
		{"negative fee", TransferTransaction, func(b map[string]any) { b["fee"] = -1 }, errs.OutOfRange, "fee"},
		{"negative amount", LeaseTransaction, func(b map[string]any) { b["amount"] = json.Number("-1") }, errs.OutOfRange, "amount"},
		{"zero version", TransferTransaction, func(b map[string]any) { b["version"] = 0 }, errs.OutOfRange, "version"},
		{"large version", TransferTransaction, func(b map[string]any) { b["version"] = 256 }, errs.OutOfRange, "version"},
		{"decimals overflow", IssueTransaction, func(b map[string]any) { b["decimals"] = 300 }, errs.OutOfRange, "decimals"},
		{"huge fee", TransferTransaction, func(b map[string]any) { b["fee"] = json.Number("9223372036854775808") }, errs.OutOfRange, "fee"},
		{"chain id range", BurnTransaction, func(b map[string]any) { b["chainId"] = 256 }, errs.OutOfRange, "chainId"},
		{"negative chain id", SetScriptTransaction, func(b map[string]any) { b["chainId"] = -1 }, errs.OutOfRange, "chainId"},
		{"chain id type", LeaseCancelTransaction, func(b map[string]any) { b["chainId"] = "W" }, errs.InvalidType, "chainId"},
		{"null chain id", IssueTransaction, func(b map[string]any) { b["chainId"] = nil }, errs.InvalidType, "chainId"},
		{"sponsorship chain id required", SponsorshipTransaction, func(b map[string]any) { delete(b, "chainId") }, errs.MissingField, "chainId"},
		{"set script script required", SetScriptTransaction, func(b map[string]any) { delete(b, "script") }, errs.MissingField, "script"},
		{"set asset script null script", SetAssetScriptTransaction, func(b map[string]any) { b["script"] = nil }, errs.InvalidType, "script"},
		{"script without prefix", IssueTransaction, func(b map[string]any) { b["script"] = "AQa3b8tH" }, errs.InvalidType, "script"},
		{"invalid base58", ReissueTransaction, func(b map[string]any) { b["assetId"] = "0OIl" }, errs.InvalidType, "assetId"},
		{"empty transfers", MassTransferTransaction, func(b map[string]any) { b["transfers"] = []any{} }, errs.OutOfRange, "transfers"},
		{"negative transfer", MassTransferTransaction, func(b map[string]any) {
			b["transfers"].([]any)[1].(map[string]any)["amount"] = -2
		}, errs.OutOfRange, "transfers[1].amount"},
		{"transfer without recipient", MassTransferTransaction, func(b map[string]any) {
			delete(b["transfers"].([]any)[0].(map[string]any), "recipient")
		}, errs.MissingField, "transfers[0].recipient"},
		{"transfers not a list", MassTransferTransaction, func(b map[string]any) { b["transfers"] = "x" }, errs.InvalidType, "transfers"},
		{"mass transfer asset required", MassTransferTransaction, func(b map[string]any) { delete(b, "assetId") }, errs.MissingField, "assetId"},
		{"order not an object", ExchangeTransaction, func(b map[string]any) { b["order1"] = "x" }, errs.InvalidType, "order1"},
		{"order missing matcher", ExchangeTransaction, func(b map[string]any) {
			delete(b["order2"].(map[string]any), "matcherPublicKey")
		}, errs.MissingField, "order2.matcherPublicKey"},
		{"order unexpected field", ExchangeTransaction, func(b map[string]any) {
			b["order1"].(map[string]any)["chainId"] = 87
		}, errs.UnexpectedField, "order1.chainId"},
		{"null price asset", ExchangeTransaction, func(b map[string]any) {
			b["order1"].(map[string]any)["assetPair"].(map[string]any)["priceAsset"] = nil
		}, errs.InvalidType, "order1.assetPair.priceAsset"},
		{"order version", ExchangeTransaction, func(b map[string]any) {
			b["order1"].(map[string]any)["version"] = 0
		}, errs.OutOfRange, "order1.version"},
		{"type mismatch", TransferTransaction, func(b map[string]any) { b["type"] = 5 }, errs.InvalidDiscriminant, "type"},
		{"type not a number", TransferTransaction, func(b map[string]any) { b["type"] = "4" }, errs.InvalidType, "type"},
		{"long string", CreateAliasTransaction, func(b map[string]any) {
			b["alias"] = strings.Repeat("a", MaxBytesLength+1)
		}, errs.OutOfRange, "alias"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			bag := fixtureBag(t, tc.tt)
			tc.modify(bag)
			_, err := Validate[Int64](tc.tt, bag)
			requireTxError(t, err, tc.kind, tc.field)
			assert.True(t, errs.IsValidationError(err))
		})
	}
}

func TestValidatePhaseOrder(t *testing.T) {
	// Header failures win over missing variant fields.
	bag := fixtureBag(t, BurnTransaction)
	bag["fee"] = -1
	delete(bag, "assetId")
	_, err := Validate[Int64](BurnTransaction, bag)
	requireTxError(t, err, errs.OutOfRange, "fee")

	// Missing fields win over unexpected ones.
	bag = fixtureBag(t, BurnTransaction)
	delete(bag, "assetId")
	bag["foo"] = 1
	_, err = Validate[Int64](BurnTransaction, bag)
	requireTxError(t, err, errs.MissingField, "assetId")

	// Chain id is checked last.
	bag = fixtureBag(t, BurnTransaction)
	bag["chainId"] = 1000
	bag["quantity"] = "x"
	_, err = Validate[Int64](BurnTransaction, bag)
	requireTxError(t, err, errs.InvalidType, "quantity")

	// The discriminant is checked first.
	bag = fixtureBag(t, BurnTransaction)
	bag["type"] = 4
	delete(bag, "fee")
	_, err = Validate[Int64](BurnTransaction, bag)
	requireTxError(t, err, errs.InvalidDiscriminant, "type")
}

func TestScriptNullVersusAbsent(t *testing.T) {
	withScript := fixtureEnvelope[Int64](t, IssueTransaction).Tx.(Issue[Int64])
	assert.True(t, withScript.Script.Present())

	bag := fixtureBag(t, IssueTransaction)
	bag["script"] = nil
	env, err := Validate[Int64](IssueTransaction, bag)
	require.NoError(t, err)
	null := env.Tx.(Issue[Int64])
	assert.True(t, null.Script.Null())

	delete(bag, "script")
	env, err = Validate[Int64](IssueTransaction, bag)
	require.NoError(t, err)
	absent := env.Tx.(Issue[Int64])
	assert.True(t, absent.Script.Absent())
	assert.NotEqual(t, null, absent)

	nb, err := MarshalBinary[Int64](null)
	require.NoError(t, err)
	ab, err := MarshalBinary[Int64](absent)
	require.NoError(t, err)
	assert.NotEqual(t, nb, ab)

	decodedNull, err := UnmarshalBinary[Int64](nb)
	require.NoError(t, err)
	assert.True(t, decodedNull.(Issue[Int64]).Script.Null())
	decodedAbsent, err := UnmarshalBinary[Int64](ab)
	require.NoError(t, err)
	assert.True(t, decodedAbsent.(Issue[Int64]).Script.Absent())

	setScript := fixtureEnvelope[Int64](t, SetScriptTransaction).Tx.(SetScript[Int64])
	assert.True(t, setScript.Script.Null())
}

func TestValidateAcceptsGoNumbers(t *testing.T) {
	bag := map[string]any{
		"type":            uint64(8),
		"version":         uint8(2),
		"senderPublicKey": testPK,
		"timestamp":       int64(1480690876160),
		"fee":             float64(100000),
		"amount":          "1000",
		"recipient":       "alias:W:bob",
	}
	env, err := ValidateBag[Int64](bag)
	require.NoError(t, err)
	tx := env.Tx.(Lease[Int64])
	assert.Equal(t, Int64(1000), tx.Amount)
	assert.Equal(t, Int64(100000), tx.Fee)

	bag["fee"] = float64(1 << 60)
	_, err = ValidateBag[Int64](bag)
	requireTxError(t, err, errs.OutOfRange, "fee")

	delete(bag, "type")
	_, err = ValidateBag[Int64](bag)
	requireTxError(t, err, errs.MissingField, "type")
}

func TestValidateDoesNotModifyBag(t *testing.T) {
	bag := fixtureBag(t, ExchangeTransaction)
	before := fixtureBag(t, ExchangeTransaction)
	_, err := Validate[Int64](ExchangeTransaction, bag)
	require.NoError(t, err)
	assert.Equal(t, before, bag)
}
