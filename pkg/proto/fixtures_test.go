package proto

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	testPK    = "BJ3Q8kNPByCWHwJ3RLn55UPzUDVgnh64EwYAU5iCj6z6"
	testAsset = "8LQW8f7P5d5PZM7GtZEBgaqRPGSzS3DfPuiXrURJ4AJS"
	testLease = "7qtv3qr1vWCrJyoX7Sm58MisHbYDRZJWQfUZ9S2Eum6V"
	testProof = "6JAr35fMADxhhK5jEXCKBzZAMCBoXBPcW4D9iaBDnhATxQ7Dk5EgJKBSWCeauqftSUVWgY79bMjdxqomCRxafFd"
)

const transferScenario = `{"type":4,"senderPublicKey":"abc","version":2,"timestamp":100,"fee":100000,
"recipient":"3P...","amount":500,"assetId":null,"feeAssetId":null,"attachment":""}`

const orderJSON = `{"version":3,"senderPublicKey":"` + testPK + `","matcherPublicKey":"` + testLease + `",
"assetPair":{"amountAsset":"` + testAsset + `","priceAsset":"WAVES"},"orderType":"%s","price":1000,
"amount":50,"timestamp":1526992336241,"expiration":1529584336241,"matcherFee":300000,"proofs":["` + testProof + `"]}`

// fixtures holds one valid JSON object per transaction type.
var fixtures = map[TransactionType]string{
	IssueTransaction: `{"type":3,"version":2,"senderPublicKey":"` + testPK + `","timestamp":1480690876160,
"fee":100000000,"name":"WBTC","description":"Bitcoin Token","decimals":8,"quantity":2100000000000000,
"reissuable":false,"chainId":87,"script":"base64:AQa3b8tH"}`,
	TransferTransaction: transferScenario,
	ReissueTransaction: `{"type":5,"version":2,"senderPublicKey":"` + testPK + `","timestamp":1480690876160,
"fee":100000000,"assetId":"` + testAsset + `","quantity":100,"reissuable":true}`,
	BurnTransaction: `{"type":6,"version":2,"senderPublicKey":"` + testPK + `","timestamp":1480690876160,
"fee":100000,"assetId":"` + testAsset + `","quantity":10,"chainId":84}`,
	ExchangeTransaction: `{"type":7,"version":2,"senderPublicKey":"` + testPK + `","timestamp":1526992336241,
"fee":300000,"order1":` + sprintf(orderJSON, "buy") + `,"order2":` + sprintf(orderJSON, "sell") + `,
"price":1000,"amount":50,"buyMatcherFee":300000,"sellMatcherFee":300000}`,
	LeaseTransaction: `{"type":8,"version":2,"senderPublicKey":"` + testPK + `","timestamp":1480690876160,
"fee":100000,"amount":1000,"recipient":"alias:W:bob"}`,
	LeaseCancelTransaction: `{"type":9,"version":2,"senderPublicKey":"` + testPK + `","timestamp":1480690876160,
"fee":100000,"leaseId":"` + testLease + `","chainId":87}`,
	CreateAliasTransaction: `{"type":10,"version":2,"senderPublicKey":"abc","timestamp":100,"fee":100000,"alias":"bob"}`,
	MassTransferTransaction: `{"type":11,"version":1,"senderPublicKey":"` + testPK + `","timestamp":1480690876160,
"fee":200000,"assetId":null,"transfers":[{"recipient":"3MpRHWnLuT6aF5yEnX4mQYjB9VqkxBEbJ4Q","amount":1},
{"recipient":"alias:T:x","amount":2}],"attachment":"2VfUX"}`,
	DataTransaction: `{"type":12,"version":1,"senderPublicKey":"` + testPK + `","timestamp":1480690876160,
"fee":100000,"data":[{"key":"int","type":"integer","value":-5},{"key":"bool","type":"boolean","value":true},
{"key":"bin","type":"binary","value":"base64:AAEC"},{"key":"str","type":"string","value":"hello"},
{"key":"int","type":"integer","value":7}]}`,
	SetScriptTransaction: `{"type":13,"version":1,"senderPublicKey":"` + testPK + `","timestamp":1480690876160,
"fee":1000000,"script":null,"chainId":84}`,
	SponsorshipTransaction: `{"type":14,"version":1,"senderPublicKey":"` + testPK + `","timestamp":1480690876160,
"fee":100000000,"assetId":"` + testAsset + `","minSponsoredAssetFee":100000,"chainId":87}`,
	SetAssetScriptTransaction: `{"type":15,"version":1,"senderPublicKey":"` + testPK + `","timestamp":1480690876160,
"fee":100000000,"assetId":"` + testAsset + `","script":"base64:AQa3b8tH"}`,
}

func sprintf(format, v string) string {
	return string(bytes.Replace([]byte(format), []byte("%s"), []byte(v), 1))
}

func decodeBag(t *testing.T, s string) map[string]any {
	d := json.NewDecoder(bytes.NewReader([]byte(s)))
	d.UseNumber()
	var bag map[string]any
	require.NoError(t, d.Decode(&bag))
	return bag
}

func fixtureBag(t *testing.T, tt TransactionType) map[string]any {
	s, ok := fixtures[tt]
	require.True(t, ok, "no fixture for type %d", tt)
	return decodeBag(t, s)
}

func fixtureEnvelope[L Long[L]](t *testing.T, tt TransactionType) Envelope[L] {
	env, err := Validate[L](tt, fixtureBag(t, tt))
	require.NoError(t, err)
	return env
}
