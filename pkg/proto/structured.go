package proto

import (
	"encoding/json"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/moznion/go-optional"

	"github.com/wavesplatform/gowaves-transactions/pkg/errs"
	"github.com/wavesplatform/gowaves-transactions/pkg/libs/nullable"
)

// Structured is the structured form of a transaction, keys follow the schema order.
// Nested objects are Structured too, lists are []any.
type Structured = orderedmap.OrderedMap[string, any]

// Bag returns the plain field bag of the envelope. Validate of the bag returns an equal envelope.
// LONG values are json.Number, integers are int64, nested objects are map[string]any.
// The envelope is validated, an invalid transaction, id or proofs is reported as Validate does.
func (e Envelope[L]) Bag() (map[string]any, error) {
	bag, err := plain(e.Tx)
	if err != nil {
		return nil, err
	}
	if id, err := e.ID.Take(); err == nil {
		bag[idField] = id.String()
	}
	if p, err := e.Proofs.Take(); err == nil {
		bag[proofsField] = plainProofs(p)
	}
	if _, err := Validate[L](e.Type(), bag); err != nil {
		return nil, err
	}
	return bag, nil
}

// Fields returns the structured form of the envelope: "type" first, then the fields of the
// envelope's family in schema order.
func (e Envelope[L]) Fields() (*Structured, error) {
	bag, err := e.Bag()
	if err != nil {
		return nil, err
	}
	return structured(e.Type(), e.Family(), bag)
}

// Fields returns the structured form of the bare transaction.
func Fields[L Long[L]](tx Transaction[L]) (*Structured, error) {
	return Wrap(tx).Fields()
}

func structured(t TransactionType, f Family, bag map[string]any) (*Structured, error) {
	s, err := SchemaOf(t)
	if err != nil {
		return nil, err
	}
	m := orderedmap.NewOrderedMap[string, any]()
	m.Set(typeField, bag[typeField])
	ordered(m, s.Fields(f), bag)
	return m, nil
}

func ordered(m *Structured, fields []Field, bag map[string]any) {
	for _, f := range fields {
		v, ok := bag[f.Name]
		if !ok {
			continue
		}
		switch f.Kind {
		case KindObject:
			if nested, ok := v.(map[string]any); ok {
				o := orderedmap.NewOrderedMap[string, any]()
				ordered(o, f.Nested, nested)
				v = o
			}
		case KindList:
			if list, ok := v.([]any); ok {
				r := make([]any, len(list))
				for i, item := range list {
					o := orderedmap.NewOrderedMap[string, any]()
					ordered(o, f.Nested, item.(map[string]any))
					r[i] = o
				}
				v = r
			}
		case KindDataEntries:
			if list, ok := v.([]any); ok {
				r := make([]any, len(list))
				for i, item := range list {
					e := item.(map[string]any)
					o := orderedmap.NewOrderedMap[string, any]()
					for _, name := range dataEntryFieldNames {
						o.Set(name, e[name])
					}
					r[i] = o
				}
				v = r
			}
		}
		m.Set(f.Name, v)
	}
}

func plain[L Long[L]](tx Transaction[L]) (map[string]any, error) {
	if tx == nil {
		return nil, errs.NewUnknownDiscriminant(nil).Extend("empty transaction")
	}
	p := &plainer[L]{bag: make(map[string]any)}
	if err := tx.Visit(p); err != nil {
		return nil, err
	}
	p.bag[typeField] = int64(tx.GetType())
	p.bag["version"] = int64(tx.GetVersion())
	p.bag["senderPublicKey"] = tx.GetSenderPK().String()
	p.bag["timestamp"] = tx.GetTimestamp()
	p.bag["fee"] = plainLong(tx.GetFee())
	return p.bag, nil
}

func plainLong[L Long[L]](l L) json.Number {
	return json.Number(l.String())
}

func plainProofs(p Proofs) []any {
	r := make([]any, len(p))
	for i := range p {
		r[i] = p[i].String()
	}
	return r
}

func setOptional[T any](bag map[string]any, name string, v optional.Option[T], conv func(T) any) {
	if x, err := v.Take(); err == nil {
		bag[name] = conv(x)
	}
}

func setNullable[T any](bag map[string]any, name string, v nullable.Value[T], conv func(T) any) {
	switch {
	case v.Null():
		bag[name] = nil
	case v.Present():
		bag[name] = conv(v.Value())
	}
}

func chainIDValue(b byte) any {
	return int64(b)
}

func base58Value(s Base58) any {
	return s.String()
}

func base64Value(s Base64) any {
	return s.String()
}

type plainer[L Long[L]] struct {
	bag map[string]any
}

func (p *plainer[L]) VisitIssue(tx Issue[L]) error {
	p.bag["name"] = tx.Name
	p.bag["description"] = tx.Description
	p.bag["decimals"] = int64(tx.Decimals)
	p.bag["quantity"] = plainLong(tx.Quantity)
	p.bag["reissuable"] = tx.Reissuable
	setOptional(p.bag, "chainId", tx.ChainID, chainIDValue)
	setNullable(p.bag, "script", tx.Script, base64Value)
	return nil
}

func (p *plainer[L]) VisitTransfer(tx Transfer[L]) error {
	p.bag["recipient"] = tx.Recipient
	p.bag["amount"] = plainLong(tx.Amount)
	setNullable(p.bag, "assetId", tx.AssetID, base58Value)
	setNullable(p.bag, "feeAssetId", tx.FeeAssetID, base58Value)
	setOptional(p.bag, "attachment", tx.Attachment, base58Value)
	return nil
}

func (p *plainer[L]) VisitReissue(tx Reissue[L]) error {
	p.bag["assetId"] = tx.AssetID.String()
	p.bag["quantity"] = plainLong(tx.Quantity)
	p.bag["reissuable"] = tx.Reissuable
	return nil
}

func (p *plainer[L]) VisitBurn(tx Burn[L]) error {
	p.bag["assetId"] = tx.AssetID.String()
	p.bag["quantity"] = plainLong(tx.Quantity)
	setOptional(p.bag, "chainId", tx.ChainID, chainIDValue)
	return nil
}

func plainOrder[L Long[L]](o Order[L]) map[string]any {
	return map[string]any{
		"version":          int64(o.Version),
		"senderPublicKey":  o.SenderPK.String(),
		"matcherPublicKey": o.MatcherPK.String(),
		"assetPair": map[string]any{
			"amountAsset": o.AssetPair.AmountAsset.String(),
			"priceAsset":  o.AssetPair.PriceAsset.String(),
		},
		"orderType":  o.OrderType.String(),
		"price":      plainLong(o.Price),
		"amount":     plainLong(o.Amount),
		"timestamp":  o.Timestamp,
		"expiration": o.Expiration,
		"matcherFee": plainLong(o.MatcherFee),
		"proofs":     plainProofs(o.Proofs),
	}
}

func (p *plainer[L]) VisitExchange(tx Exchange[L]) error {
	p.bag["order1"] = plainOrder(tx.Order1)
	p.bag["order2"] = plainOrder(tx.Order2)
	p.bag["price"] = plainLong(tx.Price)
	p.bag["amount"] = plainLong(tx.Amount)
	p.bag["buyMatcherFee"] = plainLong(tx.BuyMatcherFee)
	p.bag["sellMatcherFee"] = plainLong(tx.SellMatcherFee)
	return nil
}

func (p *plainer[L]) VisitLease(tx Lease[L]) error {
	p.bag["amount"] = plainLong(tx.Amount)
	p.bag["recipient"] = tx.Recipient
	return nil
}

func (p *plainer[L]) VisitLeaseCancel(tx LeaseCancel[L]) error {
	p.bag["leaseId"] = tx.LeaseID.String()
	setOptional(p.bag, "chainId", tx.ChainID, chainIDValue)
	return nil
}

func (p *plainer[L]) VisitCreateAlias(tx CreateAlias[L]) error {
	p.bag["alias"] = tx.Alias
	return nil
}

func (p *plainer[L]) VisitMassTransfer(tx MassTransfer[L]) error {
	transfers := make([]any, len(tx.Transfers))
	for i, t := range tx.Transfers {
		transfers[i] = map[string]any{
			"recipient": t.Recipient,
			"amount":    plainLong(t.Amount),
		}
	}
	setNullable(p.bag, "assetId", tx.AssetID, base58Value)
	p.bag["transfers"] = transfers
	p.bag["attachment"] = tx.Attachment.String()
	return nil
}

func (p *plainer[L]) VisitData(tx Data[L]) error {
	entries := make([]any, len(tx.Entries))
	for i, e := range tx.Entries {
		if e == nil {
			return errs.NewInvalidDataEntry(byte(DataTransaction), index("data", i), "nil entry")
		}
		var value any
		switch te := e.(type) {
		case IntegerDataEntry[L]:
			value = plainLong(te.Value)
		case BooleanDataEntry[L]:
			value = te.Value
		case StringDataEntry[L]:
			value = te.Value
		case BinaryDataEntry[L]:
			value = te.Value.String()
		}
		entries[i] = map[string]any{
			"key":   e.GetKey(),
			"type":  e.GetValueType().String(),
			"value": value,
		}
	}
	p.bag["data"] = entries
	return nil
}

func (p *plainer[L]) VisitSetScript(tx SetScript[L]) error {
	setNullable(p.bag, "script", tx.Script, base64Value)
	setOptional(p.bag, "chainId", tx.ChainID, chainIDValue)
	return nil
}

func (p *plainer[L]) VisitSponsorship(tx Sponsorship[L]) error {
	p.bag["assetId"] = tx.AssetID.String()
	p.bag["minSponsoredAssetFee"] = plainLong(tx.MinSponsoredAssetFee)
	p.bag["chainId"] = int64(tx.ChainID)
	return nil
}

func (p *plainer[L]) VisitSetAssetScript(tx SetAssetScript[L]) error {
	p.bag["assetId"] = tx.AssetID.String()
	p.bag["script"] = tx.Script.String()
	setOptional(p.bag, "chainId", tx.ChainID, chainIDValue)
	return nil
}
