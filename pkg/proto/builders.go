package proto

import (
	"github.com/moznion/go-optional"

	"github.com/wavesplatform/gowaves-transactions/pkg/libs/nullable"
)

func get[T any](r record, name string) T {
	v, _ := r[name].(T)
	return v
}

func opt[T any](r record, name string) optional.Option[T] {
	if v, ok := r[name].(T); ok {
		return optional.Some(v)
	}
	return optional.None[T]()
}

func nul[T any](r record, name string) nullable.Value[T] {
	switch v := r[name].(type) {
	case nullValue:
		return nullable.NewNull[T]()
	case T:
		return nullable.New(v)
	default:
		return nullable.NewAbsent[T]()
	}
}

func header[L Long[L]](r record) Header[L] {
	return Header[L]{
		Version:   get[byte](r, "version"),
		SenderPK:  get[Base58](r, "senderPublicKey"),
		Timestamp: get[int64](r, "timestamp"),
		Fee:       get[L](r, "fee"),
	}
}

type builder[L Long[L]] func(r record) Transaction[L]

// builders returns the constructors of typed transactions from checked records, indexed by
// TransactionType.index(). The result type fixes the table length to the number of variants.
func builders[L Long[L]]() [TransactionTypesCount]builder[L] {
	return [...]builder[L]{
		func(r record) Transaction[L] {
			return Issue[L]{
				Header:      header[L](r),
				Name:        get[string](r, "name"),
				Description: get[string](r, "description"),
				Decimals:    get[byte](r, "decimals"),
				Quantity:    get[L](r, "quantity"),
				Reissuable:  get[bool](r, "reissuable"),
				ChainID:     opt[byte](r, "chainId"),
				Script:      nul[Base64](r, "script"),
			}
		},
		func(r record) Transaction[L] {
			return Transfer[L]{
				Header:     header[L](r),
				Recipient:  get[string](r, "recipient"),
				Amount:     get[L](r, "amount"),
				AssetID:    nul[Base58](r, "assetId"),
				FeeAssetID: nul[Base58](r, "feeAssetId"),
				Attachment: opt[Base58](r, "attachment"),
			}
		},
		func(r record) Transaction[L] {
			return Reissue[L]{
				Header:     header[L](r),
				AssetID:    get[Base58](r, "assetId"),
				Quantity:   get[L](r, "quantity"),
				Reissuable: get[bool](r, "reissuable"),
			}
		},
		func(r record) Transaction[L] {
			return Burn[L]{
				Header:   header[L](r),
				AssetID:  get[Base58](r, "assetId"),
				Quantity: get[L](r, "quantity"),
				ChainID:  opt[byte](r, "chainId"),
			}
		},
		func(r record) Transaction[L] {
			return Exchange[L]{
				Header:         header[L](r),
				Order1:         order[L](get[record](r, "order1")),
				Order2:         order[L](get[record](r, "order2")),
				Price:          get[L](r, "price"),
				Amount:         get[L](r, "amount"),
				BuyMatcherFee:  get[L](r, "buyMatcherFee"),
				SellMatcherFee: get[L](r, "sellMatcherFee"),
			}
		},
		func(r record) Transaction[L] {
			return Lease[L]{
				Header:    header[L](r),
				Amount:    get[L](r, "amount"),
				Recipient: get[string](r, "recipient"),
			}
		},
		func(r record) Transaction[L] {
			return LeaseCancel[L]{
				Header:  header[L](r),
				LeaseID: get[Base58](r, "leaseId"),
				ChainID: opt[byte](r, "chainId"),
			}
		},
		func(r record) Transaction[L] {
			return CreateAlias[L]{
				Header: header[L](r),
				Alias:  get[string](r, "alias"),
			}
		},
		func(r record) Transaction[L] {
			transfers := get[[]record](r, "transfers")
			items := make([]MassTransferItem[L], len(transfers))
			for i, t := range transfers {
				items[i] = MassTransferItem[L]{
					Recipient: get[string](t, "recipient"),
					Amount:    get[L](t, "amount"),
				}
			}
			return MassTransfer[L]{
				Header:     header[L](r),
				AssetID:    nul[Base58](r, "assetId"),
				Transfers:  items,
				Attachment: get[Base58](r, "attachment"),
			}
		},
		func(r record) Transaction[L] {
			return Data[L]{
				Header:  header[L](r),
				Entries: get[[]DataEntry[L]](r, "data"),
			}
		},
		func(r record) Transaction[L] {
			return SetScript[L]{
				Header:  header[L](r),
				Script:  nul[Base64](r, "script"),
				ChainID: opt[byte](r, "chainId"),
			}
		},
		func(r record) Transaction[L] {
			return Sponsorship[L]{
				Header:               header[L](r),
				AssetID:              get[Base58](r, "assetId"),
				MinSponsoredAssetFee: get[L](r, "minSponsoredAssetFee"),
				ChainID:              get[byte](r, "chainId"),
			}
		},
		func(r record) Transaction[L] {
			return SetAssetScript[L]{
				Header:  header[L](r),
				AssetID: get[Base58](r, "assetId"),
				Script:  get[Base64](r, "script"),
				ChainID: opt[byte](r, "chainId"),
			}
		},
	}
}

func order[L Long[L]](r record) Order[L] {
	pair := get[record](r, "assetPair")
	return Order[L]{
		Version:   get[byte](r, "version"),
		SenderPK:  get[Base58](r, "senderPublicKey"),
		MatcherPK: get[Base58](r, "matcherPublicKey"),
		AssetPair: AssetPair{
			AmountAsset: get[OptionalAsset](pair, "amountAsset"),
			PriceAsset:  get[OptionalAsset](pair, "priceAsset"),
		},
		OrderType:  get[OrderType](r, "orderType"),
		Price:      get[L](r, "price"),
		Amount:     get[L](r, "amount"),
		Timestamp:  get[int64](r, "timestamp"),
		Expiration: get[int64](r, "expiration"),
		MatcherFee: get[L](r, "matcherFee"),
		Proofs:     get[Proofs](r, "proofs"),
	}
}
