package log

import (
	"go.uber.org/zap"

	"github.com/spacemeshos/go-pallets/common/types"
)

// ZHeight returns a block height field.
func ZHeight(height types.BlockHeight) zap.Field {
	return zap.Uint64("height", height.Uint64())
}

// ZIndex returns the field for the position of an extrinsic in its block.
func ZIndex(index int) zap.Field {
	return zap.Int("index", index)
}

// ZAccount returns an account field.
func ZAccount(name string, account types.AccountID) zap.Field {
	return zap.String(name, account.String())
}

// ZCaller returns the field for the caller of an extrinsic.
func ZCaller(account types.AccountID) zap.Field {
	return ZAccount("caller", account)
}

// ZShortStringer is a zap field for a value that can be abbreviated.
func ZShortStringer(name string, val ShortString) zap.Field {
	return zap.String(name, val.ShortString())
}

// ShortString is implemented by values with a compact textual form.
type ShortString interface {
	ShortString() string
}
