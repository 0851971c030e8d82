package runtime

import (
	"github.com/spacemeshos/go-pallets/common/types"
)

//go:generate mockgen -typed -package=runtime -destination=./mocks.go -source=./interface.go

// Observer is notified about the outcome of block execution.
type Observer interface {
	OnExtrinsic(height types.BlockHeight, result ExtrinsicResult)
	OnBlock(height types.BlockHeight, results []ExtrinsicResult)
}
