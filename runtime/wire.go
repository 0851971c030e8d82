package runtime

import (
	"fmt"

	"github.com/spacemeshos/go-scale"

	"github.com/spacemeshos/go-pallets/codec"
	"github.com/spacemeshos/go-pallets/common/types"
	"github.com/spacemeshos/go-pallets/pallets/balances"
	"github.com/spacemeshos/go-pallets/pallets/claims"
)

const (
	// MaxAccountLength is the longest encodable account id.
	MaxAccountLength = 64
	// MaxContentLength is the longest encodable claim content.
	MaxContentLength = 256
	// MaxExtrinsics is the maximal number of extrinsics in an encoded block.
	MaxExtrinsics = 1 << 16
)

// Call indexes on the wire. A call is encoded as compact pallet index, compact
// method index and the method arguments.
const (
	palletBalances uint8 = 0
	palletClaims   uint8 = 1

	methodTransfer = 0

	methodCreateClaim = 0
	methodRevokeClaim = 1
)

// EncodeBlock returns the SCALE encoding of the block.
func EncodeBlock(block *Block) ([]byte, error) {
	return codec.Encode(&wireBlock{block: block})
}

// DecodeBlock decodes a block encoded with EncodeBlock.
func DecodeBlock(buf []byte) (*Block, error) {
	w := wireBlock{block: &Block{}}
	if err := codec.Decode(buf, &w); err != nil {
		return nil, err
	}
	return w.block, nil
}

type wireBlock struct {
	block *Block
}

func (w *wireBlock) EncodeScale(enc *scale.Encoder) (total int, err error) {
	if len(w.block.Extrinsics) > MaxExtrinsics {
		return 0, fmt.Errorf("block has %d extrinsics, limit is %d", len(w.block.Extrinsics), MaxExtrinsics)
	}
	{
		n, err := scale.EncodeCompact64(enc, w.block.Header.Height.Uint64())
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := scale.EncodeCompact32(enc, uint32(len(w.block.Extrinsics)))
		if err != nil {
			return total, err
		}
		total += n
	}
	for i := range w.block.Extrinsics {
		n, err := encodeExtrinsic(enc, &w.block.Extrinsics[i])
		if err != nil {
			return total, fmt.Errorf("extrinsic %d: %w", i, err)
		}
		total += n
	}
	return total, nil
}

func (w *wireBlock) DecodeScale(dec *scale.Decoder) (total int, err error) {
	{
		field, n, err := scale.DecodeCompact64(dec)
		if err != nil {
			return total, err
		}
		total += n
		w.block.Header.Height = types.BlockHeight(field)
	}
	var count uint32
	{
		field, n, err := scale.DecodeCompact32(dec)
		if err != nil {
			return total, err
		}
		total += n
		count = field
	}
	if count > MaxExtrinsics {
		return total, fmt.Errorf("block has %d extrinsics, limit is %d", count, MaxExtrinsics)
	}
	// grows with the decoded input, count alone is not trusted for allocation
	w.block.Extrinsics = make([]Extrinsic, 0, min(count, 64))
	for i := range count {
		var ext Extrinsic
		n, err := decodeExtrinsic(dec, &ext)
		if err != nil {
			return total, fmt.Errorf("extrinsic %d: %w", i, err)
		}
		total += n
		w.block.Extrinsics = append(w.block.Extrinsics, ext)
	}
	return total, nil
}

func encodeExtrinsic(enc *scale.Encoder, ext *Extrinsic) (total int, err error) {
	{
		n, err := encodeString(enc, string(ext.Caller), MaxAccountLength)
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := encodeCall(enc, ext.Call)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

func decodeExtrinsic(dec *scale.Decoder, ext *Extrinsic) (total int, err error) {
	{
		field, n, err := decodeString(dec, MaxAccountLength)
		if err != nil {
			return total, err
		}
		total += n
		ext.Caller = types.AccountID(field)
	}
	{
		call, n, err := decodeCall(dec)
		if err != nil {
			return total, err
		}
		total += n
		ext.Call = call
	}
	return total, nil
}

func encodeIndex(enc *scale.Encoder, pallet, method uint8) (total int, err error) {
	{
		n, err := scale.EncodeCompact8(enc, pallet)
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := scale.EncodeCompact8(enc, method)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

func encodeCall(enc *scale.Encoder, call Call) (total int, err error) {
	switch c := call.(type) {
	case BalancesCall:
		switch bc := c.Call.(type) {
		case balances.Transfer[types.AccountID, types.Balance]:
			{
				n, err := encodeIndex(enc, palletBalances, methodTransfer)
				if err != nil {
					return total, err
				}
				total += n
			}
			{
				n, err := encodeString(enc, string(bc.To), MaxAccountLength)
				if err != nil {
					return total, err
				}
				total += n
			}
			{
				n, err := scale.EncodeCompact64(enc, uint64(bc.Amount))
				if err != nil {
					return total, err
				}
				total += n
			}
			return total, nil
		}
	case ClaimsCall:
		var (
			method  uint8
			content types.Content
		)
		switch cc := c.Call.(type) {
		case claims.CreateClaim[types.Content]:
			method, content = methodCreateClaim, cc.Content
		case claims.RevokeClaim[types.Content]:
			method, content = methodRevokeClaim, cc.Content
		default:
			return 0, fmt.Errorf("%w: %T", ErrUnknownCall, c.Call)
		}
		{
			n, err := encodeIndex(enc, palletClaims, method)
			if err != nil {
				return total, err
			}
			total += n
		}
		{
			n, err := encodeString(enc, string(content), MaxContentLength)
			if err != nil {
				return total, err
			}
			total += n
		}
		return total, nil
	}
	return 0, fmt.Errorf("%w: %T", ErrUnknownCall, call)
}

func decodeCall(dec *scale.Decoder) (Call, int, error) {
	var (
		total          int
		pallet, method uint8
	)
	{
		field, n, err := scale.DecodeCompact8(dec)
		if err != nil {
			return nil, total, err
		}
		total += n
		pallet = field
	}
	{
		field, n, err := scale.DecodeCompact8(dec)
		if err != nil {
			return nil, total, err
		}
		total += n
		method = field
	}
	switch {
	case pallet == palletBalances && method == methodTransfer:
		to, n, err := decodeString(dec, MaxAccountLength)
		if err != nil {
			return nil, total, err
		}
		total += n
		amount, n, err := scale.DecodeCompact64(dec)
		if err != nil {
			return nil, total, err
		}
		total += n
		return Transfer(types.AccountID(to), types.Balance(amount)), total, nil
	case pallet == palletClaims && (method == methodCreateClaim || method == methodRevokeClaim):
		content, n, err := decodeString(dec, MaxContentLength)
		if err != nil {
			return nil, total, err
		}
		total += n
		if method == methodCreateClaim {
			return CreateClaim(types.Content(content)), total, nil
		}
		return RevokeClaim(types.Content(content)), total, nil
	}
	return nil, total, fmt.Errorf("%w: pallet %d method %d", ErrUnknownCall, pallet, method)
}

func encodeString(enc *scale.Encoder, value string, limit uint32) (int, error) {
	return scale.EncodeByteSliceWithLimit(enc, []byte(value), limit)
}

func decodeString(dec *scale.Decoder, limit uint32) (string, int, error) {
	buf, n, err := scale.DecodeByteSliceWithLimit(dec, limit)
	if err != nil {
		return "", n, err
	}
	return string(buf), n, nil
}
