package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/afero"

	"github.com/spacemeshos/go-pallets/common/types"
	"github.com/spacemeshos/go-pallets/runtime"
)

// Pallet and method names of calls in a blocks file.
const (
	palletBalances = "balances"
	palletClaims   = "claims"

	methodTransfer    = "transfer"
	methodCreateClaim = "create_claim"
	methodRevokeClaim = "revoke_claim"
)

type blockJSON struct {
	Height     uint64          `json:"height"`
	Extrinsics []extrinsicJSON `json:"extrinsics"`
}

type extrinsicJSON struct {
	Caller string   `json:"caller"`
	Call   callJSON `json:"call"`
}

type callJSON struct {
	Pallet  string `json:"pallet"`
	Method  string `json:"method"`
	To      string `json:"to,omitempty"`
	Amount  uint64 `json:"amount,omitempty"`
	Content string `json:"content,omitempty"`
}

func (c *callJSON) toCall() (runtime.Call, error) {
	switch {
	case c.Pallet == palletBalances && c.Method == methodTransfer:
		if c.To == "" {
			return nil, errors.New("transfer without recipient")
		}
		return runtime.Transfer(types.AccountID(c.To), types.Balance(c.Amount)), nil
	case c.Pallet == palletClaims && c.Method == methodCreateClaim:
		return runtime.CreateClaim(types.Content(c.Content)), nil
	case c.Pallet == palletClaims && c.Method == methodRevokeClaim:
		return runtime.RevokeClaim(types.Content(c.Content)), nil
	}
	return nil, fmt.Errorf("%w: %s.%s", runtime.ErrUnknownCall, c.Pallet, c.Method)
}

// DecodeBlocks parses a JSON list of blocks.
func DecodeBlocks(r io.Reader) ([]*runtime.Block, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	var raw []blockJSON
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode blocks: %w", err)
	}
	blocks := make([]*runtime.Block, 0, len(raw))
	for i, b := range raw {
		block := &runtime.Block{
			Header:     runtime.Header{Height: types.BlockHeight(b.Height)},
			Extrinsics: make([]runtime.Extrinsic, 0, len(b.Extrinsics)),
		}
		for j, ext := range b.Extrinsics {
			if ext.Caller == "" {
				return nil, fmt.Errorf("block %d extrinsic %d: empty caller", i, j)
			}
			call, err := ext.Call.toCall()
			if err != nil {
				return nil, fmt.Errorf("block %d extrinsic %d: %w", i, j, err)
			}
			block.Extrinsics = append(block.Extrinsics, runtime.Extrinsic{
				Caller: types.AccountID(ext.Caller),
				Call:   call,
			})
		}
		blocks = append(blocks, block)
	}
	return blocks, nil
}

// ReadBlocks reads a blocks file.
func ReadBlocks(fs afero.Fs, path string) ([]*runtime.Block, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, err
	}
	return DecodeBlocks(bytes.NewReader(data))
}
