package cmd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spacemeshos/go-pallets/runtime"
)

func TestDecodeBlocks(t *testing.T) {
	blocks, err := DecodeBlocks(strings.NewReader(`[
		{"height":1,"extrinsics":[
			{"caller":"Alice","call":{"pallet":"balances","method":"transfer","to":"Bob","amount":50}},
			{"caller":"Bob","call":{"pallet":"claims","method":"create_claim","content":"doc"}}
		]},
		{"height":2,"extrinsics":[
			{"caller":"Bob","call":{"pallet":"claims","method":"revoke_claim","content":"doc"}}
		]},
		{"height":3}
	]`))
	require.NoError(t, err)
	require.Equal(t, []*runtime.Block{
		{
			Header: runtime.Header{Height: 1},
			Extrinsics: []runtime.Extrinsic{
				{Caller: "Alice", Call: runtime.Transfer("Bob", 50)},
				{Caller: "Bob", Call: runtime.CreateClaim("doc")},
			},
		},
		{
			Header:     runtime.Header{Height: 2},
			Extrinsics: []runtime.Extrinsic{{Caller: "Bob", Call: runtime.RevokeClaim("doc")}},
		},
		{
			Header:     runtime.Header{Height: 3},
			Extrinsics: []runtime.Extrinsic{},
		},
	}, blocks)
}

func TestDecodeBlocksInvalid(t *testing.T) {
	for _, tc := range []struct {
		desc string
		data string
		err  string
	}{
		{
			desc: "unknown method",
			data: `[{"height":1,"extrinsics":[{"caller":"A","call":{"pallet":"balances","method":"mint"}}]}]`,
			err:  "unknown call",
		},
		{
			desc: "unknown pallet",
			data: `[{"height":1,"extrinsics":[{"caller":"A","call":{"pallet":"staking","method":"transfer"}}]}]`,
			err:  "unknown call",
		},
		{
			desc: "no recipient",
			data: `[{"height":1,"extrinsics":[{"caller":"A","call":{"pallet":"balances","method":"transfer","amount":1}}]}]`,
			err:  "without recipient",
		},
		{
			desc: "no caller",
			data: `[{"height":1,"extrinsics":[{"call":{"pallet":"claims","method":"create_claim"}}]}]`,
			err:  "empty caller",
		},
		{
			desc: "unknown field",
			data: `[{"height":1,"parent":"0x00"}]`,
			err:  "unknown field",
		},
		{
			desc: "negative amount",
			data: `[{"height":1,"extrinsics":[{"caller":"A","call":{"pallet":"balances","method":"transfer","to":"B","amount":-1}}]}]`,
			err:  "decode blocks",
		},
	} {
		t.Run(tc.desc, func(t *testing.T) {
			_, err := DecodeBlocks(strings.NewReader(tc.data))
			require.ErrorContains(t, err, tc.err)
		})
	}
}
