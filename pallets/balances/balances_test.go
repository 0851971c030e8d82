package balances

import (
	"math"
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/require"
)

const (
	alice = "alice"
	bob   = "bob"
)

func TestInitBalance(t *testing.T) {
	ledger := New[string, uint64]()
	require.Zero(t, ledger.BalanceOf(alice))

	ledger.SetBalance(alice, 100)
	require.EqualValues(t, 100, ledger.BalanceOf(alice))
	require.Zero(t, ledger.BalanceOf(bob))

	ledger.SetBalance(alice, 0)
	require.Zero(t, ledger.BalanceOf(alice))
}

func TestTransfer(t *testing.T) {
	for _, tc := range []struct {
		desc           string
		from, to       uint8
		amount         uint8
		err            error
		expFrom, expTo uint8
	}{
		{desc: "regular", from: 100, to: 100, amount: 50, expFrom: 50, expTo: 150},
		{desc: "whole balance", from: 100, to: 0, amount: 100, expFrom: 0, expTo: 100},
		{desc: "zero amount", from: 0, to: 0, amount: 0, expFrom: 0, expTo: 0},
		{desc: "insufficient", from: 100, to: 100, amount: 150, err: ErrInsufficientBalance, expFrom: 100, expTo: 100},
		{desc: "overflow", from: 100, to: math.MaxUint8, amount: 1, err: ErrBalanceOverflow, expFrom: 100, expTo: math.MaxUint8},
		{desc: "insufficient wins over overflow", from: 1, to: math.MaxUint8, amount: 2, err: ErrInsufficientBalance, expFrom: 1, expTo: math.MaxUint8},
	} {
		t.Run(tc.desc, func(t *testing.T) {
			ledger := New[string, uint8]()
			ledger.SetBalance(alice, tc.from)
			ledger.SetBalance(bob, tc.to)

			err := ledger.Transfer(alice, bob, tc.amount)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
			} else {
				require.NoError(t, err)
			}
			require.Equal(t, tc.expFrom, ledger.BalanceOf(alice))
			require.Equal(t, tc.expTo, ledger.BalanceOf(bob))
		})
	}
}

func TestSelfTransfer(t *testing.T) {
	ledger := New[string, uint8]()
	ledger.SetBalance(alice, math.MaxUint8)

	require.NoError(t, ledger.Transfer(alice, alice, 10))
	require.EqualValues(t, math.MaxUint8, ledger.BalanceOf(alice))
	require.NoError(t, ledger.Transfer(alice, alice, math.MaxUint8))
	require.EqualValues(t, math.MaxUint8, ledger.BalanceOf(alice))

	ledger.SetBalance(bob, 5)
	require.ErrorIs(t, ledger.Transfer(bob, bob, 6), ErrInsufficientBalance)
	require.EqualValues(t, 5, ledger.BalanceOf(bob))
}

func TestDispatch(t *testing.T) {
	ledger := New[string, uint64]()
	ledger.SetBalance(alice, 100)

	require.NoError(t, ledger.Dispatch(alice, Transfer[string, uint64]{To: bob, Amount: 60}))
	require.ErrorIs(t, ledger.Dispatch(alice, Transfer[string, uint64]{To: bob, Amount: 60}), ErrInsufficientBalance)
	require.Error(t, ledger.Dispatch(alice, nil))

	require.EqualValues(t, 40, ledger.BalanceOf(alice))
	require.EqualValues(t, 60, ledger.BalanceOf(bob))
}

func TestAccountsOrdered(t *testing.T) {
	ledger := New[string, uint64]()
	ledger.SetBalance("charlie", 3)
	ledger.SetBalance(alice, 1)
	ledger.SetBalance(bob, 2)

	var got []uint64
	for _, balance := range ledger.Accounts() {
		got = append(got, balance)
	}
	require.Equal(t, []uint64{1, 2, 3}, got)

	var first []string
	for account := range ledger.Accounts() {
		first = append(first, account)
		break
	}
	require.Equal(t, []string{alice}, first)
}

func TestTotalIssuance(t *testing.T) {
	ledger := New[string, uint8]()
	ledger.SetBalance(alice, 200)
	ledger.SetBalance(bob, 55)
	total, err := ledger.TotalIssuance()
	require.NoError(t, err)
	require.EqualValues(t, 255, total)

	ledger.SetBalance("charlie", 1)
	_, err = ledger.TotalIssuance()
	require.ErrorIs(t, err, ErrBalanceOverflow)
}

func TestRandomTransfersConserveValue(t *testing.T) {
	const (
		accounts  = 8
		transfers = 1000
	)
	var (
		f      = fuzz.New().NilChance(0)
		ledger = New[uint8, uint32]()
	)
	for i := range uint8(accounts) {
		ledger.SetBalance(i, 1_000_000)
	}
	before, err := ledger.TotalIssuance()
	require.NoError(t, err)

	for range transfers {
		var (
			from, to uint8
			amount   uint32
		)
		f.Fuzz(&from)
		f.Fuzz(&to)
		f.Fuzz(&amount)
		from, to = from%accounts, to%accounts
		amount %= 500_000

		fromBefore, toBefore := ledger.BalanceOf(from), ledger.BalanceOf(to)
		err := ledger.Transfer(from, to, amount)
		if err != nil {
			require.ErrorIs(t, err, ErrInsufficientBalance)
			require.Equal(t, fromBefore, ledger.BalanceOf(from))
			require.Equal(t, toBefore, ledger.BalanceOf(to))
			continue
		}
		if from != to {
			require.Equal(t, uint64(fromBefore)+uint64(toBefore),
				uint64(ledger.BalanceOf(from))+uint64(ledger.BalanceOf(to)))
		}
	}
	after, err := ledger.TotalIssuance()
	require.NoError(t, err)
	require.Equal(t, before, after)
}

func TestZeroBalanceNotStored(t *testing.T) {
	ledger := New[string, uint64]()
	ledger.SetBalance(alice, 0)
	require.NoError(t, ledger.Transfer(bob, "charlie", 0))

	ledger.SetBalance(bob, 5)
	require.NoError(t, ledger.Transfer(bob, alice, 5))

	var accounts []string
	for account := range ledger.Accounts() {
		accounts = append(accounts, account)
	}
	require.Equal(t, []string{alice}, accounts)
	require.Zero(t, ledger.BalanceOf(bob))
}
