package runtime

import (
	"errors"
	"fmt"
	"iter"
	"maps"

	"github.com/spacemeshos/go-scale"
	"go.uber.org/zap"

	"github.com/spacemeshos/go-pallets/common/types"
	"github.com/spacemeshos/go-pallets/hash"
	"github.com/spacemeshos/go-pallets/log"
)

// ErrNotFresh is returned when restoring into a runtime that already has state.
var ErrNotFresh = errors.New("runtime: state is not fresh")

// Snapshot is a copy of the whole runtime state.
type Snapshot struct {
	Height   types.BlockHeight
	Balances map[types.AccountID]types.Balance
	Nonces   map[types.AccountID]types.Nonce
	Claims   map[types.Content]types.AccountID
}

// Snapshot copies the current state. The copy doesn't share memory with the runtime.
func (r *Runtime) Snapshot() *Snapshot {
	snapshot := &Snapshot{
		Height:   r.BlockHeight(),
		Balances: map[types.AccountID]types.Balance{},
		Nonces:   map[types.AccountID]types.Nonce{},
		Claims:   map[types.Content]types.AccountID{},
	}
	maps.Insert(snapshot.Balances, r.balances.Accounts())
	maps.Insert(snapshot.Nonces, r.system.Nonces())
	maps.Insert(snapshot.Claims, r.claims.Claims())
	return snapshot
}

func (r *Runtime) fresh() bool {
	return !r.genesis && r.BlockHeight() == 0 && r.claims.Len() == 0 &&
		emptySeq(r.balances.Accounts()) && emptySeq(r.system.Nonces())
}

// Restore loads the snapshot into a runtime that has no state yet. Genesis is
// considered applied afterwards.
func (r *Runtime) Restore(snapshot *Snapshot) error {
	if !r.fresh() {
		return ErrNotFresh
	}
	r.system.Restore(snapshot.Height, snapshot.Nonces)
	for account, balance := range snapshot.Balances {
		r.balances.SetBalance(account, balance)
	}
	for content, owner := range snapshot.Claims {
		if err := r.claims.CreateClaim(owner, content); err != nil {
			return fmt.Errorf("restore claim %s: %w", content, err)
		}
	}
	r.genesis = true
	r.logger.Info("restored state",
		log.ZHeight(snapshot.Height),
		zap.Int("accounts", len(snapshot.Balances)),
		zap.Int("claims", len(snapshot.Claims)),
		log.ZShortStringer("root", r.StateRoot()),
	)
	return nil
}

// StateRoot is a blake3 digest of the canonical encoding of the state: the block
// height followed by balances, nonces and claims, each ordered by key. Runtimes
// with equal state have equal roots.
func (r *Runtime) StateRoot() types.Hash32 {
	hasher := hash.GetHasher()
	defer hash.PutHasher(hasher)
	enc := scale.NewEncoder(hasher)
	if _, err := r.encodeState(enc); err != nil {
		// hasher writes never fail and no limits are applied
		panic(fmt.Sprintf("encode state: %v", err))
	}
	var root types.Hash32
	hasher.Sum(root[:0])
	return root
}

func (r *Runtime) encodeState(enc *scale.Encoder) (total int, err error) {
	{
		n, err := scale.EncodeCompact64(enc, r.BlockHeight().Uint64())
		if err != nil {
			return total, err
		}
		total += n
	}
	for account, balance := range r.balances.Accounts() {
		n, err := encodeEntry(enc, string(account), uint64(balance))
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		// separates the sections so that entries can't shift between them
		n, err := scale.EncodeByte(enc, 0xff)
		if err != nil {
			return total, err
		}
		total += n
	}
	for account, nonce := range r.system.Nonces() {
		n, err := encodeEntry(enc, string(account), uint64(nonce))
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := scale.EncodeByte(enc, 0xff)
		if err != nil {
			return total, err
		}
		total += n
	}
	for content, owner := range r.claims.Claims() {
		{
			n, err := encodeRaw(enc, string(content))
			if err != nil {
				return total, err
			}
			total += n
		}
		{
			n, err := encodeRaw(enc, string(owner))
			if err != nil {
				return total, err
			}
			total += n
		}
	}
	return total, nil
}

func encodeEntry(enc *scale.Encoder, key string, value uint64) (total int, err error) {
	// every entry starts with a zero byte, a section separator doesn't
	{
		n, err := scale.EncodeByte(enc, 0)
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := encodeRaw(enc, key)
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := scale.EncodeCompact64(enc, value)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

// encodeRaw writes a length prefixed string without a length limit.
func encodeRaw(enc *scale.Encoder, value string) (total int, err error) {
	{
		n, err := scale.EncodeCompact64(enc, uint64(len(value)))
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := scale.EncodeByteArray(enc, []byte(value))
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

func emptySeq[K, V any](seq iter.Seq2[K, V]) bool {
	for range seq {
		return false
	}
	return true
}
