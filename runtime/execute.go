package runtime

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/spacemeshos/go-pallets/common/types"
	"github.com/spacemeshos/go-pallets/log"
)

// ErrBlockHeightMismatch is returned when a block doesn't declare the height that
// follows the current one.
var ErrBlockHeightMismatch = errors.New("runtime: block height mismatch")

// HeightMismatchError describes a rejected block header.
type HeightMismatchError struct {
	Expected types.BlockHeight
	Got      types.BlockHeight
}

func (e *HeightMismatchError) Error() string {
	return fmt.Sprintf("%s: expected %d, got %d", ErrBlockHeightMismatch, e.Expected, e.Got)
}

// Is makes errors.Is(err, ErrBlockHeightMismatch) hold.
func (e *HeightMismatchError) Is(target error) bool {
	return target == ErrBlockHeightMismatch
}

// ExtrinsicResult is the outcome of a single extrinsic. A failed extrinsic
// doesn't fail the block that included it.
type ExtrinsicResult struct {
	Index  int
	Caller types.AccountID
	// NonceErr is set when the caller nonce could not be incremented. The call
	// is dispatched regardless.
	NonceErr error
	// Err is the error returned by the pallet that executed the call.
	Err error
}

// Ok is true if both the nonce update and the call succeeded.
func (r *ExtrinsicResult) Ok() bool {
	return r.NonceErr == nil && r.Err == nil
}

// Failure joins the nonce and call errors. It is nil if the extrinsic is ok.
func (r *ExtrinsicResult) Failure() error {
	return errors.Join(r.NonceErr, r.Err)
}

// outcome is the metrics label of the result. A failed call takes precedence
// over a failed nonce update.
func (r *ExtrinsicResult) outcome() string {
	switch {
	case r.Err != nil:
		return extrinsicFailed
	case r.NonceErr != nil:
		return extrinsicNonceErr
	default:
		return extrinsicOk
	}
}

// ExecuteBlock validates the block header, advances the block height and executes
// every extrinsic in order.
//
// The returned error is a block-level failure, in which case nothing was applied.
// Failures of individual extrinsics are reported in the results only.
func (r *Runtime) ExecuteBlock(block *Block) ([]ExtrinsicResult, error) {
	if r.halted != nil {
		blockHaltedCnt.Inc()
		return nil, r.halted
	}
	start := time.Now()
	next, err := r.system.NextBlockHeight()
	if err != nil {
		r.halted = fmt.Errorf("runtime halted at height %d: %w", r.BlockHeight(), err)
		r.logger.Error("block height can't advance", log.ZHeight(r.BlockHeight()), zap.Error(err))
		blockHaltedCnt.Inc()
		return nil, r.halted
	}
	if block.Header.Height != next {
		blockMismatchCnt.Inc()
		r.logger.Warn("rejected block",
			zap.Uint64("expected", next.Uint64()),
			zap.Uint64("got", block.Header.Height.Uint64()),
		)
		return nil, &HeightMismatchError{Expected: next, Got: block.Header.Height}
	}
	if err := r.system.AdvanceBlockHeight(); err != nil {
		// checked by NextBlockHeight
		return nil, err
	}

	height := r.BlockHeight()
	results := make([]ExtrinsicResult, 0, len(block.Extrinsics))
	for i := range block.Extrinsics {
		result := r.executeExtrinsic(height, i, &block.Extrinsics[i])
		results = append(results, result)
		if r.observer != nil {
			r.observer.OnExtrinsic(height, result)
		}
	}
	if r.observer != nil {
		r.observer.OnBlock(height, results)
	}
	blockOkCnt.Inc()
	blockHeight.Set(float64(height))
	blockDuration.Observe(time.Since(start).Seconds())
	r.logger.Debug("executed block",
		log.ZHeight(height),
		zap.Int("extrinsics", len(results)),
		zap.Duration("duration", time.Since(start)),
	)
	return results, nil
}

func (r *Runtime) executeExtrinsic(height types.BlockHeight, index int, ext *Extrinsic) ExtrinsicResult {
	result := ExtrinsicResult{Index: index, Caller: ext.Caller}
	name := callName(ext.Call)
	if err := r.system.IncrementNonce(ext.Caller); err != nil {
		result.NonceErr = err
		r.logger.Warn("nonce not incremented",
			log.ZHeight(height), log.ZIndex(index), log.ZCaller(ext.Caller), zap.Error(err),
		)
	}
	if err := r.Dispatch(ext.Caller, ext.Call); err != nil {
		result.Err = err
		r.logger.Debug("extrinsic failed",
			log.ZHeight(height), log.ZIndex(index), log.ZCaller(ext.Caller),
			zap.String("call", name), zap.Error(err),
		)
	}
	extrinsicCount.WithLabelValues(name, result.outcome()).Inc()
	return result
}
