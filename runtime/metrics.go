package runtime

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/spacemeshos/go-pallets/metrics"
)

const (
	namespace = "runtime"

	blockOk       = "ok"
	blockMismatch = "height_mismatch"
	blockHalted   = "halted"

	extrinsicOk       = "ok"
	extrinsicFailed   = "failed"
	extrinsicNonceErr = "nonce_failed"
)

var (
	blockCount = metrics.NewCounter(
		"blocks",
		namespace,
		"number of blocks submitted for execution",
		[]string{"outcome"},
	)
	blockOkCnt       = blockCount.WithLabelValues(blockOk)
	blockMismatchCnt = blockCount.WithLabelValues(blockMismatch)
	blockHaltedCnt   = blockCount.WithLabelValues(blockHalted)

	extrinsicCount = metrics.NewCounter(
		"extrinsics",
		namespace,
		"number of executed extrinsics",
		[]string{"call", "outcome"},
	)

	blockDuration = metrics.NewHistogramWithBuckets(
		"block_duration",
		namespace,
		"duration of block execution in seconds",
		[]string{},
		prometheus.ExponentialBuckets(0.0001, 4, 10),
	).WithLabelValues()

	blockHeight = metrics.NewGauge(
		"height",
		namespace,
		"height of the last executed block",
		[]string{},
	).WithLabelValues()
)
