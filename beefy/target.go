package beefy

import "github.com/beefynet/beefy/common/types"

// votingTarget implements the exponential back-off schedule: while BEEFY
// keeps up with base finality the worker votes every minDelta blocks; the
// further behind it falls, the coarser (power-of-two rounded) the cadence
// becomes, so it refines again as it catches up.
func votingTarget(
	bestBeefy *types.BlockNumber,
	bestBase types.BlockNumber,
	sessionStart types.BlockNumber,
	minDelta types.BlockNumber,
) *types.BlockNumber {
	var candidate types.BlockNumber
	if bestBeefy == nil || *bestBeefy < sessionStart {
		candidate = sessionStart
	} else {
		diff := (bestBase.SaturatingSub(*bestBeefy).SaturatingAdd(1)) / 2
		step := minDelta
		if rounded := diff.NextPowerOfTwo(); rounded > step {
			step = rounded
		}
		candidate = bestBeefy.SaturatingAdd(step)
	}
	if candidate > bestBase {
		return nil
	}
	return &candidate
}
