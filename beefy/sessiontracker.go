package beefy

import (
	"go.uber.org/zap"

	"github.com/beefynet/beefy/common/types"
)

// sessionTracker watches base-finality headers for authority-set changes
// and installs new sessions in the oracle as they appear.
type sessionTracker struct {
	logger       *zap.Logger
	bestObserved types.BlockNumber
	haveObserved bool
}

func newSessionTracker(logger *zap.Logger) *sessionTracker {
	return &sessionTracker{logger: logger}
}

// onBaseFinalized processes one base-finality header. If it carries an
// authority-set-change digest, a new session is installed and an
// on-demand justification request is fired for the new mandatory block,
// so that block can be satisfied from peers even if the live gossip
// window for it was missed.
func (t *sessionTracker) onBaseFinalized(
	o *oracle,
	header Header,
	requestJustification func(types.BlockNumber),
) {
	if t.haveObserved && header.Number <= t.bestObserved {
		return
	}
	t.bestObserved = header.Number
	t.haveObserved = true

	set, ok := FindAuthoritiesChange(header)
	if !ok {
		return
	}

	if head := o.head(); head != nil && !head.isMandatoryDone() {
		t.logger.Warn("new session announced before previous session's mandatory round concluded",
			zap.Uint64("previous session start", head.sessionStartBlock().Uint64()),
			zap.Uint64("new session start", header.Number.Uint64()),
		)
		laggingSessions.Inc()
	}

	o.addSession(newAggregator(header.Number, set))
	observeValidatorSetID(uint64(set.ID()))
	requestJustification(header.Number)
}
