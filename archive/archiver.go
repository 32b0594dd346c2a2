// Package archive implements best-effort local persistence of finalized
// BEEFY justifications, a SPEC_FULL.md-supplemented feature distinct from
// the worker's own stated non-goal of not persisting state: this is an
// optional external consumer wired the same way the RPC sinks are, not
// worker-internal storage.
package archive

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/natefinch/atomic"
	"go.uber.org/zap"

	"github.com/beefynet/beefy"
	"github.com/beefynet/beefy/codec"
)

// Archiver writes every finalized justification it's notified of to its
// own file under dir, named by block number, using an atomic rename so a
// reader never observes a partially written proof.
type Archiver struct {
	dir  string
	lock *flock.Flock
	log  *zap.Logger
}

// New creates dir if needed and takes an exclusive lock on it, so two
// instances pointed at the same directory don't interleave writes.
func New(dir string, log *zap.Logger) (*Archiver, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("archive: creating %s: %w", dir, err)
	}
	lock := flock.New(filepath.Join(dir, ".lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("archive: locking %s: %w", dir, err)
	}
	if !locked {
		return nil, fmt.Errorf("archive: %s is already locked by another instance", dir)
	}
	return &Archiver{dir: dir, lock: lock, log: log}, nil
}

// Close releases the directory lock.
func (a *Archiver) Close() error {
	return a.lock.Unlock()
}

// NotifyJustification implements beefy.JustificationSink. Failures are
// logged, not returned: archival is a best-effort convenience, and a
// failed write here must never stall the worker's own finalization path.
func (a *Archiver) NotifyJustification(proof beefy.FinalityProof) {
	number := proof.BlockNumber()
	encoded, err := codec.Encode(&proof)
	if err != nil {
		a.log.Warn("encoding justification for archive failed", zap.Uint64("block", number.Uint64()), zap.Error(err))
		return
	}
	path := filepath.Join(a.dir, fmt.Sprintf("%020d.proof", number.Uint64()))
	if err := atomic.WriteFile(path, bytes.NewReader(encoded)); err != nil {
		a.log.Warn("writing archived justification failed", zap.String("path", path), zap.Error(err))
	}
}

var _ beefy.JustificationSink = (*Archiver)(nil)
