package justifysync

import (
	"io"
	"time"

	"github.com/libp2p/go-libp2p/core/network"
)

// deadlineStream bumps the stream's idle deadline on every successful read
// or write, and separately enforces an absolute deadline for the whole
// exchange. Once either fires, the underlying stream starts failing reads
// and writes on its own.
type deadlineStream struct {
	network.Stream
	idle time.Duration
	hard time.Time
}

func newDeadlineStream(s network.Stream, idle, hard time.Duration) *deadlineStream {
	d := &deadlineStream{Stream: s, idle: idle, hard: time.Now().Add(hard)}
	s.SetDeadline(d.hard)
	return d
}

// next returns the idle deadline starting now, capped at the hard deadline.
func (d *deadlineStream) next() time.Time {
	if t := time.Now().Add(d.idle); t.Before(d.hard) {
		return t
	}
	return d.hard
}

func (d *deadlineStream) Read(p []byte) (int, error) {
	n, err := d.Stream.Read(p)
	if n > 0 && d.idle > 0 {
		d.Stream.SetReadDeadline(d.next())
	}
	return n, err
}

func (d *deadlineStream) Write(p []byte) (int, error) {
	n, err := d.Stream.Write(p)
	if n > 0 && d.idle > 0 {
		d.Stream.SetWriteDeadline(d.next())
	}
	return n, err
}

var _ io.ReadWriteCloser = (*deadlineStream)(nil)
