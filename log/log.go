// Package log adapts go.uber.org/zap to the small set of helpers this
// module's packages share: pulling a request id out of a context for log
// correlation, and rendering Stringer-like IDs compactly.
package log

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ctxKey struct{}

// WithNewRequestID returns a context carrying a fresh request id, and
// logs made with ZContext(ctx) will include it.
func WithNewRequestID(ctx context.Context) context.Context {
	return context.WithValue(ctx, ctxKey{}, uuid.NewString())
}

// ZContext returns a zap field carrying the context's request id, if any.
func ZContext(ctx context.Context) zap.Field {
	id, _ := ctx.Value(ctxKey{}).(string)
	if id == "" {
		return zap.Skip()
	}
	return zap.String("request_id", id)
}

// shortStringer is satisfied by the various fixed-size ID types in this
// module (AuthorityID, Hash32, ...).
type shortStringer interface {
	ShortString() string
}

// ZShortStringer logs id.ShortString() instead of its full hex form, to
// keep log lines readable.
func ZShortStringer(key string, id shortStringer) zap.Field {
	return zap.String(key, id.ShortString())
}
