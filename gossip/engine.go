// Package gossip implements the vote transport: a single libp2p pubsub
// topic carrying scale-encoded votes, a validator that filters messages by
// the currently active round window before they reach the worker, and a
// peer tracker feeding both connectivity events and on-demand-fetch
// candidates.
package gossip

import (
	"context"
	"fmt"

	pubsub "github.com/libp2p/go-libp2p-pubsub"
	"go.uber.org/zap"

	"github.com/beefynet/beefy"
	"github.com/beefynet/beefy/codec"
)

// TopicName is the single pubsub topic votes are gossiped on.
const TopicName = "/beefy/votes/1"

// Engine wraps one pubsub topic as a beefy.GossipEngine.
type Engine struct {
	log   *zap.Logger
	topic *pubsub.Topic
	sub   *pubsub.Subscription
	done  chan struct{}
}

// NewEngine joins TopicName on ps, registers validator's pubsub callback,
// and subscribes. The returned Engine owns the subscription; callers
// should not touch ps for this topic afterward.
func NewEngine(ps *pubsub.PubSub, validator *Validator, log *zap.Logger) (*Engine, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := ps.RegisterTopicValidator(TopicName, validator.validate); err != nil {
		return nil, fmt.Errorf("gossip: register validator: %w", err)
	}
	topic, err := ps.Join(TopicName)
	if err != nil {
		return nil, fmt.Errorf("gossip: join topic: %w", err)
	}
	sub, err := topic.Subscribe()
	if err != nil {
		topic.Close()
		return nil, fmt.Errorf("gossip: subscribe: %w", err)
	}
	return &Engine{log: log, topic: topic, sub: sub, done: make(chan struct{})}, nil
}

// Messages implements beefy.GossipEngine. Each call starts its own
// background reader; the returned channel closes (and Done fires) once the
// subscription itself ends. Every reader closes Done when it exits, so a
// second call panics when its reader exits.
func (e *Engine) Messages(ctx context.Context) (<-chan beefy.Vote, error) {
	out := make(chan beefy.Vote)
	go func() {
		defer close(out)
		defer close(e.done)
		for {
			msg, err := e.sub.Next(ctx)
			if err != nil {
				e.log.Debug("gossip subscription ended", zap.Error(err))
				return
			}
			var vote beefy.Vote
			if _, err := codec.Decode(msg.Data, &vote); err != nil {
				e.log.Debug("decoding gossiped vote failed", zap.Error(err))
				continue
			}
			select {
			case out <- vote:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

// GossipMessage implements beefy.GossipEngine. force is passed through as
// pubsub's readiness requirement: a forced publish waits for the topic's
// mesh to be ready rather than dropping silently on an empty mesh.
func (e *Engine) GossipMessage(ctx context.Context, encoded []byte, force bool) error {
	opts := []pubsub.PubOpt{}
	if force {
		opts = append(opts, pubsub.WithReadiness(pubsub.MinTopicSize(1)))
	}
	return e.topic.Publish(ctx, encoded, opts...)
}

// Done implements beefy.GossipEngine.
func (e *Engine) Done() <-chan struct{} {
	return e.done
}

var _ beefy.GossipEngine = (*Engine)(nil)
