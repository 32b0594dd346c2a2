package beefy

import "github.com/beefynet/beefy/metrics"

const namespace = "beefy"

var (
	validatorSetIDGauge = metrics.NewGauge("validator_set_id", namespace,
		"ID of the active validator set.", nil).WithLabelValues()
	bestVotedOnGauge = metrics.NewGauge("best_voted_on", namespace,
		"Block number of the most recent self-produced vote.", nil).WithLabelValues()
	bestBeefyBlockGauge = metrics.NewGauge("best_beefy_block", namespace,
		"Block number of the most recent finalized BEEFY commitment.", nil).WithLabelValues()
	roundConcluded = metrics.NewSimpleCounter(namespace, "round_concluded_total",
		"Number of rounds that reached their signing threshold.")
	votesSent = metrics.NewSimpleCounter(namespace, "votes_sent_total",
		"Number of votes this node has gossiped.")
	laggingSessions = metrics.NewSimpleCounter(namespace, "lagging_sessions_total",
		"Number of session changes observed while the previous session's mandatory round hadn't concluded.")
)

func observeValidatorSetID(id uint64)  { validatorSetIDGauge.Set(float64(id)) }
func observeBestVotedOn(n uint64)      { bestVotedOnGauge.Set(float64(n)) }
func observeBestBeefyBlock(n uint64)   { bestBeefyBlockGauge.Set(float64(n)) }
