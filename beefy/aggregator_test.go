package beefy

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/beefynet/beefy/common/types"
)

func testCommitment(block types.BlockNumber) Commitment {
	var root types.Hash32
	copy(root[:], []byte("fixed root for every test vote!"))
	return Commitment{
		Payload:        MMRRootPayload(root),
		BlockNumber:    block,
		ValidatorSetID: types.ValidatorSetID(1),
	}
}

func fourValidatorAggregator(sessionStart types.BlockNumber) (*aggregator, []types.AuthorityID) {
	validators := []types.AuthorityID{{0x01}, {0x02}, {0x03}, {0x04}}
	vs := NewValidatorSet(types.ValidatorSetID(1), validators)
	return newAggregator(sessionStart, vs), validators
}

func TestAggregatorAddVoteRejectsUnknownAuthority(t *testing.T) {
	t.Parallel()

	a, _ := fourValidatorAggregator(bn(0))
	ok := a.addVote(Vote{Commitment: testCommitment(bn(1)), AuthorityID: types.AuthorityID{0xff}}, false)
	require.False(t, ok)
}

func TestAggregatorAddVoteRejectsDuplicate(t *testing.T) {
	t.Parallel()

	a, validators := fourValidatorAggregator(bn(0))
	c := testCommitment(bn(1))

	require.True(t, a.addVote(Vote{Commitment: c, AuthorityID: validators[0]}, false))
	require.False(t, a.addVote(Vote{Commitment: c, AuthorityID: validators[0]}, false))
}

func TestAggregatorTryConcludeBeforeThreshold(t *testing.T) {
	t.Parallel()

	a, validators := fourValidatorAggregator(bn(0))
	c := testCommitment(bn(1))

	a.addVote(Vote{Commitment: c, AuthorityID: validators[0]}, false)
	a.addVote(Vote{Commitment: c, AuthorityID: validators[1]}, false)

	require.Nil(t, a.tryConclude(c), "threshold for 4 validators is not reached by 2 signers")
}

func TestAggregatorTryConcludeAtThreshold(t *testing.T) {
	t.Parallel()

	a, validators := fourValidatorAggregator(bn(0))
	c := testCommitment(bn(1))

	for _, v := range validators {
		a.addVote(Vote{Commitment: c, AuthorityID: v}, false)
	}

	sigs := a.tryConclude(c)
	require.NotNil(t, sigs)
	require.Len(t, sigs, 4)

	// Concluding a second time returns nil: the round is consumed.
	require.Nil(t, a.tryConclude(c))
}

func TestAggregatorTryConcludeSetsMandatoryDoneOnlyForSessionStart(t *testing.T) {
	t.Parallel()

	a, validators := fourValidatorAggregator(bn(10))
	nonMandatory := testCommitment(bn(11))
	for _, v := range validators {
		a.addVote(Vote{Commitment: nonMandatory, AuthorityID: v}, false)
	}
	a.tryConclude(nonMandatory)
	require.False(t, a.isMandatoryDone())

	mandatory := testCommitment(bn(10))
	for _, v := range validators {
		a.addVote(Vote{Commitment: mandatory, AuthorityID: v}, false)
	}
	a.tryConclude(mandatory)
	require.True(t, a.isMandatoryDone())
}

func TestAggregatorShouldSelfVote(t *testing.T) {
	t.Parallel()

	a, validators := fourValidatorAggregator(bn(0))
	c := testCommitment(bn(1))

	require.True(t, a.shouldSelfVote(c), "no round exists yet")

	a.addVote(Vote{Commitment: c, AuthorityID: validators[0]}, true)
	require.False(t, a.shouldSelfVote(c))
}

func TestAggregatorVoteAfterConcludeIsRejected(t *testing.T) {
	t.Parallel()

	a, validators := fourValidatorAggregator(bn(0))
	c := testCommitment(bn(1))
	for _, v := range validators {
		a.addVote(Vote{Commitment: c, AuthorityID: v}, false)
	}
	a.tryConclude(c)

	other := types.AuthorityID{0x05}
	vs := NewValidatorSet(types.ValidatorSetID(1), append(append([]types.AuthorityID{}, validators...), other))
	a.validatorSet = vs
	require.False(t, a.addVote(Vote{Commitment: c, AuthorityID: other}, false))
}
