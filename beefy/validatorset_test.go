package beefy

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/beefynet/beefy/common/types"
)

func TestValidatorSetIndexOf(t *testing.T) {
	t.Parallel()

	a, b, c := types.AuthorityID{0x01}, types.AuthorityID{0x02}, types.AuthorityID{0x03}
	vs := NewValidatorSet(types.ValidatorSetID(1), []types.AuthorityID{a, b, c})

	i, ok := vs.IndexOf(b)
	require.True(t, ok)
	require.Equal(t, 1, i)

	_, ok = vs.IndexOf(types.AuthorityID{0xff})
	require.False(t, ok)
}

func TestValidatorSetCopiesInput(t *testing.T) {
	t.Parallel()

	validators := []types.AuthorityID{{0x01}, {0x02}}
	vs := NewValidatorSet(types.ValidatorSetID(1), validators)

	validators[0] = types.AuthorityID{0xff}
	require.Equal(t, types.AuthorityID{0x01}, vs.Validators()[0], "NewValidatorSet must not alias the caller's slice")
}

func TestValidatorSetLenAndID(t *testing.T) {
	t.Parallel()

	vs := NewValidatorSet(types.ValidatorSetID(9), []types.AuthorityID{{0x01}, {0x02}, {0x03}})
	require.Equal(t, 3, vs.Len())
	require.Equal(t, types.ValidatorSetID(9), vs.ID())
}

func TestValidatorSetThreshold(t *testing.T) {
	t.Parallel()

	cases := []struct {
		n         int
		threshold int
	}{
		{n: 1, threshold: 2},
		{n: 4, threshold: 4},
		{n: 7, threshold: 6},
	}
	for _, tc := range cases {
		validators := make([]types.AuthorityID, tc.n)
		for i := range validators {
			validators[i][0] = byte(i + 1)
		}
		vs := NewValidatorSet(types.ValidatorSetID(0), validators)
		require.Equal(t, tc.threshold, vs.Threshold())
	}
}
