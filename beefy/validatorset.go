package beefy

import "github.com/beefynet/beefy/common/types"

// ValidatorSet is an ordered list of authority keys plus a monotonically
// increasing id. Identity is the id: two sets sharing an id are treated as
// identical even if (by construction error) their membership differed.
type ValidatorSet struct {
	id         types.ValidatorSetID
	validators []types.AuthorityID
}

// NewValidatorSet copies validators so the caller's slice can be reused.
func NewValidatorSet(id types.ValidatorSetID, validators []types.AuthorityID) ValidatorSet {
	cp := make([]types.AuthorityID, len(validators))
	copy(cp, validators)
	return ValidatorSet{id: id, validators: cp}
}

func (v ValidatorSet) ID() types.ValidatorSetID { return v.id }

func (v ValidatorSet) Validators() []types.AuthorityID {
	return v.validators
}

func (v ValidatorSet) Len() int { return len(v.validators) }

// IndexOf returns the validator's position, used to place its signature in
// a SignedCommitment's positional vector.
func (v ValidatorSet) IndexOf(id types.AuthorityID) (int, bool) {
	for i, a := range v.validators {
		if a == id {
			return i, true
		}
	}
	return -1, false
}

// Threshold is the supermajority signer count required to conclude a
// round: ceil(2n/3) + 1, i.e. 2f+2 for n = 3f+1.
func (v ValidatorSet) Threshold() int {
	n := len(v.validators)
	return ceilDiv(2*n, 3) + 1
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
