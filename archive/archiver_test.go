package archive

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/beefynet/beefy"
	"github.com/beefynet/beefy/common/types"
)

func testProof(number types.BlockNumber) beefy.FinalityProof {
	return beefy.NewFinalityProofV1(beefy.SignedCommitment{
		Commitment: beefy.Commitment{BlockNumber: number},
	})
}

func TestArchiverWritesOneFilePerJustification(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a, err := New(dir, nil)
	require.NoError(t, err)
	defer a.Close()

	a.NotifyJustification(testProof(types.BlockNumber(7)))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var proofFiles int
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".proof" {
			proofFiles++
		}
	}
	require.Equal(t, 1, proofFiles)
}

func TestArchiverRefusesSecondInstanceOnSameDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a, err := New(dir, nil)
	require.NoError(t, err)
	defer a.Close()

	_, err = New(dir, nil)
	require.Error(t, err)
}

func TestArchiverCloseReleasesLockForNextInstance(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a, err := New(dir, nil)
	require.NoError(t, err)
	require.NoError(t, a.Close())

	a2, err := New(dir, nil)
	require.NoError(t, err)
	require.NoError(t, a2.Close())
}
