package beefy

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/beefynet/beefy/common/types"
)

func TestFindMMRRootRoundTrip(t *testing.T) {
	t.Parallel()

	f := wireFuzzer()
	for i := 0; i < 20; i++ {
		var root types.Hash32
		f.Fuzz(&root)

		header := Header{Digest: []DigestItem{
			{Engine: beefyEngineID, Kind: DigestMMRRoot, Root: root},
		}}

		got, ok := FindMMRRoot(header)
		if !ok {
			t.Fatal("expected FindMMRRoot to find the entry it was given")
		}
		if got != root {
			t.Fatalf("FindMMRRoot returned %v, want %v", got, root)
		}
	}
}

func TestFindMMRRootIgnoresOtherDigestKinds(t *testing.T) {
	t.Parallel()

	var vs ValidatorSet
	wireFuzzer().Fuzz(&vs)
	header := Header{Digest: []DigestItem{
		{Engine: beefyEngineID, Kind: DigestAuthoritiesChange, Set: vs},
	}}

	if _, ok := FindMMRRoot(header); ok {
		t.Fatal("FindMMRRoot must not match a digest entry of a different kind")
	}
}

func TestFindMMRRootIgnoresOtherEngines(t *testing.T) {
	t.Parallel()

	var root types.Hash32
	wireFuzzer().Fuzz(&root)
	header := Header{Digest: []DigestItem{
		{Engine: EngineID{'O', 'T', 'H', 'R'}, Kind: DigestMMRRoot, Root: root},
	}}

	if _, ok := FindMMRRoot(header); ok {
		t.Fatal("FindMMRRoot must not match a digest entry tagged for a different engine")
	}
}

func TestFindAuthoritiesChangeRoundTrip(t *testing.T) {
	t.Parallel()

	f := wireFuzzer()
	for i := 0; i < 20; i++ {
		var vs ValidatorSet
		f.Fuzz(&vs)

		header := Header{Digest: []DigestItem{
			{Engine: beefyEngineID, Kind: DigestAuthoritiesChange, Set: vs},
		}}

		got, ok := FindAuthoritiesChange(header)
		if !ok {
			t.Fatal("expected FindAuthoritiesChange to find the entry it was given")
		}
		if diff := cmp.Diff(vs, got, cmpOpts); diff != "" {
			t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestFindAuthoritiesChangeIgnoresOtherDigestKinds(t *testing.T) {
	t.Parallel()

	var root types.Hash32
	wireFuzzer().Fuzz(&root)
	header := Header{Digest: []DigestItem{
		{Engine: beefyEngineID, Kind: DigestMMRRoot, Root: root},
	}}

	if _, ok := FindAuthoritiesChange(header); ok {
		t.Fatal("FindAuthoritiesChange must not match a digest entry of a different kind")
	}
}

func TestFindFirstMatchWinsWhenMultipleEntriesPresent(t *testing.T) {
	t.Parallel()

	var first, second types.Hash32
	f := wireFuzzer()
	f.Fuzz(&first)
	f.Fuzz(&second)

	header := Header{Digest: []DigestItem{
		{Engine: beefyEngineID, Kind: DigestMMRRoot, Root: first},
		{Engine: beefyEngineID, Kind: DigestMMRRoot, Root: second},
	}}

	got, ok := FindMMRRoot(header)
	if !ok {
		t.Fatal("expected a match")
	}
	if got != first {
		t.Fatal("FindMMRRoot must return the first matching entry, not the last")
	}
}
