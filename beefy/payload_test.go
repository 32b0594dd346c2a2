package beefy

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/beefynet/beefy/common/types"
)

func TestPayloadMMRRootRoundTrip(t *testing.T) {
	t.Parallel()

	var root types.Hash32
	copy(root[:], []byte("32 bytes of mmr root material!!"))

	p := MMRRootPayload(root)
	got, ok := p.MMRRoot()
	require.True(t, ok)
	require.Equal(t, root, got)
}

func TestPayloadMMRRootMissing(t *testing.T) {
	t.Parallel()

	var p Payload
	_, ok := p.MMRRoot()
	require.False(t, ok)
}

func TestPayloadMMRRootWrongLength(t *testing.T) {
	t.Parallel()

	var p Payload
	p.Set(MMRRootTag, []byte("too short"))
	_, ok := p.MMRRoot()
	require.False(t, ok)
}

func TestPayloadSetIsOrderIndependentForEqual(t *testing.T) {
	t.Parallel()

	var a, b Payload
	a.Set(PayloadTag{'a', 'a'}, []byte("1"))
	a.Set(PayloadTag{'z', 'z'}, []byte("2"))

	b.Set(PayloadTag{'z', 'z'}, []byte("2"))
	b.Set(PayloadTag{'a', 'a'}, []byte("1"))

	require.True(t, a.Equal(b))
}

func TestPayloadEqualDetectsDifference(t *testing.T) {
	t.Parallel()

	var a, b Payload
	a.Set(MMRRootTag, []byte("one value"))
	b.Set(MMRRootTag, []byte("another value"))

	require.False(t, a.Equal(b))
}

func TestPayloadSetReplacesExistingTag(t *testing.T) {
	t.Parallel()

	var p Payload
	p.Set(MMRRootTag, []byte("first"))
	p.Set(MMRRootTag, []byte("second"))

	got, ok := p.Get(MMRRootTag)
	require.True(t, ok)
	require.Equal(t, []byte("second"), got)
}
