package justifysync

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/beefynet/beefy/codec"
	"github.com/beefynet/beefy/common/types"
)

func TestRequestRoundTrip(t *testing.T) {
	t.Parallel()

	want := Request{BlockNumber: types.BlockNumber(424242)}
	enc, err := codec.Encode(&want)
	require.NoError(t, err)

	var got Request
	_, err = codec.Decode(enc, &got)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestResponseRoundTripData(t *testing.T) {
	t.Parallel()

	want := Response{Data: []byte("a finality proof, scale-encoded")}
	enc, err := codec.Encode(&want)
	require.NoError(t, err)

	var got Response
	_, err = codec.Decode(enc, &got)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestResponseRoundTripError(t *testing.T) {
	t.Parallel()

	want := Response{Error: "block not known locally"}
	enc, err := codec.Encode(&want)
	require.NoError(t, err)

	var got Response
	_, err = codec.Decode(enc, &got)
	require.NoError(t, err)
	require.Equal(t, want, got)
	require.Empty(t, got.Data)
}

func TestResponseRejectsOversizedData(t *testing.T) {
	t.Parallel()

	oversized := Response{Data: make([]byte, 65537)}
	_, err := codec.Encode(&oversized)
	require.Error(t, err)
}
