// Package codec wraps github.com/spacemeshos/go-scale behind the small
// surface the rest of this module uses: encode/decode a scale.Encodable
// value to/from a byte slice or stream. Centralizing it here means the
// wire format (and any future versioning of it) changes in one place.
package codec

import (
	"bufio"
	"fmt"
	"io"

	"github.com/spacemeshos/go-scale"
)

// Encodable is implemented by every wire type in this module.
type Encodable interface {
	EncodeScale(*scale.Encoder) (int, error)
}

// Decodable is implemented by every wire type in this module.
type Decodable interface {
	DecodeScale(*scale.Decoder) (int, error)
}

// Encode serializes v to a new byte slice.
func Encode(v Encodable) ([]byte, error) {
	var buf sizeWriter
	n, err := EncodeTo(&buf, v)
	if err != nil {
		return nil, err
	}
	return buf.data[:n], nil
}

// MustEncode is Encode, panicking on error. Used where the value being
// encoded is known-valid (e.g. a freshly constructed struct), matching the
// teacher's codec.MustEncode call sites.
func MustEncode(v Encodable) []byte {
	b, err := Encode(v)
	if err != nil {
		panic("codec: encode failed: " + err.Error())
	}
	return b
}

// EncodeTo writes v's scale encoding to w, returning the number of bytes
// written.
func EncodeTo(w io.Writer, v Encodable) (int, error) {
	enc := scale.NewEncoder(w)
	return v.EncodeScale(enc)
}

// Decode deserializes buf into v.
func Decode(buf []byte, v Decodable) (int, error) {
	return DecodeFrom(newReader(buf), v)
}

// DecodeFrom reads v's scale encoding from r.
func DecodeFrom(r io.Reader, v Decodable) (int, error) {
	dec := scale.NewDecoder(r)
	return v.DecodeScale(dec)
}

// DecodeLen reads a compact-encoded length prefix, as written by
// scale.EncodeByteSliceWithLimit, without decoding the payload itself.
func DecodeLen(r io.Reader) (uint32, int, error) {
	dec := scale.NewDecoder(r)
	n, total, err := scale.DecodeCompact32(dec)
	if err != nil {
		return 0, total, fmt.Errorf("decode length prefix: %w", err)
	}
	return n, total, nil
}

// DecodeStringWithLimit reads a length-prefixed string capped at limit
// bytes.
func DecodeStringWithLimit(r io.Reader, limit int) (string, int, error) {
	dec := scale.NewDecoder(r)
	s, n, err := scale.DecodeStringWithLimit(dec, limit)
	return s, n, err
}

func newReader(buf []byte) io.Reader {
	return bufio.NewReader(&byteReader{data: buf})
}

type byteReader struct {
	data []byte
	pos  int
}

func (b *byteReader) Read(p []byte) (int, error) {
	if b.pos >= len(b.data) {
		return 0, io.EOF
	}
	n := copy(p, b.data[b.pos:])
	b.pos += n
	return n, nil
}

type sizeWriter struct {
	data []byte
}

func (s *sizeWriter) Write(p []byte) (int, error) {
	s.data = append(s.data, p...)
	return len(p), nil
}
