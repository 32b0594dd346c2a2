package rpc

import (
	"fmt"

	"github.com/beefynet/beefy/codec"
)

// scaleCodec is a grpc encoding.Codec that (de)serializes the scale-coded
// messages in this package instead of protobuf. It's installed as the
// server's forced codec, so no .proto schema or protoc step exists
// anywhere in this module.
type scaleCodec struct{}

func (scaleCodec) Name() string { return "scale" }

func (scaleCodec) Marshal(v interface{}) ([]byte, error) {
	enc, ok := v.(codec.Encodable)
	if !ok {
		return nil, fmt.Errorf("rpc: %T does not implement codec.Encodable", v)
	}
	return codec.Encode(enc)
}

func (scaleCodec) Unmarshal(data []byte, v interface{}) error {
	dec, ok := v.(codec.Decodable)
	if !ok {
		return fmt.Errorf("rpc: %T does not implement codec.Decodable", v)
	}
	_, err := codec.Decode(data, dec)
	return err
}
