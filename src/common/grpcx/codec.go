// Package grpcx holds the gRPC plumbing shared by the dc3 services: the
// JSON wire codec, server construction, interceptors and client dialing.
package grpcx

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

// CodecName is the content-subtype the dc3 services speak
// (application/grpc+json).
const CodecName = "json"

// Codec marshals messages as JSON. The dc3 contracts are plain Go structs
// shared through src/common/model.
type Codec struct{}

func (Codec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (Codec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (Codec) Name() string {
	return CodecName
}

func init() {
	encoding.RegisterCodec(Codec{})
}
