// Package rpc is the streaming/binary data-plane transport: unary Search,
// BatchObjects, TenantsGet, and Aggregate calls plus the health probe, per
// spec.md §4.1. Grounded on the teacher's pkg/client/client.go dial
// pattern (grpc.Dial with transport credentials, a persisted
// *grpc.ClientConn, typed wrapper methods per RPC).
//
// The retrieval pack carries no .proto sources for this service, so
// message types below are plain Go structs rather than generated
// protobuf types. To still ride google.golang.org/grpc's real
// ClientConn/invoke machinery (rather than hand-rolling a substitute RPC
// client), this package registers a codec implementing grpc's
// encoding.Codec interface that marshals those structs with
// encoding/json instead of protobuf wire format, selected per call via
// grpc.CallContentSubtype. See DESIGN.md for the grounding of this
// decision.
package rpc

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

const codecName = "vecta-json"

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

// jsonCodec implements google.golang.org/grpc/encoding.Codec.
type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string { return codecName }
