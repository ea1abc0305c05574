package grpc

import (
	"fmt"

	"google.golang.org/grpc/encoding"
	"google.golang.org/protobuf/proto"
)

// Codec marshals the fraud service wire messages in protobuf binary format and
// delegates generated protobuf messages (health, reflection) to the proto package.
// The server forces it for every call; clients must pass ForceCodec.
type Codec struct{}

var _ encoding.Codec = Codec{}

// Marshal encodes v.
func (Codec) Marshal(v any) ([]byte, error) {
	switch m := v.(type) {
	case wireMessage:
		return m.marshalWire(), nil
	case proto.Message:
		return proto.Marshal(m)
	default:
		return nil, fmt.Errorf("codec: cannot marshal %T", v)
	}
}

// Unmarshal decodes data into v.
func (Codec) Unmarshal(data []byte, v any) error {
	switch m := v.(type) {
	case wireMessage:
		if err := m.unmarshalWire(data); err != nil {
			return fmt.Errorf("codec: unmarshal %T: %w", v, err)
		}
		return nil
	case proto.Message:
		return proto.Unmarshal(data, m)
	default:
		return fmt.Errorf("codec: cannot unmarshal into %T", v)
	}
}

// Name returns the content subtype, matching the stock protobuf codec.
func (Codec) Name() string {
	return "proto"
}
