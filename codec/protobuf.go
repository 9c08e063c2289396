package codec

import "google.golang.org/protobuf/proto"

// Protobuf stores proto messages. Encoding is deterministic so equal
// messages produce equal payloads across processes sharing a backend.
type Protobuf[T proto.Message] struct {
	new func() T
}

// NewProtobuf takes the constructor of an empty message to decode into,
// e.g. func() *mypb.Session { return &mypb.Session{} }.
func NewProtobuf[T proto.Message](ctor func() T) Protobuf[T] {
	return Protobuf[T]{new: ctor}
}

func (c Protobuf[T]) Encode(v T) ([]byte, error) {
	return proto.MarshalOptions{Deterministic: true}.Marshal(v)
}

func (c Protobuf[T]) Decode(b []byte) (T, error) {
	m := c.new()
	if err := proto.Unmarshal(b, m); err != nil {
		var zero T
		return zero, err
	}
	return m, nil
}
