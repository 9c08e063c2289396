// Package codec turns façade values into the []byte payloads that byte-only
// backends (store/bigcache, provider/redis) require. In-memory caches built
// with NewInMemory hold values by identity and never call a codec.
//
// A Decode error is treated by the façade as a corrupt entry: the record is
// deleted and the read reports a miss.
package codec

// Codec encodes/decodes values V to []byte for storage.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}

// Func builds a Codec from a pair of functions. Both must be set.
type Func[V any] struct {
	EncodeFunc func(V) ([]byte, error)
	DecodeFunc func([]byte) (V, error)
}

func (f Func[V]) Encode(v V) ([]byte, error) { return f.EncodeFunc(v) }
func (f Func[V]) Decode(b []byte) (V, error) { return f.DecodeFunc(b) }
