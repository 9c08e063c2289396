package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
)

// JSON serializes with encoding/json. The zero value is ready to use.
// Strict rejects payloads with unknown fields or trailing data, which
// surfaces schema drift on a shared backend as a self-healed miss.
type JSON[V any] struct {
	Strict bool
}

var _ Codec[struct{}] = JSON[struct{}]{}

func (JSON[V]) Encode(v V) ([]byte, error) { return json.Marshal(v) }

func (c JSON[V]) Decode(b []byte) (V, error) {
	var v V
	if !c.Strict {
		err := json.Unmarshal(b, &v)
		return v, err
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&v); err != nil {
		return v, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return v, errors.New("codec: trailing data after JSON value")
	}
	return v, nil
}
