package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

type user struct {
	ID   string `json:"id" msgpack:"id" cbor:"id"`
	Name string `json:"name" msgpack:"name" cbor:"name"`
}

func roundTrip[V any](t *testing.T, name string, c Codec[V], v V) {
	t.Helper()
	b, err := c.Encode(v)
	require.NoError(t, err, name)
	got, err := c.Decode(b)
	require.NoError(t, err, name)
	assert.Equal(t, v, got, name)
}

func TestStructCodecs(t *testing.T) {
	u := user{ID: "1", Name: "Ada"}
	roundTrip[user](t, "json", JSON[user]{}, u)
	roundTrip[user](t, "msgpack", Msgpack[user]{}, u)
	roundTrip[user](t, "cbor", MustCBOR[user](false), u)
	roundTrip[user](t, "cbor-det", MustCBOR[user](true), u)
	roundTrip[string](t, "string", String{}, "hello")
}

func TestCBORDeterministicStable(t *testing.T) {
	c := MustCBOR[map[string]int](true)
	a, _ := c.Encode(map[string]int{"b": 2, "a": 1, "c": 3})
	b, _ := c.Encode(map[string]int{"c": 3, "a": 1, "b": 2})
	assert.Equal(t, a, b)
}

func TestProtobuf(t *testing.T) {
	c := NewProtobuf(func() *wrapperspb.StringValue { return &wrapperspb.StringValue{} })
	b, err := c.Encode(wrapperspb.String("hi"))
	require.NoError(t, err)
	got, err := c.Decode(b)
	require.NoError(t, err)
	assert.True(t, proto.Equal(got, wrapperspb.String("hi")), "got %v", got)
}

func TestLimit(t *testing.T) {
	c := Limit[[]byte]{Inner: Bytes{}, MaxDecode: 3}
	_, err := c.Decode([]byte("abcd"))
	require.ErrorIs(t, err, ErrTooLarge)

	b, err := c.Decode([]byte("abc"))
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), b)

	off := Limit[[]byte]{Inner: Bytes{}}
	_, err = off.Decode(make([]byte, 1<<16))
	assert.NoError(t, err, "limit disabled")
}

func TestJSONStrict(t *testing.T) {
	lax := JSON[user]{}
	strict := JSON[user]{Strict: true}
	drifted := []byte(`{"id":"1","name":"Ada","role":"admin"}`)

	u, err := lax.Decode(drifted)
	require.NoError(t, err)
	assert.Equal(t, user{ID: "1", Name: "Ada"}, u)

	_, err = strict.Decode(drifted)
	assert.Error(t, err, "unknown field")
	_, err = strict.Decode([]byte(`{"id":"1"} {"id":"2"}`))
	assert.Error(t, err, "trailing value")

	roundTrip[user](t, "json-strict", strict, user{ID: "2", Name: "Bob"})
}

func TestFunc(t *testing.T) {
	c := Func[int]{
		EncodeFunc: func(n int) ([]byte, error) { return []byte{byte(n)}, nil },
		DecodeFunc: func(b []byte) (int, error) { return int(b[0]), nil },
	}
	roundTrip[int](t, "func", c, 7)
}
