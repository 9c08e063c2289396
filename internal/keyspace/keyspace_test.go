package keyspace

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompose(t *testing.T) {
	assert.Equal(t, "ns::k", Compose("k", "ns", DefaultSeparator))
	assert.Equal(t, "k", Compose("k", "", DefaultSeparator))
	assert.Equal(t, "ns/k", Compose("k", "ns", "/"))
}

func TestDecompose(t *testing.T) {
	cases := []struct {
		in   string
		want Parts
	}{
		{"ns::a:b", Parts{Namespace: "ns", Key: "a:b"}},
		{"ns::a::b", Parts{Namespace: "ns", Key: "a::b"}},
		{"plain", Parts{Key: "plain"}},
		{"::k", Parts{Namespace: "", Key: "k"}},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, Decompose(tc.in, DefaultSeparator))
		})
	}
}

func TestRoundTripBreaksWhenNamespaceHasSeparator(t *testing.T) {
	got := Decompose(Compose("k", "a::b", DefaultSeparator), DefaultSeparator)
	assert.Equal(t, Parts{Namespace: "a", Key: "b::k"}, got)
}

func TestPattern(t *testing.T) {
	assert.Equal(t, "*", Pattern("", "::"))
	assert.Equal(t, "user::*", Pattern("user", "::"))
	assert.Equal(t, `a\*b::*`, Pattern("a*b", "::"))
}
