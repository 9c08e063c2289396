package events

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusDeliversInOrder(t *testing.T) {
	b := NewBus()
	var got []string
	b.On(Error, func(any) { got = append(got, "first") })
	b.On(Error, func(any) { got = append(got, "second") })
	b.On("other", func(any) { got = append(got, "other") })

	b.Emit(Error, errors.New("x"))
	assert.Equal(t, []string{"first", "second"}, got)
}

func TestBusPayloadAndOff(t *testing.T) {
	var b Bus // zero value usable
	boom := errors.New("boom")

	var seen []any
	off := b.On(Error, func(p any) { seen = append(seen, p) })
	require.Equal(t, 1, b.Listeners(Error))

	b.Emit(Error, boom)
	off()
	off()
	b.Emit(Error, boom)

	require.Len(t, seen, 1)
	assert.Same(t, boom, seen[0])
	assert.Equal(t, 0, b.Listeners(Error))
}

func TestOffDuringEmit(t *testing.T) {
	b := NewBus()
	calls := 0
	var off func()
	off = b.On(Error, func(any) { calls++; off() })
	b.On(Error, func(any) { calls++ })

	b.Emit(Error, nil)
	b.Emit(Error, nil)
	assert.Equal(t, 3, calls)
}

func TestOrDiscard(t *testing.T) {
	assert.Equal(t, Discard, OrDiscard(nil))
	b := NewBus()
	assert.Same(t, b, OrDiscard(b))
	Discard.Emit(Error, nil)
}
