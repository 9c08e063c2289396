package wire

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDecode(t *testing.T, b []byte) (time.Time, []byte) {
	t.Helper()
	exp, p, err := DecodeRecord(b)
	require.NoError(t, err)
	return exp, p
}

func TestRecordExpiryAndPayload(t *testing.T) {
	at := time.Unix(1700000000, 123456789)
	cases := []struct {
		exp     time.Time
		payload []byte
	}{
		{time.Time{}, nil},
		{at, []byte("hello")},
		{at, []byte{0, 1, 2, 3, 4}},
	}
	for _, tc := range cases {
		exp, p := mustDecode(t, EncodeRecord(tc.exp, tc.payload))
		assert.True(t, exp.Equal(tc.exp), "expiry: got %v want %v", exp, tc.exp)
		assert.Equal(t, tc.payload, p)
	}
}

func TestZeroExpiryStaysZero(t *testing.T) {
	exp, _ := mustDecode(t, EncodeRecord(time.Time{}, []byte("x")))
	assert.True(t, exp.IsZero())
}

func TestRejectsTrailingBytes(t *testing.T) {
	enc := EncodeRecord(time.Time{}, []byte("x"))
	enc = append(enc, 0xDE, 0xAD)
	_, _, err := DecodeRecord(enc)
	assert.Error(t, err)
}

func TestCorruptHeaders(t *testing.T) {
	enc := EncodeRecord(time.Now(), []byte("abc"))

	badMagic := append([]byte(nil), enc...)
	badMagic[0] = 'X'
	badVer := append([]byte(nil), enc...)
	badVer[4] = version + 1

	for name, b := range map[string][]byte{
		"bad magic":         badMagic,
		"bad version":       badVer,
		"short header":      enc[:header-1],
		"truncated payload": enc[:len(enc)-1],
	} {
		_, _, err := DecodeRecord(b)
		assert.ErrorIs(t, err, ErrCorrupt, name)
	}
}
